// internal/zkproof/equality.go
package zkproof

import (
	"crypto/subtle"
	"fmt"
)

// VerifyEqualityProof structurally validates a Schnorr-style equality proof
// relating commitments a and b. The algebraic relation R + s*G == a - b is
// NOT evaluated here; it is delegated to the off-path verifier. This check
// rejects zero and degenerate records only.
func VerifyEqualityProof(proof *EqualityProof, a, b *Commitment) error {
	if a.IsZero() || b.IsZero() {
		return fmt.Errorf("%w: zero commitment", ErrInvalidEqualityProof)
	}
	if proof.R.IsZero() {
		return fmt.Errorf("%w: zero R point", ErrInvalidEqualityProof)
	}
	if proof.S.IsZero() {
		return fmt.Errorf("%w: zero s scalar", ErrInvalidEqualityProof)
	}
	// A dummy record fills R and s with one repeated pattern.
	if subtle.ConstantTimeCompare(proof.R[:32], proof.S[:]) == 1 {
		return fmt.Errorf("%w: R repeats s", ErrInvalidEqualityProof)
	}
	return nil
}
