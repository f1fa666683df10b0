// internal/zkproof/verifier.go

// Package zkproof verifies that a byte blob is a structurally well-formed
// zero-knowledge proof for a confidential balance transfer: two
// bulletproof-shaped range records plus a validity proof built from two
// Schnorr-style equality records.
//
// The package is written for a caller with a hard, small stack budget: every
// structure is a fixed-size byte array, verification is a bounded pure
// computation with no allocation of curve-point objects, and byte
// comparisons over secret-derived data are constant time. It deliberately
// stops at structural and non-triviality validation — curve algebra
// (multi-scalar multiplication, the inner-product argument) is delegated to
// an off-path Verifier implementation. A deployment MUST pair this
// structural pass with a full algebraic verifier; on its own it rejects
// malformed and dummy proofs but does not make the proof binding.
package zkproof

import "fmt"

// Verifier is the capability the ledger collaborator consumes. The
// structural implementation below and the algebraic one in
// internal/zkalgebra are interchangeable.
type Verifier interface {
	ExtractAmountCommitment(data []byte) (Commitment, error)
	VerifyTransferProof(data []byte, amount, senderAfter, senderOld, recipientOld, recipientNew *Commitment) error
}

// Structural is the on-path, resource-bounded Verifier.
type Structural struct{}

func (Structural) ExtractAmountCommitment(data []byte) (Commitment, error) {
	return ExtractAmountCommitment(data)
}

func (Structural) VerifyTransferProof(data []byte, amount, senderAfter, senderOld, recipientOld, recipientNew *Commitment) error {
	return VerifyTransferProof(data, amount, senderAfter, senderOld, recipientOld, recipientNew)
}

// VerifyTransferProof runs the full structural pipeline:
//
//	decode -> range(amount) -> range(senderAfter) -> validity -> binding
//
// It is a pure function: same inputs, same verdict, no partial effects. The
// first error short-circuits. The final binding re-check guards against a
// caller pairing a valid proof with commitments it was not produced for.
func VerifyTransferProof(
	data []byte,
	amount, senderAfter, senderOld, recipientOld, recipientNew *Commitment,
) error {
	proof, err := Deserialize(data)
	if err != nil {
		return err
	}
	if err := VerifyRangeProof(&proof.AmountRange, amount); err != nil {
		return err
	}
	if err := VerifyRangeProof(&proof.SenderAfterRange, senderAfter); err != nil {
		return err
	}
	if err := VerifyValidityProof(&proof.Validity, senderOld, amount, senderAfter, recipientOld, recipientNew); err != nil {
		return err
	}
	if !proof.AmountRange.Commitment.Equal(amount) {
		return fmt.Errorf("%w: embedded amount commitment differs from supplied", ErrCommitmentMismatch)
	}
	if !proof.SenderAfterRange.Commitment.Equal(senderAfter) {
		return fmt.Errorf("%w: embedded sender-after commitment differs from supplied", ErrCommitmentMismatch)
	}
	return nil
}
