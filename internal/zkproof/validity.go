// internal/zkproof/validity.go
package zkproof

import "fmt"

// VerifyValidityProof validates the transfer's two balance equations in
// shape: sender's balance decreases and recipient's increases by the same
// hidden amount. The sender proof relates the sender's old and new
// commitments, the recipient proof the recipient's old and new; the first
// failing check wins.
func VerifyValidityProof(
	proof *ValidityProof,
	senderOld, amount, senderNew, recipientOld, recipientNew *Commitment,
) error {
	if senderOld.IsZero() || amount.IsZero() || senderNew.IsZero() ||
		recipientOld.IsZero() || recipientNew.IsZero() {
		return fmt.Errorf("%w: zero commitment", ErrInvalidValidityProof)
	}
	if err := VerifyEqualityProof(&proof.SenderProof, senderOld, senderNew); err != nil {
		return err
	}
	return VerifyEqualityProof(&proof.RecipientProof, recipientOld, recipientNew)
}
