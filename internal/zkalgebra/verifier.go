// internal/zkalgebra/verifier.go

// Package zkalgebra is the off-path implementation of the zkproof.Verifier
// capability. It runs the full structural pipeline first, then decodes every
// 64-byte slot into ristretto255 group elements and checks the transfer's
// two balance equations algebraically with Chaum-Pedersen equality proofs:
//
//	senderOld - senderAfter - amount    opens to zero
//	recipientNew - recipientOld - amount opens to zero
//
// The bulletproof inner-product argument is still not evaluated; range
// records are checked for decodable points only. Deployments wanting range
// soundness need a real bulletproof backend behind the same interface.
package zkalgebra

import (
	"fmt"

	"veilpay/internal/zk/equality"
	"veilpay/internal/zk/pedersen"
	"veilpay/internal/zkproof"
)

const (
	senderLegCtx    = "veilpay/transfer/sender"
	recipientLegCtx = "veilpay/transfer/recipient"
)

// Verifier implements zkproof.Verifier with real curve arithmetic. It is
// not bound by the on-path stack budget and must not be run there.
type Verifier struct{}

func (Verifier) ExtractAmountCommitment(data []byte) (zkproof.Commitment, error) {
	return zkproof.ExtractAmountCommitment(data)
}

func (Verifier) VerifyTransferProof(
	data []byte,
	amount, senderAfter, senderOld, recipientOld, recipientNew *zkproof.Commitment,
) error {
	if err := zkproof.VerifyTransferProof(data, amount, senderAfter, senderOld, recipientOld, recipientNew); err != nil {
		return err
	}
	proof, err := zkproof.Deserialize(data)
	if err != nil {
		return err
	}

	amountC, err := parseCommitment("amount", amount)
	if err != nil {
		return err
	}
	senderAfterC, err := parseCommitment("sender-after", senderAfter)
	if err != nil {
		return err
	}
	senderOldC, err := parseCommitment("sender-old", senderOld)
	if err != nil {
		return err
	}
	recipientOldC, err := parseCommitment("recipient-old", recipientOld)
	if err != nil {
		return err
	}
	recipientNewC, err := parseCommitment("recipient-new", recipientNew)
	if err != nil {
		return err
	}

	for _, rec := range []struct {
		name string
		r    *zkproof.RangeProof
	}{
		{"amount range", &proof.AmountRange},
		{"sender-after range", &proof.SenderAfterRange},
	} {
		for _, pt := range []struct {
			name string
			p    *zkproof.Point
		}{
			{"A", &rec.r.A}, {"S", &rec.r.S}, {"T1", &rec.r.T1}, {"T2", &rec.r.T2},
		} {
			if _, err := pedersen.Parse((*[64]byte)(pt.p)); err != nil {
				return fmt.Errorf("%w: %s %s: %v", zkproof.ErrInvalidPoint, rec.name, pt.name, err)
			}
		}
	}

	senderStmt := senderOldC.Sub(senderAfterC).Sub(amountC)
	if err := verifyLeg("sender", &proof.Validity.SenderProof, senderStmt, []byte(senderLegCtx)); err != nil {
		return err
	}
	recipientStmt := recipientNewC.Sub(recipientOldC).Sub(amountC)
	return verifyLeg("recipient", &proof.Validity.RecipientProof, recipientStmt, []byte(recipientLegCtx))
}

func verifyLeg(name string, rec *zkproof.EqualityProof, stmt *pedersen.Commitment, ctx []byte) error {
	pf, err := equality.Decode((*[64]byte)(&rec.R), (*[32]byte)(&rec.S))
	if err != nil {
		return fmt.Errorf("%w: %s equality record: %v", zkproof.ErrInvalidPoint, name, err)
	}
	if !equality.Verify(stmt, pf, ctx) {
		return fmt.Errorf("%w: %s leg", zkproof.ErrBalanceEquationFailed, name)
	}
	return nil
}

func parseCommitment(name string, c *zkproof.Commitment) (*pedersen.Commitment, error) {
	parsed, err := pedersen.Parse((*[64]byte)(c))
	if err != nil {
		return nil, fmt.Errorf("%w: %s commitment: %v", zkproof.ErrInvalidPoint, name, err)
	}
	return parsed, nil
}
