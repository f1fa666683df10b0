package zkalgebra

import (
	"crypto/rand"
	"errors"
	"testing"

	"veilpay/internal/zkproof"
)

func buildTransfer(t *testing.T) ([]byte, zkproof.Commitment, zkproof.Commitment, zkproof.Commitment, zkproof.Commitment, zkproof.Commitment) {
	t.Helper()
	w, err := NewTransferWitness(1000, 250, 40, rand.Reader)
	if err != nil {
		t.Fatalf("witness failed: %v", err)
	}
	amount, senderAfter, senderOld, recipientOld, recipientNew, err := w.Commitments()
	if err != nil {
		t.Fatalf("commitments failed: %v", err)
	}
	blob, err := w.BuildProof(rand.Reader)
	if err != nil {
		t.Fatalf("build proof failed: %v", err)
	}
	return blob, amount, senderAfter, senderOld, recipientOld, recipientNew
}

func TestAlgebraicVerifyOk(t *testing.T) {
	blob, amount, senderAfter, senderOld, recipientOld, recipientNew := buildTransfer(t)
	var v Verifier
	if err := v.VerifyTransferProof(blob, &amount, &senderAfter, &senderOld, &recipientOld, &recipientNew); err != nil {
		t.Fatalf("algebraic verify failed: %v", err)
	}
}

func TestBuiltProofPassesStructural(t *testing.T) {
	blob, amount, senderAfter, senderOld, recipientOld, recipientNew := buildTransfer(t)
	if err := zkproof.VerifyTransferProof(blob, &amount, &senderAfter, &senderOld, &recipientOld, &recipientNew); err != nil {
		t.Fatalf("structural verify failed: %v", err)
	}
	got, err := zkproof.ExtractAmountCommitment(blob)
	if err != nil || got != amount {
		t.Fatalf("extract: %v", err)
	}
}

func TestWrongAmountCommitmentFailsBalance(t *testing.T) {
	blob, _, senderAfter, senderOld, recipientOld, recipientNew := buildTransfer(t)

	// A different, validly encoded amount commitment: structure holds but
	// binding fails before algebra runs.
	w2, err := NewTransferWitness(1000, 250, 41, rand.Reader)
	if err != nil {
		t.Fatalf("witness failed: %v", err)
	}
	otherAmount, _, _, _, _, err := w2.Commitments()
	if err != nil {
		t.Fatalf("commitments failed: %v", err)
	}
	var v Verifier
	err = v.VerifyTransferProof(blob, &otherAmount, &senderAfter, &senderOld, &recipientOld, &recipientNew)
	if !errors.Is(err, zkproof.ErrCommitmentMismatch) {
		t.Fatalf("got %v, want ErrCommitmentMismatch", err)
	}
}

func TestSwappedRecipientFailsBalance(t *testing.T) {
	// Keep the blob and the bound commitments, swap the recipient's old and
	// new commitments: structure passes, the recipient leg equation breaks.
	blob, amount, senderAfter, senderOld, recipientOld, recipientNew := buildTransfer(t)
	var v Verifier
	err := v.VerifyTransferProof(blob, &amount, &senderAfter, &senderOld, &recipientNew, &recipientOld)
	if !errors.Is(err, zkproof.ErrBalanceEquationFailed) {
		t.Fatalf("got %v, want ErrBalanceEquationFailed", err)
	}
}

func TestNonCanonicalPointFails(t *testing.T) {
	blob, amount, senderAfter, senderOld, recipientOld, recipientNew := buildTransfer(t)
	// Clobber the A point of the amount range record with a non-canonical
	// encoding. Structural checks still pass (non-zero, distinct), the
	// algebraic decode does not.
	for i := 64; i < 128; i++ {
		blob[i] = 0xFF
	}
	var v Verifier
	err := v.VerifyTransferProof(blob, &amount, &senderAfter, &senderOld, &recipientOld, &recipientNew)
	if !errors.Is(err, zkproof.ErrInvalidPoint) {
		t.Fatalf("got %v, want ErrInvalidPoint", err)
	}
}

func TestTamperedEqualityScalarFails(t *testing.T) {
	blob, amount, senderAfter, senderOld, recipientOld, recipientNew := buildTransfer(t)
	// Flip a low bit of the sender equality proof's s scalar. Low bits keep
	// the scalar canonical, so decode succeeds and the equation fails.
	sOff := 2*(5*64+3*32+1) + 64
	blob[sOff] ^= 0x01
	var v Verifier
	err := v.VerifyTransferProof(blob, &amount, &senderAfter, &senderOld, &recipientOld, &recipientNew)
	if !errors.Is(err, zkproof.ErrBalanceEquationFailed) {
		t.Fatalf("got %v, want ErrBalanceEquationFailed", err)
	}
}

func TestWitnessBounds(t *testing.T) {
	if _, err := NewTransferWitness(10, 0, 0, rand.Reader); err == nil {
		t.Fatalf("zero amount accepted")
	}
	if _, err := NewTransferWitness(10, 0, 11, rand.Reader); err == nil {
		t.Fatalf("overdraw accepted")
	}
	if _, err := NewTransferWitness(^uint64(0), ^uint64(0), 1, rand.Reader); err == nil {
		t.Fatalf("recipient overflow accepted")
	}
}

func TestVerifierSatisfiesInterface(t *testing.T) {
	var _ zkproof.Verifier = Verifier{}
}
