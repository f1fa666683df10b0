// internal/zk/equality/equality.go

// Package equality implements the Chaum-Pedersen style proof behind a
// transfer's balance equations. The statement is a commitment difference
// that should open to zero: when it does, the pair collapses to
//
//	P1 = w*H    P2 = w*G
//
// for w the difference of the blinding scalars, and the prover shows
// knowledge of one w consistent across both bases. Challenges come from the
// shared Fiat-Shamir transcript, so prover and verifier never interact.
package equality

import (
	"fmt"
	"io"

	"veilpay/internal/transcript"
	"veilpay/internal/zk/pedersen"
)

const equalityDST = "veilpay/zk/equality"

// Proof is (R1, R2, s) with R1 = k*H, R2 = k*G and s = k + c*w.
type Proof struct {
	R1 pedersen.Element
	R2 pedersen.Element
	S  pedersen.Scalar
}

// Prove shows that stmt opens to value zero, given the blinding difference w.
// ctx domain-separates proofs for different transfer legs.
func Prove(stmt *pedersen.Commitment, w pedersen.Scalar, ctx []byte, rnd io.Reader) (*Proof, error) {
	if stmt == nil || w == nil {
		return nil, fmt.Errorf("nil statement or witness")
	}
	g, h, err := pedersen.Generators()
	if err != nil {
		return nil, err
	}
	k := pedersen.Group().RandomNonZeroScalar(rnd)
	r1 := pedersen.Group().NewElement().Mul(h, k)
	r2 := pedersen.Group().NewElement().Mul(g, k)

	c, err := challenge(stmt, r1, r2, ctx)
	if err != nil {
		return nil, err
	}
	cw := pedersen.Group().NewScalar().Mul(c, w)
	s := pedersen.Group().NewScalar().Add(k, cw)
	return &Proof{R1: r1, R2: r2, S: s}, nil
}

// Verify checks s*H == R1 + c*P1 and s*G == R2 + c*P2.
func Verify(stmt *pedersen.Commitment, proof *Proof, ctx []byte) bool {
	if stmt == nil || proof == nil || proof.R1 == nil || proof.R2 == nil || proof.S == nil {
		return false
	}
	g, h, err := pedersen.Generators()
	if err != nil {
		return false
	}
	c, err := challenge(stmt, proof.R1, proof.R2, ctx)
	if err != nil {
		return false
	}

	sh := pedersen.Group().NewElement().Mul(h, proof.S)
	cp1 := pedersen.Group().NewElement().Mul(stmt.C, c)
	rhs1 := pedersen.Group().NewElement().Add(proof.R1, cp1)
	if !sh.IsEqual(rhs1) {
		return false
	}

	sg := pedersen.Group().NewElement().Mul(g, proof.S)
	cp2 := pedersen.Group().NewElement().Mul(stmt.D, c)
	rhs2 := pedersen.Group().NewElement().Add(proof.R2, cp2)
	return sg.IsEqual(rhs2)
}

// Encode packs the proof into the wire slots of an equality record:
// compress(R1) || compress(R2) into the 64-byte R field, s into the 32-byte
// scalar field.
func (p *Proof) Encode() (r [64]byte, s [32]byte, err error) {
	r1b, err := p.R1.MarshalBinaryCompress()
	if err != nil {
		return r, s, fmt.Errorf("marshal R1: %w", err)
	}
	r2b, err := p.R2.MarshalBinaryCompress()
	if err != nil {
		return r, s, fmt.Errorf("marshal R2: %w", err)
	}
	sb, err := p.S.MarshalBinary()
	if err != nil {
		return r, s, fmt.Errorf("marshal s: %w", err)
	}
	if len(r1b) != 32 || len(r2b) != 32 || len(sb) != 32 {
		return r, s, fmt.Errorf("unexpected encoding lengths %d/%d/%d", len(r1b), len(r2b), len(sb))
	}
	copy(r[:32], r1b)
	copy(r[32:], r2b)
	copy(s[:], sb)
	return r, s, nil
}

// Decode parses an equality record's wire slots back into a proof.
func Decode(r *[64]byte, s *[32]byte) (*Proof, error) {
	r1 := pedersen.Group().NewElement()
	if err := r1.UnmarshalBinary(r[:32]); err != nil {
		return nil, fmt.Errorf("decode R1: %w", err)
	}
	r2 := pedersen.Group().NewElement()
	if err := r2.UnmarshalBinary(r[32:]); err != nil {
		return nil, fmt.Errorf("decode R2: %w", err)
	}
	sc := pedersen.Group().NewScalar()
	if err := sc.UnmarshalBinary(s[:]); err != nil {
		return nil, fmt.Errorf("decode s: %w", err)
	}
	return &Proof{R1: r1, R2: r2, S: sc}, nil
}

func challenge(stmt *pedersen.Commitment, r1, r2 pedersen.Element, ctx []byte) (pedersen.Scalar, error) {
	tr := transcript.New([]byte(equalityDST))
	tr.AppendMessage([]byte("ctx"), ctx)
	for _, e := range []struct {
		label string
		elem  pedersen.Element
	}{
		{"P1", stmt.C}, {"P2", stmt.D}, {"R1", r1}, {"R2", r2},
	} {
		b, err := e.elem.MarshalBinaryCompress()
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", e.label, err)
		}
		tr.AppendMessage([]byte(e.label), b)
	}
	cb := tr.ChallengeScalar([]byte("c"))
	return pedersen.Group().HashToScalar(cb[:], []byte(equalityDST)), nil
}
