package pedersen

import (
	"crypto/rand"
	"testing"
)

func TestCommitDeterministicWithR(t *testing.T) {
	r := Group().NewScalar().SetUint64(7)
	c1, err := CommitWith(42, r)
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	c2, err := CommitWith(42, r)
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if !c1.C.IsEqual(c2.C) || !c1.D.IsEqual(c2.D) {
		t.Fatalf("same value and randomness gave different commitments")
	}
}

func TestCommitHiding(t *testing.T) {
	c1, _, err := Commit(100, rand.Reader)
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	c2, _, err := Commit(100, rand.Reader)
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if c1.C.IsEqual(c2.C) {
		t.Fatalf("fresh randomness produced identical commitments")
	}
}

func TestBytesRoundTrip(t *testing.T) {
	c, _, err := Commit(9999, rand.Reader)
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	b, err := c.Bytes()
	if err != nil {
		t.Fatalf("bytes failed: %v", err)
	}
	if b == ([64]byte{}) {
		t.Fatalf("wire form all zero")
	}
	parsed, err := Parse(&b)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !parsed.C.IsEqual(c.C) || !parsed.D.IsEqual(c.D) {
		t.Fatalf("round trip changed commitment")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	var b [64]byte
	for i := range b {
		b[i] = 0xFF
	}
	if _, err := Parse(&b); err == nil {
		t.Fatalf("expected parse to reject non-canonical encoding")
	}
}

func TestSubHomomorphism(t *testing.T) {
	// commit(a) - commit(b) must equal a commitment to a-b under r_a - r_b.
	ca, oa, err := Commit(300, rand.Reader)
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	cb, ob, err := Commit(120, rand.Reader)
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	diff := ca.Sub(cb)

	rDiff := Group().NewScalar().Sub(oa.R, ob.R)
	want, err := CommitWith(180, rDiff)
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if !diff.C.IsEqual(want.C) || !diff.D.IsEqual(want.D) {
		t.Fatalf("difference does not open to value difference")
	}
}
