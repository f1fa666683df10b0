package transcript

import (
	"bytes"
	"testing"
)

func TestChallengeDeterministic(t *testing.T) {
	var point [64]byte
	for i := range point {
		point[i] = byte(i + 1)
	}

	build := func() [32]byte {
		tr := New(RangeProofDomain(64, 1))
		tr.AppendPoint([]byte("V"), &point)
		return tr.ChallengeScalar([]byte("y"))
	}
	a := build()
	b := build()
	if a != b {
		t.Fatalf("identical transcripts produced different challenges")
	}
	if a == ([32]byte{}) {
		t.Fatalf("challenge is all zero")
	}
}

func TestChallengeChaining(t *testing.T) {
	tr1 := New([]byte("chain"))
	tr2 := New([]byte("chain"))

	c1 := tr1.ChallengeScalar([]byte("a"))
	c2 := tr2.ChallengeScalar([]byte("a"))
	if c1 != c2 {
		t.Fatalf("first challenge mismatch")
	}

	// Second challenge must depend on the first digest being in the log.
	d1 := tr1.ChallengeScalar([]byte("b"))
	fresh := New([]byte("chain"))
	dFresh := fresh.ChallengeScalar([]byte("b"))
	if d1 == dFresh {
		t.Fatalf("challenge does not depend on prior challenge")
	}
}

func TestAppendOrderMatters(t *testing.T) {
	var p, q [64]byte
	p[0] = 1
	q[0] = 2

	tr1 := New([]byte("order"))
	tr1.AppendPoint([]byte("A"), &p)
	tr1.AppendPoint([]byte("B"), &q)

	tr2 := New([]byte("order"))
	tr2.AppendPoint([]byte("B"), &q)
	tr2.AppendPoint([]byte("A"), &p)

	if tr1.ChallengeScalar([]byte("x")) == tr2.ChallengeScalar([]byte("x")) {
		t.Fatalf("append order did not affect challenge")
	}
}

func TestLabelLengthFraming(t *testing.T) {
	// ("ab","c") vs ("a","bc") must hash differently: lengths are framed.
	tr1 := New([]byte("frame"))
	tr1.AppendMessage([]byte("ab"), []byte("c"))
	tr2 := New([]byte("frame"))
	tr2.AppendMessage([]byte("a"), []byte("bc"))
	if tr1.ChallengeScalar([]byte("x")) == tr2.ChallengeScalar([]byte("x")) {
		t.Fatalf("length framing missing")
	}
}

func TestDomainSeparation(t *testing.T) {
	tr1 := New(RangeProofDomain(64, 1))
	tr2 := New(RangeProofDomain(32, 1))
	if tr1.ChallengeScalar([]byte("y")) == tr2.ChallengeScalar([]byte("y")) {
		t.Fatalf("domains share a challenge stream")
	}
}

func TestChallengeBytes(t *testing.T) {
	tr := New([]byte("bytes"))
	short := tr.ChallengeBytes([]byte("c"), 16)
	if len(short) != 16 {
		t.Fatalf("got %d bytes, want 16", len(short))
	}

	// Same schedule as ChallengeScalar: prefixes must agree.
	tr2 := New([]byte("bytes"))
	full := tr2.ChallengeScalar([]byte("c"))
	if !bytes.Equal(short, full[:16]) {
		t.Fatalf("ChallengeBytes prefix disagrees with ChallengeScalar")
	}

	over := New([]byte("bytes")).ChallengeBytes([]byte("c"), 100)
	if len(over) != 32 {
		t.Fatalf("oversized request returned %d bytes, want 32", len(over))
	}
}

func TestRangeProofDomain(t *testing.T) {
	d := RangeProofDomain(64, 1)
	want := append([]byte("rangeproof"), 64, 1)
	if !bytes.Equal(d, want) {
		t.Fatalf("domain = %x, want %x", d, want)
	}
}
