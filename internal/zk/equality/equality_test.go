package equality

import (
	"crypto/rand"
	"testing"

	"veilpay/internal/zk/pedersen"
)

// zeroStatement builds a commitment difference that opens to zero and
// returns it with its blinding-difference witness.
func zeroStatement(t *testing.T, value uint64) (*pedersen.Commitment, pedersen.Scalar) {
	t.Helper()
	a, oa, err := pedersen.Commit(value, rand.Reader)
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	b, ob, err := pedersen.Commit(value, rand.Reader)
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	w := pedersen.Group().NewScalar().Sub(oa.R, ob.R)
	return a.Sub(b), w
}

func TestProveVerify(t *testing.T) {
	stmt, w := zeroStatement(t, 500)
	ctx := []byte("leg-sender")
	proof, err := Prove(stmt, w, ctx, rand.Reader)
	if err != nil {
		t.Fatalf("prove failed: %v", err)
	}
	if !Verify(stmt, proof, ctx) {
		t.Fatalf("verify failed")
	}
}

func TestVerifyWrongContextFails(t *testing.T) {
	stmt, w := zeroStatement(t, 7)
	proof, err := Prove(stmt, w, []byte("ctx-a"), rand.Reader)
	if err != nil {
		t.Fatalf("prove failed: %v", err)
	}
	if Verify(stmt, proof, []byte("ctx-b")) {
		t.Fatalf("expected verify to fail with wrong ctx")
	}
}

func TestNonZeroDifferenceFails(t *testing.T) {
	// Values differ: the statement does not open to zero, so the claimed
	// witness relation breaks on the C component.
	a, oa, err := pedersen.Commit(10, rand.Reader)
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	b, ob, err := pedersen.Commit(11, rand.Reader)
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	stmt := a.Sub(b)
	w := pedersen.Group().NewScalar().Sub(oa.R, ob.R)
	proof, err := Prove(stmt, w, []byte("ctx"), rand.Reader)
	if err != nil {
		t.Fatalf("prove failed: %v", err)
	}
	if Verify(stmt, proof, []byte("ctx")) {
		t.Fatalf("expected verify to fail for non-zero value difference")
	}
}

func TestTamperedProofFails(t *testing.T) {
	stmt, w := zeroStatement(t, 123)
	ctx := []byte("ctx-tamper")
	proof, err := Prove(stmt, w, ctx, rand.Reader)
	if err != nil {
		t.Fatalf("prove failed: %v", err)
	}
	proof.S = pedersen.Group().NewScalar().Add(proof.S, pedersen.Group().NewScalar().SetUint64(1))
	if Verify(stmt, proof, ctx) {
		t.Fatalf("expected verify to fail after tampering s")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	stmt, w := zeroStatement(t, 77)
	ctx := []byte("ctx-codec")
	proof, err := Prove(stmt, w, ctx, rand.Reader)
	if err != nil {
		t.Fatalf("prove failed: %v", err)
	}
	r, s, err := proof.Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := Decode(&r, &s)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !Verify(stmt, decoded, ctx) {
		t.Fatalf("decoded proof does not verify")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	var r [64]byte
	var s [32]byte
	for i := range r {
		r[i] = 0xFF
	}
	if _, err := Decode(&r, &s); err == nil {
		t.Fatalf("expected decode to reject non-canonical point")
	}
}
