// internal/zk/pedersen/pedersen.go
package pedersen

import (
	"fmt"
	"io"
	"sync"

	"github.com/cloudflare/circl/group"
)

type Scalar = group.Scalar
type Element = group.Element

const pedersenDST = "veilpay/zk/pedersen"

var (
	gOnce sync.Once
	gElem Element
	hElem Element
	gErr  error
)

func Group() group.Group {
	return group.Ristretto255
}

// Generators returns the fixed commitment bases (G, H). Both are hashed to
// the curve so nobody knows a discrete-log relation between them.
func Generators() (Element, Element, error) {
	gOnce.Do(func() {
		g := Group().HashToElement([]byte("veilpay/zk/pedersen/g"), []byte(pedersenDST))
		h := Group().HashToElement([]byte("veilpay/zk/pedersen/h"), []byte(pedersenDST))
		if g.IsIdentity() {
			gErr = fmt.Errorf("pedersen g is identity")
			return
		}
		if h.IsIdentity() {
			gErr = fmt.Errorf("pedersen h is identity")
			return
		}
		if g.IsEqual(h) {
			gErr = fmt.Errorf("pedersen g == h")
			return
		}
		gElem = g
		hElem = h
	})
	if gErr != nil {
		return nil, nil, gErr
	}
	return gElem.Copy(), hElem.Copy(), nil
}

// Commitment is an ElGamal-style pair over ristretto255:
//
//	C = v*G + r*H   (the Pedersen commitment proper)
//	D = r*G         (the randomness handle)
//
// The 64-byte wire form is compress(C) || compress(D), matching the
// two-32-byte-halves layout the structural verifier treats as opaque.
type Commitment struct {
	C Element
	D Element
}

// Opening is the secret side of a commitment.
type Opening struct {
	Value uint64
	R     Scalar
}

// Commit commits to value with fresh randomness.
func Commit(value uint64, rnd io.Reader) (*Commitment, *Opening, error) {
	r := Group().RandomNonZeroScalar(rnd)
	c, err := CommitWith(value, r)
	if err != nil {
		return nil, nil, err
	}
	return c, &Opening{Value: value, R: r}, nil
}

// CommitWith commits to value with caller-supplied randomness.
func CommitWith(value uint64, r Scalar) (*Commitment, error) {
	if r == nil {
		return nil, fmt.Errorf("nil randomness")
	}
	g, h, err := Generators()
	if err != nil {
		return nil, err
	}
	v := Group().NewScalar().SetUint64(value)
	vg := Group().NewElement().Mul(g, v)
	rh := Group().NewElement().Mul(h, r)
	return &Commitment{
		C: Group().NewElement().Add(vg, rh),
		D: Group().NewElement().Mul(g, r),
	}, nil
}

// Bytes serializes the pair into the 64-byte wire form.
func (c *Commitment) Bytes() ([64]byte, error) {
	var out [64]byte
	cb, err := c.C.MarshalBinaryCompress()
	if err != nil {
		return out, fmt.Errorf("marshal C: %w", err)
	}
	db, err := c.D.MarshalBinaryCompress()
	if err != nil {
		return out, fmt.Errorf("marshal D: %w", err)
	}
	if len(cb) != 32 || len(db) != 32 {
		return out, fmt.Errorf("unexpected encoding lengths %d/%d", len(cb), len(db))
	}
	copy(out[:32], cb)
	copy(out[32:], db)
	return out, nil
}

// Parse decodes a 64-byte wire commitment. Both halves must be canonical
// ristretto encodings.
func Parse(b *[64]byte) (*Commitment, error) {
	c := Group().NewElement()
	if err := c.UnmarshalBinary(b[:32]); err != nil {
		return nil, fmt.Errorf("decode C: %w", err)
	}
	d := Group().NewElement()
	if err := d.UnmarshalBinary(b[32:]); err != nil {
		return nil, fmt.Errorf("decode D: %w", err)
	}
	return &Commitment{C: c, D: d}, nil
}

// Sub returns the component-wise difference c - o. Differences of
// commitments commit to differences of values under differenced randomness,
// which is what the transfer balance equations quantify over.
func (c *Commitment) Sub(o *Commitment) *Commitment {
	negC := Group().NewElement().Neg(o.C)
	negD := Group().NewElement().Neg(o.D)
	return &Commitment{
		C: Group().NewElement().Add(c.C, negC),
		D: Group().NewElement().Add(c.D, negD),
	}
}
