// internal/zkproof/types.go
package zkproof

import "crypto/subtle"

// Point is a 64-byte curve point encoding: two 32-byte halves of a hidden
// point. This package never interprets the halves algebraically; it only
// checks non-triviality and equality. Decoding into real group elements is
// the algebraic layer's job.
type Point [64]byte

// Commitment is a Pedersen commitment to a hidden balance or amount, in
// Point encoding. Commitments are externally owned: this package compares
// them but never constructs or mutates one.
type Commitment = Point

// Scalar is a 32-byte scalar encoding.
type Scalar [32]byte

// IsZero reports whether every byte is zero. An all-zero encoding never
// appears in a genuine proof, so it marks uninitialized or dummy data.
func (p *Point) IsZero() bool {
	var zero [64]byte
	return subtle.ConstantTimeCompare(p[:], zero[:]) == 1
}

// Equal compares two points in constant time with respect to their content.
func (p *Point) Equal(q *Point) bool {
	return subtle.ConstantTimeCompare(p[:], q[:]) == 1
}

func (s *Scalar) IsZero() bool {
	var zero [32]byte
	return subtle.ConstantTimeCompare(s[:], zero[:]) == 1
}

func (s *Scalar) Equal(t *Scalar) bool {
	return subtle.ConstantTimeCompare(s[:], t[:]) == 1
}

// InnerProduct is the slot for the bulletproof inner-product argument. The
// codec leaves it at its zero value and no validator ever inspects it: the
// multi-scalar-multiplication checks it backs are delegated to an off-path
// verifier. It exists so a future algebraic layer can populate and check it
// without changing the wire contract.
type InnerProduct struct {
	L []Point
	R []Point
	A Scalar
	B Scalar
}

// RangeProof is one bulletproof-shaped range record: the committed value is
// claimed to lie in [0, 2^N).
type RangeProof struct {
	Commitment   Commitment
	A            Point
	S            Point
	T1           Point
	T2           Point
	Taux         Scalar
	Mu           Scalar
	T            Scalar
	InnerProduct InnerProduct
	N            uint8
}

// EqualityProof is a Schnorr-style proof relating two commitments by a
// hidden difference.
type EqualityProof struct {
	R Point
	S Scalar
}

// ValidityProof binds the transfer's balance equations: the sender proof
// covers old-balance minus new-balance, the recipient proof covers
// new-balance minus old-balance, both against the hidden amount.
type ValidityProof struct {
	SenderProof    EqualityProof
	RecipientProof EqualityProof
}

// TransferProof is the complete composite proof for one confidential
// transfer. All records are parsed fresh from the wire per verification
// call; nothing persists across calls.
type TransferProof struct {
	AmountRange      RangeProof
	SenderAfterRange RangeProof
	Validity         ValidityProof
}
