// internal/zkproof/errors.go
package zkproof

import "errors"

// Verification failures are sentinel errors so callers can branch with
// errors.Is. Every failure path wraps one of these; the first failure aborts
// the whole pipeline.
var (
	ErrDeserializationFailed = errors.New("proof deserialization failed")
	ErrInvalidRangeProof     = errors.New("invalid range proof")
	ErrInvalidEqualityProof  = errors.New("invalid equality proof")
	ErrInvalidValidityProof  = errors.New("invalid validity proof")
	ErrInvalidCommitment     = errors.New("invalid commitment")
	ErrCommitmentMismatch    = errors.New("commitment mismatch")
	ErrInvalidPoint          = errors.New("invalid point encoding")
)

// Reserved for algebraic verifiers layered on top of the structural core
// (see internal/zkalgebra). The structural verifier never returns these.
var (
	ErrBalanceEquationFailed = errors.New("balance equation failed")
	ErrInvalidProofStructure = errors.New("invalid proof structure")
)
