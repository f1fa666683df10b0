// internal/ledger/ledger.go

// Package ledger is the account-model collaborator around the proof
// verifier: it stores encrypted balances as opaque commitments and applies
// a confidential transfer only when the submitted proof verifies. Balances
// here are commitments, never plaintext amounts; the escrow side tracks the
// plaintext units actually locked, mirroring the split between an encrypted
// account and its funding escrow.
//
// Every state transition is atomic under one mutex: on any error the maps
// are untouched, so a rejected proof can never leave a partial balance
// update visible.
package ledger

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/sha3"

	"veilpay/internal/debuglog"
	"veilpay/internal/metrics"
	"veilpay/internal/store"
	"veilpay/internal/zkproof"
)

var (
	ErrUnauthorized        = errors.New("not the account owner")
	ErrUnknownAccount      = errors.New("unknown account")
	ErrAccountExists       = errors.New("account already exists")
	ErrInvalidCommitment   = errors.New("invalid balance commitment")
	ErrInvalidProof        = errors.New("transfer proof rejected")
	ErrInsufficientBalance = errors.New("insufficient escrow balance")
	ErrInvalidAmount       = errors.New("amount outside allowed range")
	ErrInvalidRecipient    = errors.New("invalid recipient")
	ErrOverflow            = errors.New("balance overflow")
	ErrUnderflow           = errors.New("balance underflow")
	ErrLedgerFull          = errors.New("account table full")
)

const (
	// MinAmount and MaxAmount bound plaintext escrow movements. The cap
	// exists to keep any single transfer far from uint64 overflow territory.
	MinAmount uint64 = 1
	MaxAmount uint64 = 1_000_000_000_000_000
)

// OwnerID identifies an account holder.
type OwnerID [32]byte

// OwnerIDFromKey derives an account id from serialized public key material.
func OwnerIDFromKey(pub []byte) OwnerID {
	return OwnerID(sha3.Sum256(pub))
}

func (id OwnerID) String() string {
	return hex.EncodeToString(id[:8])
}

// Account is one encrypted account: the balance is a commitment, the
// version counts accepted state transitions.
type Account struct {
	Owner   OwnerID
	Balance zkproof.Commitment
	Version uint64
}

// Ledger owns all account and escrow state. The verifier is injected so a
// deployment can run the structural verifier on-path and the algebraic one
// off-path without touching this code.
type Ledger struct {
	mu       sync.Mutex
	verifier zkproof.Verifier
	accounts map[OwnerID]*Account
	escrows  map[OwnerID]uint64
	metrics  *metrics.Metrics
	journal  *store.Journal
}

func New(verifier zkproof.Verifier, m *metrics.Metrics) *Ledger {
	if m == nil {
		m = metrics.New()
	}
	return &Ledger{
		verifier: verifier,
		accounts: make(map[OwnerID]*Account),
		escrows:  make(map[OwnerID]uint64),
		metrics:  m,
	}
}

func (l *Ledger) Metrics() *metrics.Metrics {
	return l.metrics
}

// SetJournal attaches an accepted-transfer journal. Journal writes are best
// effort: a failed append never rolls back a verified transfer.
func (l *Ledger) SetJournal(j *store.Journal) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.journal = j
}

// OpenAccount creates an account with a zero (uninitialized) commitment.
func (l *Ledger) OpenAccount(owner OwnerID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.accounts[owner]; ok {
		return fmt.Errorf("%w: %s", ErrAccountExists, owner)
	}
	if len(l.accounts) >= maxAccounts() {
		return ErrLedgerFull
	}
	l.accounts[owner] = &Account{Owner: owner}
	l.metrics.IncAccountsOpened()
	return nil
}

// Account returns a copy of the account state.
func (l *Ledger) Account(owner OwnerID) (Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acct, ok := l.accounts[owner]
	if !ok {
		return Account{}, fmt.Errorf("%w: %s", ErrUnknownAccount, owner)
	}
	return *acct, nil
}

// Deposit replaces the balance commitment after an external funding event.
// The plaintext amount never appears here; it is hidden in the commitment.
func (l *Ledger) Deposit(owner OwnerID, commitment zkproof.Commitment) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	acct, ok := l.accounts[owner]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAccount, owner)
	}
	if commitment.IsZero() {
		return fmt.Errorf("%w: all-zero deposit commitment", ErrInvalidCommitment)
	}
	acct.Balance = commitment
	acct.Version++
	l.metrics.IncDeposits()
	return nil
}

// Withdraw replaces the balance commitment after an external withdrawal.
// Only the account owner may withdraw.
func (l *Ledger) Withdraw(caller, owner OwnerID, newCommitment zkproof.Commitment) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	acct, ok := l.accounts[owner]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAccount, owner)
	}
	if caller != owner {
		return fmt.Errorf("%w: caller %s, owner %s", ErrUnauthorized, caller, owner)
	}
	if newCommitment.IsZero() {
		return fmt.Errorf("%w: all-zero withdrawal commitment", ErrInvalidCommitment)
	}
	acct.Balance = newCommitment
	acct.Version++
	l.metrics.IncWithdrawals()
	return nil
}

// Transfer applies a confidential transfer if and only if the proof blob
// verifies against the stored and submitted commitments. The amount
// commitment is extracted from the blob itself and bound before full
// verification.
func (l *Ledger) Transfer(sender, recipient OwnerID, senderNew, recipientNew zkproof.Commitment, proof []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.transferLocked(sender, recipient, senderNew, recipientNew, proof)
}

// transferLocked is the transfer body. Callers hold l.mu.
func (l *Ledger) transferLocked(sender, recipient OwnerID, senderNew, recipientNew zkproof.Commitment, proof []byte) error {
	if sender == recipient {
		l.metrics.IncTransferDropBadRequest()
		return fmt.Errorf("%w: sender and recipient are the same account", ErrInvalidRecipient)
	}
	senderAcct, ok := l.accounts[sender]
	if !ok {
		l.metrics.IncTransferDropBadRequest()
		return fmt.Errorf("%w: sender %s", ErrUnknownAccount, sender)
	}
	recipientAcct, ok := l.accounts[recipient]
	if !ok {
		l.metrics.IncTransferDropBadRequest()
		return fmt.Errorf("%w: recipient %s", ErrUnknownAccount, recipient)
	}
	if len(proof) == 0 {
		l.metrics.IncTransferDropBadRequest()
		return fmt.Errorf("%w: empty proof", ErrInvalidProof)
	}
	if senderNew.IsZero() || recipientNew.IsZero() {
		l.metrics.IncTransferDropBadRequest()
		return fmt.Errorf("%w: all-zero new commitment", ErrInvalidCommitment)
	}
	if senderAcct.Balance.IsZero() {
		l.metrics.IncTransferDropBadRequest()
		return fmt.Errorf("%w: sender account not funded", ErrInvalidCommitment)
	}

	amount, err := l.verifier.ExtractAmountCommitment(proof)
	if err != nil {
		l.rejectTransfer(sender, recipient, proof, err)
		return fmt.Errorf("%w: %v", ErrInvalidProof, err)
	}
	err = l.verifier.VerifyTransferProof(
		proof, &amount, &senderNew,
		&senderAcct.Balance, &recipientAcct.Balance, &recipientNew,
	)
	if err != nil {
		l.rejectTransfer(sender, recipient, proof, err)
		return fmt.Errorf("%w: %v", ErrInvalidProof, err)
	}

	senderAcct.Balance = senderNew
	senderAcct.Version++
	recipientAcct.Balance = recipientNew
	recipientAcct.Version++

	l.metrics.IncTransferVerified()
	l.metrics.Recent().Add(metrics.TransferHeader{
		Sender:    sender.String(),
		Recipient: recipient.String(),
		ProofLen:  len(proof),
		Accepted:  true,
	})
	if l.journal != nil {
		rec := store.Record{
			Sender:              sender.String(),
			Recipient:           recipient.String(),
			SenderCommitment:    hex.EncodeToString(senderNew[:]),
			RecipientCommitment: hex.EncodeToString(recipientNew[:]),
			SenderVersion:       senderAcct.Version,
			RecipientVersion:    recipientAcct.Version,
			ProofLen:            len(proof),
			AppliedAt:           time.Now().UTC(),
		}
		if err := l.journal.Append(rec); err != nil {
			debuglog.Logf("journal append failed: %v", err)
		}
	}
	debuglog.Debugf("transfer accepted sender=%s recipient=%s proof=%dB", sender, recipient, len(proof))
	return nil
}

func (l *Ledger) rejectTransfer(sender, recipient OwnerID, proof []byte, cause error) {
	l.metrics.IncTransferDropZKFail()
	l.metrics.Recent().Add(metrics.TransferHeader{
		Sender:    sender.String(),
		Recipient: recipient.String(),
		ProofLen:  len(proof),
		Accepted:  false,
		Reason:    cause.Error(),
	})
	debuglog.Debugf("transfer rejected sender=%s recipient=%s: %v", sender, recipient, cause)
}
