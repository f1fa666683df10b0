// internal/ledger/escrow.go
package ledger

import (
	"fmt"

	"veilpay/internal/zkproof"
)

// Escrow tracking is the one place the ledger sees plaintext amounts. An
// escrow holds the units backing an encrypted account; confidential
// transfers between funded accounts move escrow units alongside the
// commitment update so the pool stays solvent.

// FundEscrow locks plaintext units behind an account.
func (l *Ledger) FundEscrow(owner OwnerID, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.accounts[owner]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAccount, owner)
	}
	if amount < MinAmount || amount > MaxAmount {
		return fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	next, err := checkedAdd(l.escrows[owner], amount)
	if err != nil {
		return err
	}
	l.escrows[owner] = next
	return nil
}

// DrainEscrow releases locked units back to the owner. Only the owner may
// drain.
func (l *Ledger) DrainEscrow(caller, owner OwnerID, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.accounts[owner]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAccount, owner)
	}
	if caller != owner {
		return fmt.Errorf("%w: caller %s, owner %s", ErrUnauthorized, caller, owner)
	}
	if amount < MinAmount || amount > MaxAmount {
		return fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	next, err := checkedSub(l.escrows[owner], amount)
	if err != nil {
		return err
	}
	l.escrows[owner] = next
	return nil
}

// Escrow reports the units currently locked behind an account.
func (l *Ledger) Escrow(owner OwnerID) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.accounts[owner]; !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownAccount, owner)
	}
	return l.escrows[owner], nil
}

// TransferFunded is Transfer plus escrow movement: the declared plaintext
// amount moves from the sender's escrow to the recipient's, and the proof
// must verify before any of it happens. The declared amount is what the
// caller claims the amount commitment hides; the escrow check ensures the
// sender cannot move more units than they have locked, regardless of what
// the commitments encode. The escrow checks, proof verification, and both
// state updates run in one critical section: a concurrent drain cannot
// land between the precheck and the debit.
func (l *Ledger) TransferFunded(sender, recipient OwnerID, amount uint64, senderNew, recipientNew zkproof.Commitment, proof []byte) error {
	if amount < MinAmount || amount > MaxAmount {
		l.metrics.IncTransferDropBadRequest()
		return fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	held := l.escrows[sender]
	if held < amount {
		l.metrics.IncTransferDropInsufficient()
		return fmt.Errorf("%w: escrow %d, transfer %d", ErrInsufficientBalance, held, amount)
	}
	got, err := checkedAdd(l.escrows[recipient], amount)
	if err != nil {
		l.metrics.IncTransferDropBadRequest()
		return err
	}

	if err := l.transferLocked(sender, recipient, senderNew, recipientNew, proof); err != nil {
		return err
	}
	l.escrows[sender] = held - amount
	l.escrows[recipient] = got
	return nil
}

func checkedAdd(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
	}
	return sum, nil
}

func checkedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, fmt.Errorf("%w: %d - %d", ErrUnderflow, a, b)
	}
	return a - b, nil
}
