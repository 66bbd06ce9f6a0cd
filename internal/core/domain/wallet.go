package domain

import (
	"time"

	"digital-wallet/pkg/apperror"

	"github.com/google/uuid"
)

// Wallet holds one user's balance. There is exactly one wallet per user and
// its balance is never negative. All mutation goes through Credit, Debit and
// SetBlocked so the invariant is enforced in one place; the ledger service
// applies these under a row lock and persists the result together with the
// transaction record.
type Wallet struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Balance   Money     `json:"balance"`
	IsBlocked bool      `json:"is_blocked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewWallet creates a wallet for a user with the policy-defined starting
// balance.
func NewWallet(ownerID uuid.UUID, startingBalance Money) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Balance:   startingBalance,
		IsBlocked: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CanDebit reports whether the wallet can afford a debit of amount.
// A blocked wallet can never be debited.
func (w *Wallet) CanDebit(amount Money) bool {
	if w.IsBlocked {
		return false
	}
	return w.Balance >= amount
}

// Credit adds amount to the balance. Block semantics differ per operation
// type, so the blocked check on credits is made by the ledger service.
func (w *Wallet) Credit(amount Money) error {
	if !amount.IsPositive() {
		return apperror.ErrInvalidAmount()
	}
	newBalance, err := w.Balance.Add(amount)
	if err != nil {
		return err
	}
	w.Balance = newBalance
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// Debit removes amount from the balance, failing if the wallet is blocked or
// the balance would go negative.
func (w *Wallet) Debit(amount Money) error {
	if !amount.IsPositive() {
		return apperror.ErrInvalidAmount()
	}
	if !w.CanDebit(amount) {
		return apperror.ErrInsufficientFunds()
	}
	newBalance, err := w.Balance.Sub(amount)
	if err != nil {
		return err
	}
	w.Balance = newBalance
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// SetBlocked toggles the block flag. No effect on balance.
func (w *Wallet) SetBlocked(blocked bool) {
	w.IsBlocked = blocked
	w.UpdatedAt = time.Now().UTC()
}
