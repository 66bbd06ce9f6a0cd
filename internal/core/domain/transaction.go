package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionKind represents the kind of money movement.
type TransactionKind string

const (
	TransactionKindDeposit  TransactionKind = "deposit"
	TransactionKindWithdraw TransactionKind = "withdraw"
	TransactionKindTransfer TransactionKind = "transfer"
	TransactionKindCashIn   TransactionKind = "cash-in"
	TransactionKindCashOut  TransactionKind = "cash-out"
)

// TransactionStatus represents the lifecycle state of a transaction.
// Operations resolve synchronously, so every created record is completed;
// pending, failed and reversed are reachable states of the type reserved for
// future async and reversal flows.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusReversed  TransactionStatus = "reversed"
)

// Transaction is the immutable record of one balance-affecting event. It is
// written in the same storage transaction as the wallet mutation it describes
// and is never updated or deleted afterwards.
type Transaction struct {
	ID             uuid.UUID         `json:"id"`
	Kind           TransactionKind   `json:"kind"`
	Amount         Money             `json:"amount"` // Principal moved, always positive
	Fee            Money             `json:"fee"`
	Commission     Money             `json:"commission"`
	SourceWalletID uuid.UUID         `json:"source_wallet_id"`
	DestWalletID   *uuid.UUID        `json:"dest_wallet_id,omitempty"`
	SourceUserID   uuid.UUID         `json:"source_user_id"`
	DestUserID     *uuid.UUID        `json:"dest_user_id,omitempty"`
	InitiatedBy    uuid.UUID         `json:"initiated_by"` // May differ from source/dest, e.g. an agent
	Status         TransactionStatus `json:"status"`
	Description    string            `json:"description"`
	CreatedAt      time.Time         `json:"created_at"`
}

// KindRequiresDest reports whether a kind involves a destination party.
func KindRequiresDest(kind TransactionKind) bool {
	switch kind {
	case TransactionKindTransfer, TransactionKindCashIn, TransactionKindCashOut:
		return true
	}
	return false
}

// IsAgentOperation returns true for agent-mediated cash movements, the only
// kinds that carry a commission.
func (t *Transaction) IsAgentOperation() bool {
	return t.Kind == TransactionKindCashIn || t.Kind == TransactionKindCashOut
}

// SignedAmountFor returns the effect of this transaction on the given
// wallet's balance, including the fee charged to the source. Used by
// reconciliation checks.
func (t *Transaction) SignedAmountFor(walletID uuid.UUID) Money {
	switch t.Kind {
	case TransactionKindDeposit, TransactionKindCashIn:
		if t.SourceWalletID == walletID {
			return t.Amount
		}
	case TransactionKindWithdraw, TransactionKindCashOut:
		if t.SourceWalletID == walletID {
			return -t.Amount
		}
	case TransactionKindTransfer:
		if t.SourceWalletID == walletID {
			return -(t.Amount + t.Fee)
		}
		if t.DestWalletID != nil && *t.DestWalletID == walletID {
			return t.Amount
		}
	}
	return 0
}
