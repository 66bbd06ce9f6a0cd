package ports

import (
	"context"
	"time"

	"digital-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository defines persistence operations for the user directory.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context, params UserListParams) ([]domain.User, int64, error)
	GetStats(ctx context.Context) (*UserStats, error)
}

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic
// locking; every balance write happens under such a lock.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*domain.Wallet, error)
	GetByOwnerIDForUpdate(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance domain.Money, updatedAt time.Time) error
	SetBlocked(ctx context.Context, walletID uuid.UUID, blocked bool) error
	List(ctx context.Context, params WalletListParams) ([]domain.Wallet, int64, error)
}

// TransactionRepository defines persistence operations for the append-only
// transaction ledger. Records are inserted inside the same database
// transaction as the wallet mutation they describe and never updated.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	// Reporting queries
	List(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
	ListAgentCommissions(ctx context.Context, agentID uuid.UUID, params CommissionListParams) ([]domain.Transaction, int64, domain.Money, error)
	GetStats(ctx context.Context, params StatsParams) (*TransactionStats, error)
}

// TransactionListParams holds filter + pagination for listing transactions.
type TransactionListParams struct {
	ParticipantID *uuid.UUID // Matches source, dest or initiator
	Kind          *domain.TransactionKind
	Status        *domain.TransactionStatus
	From          *int64 // Unix timestamp
	To            *int64 // Unix timestamp
	Page          int
	PageSize      int
}

// CommissionListParams holds filter + pagination for an agent's commission
// history.
type CommissionListParams struct {
	From     *int64 // Unix timestamp
	To       *int64 // Unix timestamp
	Page     int
	PageSize int
}

// StatsParams bounds the aggregate statistics window.
type StatsParams struct {
	From *int64 // Unix timestamp
	To   *int64 // Unix timestamp
}

// TransactionStats holds aggregated ledger statistics.
type TransactionStats struct {
	TotalTransactions int64
	Pending           int64
	Completed         int64
	Failed            int64
	Reversed          int64
	TotalAmount       domain.Money
	TotalFees         domain.Money
	TotalCommissions  domain.Money
}

// UserListParams holds filter + pagination for listing users.
type UserListParams struct {
	Role       *domain.Role
	IsActive   *bool
	IsApproved *bool
	Page       int
	PageSize   int
}

// UserStats holds aggregated user directory counts.
type UserStats struct {
	TotalUsers     int64
	TotalAgents    int64
	ActiveUsers    int64
	ActiveAgents   int64
	ApprovedAgents int64
	BlockedUsers   int64
}

// WalletListParams holds pagination for the admin wallet listing.
type WalletListParams struct {
	Page     int
	PageSize int
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
