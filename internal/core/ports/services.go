package ports

import (
	"context"
	"time"

	"digital-wallet/internal/core/domain"

	"github.com/google/uuid"
)

// LedgerService is the core of the system: every user-facing balance
// operation. Each call is a single atomic unit of wallet mutation plus
// transaction record; on any failure nothing is committed.
type LedgerService interface {
	AddMoney(ctx context.Context, userID uuid.UUID, amount domain.Money) (*domain.Wallet, *domain.Transaction, error)
	WithdrawMoney(ctx context.Context, userID uuid.UUID, amount domain.Money) (*domain.Wallet, *domain.Transaction, error)
	SendMoney(ctx context.Context, fromUserID, toUserID uuid.UUID, amount domain.Money) (*domain.Wallet, *domain.Transaction, error)
	CashIn(ctx context.Context, agentID, userID uuid.UUID, amount domain.Money) (*domain.Wallet, *domain.Transaction, error)
	CashOut(ctx context.Context, agentID, userID uuid.UUID, amount domain.Money) (*domain.Wallet, *domain.Transaction, error)
	GetWallet(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
}

// ReportingService defines the read-only views over the transaction store.
// Reads tolerate concurrent writers and may be slightly stale.
type ReportingService interface {
	ListTransactions(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
	AgentCommissions(ctx context.Context, agentID uuid.UUID, params CommissionListParams) (*CommissionReport, error)
	GetStats(ctx context.Context, period string) (*TransactionStats, error)
	ListWallets(ctx context.Context, params WalletListParams) ([]domain.Wallet, int64, error)
}

// CommissionReport is an agent's commission history plus the summed total.
type CommissionReport struct {
	Transactions    []domain.Transaction
	Total           int64
	TotalCommission domain.Money
}

// AuthService defines registration and login.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, time.Time, error) // token, expiry, error
}

// RegisterRequest holds validated input for account creation.
type RegisterRequest struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Role     domain.Role // user or agent; admins are seeded out of band
}

// AdminService defines administrative directory and wallet controls.
type AdminService interface {
	ListUsers(ctx context.Context, params UserListParams) ([]domain.User, int64, error)
	GetUserStats(ctx context.Context) (*UserStats, error)
	ToggleUserActive(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	ToggleAgentApproval(ctx context.Context, agentID uuid.UUID) (*domain.User, error)
	ToggleWalletBlock(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(userID uuid.UUID, role domain.Role) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID uuid.UUID
	Role   domain.Role
}

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// WalletCache is the Redis-layer read cache for wallet lookups. It is
// invalidated after every balance mutation; a miss falls through to storage.
type WalletCache interface {
	Get(ctx context.Context, ownerID uuid.UUID) (*domain.Wallet, error) // nil, nil on miss
	Set(ctx context.Context, wallet *domain.Wallet, ttl time.Duration) error
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
}

// HealthChecker reports connectivity of an external dependency.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Name() string
}
