package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"digital-wallet/internal/core/domain"
	"digital-wallet/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new wallet into the database.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, owner_id, balance, is_blocked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.OwnerID, w.Balance, w.IsBlocked, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByID fetches a wallet by its UUID (without locking).
func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT id, owner_id, balance, is_blocked, created_at, updated_at
		FROM wallets WHERE id = $1`

	return r.scanWallet(r.pool.QueryRow(ctx, query, id))
}

// GetByOwnerID fetches a wallet by its owner (non-locking read).
func (r *WalletRepo) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT id, owner_id, balance, is_blocked, created_at, updated_at
		FROM wallets WHERE owner_id = $1`

	return r.scanWallet(r.pool.QueryRow(ctx, query, ownerID))
}

// GetByOwnerIDForUpdate fetches a wallet by owner ID with pessimistic locking.
// This MUST be called within a transaction.
func (r *WalletRepo) GetByOwnerIDForUpdate(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT id, owner_id, balance, is_blocked, created_at, updated_at
		FROM wallets WHERE owner_id = $1 FOR UPDATE`

	return r.scanWallet(tx.QueryRow(ctx, query, ownerID))
}

// UpdateBalance updates a wallet's balance within a transaction. The caller's
// timestamp is persisted so the row matches the domain object it returns.
func (r *WalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance domain.Money, updatedAt time.Time) error {
	query := `UPDATE wallets SET balance = $1, updated_at = $2 WHERE id = $3`

	tag, err := tx.Exec(ctx, query, balance, updatedAt, walletID)
	if err != nil {
		return fmt.Errorf("update wallet balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	return nil
}

// SetBlocked flips the block flag on a wallet.
func (r *WalletRepo) SetBlocked(ctx context.Context, walletID uuid.UUID, blocked bool) error {
	query := `UPDATE wallets SET is_blocked = $1, updated_at = NOW() WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, blocked, walletID)
	if err != nil {
		return fmt.Errorf("set wallet blocked: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	return nil
}

// List fetches all wallets paginated.
func (r *WalletRepo) List(ctx context.Context, params ports.WalletListParams) ([]domain.Wallet, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM wallets").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count wallets: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	query := `SELECT id, owner_id, balance, is_blocked, created_at, updated_at
		FROM wallets ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, params.PageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		w := domain.Wallet{}
		err := rows.Scan(
			&w.ID, &w.OwnerID, &w.Balance, &w.IsBlocked, &w.CreatedAt, &w.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan wallet row: %w", err)
		}
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate wallet rows: %w", err)
	}
	return wallets, total, nil
}

// scanWallet is a helper to scan a single row into a Wallet.
func (r *WalletRepo) scanWallet(row pgx.Row) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := row.Scan(
		&w.ID, &w.OwnerID, &w.Balance, &w.IsBlocked, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan wallet: %w", err)
	}
	return w, nil
}
