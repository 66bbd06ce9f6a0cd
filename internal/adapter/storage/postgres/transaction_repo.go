package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"digital-wallet/internal/core/domain"
	"digital-wallet/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, kind, amount, fee, commission, source_wallet_id, dest_wallet_id,
	source_user_id, dest_user_id, initiated_by, status, description, created_at`

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts a ledger record within a database transaction. Records are
// append-only; there is no update or delete path.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.Kind, t.Amount, t.Fee, t.Commission,
		t.SourceWalletID, t.DestWalletID, t.SourceUserID, t.DestUserID,
		t.InitiatedBy, t.Status, t.Description, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID fetches a transaction by UUID.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	return r.scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// List fetches transactions with filtering and pagination. A participant
// filter matches the source, destination or initiating party.
func (r *TransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.ParticipantID != nil {
		conditions = append(conditions, fmt.Sprintf(
			"(source_user_id = $%d OR dest_user_id = $%d OR initiated_by = $%d)", argIdx, argIdx, argIdx))
		args = append(args, *params.ParticipantID)
		argIdx++
	}
	if params.Kind != nil {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argIdx))
		args = append(args, *params.Kind)
		argIdx++
	}
	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *params.Status)
		argIdx++
	}
	if params.From != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= to_timestamp($%d)", argIdx))
		args = append(args, *params.From)
		argIdx++
	}
	if params.To != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= to_timestamp($%d)", argIdx))
		args = append(args, *params.To)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM transactions %s", where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	// Fetch page
	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT %s FROM transactions %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		transactionColumns, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		t := domain.Transaction{}
		err := rows.Scan(
			&t.ID, &t.Kind, &t.Amount, &t.Fee, &t.Commission,
			&t.SourceWalletID, &t.DestWalletID, &t.SourceUserID, &t.DestUserID,
			&t.InitiatedBy, &t.Status, &t.Description, &t.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, total, nil
}

// ListAgentCommissions fetches an agent's commission-earning records with the
// summed total commission over the whole filtered range.
func (r *TransactionRepo) ListAgentCommissions(ctx context.Context, agentID uuid.UUID, params ports.CommissionListParams) ([]domain.Transaction, int64, domain.Money, error) {
	conditions := []string{"initiated_by = $1", "kind IN ('cash-in', 'cash-out')"}
	args := []any{agentID}
	argIdx := 2

	if params.From != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= to_timestamp($%d)", argIdx))
		args = append(args, *params.From)
		argIdx++
	}
	if params.To != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= to_timestamp($%d)", argIdx))
		args = append(args, *params.To)
		argIdx++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	// Count and sum over the whole range, not just the page
	summaryQuery := fmt.Sprintf("SELECT COUNT(*), COALESCE(SUM(commission), 0) FROM transactions %s", where)
	var total int64
	var totalCommission domain.Money
	if err := r.pool.QueryRow(ctx, summaryQuery, args...).Scan(&total, &totalCommission); err != nil {
		return nil, 0, 0, fmt.Errorf("sum agent commissions: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT %s FROM transactions %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		transactionColumns, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("list agent commissions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		t := domain.Transaction{}
		err := rows.Scan(
			&t.ID, &t.Kind, &t.Amount, &t.Fee, &t.Commission,
			&t.SourceWalletID, &t.DestWalletID, &t.SourceUserID, &t.DestUserID,
			&t.InitiatedBy, &t.Status, &t.Description, &t.CreatedAt,
		)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("scan commission row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, fmt.Errorf("iterate commission rows: %w", err)
	}
	return txns, total, totalCommission, nil
}

// GetStats retrieves aggregated ledger statistics.
func (r *TransactionRepo) GetStats(ctx context.Context, params ports.StatsParams) (*ports.TransactionStats, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.From != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= to_timestamp($%d)", argIdx))
		args = append(args, *params.From)
		argIdx++
	}
	if params.To != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= to_timestamp($%d)", argIdx))
		args = append(args, *params.To)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE status = 'pending') AS pending,
		COUNT(*) FILTER (WHERE status = 'completed') AS completed,
		COUNT(*) FILTER (WHERE status = 'failed') AS failed,
		COUNT(*) FILTER (WHERE status = 'reversed') AS reversed,
		COALESCE(SUM(amount) FILTER (WHERE status = 'completed'), 0) AS total_amount,
		COALESCE(SUM(fee) FILTER (WHERE status = 'completed'), 0) AS total_fees,
		COALESCE(SUM(commission) FILTER (WHERE status = 'completed'), 0) AS total_commissions
		FROM transactions %s`, where)

	stats := &ports.TransactionStats{}
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&stats.TotalTransactions, &stats.Pending, &stats.Completed,
		&stats.Failed, &stats.Reversed,
		&stats.TotalAmount, &stats.TotalFees, &stats.TotalCommissions,
	)
	if err != nil {
		return nil, fmt.Errorf("get transaction stats: %w", err)
	}
	return stats, nil
}

// scanTransaction is a helper to scan a single row into a Transaction.
func (r *TransactionRepo) scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	err := row.Scan(
		&t.ID, &t.Kind, &t.Amount, &t.Fee, &t.Commission,
		&t.SourceWalletID, &t.DestWalletID, &t.SourceUserID, &t.DestUserID,
		&t.InitiatedBy, &t.Status, &t.Description, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return t, nil
}
