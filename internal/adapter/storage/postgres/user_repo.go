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

// UserRepo implements ports.UserRepository.
type UserRepo struct {
	pool Pool
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(pool Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create inserts a new user into the database.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, email, password_hash, name, phone, role, is_active, is_approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Phone,
		u.Role, u.IsActive, u.IsApproved, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID fetches a user by its UUID.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, email, password_hash, name, phone, role, is_active, is_approved, created_at, updated_at
		FROM users WHERE id = $1`

	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

// GetByEmail fetches a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, password_hash, name, phone, role, is_active, is_approved, created_at, updated_at
		FROM users WHERE email = $1`

	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

// Update updates a user's mutable fields.
func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users
		SET name=$1, phone=$2, is_active=$3, is_approved=$4, updated_at=NOW()
		WHERE id=$5`

	tag, err := r.pool.Exec(ctx, query,
		u.Name, u.Phone, u.IsActive, u.IsApproved, u.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", u.ID)
	}
	return nil
}

// List fetches users with filtering and pagination.
func (r *UserRepo) List(ctx context.Context, params ports.UserListParams) ([]domain.User, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.Role != nil {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, *params.Role)
		argIdx++
	}
	if params.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *params.IsActive)
		argIdx++
	}
	if params.IsApproved != nil {
		conditions = append(conditions, fmt.Sprintf("is_approved = $%d", argIdx))
		args = append(args, *params.IsApproved)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM users %s", where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	// Fetch page
	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT id, email, password_hash, name, phone, role, is_active, is_approved, created_at, updated_at
		FROM users %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u := domain.User{}
		err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone,
			&u.Role, &u.IsActive, &u.IsApproved, &u.CreatedAt, &u.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate user rows: %w", err)
	}
	return users, total, nil
}

// GetStats retrieves aggregated user directory counts.
func (r *UserRepo) GetStats(ctx context.Context) (*ports.UserStats, error) {
	query := `SELECT
		COUNT(*) FILTER (WHERE role = 'user') AS total_users,
		COUNT(*) FILTER (WHERE role = 'agent') AS total_agents,
		COUNT(*) FILTER (WHERE role = 'user' AND is_active) AS active_users,
		COUNT(*) FILTER (WHERE role = 'agent' AND is_active) AS active_agents,
		COUNT(*) FILTER (WHERE role = 'agent' AND is_approved) AS approved_agents,
		(SELECT COUNT(*) FROM wallets WHERE is_blocked) AS blocked_users
		FROM users`

	stats := &ports.UserStats{}
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalUsers, &stats.TotalAgents, &stats.ActiveUsers,
		&stats.ActiveAgents, &stats.ApprovedAgents, &stats.BlockedUsers,
	)
	if err != nil {
		return nil, fmt.Errorf("get user stats: %w", err)
	}
	return stats, nil
}

// scanUser is a helper to scan a single row into a User.
func (r *UserRepo) scanUser(row pgx.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone,
		&u.Role, &u.IsActive, &u.IsApproved, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}
