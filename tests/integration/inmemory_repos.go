package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"digital-wallet/internal/core/domain"
	"digital-wallet/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- In-Memory User Repo ---

type inMemoryUserRepo struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]*domain.User
	walletRepo *inMemoryWalletRepo // for blocked-user counts in stats
}

func newInMemoryUserRepo(walletRepo *inMemoryWalletRepo) *inMemoryUserRepo {
	return &inMemoryUserRepo{
		users:      make(map[uuid.UUID]*domain.User),
		walletRepo: walletRepo,
	}
}

func (r *inMemoryUserRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return fmt.Errorf("email already exists")
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *inMemoryUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *inMemoryUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryUserRepo) Update(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return fmt.Errorf("user not found")
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *inMemoryUserRepo) List(ctx context.Context, params ports.UserListParams) ([]domain.User, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.User
	for _, u := range r.users {
		if params.Role != nil && u.Role != *params.Role {
			continue
		}
		if params.IsActive != nil && u.IsActive != *params.IsActive {
			continue
		}
		if params.IsApproved != nil && u.IsApproved != *params.IsApproved {
			continue
		}
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	total := int64(len(result))
	return paginate(result, params.Page, params.PageSize), total, nil
}

func (r *inMemoryUserRepo) GetStats(ctx context.Context) (*ports.UserStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := &ports.UserStats{}
	for _, u := range r.users {
		switch u.Role {
		case domain.RoleUser:
			stats.TotalUsers++
			if u.IsActive {
				stats.ActiveUsers++
			}
		case domain.RoleAgent:
			stats.TotalAgents++
			if u.IsActive {
				stats.ActiveAgents++
			}
			if u.IsApproved {
				stats.ApprovedAgents++
			}
		}
	}
	stats.BlockedUsers = r.walletRepo.blockedCount()
	return stats, nil
}

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]*domain.Wallet
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[uuid.UUID]*domain.Wallet)}
}

func (r *inMemoryWalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.wallets[w.ID] = &cp
	return nil
}

func (r *inMemoryWalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wallets[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWalletRepo) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wallets {
		if w.OwnerID == ownerID {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryWalletRepo) GetByOwnerIDForUpdate(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) (*domain.Wallet, error) {
	return r.GetByOwnerID(ctx, ownerID)
}

func (r *inMemoryWalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance domain.Money, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.Balance = balance
	w.UpdatedAt = updatedAt
	return nil
}

func (r *inMemoryWalletRepo) SetBlocked(ctx context.Context, walletID uuid.UUID, blocked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.IsBlocked = blocked
	return nil
}

func (r *inMemoryWalletRepo) List(ctx context.Context, params ports.WalletListParams) ([]domain.Wallet, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Wallet
	for _, w := range r.wallets {
		result = append(result, *w)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	total := int64(len(result))
	return paginate(result, params.Page, params.PageSize), total, nil
}

func (r *inMemoryWalletRepo) blockedCount() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, w := range r.wallets {
		if w.IsBlocked {
			n++
		}
	}
	return n
}

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu           sync.RWMutex
	transactions []domain.Transaction
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{}
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = append(r.transactions, *t)
	return nil
}

func (r *inMemoryTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.transactions {
		if r.transactions[i].ID == id {
			cp := r.transactions[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryTransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Transaction
	for _, t := range r.transactions {
		if params.ParticipantID != nil {
			p := *params.ParticipantID
			isDest := t.DestUserID != nil && *t.DestUserID == p
			if t.SourceUserID != p && !isDest && t.InitiatedBy != p {
				continue
			}
		}
		if params.Kind != nil && t.Kind != *params.Kind {
			continue
		}
		if params.Status != nil && t.Status != *params.Status {
			continue
		}
		if params.From != nil && t.CreatedAt.Unix() < *params.From {
			continue
		}
		if params.To != nil && t.CreatedAt.Unix() > *params.To {
			continue
		}
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	total := int64(len(result))
	return paginate(result, params.Page, params.PageSize), total, nil
}

func (r *inMemoryTransactionRepo) ListAgentCommissions(ctx context.Context, agentID uuid.UUID, params ports.CommissionListParams) ([]domain.Transaction, int64, domain.Money, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Transaction
	var totalCommission domain.Money
	for _, t := range r.transactions {
		if t.InitiatedBy != agentID || !t.IsAgentOperation() {
			continue
		}
		if params.From != nil && t.CreatedAt.Unix() < *params.From {
			continue
		}
		if params.To != nil && t.CreatedAt.Unix() > *params.To {
			continue
		}
		result = append(result, t)
		totalCommission += t.Commission
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	total := int64(len(result))
	return paginate(result, params.Page, params.PageSize), total, totalCommission, nil
}

func (r *inMemoryTransactionRepo) GetStats(ctx context.Context, params ports.StatsParams) (*ports.TransactionStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := &ports.TransactionStats{}
	for _, t := range r.transactions {
		if params.From != nil && t.CreatedAt.Unix() < *params.From {
			continue
		}
		if params.To != nil && t.CreatedAt.Unix() > *params.To {
			continue
		}
		stats.TotalTransactions++
		switch t.Status {
		case domain.TransactionStatusPending:
			stats.Pending++
		case domain.TransactionStatusCompleted:
			stats.Completed++
		case domain.TransactionStatusFailed:
			stats.Failed++
		case domain.TransactionStatusReversed:
			stats.Reversed++
		}
		if t.Status == domain.TransactionStatusCompleted {
			stats.TotalAmount += t.Amount
			stats.TotalFees += t.Fee
			stats.TotalCommissions += t.Commission
		}
	}
	return stats, nil
}

// paginate slices a result set the way LIMIT/OFFSET would.
func paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// --- Serializing Transactor ---

// serialTransactor emulates row-level locking with a single mutex held from
// Begin until Commit or Rollback. Concurrent ledger operations therefore
// execute one at a time, matching the serialization the SELECT FOR UPDATE
// path provides against a real database.
type serialTransactor struct {
	mu sync.Mutex
}

func newSerialTransactor() *serialTransactor {
	return &serialTransactor{}
}

func (t *serialTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	return &serialTx{release: &t.mu}, nil
}

// serialTx is a pgx.Tx that releases the transactor mutex exactly once, on
// whichever of Commit or Rollback runs first.
type serialTx struct {
	release  *sync.Mutex
	finished bool
	mu       sync.Mutex
}

func (t *serialTx) finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.finished {
		t.finished = true
		t.release.Unlock()
	}
}

func (t *serialTx) Commit(ctx context.Context) error {
	t.finish()
	return nil
}

func (t *serialTx) Rollback(ctx context.Context) error {
	t.finish()
	return nil
}

func (t *serialTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *serialTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *serialTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *serialTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *serialTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *serialTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *serialTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *serialTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *serialTx) Conn() *pgx.Conn { return nil }
