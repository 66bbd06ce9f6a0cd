package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"digital-wallet/internal/core/domain"
	"digital-wallet/internal/core/ports"
	"digital-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const walletCacheTTL = 5 * time.Minute

// LedgerServiceImpl implements ports.LedgerService. Every operation follows
// the same shape: validate, begin a database transaction, lock the wallet
// row(s) FOR UPDATE, mutate through the wallet's own methods, insert the
// transaction record, commit. The deferred rollback guarantees that a failure
// at any point leaves neither a balance change nor an orphan record.
type LedgerServiceImpl struct {
	walletRepo ports.WalletRepository
	txRepo     ports.TransactionRepository
	userRepo   ports.UserRepository
	cache      ports.WalletCache
	transactor ports.DBTransactor
	opTimeout  time.Duration
	log        zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	walletRepo ports.WalletRepository,
	txRepo ports.TransactionRepository,
	userRepo ports.UserRepository,
	cache ports.WalletCache,
	transactor ports.DBTransactor,
	opTimeout time.Duration,
	log zerolog.Logger,
) *LedgerServiceImpl {
	if opTimeout <= 0 {
		opTimeout = 5 * time.Second
	}
	return &LedgerServiceImpl{
		walletRepo: walletRepo,
		txRepo:     txRepo,
		userRepo:   userRepo,
		cache:      cache,
		transactor: transactor,
		opTimeout:  opTimeout,
		log:        log,
	}
}

// AddMoney credits the user's wallet and records a deposit.
func (s *LedgerServiceImpl) AddMoney(ctx context.Context, userID uuid.UUID, amount domain.Money) (*domain.Wallet, *domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, nil, apperror.ErrInvalidAmount()
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, nil, s.storageErr("begin tx", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetByOwnerIDForUpdate(ctx, dbTx, userID)
	if err != nil {
		return nil, nil, s.storageErr("lock wallet", err)
	}
	if wallet == nil {
		return nil, nil, apperror.ErrWalletNotFound()
	}
	if wallet.IsBlocked {
		return nil, nil, apperror.ErrWalletBlocked()
	}

	if err := wallet.Credit(amount); err != nil {
		return nil, nil, err
	}

	txn := &domain.Transaction{
		ID:             uuid.New(),
		Kind:           domain.TransactionKindDeposit,
		Amount:         amount,
		SourceWalletID: wallet.ID,
		SourceUserID:   userID,
		InitiatedBy:    userID,
		Status:         domain.TransactionStatusCompleted,
		Description:    fmt.Sprintf("Added %d to wallet", amount),
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.persistAndCommit(ctx, dbTx, wallet, txn); err != nil {
		return nil, nil, err
	}

	s.invalidateCache(ctx, userID)

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("user_id", userID.String()).
		Int64("amount", int64(amount)).
		Msg("deposit completed")

	return wallet, txn, nil
}

// WithdrawMoney debits the user's wallet and records a withdrawal.
func (s *LedgerServiceImpl) WithdrawMoney(ctx context.Context, userID uuid.UUID, amount domain.Money) (*domain.Wallet, *domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, nil, apperror.ErrInvalidAmount()
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, nil, s.storageErr("begin tx", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetByOwnerIDForUpdate(ctx, dbTx, userID)
	if err != nil {
		return nil, nil, s.storageErr("lock wallet", err)
	}
	if wallet == nil {
		return nil, nil, apperror.ErrWalletNotFound()
	}
	if wallet.IsBlocked {
		return nil, nil, apperror.ErrWalletBlocked()
	}

	if err := wallet.Debit(amount); err != nil {
		return nil, nil, err
	}

	txn := &domain.Transaction{
		ID:             uuid.New(),
		Kind:           domain.TransactionKindWithdraw,
		Amount:         amount,
		SourceWalletID: wallet.ID,
		SourceUserID:   userID,
		InitiatedBy:    userID,
		Status:         domain.TransactionStatusCompleted,
		Description:    fmt.Sprintf("Withdrew %d from wallet", amount),
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.persistAndCommit(ctx, dbTx, wallet, txn); err != nil {
		return nil, nil, err
	}

	s.invalidateCache(ctx, userID)

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("user_id", userID.String()).
		Int64("amount", int64(amount)).
		Msg("withdrawal completed")

	return wallet, txn, nil
}

// SendMoney moves amount from one user to another, charging the sender the
// transfer fee on top of the principal. Both wallet rows are locked in a
// fixed global order (by owner ID) so two opposite-direction transfers can
// never deadlock.
func (s *LedgerServiceImpl) SendMoney(ctx context.Context, fromUserID, toUserID uuid.UUID, amount domain.Money) (*domain.Wallet, *domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, nil, apperror.ErrInvalidAmount()
	}
	if fromUserID == toUserID {
		return nil, nil, apperror.ErrSameParty()
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	recipient, err := s.userRepo.GetByID(ctx, toUserID)
	if err != nil {
		return nil, nil, s.storageErr("load recipient", err)
	}
	if recipient == nil || !recipient.IsEligibleRecipient() {
		return nil, nil, apperror.ErrRecipientInvalid()
	}

	charges := domain.ComputeCharges(domain.TransactionKindTransfer, amount)
	total, err := amount.Add(charges.Fee)
	if err != nil {
		return nil, nil, err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, nil, s.storageErr("begin tx", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	fromWallet, toWallet, err := s.lockWalletPair(ctx, dbTx, fromUserID, toUserID)
	if err != nil {
		return nil, nil, err
	}
	if fromWallet.IsBlocked || toWallet.IsBlocked {
		return nil, nil, apperror.ErrWalletBlocked()
	}
	if !fromWallet.CanDebit(total) {
		return nil, nil, apperror.ErrInsufficientFunds()
	}

	if err := fromWallet.Debit(total); err != nil {
		return nil, nil, err
	}
	if err := toWallet.Credit(amount); err != nil {
		return nil, nil, err
	}

	txn := &domain.Transaction{
		ID:             uuid.New(),
		Kind:           domain.TransactionKindTransfer,
		Amount:         amount,
		Fee:            charges.Fee,
		SourceWalletID: fromWallet.ID,
		DestWalletID:   &toWallet.ID,
		SourceUserID:   fromUserID,
		DestUserID:     &toUserID,
		InitiatedBy:    fromUserID,
		Status:         domain.TransactionStatusCompleted,
		Description:    fmt.Sprintf("Sent %d to %s", amount, recipient.Name),
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.walletRepo.UpdateBalance(ctx, dbTx, fromWallet.ID, fromWallet.Balance, fromWallet.UpdatedAt); err != nil {
		return nil, nil, s.storageErr("update sender balance", err)
	}
	if err := s.walletRepo.UpdateBalance(ctx, dbTx, toWallet.ID, toWallet.Balance, toWallet.UpdatedAt); err != nil {
		return nil, nil, s.storageErr("update recipient balance", err)
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, nil, s.storageErr("create transaction", err)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, nil, s.storageErr("commit tx", err)
	}

	s.invalidateCache(ctx, fromUserID)
	s.invalidateCache(ctx, toUserID)

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("from_user", fromUserID.String()).
		Str("to_user", toUserID.String()).
		Int64("amount", int64(amount)).
		Int64("fee", int64(charges.Fee)).
		Msg("transfer completed")

	return fromWallet, txn, nil
}

// CashIn credits a user's wallet on behalf of an agent and records the
// agent's commission. The commission is stored on the record only; it is not
// credited to the agent's wallet here.
func (s *LedgerServiceImpl) CashIn(ctx context.Context, agentID, userID uuid.UUID, amount domain.Money) (*domain.Wallet, *domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, nil, apperror.ErrInvalidAmount()
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	agent, user, err := s.validateAgentPair(ctx, agentID, userID)
	if err != nil {
		return nil, nil, err
	}

	charges := domain.ComputeCharges(domain.TransactionKindCashIn, amount)

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, nil, s.storageErr("begin tx", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetByOwnerIDForUpdate(ctx, dbTx, userID)
	if err != nil {
		return nil, nil, s.storageErr("lock wallet", err)
	}
	if wallet == nil {
		return nil, nil, apperror.ErrWalletNotFound()
	}
	if wallet.IsBlocked {
		return nil, nil, apperror.ErrWalletBlocked()
	}

	if err := wallet.Credit(amount); err != nil {
		return nil, nil, err
	}

	txn := &domain.Transaction{
		ID:             uuid.New(),
		Kind:           domain.TransactionKindCashIn,
		Amount:         amount,
		Commission:     charges.Commission,
		SourceWalletID: wallet.ID,
		DestWalletID:   &wallet.ID,
		SourceUserID:   user.ID,
		DestUserID:     &user.ID,
		InitiatedBy:    agentID,
		Status:         domain.TransactionStatusCompleted,
		Description:    fmt.Sprintf("Agent %s added %d to user wallet", agent.Name, amount),
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.persistAndCommit(ctx, dbTx, wallet, txn); err != nil {
		return nil, nil, err
	}

	s.invalidateCache(ctx, userID)

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("agent_id", agentID.String()).
		Str("user_id", userID.String()).
		Int64("amount", int64(amount)).
		Int64("commission", int64(charges.Commission)).
		Msg("cash-in completed")

	return wallet, txn, nil
}

// CashOut debits a user's wallet on behalf of an agent and records the
// agent's commission.
func (s *LedgerServiceImpl) CashOut(ctx context.Context, agentID, userID uuid.UUID, amount domain.Money) (*domain.Wallet, *domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, nil, apperror.ErrInvalidAmount()
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	agent, user, err := s.validateAgentPair(ctx, agentID, userID)
	if err != nil {
		return nil, nil, err
	}

	charges := domain.ComputeCharges(domain.TransactionKindCashOut, amount)

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, nil, s.storageErr("begin tx", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetByOwnerIDForUpdate(ctx, dbTx, userID)
	if err != nil {
		return nil, nil, s.storageErr("lock wallet", err)
	}
	if wallet == nil {
		return nil, nil, apperror.ErrWalletNotFound()
	}
	if wallet.IsBlocked {
		return nil, nil, apperror.ErrWalletBlocked()
	}

	if err := wallet.Debit(amount); err != nil {
		return nil, nil, err
	}

	txn := &domain.Transaction{
		ID:             uuid.New(),
		Kind:           domain.TransactionKindCashOut,
		Amount:         amount,
		Commission:     charges.Commission,
		SourceWalletID: wallet.ID,
		DestWalletID:   &wallet.ID,
		SourceUserID:   user.ID,
		DestUserID:     &user.ID,
		InitiatedBy:    agentID,
		Status:         domain.TransactionStatusCompleted,
		Description:    fmt.Sprintf("Agent %s withdrew %d from user wallet", agent.Name, amount),
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.persistAndCommit(ctx, dbTx, wallet, txn); err != nil {
		return nil, nil, err
	}

	s.invalidateCache(ctx, userID)

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("agent_id", agentID.String()).
		Str("user_id", userID.String()).
		Int64("amount", int64(amount)).
		Int64("commission", int64(charges.Commission)).
		Msg("cash-out completed")

	return wallet, txn, nil
}

// GetWallet returns the user's wallet, serving from the read cache when
// possible.
func (s *LedgerServiceImpl) GetWallet(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	cached, err := s.cache.Get(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID.String()).Msg("wallet cache read failed, falling through to storage")
	}
	if cached != nil {
		return cached, nil
	}

	wallet, err := s.walletRepo.GetByOwnerID(ctx, userID)
	if err != nil {
		return nil, s.storageErr("get wallet", err)
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	if err := s.cache.Set(ctx, wallet, walletCacheTTL); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID.String()).Msg("wallet cache write failed")
	}

	return wallet, nil
}

// validateAgentPair checks the agent/user preconditions shared by cash-in and
// cash-out.
func (s *LedgerServiceImpl) validateAgentPair(ctx context.Context, agentID, userID uuid.UUID) (*domain.User, *domain.User, error) {
	agent, err := s.userRepo.GetByID(ctx, agentID)
	if err != nil {
		return nil, nil, s.storageErr("load agent", err)
	}
	if agent == nil || !agent.IsOperationalAgent() {
		return nil, nil, apperror.ErrInvalidAgent()
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, s.storageErr("load user", err)
	}
	if user == nil || !user.IsEligibleRecipient() {
		return nil, nil, apperror.ErrInvalidUser()
	}

	return agent, user, nil
}

// lockWalletPair locks two wallets FOR UPDATE in ascending owner-ID order and
// returns them as (from, to).
func (s *LedgerServiceImpl) lockWalletPair(ctx context.Context, dbTx pgx.Tx, fromUserID, toUserID uuid.UUID) (*domain.Wallet, *domain.Wallet, error) {
	firstOwner, secondOwner := fromUserID, toUserID
	if bytes.Compare(toUserID[:], fromUserID[:]) < 0 {
		firstOwner, secondOwner = toUserID, fromUserID
	}

	first, err := s.walletRepo.GetByOwnerIDForUpdate(ctx, dbTx, firstOwner)
	if err != nil {
		return nil, nil, s.storageErr("lock first wallet", err)
	}
	second, err := s.walletRepo.GetByOwnerIDForUpdate(ctx, dbTx, secondOwner)
	if err != nil {
		return nil, nil, s.storageErr("lock second wallet", err)
	}
	if first == nil || second == nil {
		return nil, nil, apperror.ErrWalletNotFound()
	}

	if firstOwner == fromUserID {
		return first, second, nil
	}
	return second, first, nil
}

// persistAndCommit writes the single-wallet mutation and its transaction
// record, then commits.
func (s *LedgerServiceImpl) persistAndCommit(ctx context.Context, dbTx pgx.Tx, wallet *domain.Wallet, txn *domain.Transaction) error {
	if err := s.walletRepo.UpdateBalance(ctx, dbTx, wallet.ID, wallet.Balance, wallet.UpdatedAt); err != nil {
		return s.storageErr("update balance", err)
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return s.storageErr("create transaction", err)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return s.storageErr("commit tx", err)
	}
	return nil
}

// invalidateCache drops the cached wallet after a mutation (best-effort).
func (s *LedgerServiceImpl) invalidateCache(ctx context.Context, ownerID uuid.UUID) {
	if err := s.cache.Invalidate(context.WithoutCancel(ctx), ownerID); err != nil {
		s.log.Warn().Err(err).Str("user_id", ownerID.String()).Msg("wallet cache invalidation failed")
	}
}

// storageErr classifies infrastructure failures, distinguishing deadline
// expiry from other storage errors.
func (s *LedgerServiceImpl) storageErr(op string, err error) error {
	wrapped := fmt.Errorf("%s: %w", op, err)
	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.ErrTimeout(wrapped)
	}
	return apperror.ErrStorageFailure(wrapped)
}
