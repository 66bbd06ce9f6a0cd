package service

import (
	"context"
	"time"

	"digital-wallet/internal/core/domain"
	"digital-wallet/internal/core/ports"
	"digital-wallet/pkg/apperror"

	"github.com/google/uuid"
)

// reportingService implements ports.ReportingService.
type reportingService struct {
	txRepo     ports.TransactionRepository
	walletRepo ports.WalletRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	txRepo ports.TransactionRepository,
	walletRepo ports.WalletRepository,
) ports.ReportingService {
	return &reportingService{
		txRepo:     txRepo,
		walletRepo: walletRepo,
	}
}

// ListTransactions returns a paginated, filtered slice of the ledger.
func (s *reportingService) ListTransactions(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	normalizePagination(&params.Page, &params.PageSize)

	txns, total, err := s.txRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(err)
	}
	return txns, total, nil
}

// AgentCommissions returns the agent's commission-earning history with the
// summed total commission.
func (s *reportingService) AgentCommissions(ctx context.Context, agentID uuid.UUID, params ports.CommissionListParams) (*ports.CommissionReport, error) {
	normalizePagination(&params.Page, &params.PageSize)

	txns, total, totalCommission, err := s.txRepo.ListAgentCommissions(ctx, agentID, params)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	return &ports.CommissionReport{
		Transactions:    txns,
		Total:           total,
		TotalCommission: totalCommission,
	}, nil
}

// GetStats returns aggregate ledger statistics for a named period:
// day, week, month or all.
func (s *reportingService) GetStats(ctx context.Context, period string) (*ports.TransactionStats, error) {
	var params ports.StatsParams

	switch period {
	case "day":
		t := time.Now().AddDate(0, 0, -1).Unix()
		params.From = &t
	case "week":
		t := time.Now().AddDate(0, 0, -7).Unix()
		params.From = &t
	case "month":
		t := time.Now().AddDate(0, -1, 0).Unix()
		params.From = &t
	case "all", "":
		// No time filter
	default:
		return nil, apperror.Validation("invalid period: must be day, week, month, or all")
	}

	stats, err := s.txRepo.GetStats(ctx, params)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return stats, nil
}

// ListWallets returns all wallets paginated (admin view).
func (s *reportingService) ListWallets(ctx context.Context, params ports.WalletListParams) ([]domain.Wallet, int64, error) {
	normalizePagination(&params.Page, &params.PageSize)

	wallets, total, err := s.walletRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(err)
	}
	return wallets, total, nil
}

func normalizePagination(page, pageSize *int) {
	if *page < 1 {
		*page = 1
	}
	if *pageSize < 1 || *pageSize > 100 {
		*pageSize = 10
	}
}
