package service

import (
	"context"
	"fmt"
	"time"

	"digital-wallet/internal/core/domain"
	"digital-wallet/internal/core/ports"
	"digital-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// adminService implements ports.AdminService.
type adminService struct {
	userRepo   ports.UserRepository
	walletRepo ports.WalletRepository
	cache      ports.WalletCache
	log        zerolog.Logger
}

// NewAdminService creates a new administrative service.
func NewAdminService(
	userRepo ports.UserRepository,
	walletRepo ports.WalletRepository,
	cache ports.WalletCache,
	log zerolog.Logger,
) ports.AdminService {
	return &adminService{
		userRepo:   userRepo,
		walletRepo: walletRepo,
		cache:      cache,
		log:        log,
	}
}

// ListUsers returns a filtered, paginated user directory view.
func (s *adminService) ListUsers(ctx context.Context, params ports.UserListParams) ([]domain.User, int64, error) {
	normalizePagination(&params.Page, &params.PageSize)

	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(err)
	}
	return users, total, nil
}

// GetUserStats returns aggregated user directory counts.
func (s *adminService) GetUserStats(ctx context.Context) (*ports.UserStats, error) {
	stats, err := s.userRepo.GetStats(ctx)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return stats, nil
}

// ToggleUserActive flips the active flag on a user or agent account.
// Admin accounts cannot be deactivated.
func (s *adminService) ToggleUserActive(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrNotFound("User")
	}
	if user.IsAdmin() {
		return nil, apperror.ErrForbidden()
	}

	user.IsActive = !user.IsActive
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update user: %w", err))
	}

	s.log.Info().
		Str("user_id", user.ID.String()).
		Bool("is_active", user.IsActive).
		Msg("user active flag toggled")

	return user, nil
}

// ToggleAgentApproval flips the approval flag on an agent account.
func (s *adminService) ToggleAgentApproval(ctx context.Context, agentID uuid.UUID) (*domain.User, error) {
	agent, err := s.userRepo.GetByID(ctx, agentID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load agent: %w", err))
	}
	if agent == nil {
		return nil, apperror.ErrNotFound("Agent")
	}
	if agent.Role != domain.RoleAgent {
		return nil, apperror.Validation("user is not an agent")
	}

	agent.IsApproved = !agent.IsApproved
	agent.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, agent); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update agent: %w", err))
	}

	s.log.Info().
		Str("agent_id", agent.ID.String()).
		Bool("is_approved", agent.IsApproved).
		Msg("agent approval toggled")

	return agent, nil
}

// ToggleWalletBlock flips the block flag on a wallet. Not a ledger
// transaction: no balance changes and no record is written.
func (s *adminService) ToggleWalletBlock(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	wallet.SetBlocked(!wallet.IsBlocked)

	if err := s.walletRepo.SetBlocked(ctx, wallet.ID, wallet.IsBlocked); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update wallet: %w", err))
	}

	if err := s.cache.Invalidate(ctx, wallet.OwnerID); err != nil {
		s.log.Warn().Err(err).Str("wallet_id", wallet.ID.String()).Msg("wallet cache invalidation failed")
	}

	s.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Bool("is_blocked", wallet.IsBlocked).
		Msg("wallet block toggled")

	return wallet, nil
}
