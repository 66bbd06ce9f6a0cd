package service

import (
	"context"
	"testing"

	"digital-wallet/internal/core/domain"
	"digital-wallet/internal/core/ports"
	"digital-wallet/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type adminTestDeps struct {
	svc        ports.AdminService
	userRepo   *mocks.MockUserRepository
	walletRepo *mocks.MockWalletRepository
	cache      *mocks.MockWalletCache
	ctrl       *gomock.Controller
}

func setupAdminService(t *testing.T) *adminTestDeps {
	ctrl := gomock.NewController(t)
	d := &adminTestDeps{
		userRepo:   mocks.NewMockUserRepository(ctrl),
		walletRepo: mocks.NewMockWalletRepository(ctrl),
		cache:      mocks.NewMockWalletCache(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewAdminService(d.userRepo, d.walletRepo, d.cache, zerolog.Nop())
	return d
}

func TestAdminService_ListUsers(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	role := domain.RoleAgent

	d.userRepo.EXPECT().
		List(ctx, ports.UserListParams{Role: &role, Page: 1, PageSize: 10}).
		Return([]domain.User{{ID: uuid.New(), Role: domain.RoleAgent}}, int64(1), nil)

	users, total, err := d.svc.ListUsers(ctx, ports.UserListParams{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, users, 1)
}

func TestAdminService_GetUserStats(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.userRepo.EXPECT().GetStats(ctx).Return(&ports.UserStats{
		TotalUsers:  10,
		TotalAgents: 3,
		ActiveUsers: 8,
	}, nil)

	stats, err := d.svc.GetUserStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalUsers)
	assert.Equal(t, int64(3), stats.TotalAgents)
}

func TestAdminService_ToggleUserActive(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()

	d.userRepo.EXPECT().GetByID(ctx, userID).Return(&domain.User{
		ID:       userID,
		Role:     domain.RoleUser,
		IsActive: true,
	}, nil)
	d.userRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	user, err := d.svc.ToggleUserActive(ctx, userID)
	require.NoError(t, err)
	assert.False(t, user.IsActive)
}

func TestAdminService_ToggleUserActive_AdminRefused(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	adminID := uuid.New()

	d.userRepo.EXPECT().GetByID(ctx, adminID).Return(&domain.User{
		ID:       adminID,
		Role:     domain.RoleAdmin,
		IsActive: true,
	}, nil)

	user, err := d.svc.ToggleUserActive(ctx, adminID)
	assert.Nil(t, user)
	assertAppError(t, err, "AUTH_005")
}

func TestAdminService_ToggleUserActive_NotFound(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()

	d.userRepo.EXPECT().GetByID(ctx, userID).Return(nil, nil)

	user, err := d.svc.ToggleUserActive(ctx, userID)
	assert.Nil(t, user)
	assertAppError(t, err, "AUTH_006")
}

func TestAdminService_ToggleAgentApproval(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	agentID := uuid.New()

	d.userRepo.EXPECT().GetByID(ctx, agentID).Return(&domain.User{
		ID:         agentID,
		Role:       domain.RoleAgent,
		IsActive:   true,
		IsApproved: false,
	}, nil)
	d.userRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	agent, err := d.svc.ToggleAgentApproval(ctx, agentID)
	require.NoError(t, err)
	assert.True(t, agent.IsApproved)
	assert.True(t, agent.IsOperationalAgent())
}

func TestAdminService_ToggleAgentApproval_NotAnAgent(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()

	d.userRepo.EXPECT().GetByID(ctx, userID).Return(&domain.User{
		ID:   userID,
		Role: domain.RoleUser,
	}, nil)

	agent, err := d.svc.ToggleAgentApproval(ctx, userID)
	assert.Nil(t, agent)
	assertAppError(t, err, "WAL_004")
}

func TestAdminService_ToggleWalletBlock(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	ownerID := uuid.New()

	d.walletRepo.EXPECT().GetByID(ctx, walletID).Return(&domain.Wallet{
		ID:      walletID,
		OwnerID: ownerID,
		Balance: 500,
	}, nil)
	d.walletRepo.EXPECT().SetBlocked(ctx, walletID, true).Return(nil)
	d.cache.EXPECT().Invalidate(ctx, ownerID).Return(nil)

	wallet, err := d.svc.ToggleWalletBlock(ctx, walletID)
	require.NoError(t, err)
	assert.True(t, wallet.IsBlocked)
	// Blocking freezes the wallet, it does not touch the balance.
	assert.Equal(t, domain.Money(500), wallet.Balance)
}

func TestAdminService_ToggleWalletBlock_Unblock(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	ownerID := uuid.New()

	d.walletRepo.EXPECT().GetByID(ctx, walletID).Return(&domain.Wallet{
		ID:        walletID,
		OwnerID:   ownerID,
		Balance:   500,
		IsBlocked: true,
	}, nil)
	d.walletRepo.EXPECT().SetBlocked(ctx, walletID, false).Return(nil)
	d.cache.EXPECT().Invalidate(ctx, ownerID).Return(nil)

	wallet, err := d.svc.ToggleWalletBlock(ctx, walletID)
	require.NoError(t, err)
	assert.False(t, wallet.IsBlocked)
}

func TestAdminService_ToggleWalletBlock_NotFound(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()

	d.walletRepo.EXPECT().GetByID(ctx, walletID).Return(nil, nil)

	wallet, err := d.svc.ToggleWalletBlock(ctx, walletID)
	assert.Nil(t, wallet)
	assertAppError(t, err, "WAL_001")
}
