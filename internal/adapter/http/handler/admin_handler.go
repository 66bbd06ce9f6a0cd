package handler

import (
	"strconv"

	"digital-wallet/internal/adapter/http/dto"
	"digital-wallet/internal/core/domain"
	"digital-wallet/internal/core/ports"
	"digital-wallet/pkg/apperror"
	"digital-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler handles administrative directory, wallet and reporting
// endpoints.
type AdminHandler struct {
	adminSvc     ports.AdminService
	reportingSvc ports.ReportingService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminSvc ports.AdminService, reportingSvc ports.ReportingService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc, reportingSvc: reportingSvc}
}

// ListUsers handles GET /api/v1/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	params := ports.UserListParams{
		Page:     page,
		PageSize: pageSize,
	}
	if r := c.Query("role"); r != "" {
		role := domain.Role(r)
		params.Role = &role
	}
	if a := c.Query("is_active"); a != "" {
		if v, err := strconv.ParseBool(a); err == nil {
			params.IsActive = &v
		}
	}
	if a := c.Query("is_approved"); a != "" {
		if v, err := strconv.ParseBool(a); err == nil {
			params.IsApproved = &v
		}
	}

	users, total, err := h.adminSvc.ListUsers(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.FromUser(&users[i]))
	}

	response.OK(c, dto.UserListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: dto.TotalPages(total, pageSize),
	})
}

// GetUserStats handles GET /api/v1/admin/users/stats.
func (h *AdminHandler) GetUserStats(c *gin.Context) {
	stats, err := h.adminSvc.GetUserStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.UserStatsResponse{
		TotalUsers:     stats.TotalUsers,
		TotalAgents:    stats.TotalAgents,
		ActiveUsers:    stats.ActiveUsers,
		ActiveAgents:   stats.ActiveAgents,
		ApprovedAgents: stats.ApprovedAgents,
		BlockedUsers:   stats.BlockedUsers,
	})
}

// ToggleUserActive handles POST /api/v1/admin/users/:id/toggle-active.
func (h *AdminHandler) ToggleUserActive(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("id must be a valid UUID"))
		return
	}

	user, err := h.adminSvc.ToggleUserActive(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromUser(user))
}

// ToggleAgentApproval handles POST /api/v1/admin/agents/:id/toggle-approval.
func (h *AdminHandler) ToggleAgentApproval(c *gin.Context) {
	agentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("id must be a valid UUID"))
		return
	}

	user, err := h.adminSvc.ToggleAgentApproval(c.Request.Context(), agentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromUser(user))
}

// ListWallets handles GET /api/v1/admin/wallets.
func (h *AdminHandler) ListWallets(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	wallets, total, err := h.reportingSvc.ListWallets(c.Request.Context(), ports.WalletListParams{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.WalletResponse, 0, len(wallets))
	for i := range wallets {
		items = append(items, dto.FromWallet(&wallets[i]))
	}

	response.OK(c, dto.WalletListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: dto.TotalPages(total, pageSize),
	})
}

// ToggleWalletBlock handles POST /api/v1/admin/wallets/:id/toggle-block.
func (h *AdminHandler) ToggleWalletBlock(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("id must be a valid UUID"))
		return
	}

	wallet, err := h.adminSvc.ToggleWalletBlock(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromWallet(wallet))
}

// ListTransactions handles GET /api/v1/admin/transactions — the full ledger.
func (h *AdminHandler) ListTransactions(c *gin.Context) {
	params := parseTransactionListParams(c)

	if p := c.Query("participant_id"); p != "" {
		id, err := uuid.Parse(p)
		if err != nil {
			response.Error(c, apperror.Validation("participant_id must be a valid UUID"))
			return
		}
		params.ParticipantID = &id
	}

	txns, total, err := h.reportingSvc.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.TransactionListResponse{
		Items:      dto.FromTransactions(txns),
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: dto.TotalPages(total, params.PageSize),
	})
}

// GetStats handles GET /api/v1/admin/stats.
func (h *AdminHandler) GetStats(c *gin.Context) {
	period := c.DefaultQuery("period", "all")

	stats, err := h.reportingSvc.GetStats(c.Request.Context(), period)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.StatsResponse{
		TotalTransactions: stats.TotalTransactions,
		Pending:           stats.Pending,
		Completed:         stats.Completed,
		Failed:            stats.Failed,
		Reversed:          stats.Reversed,
		TotalAmount:       int64(stats.TotalAmount),
		TotalFees:         int64(stats.TotalFees),
		TotalCommissions:  int64(stats.TotalCommissions),
	})
}
