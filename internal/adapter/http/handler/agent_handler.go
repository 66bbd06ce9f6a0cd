package handler

import (
	"context"
	"strconv"

	"digital-wallet/internal/adapter/http/dto"
	"digital-wallet/internal/core/domain"
	"digital-wallet/internal/core/ports"
	"digital-wallet/pkg/apperror"
	"digital-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AgentHandler handles agent-initiated cash operations and commission
// reporting.
type AgentHandler struct {
	ledgerSvc    ports.LedgerService
	reportingSvc ports.ReportingService
}

// NewAgentHandler creates a new AgentHandler.
func NewAgentHandler(ledgerSvc ports.LedgerService, reportingSvc ports.ReportingService) *AgentHandler {
	return &AgentHandler{ledgerSvc: ledgerSvc, reportingSvc: reportingSvc}
}

type cashOp func(ctx context.Context, agentID, userID uuid.UUID, amount domain.Money) (*domain.Wallet, *domain.Transaction, error)

// CashIn handles POST /api/v1/agent/cash-in.
func (h *AgentHandler) CashIn(c *gin.Context) {
	h.cashOperation(c, h.ledgerSvc.CashIn)
}

// CashOut handles POST /api/v1/agent/cash-out.
func (h *AgentHandler) CashOut(c *gin.Context) {
	h.cashOperation(c, h.ledgerSvc.CashOut)
}

func (h *AgentHandler) cashOperation(c *gin.Context, op cashOp) {
	agentID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.AgentCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.Error(c, apperror.Validation("user_id must be a valid UUID"))
		return
	}

	wallet, txn, err := op(c.Request.Context(), agentID, userID, domain.Money(req.Amount))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.OperationResponse{
		Wallet:      dto.FromWallet(wallet),
		Transaction: dto.FromTransaction(txn),
	})
}

// Commissions handles GET /api/v1/agent/commissions.
func (h *AgentHandler) Commissions(c *gin.Context) {
	agentID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	params := ports.CommissionListParams{
		Page:     page,
		PageSize: pageSize,
	}
	if f := c.Query("from"); f != "" {
		if v, err := strconv.ParseInt(f, 10, 64); err == nil {
			params.From = &v
		}
	}
	if t := c.Query("to"); t != "" {
		if v, err := strconv.ParseInt(t, 10, 64); err == nil {
			params.To = &v
		}
	}

	report, err := h.reportingSvc.AgentCommissions(c.Request.Context(), agentID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.CommissionReportResponse{
		Items:           dto.FromTransactions(report.Transactions),
		Total:           report.Total,
		TotalCommission: int64(report.TotalCommission),
	})
}
