package handler

import (
	"digital-wallet/internal/adapter/http/dto"
	"digital-wallet/internal/core/domain"
	"digital-wallet/internal/core/ports"
	"digital-wallet/pkg/apperror"
	"digital-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler handles balance and money movement endpoints.
type WalletHandler struct {
	ledgerSvc ports.LedgerService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ledgerSvc ports.LedgerService) *WalletHandler {
	return &WalletHandler{ledgerSvc: ledgerSvc}
}

// GetWallet handles GET /api/v1/wallets/me.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	wallet, err := h.ledgerSvc.GetWallet(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromWallet(wallet))
}

// AddMoney handles POST /api/v1/wallets/add-money.
func (h *WalletHandler) AddMoney(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	wallet, txn, err := h.ledgerSvc.AddMoney(c.Request.Context(), userID, domain.Money(req.Amount))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.OperationResponse{
		Wallet:      dto.FromWallet(wallet),
		Transaction: dto.FromTransaction(txn),
	})
}

// WithdrawMoney handles POST /api/v1/wallets/withdraw.
func (h *WalletHandler) WithdrawMoney(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	wallet, txn, err := h.ledgerSvc.WithdrawMoney(c.Request.Context(), userID, domain.Money(req.Amount))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.OperationResponse{
		Wallet:      dto.FromWallet(wallet),
		Transaction: dto.FromTransaction(txn),
	})
}

// SendMoney handles POST /api/v1/wallets/send.
func (h *WalletHandler) SendMoney(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.SendMoneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	toUserID, err := uuid.Parse(req.ToUserID)
	if err != nil {
		response.Error(c, apperror.Validation("to_user_id must be a valid UUID"))
		return
	}

	wallet, txn, err := h.ledgerSvc.SendMoney(c.Request.Context(), userID, toUserID, domain.Money(req.Amount))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.OperationResponse{
		Wallet:      dto.FromWallet(wallet),
		Transaction: dto.FromTransaction(txn),
	})
}
