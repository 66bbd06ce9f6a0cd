package dto

import (
	"math"

	"digital-wallet/internal/core/domain"
)

// RegisterRequest is the request body for account registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Phone    string `json:"phone" binding:"omitempty,phone,max=20"`
	Role     string `json:"role" binding:"required,oneof=user agent"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// AmountRequest is the request body for deposits and withdrawals.
type AmountRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// SendMoneyRequest is the request body for peer transfers.
type SendMoneyRequest struct {
	ToUserID string `json:"to_user_id" binding:"required,uuid"`
	Amount   int64  `json:"amount" binding:"required,gt=0"`
}

// AgentCashRequest is the request body for agent cash-in and cash-out.
type AgentCashRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Amount int64  `json:"amount" binding:"required,gt=0"`
}

// UserResponse is the public view of a user account.
type UserResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role"`
	IsActive   bool   `json:"is_active"`
	IsApproved bool   `json:"is_approved"`
	CreatedAt  string `json:"created_at"`
}

// WalletResponse is the public view of a wallet.
type WalletResponse struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	Balance   int64  `json:"balance"`
	IsBlocked bool   `json:"is_blocked"`
	UpdatedAt string `json:"updated_at"`
}

// TransactionResponse is the public view of a ledger record.
type TransactionResponse struct {
	ID           string  `json:"id"`
	Kind         string  `json:"kind"`
	Amount       int64   `json:"amount"`
	Fee          int64   `json:"fee,omitempty"`
	Commission   int64   `json:"commission,omitempty"`
	SourceUserID string  `json:"source_user_id"`
	DestUserID   *string `json:"dest_user_id,omitempty"`
	InitiatedBy  string  `json:"initiated_by"`
	Status       string  `json:"status"`
	Description  string  `json:"description"`
	CreatedAt    string  `json:"created_at"`
}

// OperationResponse pairs the resulting wallet with the ledger record that
// produced it.
type OperationResponse struct {
	Wallet      WalletResponse      `json:"wallet"`
	Transaction TransactionResponse `json:"transaction"`
}

// TransactionListResponse wraps a paginated transaction list.
type TransactionListResponse struct {
	Items      []TransactionResponse `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// CommissionReportResponse is an agent's commission history.
type CommissionReportResponse struct {
	Items           []TransactionResponse `json:"items"`
	Total           int64                 `json:"total"`
	TotalCommission int64                 `json:"total_commission"`
}

// UserListResponse wraps a paginated user list.
type UserListResponse struct {
	Items      []UserResponse `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// WalletListResponse wraps a paginated wallet list.
type WalletListResponse struct {
	Items      []WalletResponse `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// StatsResponse is the aggregate ledger statistics view.
type StatsResponse struct {
	TotalTransactions int64 `json:"total_transactions"`
	Pending           int64 `json:"pending"`
	Completed         int64 `json:"completed"`
	Failed            int64 `json:"failed"`
	Reversed          int64 `json:"reversed"`
	TotalAmount       int64 `json:"total_amount"`
	TotalFees         int64 `json:"total_fees"`
	TotalCommissions  int64 `json:"total_commissions"`
}

// UserStatsResponse is the aggregate user directory view.
type UserStatsResponse struct {
	TotalUsers     int64 `json:"total_users"`
	TotalAgents    int64 `json:"total_agents"`
	ActiveUsers    int64 `json:"active_users"`
	ActiveAgents   int64 `json:"active_agents"`
	ApprovedAgents int64 `json:"approved_agents"`
	BlockedUsers   int64 `json:"blocked_users"`
}

// TotalPages computes the page count for a paginated response.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(pageSize)))
}

// FromUser maps a domain user to its public view.
func FromUser(u *domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID.String(),
		Email:      u.Email,
		Name:       u.Name,
		Phone:      u.Phone,
		Role:       string(u.Role),
		IsActive:   u.IsActive,
		IsApproved: u.IsApproved,
		CreatedAt:  u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// FromWallet maps a domain wallet to its public view.
func FromWallet(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		ID:        w.ID.String(),
		OwnerID:   w.OwnerID.String(),
		Balance:   int64(w.Balance),
		IsBlocked: w.IsBlocked,
		UpdatedAt: w.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// FromTransaction maps a domain transaction to its public view.
func FromTransaction(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:           t.ID.String(),
		Kind:         string(t.Kind),
		Amount:       int64(t.Amount),
		Fee:          int64(t.Fee),
		Commission:   int64(t.Commission),
		SourceUserID: t.SourceUserID.String(),
		InitiatedBy:  t.InitiatedBy.String(),
		Status:       string(t.Status),
		Description:  t.Description,
		CreatedAt:    t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if t.DestUserID != nil {
		dest := t.DestUserID.String()
		resp.DestUserID = &dest
	}
	return resp
}

// FromTransactions maps a slice of domain transactions.
func FromTransactions(txns []domain.Transaction) []TransactionResponse {
	items := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, FromTransaction(&txns[i]))
	}
	return items
}
