package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"digital-wallet/internal/adapter/http/dto"
	"digital-wallet/internal/adapter/http/middleware"
	"digital-wallet/internal/core/domain"
	"digital-wallet/internal/core/ports"
	"digital-wallet/internal/core/ports/mocks"
	"digital-wallet/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Auth Handler Tests ---

func TestRegister_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	userID := uuid.New()
	mockAuth.EXPECT().Register(gomock.Any(), ports.RegisterRequest{
		Email:    "alice@example.com",
		Password: "password123",
		Name:     "Alice",
		Role:     domain.RoleUser,
	}).Return(&domain.User{
		ID:        userID,
		Email:     "alice@example.com",
		Name:      "Alice",
		Role:      domain.RoleUser,
		IsActive:  true,
		CreatedAt: time.Now(),
	}, nil)

	body, _ := json.Marshal(dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "password123",
		Name:     "Alice",
		Role:     "user",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, userID.String(), data["id"])
	assert.Equal(t, "alice@example.com", data["email"])
	assert.Equal(t, "user", data["role"])
}

func TestRegister_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	// Empty body => binding error
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte("{}")))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_AdminRoleRejectedByBinding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	body, _ := json.Marshal(dto.RegisterRequest{
		Email:    "eve@example.com",
		Password: "password123",
		Name:     "Eve",
		Role:     "admin",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_EmailExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrEmailExists())

	body, _ := json.Marshal(dto.RegisterRequest{
		Email:    "taken@example.com",
		Password: "password123",
		Name:     "Taken",
		Role:     "user",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	expiry := time.Now().Add(24 * time.Hour)
	mockAuth.EXPECT().Login(gomock.Any(), "alice@example.com", "password123").Return("jwt-token-123", expiry, nil)

	body, _ := json.Marshal(dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "jwt-token-123", data["token"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Login(gomock.Any(), "bad@example.com", "badpassword").Return("", time.Time{}, apperror.ErrInvalidCredentials())

	body, _ := json.Marshal(dto.LoginRequest{
		Email:    "bad@example.com",
		Password: "badpassword",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- Wallet Handler Tests ---

func TestGetWallet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockLedger)

	userID := uuid.New()
	walletID := uuid.New()
	mockLedger.EXPECT().GetWallet(gomock.Any(), userID).Return(&domain.Wallet{
		ID:      walletID,
		OwnerID: userID,
		Balance: 1500,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(middleware.CtxUserID, userID)

	h.GetWallet(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, walletID.String(), data["id"])
	assert.Equal(t, float64(1500), data["balance"])
}

func TestGetWallet_MissingUserID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockLedger)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.GetWallet(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddMoney_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockLedger)

	userID := uuid.New()
	walletID := uuid.New()
	mockLedger.EXPECT().AddMoney(gomock.Any(), userID, domain.Money(500)).Return(
		&domain.Wallet{ID: walletID, OwnerID: userID, Balance: 2000},
		&domain.Transaction{
			ID:             uuid.New(),
			Kind:           domain.TransactionKindDeposit,
			Amount:         500,
			SourceWalletID: walletID,
			SourceUserID:   userID,
			InitiatedBy:    userID,
			Status:         domain.TransactionStatusCompleted,
			CreatedAt:      time.Now(),
		}, nil)

	body, _ := json.Marshal(dto.AmountRequest{Amount: 500})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.CtxUserID, userID)

	h.AddMoney(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	wallet := data["wallet"].(map[string]interface{})
	txn := data["transaction"].(map[string]interface{})
	assert.Equal(t, float64(2000), wallet["balance"])
	assert.Equal(t, "deposit", txn["kind"])
	assert.Equal(t, "completed", txn["status"])
}

func TestAddMoney_NonPositiveAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockLedger)

	body, _ := json.Marshal(map[string]interface{}{"amount": -50})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.CtxUserID, uuid.New())

	h.AddMoney(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWithdrawMoney_InsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockLedger)

	userID := uuid.New()
	mockLedger.EXPECT().WithdrawMoney(gomock.Any(), userID, domain.Money(9999)).Return(nil, nil, apperror.ErrInsufficientFunds())

	body, _ := json.Marshal(dto.AmountRequest{Amount: 9999})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.CtxUserID, userID)

	h.WithdrawMoney(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "WAL_003", resp["error_code"])
}

func TestSendMoney_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockLedger)

	fromID := uuid.New()
	toID := uuid.New()
	mockLedger.EXPECT().SendMoney(gomock.Any(), fromID, toID, domain.Money(1000)).Return(
		&domain.Wallet{ID: uuid.New(), OwnerID: fromID, Balance: 3990},
		&domain.Transaction{
			ID:           uuid.New(),
			Kind:         domain.TransactionKindTransfer,
			Amount:       1000,
			Fee:          10,
			SourceUserID: fromID,
			DestUserID:   &toID,
			InitiatedBy:  fromID,
			Status:       domain.TransactionStatusCompleted,
			CreatedAt:    time.Now(),
		}, nil)

	body, _ := json.Marshal(dto.SendMoneyRequest{
		ToUserID: toID.String(),
		Amount:   1000,
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.CtxUserID, fromID)

	h.SendMoney(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	txn := data["transaction"].(map[string]interface{})
	assert.Equal(t, "transfer", txn["kind"])
	assert.Equal(t, float64(10), txn["fee"])
	assert.Equal(t, toID.String(), txn["dest_user_id"])
}

func TestSendMoney_BadRecipientID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockLedger)

	body, _ := json.Marshal(map[string]interface{}{
		"to_user_id": "not-a-uuid",
		"amount":     100,
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.CtxUserID, uuid.New())

	h.SendMoney(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Agent Handler Tests ---

func TestCashIn_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewAgentHandler(mockLedger, mockReporting)

	agentID := uuid.New()
	userID := uuid.New()
	mockLedger.EXPECT().CashIn(gomock.Any(), agentID, userID, domain.Money(999)).Return(
		&domain.Wallet{ID: uuid.New(), OwnerID: userID, Balance: 1049},
		&domain.Transaction{
			ID:           uuid.New(),
			Kind:         domain.TransactionKindCashIn,
			Amount:       999,
			Commission:   5,
			SourceUserID: userID,
			InitiatedBy:  agentID,
			Status:       domain.TransactionStatusCompleted,
			CreatedAt:    time.Now(),
		}, nil)

	body, _ := json.Marshal(dto.AgentCashRequest{
		UserID: userID.String(),
		Amount: 999,
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.CtxUserID, agentID)

	h.CashIn(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	txn := data["transaction"].(map[string]interface{})
	assert.Equal(t, "cash-in", txn["kind"])
	assert.Equal(t, float64(5), txn["commission"])
}

func TestCashOut_InvalidAgent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewAgentHandler(mockLedger, mockReporting)

	agentID := uuid.New()
	userID := uuid.New()
	mockLedger.EXPECT().CashOut(gomock.Any(), agentID, userID, domain.Money(100)).Return(nil, nil, apperror.ErrInvalidAgent())

	body, _ := json.Marshal(dto.AgentCashRequest{
		UserID: userID.String(),
		Amount: 100,
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.CtxUserID, agentID)

	h.CashOut(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCommissions_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewAgentHandler(mockLedger, mockReporting)

	agentID := uuid.New()
	mockReporting.EXPECT().AgentCommissions(gomock.Any(), agentID, gomock.Any()).Return(&ports.CommissionReport{
		Transactions: []domain.Transaction{
			{
				ID:          uuid.New(),
				Kind:        domain.TransactionKindCashIn,
				Amount:      999,
				Commission:  5,
				InitiatedBy: agentID,
				Status:      domain.TransactionStatusCompleted,
				CreatedAt:   time.Now(),
			},
		},
		Total:           1,
		TotalCommission: 5,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=1&page_size=20", nil)
	c.Set(middleware.CtxUserID, agentID)

	h.Commissions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
	assert.Equal(t, float64(5), data["total_commission"])
}

// --- Transaction Handler Tests ---

func TestListMine_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewTransactionHandler(mockReporting)

	userID := uuid.New()
	mockReporting.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
			require.NotNil(t, params.ParticipantID)
			assert.Equal(t, userID, *params.ParticipantID)
			return []domain.Transaction{
				{
					ID:           uuid.New(),
					Kind:         domain.TransactionKindDeposit,
					Amount:       500,
					SourceUserID: userID,
					InitiatedBy:  userID,
					Status:       domain.TransactionStatusCompleted,
					CreatedAt:    time.Now(),
				},
			}, 1, nil
		})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=1&page_size=20", nil)
	c.Set(middleware.CtxUserID, userID)

	h.ListMine(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	assert.Len(t, items, 1)
	assert.Equal(t, float64(1), data["total_pages"])
}

func TestListMine_ServiceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewTransactionHandler(mockReporting)

	mockReporting.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(nil, int64(0), errors.New("db down"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(middleware.CtxUserID, uuid.New())

	h.ListMine(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// --- Admin Handler Tests ---

func TestAdminListUsers_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdmin := mocks.NewMockAdminService(ctrl)
	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewAdminHandler(mockAdmin, mockReporting)

	mockAdmin.EXPECT().ListUsers(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, params ports.UserListParams) ([]domain.User, int64, error) {
			require.NotNil(t, params.Role)
			assert.Equal(t, domain.RoleAgent, *params.Role)
			return []domain.User{
				{ID: uuid.New(), Email: "agent@example.com", Role: domain.RoleAgent, IsActive: true, IsApproved: true},
			}, 1, nil
		})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?role=agent", nil)

	h.ListUsers(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	assert.Len(t, items, 1)
}

func TestAdminToggleWalletBlock_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdmin := mocks.NewMockAdminService(ctrl)
	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewAdminHandler(mockAdmin, mockReporting)

	walletID := uuid.New()
	mockAdmin.EXPECT().ToggleWalletBlock(gomock.Any(), walletID).Return(&domain.Wallet{
		ID:        walletID,
		OwnerID:   uuid.New(),
		Balance:   700,
		IsBlocked: true,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: walletID.String()}}

	h.ToggleWalletBlock(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["is_blocked"])
}

func TestAdminToggleWalletBlock_BadID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdmin := mocks.NewMockAdminService(ctrl)
	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewAdminHandler(mockAdmin, mockReporting)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	h.ToggleWalletBlock(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminGetStats_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdmin := mocks.NewMockAdminService(ctrl)
	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewAdminHandler(mockAdmin, mockReporting)

	mockReporting.EXPECT().GetStats(gomock.Any(), "week").Return(&ports.TransactionStats{
		TotalTransactions: 42,
		Completed:         40,
		Failed:            2,
		TotalAmount:       100000,
		TotalFees:         1000,
		TotalCommissions:  500,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?period=week", nil)

	h.GetStats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(42), data["total_transactions"])
	assert.Equal(t, float64(1000), data["total_fees"])
}

// --- Health Check Test ---

func TestHealthCheck(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck()(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}
