package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpHandler "digital-wallet/internal/adapter/http/handler"
	redisStorage "digital-wallet/internal/adapter/storage/redis"
	"digital-wallet/internal/core/domain"
	"digital-wallet/internal/core/ports"
	"digital-wallet/internal/service"
	"digital-wallet/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp builds a full application stack over in-memory repositories and
// miniredis. This exercises the real HTTP layer, middleware, handlers,
// services and the Redis wallet cache end-to-end. The serializing transactor
// stands in for row-level locking, so concurrency outcomes are exact.

const testStartingBalance = domain.Money(50)

type testApp struct {
	server     *httptest.Server
	redis      *miniredis.Miniredis
	userRepo   *inMemoryUserRepo
	walletRepo *inMemoryWalletRepo
	txRepo     *inMemoryTransactionRepo
	hashSvc    ports.HashService
	tokenSvc   ports.TokenService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	walletCache := redisStorage.NewWalletCache(rdb)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	walletRepo := newInMemoryWalletRepo()
	userRepo := newInMemoryUserRepo(walletRepo)
	txRepo := newInMemoryTransactionRepo()
	transactor := newSerialTransactor()

	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService("test-jwt-secret-key-32bytes!!", 24*time.Hour, "test-issuer")
	log := logger.New("debug", false)

	authSvc := service.NewAuthService(userRepo, walletRepo, hashSvc, tokenSvc, testStartingBalance)
	ledgerSvc := service.NewLedgerService(walletRepo, txRepo, userRepo, walletCache, transactor, 5*time.Second, log)
	reportingSvc := service.NewReportingService(txRepo, walletRepo)
	adminSvc := service.NewAdminService(userRepo, walletRepo, walletCache, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		LedgerSvc:      ledgerSvc,
		ReportingSvc:   reportingSvc,
		AdminSvc:       adminSvc,
		TokenSvc:       tokenSvc,
		HealthCheckers: []ports.HealthChecker{redisHealth},
		Logger:         log,
	})

	return &testApp{
		server:     httptest.NewServer(router),
		redis:      mr,
		userRepo:   userRepo,
		walletRepo: walletRepo,
		txRepo:     txRepo,
		hashSvc:    hashSvc,
		tokenSvc:   tokenSvc,
	}
}

func (a *testApp) close() {
	a.server.Close()
	a.redis.Close()
}

// register creates an account through the API and returns its user ID.
func (a *testApp) register(t *testing.T, email, password, name, role string) uuid.UUID {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
		"role":     role,
	})
	resp, err := http.Post(a.server.URL+"/api/v1/auth/register", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var regResp struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&regResp))
	id, err := uuid.Parse(regResp.Data.ID)
	require.NoError(t, err)
	return id
}

// login authenticates through the API and returns a bearer token.
func (a *testApp) login(t *testing.T, email, password string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	resp, err := http.Post(a.server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	require.NotEmpty(t, loginResp.Data.Token)
	return loginResp.Data.Token
}

// approveAgent flips the approval flag directly in storage. Approval normally
// goes through an admin, which is covered by the admin endpoint tests.
func (a *testApp) approveAgent(t *testing.T, agentID uuid.UUID) {
	t.Helper()
	agent, err := a.userRepo.GetByID(context.Background(), agentID)
	require.NoError(t, err)
	require.NotNil(t, agent)
	agent.IsApproved = true
	require.NoError(t, a.userRepo.Update(context.Background(), agent))
}

// seedAdmin inserts an admin account directly; admins are never created via
// the registration endpoint.
func (a *testApp) seedAdmin(t *testing.T, email, password string) uuid.UUID {
	t.Helper()
	hash, err := a.hashSvc.Hash(password)
	require.NoError(t, err)
	admin := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         "Admin",
		Role:         domain.RoleAdmin,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, a.userRepo.Create(context.Background(), admin))
	require.NoError(t, a.walletRepo.Create(context.Background(), domain.NewWallet(admin.ID, testStartingBalance)))
	return admin.ID
}

// doJSON performs an authenticated request and decodes the envelope.
func (a *testApp) doJSON(t *testing.T, method, path, token string, reqBody interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if reqBody != nil {
		raw, err := json.Marshal(reqBody)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

// balance reads the caller's wallet balance through the API.
func (a *testApp) balance(t *testing.T, token string) int64 {
	t.Helper()
	code, body := a.doJSON(t, http.MethodGet, "/api/v1/wallets/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]interface{})
	return int64(data["balance"].(float64))
}

// --- Integration Tests ---

func TestIntegration_HealthCheck(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, err := http.Get(app.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestIntegration_RegisterGrantsStartingBalance(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.register(t, "alice@example.com", "StrongPass123!", "Alice", "user")
	token := app.login(t, "alice@example.com", "StrongPass123!")

	assert.Equal(t, int64(testStartingBalance), app.balance(t, token))
}

func TestIntegration_LoginWrongCredentials(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.register(t, "bob@example.com", "StrongPass123!", "Bob", "user")

	body, _ := json.Marshal(map[string]string{
		"email":    "bob@example.com",
		"password": "wrong-password",
	})
	resp, err := http.Post(app.server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIntegration_DuplicateEmailRejected(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.register(t, "dup@example.com", "StrongPass123!", "First", "user")

	body, _ := json.Marshal(map[string]string{
		"email":    "dup@example.com",
		"password": "OtherPass456!",
		"name":     "Second",
		"role":     "user",
	})
	resp, err := http.Post(app.server.URL+"/api/v1/auth/register", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestIntegration_AddAndWithdraw(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.register(t, "carol@example.com", "StrongPass123!", "Carol", "user")
	token := app.login(t, "carol@example.com", "StrongPass123!")

	// 50 starting + 100 deposited
	code, body := app.doJSON(t, http.MethodPost, "/api/v1/wallets/add-money", token, map[string]int64{"amount": 100})
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]interface{})
	wallet := data["wallet"].(map[string]interface{})
	assert.Equal(t, float64(150), wallet["balance"])

	// Withdrawing more than the balance fails and changes nothing
	code, body = app.doJSON(t, http.MethodPost, "/api/v1/wallets/withdraw", token, map[string]int64{"amount": 200})
	assert.Equal(t, http.StatusPaymentRequired, code)
	assert.Equal(t, "WAL_003", body["error_code"])
	assert.Equal(t, int64(150), app.balance(t, token))

	// Withdrawing the full balance succeeds
	code, body = app.doJSON(t, http.MethodPost, "/api/v1/wallets/withdraw", token, map[string]int64{"amount": 150})
	require.Equal(t, http.StatusOK, code)
	data = body["data"].(map[string]interface{})
	wallet = data["wallet"].(map[string]interface{})
	assert.Equal(t, float64(0), wallet["balance"])
}

func TestIntegration_AddMoneyOverflowRejected(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.register(t, "whale@example.com", "StrongPass123!", "Whale", "user")
	token := app.login(t, "whale@example.com", "StrongPass123!")

	// A deposit that would push the balance past the int64 range must be
	// rejected, not wrapped negative.
	code, body := app.doJSON(t, http.MethodPost, "/api/v1/wallets/add-money", token, map[string]int64{"amount": math.MaxInt64})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "WAL_005", body["error_code"])
	assert.Equal(t, int64(50), app.balance(t, token))
}

func TestIntegration_SendMoneyChargesFee(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	senderID := app.register(t, "sender@example.com", "StrongPass123!", "Sender", "user")
	recipientID := app.register(t, "recipient@example.com", "StrongPass123!", "Recipient", "user")
	_ = senderID

	senderToken := app.login(t, "sender@example.com", "StrongPass123!")
	recipientToken := app.login(t, "recipient@example.com", "StrongPass123!")

	// Fund sender to 5000
	code, _ := app.doJSON(t, http.MethodPost, "/api/v1/wallets/add-money", senderToken, map[string]int64{"amount": 4950})
	require.Equal(t, http.StatusOK, code)

	// Send 1000; 1% fee rounds up to 10
	code, body := app.doJSON(t, http.MethodPost, "/api/v1/wallets/send", senderToken, map[string]interface{}{
		"to_user_id": recipientID.String(),
		"amount":     1000,
	})
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]interface{})
	txn := data["transaction"].(map[string]interface{})
	assert.Equal(t, "transfer", txn["kind"])
	assert.Equal(t, float64(10), txn["fee"])

	assert.Equal(t, int64(3990), app.balance(t, senderToken))
	assert.Equal(t, int64(1050), app.balance(t, recipientToken))

	// Transaction appears in both histories
	code, body = app.doJSON(t, http.MethodGet, "/api/v1/transactions", recipientToken, nil)
	require.Equal(t, http.StatusOK, code)
	listData := body["data"].(map[string]interface{})
	items := listData["items"].([]interface{})
	require.NotEmpty(t, items)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "transfer", first["kind"])
}

func TestIntegration_SendMoneyToSelfRejected(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	selfID := app.register(t, "self@example.com", "StrongPass123!", "Self", "user")
	token := app.login(t, "self@example.com", "StrongPass123!")

	code, body := app.doJSON(t, http.MethodPost, "/api/v1/wallets/send", token, map[string]interface{}{
		"to_user_id": selfID.String(),
		"amount":     10,
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "TXN_001", body["error_code"])
}

func TestIntegration_AgentCashFlow(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	agentID := app.register(t, "agent@example.com", "StrongPass123!", "Agent", "agent")
	userID := app.register(t, "customer@example.com", "StrongPass123!", "Customer", "user")

	agentToken := app.login(t, "agent@example.com", "StrongPass123!")
	userToken := app.login(t, "customer@example.com", "StrongPass123!")

	// Unapproved agents cannot operate
	code, body := app.doJSON(t, http.MethodPost, "/api/v1/agent/cash-in", agentToken, map[string]interface{}{
		"user_id": userID.String(),
		"amount":  999,
	})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "TXN_003", body["error_code"])

	app.approveAgent(t, agentID)

	// Cash-in 999; 0.5% commission rounds up to 5
	code, body = app.doJSON(t, http.MethodPost, "/api/v1/agent/cash-in", agentToken, map[string]interface{}{
		"user_id": userID.String(),
		"amount":  999,
	})
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]interface{})
	txn := data["transaction"].(map[string]interface{})
	assert.Equal(t, "cash-in", txn["kind"])
	assert.Equal(t, float64(5), txn["commission"])
	assert.Equal(t, int64(1049), app.balance(t, userToken))

	// Cash-out 1000
	code, body = app.doJSON(t, http.MethodPost, "/api/v1/agent/cash-out", agentToken, map[string]interface{}{
		"user_id": userID.String(),
		"amount":  1000,
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(49), app.balance(t, userToken))

	// Commission report sums both operations
	code, body = app.doJSON(t, http.MethodGet, "/api/v1/agent/commissions", agentToken, nil)
	require.Equal(t, http.StatusOK, code)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])
	assert.Equal(t, float64(10), data["total_commission"])
}

func TestIntegration_AgentRoutesGuarded(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.register(t, "plain@example.com", "StrongPass123!", "Plain", "user")
	token := app.login(t, "plain@example.com", "StrongPass123!")

	code, body := app.doJSON(t, http.MethodPost, "/api/v1/agent/cash-in", token, map[string]interface{}{
		"user_id": uuid.NewString(),
		"amount":  100,
	})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "AUTH_005", body["error_code"])
}

func TestIntegration_AdminBlockWallet(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.seedAdmin(t, "admin@example.com", "AdminPass123!")
	adminToken := app.login(t, "admin@example.com", "AdminPass123!")

	userID := app.register(t, "victim@example.com", "StrongPass123!", "Victim", "user")
	userToken := app.login(t, "victim@example.com", "StrongPass123!")

	// Admin routes are closed to plain users
	code, _ := app.doJSON(t, http.MethodGet, "/api/v1/admin/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// Find the wallet and block it
	wallet, err := app.walletRepo.GetByOwnerID(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, wallet)

	code, body := app.doJSON(t, http.MethodPost,
		fmt.Sprintf("/api/v1/admin/wallets/%s/toggle-block", wallet.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["is_blocked"])

	// Blocked wallets refuse debits but keep their balance
	code, body = app.doJSON(t, http.MethodPost, "/api/v1/wallets/withdraw", userToken, map[string]int64{"amount": 10})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "WAL_002", body["error_code"])

	// Unblock restores service
	code, _ = app.doJSON(t, http.MethodPost,
		fmt.Sprintf("/api/v1/admin/wallets/%s/toggle-block", wallet.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = app.doJSON(t, http.MethodPost, "/api/v1/wallets/withdraw", userToken, map[string]int64{"amount": 10})
	assert.Equal(t, http.StatusOK, code)
}

func TestIntegration_AdminStats(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.seedAdmin(t, "admin2@example.com", "AdminPass123!")
	adminToken := app.login(t, "admin2@example.com", "AdminPass123!")

	app.register(t, "s1@example.com", "StrongPass123!", "S1", "user")
	token := app.login(t, "s1@example.com", "StrongPass123!")
	code, _ := app.doJSON(t, http.MethodPost, "/api/v1/wallets/add-money", token, map[string]int64{"amount": 500})
	require.Equal(t, http.StatusOK, code)

	code, body := app.doJSON(t, http.MethodGet, "/api/v1/admin/stats?period=all", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total_transactions"])
	assert.Equal(t, float64(1), data["completed"])
	assert.Equal(t, float64(500), data["total_amount"])

	code, body = app.doJSON(t, http.MethodGet, "/api/v1/admin/users/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total_users"])
}

func TestIntegration_RequestRequiresToken(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, err := http.Get(app.server.URL + "/api/v1/wallets/me")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
