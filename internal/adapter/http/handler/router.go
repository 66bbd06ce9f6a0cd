package handler

import (
	"digital-wallet/internal/adapter/http/middleware"
	"digital-wallet/internal/core/domain"
	"digital-wallet/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	LedgerSvc      ports.LedgerService
	ReportingSvc   ports.ReportingService
	AdminSvc       ports.AdminService
	TokenSvc       ports.TokenService
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	// --- Authenticated user routes ---
	walletHandler := NewWalletHandler(deps.LedgerSvc)
	wallets := v1.Group("/wallets", jwtAuth)
	{
		wallets.GET("/me", walletHandler.GetWallet)
		wallets.POST("/add-money", walletHandler.AddMoney)
		wallets.POST("/withdraw", walletHandler.WithdrawMoney)
		wallets.POST("/send", walletHandler.SendMoney)
	}

	txHandler := NewTransactionHandler(deps.ReportingSvc)
	transactions := v1.Group("/transactions", jwtAuth)
	{
		transactions.GET("", txHandler.ListMine)
	}

	// --- Agent routes (role-guarded) ---
	agentHandler := NewAgentHandler(deps.LedgerSvc, deps.ReportingSvc)
	agent := v1.Group("/agent", jwtAuth, middleware.RequireRole(domain.RoleAgent))
	{
		agent.POST("/cash-in", agentHandler.CashIn)
		agent.POST("/cash-out", agentHandler.CashOut)
		agent.GET("/commissions", agentHandler.Commissions)
	}

	// --- Admin routes (role-guarded) ---
	adminHandler := NewAdminHandler(deps.AdminSvc, deps.ReportingSvc)
	admin := v1.Group("/admin", jwtAuth, middleware.RequireRole(domain.RoleAdmin))
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.GET("/users/stats", adminHandler.GetUserStats)
		admin.POST("/users/:id/toggle-active", adminHandler.ToggleUserActive)
		admin.POST("/agents/:id/toggle-approval", adminHandler.ToggleAgentApproval)
		admin.GET("/wallets", adminHandler.ListWallets)
		admin.POST("/wallets/:id/toggle-block", adminHandler.ToggleWalletBlock)
		admin.GET("/transactions", adminHandler.ListTransactions)
		admin.GET("/stats", adminHandler.GetStats)
	}

	return r
}
