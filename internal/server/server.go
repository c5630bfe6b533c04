package server

import (
	"context"
	"net/http"

	"rentercheck/internal/auth"
	"rentercheck/internal/billing"
	"rentercheck/internal/config"
	"rentercheck/internal/cost"
	"rentercheck/internal/ledger"
	"rentercheck/internal/wallet"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cache *redis.Client, cfg *config.Config) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	costRepo := cost.NewRepository(db)
	resolver := cost.NewResolver(costRepo, cache, cfg.CostCacheTTL, cfg.CostFailOpen)
	ledgerRepo := ledger.NewRepository(db)
	walletRepo := wallet.NewRepository(db)

	billingService := billing.NewService(resolver, ledgerRepo, walletRepo, cfg.PhoneCountryCode, cfg.LedgerTTL)

	billingHandler := billing.NewHandler(billingService)
	walletHandler := wallet.NewHandler(db, cfg.BetaRefillAmount)
	costHandler := cost.NewHandler(db, resolver)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.POST("/search/gate", billingHandler.Gate)
		protected.GET("/wallet", walletHandler.GetBalance)
		protected.GET("/wallet/transactions", walletHandler.ListTransactions)
		protected.POST("/beta/refill", walletHandler.BetaRefill)
	}

	adminMiddleware := auth.RequireRole("admin")
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.GET("/costs", costHandler.List)
		admin.PUT("/costs/:actionKey", costHandler.Upsert)
		admin.POST("/costs/:actionKey/toggle", costHandler.Toggle)
		admin.POST("/wallets/:userID/adjust", walletHandler.Adjust)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
