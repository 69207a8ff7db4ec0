package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TakeshiImakurusu/contract-management-system/config"
	"github.com/TakeshiImakurusu/contract-management-system/handler"
	"github.com/TakeshiImakurusu/contract-management-system/middleware"
	"github.com/TakeshiImakurusu/contract-management-system/pkg/logger"
	"github.com/TakeshiImakurusu/contract-management-system/service"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Load seed data: built-in dashboard dataset unless a seed file is
	// configured
	seed := service.DefaultSeed()
	if cfg.Seed.Path != "" {
		seed, err = service.LoadSeedFile(cfg.Seed.Path)
		if err != nil {
			slog.Error("failed to load seed file", "path", cfg.Seed.Path, "error", err)
			os.Exit(1)
		}
		slog.Info("seed data loaded", "path", cfg.Seed.Path,
			"orders", len(seed.Orders), "contracts", len(seed.Contracts))
	}

	// Initialize stores
	orders := service.NewOrderStore(seed.Orders)
	contracts := service.NewContractStore(seed.Contracts, seed.Extras)
	drafts := service.NewDraftStore()

	workflow := service.NewWorkflow(orders, drafts)
	builder := service.NewDraftBuilder(orders, drafts)

	// Optional attachment store
	var attachments *service.AttachmentStore
	if cfg.Attachments.Enabled {
		attachments, err = service.NewAttachmentStore(&cfg.Attachments)
		if err != nil {
			slog.Error("failed to initialize attachment store", "error", err)
			os.Exit(1)
		}
		if err := attachments.EnsureBucket(context.Background()); err != nil {
			slog.Error("failed to ensure attachment bucket", "error", err)
			os.Exit(1)
		}
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(cfg)
	orderHandler := handler.NewOrderHandler(orders, contracts, drafts, workflow)
	diffHandler := handler.NewDiffHandler(orders, contracts, drafts, builder)
	contractHandler := handler.NewContractHandler(contracts, attachments)
	tenantHandler := handler.NewTenantHandler(contracts)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware

	// Add custom middleware
	router.Use(middleware.RequestID())                 // Request ID for tracing
	router.Use(middleware.Recovery())                  // Panic recovery
	router.Use(middleware.RequestLogger())             // Access logging
	router.Use(corsMiddleware())                       // CORS
	router.Use(middleware.RateLimit(100, time.Minute)) // Rate limiting: 100 requests per minute

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)

		protected.GET("/orders", orderHandler.List)
		protected.GET("/orders/counts", orderHandler.Counts)
		protected.GET("/orders/:id", orderHandler.Get)
		protected.POST("/orders/:id/assign", orderHandler.Assign)
		protected.POST("/orders/:id/validate", orderHandler.Validate)
		protected.POST("/orders/:id/submit", orderHandler.Submit)
		protected.POST("/orders/:id/approve", orderHandler.Approve)
		protected.POST("/orders/:id/post", orderHandler.Post)
		protected.POST("/orders/:id/send-back", orderHandler.SendBack)

		protected.GET("/orders/:id/diff", diffHandler.Diff)
		protected.GET("/orders/:id/draft", diffHandler.GetDraft)
		protected.PUT("/orders/:id/draft", diffHandler.SaveDraft)

		protected.GET("/contracts", contractHandler.List)
		protected.GET("/contracts/:id", contractHandler.Get)
		protected.GET("/contracts/:id/attachments/:name", contractHandler.Attachment)

		protected.GET("/tenants", tenantHandler.List)
		protected.GET("/tenants/:kentemId", tenantHandler.Get)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// corsMiddleware handles CORS headers for the dashboard frontend
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
