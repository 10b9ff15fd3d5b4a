package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/auth"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/config"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/handler"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/middleware"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/repository/postgres"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/storage"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/tenant"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
	)

	// Token issuer and role catalog
	issuer, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry, logger)
	if err != nil {
		log.Fatalf("Failed to create token issuer: %v", err)
	}

	perms, err := auth.NewPermissionRegistry()
	if err != nil {
		log.Fatalf("Failed to load permission catalog: %v", err)
	}
	logger.Info("permission catalog loaded", "permissions", len(perms.AllPermissions()))

	// Upload storage
	store, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to create upload store: %v", err)
	}

	// Tenant connection registry. Each company resolves to its own
	// logical database, created and migrated on first use.
	registry := tenant.NewRegistry(
		cfg.DatabaseURL,
		postgres.OpenTenantDatabase(cfg.DatabaseURL),
		cfg.HealthCheckInterval,
		logger,
	)

	// Create handlers
	authHandler := handler.NewAuthHandler(issuer, perms, logger)
	userHandler := handler.NewUserHandler(perms, logger)
	folderHandler := handler.NewFolderHandler(logger)
	docHandler := handler.NewDocumentHandler(store, cfg.MaxUploadBytes, logger)
	templateHandler := handler.NewTemplateHandler(logger)
	contractHandler := handler.NewContractHandler(logger)
	auditHandler := handler.NewAuditHandler(logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /api/health", handler.Health)

	// Auth routes
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/register", middleware.RequireAdmin(authHandler.Register))
	mux.HandleFunc("GET /api/auth/me", authHandler.Me)
	mux.HandleFunc("POST /api/auth/change-password", authHandler.ChangePassword)

	// User routes (admin only)
	mux.HandleFunc("GET /api/users", middleware.RequireAdmin(userHandler.List))
	mux.HandleFunc("GET /api/users/{id}", middleware.RequireAdmin(userHandler.Get))
	mux.HandleFunc("PUT /api/users/{id}", middleware.RequireAdmin(userHandler.Update))
	mux.HandleFunc("DELETE /api/users/{id}", middleware.RequireAdmin(userHandler.Delete))
	mux.HandleFunc("POST /api/users/{id}/reset-password", middleware.RequireAdmin(userHandler.ResetPassword))

	// Folder routes
	mux.HandleFunc("POST /api/folders", middleware.RequireEditor(folderHandler.Create))
	mux.HandleFunc("GET /api/folders", folderHandler.List)
	mux.HandleFunc("GET /api/folders/tree", folderHandler.Tree) // Must come before {id} route
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.Get)
	mux.HandleFunc("PUT /api/folders/{id}", middleware.RequireEditor(folderHandler.Update))
	mux.HandleFunc("DELETE /api/folders/{id}", middleware.RequireEditor(folderHandler.Delete))

	// Document routes
	mux.HandleFunc("POST /api/documents", middleware.RequireEditor(docHandler.Upload))
	mux.HandleFunc("GET /api/documents", docHandler.List)
	mux.HandleFunc("GET /api/documents/{id}", docHandler.Get)
	mux.HandleFunc("GET /api/documents/{id}/download", docHandler.Download)
	mux.HandleFunc("PUT /api/documents/{id}", middleware.RequireEditor(docHandler.Update))
	mux.HandleFunc("DELETE /api/documents/{id}", middleware.RequireEditor(docHandler.Delete))

	// Template routes
	mux.HandleFunc("POST /api/templates", middleware.RequireEditor(templateHandler.Create))
	mux.HandleFunc("GET /api/templates", templateHandler.List)
	mux.HandleFunc("GET /api/templates/{id}", templateHandler.Get)
	mux.HandleFunc("PUT /api/templates/{id}", middleware.RequireEditor(templateHandler.Update))
	mux.HandleFunc("DELETE /api/templates/{id}", middleware.RequireEditor(templateHandler.Delete))
	mux.HandleFunc("POST /api/templates/{id}/use", templateHandler.Use)

	// Contract routes
	mux.HandleFunc("POST /api/contracts", middleware.RequireEditor(contractHandler.Create))
	mux.HandleFunc("GET /api/contracts", contractHandler.List)
	mux.HandleFunc("GET /api/contracts/{id}", contractHandler.Get)
	mux.HandleFunc("PUT /api/contracts/{id}", middleware.RequireEditor(contractHandler.Update))
	mux.HandleFunc("DELETE /api/contracts/{id}", middleware.RequireEditor(contractHandler.Delete))
	mux.HandleFunc("POST /api/contracts/{id}/sign", middleware.RequireEditor(contractHandler.Sign))

	// Audit log routes (admin only)
	mux.HandleFunc("GET /api/audit-logs", middleware.RequireAdmin(auditHandler.List))

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Tenant → Auth → Routes
	root = middleware.Auth(issuer, logger)(root)
	root = middleware.Tenant(registry, logger)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.CompanyHeader},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Shut down cleanly on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	registry.CloseAll()
	logger.Info("server stopped")
}
