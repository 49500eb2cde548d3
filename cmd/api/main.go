package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/scango-api/internal/application/service"
	"github.com/sangkips/scango-api/internal/config"
	domainRepo "github.com/sangkips/scango-api/internal/domain/repository"
	"github.com/sangkips/scango-api/internal/infrastructure/database"
	"github.com/sangkips/scango-api/internal/infrastructure/repository"
	"github.com/sangkips/scango-api/internal/presentation/http/handler"
	"github.com/sangkips/scango-api/internal/presentation/http/middleware"
	"github.com/sangkips/scango-api/internal/presentation/http/routes"
	"github.com/sangkips/scango-api/pkg/logger"
	"github.com/sangkips/scango-api/pkg/otp"
	"github.com/sangkips/scango-api/pkg/printer"
	"github.com/sangkips/scango-api/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.Must(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Local store is always available
	localDB, err := database.NewLocalDB(cfg.Local.Path, cfg.App.Debug, log)
	if err != nil {
		log.Fatal("Failed to open local store", zap.Error(err))
	}
	if err := database.AutoMigrateLocal(localDB, log); err != nil {
		log.Fatal("Failed to migrate local store", zap.Error(err))
	}
	if err := database.SeedCatalog(localDB, log); err != nil {
		log.Warn("Failed to seed catalog", zap.Error(err))
	}
	if err := database.SeedLocal(localDB, log); err != nil {
		log.Warn("Failed to seed stores", zap.Error(err))
	}
	if cfg.App.IsDevelopment() {
		if err := database.SeedDevEmployee(localDB, log); err != nil {
			log.Warn("Failed to seed dev employee", zap.Error(err))
		}
	}

	// Remote store is optional; the app runs local-only without it
	remoteDB := openRemote(cfg, log)

	health := repository.NewRemoteHealth(cfg.Database.Cooldown)
	var remoteReady func(context.Context) error
	if remoteDB != nil {
		schema := database.NewRemoteSchema(remoteDB, cfg.Database.Timeout, log)
		remoteReady = schema.Ensure
		if err := schema.Ensure(context.Background()); err != nil {
			health.MarkFailure()
			log.Warn("Remote store unreachable at startup, will retry", zap.Error(err))
		}
	}
	fallbackOpts := repository.FallbackOptions{
		Resolver: repository.RemoteWhenReady(cfg.Database.Enabled, health, remoteReady, log),
		Health:   health,
		Timeout:  cfg.Database.Timeout,
		Logger:   log,
	}

	// Initialize repositories
	var (
		remoteReceipts  domainRepo.ReceiptStore
		remoteCatalog   domainRepo.CatalogRepository
		remoteEmployees domainRepo.EmployeeRepository
	)
	if remoteDB != nil {
		remoteReceipts = repository.NewReceiptRepository(remoteDB)
		remoteCatalog = repository.NewCatalogRepository(remoteDB)
		remoteEmployees = repository.NewEmployeeRepository(remoteDB)
	}
	receiptStore := repository.NewFallbackReceiptStore(remoteReceipts, repository.NewReceiptRepository(localDB), fallbackOpts)
	catalogRepo := repository.NewFallbackCatalogRepository(remoteCatalog, repository.NewCatalogRepository(localDB), fallbackOpts)
	employeeRepo := repository.NewFallbackEmployeeRepository(remoteEmployees, repository.NewEmployeeRepository(localDB), fallbackOpts)
	storeRepo := repository.NewStoreRepository(localDB)
	historyRepo := repository.NewHistoryRepository(localDB)
	idempotencyRepo := repository.NewIdempotencyRepository(localDB)

	// OTP gateway
	otpClient := otp.NewClient(otp.Config{
		BaseURL:         cfg.OTP.BaseURL,
		Timeout:         cfg.OTP.Timeout,
		OfflineFallback: cfg.OTP.OfflineFallback,
		ClientID:        cfg.OTP.ClientID,
		ClientSecret:    cfg.OTP.ClientSecret,
		TokenURL:        cfg.OTP.TokenURL,
	}, log)

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours, cfg.App.Name)

	// Initialize services
	authService := service.NewAuthService(employeeRepo, jwtManager, otpClient, cfg.App.IsDevelopment(), log)
	storeService := service.NewStoreService(storeRepo)
	catalogService := service.NewCatalogService(catalogRepo, log)
	cartService := service.NewCartService(catalogService, storeRepo)
	checkoutService := service.NewCheckoutService(receiptStore, historyRepo, storeRepo, cfg.Checkout.ReceiptMaxAttempts, log)
	receiptService := service.NewReceiptService(receiptStore, historyRepo, cfg.Checkout.DevHistoryLookup, log)
	historyService := service.NewHistoryService(historyRepo)
	terminalGuard := service.NewTerminalGuard()

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Warn("Failed to initialize printer", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, receiptService, storeRepo, cfg.Printer.Type, log)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Store:   handler.NewStoreHandler(storeService),
		Catalog: handler.NewCatalogHandler(catalogService, cartService),
		Cart:    handler.NewCartHandler(cartService),
		Order:   handler.NewOrderHandler(checkoutService, cartService, historyService),
		Staff:   handler.NewStaffHandler(receiptService, printerService),
		Printer: handler.NewPrinterHandler(printerService),
	}

	rateLimiter := middleware.NewTerminalRateLimiter(
		middleware.RateLimiterConfigFor(cfg.RateLimit.Requests, cfg.RateLimit.Duration),
	)
	defer rateLimiter.Close()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		TerminalGuard:   terminalGuard,
		RateLimiter:     rateLimiter,
		Logger:          log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go purgeIdempotencyKeys(ctx, idempotencyRepo, log)

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Starting server",
			zap.String("service", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
			zap.Bool("remote_store", remoteDB != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}

// openRemote prepares the networked store without dialing it. Reachability
// and migrations are checked per call through RemoteSchema, so only a
// configuration error stops startup.
func openRemote(cfg *config.Config, log *zap.Logger) *gorm.DB {
	if !cfg.Database.Enabled {
		log.Info("Remote store disabled, running local-only")
		return nil
	}
	db, err := database.NewRemoteDB(&cfg.Database, cfg.App.Debug, log)
	if err != nil {
		log.Fatal("Invalid remote store configuration", zap.Error(err))
	}
	return db
}

func purgeIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, log *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				log.Warn("Failed to purge idempotency keys", zap.Error(err))
			}
		}
	}
}
