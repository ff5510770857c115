package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"apartment-backend/internal/auth"
	"apartment-backend/internal/cache"
	"apartment-backend/internal/config"
	"apartment-backend/internal/database"
	"apartment-backend/internal/db"
	"apartment-backend/internal/handlers"
	"apartment-backend/internal/health"
	h "apartment-backend/internal/http"
	"apartment-backend/internal/logging"
	"apartment-backend/internal/middleware"
	"apartment-backend/internal/models"
	"apartment-backend/internal/repositories"
	"apartment-backend/internal/services"
	"apartment-backend/internal/storage"
	"apartment-backend/pkg/utils"

	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()

	_, syncLogger := logging.Init(cfg.Log.Level, cfg.IsDevelopment())
	defer syncLogger()

	utils.ExposeInternalErrors(cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		zap.L().Fatal("[DB] Connection failed", zap.Error(err))
	}
	defer pool.Close()

	if err := database.NewMigrator(pool).RunMigrations(ctx); err != nil {
		zap.L().Fatal("[Migrations] Failed", zap.Error(err))
	}

	// Redis is optional; logins fall back to secret verification
	if err := cache.Init(cfg); err != nil {
		zap.L().Warn("[Redis] Unavailable, credential cache disabled", zap.Error(err))
	}
	defer cache.Close()

	// Report archiving is optional; a nil store must stay a nil interface
	var archiver services.ReportArchiver
	reportStore, err := storage.NewReportStore(ctx, cfg)
	if err != nil {
		zap.L().Warn("[Reports] Object storage unavailable, archiving disabled", zap.Error(err))
	} else if reportStore != nil {
		archiver = reportStore
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	loginLogRepo := repositories.NewLoginLogRepository(pool)
	householdRepo := repositories.NewHouseholdRepository(pool)
	residentRepo := repositories.NewResidentRepository(pool)
	feeRepo := repositories.NewFeeRepository(pool)
	contributionRepo := repositories.NewContributionRepository(pool)
	residenceRepo := repositories.NewResidenceRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	txManager := db.NewTxManager(pool)

	// Initialize services
	jwtManager := auth.NewJWTManager(cfg)
	userService := services.NewUserService(userRepo, loginLogRepo, jwtManager, cfg.Auth.HashPasswords)
	householdService := services.NewHouseholdService(householdRepo, feeRepo, txManager)
	residentService := services.NewResidentService(residentRepo)
	feeService := services.NewFeeService(feeRepo, householdRepo, txManager)
	reportService := services.NewReportService(feeRepo, archiver)
	contributionService := services.NewContributionService(contributionRepo)
	residenceService := services.NewResidenceService(residenceRepo)
	paymentService := services.NewPaymentService(paymentRepo)
	statisticsService := services.NewStatisticsService(householdRepo, residentRepo, paymentRepo, feeRepo)

	var cacheUp func(ctx context.Context) bool
	if cache.Enabled() {
		cacheUp = cache.IsHealthy
	}
	healthChecker := health.NewHealthChecker(pool, cacheUp)

	router := h.NewRouter(h.Handlers{
		Auth:         handlers.NewAuthHandler(userService),
		User:         handlers.NewUserHandler(userService),
		LoginLog:     handlers.NewLoginLogHandler(userService),
		Household:    handlers.NewHouseholdHandler(householdService),
		Resident:     handlers.NewResidentHandler(residentService),
		Fee:          handlers.NewFeeHandler(feeService),
		Report:       handlers.NewReportHandler(reportService),
		Contribution: handlers.NewContributionHandler(contributionService),
		Residence:    handlers.NewResidenceHandler(residenceService, models.TemporaryResidence),
		Absence:      handlers.NewResidenceHandler(residenceService, models.TemporaryAbsence),
		Payment:      handlers.NewPaymentHandler(paymentService),
		Statistics:   handlers.NewStatisticsHandler(statisticsService),
		Health:       handlers.NewHealthHandler(healthChecker),
	}, middleware.NewAuthMiddleware(jwtManager))

	// Wrap with panic recovery, access logging and CORS
	handler := middleware.PanicRecovery(middleware.RequestLogging(middleware.NewCORS(cfg)(router)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.L().Info("[Server] Listening", zap.String("addr", srv.Addr), zap.String("environment", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("[Server] Failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zap.L().Info("[Server] Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("[Server] Graceful shutdown failed", zap.Error(err))
	}
}
