package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hyessol/fridgecheck-backend/internal/adapter/postgres"
	auditrepo "github.com/hyessol/fridgecheck-backend/internal/adapter/postgres/audit"
	bundlerepo "github.com/hyessol/fridgecheck-backend/internal/adapter/postgres/bundle"
	penaltyrepo "github.com/hyessol/fridgecheck-backend/internal/adapter/postgres/penalty"
	schedulerepo "github.com/hyessol/fridgecheck-backend/internal/adapter/postgres/schedule"
	sessionrepo "github.com/hyessol/fridgecheck-backend/internal/adapter/postgres/session"
	slotrepo "github.com/hyessol/fridgecheck-backend/internal/adapter/postgres/slot"
	"github.com/hyessol/fridgecheck-backend/internal/auth"
	"github.com/hyessol/fridgecheck-backend/internal/config"
	"github.com/hyessol/fridgecheck-backend/internal/domain"
	inspectionsvc "github.com/hyessol/fridgecheck-backend/internal/service/inspection"
	inventorysvc "github.com/hyessol/fridgecheck-backend/internal/service/inventory"
	schedulesvc "github.com/hyessol/fridgecheck-backend/internal/service/schedule"
	slotsvc "github.com/hyessol/fridgecheck-backend/internal/service/slot"
	"github.com/hyessol/fridgecheck-backend/internal/transport/middleware"
	"github.com/hyessol/fridgecheck-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires repositories, services, and HTTP transport, and
// serves until ctx is canceled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)

	auditRepo := auditrepo.New(pool)
	bundleRepo := bundlerepo.New(pool)
	penaltyRepo := penaltyrepo.New(pool)
	scheduleRepo := schedulerepo.New(pool)
	sessionRepo := sessionrepo.New(pool)
	slotRepo := slotrepo.New(pool)

	inventoryService := inventorysvc.NewService(
		logger, slotRepo, bundleRepo, auditRepo, txm,
		cfg.Inspection.ExpiringWindowDays,
	)

	inspectionService := inspectionsvc.NewService(
		logger, slotRepo, sessionRepo, bundleRepo, scheduleRepo, penaltyRepo,
		domain.StaticPenaltyPolicy{
			WarningPoints: cfg.Inspection.WarningPoints,
			DisposePoints: cfg.Inspection.DisposePoints,
		},
		auditRepo, txm,
		cfg.Inspection.PenaltyExpiryDays,
	)

	scheduleService := schedulesvc.NewService(logger, scheduleRepo, slotRepo, auditRepo)
	slotService := slotsvc.NewService(logger, slotRepo, auditRepo)

	validator := auth.NewTokenValidator(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)

	router := rest.NewRouter(rest.Handlers{
		Health:     rest.NewHealthHandler(pool, BuildVersion()),
		Slots:      rest.NewSlotHandler(slotService, logger),
		Inventory:  rest.NewInventoryHandler(inventoryService, logger),
		Inspection: rest.NewInspectionHandler(inspectionService, logger),
		Schedules:  rest.NewScheduleHandler(scheduleService, logger),
	})

	mws := []middleware.Middleware{
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(validator),
	}
	var limiter *middleware.RateLimiter
	if cfg.Server.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.Server.RateLimitSweep)
		defer limiter.Stop()
		mws = append(mws, limiter.Limit(cfg.Server.RateLimit))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      middleware.Chain(mws...)(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
