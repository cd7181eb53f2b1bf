package tiffinadmin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/tiffin-admin/internal/cache"
	"github.com/magabrotheeeer/tiffin-admin/internal/config"
	"github.com/magabrotheeeer/tiffin-admin/internal/migrations"
	attendanceservice "github.com/magabrotheeeer/tiffin-admin/internal/services/attendance"
	dashboardservice "github.com/magabrotheeeer/tiffin-admin/internal/services/dashboard"
	forecastservice "github.com/magabrotheeeer/tiffin-admin/internal/services/forecast"
	menuservice "github.com/magabrotheeeer/tiffin-admin/internal/services/menu"
	paymentservice "github.com/magabrotheeeer/tiffin-admin/internal/services/payment"
	subservice "github.com/magabrotheeeer/tiffin-admin/internal/services/subscription"
	"github.com/magabrotheeeer/tiffin-admin/internal/storage/repository"
)

// App основное HTTP-приложение админки.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New собирает приложение: хранилище, миграции, кеш, сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	customersService := subservice.New(db, cacheRedis, logger)
	attendanceService := attendanceservice.New(db, db, logger)
	forecastService := forecastservice.New(db, db, logger)
	menuService := menuservice.New(db, cacheRedis, logger)
	paymentsService := paymentservice.New(db, db, logger)
	dashboardService := dashboardservice.New(forecastService, menuService, customersService, logger)

	services := &Services{
		Customers:  customersService,
		Attendance: attendanceService,
		Forecast:   forecastService,
		Menu:       menuService,
		Payments:   paymentsService,
		Dashboard:  dashboardService,
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, services, db, cacheRedis)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
