package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/store-rating-service/internal/cache"
	"github.com/magabrotheeeer/store-rating-service/internal/config"
	"github.com/magabrotheeeer/store-rating-service/internal/lib/jwt"
	"github.com/magabrotheeeer/store-rating-service/internal/lib/smtp"
	"github.com/magabrotheeeer/store-rating-service/internal/migrations"
	adminservice "github.com/magabrotheeeer/store-rating-service/internal/services/admin"
	authservice "github.com/magabrotheeeer/store-rating-service/internal/services/auth"
	senderservice "github.com/magabrotheeeer/store-rating-service/internal/services/sender"
	storeservice "github.com/magabrotheeeer/store-rating-service/internal/services/store"
	"github.com/magabrotheeeer/store-rating-service/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и подключения к внешним системам.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New собирает приложение: хранилище, миграции, redis, токены, почтовый
// транспорт, сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	tokens := jwt.NewMaker(cfg.JWTSecretKey, cfg.SessionTokenTTL, cfg.ResetTokenTTL)
	transport := smtp.NewTransport(cfg, logger)
	sender := senderservice.New(logger, transport)

	authService := authservice.New(db, tokens, sender, cfg.ResetBaseURL, logger)
	storeService := storeservice.New(db, cacheRedis, logger)
	adminService := adminservice.New(db, cacheRedis, cfg.RedisConnection.StatsCacheTTL, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, tokens, authService, storeService, adminService, db)

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
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
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
