package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/khusela/internal/application"
	appStore "github.com/MrJamesThe3rd/khusela/internal/application/store"
	"github.com/MrJamesThe3rd/khusela/internal/auth"
	"github.com/MrJamesThe3rd/khusela/internal/config"
	"github.com/MrJamesThe3rd/khusela/internal/database"
	"github.com/MrJamesThe3rd/khusela/internal/document"
	"github.com/MrJamesThe3rd/khusela/internal/document/objectstore"
	docStore "github.com/MrJamesThe3rd/khusela/internal/document/store"
	"github.com/MrJamesThe3rd/khusela/internal/employee"
	empStore "github.com/MrJamesThe3rd/khusela/internal/employee/store"
	"github.com/MrJamesThe3rd/khusela/internal/export"
	"github.com/MrJamesThe3rd/khusela/internal/franchise"
	franchiseStore "github.com/MrJamesThe3rd/khusela/internal/franchise/store"
	khuselaHttp "github.com/MrJamesThe3rd/khusela/internal/http"
	appHandler "github.com/MrJamesThe3rd/khusela/internal/http/application"
	authHandler "github.com/MrJamesThe3rd/khusela/internal/http/auth"
	docHandler "github.com/MrJamesThe3rd/khusela/internal/http/document"
	empHandler "github.com/MrJamesThe3rd/khusela/internal/http/employee"
	exportHandler "github.com/MrJamesThe3rd/khusela/internal/http/export"
	franchiseHandler "github.com/MrJamesThe3rd/khusela/internal/http/franchise"
	importHandler "github.com/MrJamesThe3rd/khusela/internal/http/importcsv"
	userHandler "github.com/MrJamesThe3rd/khusela/internal/http/user"
	"github.com/MrJamesThe3rd/khusela/internal/importer"
	"github.com/MrJamesThe3rd/khusela/internal/notify"
	"github.com/MrJamesThe3rd/khusela/internal/user"
	userStore "github.com/MrJamesThe3rd/khusela/internal/user/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.ConnectionString(), database.PoolConfig{
		MaxOpenConns: cfg.DB.MaxOpenConns,
		MaxIdleConns: cfg.DB.MaxIdleConns,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	denylist, err := connectDenylist(ctx, cfg)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	objects, err := objectstore.NewS3(ctx, objectstore.Config{
		Endpoint:        cfg.Storage.Endpoint,
		Region:          cfg.Storage.Region,
		Bucket:          cfg.Storage.Bucket,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
	})
	if err != nil {
		slog.Error("failed to configure object storage", "error", err)
		os.Exit(1)
	}

	notifier, err := newNotifier(ctx, cfg)
	if err != nil {
		slog.Error("failed to configure notifications", "error", err)
		os.Exit(1)
	}

	var (
		userService        = user.NewService(userStore.New(db))
		authService        = auth.NewService(userService, auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, denylist))
		franchiseService   = franchise.NewService(franchiseStore.New(db))
		employeeService    = employee.NewService(empStore.New(db))
		applicationService = application.NewService(appStore.New(db), notifier)
		exportService      = export.NewService(applicationService)
		documentService    = document.NewService(docStore.New(db), objects, cfg.Storage.MaxUploadBytes, cfg.Storage.SignedURLTTL)
	)

	router := khuselaHttp.New(
		cfg.App.ClientURL,
		authService,
		authHandler.NewHandler(authService),
		userHandler.NewHandler(userService),
		franchiseHandler.NewHandler(franchiseService),
		empHandler.NewHandler(employeeService),
		appHandler.NewHandler(applicationService),
		docHandler.NewHandler(documentService, cfg.Storage.MaxUploadBytes),
		exportHandler.NewHandler(exportService),
		importHandler.NewHandler(importer.NewService()),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	go func() {
		slog.Info("starting server", "port", srv.Addr, "env", cfg.App.Environment)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	slog.Info("shutting down server")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

// connectDenylist returns nil when no Redis address is configured, which
// leaves logout as a client-side operation.
func connectDenylist(ctx context.Context, cfg *config.Config) (auth.Denylist, error) {
	if cfg.Redis.Address == "" {
		slog.Warn("REDIS_ADDR not set, token revocation disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return auth.NewRedisDenylist(client), nil
}

func newNotifier(ctx context.Context, cfg *config.Config) (application.Notifier, error) {
	if !cfg.Notify.Enabled {
		return notify.Noop{}, nil
	}

	return notify.NewAWS(ctx, cfg.Notify.AWSRegion, cfg.Notify.FromEmail)
}
