package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/khusela/internal/auth"
	"github.com/MrJamesThe3rd/khusela/internal/config"
	"github.com/MrJamesThe3rd/khusela/internal/database"
	"github.com/MrJamesThe3rd/khusela/internal/franchise"
	franchiseStore "github.com/MrJamesThe3rd/khusela/internal/franchise/store"
	"github.com/MrJamesThe3rd/khusela/internal/user"
	userStore "github.com/MrJamesThe3rd/khusela/internal/user/store"
)

const (
	headOffice    = "Khusela Head Office"
	adminUsername = "admin"
	adminPassword = "Admin@1234"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.PoolConfig{MaxOpenConns: 2, MaxIdleConns: 1})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	franchises := franchise.NewService(franchiseStore.New(db))
	users := user.NewService(userStore.New(db))

	office, err := ensureFranchise(ctx, franchises)
	if err != nil {
		slog.Error("failed to seed franchise", "error", err)
		os.Exit(1)
	}

	_, err = users.Create(ctx, user.CreateParams{
		Username:    adminUsername,
		Password:    adminPassword,
		Role:        auth.RoleAdmin,
		FranchiseID: &office.ID,
	})

	switch {
	case errors.Is(err, user.ErrUsernameTaken):
		slog.Info("admin user already exists", "username", adminUsername)
	case err != nil:
		slog.Error("failed to seed admin user", "error", err)
		os.Exit(1)
	default:
		slog.Info("admin user created", "username", adminUsername)
	}
}

func ensureFranchise(ctx context.Context, svc *franchise.Service) (*franchise.Franchise, error) {
	existing, err := svc.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, f := range existing {
		if f.Name == headOffice {
			slog.Info("franchise already exists", "name", headOffice)
			return f, nil
		}
	}

	f, err := svc.Create(ctx, franchise.Params{Name: headOffice, Location: "South Africa"})
	if err != nil {
		return nil, err
	}

	slog.Info("franchise created", "name", headOffice, "id", f.ID)

	return f, nil
}
