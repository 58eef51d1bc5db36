package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-accounts/config"
	"github.com/oksasatya/go-user-accounts/internal/application"
	pginfra "github.com/oksasatya/go-user-accounts/internal/infrastructure/postgres"
	"github.com/oksasatya/go-user-accounts/pkg/apperror"
	"github.com/oksasatya/go-user-accounts/pkg/helpers"
)

// seed creates the first admin account from SEED_ADMIN_* so the
// admin-only routes are reachable on a fresh database.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		log.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{
		DSN:             cfg.PostgresDSN(),
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBMaxConnLife,
	})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	db := pginfra.NewDB(pool)
	defer func() { _ = db.Close() }()

	svc := application.NewService(
		pginfra.NewUserRepository(db),
		helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
		logger,
		application.Options{AppName: cfg.AppName, LoginURL: cfg.LoginURL},
	)

	u, err := svc.RegisterAdmin(ctx, cfg.SeedAdminName, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
	if err != nil {
		if errors.Is(err, apperror.New(apperror.EmailExists)) {
			helpers.LogInfo(logger, "admin already seeded", logrus.Fields{"email": cfg.SeedAdminEmail})
			return
		}
		log.Fatalf("failed to seed admin: %v", err)
	}
	helpers.LogInfo(logger, "seeded admin", logrus.Fields{"id": u.ID, "email": u.Email, "name": u.Name})
}
