package router

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	appuser "github.com/oksasatya/go-user-accounts/internal/application"
	"github.com/oksasatya/go-user-accounts/internal/container"
	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
	repouser "github.com/oksasatya/go-user-accounts/internal/domain/repository"
	"github.com/oksasatya/go-user-accounts/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-user-accounts/internal/infrastructure/postgres"
	"github.com/oksasatya/go-user-accounts/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-user-accounts/internal/interface/http"
	"github.com/oksasatya/go-user-accounts/internal/interface/middleware"
	"github.com/oksasatya/go-user-accounts/internal/router/modules"
	"github.com/oksasatya/go-user-accounts/pkg/helpers"
)

// Deps is everything the HTTP modules need.
type Deps struct {
	Service      *appuser.Service
	Tokens       middleware.TokenVerifier
	Redis        *redis.Client
	Logger       *logrus.Logger
	CookieDomain string
	CookieSecure bool
	// LimitBypass skips rate limiting for matching requests; nil limits everyone.
	LimitBypass  middleware.AllowFunc
	DebugMetrics bool
	// Health probes served at /api/healthz, keyed by dependency name.
	Health map[string]modules.Check
}

// DepsFromContainer builds the module dependencies from the process singletons.
// Without a database handle the in-memory repository is used.
func DepsFromContainer() Deps {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	health := map[string]modules.Check{}
	var repo repouser.UserRepository
	if db := container.GetDB(); db != nil {
		repo = pginfra.NewUserRepository(db)
		health["database"] = db.PingContext
	} else {
		logger.Warn("no database configured, using in-memory user repository")
		repo = memory.NewUserRepo()
	}

	opts := appuser.Options{AppName: cfg.AppName, LoginURL: cfg.LoginURL}
	if es := container.GetES(); es != nil {
		opts.Index = search.NewUserIndex(es, cfg.ESUsersIndex)
	}
	if q := container.GetEmailQueue(); q != nil && cfg.MailSendEnabled {
		opts.Mail = q
	}

	jwt := container.GetJWT()
	d := Deps{
		Service:      appuser.NewService(repo, jwt, logger, opts),
		Tokens:       jwt,
		Logger:       logger,
		CookieDomain: cfg.CookieDomain,
		CookieSecure: cfg.CookieSecure,
		DebugMetrics: cfg.DebugMetricsEnabled,
		Health:       health,
	}
	if cfg.RateLimitEnabled {
		if rdb := container.GetRedis(); rdb != nil {
			d.Redis = rdb
			health["redis"] = func(ctx context.Context) error { return helpers.PingRedis(ctx, rdb) }
		}
	}
	if cfg.Env == "development" {
		d.LimitBypass = middleware.AllowPrivateIP()
	}
	return d
}

// InitModules builds the handlers and registers every module on r.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, d Deps) {
	authHandler := handlers.NewAuthHandler(d.Service, d.Logger, d.CookieDomain, d.CookieSecure)
	userHandler := handlers.NewUserHandler(d.Service, d.Logger)

	auth := middleware.Auth(d.Tokens, d.Service, d.Logger)
	admin := middleware.RequireRole(d.Logger, entity.RoleAdmin)

	r.Add(
		modules.NewHealthModule(d.Health),
		modules.NewAuthModule(authHandler, d.Redis, d.LimitBypass),
		modules.NewUserModule(userHandler, auth, admin, d.Redis),
	)
	if d.DebugMetrics {
		r.Add(modules.NewDebugModule(d.Redis, appuser.Counters...))
	}
}
