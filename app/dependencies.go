package app

import (
	"context"
	"fmt"

	"github.com/weichunauto/apigate/config"
	"github.com/weichunauto/apigate/internal/observability"
	"github.com/weichunauto/apigate/middleware"
	"github.com/weichunauto/apigate/repositories"
	"github.com/weichunauto/apigate/repositories/postgres"
	"github.com/weichunauto/apigate/services"
	"github.com/weichunauto/apigate/token"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config  *config.Config
	DB      *postgres.DB
	Logger  *zap.Logger
	Metrics *observability.Metrics

	// Repositories
	Users repositories.UserRepository

	// Auth
	Codec          *token.Codec
	AuthService    *services.AuthService
	AuthMiddleware *middleware.AuthMiddleware

	UserService *services.UserService
}

// NewDependencies connects to the database and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	db, err := postgres.NewDB(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.InitSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps, err := Wire(cfg, db, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// Wire builds the service graph on top of an open database. The token codec
// is built here once and shared by the login flow and the auth middleware.
func Wire(cfg *config.Config, db *postgres.DB, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		DB:     db,
		Logger: logger,
	}

	if cfg.Observability.MetricsEnabled {
		deps.Metrics = observability.NewMetrics()
	}

	deps.Users = postgres.NewUserRepository(db, logger)

	if err := deps.initAuth(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}

	deps.UserService = services.NewUserService(deps.Users, logger)

	return deps, nil
}

func (d *Dependencies) initAuth(cfg *config.Config) error {
	codec, err := token.NewCodec(token.Config{
		Secret:     []byte(cfg.JWT.Secret),
		Issuer:     cfg.JWT.Issuer,
		Audience:   cfg.JWT.Audience,
		Expiration: cfg.JWT.Expiration,
		Leeway:     cfg.JWT.Leeway,
	})
	if err != nil {
		return err
	}

	d.Codec = codec
	d.AuthService = services.NewAuthService(d.Users, codec, d.Logger)
	d.AuthMiddleware = middleware.NewAuthMiddleware(codec, d.Logger, middleware.WithAuthMetrics(d.Metrics))

	d.Logger.Info("auth initialized",
		zap.String("issuer", cfg.JWT.Issuer),
		zap.String("audience", cfg.JWT.Audience),
		zap.Duration("expiration", cfg.JWT.Expiration))
	return nil
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	_ = d.Logger.Sync()

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
