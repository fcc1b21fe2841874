package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	coreconfig "github.com/m3rciful/portfoliobot/core/config"
	coredatabase "github.com/m3rciful/portfoliobot/core/database"
	"github.com/m3rciful/portfoliobot/core/logger"
	"github.com/m3rciful/portfoliobot/core/telegram/state"
)

// Options control the generic bootstrap pipeline shared between bots.
type Options[S any] struct {
	Config   *coreconfig.Config
	Database coredatabase.Config
	// Codec encodes session values for the redis and SQL backends.
	Codec state.Codec[S]

	LoggerInit  func(*coreconfig.Config) error
	Connect     func(coredatabase.Config) (*sqlx.DB, error)
	Migrate     func(coredatabase.Config) error
	RedisClient func(context.Context, coreconfig.RedisConfig) (redis.UniversalClient, error)
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result[S any] struct {
	Store state.Store[S]
	DB    *sqlx.DB
	Redis redis.UniversalClient
}

// Close releases the connections opened for the session store.
func (r *Result[S]) Close() error {
	if r == nil {
		return nil
	}
	var errs []error
	if r.Redis != nil {
		errs = append(errs, r.Redis.Close())
	}
	if r.DB != nil {
		errs = append(errs, r.DB.Close())
	}
	return errors.Join(errs...)
}

// Run initializes the logger and builds the session store for the configured backend.
// SQL backends connect to the database and apply migrations first.
func Run[S any](ctx context.Context, opts Options[S]) (*Result[S], error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}
	cfg := opts.Config

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(cfg); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	storeOpts := state.Options{TTL: cfg.Session.TTL}
	res := &Result[S]{}

	switch cfg.Session.Backend {
	case coreconfig.SessionMemory, "":
		res.Store = state.NewMemoryStore[S](storeOpts)

	case coreconfig.SessionRedis:
		if opts.Codec == nil {
			return nil, fmt.Errorf("bootstrap: codec is required for the redis backend")
		}
		newClient := opts.RedisClient
		if newClient == nil {
			newClient = state.NewRedisClient
		}
		client, err := newClient(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: redis initialization failed: %w", err)
		}
		res.Redis = client
		res.Store = state.NewRedisStore[S](client, opts.Codec, cfg.Session.KeyPrefix, storeOpts)

	case coreconfig.SessionPostgres, coreconfig.SessionSQLite:
		if opts.Codec == nil {
			return nil, fmt.Errorf("bootstrap: codec is required for the %s backend", cfg.Session.Backend)
		}
		dbCfg := opts.Database
		dbCfg.Driver = cfg.Session.Backend
		if err := dbCfg.Normalize(); err != nil {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}

		connect := opts.Connect
		if connect == nil {
			connect = coredatabase.Connect
		}
		db, err := connect(dbCfg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
		}

		migrate := opts.Migrate
		if migrate == nil {
			migrate = coredatabase.RunMigrations
		}
		if err := migrate(dbCfg); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
		}
		res.DB = db
		res.Store = state.NewSQLStore[S](db, opts.Codec, storeOpts)

	default:
		return nil, fmt.Errorf("bootstrap: unsupported session backend %q", cfg.Session.Backend)
	}

	logger.Session.Info("session store ready",
		slog.String("event", "store.ready"),
		slog.String("backend", cfg.Session.Backend),
		slog.Duration("ttl", cfg.Session.TTL),
	)
	return res, nil
}
