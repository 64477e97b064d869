package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/config"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/metrics"
	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/adapters/sqlite"
	"github.com/aretw0/turing/pkg/ports"
)

// App bundles everything a command needs, built from a Config.
type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Engine  *turing.Engine
	Store   ports.RunStore
	Metrics *metrics.Metrics
	Out     io.Writer

	closers []func() error
}

// Setup builds the logger, the run store and the engine described by cfg.
// Debug step tracing is enabled when the log level is debug.
func Setup(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Out: os.Stdout, Metrics: metrics.New()}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if cfg.Log.File != "" {
		logger, closeLog, err := logging.NewFanout(level, cfg.Log.File)
		if err != nil {
			return nil, err
		}
		app.Logger = logger
		app.closers = append(app.closers, closeLog)
	} else {
		app.Logger = logging.New(level)
	}

	store, closeStore, err := OpenStore(ctx, cfg.Store)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Store = store
	if closeStore != nil {
		app.closers = append(app.closers, closeStore)
	}

	opts := []turing.Option{
		turing.WithLogger(app.Logger),
		turing.WithStore(store),
		turing.WithMaxSteps(cfg.MaxSteps),
		turing.WithConcurrency(cfg.Concurrency),
		turing.WithLifecycleHooks(app.Metrics.Hooks()),
	}
	if p, _ := utf8.DecodeRuneInString(cfg.Placeholder); p != utf8.RuneError {
		opts = append(opts, turing.WithPlaceholder(p))
	}
	if level <= slog.LevelDebug {
		opts = append(opts, turing.WithLifecycleHooks(createDebugHooks(app.Logger)))
	}

	app.Engine, err = turing.New(cfg.Machines, opts...)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return app, nil
}

// Close releases the store and the log file.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// OpenStore creates the run store selected by cfg. The close function may be nil.
func OpenStore(ctx context.Context, cfg config.Store) (ports.RunStore, func() error, error) {
	switch cfg.Backend {
	case config.StoreMemory:
		return memory.NewStore(), nil, nil

	case config.StoreFile:
		return file.NewStore(cfg.Dir), nil, nil

	case config.StoreRedis:
		var opts []redis.Option
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL != "" {
			ttl, err := time.ParseDuration(cfg.Redis.TTL)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid redis ttl %q: %w", cfg.Redis.TTL, err)
			}
			opts = append(opts, redis.WithTTL(ttl))
		}
		store := redis.New(cfg.Redis.Addr, "", 0, opts...)
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		return store, store.Close, nil

	case config.StoreSQLite:
		if dir := filepath.Dir(cfg.SQLite.Path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
		store := sqlite.NewStore(cfg.SQLite.Path)
		if err := store.Init(ctx); err != nil {
			store.Close()
			return nil, nil, err
		}
		return store, store.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
