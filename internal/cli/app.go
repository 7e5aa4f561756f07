package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/logica"
	"github.com/aretw0/logica/internal/config"
	"github.com/aretw0/logica/internal/logging"
	"github.com/aretw0/logica/pkg/adapters/file"
	"github.com/aretw0/logica/pkg/adapters/memory"
	"github.com/aretw0/logica/pkg/adapters/redis"
	"github.com/aretw0/logica/pkg/logic"
	"github.com/aretw0/logica/pkg/observability"
	"github.com/aretw0/logica/pkg/persistence/middleware"
	"github.com/aretw0/logica/pkg/ports"
	"github.com/aretw0/logica/pkg/session"
	"github.com/aretw0/logica/pkg/survey/codec"
	"github.com/prometheus/client_golang/prometheus"
)

// App bundles everything a command needs, built from one Config.
// Store is the bare backend; the workspace sees it through the store middleware.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Store     ports.DocumentStore
	Workspace *logica.Workspace
	Metrics   *observability.Metrics
	Gatherer  prometheus.Gatherer

	closers []io.Closer
}

// NewApp wires store, lock, hooks and workspace. logOut receives the log
// records; nil means Stderr.
func NewApp(cfg *config.Config, logOut io.Writer) (*App, error) {
	logger, err := NewLogger(cfg.Log, logOut)
	if err != nil {
		return nil, err
	}
	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Logger: logger}
	store, locker, err := app.newStore()
	if err != nil {
		return nil, err
	}
	app.Store = store

	hooks := observability.LoggingHooks(logger)
	if cfg.Server.Metrics {
		promReg := prometheus.NewRegistry()
		m, err := observability.NewMetrics(promReg)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		app.Metrics, app.Gatherer = m, promReg
		hooks = observability.Combine(hooks, m.Hooks())
	}

	sessionOpts := []session.Option{}
	if locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(locker))
	}
	mws := []middleware.Middleware{middleware.NewLoggingMiddleware(logger)}
	if cfg.Editor.ReadOnly {
		mws = append(mws, middleware.NewReadOnlyMiddleware())
	}
	app.Workspace = logica.New(middleware.Chain(store, mws...),
		logica.WithRegistry(reg),
		logica.WithLogger(logger),
		logica.WithReadOnly(cfg.Editor.ReadOnly),
		logica.WithSessionOptions(sessionOpts...),
		logica.WithEditorOptions(
			logic.WithShowTitles(cfg.Editor.ShowTitles),
			logic.WithHooks(hooks),
		),
	)
	return app, nil
}

// newStore picks the DocumentStore for the configured driver. Only the redis
// driver returns a distributed locker, and only when asked to.
func (a *App) newStore() (ports.DocumentStore, ports.DistributedLocker, error) {
	cfg := a.Config.Store
	switch strings.ToLower(cfg.Driver) {
	case config.DriverMemory:
		return memory.NewStore(), nil, nil
	case config.DriverFile:
		format, err := codec.ParseFormat(cfg.Format)
		if err != nil {
			return nil, nil, err
		}
		return file.New(cfg.Path, file.WithFormat(format)), nil, nil
	case config.DriverRedis:
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		a.closers = append(a.closers, store)
		a.Logger.Debug("using redis store", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		if !cfg.Redis.Lock {
			return store, nil, nil
		}
		return store, redis.NewLocker(store.Client(), store.Prefix()), nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

// Close releases the store connections.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// NewLogger builds the application logger from the log settings.
func NewLogger(cfg config.Log, w io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(cfg.Format, "json") {
		return logging.NewJSON(level, w), nil
	}
	return logging.New(level, w), nil
}

// ResolveDocument turns a command argument into a document ID. With the file
// driver an argument naming an existing survey file also moves the store to
// that file's directory, so `logica items path/to/survey.json` works.
func ResolveDocument(cfg *config.Config, arg string) string {
	if !strings.EqualFold(cfg.Store.Driver, config.DriverFile) {
		return arg
	}
	ext := filepath.Ext(arg)
	switch strings.ToLower(ext) {
	case ".json", ".yaml", ".yml":
	default:
		return arg
	}
	if _, err := os.Stat(arg); err != nil {
		return arg
	}
	cfg.Store.Path = filepath.Dir(arg)
	return strings.TrimSuffix(filepath.Base(arg), ext)
}

// Seed copies a survey file into the store under id, used to load the memory
// driver from disk.
func (a *App) Seed(ctx context.Context, id, path string) error {
	doc, err := logica.LoadFile(path)
	if err != nil {
		return err
	}
	return a.Store.Save(ctx, id, doc)
}
