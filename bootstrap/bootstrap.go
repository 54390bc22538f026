// Package bootstrap wires all dependencies and starts the application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/artpar/pubforge/adapters/clock"
	"github.com/artpar/pubforge/adapters/docstore"
	apihttp "github.com/artpar/pubforge/adapters/http"
	"github.com/artpar/pubforge/adapters/media"
	"github.com/artpar/pubforge/adapters/metrics"
	"github.com/artpar/pubforge/adapters/random"
	"github.com/artpar/pubforge/adapters/tagstore"
	"github.com/artpar/pubforge/config"
	"github.com/artpar/pubforge/core/index"
	"github.com/artpar/pubforge/core/registry"
	"github.com/artpar/pubforge/core/schema"
	"github.com/artpar/pubforge/core/seeder"
	"github.com/artpar/pubforge/core/validation"
	"github.com/artpar/pubforge/domain/document"
)

// Version metadata, set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// App is the assembled application.
type App struct {
	Logger    zerolog.Logger
	Config    *config.Config
	Registry  *registry.Registry
	Index     *index.Index
	Docs      *docstore.Store
	Tags      *tagstore.Store
	Media     *media.Inventory
	Seeder    *seeder.Seeder
	Validator *validation.Validator
	Metrics   *metrics.Collector

	HTTPServer *http.Server

	configPath string
	watcher    *Watcher
	holder     *config.Holder
}

// Options configures application construction.
type Options struct {
	// ConfigPath is the config file location. When the file does not
	// exist, configuration falls back to environment and defaults.
	ConfigPath string

	// WithServer controls whether the HTTP server is built. CLI commands
	// that run and exit leave it off.
	WithServer bool
}

// New creates and initializes the application.
func New(opts Options) (*App, error) {
	cfg, err := config.LoadWithFallback(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := setupLogger(cfg)
	logger.Info().Msg("initializing pubforge")

	a := &App{
		Logger:     logger,
		Config:     cfg,
		Registry:   registry.New(),
		Docs:       docstore.New(cfg.Workspace.ContentDir),
		Tags:       tagstore.New(cfg.Workspace.TagsFile),
		Media:      media.New(cfg.Workspace.MediaDir),
		configPath: opts.ConfigPath,
	}

	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
		logger.Info().Msg("prometheus metrics enabled")
	}

	idx, err := index.New(cfg.Index.Path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	a.Index = idx

	a.Validator = validation.NewValidator(a.Tags, a.Media)
	a.Seeder = seeder.New(clock.Real{}, random.NewReal(), a.Tags, a.Docs, logger)

	if err := a.LoadTypes(); err != nil {
		return nil, fmt.Errorf("load publication types: %w", err)
	}

	if opts.WithServer {
		a.initHTTPServer()
	}

	return a, nil
}

// LoadTypes parses every schema file under the content directory and swaps
// the result into the registry.
func (a *App) LoadTypes() error {
	types, err := schema.ParseDir(a.Config.Workspace.ContentDir)
	if err != nil {
		return err
	}
	if err := a.Registry.Replace(types); err != nil {
		return err
	}
	for _, t := range types {
		a.Logger.Info().
			Str("type", t.Name).
			Str("directory", t.Directory()).
			Int("fields", len(t.Fields)).
			Msg("loaded publication type")
	}
	return nil
}

// Reindex rebuilds the index for every registered type from the documents
// on disk.
func (a *App) Reindex(ctx context.Context) error {
	for _, t := range a.Registry.List() {
		ids, err := a.Docs.ListForType(t.Directory())
		if err != nil {
			return fmt.Errorf("list documents for %s: %w", t.Name, err)
		}

		list, err := a.loadDocuments(ids)
		if err != nil {
			return fmt.Errorf("load documents for %s: %w", t.Name, err)
		}
		if err := a.Index.Rebuild(ctx, t, list); err != nil {
			return fmt.Errorf("rebuild index for %s: %w", t.Name, err)
		}

		if a.Metrics != nil {
			a.Metrics.IndexedPublications.WithLabelValues(t.Name).Set(float64(len(list)))
			a.Metrics.IndexOperations.WithLabelValues(t.Name, "rebuild").Inc()
		}
		a.Logger.Info().
			Str("type", t.Name).
			Int("publications", len(list)).
			Msg("index rebuilt")
	}
	return nil
}

func (a *App) loadDocuments(ids []string) ([]*document.Document, error) {
	docs := make([]*document.Document, 0, len(ids))
	for _, id := range ids {
		d, err := a.Docs.Load(id)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// Run starts the HTTP server and the workspace watcher, then blocks until
// an interrupt arrives.
func (a *App) Run() error {
	ctx := context.Background()

	if err := a.Reindex(ctx); err != nil {
		return fmt.Errorf("initial index: %w", err)
	}

	if a.Config.Watch.Enabled {
		w, err := NewWatcher(a)
		if err != nil {
			a.Logger.Warn().Err(err).Msg("workspace watcher disabled")
		} else {
			a.watcher = w
			w.Start()
		}
	}

	a.watchConfig()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().
			Str("addr", a.HTTPServer.Addr).
			Msg("starting http server")
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	return a.Shutdown()
}

// watchConfig hot-reloads the reloadable config fields when the config
// file changes or SIGHUP arrives. Without a config file there is nothing
// to watch.
func (a *App) watchConfig() {
	if _, err := os.Stat(a.configPath); err != nil {
		return
	}

	holder, err := config.NewHolder(a.configPath, a.Logger)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("config hot reload disabled")
		return
	}
	holder.OnChange(func(cfg *config.Config) {
		a.Config = cfg
		if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
			zerolog.SetGlobalLevel(level)
		}
	})
	if err := holder.WatchFile(); err != nil {
		a.Logger.Warn().Err(err).Msg("config file watch failed")
		holder.Stop()
		return
	}
	holder.WatchSignals()
	a.holder = holder
}

// Shutdown gracefully stops the application.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if a.watcher != nil {
		a.watcher.Stop()
	}

	if a.holder != nil {
		a.holder.Stop()
	}

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("http server shutdown error")
		}
	}

	if a.Index != nil {
		if err := a.Index.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("index close error")
		}
	}

	a.Logger.Info().Msg("shutdown complete")
	return nil
}

func (a *App) initHTTPServer() {
	api := apihttp.NewAPIHandler(a.Registry, a.Index, a.Docs, a.Tags, a.Validator, a.Logger)
	if a.Metrics != nil {
		api.WithMetrics(a.Metrics)
	}

	router := apihttp.NewRouter(apihttp.RouterConfig{
		API:         api,
		Health:      apihttp.NewHealthHandler(a.Index, a.Logger),
		Metrics:     a.Metrics,
		MetricsPath: a.Config.Metrics.Path,
		Version: apihttp.VersionInfo{
			Version: Version,
			Commit:  Commit,
			Date:    Date,
		},
	}, a.Logger)

	addr := fmt.Sprintf("%s:%d", a.Config.Server.Host, a.Config.Server.Port)
	a.HTTPServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
	}
	a.Logger.Info().Str("addr", addr).Msg("http server configured")
}

func setupLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Logging.Format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
