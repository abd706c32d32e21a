package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/edalab/pinwire/internal/config"
	"github.com/edalab/pinwire/internal/server"
	"github.com/edalab/pinwire/internal/session"
	"github.com/edalab/pinwire/internal/storage"
)

// cleanupInterval is how often expired sessions are swept from the store.
const cleanupInterval = time.Hour

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	config  string // path to the TOML config file
	listen  string // listen address override
	storage string // storage directory override
	backend string // session backend override
}

// newServeCmd creates the serve command running the HTTP server that backs
// the browser editor.
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server backing the browser editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "pinwire.toml", "config file path")
	cmd.Flags().StringVarP(&opts.listen, "listen", "l", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&opts.storage, "storage", "", "storage directory (overrides config)")
	cmd.Flags().StringVar(&opts.backend, "backend", "", "session backend: memory, redis, mongo (overrides config)")

	return cmd
}

// runServe loads the configuration, builds the session and storage layers,
// and serves until the context is cancelled.
func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.config)
	if err != nil {
		return err
	}
	if opts.listen != "" {
		cfg.Listen = opts.listen
	}
	if opts.storage != "" {
		cfg.StorageDir = opts.storage
	}
	if opts.backend != "" {
		cfg.Session.Backend = opts.backend
	}

	sessions, err := buildSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer sessions.Close()

	st, err := storage.New(cfg.StorageDir)
	if err != nil {
		return err
	}

	logger.Info("starting server",
		"listen", cfg.Listen, "storage", st.Root(), "sessions", cfg.Session.Backend)

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           server.New(cfg, st, sessions, logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go sweepSessions(ctx, sessions, logger.Warnf)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// buildSessionStore constructs the session backend named by the config.
func buildSessionStore(ctx context.Context, cfg config.Config) (session.Store, error) {
	switch cfg.Session.Backend {
	case "memory":
		return session.NewMemoryStore(), nil
	case "redis":
		return session.NewRedisStore(ctx, session.RedisConfig{
			Addr:     cfg.Session.Redis.Addr,
			Password: cfg.Session.Redis.Password,
			DB:       cfg.Session.Redis.DB,
		})
	case "mongo":
		return session.NewMongoStore(ctx, session.MongoConfig{
			URI:        cfg.Session.Mongo.URI,
			Database:   cfg.Session.Mongo.Database,
			Collection: cfg.Session.Mongo.Collection,
		})
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

// sweepSessions periodically removes expired sessions until ctx is cancelled.
func sweepSessions(ctx context.Context, sessions session.Store, warnf func(string, ...any)) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sessions.Cleanup(ctx); err != nil {
				warnf("session cleanup failed: %v", err)
			}
		}
	}
}
