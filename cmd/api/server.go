package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/5w1tchy/book-catalog/internal/api/handlers/books"
	mw "github.com/5w1tchy/book-catalog/internal/api/middlewares"
	"github.com/5w1tchy/book-catalog/internal/api/router"
	"github.com/5w1tchy/book-catalog/internal/catalog"
	"github.com/5w1tchy/book-catalog/internal/config"
	"github.com/5w1tchy/book-catalog/internal/logging"
	"github.com/5w1tchy/book-catalog/internal/repository/sqlconnect"
	storebooks "github.com/5w1tchy/book-catalog/internal/store/books"
	"github.com/5w1tchy/book-catalog/internal/store/migrations"
	"github.com/5w1tchy/book-catalog/internal/view"
)

var (
	cfg     config.Config
	logger  *zap.Logger
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "book-catalog",
	Short: "Server-rendered book catalog",
	Long: `book-catalog lists, searches, creates, edits and deletes books.

Run without a subcommand to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile != "" {
			config.LoadDotenv(envFile)
		} else {
			config.LoadDotenv()
		}
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		logger, err = logging.New(cfg.LogLevel, cfg.Production())
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var autoMigrate bool

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default .env.local, .env)")
	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().BoolVar(&autoMigrate, "migrate", false, "apply pending migrations before serving")
	}
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, w := range cfg.HardeningWarnings() {
		logger.Warn("config", zap.String("warning", w))
	}

	db, dialect, err := sqlconnect.ConnectDB(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()
	logger.Info("connected to database", zap.String("driver", cfg.DB.Driver))

	if autoMigrate {
		applied, err := migrations.Up(ctx, db, dialect)
		if err != nil {
			return err
		}
		logger.Info("migrations applied", zap.Int64s("versions", applied))
	}

	limiter, closeLimiter, err := newLimiter(ctx)
	if err != nil {
		return err
	}
	defer closeLimiter()

	renderer, err := view.New()
	if err != nil {
		return err
	}

	svc := catalog.NewService(storebooks.New(db, dialect))
	csrf := mw.DefaultCSRFOptions()
	csrf.CookieSecure = cfg.HTTP.CSRFSecure

	handler := router.New(books.New(svc, renderer, logger), router.Options{
		Logger:         logger,
		Limiter:        limiter,
		CSRF:           csrf,
		HPP:            mw.DefaultHPPOptions(),
		MaxBodyBytes:   cfg.HTTP.MaxBodyBytes,
		StrictSecurity: cfg.HTTP.StrictSecurity,
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		Ready:          db.PingContext,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		ErrorLog:          zap.NewStdLog(logger),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.HTTP.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newLimiter returns the Redis token bucket when REDIS_URL is set, and the
// in-process one otherwise.
func newLimiter(ctx context.Context) (mw.Limiter, func(), error) {
	rl := cfg.RateLimit
	if rl.RedisURL == "" {
		logger.Info("rate limiting in-process")
		return mw.NewLocalTokenBucket(rl.RPS, rl.Burst, mw.PerIPKey("tb"), logger), func() {}, nil
	}

	opt, err := redis.ParseURL(rl.RedisURL) // e.g. rediss://default:<token>@host:port
	if err != nil {
		return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	if opt.TLSConfig != nil {
		opt.TLSConfig.MinVersion = tls.VersionTLS12
	}
	opt.DialTimeout = 2 * time.Second
	opt.ReadTimeout = 500 * time.Millisecond
	opt.WriteTimeout = 500 * time.Millisecond
	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("redis connection failed: %w", err)
	}
	logger.Info("connected to redis; rate limiting shared")

	tb := mw.NewRedisTokenBucket(rdb, rl.RPS, rl.Burst, mw.PerIPKey("tb"), logger)
	return tb, func() { _ = rdb.Close() }, nil
}
