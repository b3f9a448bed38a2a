package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	httpadapter "tms/internal/adapters/in/http"
	"tms/internal/adapters/out/postgres"
	"tms/internal/adapters/out/redis"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the background jobs",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return err
	}

	logger, err := NewLogger(cfg.Logging, cfg.IsDevelopment())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.Database.toPostgres(), logger)
	if err != nil {
		return errors.Wrap(err, "failed to open database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get database handle")
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(db); err != nil {
			return errors.Wrap(err, "failed to migrate database")
		}
	}

	publisher, err := redis.NewPublisher(ctx, cfg.Redis.toRedis(), logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("failed to close event publisher", zap.Error(err))
		}
	}()

	root := NewCompositionRoot(cfg, db, publisher, clockwork.NewRealClock(), logger)

	router, err := httpadapter.NewRouter(ctx, root.CreateServer(), sqlDB, cfg.HTTP.toRouter(), logger)
	if err != nil {
		return errors.Wrap(err, "failed to build HTTP router")
	}

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return errors.Wrap(err, "failed to start jobs")
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := fmt.Sprintf("0.0.0.0:%d", cfg.HTTP.Port)
		logger.Info("HTTP server listening", zap.String("address", addr))
		if err := router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "HTTP server failed")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return router.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
