package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/folio-inc/folio/internal/infrastructure/migration"
	httpRouter "github.com/folio-inc/folio/internal/interfaces/http"
	"github.com/folio-inc/folio/internal/interfaces/cli/bootstrap"
	"github.com/folio-inc/folio/internal/shared/goroutine"
	"github.com/folio-inc/folio/internal/shared/logger"
)

var (
	opts        bootstrap.Options
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Folio HTTP API with the release sweep scheduler.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&opts.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Add source locations to every log line")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := bootstrap.Start(ctx, &opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	log := rt.Log
	cfg := rt.Config
	log.Infow("starting server", "environment", opts.Env, "auto_migrate", autoMigrate)

	gin.SetMode(bootstrap.GinMode(opts.Env))
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if autoMigrate {
		if err := runMigrations(ctx, opts.Env, cfg.Database.Driver, rt, log); err != nil {
			return err
		}
	}

	router, err := httpRouter.NewRouter(rt.DB, rt.Redis, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}
	router.SetupRoutes()
	router.StartScheduler()
	defer router.Shutdown()

	srv := &http.Server{
		Addr:              cfg.Server.GetAddr(),
		Handler:           router.GetEngine(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	goroutine.SafeGo(log, "http-server", func() {
		log.Infow("server listening", "address", srv.Addr, "mode", gin.Mode())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		log.Infow("shutting down server", "signal", sig.String())
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func runMigrations(ctx context.Context, env, driver string, rt *bootstrap.Runtime, log logger.Interface) error {
	if env == "production" {
		log.Warnw("auto-migration is enabled in production")
	}
	strategy, err := migration.NewStrategy(env, driver, log)
	if err != nil {
		return err
	}
	log.Infow("running migrations", "strategy", strategy.GetName())
	if err := strategy.Migrate(ctx, rt.DB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
