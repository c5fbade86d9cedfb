package migrate

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/folio-inc/folio/internal/infrastructure/config"
	"github.com/folio-inc/folio/internal/infrastructure/database"
	"github.com/folio-inc/folio/internal/infrastructure/migration"
	"github.com/folio-inc/folio/internal/interfaces/cli/bootstrap"
	"github.com/folio-inc/folio/internal/shared/logger"
)

var (
	opts  bootstrap.Options
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply, roll back and inspect the versioned schema migrations.`,
	}

	cmd.PersistentFlags().StringVarP(&opts.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

// initEnv opens only the database; migrations never need Redis.
func initEnv(ctx context.Context) (*config.Config, *migration.GooseStrategy, logger.Interface, error) {
	cfg, log, err := bootstrap.Init(&opts)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := database.Init(ctx, &cfg.Database); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	strategy, err := migration.NewGooseStrategy(cfg.Database.Driver, log)
	if err != nil {
		_ = database.Close()
		return nil, nil, nil, err
	}
	return cfg, strategy, log, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runUp(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	_, strategy, log, err := initEnv(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", opts.Env)

	if err := strategy.Migrate(ctx, database.Get()); err != nil {
		log.Errorw("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	if steps < 1 {
		return fmt.Errorf("--steps must be at least 1")
	}

	ctx := commandContext(cmd)
	_, strategy, log, err := initEnv(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running down migrations", "environment", opts.Env, "steps", steps)

	if err := strategy.MigrateDown(ctx, database.Get(), steps); err != nil {
		log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	cfg, strategy, log, err := initEnv(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	version, err := strategy.GetVersion(ctx, database.Get())
	if err != nil {
		log.Errorw("failed to get migration version", "error", err)
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Environment:     %s\n", opts.Env)
	fmt.Fprintf(out, "  Driver:          %s\n", cfg.Database.Driver)
	fmt.Fprintf(out, "  Current Version: %d\n", version)

	if err := strategy.Status(ctx, database.Get()); err != nil {
		return fmt.Errorf("failed to get detailed status: %w", err)
	}
	return nil
}
