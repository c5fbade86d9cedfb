// Package seed loads YAML fixtures into the configured database.
package seed

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/folio-inc/folio/internal/infrastructure/database"
	"github.com/folio-inc/folio/internal/infrastructure/persistence/seeds"
	"github.com/folio-inc/folio/internal/interfaces/cli/bootstrap"
)

var (
	opts bootstrap.Options
	file string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load plans, subscriptions and content from a fixture file",
		Long:  `Insert the fixture rows that do not exist yet. Rows are matched by SID so the command can be re-run.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&opts.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVarP(&file, "file", "f", "configs/seeds/sample.yaml", "Fixture file")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fixture, err := seeds.ParseFile(file)
	if err != nil {
		return err
	}

	cfg, log, err := bootstrap.Init(&opts)
	if err != nil {
		return err
	}
	if err := database.Init(ctx, &cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	result, err := seeds.Apply(ctx, database.Get(), fixture)
	if err != nil {
		log.Errorw("seeding failed", "file", file, "error", err)
		return err
	}

	log.Infow("seeding completed",
		"file", file,
		"plans", result.Plans,
		"subscriptions", result.Subscriptions,
		"content", result.Content,
	)
	fmt.Fprintf(cmd.OutOrStdout(), "created %d plan(s), %d subscription(s), %d content item(s)\n",
		result.Plans, result.Subscriptions, result.Content)
	return nil
}
