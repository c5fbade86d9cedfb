// Package sweep runs a single release sweep and reports the outcome.
package sweep

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	httpRouter "github.com/folio-inc/folio/internal/interfaces/http"
	"github.com/folio-inc/folio/internal/interfaces/cli/bootstrap"
)

var opts bootstrap.Options

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Release every item whose date has passed",
		Long:  `Run the release sweep once and print the summary as JSON. Exits non-zero when any item failed.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&opts.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

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

	container, err := httpRouter.NewContainer(rt.DB, rt.Redis, rt.Config, rt.Log)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}

	result, err := container.ReleaseSweep().Run(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("%d item(s) failed to release", len(result.Errors))
	}
	return nil
}
