// Package worker runs the release sweep scheduler without the HTTP API.
package worker

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	httpRouter "github.com/folio-inc/folio/internal/interfaces/http"
	"github.com/folio-inc/folio/internal/interfaces/cli/bootstrap"
)

var opts bootstrap.Options

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the scheduled release sweep",
		Long:  `Run the periodic release sweep until interrupted. Use this when the API runs with release.sweep_enabled=false.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&opts.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Add source locations to every log line")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.Start(ctx, &opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	// The worker always sweeps, whatever the API setting says.
	rt.Config.Release.SweepEnabled = true

	container, err := httpRouter.NewContainer(rt.DB, rt.Redis, rt.Config, rt.Log)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}

	rt.Log.Infow("starting release worker",
		"environment", opts.Env,
		"interval", rt.Config.Release.SweepInterval.String(),
	)
	container.StartScheduler()

	<-ctx.Done()
	rt.Log.Infow("release worker shutting down")
	container.Shutdown()
	return nil
}
