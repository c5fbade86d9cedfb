package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/folio-inc/folio/internal/interfaces/cli/migrate"
	"github.com/folio-inc/folio/internal/interfaces/cli/seed"
	"github.com/folio-inc/folio/internal/interfaces/cli/server"
	"github.com/folio-inc/folio/internal/interfaces/cli/sweep"
	"github.com/folio-inc/folio/internal/interfaces/cli/token"
	"github.com/folio-inc/folio/internal/interfaces/cli/worker"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "folio",
		Short:        "Folio - premium content access and scheduled release",
		Long:         `Folio decides who may read premium content, serves previews and upgrade prompts, and releases scheduled items to the free tier.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		worker.NewCommand(),
		sweep.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
