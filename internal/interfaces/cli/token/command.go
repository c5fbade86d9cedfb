// Package token mints access tokens for local testing.
package token

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/folio-inc/folio/internal/infrastructure/auth"
	"github.com/folio-inc/folio/internal/interfaces/cli/bootstrap"
	"github.com/folio-inc/folio/internal/shared/authorization"
	"github.com/folio-inc/folio/internal/shared/biztime"
	"github.com/folio-inc/folio/internal/shared/id"
)

var (
	opts     bootstrap.Options
	viewerID string
	role     string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed access token",
		Long:  `Sign a JWT for a viewer with the configured secret. Intended for development and smoke tests.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&opts.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVar(&viewerID, "viewer", "", "Viewer ID (vw_...)")
	cmd.Flags().StringVar(&role, "role", string(authorization.RoleViewer), "Role: viewer, editor or admin")
	_ = cmd.MarkFlagRequired("viewer")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if !id.HasPrefix(viewerID, id.PrefixViewer) {
		return fmt.Errorf("invalid viewer id %q", viewerID)
	}
	r := authorization.UserRole(role)
	if !r.IsValid() {
		return fmt.Errorf("unknown role %q", role)
	}

	cfg, _, err := bootstrap.Init(&opts)
	if err != nil {
		return err
	}

	svc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.AccessExpMinutes, biztime.SystemClock{})
	token, expiresAt, err := svc.Generate(viewerID, r)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", expiresAt.Format(time.RFC3339))
	return nil
}
