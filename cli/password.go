package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blogem/lanauthgate/models"
)

func newResetPasswordCommand(opts *options) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Reset the admin password",
		Long: `Reset the admin password without knowing the current one.

Without --password the configured default password is restored and the login
page shows it as a hint again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if password == "" {
				password = cfg.DefaultPassword
			}
			if len(password) < models.MinPasswordLength {
				return fmt.Errorf("password must be at least %d characters", models.MinPasswordLength)
			}

			srvs, db, ctx, err := openServices(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := srvs.Credentials.SetPassword(ctx, password); err != nil {
				return err
			}
			if _, err := srvs.Audit.Record(ctx, models.ActionChangePassword, "Password reset from command line"); err != nil {
				logger.Warn("failed to write audit entry", "error", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Admin password reset")
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "New password (default: the configured default password)")
	return cmd
}
