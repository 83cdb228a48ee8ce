// Package cli implements the lanauthgate command line.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/blogem/lanauthgate/config"
	"github.com/blogem/lanauthgate/database"
	"github.com/blogem/lanauthgate/logging"
	"github.com/blogem/lanauthgate/repositories"
	"github.com/blogem/lanauthgate/services"
	"github.com/blogem/lanauthgate/userctx"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
)

// cliClientIP marks audit entries written by offline commands
const cliClientIP = "cli"

// options are the persistent flags shared by every subcommand
type options struct {
	configPath string
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "lanauthgate",
		Short: "LanAuthGate gates API paths on a local network",
		Long: `LanAuthGate answers "is this API path authorized?" for services on a LAN.

Configuration is read from an optional YAML file (--config), a .env file in the
working directory and the process environment, in increasing precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true, // We handle errors in Execute()
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML configuration file")

	root.AddCommand(
		newServeCommand(opts),
		newExportCommand(opts),
		newImportCommand(opts),
		newResetPasswordCommand(opts),
		newVersionCommand(),
	)

	return root
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// load reads the configuration and builds the logger it describes
func (o *options) load(stderr io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: stderr,
	})
	return cfg, logger, nil
}

// openServices opens the database for an offline command. The returned
// context marks audit entries as written from the command line.
func openServices(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*services.Services, *sql.DB, context.Context, error) {
	hasher, err := services.NewHasher(cfg.PasswordHasher)
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := database.InitializeDatabase(cfg.DBPath)
	if err != nil {
		return nil, nil, nil, err
	}

	srvs := services.NewServices(repositories.NewRepositories(db), services.Options{
		Hasher:          hasher,
		DefaultPassword: cfg.DefaultPassword,
		Logger:          logger,
	})

	ctx = userctx.SetPrincipal(ctx, "cli")
	ctx = userctx.SetClientIP(ctx, cliClientIP)
	return srvs, db, ctx, nil
}
