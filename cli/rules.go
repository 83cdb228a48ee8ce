package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blogem/lanauthgate/controllers"
)

func newExportCommand(opts *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the rule configuration to a JSON file",
		Example: `  # Export to api_auth_export.json in the working directory
  lanauthgate export

  # Export to stdout
  lanauthgate export --out -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			srvs, db, ctx, err := openServices(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			items, err := srvs.Registry.Export(ctx)
			if err != nil {
				return fmt.Errorf("failed to export rules: %w", err)
			}

			data, err := json.MarshalIndent(items, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode rules: %w", err)
			}
			data = append(data, '\n')

			if out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rules to %s\n", len(items), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", controllers.ExportFilename, `Output file ("-" for stdout)`)
	return cmd
}

func newImportCommand(opts *options) *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import rules from a JSON file, upserting by path",
		Example: `  lanauthgate import --in api_auth_export.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(in)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", in, err)
			}

			cfg, logger, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			srvs, db, ctx, err := openServices(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			result, err := srvs.Registry.Import(ctx, data)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			fmt.Fprintf(cmd.OutOrStdout(), "Total rules: %d\n", result.TotalInDatabase)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", controllers.ExportFilename, "Input file")
	return cmd
}
