package commands

import (
	"github.com/folio-site/folio/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <ref>...",
		Short: "Print the resolved sources of image references as JSON",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			return c.app.Resolve(cmd.Context(), cmd.OutOrStdout(), args, resolveOptions(cmd))
		},
	}
	addSourceFlags(cmd)
	return cmd
}

func (c *CLI) newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <projects.json>",
		Short: "Render one picture fragment per project of a project list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Render(cmd.Context(), cmd.OutOrStdout(), args[0], resolveOptions(cmd))
		},
	}
	addSourceFlags(cmd)
	return cmd
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("root", ".", "Local document root holding the manifests")
	cmd.Flags().String("base-url", "", "Fetch manifests over HTTP from this base URL instead of --root")
	cmd.Flags().StringP("config", "c", app.DefaultConfigPath, "Path to the configuration file (optional)")
}

func resolveOptions(cmd *cobra.Command) app.ResolveOptions {
	root, _ := cmd.Flags().GetString("root")
	baseURL, _ := cmd.Flags().GetString("base-url")
	configPath, _ := cmd.Flags().GetString("config")
	return app.ResolveOptions{Root: root, BaseURL: baseURL, ConfigPath: configPath}
}
