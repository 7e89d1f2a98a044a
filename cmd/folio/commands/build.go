package commands

import (
	"github.com/folio-site/folio/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate derivatives and manifests for every source image",
		Long: "Generate the width ladder of webp and jpg derivatives for every source image\n" +
			"below the configured roots and record them in one srcsets.json per directory.\n" +
			"Images that fail are reported in the summary; they do not fail the build.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			concurrency, _ := cmd.Flags().GetInt("concurrency")
			watch, _ := cmd.Flags().GetBool("watch")
			jsonLogs, _ := cmd.Flags().GetBool("json")
			output, _ := cmd.Flags().GetString("output")

			_, err := c.app.Build(cmd.Context(), app.BuildOptions{
				ConfigPath:  configPath,
				Concurrency: concurrency,
				Watch:       watch,
				JSON:        jsonLogs,
				Output:      output,
			})
			return err
		},
	}
	cmd.Flags().StringP("config", "c", app.DefaultConfigPath, "Path to the configuration file (optional)")
	cmd.Flags().IntP("concurrency", "j", 0, "Images processed in parallel (default one per CPU)")
	cmd.Flags().BoolP("watch", "w", false, "Rebuild when source images change")
	cmd.Flags().Bool("json", false, "Emit JSON logs instead of progress output")
	cmd.Flags().StringP("output", "o", "auto", "Progress output: auto, tui or linear")
	return cmd
}
