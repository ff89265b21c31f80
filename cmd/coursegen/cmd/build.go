package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dgallion1/coursegen/internal/pipeline"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render every page to the output directory",
	Long: `Render the root and every page of the content tree to
OUTPUT_DIR/<path>/index.html. Pages whose output is unchanged are not
rewritten. The build fails if any page references a missing asset.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		log := cliLogger()
		s, err := loadSite(ctx, log)
		if err != nil {
			return err
		}

		gen := pipeline.NewGenerator(s, cfg.OutputDir, cfg.WorkerCount, log)
		report, err := gen.Generate(ctx)
		fmt.Fprintf(cmd.OutOrStdout(), "%d pages: %d written, %d unchanged, %d failed\n",
			report.Pages, report.Written, report.Unchanged, report.Failed)
		if err != nil {
			return fmt.Errorf("build failed:\n%w", err)
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().StringP("out", "o", cfg.OutputDir, "output directory")
	buildCmd.Flags().IntP("workers", "w", cfg.WorkerCount, "concurrent page renderers")
	rootCmd.AddCommand(buildCmd)
}
