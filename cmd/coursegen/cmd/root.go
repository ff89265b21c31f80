package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/coursegen/internal/config"
	"github.com/dgallion1/coursegen/internal/pathnorm"
	"github.com/dgallion1/coursegen/internal/render"
	"github.com/dgallion1/coursegen/internal/site"
	"github.com/dgallion1/coursegen/internal/source"
)

var (
	cfg     = config.Load()
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "coursegen",
	Short: "Build and serve a course site from a content tree",
	Long: `coursegen turns a directory of front-matter documents into a navigable
course: a tree of topics with breadcrumbs, previous/next links and
prerequisites.

Settings are read from the environment (CONTENT_DIR, CONTENT_ROOT,
OUTPUT_DIR, ...) and can be overridden with flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		applyFlags(cmd)
		return cfg.Validate()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringP("content-dir", "d", cfg.ContentDir, "directory holding the content root")
	f.String("root", cfg.ContentRoot, "content root inside the content directory")
	f.String("ext", cfg.ContentExt, "source document extension")
	f.BoolVarP(&verbose, "verbose", "V", false, "log debug output")
}

// applyFlags copies explicitly set flags over the environment config.
func applyFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	if f.Changed("content-dir") {
		cfg.ContentDir, _ = f.GetString("content-dir")
	}
	if f.Changed("root") {
		cfg.ContentRoot, _ = f.GetString("root")
	}
	if f.Changed("ext") {
		cfg.ContentExt, _ = f.GetString("ext")
	}
	if f.Lookup("out") != nil && f.Changed("out") {
		cfg.OutputDir, _ = f.GetString("out")
	}
	if f.Lookup("workers") != nil && f.Changed("workers") {
		cfg.WorkerCount, _ = f.GetInt("workers")
	}
	if f.Lookup("port") != nil && f.Changed("port") {
		cfg.Port, _ = f.GetString("port")
	}
	if f.Lookup("watch") != nil && f.Changed("watch") {
		cfg.Watch, _ = f.GetBool("watch")
	}
}

func cliLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newSite wires the content source, renderer and site for cfg.
func newSite(log *slog.Logger) *site.Site {
	norm := pathnorm.Normalizer{
		Root: strings.Trim(cfg.ContentRoot, "/"),
		Ext:  cfg.ContentExt,
	}
	src := &source.FSSource{
		FS:   os.DirFS(cfg.ContentDir),
		Root: norm.Root,
		Ext:  norm.Ext,
	}
	renderer := render.New(norm, src, cfg.AnimationExt, cfg.ExcerptWords)
	return site.New(src, norm, renderer, log)
}

// loadSite builds the content tree once.
func loadSite(ctx context.Context, log *slog.Logger) (*site.Site, error) {
	s := newSite(log)
	if err := s.Rebuild(ctx); err != nil {
		return nil, err
	}
	return s, nil
}
