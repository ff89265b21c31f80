package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/coursegen/internal/api"
	"github.com/dgallion1/coursegen/internal/site"
	"github.com/dgallion1/coursegen/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the course site and JSON API",
	Long: `Serve rendered pages and the JSON API over HTTP. With --watch the
content tree is rebuilt whenever a file under the content root changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		s, err := loadSite(ctx, log)
		if err != nil {
			return err
		}

		watchErr := make(chan error, 1)
		if cfg.Watch {
			w, err := newWatcher(s, log)
			if err != nil {
				return err
			}
			go func() { watchErr <- w.Run(ctx) }()
		}

		httpServer := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      api.NewServer(s, log, cfg),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// Graceful shutdown.
		go func() {
			select {
			case <-ctx.Done():
			case err := <-watchErr:
				if err != nil {
					log.Error("watcher stopped", "error", err)
				}
				cancel()
			}
			log.Info("shutting down...")

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			httpServer.Shutdown(shutdownCtx)
		}()

		log.Info("starting coursegen", "port", cfg.Port, "content", filepath.Join(cfg.ContentDir, cfg.ContentRoot), "watch", cfg.Watch)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func newWatcher(s *site.Site, log *slog.Logger) (*watch.Watcher, error) {
	return watch.New(watch.Config{
		BaseDir:  cfg.ContentDir,
		Patterns: []string{path.Join(strings.Trim(cfg.ContentRoot, "/"), "**")},
		Debounce: cfg.WatchDebounce,
		Log:      log.With("component", "watch"),
		OnChange: func(ctx context.Context, changed []string) error {
			log.Debug("rebuilding", "changed", changed)
			return s.Rebuild(ctx)
		},
	})
}

func init() {
	serveCmd.Flags().StringP("port", "p", cfg.Port, "HTTP listen port")
	serveCmd.Flags().Bool("watch", cfg.Watch, "rebuild when content changes")
	rootCmd.AddCommand(serveCmd)
}
