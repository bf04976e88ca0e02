package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kwebdev/pagegen/internal/logfields"
	"github.com/kwebdev/pagegen/internal/preview"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Generate the site and serve it locally",
	Long: `Generates the site, then serves the output directory over HTTP. With
--watch, edits to the data files regenerate the site and reload open pages.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	addGenerateFlags(serveCmd)
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("watch", false, "regenerate and live-reload when data files change")
	serveCmd.Flags().Bool("open", false, "open the browser after starting")
	serveCmd.Flags().Bool("allow-all", false, "allow all CORS origins")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Preview.Port = port
	}
	if allowAll, _ := cmd.Flags().GetBool("allow-all"); allowAll {
		cfg.Preview.AllowAll = true
	}
	if err := applyGenerateFlags(cmd, cfg); err != nil {
		return err
	}

	g, closeFn, err := newGenerator(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := g.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}
	printResult(cmd.OutOrStdout(), cfg, res)

	watch, _ := cmd.Flags().GetBool("watch")
	srv := preview.New(preview.Config{
		Port:       cfg.Preview.Port,
		Dir:        cfg.OutputDir,
		AllowAll:   cfg.Preview.AllowAll,
		LiveReload: watch,
	}, slog.Default())

	errCh := make(chan error, 2)
	go func() { errCh <- srv.Start() }()

	if watch {
		// Rebuilds are quiet; the progress bar would interleave with logs.
		g.Reporter = nil
		w := &preview.Watcher{
			Dir:       cfg.DataDir,
			Rebuild:   func(ctx context.Context) error { _, err := g.Generate(ctx); return err },
			OnRebuilt: srv.Hub().Reload,
			Logger:    slog.Default(),
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				errCh <- fmt.Errorf("watching %s: %w", cfg.DataDir, err)
			}
		}()
	}

	url := fmt.Sprintf("http://localhost:%d", cfg.Preview.Port)
	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s at %s, press Ctrl+C to stop\n", cfg.OutputDir, url)
	if open, _ := cmd.Flags().GetBool("open"); open {
		go preview.OpenBrowser(url)
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("preview shutdown", logfields.Error(err))
	}
	return nil
}
