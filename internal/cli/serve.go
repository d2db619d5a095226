package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"aidash/internal/api"
	"aidash/internal/config"
	"aidash/internal/engine"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(opts *rootOptions) *cobra.Command {
	var dataPath, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the dataset and serve the dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(func(c *config.Config) {
				if dataPath != "" {
					c.Data.Path = dataPath
				}
				if addr != "" {
					c.Server.ListenAddr = addr
				}
			})
			if err != nil {
				return err
			}

			logger := newLogger(cfg, cmd.ErrOrStderr())
			slog.SetDefault(logger)

			if err := serve(cmd.Context(), cfg, logger); err != nil {
				logger.Error("server stopped", "error", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "dataset CSV path (overrides data.path)")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides server.listen_addr)")
	return cmd
}

// serve loads the store once, then runs the HTTP server until ctx is
// cancelled or an interrupt arrives. A load failure aborts before listening.
func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	t0 := time.Now()
	store, err := engine.LoadCSV(cfg.Data.Path)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	logger.Info("dataset loaded",
		"path", cfg.Data.Path,
		"records", store.Len(),
		"duration", time.Since(t0))

	e := api.NewServer(cfg, store, logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", cfg.Server.ListenAddr)
		if err := e.Start(cfg.Server.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
