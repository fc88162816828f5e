package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/raizdigital/especies/pkg/cliconfig"
	"github.com/raizdigital/especies/pkg/sandbox"
	"github.com/raizdigital/especies/pkg/web"
)

// shutdownTimeout bounds the graceful shutdown of the servers.
const shutdownTimeout = 5 * time.Second

func newWebCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the species page in the browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				opts.cfg.WebAddr = addr
				opts.cfg.Sources["webAddr"] = cliconfig.SourceFlag
			}

			srv := web.NewServer(opts.newClient(),
				web.WithLogger(opts.logger),
				web.WithLanguage(opts.cfg.Lang),
			)
			// The page starts empty when the backend is down; the error is logged.
			_ = srv.Load(cmd.Context())

			fmt.Fprintf(cmd.OutOrStdout(), "Species web UI on http://%s (API %s)\n", opts.cfg.WebAddr, opts.cfg.APIURL)
			return serve(cmd.Context(), srv.NewHTTPServer(opts.cfg.WebAddr), opts.logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", cliconfig.DefaultWebAddr, "Listen address")
	return cmd
}

func newSandboxCmd(opts *rootOptions) *cobra.Command {
	var addr, seed string

	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Run an in-memory species API for local testing",
		Example: `  especies sandbox
  especies sandbox --addr :9090 --seed especies.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				opts.cfg.SandboxAddr = addr
				opts.cfg.Sources["sandboxAddr"] = cliconfig.SourceFlag
			}

			store := sandbox.NewStore()
			if seed != "" {
				n, err := store.SeedFile(seed)
				if err != nil {
					return err
				}
				opts.logger.Info("sandbox seeded", "file", seed, "count", n)
			}

			srv := sandbox.NewServer(store, sandbox.WithLogger(opts.logger))
			fmt.Fprintf(cmd.OutOrStdout(), "Sandbox species API on http://%s%s\n", opts.cfg.SandboxAddr, sandbox.CollectionPath)
			return serve(cmd.Context(), srv.NewHTTPServer(opts.cfg.SandboxAddr), opts.logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", cliconfig.DefaultSandboxAddr, "Listen address")
	cmd.Flags().StringVar(&seed, "seed", "", "YAML file with species to preload")
	return cmd
}

// serve runs srv until it fails, ctx is done or the process is interrupted,
// then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "addr", srv.Addr)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
