package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eddi3MS/delivery-bd/internal/bootstrap"
	"github.com/Eddi3MS/delivery-bd/internal/logging"
	"github.com/spf13/cobra"
)

const shutdownGrace = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load("delivery-api")
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, cleanup, err := bootstrap.InitWithConfig(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			srv := &http.Server{
				Addr:         cfg.App.HTTPAddr,
				Handler:      app.Router,
				ReadTimeout:  cfg.HTTP.ReadTimeout,
				WriteTimeout: cfg.HTTP.WriteTimeout,
				IdleTimeout:  cfg.HTTP.IdleTimeout,
			}

			l := logging.New("serve")
			errCh := make(chan error, 1)
			go func() {
				l.Info("listening", "addr", cfg.App.HTTPAddr, "env", cfg.App.Env)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			l.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
