package app

import (
	"os/signal"
	"syscall"

	"github.com/Eddi3MS/delivery-bd/internal/bootstrap"
	"github.com/spf13/cobra"
)

func newNotifyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "notify",
		Short: "Consume order events and notify customers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load("delivery-notifier")
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return bootstrap.RunNotifier(ctx, cfg)
		},
	}
}
