package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Eddi3MS/delivery-bd/internal/bootstrap"
	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	"github.com/spf13/cobra"
)

func newCreateAdminCmd(opts *rootOptions) *cobra.Command {
	var in usecase.SignUpInput
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load("delivery-admin")
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			users, cleanup, err := bootstrap.OpenUsers(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			u, err := users.CreateAdmin(ctx, in)
			if err != nil {
				if msg := usecase.Message(err); msg != "" && !errors.Is(err, usecase.ErrInvalidInput) {
					return errors.New(msg)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s created (%s)\n", u.Email, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "display name")
	cmd.Flags().StringVar(&in.Email, "email", "", "login email")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "contact phone")
	cmd.Flags().StringVar(&in.Password, "password", "", "initial password (min 5 chars)")
	for _, f := range []string{"name", "email", "phone", "password"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
