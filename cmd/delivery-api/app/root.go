package app

import (
	"os"

	"github.com/Eddi3MS/delivery-bd/configs"
	"github.com/Eddi3MS/delivery-bd/internal/logging"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

type rootOptions struct {
	configDir string
	env       string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "delivery-api",
		Short:         "Delivery e-commerce backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	env := os.Getenv("APP_ENV") // dev | test | prod
	if env == "" {
		env = "dev"
	}
	cmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", "configs", "directory holding base.yaml and <env>.yaml")
	cmd.PersistentFlags().StringVar(&opts.env, "env", env, "configuration environment")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newNotifyCmd(opts))
	cmd.AddCommand(newCreateAdminCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func Execute() error {
	return newRootCmd().Execute()
}

// load reads the configuration and initialises logging for component.
func (o *rootOptions) load(component string) (configs.Config, error) {
	cfg, err := configs.Load(o.configDir, o.env)
	if err != nil {
		return configs.Config{}, err
	}
	logging.Init(logging.Options{Component: component, File: cfg.App.LogFile, Level: cfg.App.LogLevel})
	return cfg, nil
}
