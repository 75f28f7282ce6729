package cmd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/malusev998/cryptoboard"
	"github.com/malusev998/cryptoboard/log"
	"github.com/malusev998/cryptoboard/metrics"
)

type (
	Config struct {
		Ctx       context.Context
		URL       string
		Whitelist cryptoboard.Whitelist
		Board     cryptoboard.Querier
		Service   cryptoboard.Service
		Storages  []cryptoboard.Storage
		Metrics   *metrics.Recorder
		Gatherer  prometheus.Gatherer
		Logger    *zap.SugaredLogger
		debug     *bool
	}

	// Loader builds the command configuration once flags and the config
	// file have been read.
	Loader func(ctx context.Context, debug bool) (*Config, error)
)

func (c *Config) logger() *zap.SugaredLogger {
	if c.Logger == nil {
		return log.Nop()
	}

	return c.Logger
}

func (c *Config) Close() error {
	var err error

	for _, storage := range c.Storages {
		err = multierr.Append(err, storage.Close())
	}

	if c.Logger != nil {
		_ = c.Logger.Sync()
	}

	return err
}

func newRootCmd(ctx context.Context, load Loader) (*cobra.Command, *Config) {
	var (
		debug      bool
		configFile string
	)

	config := &Config{Ctx: ctx, debug: &debug}

	rootCmd := &cobra.Command{
		Use:           "cryptoboard",
		Short:         "ETH and BTC prices in fiat currencies",
		Version:       "v1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			absolutePath, err := filepath.Abs(configFile)

			if err != nil {
				return errors.Wrap(err, "resolving config path")
			}

			viper.SetConfigFile(absolutePath)
			viper.SetEnvPrefix("CRYPTOBOARD")
			viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
			viper.AutomaticEnv()

			if err := viper.ReadInConfig(); err != nil && cmd.Flags().Changed("config") {
				return errors.Wrapf(err, "reading config file %s", absolutePath)
			}

			loaded, err := load(ctx, debug)

			if err != nil {
				return err
			}

			*config = *loaded
			config.Ctx = ctx
			config.debug = &debug

			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Debug flag")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./config.yml", "Path to config file")

	rootCmd.AddCommand(fetch(config), whitelist(config))

	return rootCmd, config
}

// Execute runs the command line and releases whatever the loader opened,
// even when the command fails.
func Execute(ctx context.Context, load Loader) error {
	rootCmd, config := newRootCmd(ctx, load)
	err := rootCmd.ExecuteContext(ctx)

	return multierr.Append(err, config.Close())
}
