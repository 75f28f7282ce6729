package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/malusev998/cryptoboard/board"
)

var (
	ErrNoStorageConfigured = errors.New("--store requires at least one storage in the config file")
	ErrInvalidInterval     = errors.New("--after must be positive")
)

type fetchOptions struct {
	standalone  bool
	after       time.Duration
	store       bool
	format      string
	places      int32
	metricsAddr string
}

func handleFetch(cmd *cobra.Command, config *Config, opts *fetchOptions) error {
	format, err := board.ParseFormat(opts.format)

	if err != nil {
		return err
	}

	snapshot, err := config.Board.Snapshot(config.Ctx, config.URL)

	if config.Metrics != nil {
		config.Metrics.Observe(snapshot.Records, err)
	}

	if err != nil {
		return errors.Wrap(err, "fetching prices")
	}

	if err := board.Render(cmd.OutOrStdout(), snapshot.Records, format, opts.places); err != nil {
		return err
	}

	if !opts.store {
		return nil
	}

	if config.Service == nil {
		return ErrNoStorageConfigured
	}

	saved, err := config.Service.Store(snapshot)

	if err != nil {
		return errors.Wrap(err, "storing prices")
	}

	if !*config.debug {
		return nil
	}

	for storage, records := range saved {
		for i, record := range records {
			config.logger().Debugw("record saved",
				"n", i,
				"storage", storage,
				"currency", record.CurrencyCode,
				"eth", record.ETHPrice,
				"btc", record.BTCPrice,
				"id", record.ID,
			)
		}
	}

	return nil
}

func serveMetrics(ctx context.Context, config *Config, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(config.Gatherer, promhttp.HandlerOpts{}))

	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			config.logger().Errorw("metrics server stopped", "addr", addr, "error", err)
		}
	}()
}

func fetchCobraCommand(config *Config, opts *fetchOptions) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger := config.logger()

		if !opts.standalone {
			return handleFetch(cmd, config, opts)
		}

		if opts.after <= 0 {
			return ErrInvalidInterval
		}

		if opts.metricsAddr != "" && config.Gatherer != nil {
			serveMetrics(config.Ctx, config, opts.metricsAddr)
		}

		logger.Infow("fetching prices", "url", config.URL, "every", opts.after)

		if err := handleFetch(cmd, config, opts); err != nil {
			logger.Errorw("fetch failed", "error", err)
		}

		for {
			select {
			case <-time.After(opts.after):
				if err := handleFetch(cmd, config, opts); err != nil {
					logger.Errorw("fetch failed", "error", err)
				}
			case <-config.Ctx.Done():
				return nil
			}
		}
	}
}

func fetch(config *Config) *cobra.Command {
	opts := &fetchOptions{}

	fetchCmd := &cobra.Command{
		Use:          "fetch",
		Short:        "Fetch the current prices and print the board",
		SilenceUsage: true,
	}

	fetchCmd.RunE = fetchCobraCommand(config, opts)
	fetchCmd.Flags().BoolVar(&opts.standalone, "standalone", false, "Start up a long running fetching service")
	fetchCmd.Flags().DurationVar(&opts.after, "after", time.Minute, "Fetching interval for standalone process")
	fetchCmd.Flags().BoolVar(&opts.store, "store", false, "Save every snapshot to the configured storages")
	fetchCmd.Flags().StringVar(&opts.format, "format", string(board.Table), "Output format: table, json or yaml")
	fetchCmd.Flags().Int32Var(&opts.places, "places", board.DefaultPlaces, "Decimal places shown for prices")
	fetchCmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address in standalone mode")

	return fetchCmd
}
