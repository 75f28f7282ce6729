package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/malusev998/cryptoboard"
	"github.com/malusev998/cryptoboard/cli/cmd"
	"github.com/malusev998/cryptoboard/log"
	"github.com/malusev998/cryptoboard/metrics"
	"github.com/malusev998/cryptoboard/services"
	"github.com/malusev998/cryptoboard/storage"
)

func createStorages(config *Config) ([]cryptoboard.Storage, error) {
	storages := make([]cryptoboard.Storage, 0, len(config.Storage))
	for _, s := range config.Storage {
		c, ok := config.StorageConfig[s]
		if !ok {
			return nil, multierr.Append(fmt.Errorf("storage %s does not exist", s), closeStorages(storages))
		}

		st, err := storage.NewStorage(s, c)

		if err != nil {
			return nil, multierr.Append(err, closeStorages(storages))
		}

		storages = append(storages, st)
	}

	return storages, nil
}

func closeStorages(storages []cryptoboard.Storage) error {
	var err error

	for _, s := range storages {
		err = multierr.Append(err, s.Close())
	}

	return err
}

func load(ctx context.Context, debug bool) (*cmd.Config, error) {
	config, err := getConfig(ctx)

	if err != nil {
		return nil, err
	}

	if debug {
		config.Log.Level = "debug"
	}

	logger, err := log.New(config.Log)

	if err != nil {
		return nil, err
	}

	storages, err := createStorages(config)

	if err != nil {
		return nil, err
	}

	board := services.NewBoard(config.Whitelist)
	board.Provider = config.Provider

	registry := prometheus.NewRegistry()

	cmdConfig := &cmd.Config{
		Ctx:       ctx,
		URL:       config.URL,
		Whitelist: config.Whitelist,
		Board:     board,
		Storages:  storages,
		Metrics:   metrics.New(registry),
		Gatherer:  registry,
		Logger:    logger,
	}

	if len(storages) > 0 {
		cmdConfig.Service = services.Service{Board: board, Storage: storages}
	}

	logger.Debugw("configuration loaded",
		"url", config.URL,
		"whitelist", config.Whitelist.String(),
		"storage", config.Storage,
	)

	return cmdConfig, nil
}
