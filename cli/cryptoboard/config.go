package main

import (
	"context"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/malusev998/cryptoboard"
	"github.com/malusev998/cryptoboard/log"
	"github.com/malusev998/cryptoboard/storage"
)

type (
	StorageConfig map[storage.Provider]interface{}
	Config        struct {
		URL           string
		Provider      cryptoboard.Provider
		Whitelist     cryptoboard.Whitelist
		Storage       []storage.Provider
		StorageConfig StorageConfig
		Log           log.Config
	}
)

func setDefaults() {
	viper.SetDefault("api.provider", string(cryptoboard.CryptoCompareProvider))
	viper.SetDefault("api.base", cryptoboard.CryptoCompareURL)
	viper.SetDefault("databases.mysql.table", "prices")
	viper.SetDefault("databases.mongo.db", "cryptoboard")
	viper.SetDefault("databases.mongo.collection", "prices")
}

func getMysqlDSN(config map[string]string) string {
	mysqlDriverConfig := mysql.NewConfig()
	mysqlDriverConfig.User = config["user"]
	mysqlDriverConfig.Passwd = config["password"]
	mysqlDriverConfig.Addr = config["addr"]
	mysqlDriverConfig.Net = "tcp"
	mysqlDriverConfig.DBName = config["db"]

	return mysqlDriverConfig.FormatDSN()
}

func getWhitelist() (cryptoboard.Whitelist, error) {
	var codes []string

	// Environment values arrive as a single "EUR,USD" string.
	for _, code := range viper.GetStringSlice("whitelist") {
		codes = append(codes, strings.Split(code, ",")...)
	}

	if len(codes) == 0 {
		return cryptoboard.DefaultWhitelist(), nil
	}

	whitelist := cryptoboard.NewWhitelist(codes...)

	if len(whitelist) == 0 {
		return nil, errors.New("whitelist must contain at least one currency code")
	}

	return whitelist, nil
}

func getConfig(ctx context.Context) (*Config, error) {
	var logConfig log.Config

	setDefaults()

	if err := viper.UnmarshalKey("log", &logConfig); err != nil {
		return nil, errors.Wrap(err, "error while parsing log config")
	}

	provider, err := cryptoboard.ConvertToProviderFromString(viper.GetString("api.provider"))

	if err != nil {
		return nil, errors.Wrap(err, "error while parsing api.provider")
	}

	whitelist, err := getWhitelist()

	if err != nil {
		return nil, err
	}

	url := viper.GetString("api.url")

	if url == "" {
		url = cryptoboard.PriceMultiURL(viper.GetString("api.base"), cryptoboard.Assets[:], whitelist)
	}

	storages, err := storage.ConvertToProvidersFromStringSlice(viper.GetStringSlice("storage"))

	if err != nil {
		return nil, errors.Wrap(err, "error while parsing storage")
	}

	mysqlConfig := viper.GetStringMapString("databases.mysql")
	mongodbConfig := viper.GetStringMapString("databases.mongo")

	storageBaseConfig := storage.BaseConfig{
		Cxt:     ctx,
		Migrate: viper.GetBool("migrate"),
	}

	return &Config{
		URL:       url,
		Provider:  provider,
		Whitelist: whitelist,
		Storage:   storages,
		StorageConfig: StorageConfig{
			storage.MySQL: storage.MySQLConfig{
				BaseConfig:       storageBaseConfig,
				ConnectionString: getMysqlDSN(mysqlConfig),
				TableName:        mysqlConfig["table"],
				IDGenerator:      nil,
			},
			storage.MongoDB: storage.MongoDBConfig{
				BaseConfig:       storageBaseConfig,
				ConnectionString: mongodbConfig["uri"],
				Database:         mongodbConfig["db"],
				Collection:       mongodbConfig["collection"],
			},
		},
		Log: logConfig,
	}, nil
}
