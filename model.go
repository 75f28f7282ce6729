package cryptoboard

import "time"

type (
	PriceRecord struct {
		CurrencyCode string  `json:"currency" yaml:"currency"`
		ETHPrice     float64 `json:"eth" yaml:"eth"`
		BTCPrice     float64 `json:"btc" yaml:"btc"`
	}

	Snapshot struct {
		Records   []PriceRecord
		Provider  Provider
		FetchedAt time.Time
	}

	StoredRecord struct {
		PriceRecord
		Provider  Provider
		FetchedAt time.Time
		ID        interface{}
	}
)
