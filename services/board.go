package services

import (
	"context"
	"time"

	"github.com/malusev998/cryptoboard"
	"github.com/malusev998/cryptoboard/decoder"
	"github.com/malusev998/cryptoboard/transport"
)

// Board runs the fetch-then-decode pipeline. It holds no state between calls.
type Board struct {
	Transport cryptoboard.Transport
	Decoder   cryptoboard.Decoder
	Provider  cryptoboard.Provider
}

func NewBoard(whitelist cryptoboard.Whitelist) Board {
	return Board{
		Transport: transport.New(),
		Decoder:   decoder.New(whitelist),
		Provider:  cryptoboard.CryptoCompareProvider,
	}
}

func (b Board) Query(ctx context.Context, url string) ([]cryptoboard.PriceRecord, error) {
	body, err := b.Transport.Fetch(ctx, url)

	if err != nil {
		return []cryptoboard.PriceRecord{}, err
	}

	return b.Decoder.Decode(body)
}

func (b Board) Snapshot(ctx context.Context, url string) (cryptoboard.Snapshot, error) {
	records, err := b.Query(ctx, url)

	return cryptoboard.Snapshot{
		Records:   records,
		Provider:  b.Provider,
		FetchedAt: time.Now().UTC(),
	}, err
}
