package cryptoboard

import "context"

type (
	// Transport returns the raw body of a GET request to url.
	Transport interface {
		Fetch(ctx context.Context, url string) (string, error)
	}

	// Decoder turns a raw price payload into records ordered by its whitelist.
	Decoder interface {
		Decode(body string) ([]PriceRecord, error)
	}

	Querier interface {
		Query(ctx context.Context, url string) ([]PriceRecord, error)
		Snapshot(ctx context.Context, url string) (Snapshot, error)
	}
)
