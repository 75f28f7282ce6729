package cryptoboard

import "context"

type (
	Service interface {
		Save(ctx context.Context, url string) (map[string][]StoredRecord, error)
		Store(snapshot Snapshot) (map[string][]StoredRecord, error)
	}
)
