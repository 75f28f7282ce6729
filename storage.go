package cryptoboard

type Storage interface {
	Store(snapshot Snapshot) ([]StoredRecord, error)
	GetStorageProviderName() string
	Migrate() error
	Drop() error
	Close() error
}
