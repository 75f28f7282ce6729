package storage

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/malusev998/cryptoboard"
)

type mongoStorage struct {
	ctx        context.Context
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoStorage(c MongoDBConfig) (cryptoboard.Storage, error) {
	ctx := c.Cxt

	if ctx == nil {
		ctx = context.Background()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.ConnectionString))

	if err != nil {
		return nil, err
	}

	storage := mongoStorage{
		ctx:        ctx,
		client:     client,
		collection: client.Database(c.Database).Collection(c.Collection),
	}

	if c.Migrate {
		if err := storage.Migrate(); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
	}

	return storage, nil
}

func (m mongoStorage) Store(snapshot cryptoboard.Snapshot) ([]cryptoboard.StoredRecord, error) {
	records, fetchedAt := snapshot.Records, snapshot.FetchedAt

	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	if len(records) == 0 {
		return []cryptoboard.StoredRecord{}, nil
	}

	documents := make([]interface{}, 0, len(records))

	for _, record := range records {
		documents = append(documents, bson.M{
			"currency":  record.CurrencyCode,
			"provider":  string(snapshot.Provider),
			"eth":       record.ETHPrice,
			"btc":       record.BTCPrice,
			"fetchedAt": fetchedAt,
		})
	}

	result, err := m.collection.InsertMany(m.ctx, documents)

	if err != nil {
		return nil, err
	}

	stored := make([]cryptoboard.StoredRecord, 0, len(records))

	for i, record := range records {
		stored = append(stored, cryptoboard.StoredRecord{
			PriceRecord: record,
			Provider:    snapshot.Provider,
			FetchedAt:   fetchedAt,
			ID:          result.InsertedIDs[i],
		})
	}

	return stored, nil
}

func (m mongoStorage) GetStorageProviderName() string {
	return string(MongoDB)
}

func (m mongoStorage) Migrate() error {
	_, err := m.collection.Indexes().CreateOne(m.ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "currency", Value: 1},
			{Key: "fetchedAt", Value: -1},
		},
	})

	return err
}

func (m mongoStorage) Drop() error {
	return m.collection.Drop(m.ctx)
}

func (m mongoStorage) Close() error {
	return m.client.Disconnect(m.ctx)
}
