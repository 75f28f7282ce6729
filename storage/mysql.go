package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/malusev998/cryptoboard"
)

const (
	MySQLTimeFormat = "2006-01-02 15:04:05"

	mysqlCreateTable = "CREATE TABLE IF NOT EXISTS %s(" +
		"id CHAR(36) NOT NULL PRIMARY KEY, " +
		"currency CHAR(3) NOT NULL, " +
		"provider VARCHAR(32) NOT NULL, " +
		"eth_price DOUBLE NOT NULL, " +
		"btc_price DOUBLE NOT NULL, " +
		"fetched_at DATETIME NOT NULL, " +
		"INDEX %s_currency_fetched_at(currency, fetched_at));"
	mysqlInsert    = "INSERT INTO %s(id, currency, provider, eth_price, btc_price, fetched_at) VALUES (?,?,?,?,?,?);"
	mysqlDropTable = "DROP TABLE IF EXISTS %s;"
)

type mysqlStorage struct {
	ctx         context.Context
	db          *sql.DB
	idGenerator IDGenerator
	tableName   string
}

func NewMySQLStorage(c MySQLConfig) (cryptoboard.Storage, error) {
	db, err := sql.Open("mysql", c.ConnectionString)

	if err != nil {
		return nil, err
	}

	return NewSQLStorage(c.Cxt, db, c.IDGenerator, c.TableName, c.Migrate)
}

// NewSQLStorage wraps an already opened database handle.
func NewSQLStorage(ctx context.Context, db *sql.DB, idGenerator IDGenerator, tableName string, migrate bool) (cryptoboard.Storage, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if idGenerator == nil {
		idGenerator = UUIDGenerator{}
	}

	storage := mysqlStorage{
		ctx:         ctx,
		db:          db,
		idGenerator: idGenerator,
		tableName:   tableName,
	}

	if migrate {
		if err := storage.Migrate(); err != nil {
			return nil, err
		}
	}

	return storage, nil
}

func (m mysqlStorage) Store(snapshot cryptoboard.Snapshot) ([]cryptoboard.StoredRecord, error) {
	records, fetchedAt := snapshot.Records, snapshot.FetchedAt

	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	tx, err := m.db.BeginTx(m.ctx, nil)

	if err != nil {
		return nil, err
	}

	stmt, err := tx.PrepareContext(m.ctx, fmt.Sprintf(mysqlInsert, m.tableName))

	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	defer stmt.Close()

	stored := make([]cryptoboard.StoredRecord, 0, len(records))

	for _, record := range records {
		id, err := newID(m.idGenerator)

		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}

		_, err = stmt.ExecContext(m.ctx, id.String(), record.CurrencyCode, string(snapshot.Provider), record.ETHPrice, record.BTCPrice, fetchedAt.Format(MySQLTimeFormat))

		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}

		stored = append(stored, cryptoboard.StoredRecord{
			PriceRecord: record,
			Provider:    snapshot.Provider,
			FetchedAt:   fetchedAt,
			ID:          id,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return stored, nil
}

func (m mysqlStorage) GetStorageProviderName() string {
	return string(MySQL)
}

func (m mysqlStorage) Migrate() error {
	_, err := m.db.ExecContext(m.ctx, fmt.Sprintf(mysqlCreateTable, m.tableName, m.tableName))

	return err
}

func (m mysqlStorage) Drop() error {
	_, err := m.db.ExecContext(m.ctx, fmt.Sprintf(mysqlDropTable, m.tableName))

	return err
}

func (m mysqlStorage) Close() error {
	return m.db.Close()
}
