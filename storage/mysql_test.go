package storage_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bxcodec/faker/v3"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/malusev998/cryptoboard"
	"github.com/malusev998/cryptoboard/storage"
)

const insertQuery = "INSERT INTO prices_unit(id, currency, provider, eth_price, btc_price, fetched_at) VALUES (?,?,?,?,?,?);"

func mysqlConnectionString() string {
	mysqlDriverConfig := mysql.NewConfig()
	mysqlDriverConfig.User = "currency"
	mysqlDriverConfig.Passwd = "currency"
	mysqlDriverConfig.DBName = "cryptoboard"
	mysqlDriverConfig.Net = "tcp"

	if os.Getenv("RUNNING_IN_DOCKER") != "" {
		mysqlDriverConfig.Addr = "mysql:3306"
	} else {
		mysqlDriverConfig.Addr = "localhost:3306"
	}

	return mysqlDriverConfig.FormatDSN()
}

func fakeRecords(n int) []cryptoboard.PriceRecord {
	records := make([]cryptoboard.PriceRecord, 0, n)

	for i := 0; i < n; i++ {
		records = append(records, cryptoboard.PriceRecord{
			CurrencyCode: faker.Currency(),
			ETHPrice:     rand.Float64() * 1000,
			BTCPrice:     rand.Float64() * 10000,
		})
	}

	return records
}

func TestMysqlStorage_StoreUnit(t *testing.T) {
	t.Parallel()
	db, m, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	assert := require.New(t)
	assert.NoError(err)
	defer db.Close()

	ctx := context.Background()
	st, _ := storage.NewSQLStorage(ctx, db, nil, "prices_unit", false)

	records := fakeRecords(2)
	fetchedAt := time.Date(2017, 10, 28, 12, 30, 0, 0, time.UTC)
	formatted := fetchedAt.Format(storage.MySQLTimeFormat)
	snapshot := cryptoboard.Snapshot{Records: records, Provider: cryptoboard.CryptoCompareProvider, FetchedAt: fetchedAt}

	t.Run("Transaction_Not_Started", func(t *testing.T) {
		m.ExpectBegin().WillReturnError(errors.New("error while starting transaction"))
		_, err := st.Store(snapshot)
		assert.Error(err)
		assert.Nil(m.ExpectationsWereMet())
		assert.Equal("error while starting transaction", err.Error())
	})

	t.Run("Prepare_SQL_WithError", func(t *testing.T) {
		m.ExpectBegin()
		m.ExpectPrepare(insertQuery).
			WillReturnError(errors.New("cannot create prepare statement"))
		m.ExpectRollback()

		_, err := st.Store(snapshot)
		assert.Nil(m.ExpectationsWereMet())
		assert.Error(err)
		assert.Equal("cannot create prepare statement", err.Error())
	})

	t.Run("Exec_WithError", func(t *testing.T) {
		m.ExpectBegin()
		m.ExpectPrepare(insertQuery).
			ExpectExec().
			WithArgs(sqlmock.AnyArg(), records[0].CurrencyCode, "CryptoCompare", records[0].ETHPrice, records[0].BTCPrice, formatted).
			WillReturnError(errors.New("duplicate entry"))
		m.ExpectRollback()

		stored, err := st.Store(snapshot)
		assert.Nil(m.ExpectationsWereMet())
		assert.Nil(stored)
		assert.EqualError(err, "duplicate entry")
	})

	t.Run("Stored", func(t *testing.T) {
		m.ExpectBegin()
		prepare := m.ExpectPrepare(insertQuery)

		for _, record := range records {
			prepare.ExpectExec().
				WithArgs(sqlmock.AnyArg(), record.CurrencyCode, "CryptoCompare", record.ETHPrice, record.BTCPrice, formatted).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}

		m.ExpectCommit()

		stored, err := st.Store(snapshot)
		assert.NoError(err)
		assert.Nil(m.ExpectationsWereMet())
		assert.Len(stored, len(records))

		for i, s := range stored {
			assert.Equal(records[i], s.PriceRecord)
			assert.Equal(cryptoboard.CryptoCompareProvider, s.Provider)
			assert.Equal(fetchedAt, s.FetchedAt)
			assert.IsType(uuid.UUID{}, s.ID)
		}
	})

	t.Run("Commit_WithError", func(t *testing.T) {
		m.ExpectBegin()
		m.ExpectPrepare(insertQuery).
			ExpectExec().
			WithArgs(sqlmock.AnyArg(), records[0].CurrencyCode, "CryptoCompare", records[0].ETHPrice, records[0].BTCPrice, formatted).
			WillReturnResult(sqlmock.NewResult(0, 1))
		m.ExpectCommit().WillReturnError(errors.New("connection lost"))

		stored, err := st.Store(cryptoboard.Snapshot{Records: records[:1], Provider: cryptoboard.CryptoCompareProvider, FetchedAt: fetchedAt})
		assert.Nil(m.ExpectationsWereMet())
		assert.Nil(stored)
		assert.EqualError(err, "connection lost")
	})
}

func TestMysqlStorage_StoreIDGenerator(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	idNullBytes := &IDGeneratorMock{}
	idLessBytes := &IDGeneratorMock{}

	idNullBytes.On("Generate").Return(nil)
	idLessBytes.On("Generate").Return(make([]byte, 10))

	for _, gen := range []storage.IDGenerator{idNullBytes, idLessBytes} {
		db, m, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		assert.NoError(err)

		st, _ := storage.NewSQLStorage(context.Background(), db, gen, "prices_unit", false)

		m.ExpectBegin()
		m.ExpectPrepare(insertQuery)
		m.ExpectRollback()

		stored, err := st.Store(cryptoboard.Snapshot{Records: fakeRecords(1), FetchedAt: time.Now()})

		assert.Nil(stored)
		assert.True(errors.Is(err, storage.ErrNotEnoughBytesInGenerator))
		assert.Nil(m.ExpectationsWereMet())
		_ = db.Close()
	}
}

func TestMysqlStorage_MigrateDropClose(t *testing.T) {
	t.Parallel()
	db, m, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	assert := require.New(t)
	assert.NoError(err)

	create := "CREATE TABLE IF NOT EXISTS prices_migrate(" +
		"id CHAR(36) NOT NULL PRIMARY KEY, " +
		"currency CHAR(3) NOT NULL, " +
		"provider VARCHAR(32) NOT NULL, " +
		"eth_price DOUBLE NOT NULL, " +
		"btc_price DOUBLE NOT NULL, " +
		"fetched_at DATETIME NOT NULL, " +
		"INDEX prices_migrate_currency_fetched_at(currency, fetched_at));"

	m.ExpectExec(create).WillReturnResult(sqlmock.NewResult(0, 0))
	st, err := storage.NewSQLStorage(context.Background(), db, nil, "prices_migrate", true)
	assert.NoError(err)
	assert.Equal("mysql", st.GetStorageProviderName())

	m.ExpectExec("DROP TABLE IF EXISTS prices_migrate;").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.NoError(st.Drop())

	m.ExpectClose()
	assert.NoError(st.Close())
	assert.Nil(m.ExpectationsWereMet())
}

func TestMysqlStorage_MigrateError(t *testing.T) {
	t.Parallel()
	db, m, err := sqlmock.New()
	assert := require.New(t)
	assert.NoError(err)
	defer db.Close()

	m.ExpectExec("CREATE TABLE").WillReturnError(errors.New("access denied"))

	st, err := storage.NewSQLStorage(context.Background(), db, nil, "prices", true)
	assert.Nil(st)
	assert.EqualError(err, "access denied")
}

func TestMySQL_InsertMany(t *testing.T) {
	if os.Getenv("MYSQL_INTEGRATION") == "" {
		t.Skip("MYSQL_INTEGRATION is not set")
	}

	t.Parallel()
	asserts := require.New(t)

	st, err := storage.NewMySQLStorage(storage.MySQLConfig{
		BaseConfig: storage.BaseConfig{
			Cxt:     context.Background(),
			Migrate: true,
		},
		ConnectionString: mysqlConnectionString(),
		TableName:        fmt.Sprintf("prices_insert_many_%d", rand.Intn(1_000_000)),
	})
	asserts.NoError(err)
	defer st.Close()
	defer st.Drop()

	stored, err := st.Store(cryptoboard.Snapshot{Records: fakeRecords(3), Provider: cryptoboard.CryptoCompareProvider, FetchedAt: time.Now().UTC()})

	asserts.Nil(err)
	asserts.Len(stored, 3)

	for _, s := range stored {
		asserts.IsType(uuid.UUID{}, s.ID)
	}
}
