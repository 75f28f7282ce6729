package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/malusev998/cryptoboard"
)

type (
	MockTransport struct {
		mock.Mock
	}

	MockDecoder struct {
		mock.Mock
	}

	MockQuerier struct {
		mock.Mock
	}

	MockStorage struct {
		mock.Mock
		name string
	}
)

func (m *MockTransport) Fetch(ctx context.Context, url string) (string, error) {
	args := m.Called(ctx, url)

	return args.String(0), args.Error(1)
}

func (m *MockDecoder) Decode(body string) ([]cryptoboard.PriceRecord, error) {
	args := m.Called(body)
	return1 := args.Get(0)

	if return1 == nil {
		return nil, args.Error(1)
	}

	return return1.([]cryptoboard.PriceRecord), args.Error(1)
}

func (m *MockQuerier) Query(ctx context.Context, url string) ([]cryptoboard.PriceRecord, error) {
	args := m.Called(ctx, url)

	return args.Get(0).([]cryptoboard.PriceRecord), args.Error(1)
}

func (m *MockQuerier) Snapshot(ctx context.Context, url string) (cryptoboard.Snapshot, error) {
	args := m.Called(ctx, url)

	return args.Get(0).(cryptoboard.Snapshot), args.Error(1)
}

func (m *MockStorage) Store(snapshot cryptoboard.Snapshot) ([]cryptoboard.StoredRecord, error) {
	args := m.Called(snapshot)
	return1 := args.Get(0)

	if return1 == nil {
		return nil, args.Error(1)
	}

	return return1.([]cryptoboard.StoredRecord), args.Error(1)
}

func (m *MockStorage) GetStorageProviderName() string {
	if m.name == "" {
		return "MockStorage"
	}

	return m.name
}

func (m *MockStorage) Migrate() error {
	return nil
}

func (m *MockStorage) Drop() error {
	return nil
}

func (m *MockStorage) Close() error {
	return nil
}
