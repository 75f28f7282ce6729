package services

import (
	"context"
	"errors"
	"sync"

	"github.com/malusev998/cryptoboard"
)

var ErrNoStorageProvided = errors.New("no storage provided")

type Service struct {
	Board   cryptoboard.Querier
	Storage []cryptoboard.Storage
}

func saveToStorage(
	wg *sync.WaitGroup,
	snapshot cryptoboard.Snapshot,
	data map[string][]cryptoboard.StoredRecord,
	storage cryptoboard.Storage,
	errorChannel chan<- error,
	mutex sync.Locker,
) {
	defer wg.Done()
	records, err := storage.Store(snapshot)

	if err != nil {
		errorChannel <- err
		return
	}

	mutex.Lock()
	data[storage.GetStorageProviderName()] = records
	mutex.Unlock()
}

// Store writes the snapshot to every storage concurrently. The first
// storage error is returned and the partial result discarded.
func (s Service) Store(snapshot cryptoboard.Snapshot) (map[string][]cryptoboard.StoredRecord, error) {
	var wg sync.WaitGroup
	mutex := &sync.Mutex{}

	if len(s.Storage) == 0 {
		return nil, ErrNoStorageProvided
	}

	errorChannel := make(chan error, len(s.Storage))
	data := make(map[string][]cryptoboard.StoredRecord, len(s.Storage))

	wg.Add(len(s.Storage))
	for _, storage := range s.Storage {
		go saveToStorage(&wg, snapshot, data, storage, errorChannel, mutex)
	}

	wg.Wait()
	close(errorChannel)

	if err, more := <-errorChannel; more {
		return nil, err
	}

	return data, nil
}

// Save fetches one snapshot and stores it.
func (s Service) Save(ctx context.Context, url string) (map[string][]cryptoboard.StoredRecord, error) {
	snapshot, err := s.Board.Snapshot(ctx, url)

	if err != nil {
		return nil, err
	}

	return s.Store(snapshot)
}
