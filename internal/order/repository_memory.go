package order

import (
	"context"
	"sync"
)

// InMemoryStore backs tests and local development without Postgres.
// Error fields let tests inject failures at specific steps.
type InMemoryStore struct {
	mu           sync.Mutex
	nextID       int64
	Transactions map[int64]TransactionRecord
	LineItems    []TransactionLineItem

	NextIDErr     error
	CreateErr     error
	CreateLineErr error
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		Transactions: make(map[int64]TransactionRecord),
	}
}

func (s *InMemoryStore) NextTransactionID(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.NextIDErr != nil {
		return 0, s.NextIDErr
	}
	s.nextID++
	return s.nextID, nil
}

func (s *InMemoryStore) GetLatestTransactionID(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest int64
	for id := range s.Transactions {
		if id > latest {
			latest = id
		}
	}
	return latest, nil
}

func (s *InMemoryStore) CreateTransaction(
	ctx context.Context,
	rec *TransactionRecord,
) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CreateErr != nil {
		return s.CreateErr
	}
	if _, exists := s.Transactions[rec.TransactionID]; exists {
		return nil // idempotent per id
	}
	s.Transactions[rec.TransactionID] = *rec
	return nil
}

func (s *InMemoryStore) CreateTransactionLineItem(
	ctx context.Context,
	item *TransactionLineItem,
) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CreateLineErr != nil {
		return s.CreateLineErr
	}
	s.LineItems = append(s.LineItems, *item)
	return nil
}
