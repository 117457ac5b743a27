package order

import "context"

// TransactionStore persists completed orders. CreateTransaction must
// be idempotent per transaction id so a retried finalize cannot write
// a duplicate header.
type TransactionStore interface {

	// Allocates the next transaction id atomically on the server
	// side. Two concurrent checkouts can never receive the same id.
	NextTransactionID(ctx context.Context) (int64, error)

	// Highest id issued so far; reporting only, never used to mint
	// new ids.
	GetLatestTransactionID(ctx context.Context) (int64, error)

	CreateTransaction(ctx context.Context, rec *TransactionRecord) error
	CreateTransactionLineItem(ctx context.Context, item *TransactionLineItem) error
}

// Ledger is the inventory surface checkout decrements against. Each
// call is independently fallible; failures never roll the order back.
type Ledger interface {
	DecrementByFood(ctx context.Context, foodID int) error
	DecrementByItemType(ctx context.Context, itemID int) error
}
