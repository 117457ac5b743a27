package order

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) NextTransactionID(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		`SELECT nextval('transaction_id_seq')`,
	).Scan(&id)
	return id, err
}

func (s *PostgresStore) GetLatestTransactionID(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(id), 0) FROM transactions`,
	).Scan(&id)
	return id, err
}

func (s *PostgresStore) CreateTransaction(
	ctx context.Context,
	rec *TransactionRecord,
) error {

	// ON CONFLICT keeps a finalize retry from duplicating the header.
	_, err := s.db.Exec(ctx, `
		INSERT INTO transactions (id, employee_id, total, created_at, payment_method)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`,
		rec.TransactionID,
		rec.EmployeeID,
		rec.Total,
		rec.Timestamp,
		rec.PaymentMethod,
	)
	return err
}

func (s *PostgresStore) CreateTransactionLineItem(
	ctx context.Context,
	item *TransactionLineItem,
) error {

	_, err := s.db.Exec(ctx, `
		INSERT INTO transaction_items (transaction_id, item_id, food1, food2, food3, food4)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		item.TransactionID,
		item.ItemID,
		item.FoodIDs[0],
		item.FoodIDs[1],
		item.FoodIDs[2],
		item.FoodIDs[3],
	)
	return err
}
