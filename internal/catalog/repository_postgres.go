package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("catalog: item not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Menu listing
// --------------------------------------------------
func (r *PostgresRepository) GetMenu(
	ctx context.Context,
	category Category,
) ([]MenuItem, error) {

	query := `
		SELECT
			food_id,
			name,
			category,
			base_price,
			is_premium,
			in_stock
		FROM menu_items
		WHERE category = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, string(category))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []MenuItem

	for rows.Next() {
		var item MenuItem
		if err := rows.Scan(
			&item.FoodID,
			&item.Name,
			&item.Category,
			&item.BasePrice,
			&item.IsPremium,
			&item.InStock,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// --------------------------------------------------
// Single item lookup
// --------------------------------------------------
func (r *PostgresRepository) GetItem(
	ctx context.Context,
	name string,
) (*MenuItem, error) {

	query := `
		SELECT food_id, name, category, base_price, is_premium, in_stock
		FROM menu_items
		WHERE name = $1
	`

	item := &MenuItem{}
	err := r.db.QueryRow(ctx, query, name).Scan(
		&item.FoodID,
		&item.Name,
		&item.Category,
		&item.BasePrice,
		&item.IsPremium,
		&item.InStock,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// --------------------------------------------------
// Price lookup (composite units win over food items)
// --------------------------------------------------
func (r *PostgresRepository) GetPrice(
	ctx context.Context,
	name string,
) (float64, error) {

	var price float64

	err := r.db.QueryRow(ctx,
		`SELECT price FROM base_items WHERE name = $1`, name,
	).Scan(&price)
	if err == nil {
		return price, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	err = r.db.QueryRow(ctx,
		`SELECT base_price FROM menu_items WHERE name = $1`, name,
	).Scan(&price)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return price, nil
}

// --------------------------------------------------
// Id lookups
// --------------------------------------------------
func (r *PostgresRepository) GetBaseItemID(
	ctx context.Context,
	name string,
) (int, error) {

	var id int
	err := r.db.QueryRow(ctx,
		`SELECT item_id FROM base_items WHERE name = $1`, name,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PostgresRepository) GetFoodID(
	ctx context.Context,
	name string,
) (int, error) {

	var id int
	err := r.db.QueryRow(ctx,
		`SELECT food_id FROM menu_items WHERE name = $1`, name,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// --------------------------------------------------
// Premium entrees
// --------------------------------------------------
func (r *PostgresRepository) GetPremiumEntrees(
	ctx context.Context,
) ([]string, error) {

	rows, err := r.db.Query(ctx, `
		SELECT name
		FROM menu_items
		WHERE category = 'Entree' AND is_premium = TRUE
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}
