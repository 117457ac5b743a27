package inventory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUnknownReference = errors.New("inventory: no ledger row for reference")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Decrements
// --------------------------------------------------
func (r *PostgresRepository) DecrementByFood(
	ctx context.Context,
	foodID int,
) error {

	tag, err := r.db.Exec(ctx, `
		UPDATE inventory_food
		SET quantity = quantity - 1
		WHERE food_id = $1
	`, foodID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUnknownReference
	}
	return nil
}

func (r *PostgresRepository) DecrementByItemType(
	ctx context.Context,
	itemID int,
) error {

	tag, err := r.db.Exec(ctx, `
		UPDATE inventory_item_types
		SET quantity = quantity - 1
		WHERE item_id = $1
	`, itemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUnknownReference
	}
	return nil
}

// --------------------------------------------------
// Stock views
// --------------------------------------------------
func (r *PostgresRepository) ListFoodLevels(
	ctx context.Context,
) ([]FoodLevel, error) {

	rows, err := r.db.Query(ctx, `
		SELECT f.food_id, m.name, f.quantity
		FROM inventory_food f
		JOIN menu_items m ON m.food_id = f.food_id
		ORDER BY m.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []FoodLevel
	for rows.Next() {
		var level FoodLevel
		if err := rows.Scan(&level.FoodID, &level.Name, &level.Quantity); err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}

	return levels, rows.Err()
}

func (r *PostgresRepository) ListItemTypeLevels(
	ctx context.Context,
) ([]ItemTypeLevel, error) {

	rows, err := r.db.Query(ctx, `
		SELECT t.item_id, b.name, t.quantity
		FROM inventory_item_types t
		JOIN base_items b ON b.item_id = t.item_id
		ORDER BY b.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []ItemTypeLevel
	for rows.Next() {
		var level ItemTypeLevel
		if err := rows.Scan(&level.ItemID, &level.Name, &level.Quantity); err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}

	return levels, rows.Err()
}
