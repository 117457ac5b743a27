package inventory

import "context"

// Repository is the ledger of remaining stock. Decrements are issued one
// call per food reference during checkout; each call succeeds or fails
// on its own.
type Repository interface {
	DecrementByFood(ctx context.Context, foodID int) error
	DecrementByItemType(ctx context.Context, itemID int) error

	ListFoodLevels(ctx context.Context) ([]FoodLevel, error)
	ListItemTypeLevels(ctx context.Context) ([]ItemTypeLevel, error)
}
