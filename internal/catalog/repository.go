package catalog

import "context"

// Repository defines all read operations against the menu catalog.
// The ordering core treats every call as a fallible remote lookup.
type Repository interface {

	// Food items in a category, including out-of-stock rows.
	GetMenu(ctx context.Context, category Category) ([]MenuItem, error)

	// Single food item by exact name.
	GetItem(ctx context.Context, name string) (*MenuItem, error)

	// Price lookup by name. Composite sellable units ("Plate",
	// "Medium Side") take precedence over individual food items.
	GetPrice(ctx context.Context, name string) (float64, error)

	// Id of a composite sellable unit ("Plate", "Bigger Plate",
	// "Large Drink"). Slot 0 of every transaction entry.
	GetBaseItemID(ctx context.Context, name string) (int, error)

	// Id of an individual food item. Slots 1..4 of a transaction entry.
	GetFoodID(ctx context.Context, name string) (int, error)

	// Names of entrees flagged premium.
	GetPremiumEntrees(ctx context.Context) ([]string, error)
}
