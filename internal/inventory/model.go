package inventory

// FoodLevel is the remaining stock of one food item.
type FoodLevel struct {
	FoodID   int    `json:"food_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ItemTypeLevel is the remaining stock counted per sellable unit
// ("Plate", "Bowl", sized drinks).
type ItemTypeLevel struct {
	ItemID   int    `json:"item_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
