package catalog

// Category classifies an individual food item on the menu.
type Category string

const (
	CategoryAppetizer Category = "Appetizer"
	CategorySide      Category = "Side"
	CategoryEntree    Category = "Entree"
	CategoryDrink     Category = "Drink"
)

// MenuItem is a read-only snapshot of one food item. The catalog owns the
// underlying rows; the ordering core only ever sees copies.
type MenuItem struct {
	FoodID    int      `json:"food_id"`
	Name      string   `json:"name"`
	Category  Category `json:"category"`
	BasePrice float64  `json:"base_price"`
	IsPremium bool     `json:"is_premium"`
	InStock   bool     `json:"in_stock"`
}
