package order

import (
	"time"

	"github.com/AdeebIsmail/PandaExpressPOS/internal/catalog"
)

// Size is the tier applied to drinks and à la carte sides/entrees.
type Size string

const (
	SizeSmall  Size = "Small"
	SizeMedium Size = "Medium"
	SizeLarge  Size = "Large"
)

func ParseSize(s string) (Size, bool) {
	switch Size(s) {
	case SizeSmall, SizeMedium, SizeLarge:
		return Size(s), true
	}
	return "", false
}

// ComboKind is a selling mode with its own arity and pricing rule.
type ComboKind string

const (
	ComboPlate       ComboKind = "Plate"
	ComboBiggerPlate ComboKind = "Bigger Plate"
	ComboAppetizer   ComboKind = "Appetizer"
	ComboDrink       ComboKind = "Drink"
	ComboALaCarte    ComboKind = "A La Carte"
)

// ComposedSelection is a validated bundle of menu items ready for
// pricing. Immutable once built.
type ComposedSelection struct {
	Kind    ComboKind
	Sides   []catalog.MenuItem // plate modes: exactly one
	Entrees []catalog.MenuItem // plate modes: two or three
	Items   []catalog.MenuItem // appetizer/drink picks; à la carte uses Sides/Entrees
	Size    Size               // "" when the kind is not sized
}

// TransactionEntry is the fixed five-slot tuple persisted per cart
// line: [baseItemID, food1, food2, food3, food4]. Unused slots stay
// zero; slot 0 is always the composed unit's own id, never a food id.
type TransactionEntry [5]int

// CartLine is one priced line of the cart. The unit price locks at
// selection time and is never recomputed, even if catalog prices
// change afterwards.
type CartLine struct {
	DisplayName string           `json:"display_name"`
	UnitPrice   float64          `json:"unit_price"`
	IsPremium   bool             `json:"is_premium"`
	Entry       TransactionEntry `json:"-"`
}

// TransactionRecord is the persisted header of a completed order.
type TransactionRecord struct {
	TransactionID int64
	EmployeeID    int
	Total         float64
	Timestamp     time.Time
	PaymentMethod string
}

// TransactionLineItem is the persisted expansion of one cart line's
// transaction entry, with the transaction id prepended.
type TransactionLineItem struct {
	TransactionID int64
	ItemID        int
	FoodIDs       [4]int
}

// Receipt is the customer-facing result of a completed checkout.
type Receipt struct {
	TransactionID int64      `json:"transaction_id"`
	Total         float64    `json:"total"`
	PaymentMethod string     `json:"payment_method"`
	CustomerName  string     `json:"customer_name,omitempty"`
	Lines         []CartLine `json:"lines"`
	ReadyAt       time.Time  `json:"ready_at"`
}
