package order

import (
	"fmt"

	"github.com/AdeebIsmail/PandaExpressPOS/internal/catalog"
)

// entree capacity per plate mode
var plateEntreeArity = map[ComboKind]int{
	ComboPlate:       2,
	ComboBiggerPlate: 3,
}

// ComboBuilder accumulates toggled picks for one combo until the
// kind's arity rule is satisfied. It is an event-driven validator:
// the caller feeds it catalog snapshots, it never reaches out itself.
type ComboBuilder struct {
	kind    ComboKind
	sides   []catalog.MenuItem
	entrees []catalog.MenuItem
	items   []catalog.MenuItem
}

func NewComboBuilder(kind ComboKind) (*ComboBuilder, error) {
	switch kind {
	case ComboPlate, ComboBiggerPlate, ComboAppetizer, ComboDrink:
		return &ComboBuilder{kind: kind}, nil
	}
	return nil, fmt.Errorf("%w: unknown combo kind %q", ErrInvalidItem, kind)
}

func (b *ComboBuilder) Kind() ComboKind { return b.kind }

// Toggle selects the item, or deselects it if it is already selected.
// Selecting past the kind's capacity is a silent no-op rather than an
// error. Out-of-stock items are normally filtered at the catalog, but
// any that slip through are rejected here too.
func (b *ComboBuilder) Toggle(item catalog.MenuItem) error {
	if item.Name == "" || item.FoodID == 0 {
		return fmt.Errorf("%w: unknown item", ErrInvalidItem)
	}
	if !item.InStock {
		return fmt.Errorf("%w: %s is out of stock", ErrInvalidItem, item.Name)
	}

	switch b.kind {
	case ComboPlate, ComboBiggerPlate:
		switch item.Category {
		case catalog.CategorySide:
			b.sides = toggle(b.sides, item, 1)
		case catalog.CategoryEntree:
			b.entrees = toggle(b.entrees, item, plateEntreeArity[b.kind])
		default:
			return fmt.Errorf(
				"%w: %s cannot go in a %s", ErrInvalidItem, item.Name, b.kind,
			)
		}

	case ComboAppetizer:
		if item.Category != catalog.CategoryAppetizer {
			return fmt.Errorf("%w: %s is not an appetizer", ErrInvalidItem, item.Name)
		}
		b.items = toggle(b.items, item, 0)

	case ComboDrink:
		if item.Category != catalog.CategoryDrink {
			return fmt.Errorf("%w: %s is not a drink", ErrInvalidItem, item.Name)
		}
		b.items = toggle(b.items, item, 0)
	}

	return nil
}

// toggle removes the item if present, otherwise appends it unless the
// slice is already at capacity (max 0 means unbounded).
func toggle(selected []catalog.MenuItem, item catalog.MenuItem, max int) []catalog.MenuItem {
	for i, s := range selected {
		if s.Name == item.Name {
			return append(selected[:i:i], selected[i+1:]...)
		}
	}
	if max > 0 && len(selected) >= max {
		return selected
	}
	return append(selected, item)
}

func (b *ComboBuilder) Sides() []catalog.MenuItem   { return b.sides }
func (b *ComboBuilder) Entrees() []catalog.MenuItem { return b.entrees }
func (b *ComboBuilder) Items() []catalog.MenuItem   { return b.items }

// Build freezes the current picks into a ComposedSelection once the
// arity rule is met. The size applies only to drink picks; plate and
// appetizer kinds ignore it.
func (b *ComboBuilder) Build(size Size) (*ComposedSelection, error) {
	switch b.kind {
	case ComboPlate, ComboBiggerPlate:
		want := plateEntreeArity[b.kind]
		if len(b.sides) != 1 || len(b.entrees) != want {
			return nil, fmt.Errorf(
				"%w: %s needs 1 side and %d entrees (have %d and %d)",
				ErrIncompleteSelection, b.kind, want, len(b.sides), len(b.entrees),
			)
		}
		return &ComposedSelection{
			Kind:    b.kind,
			Sides:   copyItems(b.sides),
			Entrees: copyItems(b.entrees),
		}, nil

	case ComboAppetizer, ComboDrink:
		if len(b.items) == 0 {
			return nil, fmt.Errorf(
				"%w: pick at least one %s", ErrIncompleteSelection, b.kind,
			)
		}
		sel := &ComposedSelection{
			Kind:  b.kind,
			Items: copyItems(b.items),
		}
		if b.kind == ComboDrink {
			sel.Size = size
		}
		return sel, nil
	}

	return nil, fmt.Errorf("%w: unknown combo kind %q", ErrInvalidItem, b.kind)
}

// NewALaCarteSelection validates one independently sized side or
// entree pick. Each pick is its own selection; there is no combo
// arity beyond the size being chosen.
func NewALaCarteSelection(item catalog.MenuItem, size Size) (*ComposedSelection, error) {
	if item.Name == "" || item.FoodID == 0 {
		return nil, fmt.Errorf("%w: unknown item", ErrInvalidItem)
	}
	if !item.InStock {
		return nil, fmt.Errorf("%w: %s is out of stock", ErrInvalidItem, item.Name)
	}
	if item.Category != catalog.CategorySide && item.Category != catalog.CategoryEntree {
		return nil, fmt.Errorf(
			"%w: %s cannot be sold à la carte", ErrInvalidItem, item.Name,
		)
	}
	if size == "" {
		return nil, fmt.Errorf("%w: size not chosen", ErrIncompleteSelection)
	}

	sel := &ComposedSelection{Kind: ComboALaCarte, Size: size}
	if item.Category == catalog.CategorySide {
		sel.Sides = []catalog.MenuItem{item}
	} else {
		sel.Entrees = []catalog.MenuItem{item}
	}
	return sel, nil
}

func copyItems(items []catalog.MenuItem) []catalog.MenuItem {
	out := make([]catalog.MenuItem, len(items))
	copy(out, items)
	return out
}
