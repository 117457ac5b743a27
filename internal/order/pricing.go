package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/AdeebIsmail/PandaExpressPOS/internal/catalog"
)

// PremiumSurcharge is added per premium entree inside plate modes.
const PremiumSurcharge = 1.50

// premiumSizePrices REPLACES the standard size-tier price for premium
// entrees sold à la carte. Note the asymmetry with plate modes, where
// premium is a flat surcharge on top of the base price.
var premiumSizePrices = map[Size]float64{
	SizeSmall:  6.70,
	SizeMedium: 11.50,
	SizeLarge:  15.70,
}

// Catalog is the read-only slice of the menu catalog the pricer needs.
// Every call is a fallible remote lookup.
type Catalog interface {
	Price(ctx context.Context, name string) (float64, error)
	BaseItemID(ctx context.Context, name string) (int, error)
}

// Pricer turns composed selections into priced, persistence-ready cart
// lines. It holds no state beyond the catalog handle; pricing is a
// pure function of the selection and the current catalog snapshot.
type Pricer struct {
	catalog Catalog
}

func NewPricer(c Catalog) *Pricer {
	return &Pricer{catalog: c}
}

// PriceSelection prices a composed selection. Multi-pick kinds
// (appetizers, drinks) yield one line per pick; plate modes and à la
// carte yield exactly one.
func (p *Pricer) PriceSelection(
	ctx context.Context,
	sel *ComposedSelection,
) ([]CartLine, error) {

	switch sel.Kind {
	case ComboPlate, ComboBiggerPlate:
		line, err := p.pricePlate(ctx, sel)
		if err != nil {
			return nil, err
		}
		return []CartLine{*line}, nil

	case ComboAppetizer:
		return p.priceUniform(ctx, sel, "Appetizer")

	case ComboDrink:
		unit := "Drink"
		if sel.Size != "" {
			unit = fmt.Sprintf("%s Drink", sel.Size)
		}
		return p.priceUniform(ctx, sel, unit)

	case ComboALaCarte:
		line, err := p.priceALaCarte(ctx, sel)
		if err != nil {
			return nil, err
		}
		return []CartLine{*line}, nil
	}

	return nil, fmt.Errorf("%w: unknown combo kind %q", ErrInvalidItem, sel.Kind)
}

// --------------------------------------------------
// Plate / Bigger Plate: base price + flat premium surcharge
// --------------------------------------------------
func (p *Pricer) pricePlate(
	ctx context.Context,
	sel *ComposedSelection,
) (*CartLine, error) {

	base, err := p.lookupPrice(ctx, string(sel.Kind))
	if err != nil {
		return nil, err
	}

	itemID, err := p.lookupBaseItemID(ctx, string(sel.Kind))
	if err != nil {
		return nil, err
	}

	price := base
	premium := false
	for _, entree := range sel.Entrees {
		if entree.IsPremium {
			price += PremiumSurcharge
			premium = true
		}
	}

	var entry TransactionEntry
	entry[0] = itemID
	entry[1] = sel.Sides[0].FoodID
	for i, entree := range sel.Entrees {
		entry[2+i] = entree.FoodID
	}

	names := make([]string, 0, 1+len(sel.Entrees))
	names = append(names, sel.Sides[0].Name)
	for _, entree := range sel.Entrees {
		names = append(names, entree.Name)
	}

	return &CartLine{
		DisplayName: fmt.Sprintf("%s - %s", sel.Kind, strings.Join(names, ", ")),
		UnitPrice:   price,
		IsPremium:   premium,
		Entry:       entry,
	}, nil
}

// --------------------------------------------------
// Appetizers / Drinks: uniform price per pick
// --------------------------------------------------
func (p *Pricer) priceUniform(
	ctx context.Context,
	sel *ComposedSelection,
	unit string,
) ([]CartLine, error) {

	price, err := p.lookupPrice(ctx, unit)
	if err != nil {
		return nil, err
	}

	itemID, err := p.lookupBaseItemID(ctx, unit)
	if err != nil {
		return nil, err
	}

	lines := make([]CartLine, 0, len(sel.Items))
	for _, item := range sel.Items {
		name := item.Name
		if sel.Kind == ComboDrink && sel.Size != "" {
			name = fmt.Sprintf("%s %s", sel.Size, item.Name)
		}

		var entry TransactionEntry
		entry[0] = itemID
		entry[1] = item.FoodID

		lines = append(lines, CartLine{
			DisplayName: name,
			UnitPrice:   price,
			Entry:       entry,
		})
	}

	return lines, nil
}

// --------------------------------------------------
// À la carte: size-tier price, premium table overrides
// --------------------------------------------------
func (p *Pricer) priceALaCarte(
	ctx context.Context,
	sel *ComposedSelection,
) (*CartLine, error) {

	var item catalog.MenuItem
	var unit string
	switch {
	case len(sel.Sides) == 1:
		item = sel.Sides[0]
		unit = fmt.Sprintf("%s Side", sel.Size)
	case len(sel.Entrees) == 1:
		item = sel.Entrees[0]
		unit = fmt.Sprintf("%s Entree", sel.Size)
	default:
		return nil, fmt.Errorf("%w: à la carte needs one side or entree", ErrIncompleteSelection)
	}

	itemID, err := p.lookupBaseItemID(ctx, unit)
	if err != nil {
		return nil, err
	}

	var price float64
	if item.IsPremium {
		price = premiumSizePrices[sel.Size]
	} else {
		price, err = p.lookupPrice(ctx, unit)
		if err != nil {
			return nil, err
		}
	}

	var entry TransactionEntry
	entry[0] = itemID
	entry[1] = item.FoodID

	return &CartLine{
		DisplayName: fmt.Sprintf("%s %s", sel.Size, item.Name),
		UnitPrice:   price,
		IsPremium:   item.IsPremium,
		Entry:       entry,
	}, nil
}

// --------------------------------------------------
// Catalog lookups with error mapping
// --------------------------------------------------
func (p *Pricer) lookupPrice(ctx context.Context, name string) (float64, error) {
	price, err := p.catalog.Price(ctx, name)
	if errors.Is(err, catalog.ErrNotFound) {
		return 0, fmt.Errorf("%w: no price for %q", ErrInvalidItem, name)
	}
	if err != nil {
		return 0, serviceUnavailable(err)
	}
	return price, nil
}

func (p *Pricer) lookupBaseItemID(ctx context.Context, name string) (int, error) {
	id, err := p.catalog.BaseItemID(ctx, name)
	if errors.Is(err, catalog.ErrNotFound) {
		return 0, fmt.Errorf("%w: no base item %q", ErrInvalidItem, name)
	}
	if err != nil {
		return 0, serviceUnavailable(err)
	}
	return id, nil
}

// Round2 rounds to cents. Applied only at display and persistence
// boundaries; running totals accumulate unrounded.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
