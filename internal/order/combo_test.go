package order

import (
	"errors"
	"testing"

	"github.com/AdeebIsmail/PandaExpressPOS/internal/catalog"
)

// --------------------------------------------------
// Test fixtures
// --------------------------------------------------

func testItem(id int, name string, category catalog.Category, premium bool) catalog.MenuItem {
	return catalog.MenuItem{
		FoodID:    id,
		Name:      name,
		Category:  category,
		IsPremium: premium,
		InStock:   true,
	}
}

var (
	chowMein      = testItem(1, "Chow Mein", catalog.CategorySide, false)
	friedRice     = testItem(2, "Fried Rice", catalog.CategorySide, false)
	orangeChicken = testItem(3, "Orange Chicken", catalog.CategoryEntree, false)
	beijingBeef   = testItem(4, "Beijing Beef", catalog.CategoryEntree, false)
	honeyShrimp   = testItem(5, "Honey Walnut Shrimp", catalog.CategoryEntree, true)
	blackSteak    = testItem(6, "Black Pepper Steak", catalog.CategoryEntree, true)
	springRoll    = testItem(7, "Veggie Spring Roll", catalog.CategoryAppetizer, false)
	rangoon       = testItem(8, "Cream Cheese Rangoon", catalog.CategoryAppetizer, false)
	fountainDrink = testItem(9, "Fountain Drink", catalog.CategoryDrink, false)
)

// --------------------------------------------------
// TESTS
// --------------------------------------------------

func TestPlate_ExactArity(t *testing.T) {
	b, err := NewComboBuilder(ComboPlate)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, item := range []catalog.MenuItem{chowMein, orangeChicken, beijingBeef} {
		if err := b.Toggle(item); err != nil {
			t.Fatalf("toggle %s: %v", item.Name, err)
		}
	}

	sel, err := b.Build("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(sel.Sides) != 1 {
		t.Errorf("expected 1 side, got %d", len(sel.Sides))
	}
	if len(sel.Entrees) != 2 {
		t.Errorf("expected 2 entrees, got %d", len(sel.Entrees))
	}
}

func TestPlate_ThirdEntreeIsNoOp(t *testing.T) {
	b, _ := NewComboBuilder(ComboPlate)
	b.Toggle(chowMein)
	b.Toggle(orangeChicken)
	b.Toggle(beijingBeef)

	// saturated: the extra pick must change nothing
	if err := b.Toggle(honeyShrimp); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	entrees := b.Entrees()
	if len(entrees) != 2 {
		t.Fatalf("expected 2 entrees after saturation, got %d", len(entrees))
	}
	if entrees[0].Name != "Orange Chicken" || entrees[1].Name != "Beijing Beef" {
		t.Errorf("entree set changed after saturated toggle: %v", entrees)
	}
}

func TestPlate_ToggleSideRoundTrip(t *testing.T) {
	b, _ := NewComboBuilder(ComboPlate)

	b.Toggle(chowMein)
	if len(b.Sides()) != 1 {
		t.Fatalf("expected 1 side, got %d", len(b.Sides()))
	}

	b.Toggle(chowMein)
	if len(b.Sides()) != 0 {
		t.Errorf("expected toggle to deselect, got %d sides", len(b.Sides()))
	}
}

func TestPlate_SecondSideIsNoOp(t *testing.T) {
	b, _ := NewComboBuilder(ComboPlate)
	b.Toggle(chowMein)
	b.Toggle(friedRice)

	sides := b.Sides()
	if len(sides) != 1 || sides[0].Name != "Chow Mein" {
		t.Errorf("expected only the first side to stick, got %v", sides)
	}
}

func TestBiggerPlate_Arity(t *testing.T) {
	b, _ := NewComboBuilder(ComboBiggerPlate)
	b.Toggle(friedRice)
	b.Toggle(orangeChicken)
	b.Toggle(beijingBeef)

	if _, err := b.Build(""); !errors.Is(err, ErrIncompleteSelection) {
		t.Fatalf("expected ErrIncompleteSelection with 2 entrees, got %v", err)
	}

	b.Toggle(honeyShrimp)
	sel, err := b.Build("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(sel.Sides) != 1 || len(sel.Entrees) != 3 {
		t.Errorf("expected 1 side + 3 entrees, got %d + %d", len(sel.Sides), len(sel.Entrees))
	}
}

func TestPlate_IncompleteBuild(t *testing.T) {
	b, _ := NewComboBuilder(ComboPlate)
	b.Toggle(orangeChicken)

	if _, err := b.Build(""); !errors.Is(err, ErrIncompleteSelection) {
		t.Errorf("expected ErrIncompleteSelection, got %v", err)
	}
}

func TestToggle_OutOfStockRejected(t *testing.T) {
	soldOut := orangeChicken
	soldOut.InStock = false

	b, _ := NewComboBuilder(ComboPlate)
	if err := b.Toggle(soldOut); !errors.Is(err, ErrInvalidItem) {
		t.Errorf("expected ErrInvalidItem, got %v", err)
	}
	if len(b.Entrees()) != 0 {
		t.Errorf("out-of-stock item must not be selected")
	}
}

func TestToggle_WrongCategoryRejected(t *testing.T) {
	b, _ := NewComboBuilder(ComboPlate)
	if err := b.Toggle(springRoll); !errors.Is(err, ErrInvalidItem) {
		t.Errorf("expected ErrInvalidItem for appetizer in plate, got %v", err)
	}

	app, _ := NewComboBuilder(ComboAppetizer)
	if err := app.Toggle(fountainDrink); !errors.Is(err, ErrInvalidItem) {
		t.Errorf("expected ErrInvalidItem for drink in appetizer combo, got %v", err)
	}
}

func TestAppetizer_MultiPick(t *testing.T) {
	b, _ := NewComboBuilder(ComboAppetizer)

	if _, err := b.Build(""); !errors.Is(err, ErrIncompleteSelection) {
		t.Fatalf("expected ErrIncompleteSelection on empty picks, got %v", err)
	}

	b.Toggle(springRoll)
	b.Toggle(rangoon)

	sel, err := b.Build("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(sel.Items) != 2 {
		t.Errorf("expected 2 picks, got %d", len(sel.Items))
	}
}

func TestALaCarte_RequiresSize(t *testing.T) {
	if _, err := NewALaCarteSelection(orangeChicken, ""); !errors.Is(err, ErrIncompleteSelection) {
		t.Errorf("expected ErrIncompleteSelection without size, got %v", err)
	}

	sel, err := NewALaCarteSelection(orangeChicken, SizeMedium)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(sel.Entrees) != 1 || sel.Size != SizeMedium {
		t.Errorf("unexpected selection: %+v", sel)
	}
}

func TestALaCarte_RejectsNonSideEntree(t *testing.T) {
	if _, err := NewALaCarteSelection(springRoll, SizeSmall); !errors.Is(err, ErrInvalidItem) {
		t.Errorf("expected ErrInvalidItem for appetizer, got %v", err)
	}
}
