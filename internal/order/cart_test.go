package order

import (
	"errors"
	"testing"
)

func line(name string, price float64, entry TransactionEntry) CartLine {
	return CartLine{DisplayName: name, UnitPrice: price, Entry: entry}
}

func TestCart_TotalAfterRemove(t *testing.T) {
	cart := NewCart()
	cart.AddLines(
		line("Small Side", 4.40, TransactionEntry{110, 1, 0, 0, 0}),
		line("Medium Shrimp", 11.50, TransactionEntry{114, 5, 0, 0, 0}),
		line("Small Drink", 1.50, TransactionEntry{104, 9, 0, 0, 0}),
	)

	if err := cart.RemoveLine(1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got := Round2(cart.Total()); got != 5.90 {
		t.Errorf("expected total 5.90, got %v", got)
	}
}

func TestCart_RemoveKeepsSequencesAligned(t *testing.T) {
	cart := NewCart()
	cart.AddLines(
		line("a", 1, TransactionEntry{1, 10, 0, 0, 0}),
		line("b", 2, TransactionEntry{2, 20, 0, 0, 0}),
		line("c", 3, TransactionEntry{3, 30, 0, 0, 0}),
	)

	cart.RemoveLine(1)

	lines := cart.Lines()
	entries := cart.Entries()

	if len(lines) != len(entries) {
		t.Fatalf("sequences diverged: %d lines vs %d entries", len(lines), len(entries))
	}
	for i := range lines {
		if lines[i].Entry != entries[i] {
			t.Errorf("index %d misaligned: line entry %v vs entry %v", i, lines[i].Entry, entries[i])
		}
	}
	if entries[0][0] != 1 || entries[1][0] != 3 {
		t.Errorf("expected entries for a and c, got %v", entries)
	}
}

func TestCart_RemoveOutOfRange(t *testing.T) {
	cart := NewCart()
	cart.AddLines(line("a", 1, TransactionEntry{}))

	if err := cart.RemoveLine(1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if err := cart.RemoveLine(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestCart_Clear(t *testing.T) {
	cart := NewCart()
	cart.AddLines(line("a", 1, TransactionEntry{}), line("b", 2, TransactionEntry{}))

	cart.Clear()

	if cart.Len() != 0 || cart.Total() != 0 || len(cart.Entries()) != 0 {
		t.Errorf("expected empty cart after clear")
	}
}

func TestCart_TotalAccumulatesUnrounded(t *testing.T) {
	cart := NewCart()
	// three thirds of a cent only round correctly if summed first
	cart.AddLines(
		line("a", 1.115, TransactionEntry{}),
		line("b", 1.115, TransactionEntry{}),
	)

	if got := Round2(cart.Total()); got != 2.23 {
		t.Errorf("expected 2.23 from unrounded accumulation, got %v", got)
	}
}
