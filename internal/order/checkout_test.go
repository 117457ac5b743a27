package order

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// --------------------------------------------------
// Mock ledger
// --------------------------------------------------

type mockLedger struct {
	mu             sync.Mutex
	foodDecrements map[int]int
	itemDecrements map[int]int
	failFood       map[int]error
}

func newMockLedger() *mockLedger {
	return &mockLedger{
		foodDecrements: make(map[int]int),
		itemDecrements: make(map[int]int),
		failFood:       make(map[int]error),
	}
}

func (l *mockLedger) DecrementByFood(ctx context.Context, foodID int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err, ok := l.failFood[foodID]; ok {
		return err
	}
	l.foodDecrements[foodID]++
	return nil
}

func (l *mockLedger) DecrementByItemType(ctx context.Context, itemID int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.itemDecrements[itemID]++
	return nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

var testNow = time.Date(2024, 11, 2, 12, 30, 0, 0, time.UTC)

func testOrchestrator(store TransactionStore, ledger Ledger) *Orchestrator {
	o := NewOrchestrator(store, ledger, testPricer(), nil)
	o.now = func() time.Time { return testNow }
	o.readyOffset = func() time.Duration { return 7 * time.Minute }
	return o
}

func sessionWithCart(lines ...CartLine) *Session {
	s := NewSession(42)
	s.cart.AddLines(lines...)
	return s
}

func twoLineCart() *Session {
	return sessionWithCart(
		line("Plate - Chow Mein, Orange Chicken, Beijing Beef", 8.30,
			TransactionEntry{101, 1, 3, 4, 0}),
		line("Veggie Spring Roll", 2.00,
			TransactionEntry{103, 7, 0, 0, 0}),
	)
}

func toAwaitingCustomerInfo(t *testing.T, o *Orchestrator, s *Session) {
	t.Helper()
	if err := o.BeginCheckout(s); err != nil {
		t.Fatalf("begin checkout: %v", err)
	}
	if err := o.SetPaymentMethod(s, "card"); err != nil {
		t.Fatalf("set payment: %v", err)
	}
}

// --------------------------------------------------
// TESTS
// --------------------------------------------------

func TestBeginCheckout_EmptyCartBlocked(t *testing.T) {
	o := testOrchestrator(NewInMemoryStore(), newMockLedger())
	s := NewSession(42)

	if err := o.BeginCheckout(s); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("expected ErrEmptyCart, got %v", err)
	}
	if o.SessionState(s) != StateBuilding {
		t.Errorf("expected session to stay in Building")
	}
}

func TestSetPaymentMethod_EmptyBlocked(t *testing.T) {
	o := testOrchestrator(NewInMemoryStore(), newMockLedger())
	s := twoLineCart()

	if err := o.BeginCheckout(s); err != nil {
		t.Fatalf("begin checkout: %v", err)
	}

	if err := o.SetPaymentMethod(s, ""); !errors.Is(err, ErrMissingPaymentMethod) {
		t.Fatalf("expected ErrMissingPaymentMethod, got %v", err)
	}
	if o.SessionState(s) != StateAwaitingPayment {
		t.Errorf("blocked transition must not advance state")
	}
	if s.cart.Len() != 2 {
		t.Errorf("cart must be unchanged, got %d lines", s.cart.Len())
	}
}

func TestFinalize_HappyPath(t *testing.T) {
	store := NewInMemoryStore()
	ledger := newMockLedger()
	o := testOrchestrator(store, ledger)
	s := twoLineCart()

	toAwaitingCustomerInfo(t, o, s)
	if err := o.SetCustomerName(s, "Alex"); err != nil {
		t.Fatalf("set customer: %v", err)
	}

	receipt, err := o.Finalize(context.Background(), s)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if receipt.TransactionID != 1 {
		t.Errorf("expected transaction id 1, got %d", receipt.TransactionID)
	}
	if receipt.Total != 10.30 {
		t.Errorf("expected total 10.30, got %v", receipt.Total)
	}
	if want := testNow.Add(7 * time.Minute); !receipt.ReadyAt.Equal(want) {
		t.Errorf("expected ready at %v, got %v", want, receipt.ReadyAt)
	}

	rec, ok := store.Transactions[1]
	if !ok {
		t.Fatal("transaction header not persisted")
	}
	if rec.EmployeeID != 42 || rec.PaymentMethod != "card" {
		t.Errorf("unexpected header %+v", rec)
	}

	if len(store.LineItems) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(store.LineItems))
	}
	first := store.LineItems[0]
	if first.TransactionID != 1 || first.ItemID != 101 {
		t.Errorf("unexpected first line item %+v", first)
	}
	if first.FoodIDs != [4]int{1, 3, 4, 0} {
		t.Errorf("unexpected food ids %v", first.FoodIDs)
	}

	// one decrement per nonzero food, one per item type
	for _, foodID := range []int{1, 3, 4, 7} {
		if ledger.foodDecrements[foodID] != 1 {
			t.Errorf("food %d: expected 1 decrement, got %d", foodID, ledger.foodDecrements[foodID])
		}
	}
	if ledger.itemDecrements[101] != 1 || ledger.itemDecrements[103] != 1 {
		t.Errorf("unexpected item-type decrements %v", ledger.itemDecrements)
	}

	if o.SessionState(s) != StateComplete {
		t.Errorf("expected Complete, got %s", o.SessionState(s))
	}
	if s.cart.Len() != 0 {
		t.Errorf("cart must be cleared after completion")
	}
}

func TestFinalize_ReadyTimeWindow(t *testing.T) {
	o := NewOrchestrator(NewInMemoryStore(), newMockLedger(), testPricer(), nil)

	for i := 0; i < 50; i++ {
		offset := o.readyOffset()
		if offset < 5*time.Minute || offset > 10*time.Minute {
			t.Fatalf("ready offset %v outside 5-10 minute window", offset)
		}
	}
}

func TestFinalize_WithoutPaymentStageBlocked(t *testing.T) {
	o := testOrchestrator(NewInMemoryStore(), newMockLedger())
	s := twoLineCart()

	if _, err := o.Finalize(context.Background(), s); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition from Building, got %v", err)
	}
}

func TestFinalize_PartialInventoryFailure(t *testing.T) {
	store := NewInMemoryStore()
	ledger := newMockLedger()
	ledger.failFood[3] = errors.New("ledger row locked")

	o := testOrchestrator(store, ledger)
	s := twoLineCart()
	toAwaitingCustomerInfo(t, o, s)

	receipt, err := o.Finalize(context.Background(), s)

	var partial *PartialInventoryError
	if !errors.As(err, &partial) {
		t.Fatalf("expected PartialInventoryError, got %v", err)
	}
	if len(partial.Failed) != 1 || partial.Failed[0].FoodID != 3 {
		t.Errorf("unexpected failure set %+v", partial.Failed)
	}

	// no rollback: the order still completed in full
	if receipt == nil {
		t.Fatal("expected a receipt despite decrement failure")
	}
	if _, ok := store.Transactions[receipt.TransactionID]; !ok {
		t.Errorf("transaction header must survive decrement failure")
	}
	if len(store.LineItems) != 2 {
		t.Errorf("expected both line items persisted, got %d", len(store.LineItems))
	}
	if o.SessionState(s) != StateComplete {
		t.Errorf("expected Complete, got %s", o.SessionState(s))
	}
}

// flakyStore fails a specific line-item insert once.
type flakyStore struct {
	*InMemoryStore
	failOnCall int
	calls      int
}

func (s *flakyStore) CreateTransactionLineItem(ctx context.Context, item *TransactionLineItem) error {
	s.calls++
	if s.calls == s.failOnCall {
		return errors.New("connection reset")
	}
	return s.InMemoryStore.CreateTransactionLineItem(ctx, item)
}

func TestFinalize_RetryResumesWithoutDuplicates(t *testing.T) {
	store := &flakyStore{InMemoryStore: NewInMemoryStore(), failOnCall: 2}
	ledger := newMockLedger()
	o := testOrchestrator(store, ledger)
	s := twoLineCart()
	toAwaitingCustomerInfo(t, o, s)

	_, err := o.Finalize(context.Background(), s)
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
	if o.SessionState(s) != StateSubmitting {
		t.Fatalf("expected Submitting after failure, got %s", o.SessionState(s))
	}

	receipt, err := o.Finalize(context.Background(), s)
	if err != nil {
		t.Fatalf("retry: expected no error, got %v", err)
	}

	if len(store.Transactions) != 1 {
		t.Errorf("expected exactly 1 header, got %d", len(store.Transactions))
	}
	if len(store.LineItems) != 2 {
		t.Errorf("expected exactly 2 line items after retry, got %d", len(store.LineItems))
	}
	if receipt.TransactionID != 1 {
		t.Errorf("retry must reuse the allocated id, got %d", receipt.TransactionID)
	}

	// first line's decrements must not have run twice
	if ledger.foodDecrements[1] != 1 {
		t.Errorf("food 1: expected 1 decrement, got %d", ledger.foodDecrements[1])
	}
}

func TestFinalize_RetryKeepsEarlierDecrementFailures(t *testing.T) {
	store := &flakyStore{InMemoryStore: NewInMemoryStore(), failOnCall: 2}
	ledger := newMockLedger()
	ledger.failFood[1] = errors.New("ledger row locked")

	o := testOrchestrator(store, ledger)
	s := twoLineCart()
	toAwaitingCustomerInfo(t, o, s)

	// first pass: line 1 persists and records its failed decrement,
	// then line 2's insert fails
	_, err := o.Finalize(context.Background(), s)
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}

	// the retry skips line 1; its decrement failure must still surface
	receipt, err := o.Finalize(context.Background(), s)

	var partial *PartialInventoryError
	if !errors.As(err, &partial) {
		t.Fatalf("expected PartialInventoryError on retry, got %v", err)
	}
	if len(partial.Failed) != 1 || partial.Failed[0].FoodID != 1 {
		t.Errorf("expected food 1's failure to survive the retry, got %+v", partial.Failed)
	}

	if receipt == nil {
		t.Fatal("expected a receipt despite decrement failure")
	}
	if len(store.LineItems) != 2 {
		t.Errorf("expected both line items persisted, got %d", len(store.LineItems))
	}
	if o.SessionState(s) != StateComplete {
		t.Errorf("expected Complete, got %s", o.SessionState(s))
	}
}

func TestFinalize_ContextCancelled(t *testing.T) {
	store := NewInMemoryStore()
	o := testOrchestrator(store, newMockLedger())
	s := twoLineCart()
	toAwaitingCustomerInfo(t, o, s)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Finalize(ctx, s)
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable on cancelled context, got %v", err)
	}
	if o.SessionState(s) != StateSubmitting {
		t.Errorf("session must stay in Submitting for retry")
	}
	if len(store.LineItems) != 0 {
		t.Errorf("no line items should persist after immediate cancel")
	}
}

func TestCancel_ReturnsToBuildingKeepingCart(t *testing.T) {
	o := testOrchestrator(NewInMemoryStore(), newMockLedger())
	s := twoLineCart()
	toAwaitingCustomerInfo(t, o, s)

	if err := o.Cancel(s); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if o.SessionState(s) != StateBuilding {
		t.Errorf("expected Building, got %s", o.SessionState(s))
	}
	if s.cart.Len() != 2 {
		t.Errorf("cancel must keep the cart, got %d lines", s.cart.Len())
	}

	// a fresh checkout starts over with its own payment method
	if err := o.BeginCheckout(s); err != nil {
		t.Fatalf("restart checkout: %v", err)
	}
	if err := o.SetPaymentMethod(s, ""); !errors.Is(err, ErrMissingPaymentMethod) {
		t.Errorf("cancel must drop the previous payment method")
	}
}

func TestCancel_CompleteIsTerminal(t *testing.T) {
	o := testOrchestrator(NewInMemoryStore(), newMockLedger())
	s := twoLineCart()
	toAwaitingCustomerInfo(t, o, s)

	if _, err := o.Finalize(context.Background(), s); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if err := o.Cancel(s); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition after completion, got %v", err)
	}
}

func TestConcurrentFinalize_UniqueTransactionIDs(t *testing.T) {
	store := NewInMemoryStore()
	o := testOrchestrator(store, newMockLedger())

	const n = 8
	var wg sync.WaitGroup
	ids := make(chan int64, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := twoLineCart()
			if err := o.BeginCheckout(s); err != nil {
				t.Errorf("begin checkout: %v", err)
				return
			}
			if err := o.SetPaymentMethod(s, "cash"); err != nil {
				t.Errorf("set payment: %v", err)
				return
			}
			receipt, err := o.Finalize(context.Background(), s)
			if err != nil {
				t.Errorf("finalize: %v", err)
				return
			}
			ids <- receipt.TransactionID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate transaction id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Errorf("expected %d distinct ids, got %d", n, len(seen))
	}
}
