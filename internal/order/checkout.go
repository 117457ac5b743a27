package order

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/AdeebIsmail/PandaExpressPOS/internal/catalog"
)

// State of one checkout session.
type State string

const (
	StateBuilding             State = "Building"
	StateAwaitingPayment      State = "AwaitingPayment"
	StateAwaitingCustomerInfo State = "AwaitingCustomerInfo"
	StateSubmitting           State = "Submitting"
	StateComplete             State = "Complete"
)

// Session is one customer order in progress, bound to the cashier who
// opened it. All access goes through the Orchestrator, which holds the
// session lock; sessions never share state with each other.
type Session struct {
	ID         string
	EmployeeID int

	mu            sync.Mutex
	state         State
	cart          *Cart
	builder       *ComboBuilder
	paymentMethod string
	customerName  string

	// finalize progress, kept so a retry never re-submits what is
	// already persisted and never loses a recorded decrement failure
	txID             int64
	headerDone       bool
	linesDone        []bool
	failedDecrements []FailedDecrement

	receipt *Receipt
}

func NewSession(employeeID int) *Session {
	return &Session{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		state:      StateBuilding,
		cart:       NewCart(),
	}
}

// ReceiptArchiver stores a copy of the receipt somewhere durable.
// Best effort; failures must be swallowed by the implementation.
type ReceiptArchiver interface {
	Archive(ctx context.Context, receipt *Receipt)
}

// Orchestrator drives sessions from item selection through the
// finalize saga. It owns no session state itself and is safe for use
// by many sessions concurrently.
type Orchestrator struct {
	store    TransactionStore
	ledger   Ledger
	pricer   *Pricer
	archiver ReceiptArchiver // may be nil

	now         func() time.Time
	readyOffset func() time.Duration
}

func NewOrchestrator(
	store TransactionStore,
	ledger Ledger,
	pricer *Pricer,
	archiver ReceiptArchiver,
) *Orchestrator {
	return &Orchestrator{
		store:    store,
		ledger:   ledger,
		pricer:   pricer,
		archiver: archiver,
		now:      time.Now,
		readyOffset: func() time.Duration {
			// ready in 5 to 10 minutes
			mins := 5 + rand.Float64()*5
			return time.Duration(mins * float64(time.Minute))
		},
	}
}

// --------------------------------------------------
// Building: combo selection
// --------------------------------------------------
func (o *Orchestrator) StartCombo(s *Session, kind ComboKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateBuilding {
		return ErrInvalidTransition
	}

	builder, err := NewComboBuilder(kind)
	if err != nil {
		return err
	}
	s.builder = builder
	return nil
}

func (o *Orchestrator) ToggleItem(s *Session, item catalog.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateBuilding || s.builder == nil {
		return ErrInvalidTransition
	}
	return s.builder.Toggle(item)
}

// ConfirmCombo freezes the in-progress combo, prices it, and appends
// the resulting lines to the cart.
func (o *Orchestrator) ConfirmCombo(
	ctx context.Context,
	s *Session,
	size Size,
) ([]CartLine, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateBuilding || s.builder == nil {
		return nil, ErrInvalidTransition
	}

	sel, err := s.builder.Build(size)
	if err != nil {
		return nil, err
	}

	lines, err := o.pricer.PriceSelection(ctx, sel)
	if err != nil {
		return nil, err
	}

	s.cart.AddLines(lines...)
	s.builder = nil
	return lines, nil
}

// AddALaCarte validates, prices, and adds one independently sized
// side or entree.
func (o *Orchestrator) AddALaCarte(
	ctx context.Context,
	s *Session,
	item catalog.MenuItem,
	size Size,
) (*CartLine, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateBuilding {
		return nil, ErrInvalidTransition
	}

	sel, err := NewALaCarteSelection(item, size)
	if err != nil {
		return nil, err
	}

	lines, err := o.pricer.PriceSelection(ctx, sel)
	if err != nil {
		return nil, err
	}

	s.cart.AddLines(lines...)
	return &lines[0], nil
}

func (o *Orchestrator) RemoveLine(s *Session, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateBuilding {
		return ErrInvalidTransition
	}
	return s.cart.RemoveLine(index)
}

func (o *Orchestrator) ClearCart(s *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateBuilding {
		return ErrInvalidTransition
	}
	s.cart.Clear()
	return nil
}

// CartView returns the current lines and the rounded running total.
func (o *Orchestrator) CartView(s *Session) ([]CartLine, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines(), Round2(s.cart.Total())
}

func (o *Orchestrator) SessionState(s *Session) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// --------------------------------------------------
// Checkout transitions
// --------------------------------------------------
func (o *Orchestrator) BeginCheckout(s *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateBuilding {
		return ErrInvalidTransition
	}
	if s.cart.Len() == 0 {
		return ErrEmptyCart
	}
	s.state = StateAwaitingPayment
	return nil
}

func (o *Orchestrator) SetPaymentMethod(s *Session, method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingPayment {
		return ErrInvalidTransition
	}
	if method == "" {
		return ErrMissingPaymentMethod
	}
	s.paymentMethod = method
	s.state = StateAwaitingCustomerInfo
	return nil
}

func (o *Orchestrator) SetCustomerName(s *Session, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingCustomerInfo {
		return ErrInvalidTransition
	}
	s.customerName = name
	return nil
}

// Cancel returns the session to Building, keeping the cart. Nothing
// has been persisted before Submitting, so this is side-effect free.
// Once the transaction header is written, the only way forward is a
// finalize retry; cancelling then would orphan the record.
func (o *Orchestrator) Cancel(s *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateComplete {
		return ErrInvalidTransition
	}
	if s.headerDone {
		return ErrInvalidTransition
	}

	s.state = StateBuilding
	s.paymentMethod = ""
	s.customerName = ""
	s.txID = 0
	s.linesDone = nil
	s.failedDecrements = nil
	s.builder = nil
	return nil
}

// --------------------------------------------------
// Finalize
// --------------------------------------------------

// Finalize runs the submission saga: allocate the transaction id,
// persist the header, then per line persist the line item and issue
// its inventory decrements. Progress is recorded per step, so calling
// Finalize again after a ServiceUnavailable failure resumes where it
// left off instead of duplicating writes. Decrement failures are
// logged as they happen and accumulated on the session, so a retry
// that skips an already-persisted line still surfaces that line's
// failures in the final PartialInventoryError. The order completes
// regardless; there is deliberately no rollback once the header
// exists.
func (o *Orchestrator) Finalize(ctx context.Context, s *Session) (*Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateAwaitingCustomerInfo, StateSubmitting:
	default:
		return nil, ErrInvalidTransition
	}
	s.state = StateSubmitting

	// (1) transaction id, allocated server-side exactly once
	if s.txID == 0 {
		id, err := o.store.NextTransactionID(ctx)
		if err != nil {
			return nil, serviceUnavailable(err)
		}
		s.txID = id
	}

	total := Round2(s.cart.Total())

	// (2) header
	if !s.headerDone {
		rec := &TransactionRecord{
			TransactionID: s.txID,
			EmployeeID:    s.EmployeeID,
			Total:         total,
			Timestamp:     o.now(),
			PaymentMethod: s.paymentMethod,
		}
		if err := o.store.CreateTransaction(ctx, rec); err != nil {
			return nil, serviceUnavailable(err)
		}
		s.headerDone = true
	}

	// (3) line items and their decrements
	entries := s.cart.Entries()
	if s.linesDone == nil {
		s.linesDone = make([]bool, len(entries))
	}

	for i, entry := range entries {
		if s.linesDone[i] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, serviceUnavailable(err)
		}

		item := &TransactionLineItem{
			TransactionID: s.txID,
			ItemID:        entry[0],
			FoodIDs:       [4]int{entry[1], entry[2], entry[3], entry[4]},
		}
		if err := o.store.CreateTransactionLineItem(ctx, item); err != nil {
			return nil, serviceUnavailable(err)
		}
		s.linesDone[i] = true

		for _, foodID := range item.FoodIDs {
			if foodID == 0 {
				continue
			}
			if err := o.ledger.DecrementByFood(ctx, foodID); err != nil {
				log.Error().
					Int64("transaction_id", s.txID).
					Int("food_id", foodID).
					Err(err).
					Msg("inventory decrement failed")
				s.failedDecrements = append(s.failedDecrements, FailedDecrement{
					FoodID: foodID,
					Err:    err,
				})
			}
		}
		if err := o.ledger.DecrementByItemType(ctx, entry[0]); err != nil {
			log.Error().
				Int64("transaction_id", s.txID).
				Int("item_id", entry[0]).
				Err(err).
				Msg("inventory decrement failed")
			s.failedDecrements = append(s.failedDecrements, FailedDecrement{
				ItemID: entry[0],
				Err:    err,
			})
		}
	}

	// (4) ready time
	receipt := &Receipt{
		TransactionID: s.txID,
		Total:         total,
		PaymentMethod: s.paymentMethod,
		CustomerName:  s.customerName,
		Lines:         s.cart.Lines(),
		ReadyAt:       o.now().Add(o.readyOffset()),
	}

	// (5) done
	s.state = StateComplete
	s.receipt = receipt
	s.cart.Clear()

	log.Info().
		Int64("transaction_id", receipt.TransactionID).
		Int("employee_id", s.EmployeeID).
		Float64("total", receipt.Total).
		Time("ready_at", receipt.ReadyAt).
		Msg("order completed")

	if o.archiver != nil {
		o.archiver.Archive(ctx, receipt)
	}

	if len(s.failedDecrements) > 0 {
		return receipt, &PartialInventoryError{
			TransactionID: s.txID,
			Failed:        s.failedDecrements,
		}
	}
	return receipt, nil
}

// LatestTransactionID reports the highest id issued so far. Reporting
// only; new ids always come from the store's own sequence.
func (o *Orchestrator) LatestTransactionID(ctx context.Context) (int64, error) {
	id, err := o.store.GetLatestTransactionID(ctx)
	if err != nil {
		return 0, serviceUnavailable(err)
	}
	return id, nil
}

// Receipt returns the result of a completed session, if any.
func (o *Orchestrator) Receipt(s *Session) (*Receipt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.receipt == nil {
		return nil, false
	}
	return s.receipt, true
}
