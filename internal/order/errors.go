package order

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompleteSelection blocks add-to-cart until the combo's
	// arity rule is met.
	ErrIncompleteSelection = errors.New("selection incomplete")

	// ErrInvalidItem rejects unknown or out-of-stock items.
	ErrInvalidItem = errors.New("invalid item")

	// ErrMissingPaymentMethod blocks the payment transition.
	ErrMissingPaymentMethod = errors.New("payment method required")

	// ErrServiceUnavailable wraps a failed external call. The cart
	// survives; the caller may retry.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrEmptyCart blocks checkout until at least one line exists.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidTransition rejects an operation not legal in the
	// session's current state.
	ErrInvalidTransition = errors.New("invalid checkout transition")

	// ErrIndexOutOfRange rejects removal of a nonexistent cart line.
	ErrIndexOutOfRange = errors.New("cart index out of range")
)

// PartialInventoryError reports decrement calls that failed after the
// transaction record was already persisted. The order still completes;
// the failures are surfaced so stock can be reconciled.
type PartialInventoryError struct {
	TransactionID int64
	Failed        []FailedDecrement
}

type FailedDecrement struct {
	FoodID int // zero when the failure was an item-type decrement
	ItemID int // zero when the failure was a food decrement
	Err    error
}

func (e *PartialInventoryError) Error() string {
	return fmt.Sprintf(
		"transaction %d completed with %d failed inventory decrements",
		e.TransactionID,
		len(e.Failed),
	)
}

func serviceUnavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
}
