package checkout

import "errors"

var (
	// ErrEmptyCart rejects a checkout with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

	// ErrInvalidPaymentMethod rejects an unknown payment method.
	ErrInvalidPaymentMethod = errors.New("invalid payment method (allowed: cash, card)")

	// ErrTransactionCreate marks a failure writing the transaction record.
	// Nothing has been persisted when this is returned.
	ErrTransactionCreate = errors.New("failed to create transaction")

	// ErrItemCreate marks a failure writing the line items. The transaction
	// record already exists with no items attached; it is not removed.
	ErrItemCreate = errors.New("failed to create transaction items")
)
