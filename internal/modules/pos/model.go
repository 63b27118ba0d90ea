package pos

import (
	"github.com/novalabs/novapos-backend/internal/modules/cart"
)

// CartView is the cart as returned to the register UI.
type CartView struct {
	SessionID string      `json:"session_id"`
	Lines     []cart.Line `json:"lines"`
	Total     float64     `json:"total"`
}

// AddItemRequest adds a product to the session cart. Quantity is a delta and
// defaults to 1.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity,omitempty"`
}

// SetQuantityRequest replaces a line's quantity; zero or below removes it.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// KeyEvent is one raw keystroke from the register, stamped by the client so
// scanner-burst timing survives network jitter.
type KeyEvent struct {
	Key  string `json:"key"`
	TsMs int64  `json:"ts_ms,omitempty"`
}

// ScanResult reports what a key event did. Scanned is true when the event
// completed a barcode; Matched and Added describe the catalog lookup.
type ScanResult struct {
	Scanned bool      `json:"scanned"`
	Code    string    `json:"code,omitempty"`
	Matched bool      `json:"matched"`
	Added   bool      `json:"added"`
	Cart    *CartView `json:"cart,omitempty"`
}

// CheckoutRequest finalises the session cart.
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method"`
}
