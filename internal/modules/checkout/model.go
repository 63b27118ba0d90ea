package checkout

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod represents how a sale was paid.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// Valid reports whether the method is one of the accepted values.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentCard
}

// Transaction records one finalised sale. It is immutable once created; the
// sum of its items' quantity × price_at_sale equals TotalAmount.
type Transaction struct {
	ID            uuid.UUID          `json:"id"`
	UserID        uuid.UUID          `json:"user_id"`
	TotalAmount   float64            `json:"total_amount"`
	PaymentMethod PaymentMethod      `json:"payment_method"`
	CreatedAt     time.Time          `json:"created_at"`
	Items         []*TransactionItem `json:"items,omitempty"`
}

// TransactionItem is one line of a finalised sale. Product name and price
// are snapshots taken at the time of sale, decoupled from later edits to
// the product.
type TransactionItem struct {
	ID            uuid.UUID `json:"id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	ProductID     uuid.UUID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Quantity      int       `json:"quantity"`
	PriceAtSale   float64   `json:"price_at_sale"`
}
