package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Product is a sellable item in the store catalog. Barcode is unique across
// the catalog (enforced by the database).
type Product struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Barcode   string    `json:"barcode"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}
