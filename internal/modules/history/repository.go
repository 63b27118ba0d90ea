package history

import (
	"context"

	"github.com/novalabs/novapos-backend/internal/modules/checkout"
)

// Repository defines read access to past sales.
type Repository interface {
	// List returns transactions newest-first, optionally with their items.
	List(ctx context.Context, withItems bool) ([]*checkout.Transaction, error)
}
