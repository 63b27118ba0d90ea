package catalog

import (
	"context"
	"errors"
)

// ErrBarcodeTaken is returned when a create/update collides with an existing
// product's barcode.
var ErrBarcodeTaken = errors.New("barcode already in use by another product")

// Repository defines data access for catalog products.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	UpdateStock(ctx context.Context, id string, stock int) error
}
