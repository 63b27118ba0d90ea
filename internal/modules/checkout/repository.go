package checkout

import "context"

// Repository defines the writes a checkout performs.
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	CreateItems(ctx context.Context, items []*TransactionItem) error
	UpdateProductStock(ctx context.Context, productID string, stock int) error
}
