package checkout

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/novalabs/novapos-backend/internal/modules/cart"
	"github.com/novalabs/novapos-backend/internal/pkg/metrics"
)

// Service finalises a cart into a recorded sale.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID, lines []cart.Line, method PaymentMethod) (*Transaction, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

// Checkout runs the sale as a strictly sequential, best-effort series of
// writes with no rollback on partial failure:
//
//  1. insert the transaction record,
//  2. insert the line-item snapshots,
//  3. write back stock = known stock - quantity per product.
//
// If step 2 fails the transaction record is left behind with no items; if a
// stock write in step 3 fails it is logged and skipped. The stock write is
// last-write-wins against whatever the session last loaded, so concurrent
// checkouts of the same product can over-sell. Callers must treat any error
// as "sale may be partially recorded" and keep the cart for retry.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID, lines []cart.Line, method PaymentMethod) (*Transaction, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	if !method.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id is required")
	}

	var total float64
	for _, l := range lines {
		total += l.Product.Price * float64(l.Quantity)
	}

	tx := &Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		TotalAmount:   total,
		PaymentMethod: method,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransactionCreate, err)
	}

	items := make([]*TransactionItem, len(lines))
	for i, l := range lines {
		items[i] = &TransactionItem{
			ID:            uuid.New(),
			TransactionID: tx.ID,
			ProductID:     l.Product.ID,
			ProductName:   l.Product.Name,
			Quantity:      l.Quantity,
			PriceAtSale:   l.Product.Price,
		}
	}
	if err := s.repo.CreateItems(ctx, items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrItemCreate, err)
	}
	tx.Items = items

	for _, l := range lines {
		newStock := l.Product.Stock - l.Quantity
		if err := s.repo.UpdateProductStock(ctx, l.Product.ID.String(), newStock); err != nil {
			log.Printf("stock update failed for product %s: %v", l.Product.ID, err)
		}
	}

	metrics.TransactionsTotal.WithLabelValues(string(method)).Inc()
	return tx, nil
}
