package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/novalabs/novapos-backend/internal/modules/cart"
	"github.com/novalabs/novapos-backend/internal/modules/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	createdTx    *Transaction
	createdItems []*TransactionItem
	stockWrites  map[string]int

	txErr    error
	itemErr  error
	stockErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{stockWrites: map[string]int{}}
}

func (m *mockRepository) CreateTransaction(_ context.Context, tx *Transaction) error {
	if m.txErr != nil {
		return m.txErr
	}
	m.createdTx = tx
	return nil
}

func (m *mockRepository) CreateItems(_ context.Context, items []*TransactionItem) error {
	if m.itemErr != nil {
		return m.itemErr
	}
	m.createdItems = items
	return nil
}

func (m *mockRepository) UpdateProductStock(_ context.Context, productID string, stock int) error {
	if m.stockErr != nil {
		return m.stockErr
	}
	m.stockWrites[productID] = stock
	return nil
}

func lines() (catalog.Product, catalog.Product, []cart.Line) {
	a := catalog.Product{ID: uuid.New(), Name: "Americano", Barcode: "111", Price: 2.50, Stock: 10}
	b := catalog.Product{ID: uuid.New(), Name: "Bagel", Barcode: "222", Price: 1.00, Stock: 4}
	return a, b, []cart.Line{
		{Product: a, Quantity: 3},
		{Product: b, Quantity: 1},
	}
}

func TestCheckout_Success(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	userID := uuid.New()
	a, b, cartLines := lines()

	tx, err := svc.Checkout(context.Background(), userID, cartLines, PaymentCash)
	require.NoError(t, err)

	assert.InDelta(t, 8.50, tx.TotalAmount, 1e-9)
	assert.Equal(t, PaymentCash, tx.PaymentMethod)
	assert.Equal(t, userID, tx.UserID)

	require.Len(t, repo.createdItems, 2)
	assert.Equal(t, tx.ID, repo.createdItems[0].TransactionID)
	assert.Equal(t, "Americano", repo.createdItems[0].ProductName)
	assert.InDelta(t, 2.50, repo.createdItems[0].PriceAtSale, 1e-9)
	assert.Equal(t, 3, repo.createdItems[0].Quantity)
	assert.Equal(t, "Bagel", repo.createdItems[1].ProductName)
	assert.InDelta(t, 1.00, repo.createdItems[1].PriceAtSale, 1e-9)

	// Items total matches the transaction total.
	var itemTotal float64
	for _, item := range repo.createdItems {
		itemTotal += item.PriceAtSale * float64(item.Quantity)
	}
	assert.InDelta(t, tx.TotalAmount, itemTotal, 1e-9)

	assert.Equal(t, 7, repo.stockWrites[a.ID.String()])
	assert.Equal(t, 3, repo.stockWrites[b.ID.String()])
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Checkout(context.Background(), uuid.New(), nil, PaymentCash)

	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckout_InvalidPaymentMethod(t *testing.T) {
	svc := NewService(newMockRepository())
	_, _, cartLines := lines()

	_, err := svc.Checkout(context.Background(), uuid.New(), cartLines, PaymentMethod("bitcoin"))

	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestCheckout_TransactionCreateFailure(t *testing.T) {
	repo := newMockRepository()
	repo.txErr = errors.New("connection lost")
	svc := NewService(repo)
	_, _, cartLines := lines()

	_, err := svc.Checkout(context.Background(), uuid.New(), cartLines, PaymentCard)

	assert.ErrorIs(t, err, ErrTransactionCreate)
	assert.Nil(t, repo.createdItems, "no items should be written")
	assert.Empty(t, repo.stockWrites, "no stock should be touched")
}

func TestCheckout_ItemCreateFailureLeavesOrphanedTransaction(t *testing.T) {
	repo := newMockRepository()
	repo.itemErr = errors.New("constraint violation")
	svc := NewService(repo)
	_, _, cartLines := lines()

	_, err := svc.Checkout(context.Background(), uuid.New(), cartLines, PaymentCash)

	assert.ErrorIs(t, err, ErrItemCreate)
	// The transaction record was already written and is not rolled back.
	assert.NotNil(t, repo.createdTx)
	assert.Empty(t, repo.stockWrites)
}

func TestCheckout_StockWriteFailureIsNotFatal(t *testing.T) {
	repo := newMockRepository()
	repo.stockErr = errors.New("timeout")
	svc := NewService(repo)
	_, _, cartLines := lines()

	tx, err := svc.Checkout(context.Background(), uuid.New(), cartLines, PaymentCash)

	require.NoError(t, err)
	assert.NotNil(t, tx)
}

func TestCheckout_PriceSnapshotDecoupledFromProduct(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	p := catalog.Product{ID: uuid.New(), Name: "Latte", Barcode: "333", Price: 4.00, Stock: 5}

	_, err := svc.Checkout(context.Background(), uuid.New(),
		[]cart.Line{{Product: p, Quantity: 2}}, PaymentCard)
	require.NoError(t, err)

	// Mutating the product afterwards must not affect the recorded item.
	p.Price = 9.99
	assert.InDelta(t, 4.00, repo.createdItems[0].PriceAtSale, 1e-9)
}
