package pos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/novalabs/novapos-backend/internal/modules/cart"
	"github.com/novalabs/novapos-backend/internal/modules/catalog"
	"github.com/novalabs/novapos-backend/internal/modules/checkout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalogRepo struct {
	products []*catalog.Product
}

func (s *stubCatalogRepo) Create(context.Context, *catalog.Product) error { return nil }
func (s *stubCatalogRepo) Update(context.Context, *catalog.Product) error { return nil }
func (s *stubCatalogRepo) UpdateStock(context.Context, string, int) error { return nil }
func (s *stubCatalogRepo) GetByID(context.Context, string) (*catalog.Product, error) {
	return nil, errors.New("not found")
}
func (s *stubCatalogRepo) List(context.Context) ([]*catalog.Product, error) {
	return s.products, nil
}

type mockCheckout struct {
	lines  []cart.Line
	method checkout.PaymentMethod
	err    error
}

func (m *mockCheckout) Checkout(_ context.Context, userID uuid.UUID, lines []cart.Line, method checkout.PaymentMethod) (*checkout.Transaction, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lines = lines
	m.method = method
	var total float64
	for _, l := range lines {
		total += l.Product.Price * float64(l.Quantity)
	}
	return &checkout.Transaction{ID: uuid.New(), UserID: userID, TotalAmount: total, PaymentMethod: method}, nil
}

func newTestService(t *testing.T, products ...*catalog.Product) (Service, *mockCheckout) {
	t.Helper()
	store := catalog.NewStore(&stubCatalogRepo{products: products})
	require.NoError(t, store.Reload(context.Background()))
	chk := &mockCheckout{}
	return NewService(store, chk), chk
}

func testProduct(name, barcode string, price float64) *catalog.Product {
	return &catalog.Product{ID: uuid.New(), Name: name, Barcode: barcode, Price: price, Stock: 20}
}

func TestService_UnknownSession(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Cart("nope")

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestService_AddAndViewCart(t *testing.T) {
	p := testProduct("Cola", "123456", 1.50)
	svc, _ := newTestService(t, p)
	sid := svc.OpenSession()

	view, err := svc.AddItem(sid, p.ID.String(), 0) // zero delta defaults to 1
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 1, view.Lines[0].Quantity)

	view, err = svc.AddItem(sid, p.ID.String(), 2)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Lines[0].Quantity)
	assert.InDelta(t, 4.50, view.Total, 1e-9)
}

func TestService_ScanBurstAddsToCart(t *testing.T) {
	p := testProduct("Cola", "123456", 1.50)
	svc, _ := newTestService(t, p)
	sid := svc.OpenSession()

	at := time.Now()
	for _, key := range []string{"1", "2", "3", "4", "5", "6"} {
		_, err := svc.KeyPress(sid, key, at)
		require.NoError(t, err)
		at = at.Add(10 * time.Millisecond)
	}
	result, err := svc.KeyPress(sid, "Enter", at)
	require.NoError(t, err)

	assert.True(t, result.Scanned)
	assert.Equal(t, "123456", result.Code)
	assert.True(t, result.Matched)
	assert.True(t, result.Added)
	require.NotNil(t, result.Cart)
	require.Len(t, result.Cart.Lines, 1)
	assert.Equal(t, "Cola", result.Cart.Lines[0].Product.Name)
}

func TestService_ScanUnknownBarcode(t *testing.T) {
	svc, _ := newTestService(t, testProduct("Cola", "999999", 1.50))
	sid := svc.OpenSession()

	at := time.Now()
	for _, key := range []string{"1", "2", "3"} {
		_, err := svc.KeyPress(sid, key, at)
		require.NoError(t, err)
		at = at.Add(10 * time.Millisecond)
	}
	result, err := svc.KeyPress(sid, "Enter", at)
	require.NoError(t, err)

	assert.True(t, result.Scanned)
	assert.Equal(t, "123", result.Code)
	assert.False(t, result.Matched)
	assert.False(t, result.Added)

	view, err := svc.Cart(sid)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestService_SlowTypingDoesNotScan(t *testing.T) {
	svc, _ := newTestService(t, testProduct("Cola", "123456", 1.50))
	sid := svc.OpenSession()

	at := time.Now()
	for _, key := range []string{"1", "2", "3", "4", "5", "6"} {
		_, err := svc.KeyPress(sid, key, at)
		require.NoError(t, err)
		at = at.Add(200 * time.Millisecond)
	}
	result, err := svc.KeyPress(sid, "Enter", at.Add(200*time.Millisecond))
	require.NoError(t, err)

	assert.False(t, result.Scanned)
}

func TestService_CheckoutClearsCartOnSuccess(t *testing.T) {
	p := testProduct("Cola", "123456", 1.50)
	svc, chk := newTestService(t, p)
	sid := svc.OpenSession()
	userID := uuid.New()

	_, err := svc.AddItem(sid, p.ID.String(), 2)
	require.NoError(t, err)

	tx, err := svc.Checkout(context.Background(), sid, userID, checkout.PaymentCash)
	require.NoError(t, err)
	assert.Equal(t, userID, tx.UserID)
	assert.Equal(t, checkout.PaymentCash, chk.method)
	require.Len(t, chk.lines, 1)
	assert.Equal(t, 2, chk.lines[0].Quantity)

	view, err := svc.Cart(sid)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Zero(t, view.Total)
}

func TestService_CheckoutFailurePreservesCart(t *testing.T) {
	p := testProduct("Cola", "123456", 1.50)
	svc, chk := newTestService(t, p)
	chk.err = checkout.ErrTransactionCreate
	sid := svc.OpenSession()

	_, err := svc.AddItem(sid, p.ID.String(), 2)
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), sid, uuid.New(), checkout.PaymentCard)
	assert.ErrorIs(t, err, checkout.ErrTransactionCreate)

	view, err := svc.Cart(sid)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.Lines[0].Quantity)
}

func TestService_CloseSession(t *testing.T) {
	svc, _ := newTestService(t)
	sid := svc.OpenSession()

	svc.CloseSession(sid)

	_, err := svc.Cart(sid)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
