package pos

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/novalabs/novapos-backend/internal/modules/cart"
	"github.com/novalabs/novapos-backend/internal/modules/catalog"
	"github.com/novalabs/novapos-backend/internal/modules/checkout"
	"github.com/novalabs/novapos-backend/internal/modules/scanner"
	"github.com/novalabs/novapos-backend/internal/pkg/metrics"
)

// ErrSessionNotFound is returned for an unknown or closed session id.
var ErrSessionNotFound = errors.New("register session not found")

// Service drives one cashier's register flow: a per-session cart fed by
// product taps and barcode scans, finalised by checkout.
type Service interface {
	OpenSession() string
	CloseSession(id string)
	Cart(sessionID string) (*CartView, error)
	AddItem(sessionID, productID string, delta int) (*CartView, error)
	SetQuantity(sessionID, productID string, qty int) (*CartView, error)
	RemoveItem(sessionID, productID string) (*CartView, error)
	ClearCart(sessionID string) (*CartView, error)
	KeyPress(sessionID, key string, at time.Time) (*ScanResult, error)
	Checkout(ctx context.Context, sessionID string, userID uuid.UUID, method checkout.PaymentMethod) (*checkout.Transaction, error)
}

// session is the server-side state of one open register. Each session has a
// single cashier, so a plain mutex is enough to serialise its mutations.
type session struct {
	mu       sync.Mutex
	id       string
	cart     *cart.Cart
	scanner  *scanner.Disambiguator
	lastScan string
}

type service struct {
	store    *catalog.Store
	checkout checkout.Service

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewService(store *catalog.Store, checkoutSvc checkout.Service) Service {
	return &service{
		store:    store,
		checkout: checkoutSvc,
		sessions: map[string]*session{},
	}
}

func (s *service) OpenSession() string {
	sess := &session{id: uuid.NewString(), cart: cart.New()}
	sess.scanner = scanner.New(func(code string) { sess.lastScan = code })

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	return sess.id
}

func (s *service) CloseSession(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *service) get(id string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *service) view(sess *session) *CartView {
	return &CartView{SessionID: sess.id, Lines: sess.cart.Lines(), Total: sess.cart.Total()}
}

func (s *service) Cart(sessionID string) (*CartView, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.view(sess), nil
}

func (s *service) AddItem(sessionID, productID string, delta int) (*CartView, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	p, ok := s.store.FindByID(productID)
	if !ok {
		return nil, fmt.Errorf("product %s not found", productID)
	}
	if delta == 0 {
		delta = 1
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.cart.Add(*p, delta)
	return s.view(sess), nil
}

func (s *service) SetQuantity(sessionID, productID string, qty int) (*CartView, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.cart.SetQuantity(productID, qty)
	return s.view(sess), nil
}

func (s *service) RemoveItem(sessionID, productID string) (*CartView, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.cart.Remove(productID)
	return s.view(sess), nil
}

func (s *service) ClearCart(sessionID string) (*CartView, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.cart.Clear()
	return s.view(sess), nil
}

// KeyPress feeds one keystroke into the session's disambiguator. When the
// key completes a scan the code is looked up in the catalog snapshot and, on
// a hit, added to the cart.
func (s *service) KeyPress(sessionID, key string, at time.Time) (*ScanResult, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.lastScan = ""
	if !sess.scanner.Press(key, at) {
		return &ScanResult{}, nil
	}

	result := &ScanResult{Scanned: true, Code: sess.lastScan}
	p, ok := s.store.FindByBarcode(sess.lastScan)
	if !ok {
		metrics.ScansTotal.WithLabelValues("unmatched").Inc()
		return result, nil
	}
	sess.cart.Add(*p, 1)
	result.Matched = true
	result.Added = true
	result.Cart = s.view(sess)
	metrics.ScansTotal.WithLabelValues("matched").Inc()
	return result, nil
}

// Checkout finalises the session cart. The cart is cleared only on success;
// on any failure it is preserved so the cashier can retry.
func (s *service) Checkout(ctx context.Context, sessionID string, userID uuid.UUID, method checkout.PaymentMethod) (*checkout.Transaction, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	tx, err := s.checkout.Checkout(ctx, userID, sess.cart.Lines(), method)
	if err != nil {
		return nil, err
	}
	sess.cart.Clear()
	return tx, nil
}
