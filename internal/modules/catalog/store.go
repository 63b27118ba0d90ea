package catalog

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// CategoryAll matches every product when used as a category filter.
const CategoryAll = "All"

// Store holds an in-memory snapshot of the product catalog. It is refreshed
// wholesale whenever the database signals a change on the products table:
// a notification is only ever an invalidation, never a diff.
type Store struct {
	repo Repository

	mu       sync.RWMutex
	products []*Product

	sfg singleflight.Group // collapses concurrent reloads
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// Reload refetches the full product list. Concurrent callers share a single
// fetch to avoid a reload stampede when change notifications arrive in bursts.
func (s *Store) Reload(ctx context.Context) error {
	_, err, _ := s.sfg.Do("reload", func() (interface{}, error) {
		products, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.products = products
		s.mu.Unlock()
		return nil, nil
	})
	return err
}

// Watch consumes change events and reloads the snapshot on each one. Read
// errors leave the previous snapshot in place. Blocks until ctx is done or
// the channel is closed.
func (s *Store) Watch(ctx context.Context, events <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			if err := s.Reload(ctx); err != nil {
				log.Printf("catalog reload failed: %v", err)
			}
		}
	}
}

// Products returns the current snapshot, sorted by name.
func (s *Store) Products() []*Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Product, len(s.products))
	copy(out, s.products)
	return out
}

// Filter returns products matching a free-text query and a category. The
// query matches case-insensitively against the name and as a plain substring
// against the barcode. An empty category or CategoryAll matches everything.
func (s *Store) Filter(query, category string) []*Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	var out []*Product
	for _, p := range s.products {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(p.Barcode, query) {
			continue
		}
		if category != "" && category != CategoryAll && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories returns CategoryAll followed by the distinct product categories
// in sorted order.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]bool{}
	var cats []string
	for _, p := range s.products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	sort.Strings(cats)
	return append([]string{CategoryAll}, cats...)
}

// FindByBarcode returns the product with an exactly matching barcode.
func (s *Store) FindByBarcode(code string) (*Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.Barcode == code {
			return p, true
		}
	}
	return nil, false
}

// FindByID returns the product with the given id string.
func (s *Store) FindByID(id string) (*Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID.String() == id {
			return p, true
		}
	}
	return nil, false
}
