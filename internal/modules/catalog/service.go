package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, req SaveProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, query, category string) []*Product
	ListCategories(ctx context.Context) []string
	UpdateProduct(ctx context.Context, id string, req SaveProductRequest) (*Product, error)
}

// SaveProductRequest holds the data for creating or updating a product.
type SaveProductRequest struct {
	Name     string  `json:"name"`
	Barcode  string  `json:"barcode"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Category string  `json:"category"`
}

type service struct {
	repo  Repository
	store *Store
}

func NewService(repo Repository, store *Store) Service {
	return &service{repo: repo, store: store}
}

func (s *service) validate(req SaveProductRequest) error {
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if req.Barcode == "" {
		return fmt.Errorf("barcode is required")
	}
	if req.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if req.Stock < 0 {
		return fmt.Errorf("stock must not be negative")
	}
	return nil
}

func (s *service) CreateProduct(ctx context.Context, req SaveProductRequest) (*Product, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	p := &Product{
		ID:       uuid.New(),
		Name:     req.Name,
		Barcode:  req.Barcode,
		Price:    req.Price,
		Stock:    req.Stock,
		Category: req.Category,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	// The change trigger will also fire, but reload now so our own snapshot
	// is fresh before the caller's next read.
	if err := s.store.Reload(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListProducts(_ context.Context, query, category string) []*Product {
	return s.store.Filter(query, category)
}

func (s *service) ListCategories(_ context.Context) []string {
	return s.store.Categories()
}

func (s *service) UpdateProduct(ctx context.Context, id string, req SaveProductRequest) (*Product, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = req.Name
	p.Barcode = req.Barcode
	p.Price = req.Price
	p.Stock = req.Stock
	p.Category = req.Category
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	if err := s.store.Reload(ctx); err != nil {
		return nil, err
	}
	return p, nil
}
