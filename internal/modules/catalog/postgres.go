package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, barcode, price, stock, category)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		p.ID, p.Name, p.Barcode, p.Price, p.Stock, p.Category)
	return translateUniqueViolation(err)
}

func scanProduct(scan func(...interface{}) error) (*Product, error) {
	p := &Product{}
	err := scan(&p.ID, &p.Name, &p.Barcode, &p.Price, &p.Stock, &p.Category, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id,name,barcode,price,stock,category,created_at
		FROM products WHERE id=$1`, uid)
	return scanProduct(row.Scan)
}

func (r *postgresRepo) List(ctx context.Context) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,name,barcode,price,stock,category,created_at
		FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name=$1, barcode=$2, price=$3, stock=$4, category=$5
		WHERE id=$6`,
		p.Name, p.Barcode, p.Price, p.Stock, p.Category, p.ID)
	return translateUniqueViolation(err)
}

func (r *postgresRepo) UpdateStock(ctx context.Context, id string, stock int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE products SET stock=$1 WHERE id=$2`, stock, id)
	return err
}

func translateUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrBarcodeTaken
	}
	return err
}
