package checkout

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateTransaction(ctx context.Context, tx *Transaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, total_amount, payment_method)
		VALUES ($1,$2,$3,$4)`,
		tx.ID, tx.UserID, tx.TotalAmount, tx.PaymentMethod)
	return err
}

func (r *postgresRepo) CreateItems(ctx context.Context, items []*TransactionItem) error {
	for _, item := range items {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO transaction_items
			  (id, transaction_id, product_id, product_name, quantity, price_at_sale)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			item.ID, item.TransactionID, item.ProductID, item.ProductName,
			item.Quantity, item.PriceAtSale)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresRepo) UpdateProductStock(ctx context.Context, productID string, stock int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE products SET stock=$1 WHERE id=$2`, stock, productID)
	return err
}
