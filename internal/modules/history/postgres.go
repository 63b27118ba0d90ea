package history

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/novalabs/novapos-backend/internal/modules/checkout"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) List(ctx context.Context, withItems bool) ([]*checkout.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, total_amount, payment_method, created_at
		FROM transactions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []*checkout.Transaction
	byID := map[uuid.UUID]*checkout.Transaction{}
	for rows.Next() {
		t := &checkout.Transaction{}
		if err := rows.Scan(&t.ID, &t.UserID, &t.TotalAmount, &t.PaymentMethod, &t.CreatedAt); err != nil {
			return nil, err
		}
		txs = append(txs, t)
		byID[t.ID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !withItems || len(txs) == 0 {
		return txs, nil
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT id, transaction_id, product_id, product_name, quantity, price_at_sale
		FROM transaction_items`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		item := &checkout.TransactionItem{}
		err := itemRows.Scan(&item.ID, &item.TransactionID, &item.ProductID,
			&item.ProductName, &item.Quantity, &item.PriceAtSale)
		if err != nil {
			return nil, err
		}
		if t, ok := byID[item.TransactionID]; ok {
			t.Items = append(t.Items, item)
		}
	}
	return txs, itemRows.Err()
}
