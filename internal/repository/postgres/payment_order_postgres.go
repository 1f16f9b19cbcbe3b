package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"wellnessapi/internal/errs"
	"wellnessapi/internal/model"
	"wellnessapi/internal/repository"
)

// PaymentOrderPostgres is the PostgreSQL implementation of the payment order
// ledger. Orders are keyed by our order_id for gateway callbacks.
type PaymentOrderPostgres struct {
	db *sql.DB
}

var _ repository.PaymentOrderRepository = (*PaymentOrderPostgres)(nil)

// NewPaymentOrderPostgres creates a new payment order repository.
func NewPaymentOrderPostgres(db *sql.DB) *PaymentOrderPostgres {
	return &PaymentOrderPostgres{db: db}
}

const paymentOrderCols = `id, order_id, gateway_order_id, item_type, item_id, amount, currency,
customer_id, customer_name, customer_email, customer_phone, status, created_at, updated_at`

func (r *PaymentOrderPostgres) Create(ctx context.Context, o *model.PaymentOrder) (*model.PaymentOrder, error) {
	q := `INSERT INTO payment_orders
(id, order_id, gateway_order_id, item_type, item_id, amount, currency,
 customer_id, customer_name, customer_email, customer_phone, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING ` + paymentOrderCols
	out, err := scanPaymentOrder(r.db.QueryRowContext(ctx, q,
		o.ID, o.OrderID, o.GatewayOrderID, o.ItemType, o.ItemID, o.Amount, o.Currency,
		o.CustomerID, o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.Status,
		o.CreatedAt, o.UpdatedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, errs.Duplicate("an order with this order ID already exists")
		}
		return nil, err
	}
	return out, nil
}

func (r *PaymentOrderPostgres) FindByOrderID(ctx context.Context, orderID string) (*model.PaymentOrder, error) {
	q := "SELECT " + paymentOrderCols + " FROM payment_orders WHERE order_id = $1"
	o, err := scanPaymentOrder(r.db.QueryRowContext(ctx, q, orderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFound("order not found")
		}
		return nil, err
	}
	return o, nil
}

func (r *PaymentOrderPostgres) SetGatewayOrderID(ctx context.Context, orderID, gatewayOrderID string) error {
	q := "UPDATE payment_orders SET gateway_order_id = $2, updated_at = now() WHERE order_id = $1"
	return r.exec(ctx, q, orderID, gatewayOrderID)
}

func (r *PaymentOrderPostgres) UpdateStatus(ctx context.Context, orderID, status string) error {
	q := "UPDATE payment_orders SET status = $2, updated_at = now() WHERE order_id = $1"
	return r.exec(ctx, q, orderID, status)
}

func (r *PaymentOrderPostgres) exec(ctx context.Context, q string, args ...any) error {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.NotFound("order not found")
	}
	return nil
}

func scanPaymentOrder(row rowScanner) (*model.PaymentOrder, error) {
	var o model.PaymentOrder
	if err := row.Scan(
		&o.ID, &o.OrderID, &o.GatewayOrderID, &o.ItemType, &o.ItemID, &o.Amount, &o.Currency,
		&o.CustomerID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.Status,
		&o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}
