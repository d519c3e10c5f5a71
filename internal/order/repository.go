package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"futstore-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByReference(ctx context.Context, reference string) (*Order, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
	SetGatewayToken(ctx context.Context, id, token string) error
	List(ctx context.Context, opts ListOptions) ([]Order, int, error)
	CancelStalePending(ctx context.Context, cutoff time.Time) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, reference, customer_name, customer_email, items, total, status,
	COALESCE(gateway_token, ''), COALESCE(idempotency_key, ''), created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.Reference, &o.Customer.Name, &o.Customer.Email,
		&o.Items, &o.Total, &o.Status,
		&o.GatewayToken, &o.IdempotencyKey, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) Create(ctx context.Context, o *Order) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO orders (reference, customer_name, customer_email, items, total, status, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		RETURNING id, created_at, updated_at
	`,
		o.Reference, o.Customer.Name, o.Customer.Email, o.Items, o.Total, o.Status, o.IdempotencyKey,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrOrderNotFound
	}
	return r.getBy(ctx, "id", id)
}

func (r *repository) GetByReference(ctx context.Context, reference string) (*Order, error) {
	return r.getBy(ctx, "reference", reference)
}

func (r *repository) GetByIdempotencyKey(ctx context.Context, key string) (*Order, error) {
	return r.getBy(ctx, "idempotency_key", key)
}

func (r *repository) getBy(ctx context.Context, column, value string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE "+column+" = $1", value,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrOrderNotFound
	}

	o, err := scanOrder(r.db.QueryRowContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+orderColumns,
		status, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) SetGatewayToken(ctx context.Context, id, token string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET gateway_token = $1, updated_at = NOW() WHERE id = $2
	`, token, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]Order, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	where := " WHERE 1=1"
	args := []any{}
	argIndex := 1

	if opts.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, opts.Status)
		argIndex++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders"+where, args...).Scan(&total); err != nil {
		log.Error("failed to count orders", zap.Error(err))
		return nil, 0, err
	}

	query := "SELECT " + orderColumns + " FROM orders" + where
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, opts.Limit, (opts.Page-1)*opts.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var items []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, 0, err
		}
		items = append(items, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// CancelStalePending cancels pending orders created before the cutoff
// that never received a gateway correlation token. Orders with a token
// may still have a live payment session and are left alone.
func (r *repository) CancelStalePending(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE status = $2 AND created_at < $3
		AND (gateway_token IS NULL OR gateway_token = '')
	`, StatusCancelled, StatusPending, cutoff)
	if err != nil {
		return 0, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
