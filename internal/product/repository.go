package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"futstore-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, opts QueryOptions) ([]Summary, int, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// totalStockExpr sums the per-size stock counts inside the JSONB column.
// The size set is closed, so the expression is static.
func totalStockExpr() string {
	terms := make([]string, 0, len(AllowedSizes))
	for _, size := range AllowedSizes {
		terms = append(terms, fmt.Sprintf("COALESCE((stock->>'%s')::int, 0)", size))
	}
	return "(" + strings.Join(terms, " + ") + ")"
}

func (r *repository) List(ctx context.Context, opts QueryOptions) ([]Summary, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	where := " WHERE 1=1"
	args := []any{}
	argIndex := 1

	if opts.Search != "" {
		where += fmt.Sprintf(" AND name ILIKE $%d", argIndex)
		args = append(args, "%"+opts.Search+"%")
		argIndex++
	}

	if opts.Type != "" {
		where += fmt.Sprintf(" AND type = $%d", argIndex)
		args = append(args, opts.Type)
		argIndex++
	}

	switch opts.Mode {
	case ModeOffer:
		where += " AND discount_price > 0"
	case ModeAvailable:
		where += " AND discount_price = 0 AND " + totalStockExpr() + " > 0"
	}

	if len(opts.Sizes) > 0 {
		conds := make([]string, 0, len(opts.Sizes))
		for _, size := range opts.Sizes {
			conds = append(conds, fmt.Sprintf("COALESCE((stock->>$%d)::int, 0) > 0", argIndex))
			args = append(args, size)
			argIndex++
		}
		where += " AND (" + strings.Join(conds, " OR ") + ")"
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products"+where, args...).Scan(&total); err != nil {
		log.Error("failed to count products", zap.Error(err))
		return nil, 0, err
	}

	query := "SELECT id, name, type, price, discount_price, images, is_new, created_at FROM products" + where
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, opts.Limit, (opts.Page-1)*opts.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var items []Summary
	for rows.Next() {
		var s Summary
		var images StringSlice
		if err := rows.Scan(&s.ID, &s.Name, &s.Type, &s.Price, &s.DiscountPrice, &images, &s.IsNew, &s.CreatedAt); err != nil {
			log.Error("failed to scan product row", zap.Error(err))
			return nil, 0, err
		}
		if len(images) > 0 {
			s.Image = images[0]
		}
		items = append(items, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	// A malformed id can never match a row; treat it as not found
	// instead of letting the driver raise a cast error.
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrProductNotFound
	}

	var p Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, type, price, discount_price, stock, bodega, images, is_new, created_at, updated_at
		FROM products WHERE id = $1
	`, id).Scan(
		&p.ID, &p.Name, &p.Type, &p.Price, &p.DiscountPrice,
		&p.Stock, &p.Bodega, &p.Images, &p.IsNew, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, type, price, discount_price, stock, bodega, images, is_new)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`,
		p.Name, p.Type, p.Price, p.DiscountPrice, p.Stock, p.Bodega, p.Images, p.IsNew,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $1, type = $2, price = $3, discount_price = $4,
			stock = $5, bodega = $6, images = $7, is_new = $8, updated_at = NOW()
		WHERE id = $9
	`,
		p.Name, p.Type, p.Price, p.DiscountPrice, p.Stock, p.Bodega, p.Images, p.IsNew, p.ID,
	)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
