package payment

import (
	"context"
	"database/sql"
	"errors"
)

var ErrLinkNotFound = errors.New("payment link not found")

type Repository interface {
	SaveLink(ctx context.Context, link *Link) error
	GetByOrderReference(ctx context.Context, reference string) (*Link, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SaveLink(ctx context.Context, link *Link) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO payment_links (order_reference, url, token)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, link.OrderReference, link.URL, link.Token).Scan(&link.ID, &link.CreatedAt)
}

func (r *repository) GetByOrderReference(ctx context.Context, reference string) (*Link, error) {
	var link Link
	err := r.db.QueryRowContext(ctx, `
		SELECT id, order_reference, url, token, created_at
		FROM payment_links
		WHERE order_reference = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, reference).Scan(&link.ID, &link.OrderReference, &link.URL, &link.Token, &link.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}
