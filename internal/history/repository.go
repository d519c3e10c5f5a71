package history

import (
	"context"
	"database/sql"
	"fmt"
)

type Repository interface {
	Insert(ctx context.Context, e *Entry) error
	List(ctx context.Context, opts QueryOptions) ([]Entry, int, error)
	Clear(ctx context.Context) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, e *Entry) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO history (actor, action, subject, details)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, e.Actor, e.Action, e.Subject, e.Details).Scan(&e.ID, &e.CreatedAt)
}

func (r *repository) List(ctx context.Context, opts QueryOptions) ([]Entry, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	argIndex := 1

	if opts.From != nil && opts.To != nil {
		where += fmt.Sprintf(" AND created_at >= $%d AND created_at < $%d", argIndex, argIndex+1)
		args = append(args, *opts.From, *opts.To)
		argIndex += 2
	}

	if opts.Search != "" {
		where += fmt.Sprintf(" AND subject ILIKE $%d", argIndex)
		args = append(args, "%"+opts.Search+"%")
		argIndex++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM history"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT id, actor, action, subject, details, created_at FROM history" + where
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Actor, &e.Action, &e.Subject, &e.Details, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *repository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM history`)
	return err
}
