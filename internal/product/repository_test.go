package product

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "type", "price", "discount_price", "images", "is_new", "created_at"}).
		AddRow("p1", "Jersey Local", "jersey", 45000, 0, []byte(`["a.jpg","b.jpg"]`), true, time.Now())
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("NoFilters", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products WHERE 1=1`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT id, name, type, price, discount_price, images, is_new, created_at FROM products WHERE 1=1 ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
			WithArgs(20, 0).
			WillReturnRows(summaryRows())

		items, total, err := repo.List(ctx, QueryOptions{Page: 1, Limit: 20})
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, items, 1)
		assert.Equal(t, "a.jpg", items[0].Image)
	})

	t.Run("SearchAndType", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products WHERE 1=1 AND name ILIKE \$1 AND type = \$2`).
			WithArgs("%local%", "jersey").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT .* FROM products WHERE 1=1 AND name ILIKE \$1 AND type = \$2 ORDER BY created_at DESC LIMIT \$3 OFFSET \$4`).
			WithArgs("%local%", "jersey", 20, 0).
			WillReturnRows(summaryRows())

		_, total, err := repo.List(ctx, QueryOptions{Search: "local", Type: "jersey", Page: 1, Limit: 20})
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
	})

	t.Run("OfferMode", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products WHERE 1=1 AND discount_price > 0`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT .* FROM products WHERE 1=1 AND discount_price > 0 ORDER BY created_at DESC`).
			WithArgs(20, 0).
			WillReturnRows(summaryRows().AddRow("p2", "x", "y", 1, 1, []byte(`[]`), false, time.Now()))

		_, _, err := repo.List(ctx, QueryOptions{Mode: ModeOffer, Page: 1, Limit: 20})
		assert.NoError(t, err)
	})

	t.Run("AvailableModeSumsStock", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products WHERE 1=1 AND discount_price = 0 AND \(COALESCE\(\(stock->>'S'\)::int, 0\) \+ .* > 0`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT .* FROM products WHERE 1=1 AND discount_price = 0`).
			WithArgs(20, 0).
			WillReturnRows(summaryRows())

		_, _, err := repo.List(ctx, QueryOptions{Mode: ModeAvailable, Page: 1, Limit: 20})
		assert.NoError(t, err)
	})

	t.Run("SizeFilter", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products WHERE 1=1 AND \(COALESCE\(\(stock->>\$1\)::int, 0\) > 0 OR COALESCE\(\(stock->>\$2\)::int, 0\) > 0\)`).
			WithArgs("M", "L").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT .* FROM products WHERE 1=1 AND \(COALESCE`).
			WithArgs("M", "L", 20, 0).
			WillReturnRows(summaryRows())

		_, _, err := repo.List(ctx, QueryOptions{Sizes: []string{"M", "L"}, Page: 1, Limit: 20})
		assert.NoError(t, err)
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "type", "price", "discount_price", "stock", "bodega", "images", "is_new", "created_at", "updated_at"}).
			AddRow("6a5e8f0a-5f2e-4e9e-b3cd-0c8f2e6d9a11", "Jersey Local", "jersey", 45000, 0,
				[]byte(`{"M":3}`), []byte(`{}`), []byte(`["a.jpg"]`), true, time.Now(), time.Now())
		mock.ExpectQuery(`SELECT .* FROM products WHERE id = \$1`).
			WithArgs("6a5e8f0a-5f2e-4e9e-b3cd-0c8f2e6d9a11").
			WillReturnRows(rows)

		p, err := repo.GetByID(ctx, "6a5e8f0a-5f2e-4e9e-b3cd-0c8f2e6d9a11")
		assert.NoError(t, err)
		assert.Equal(t, SizeCount{"M": 3}, p.Stock)
	})

	t.Run("MalformedID", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM products WHERE id = \$1`).
			WithArgs("6a5e8f0a-5f2e-4e9e-b3cd-0c8f2e6d9a12").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, "6a5e8f0a-5f2e-4e9e-b3cd-0c8f2e6d9a12")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`UPDATE products`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), &Product{ID: "p1", Name: "x"})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
			WithArgs("p1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), "p1"))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), ErrProductNotFound)
	})
}
