package repo

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	domain "github.com/MAKHFIRAT2408/food/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogRepoMock(t *testing.T) (*MySQLCatalogRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewMySQLCatalogRepo(db), mock
}

func TestGetDish(t *testing.T) {
	ctx := context.Background()
	// nullable columns read back as '' through COALESCE
	dishQuery := regexp.QuoteMeta(`SELECT id, restaurant_id, name, COALESCE(description, ''), price_cents, COALESCE(photo_url, '') FROM dishes WHERE id = ?`)

	t.Run("a dish without a description scans cleanly", func(t *testing.T) {
		r, mock := newCatalogRepoMock(t)
		mock.ExpectQuery(dishQuery).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_id", "name", "description", "price_cents", "photo_url"}).
				AddRow(3, 1, "plov", "", 1000, ""))

		dish, err := r.GetDish(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "plov", dish.Name)
		assert.Equal(t, int64(1000), dish.PriceCents)
		assert.Empty(t, dish.Description)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("an unknown dish is NotFound", func(t *testing.T) {
		r, mock := newCatalogRepoMock(t)
		mock.ExpectQuery(dishQuery).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_id", "name", "description", "price_cents", "photo_url"}))

		_, err := r.GetDish(ctx, 99)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})
}

func TestListDishes(t *testing.T) {
	ctx := context.Background()
	r, mock := newCatalogRepoMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, restaurant_id, name, COALESCE(description, ''), price_cents, COALESCE(photo_url, '') FROM dishes WHERE restaurant_id = ? ORDER BY id`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_id", "name", "description", "price_cents", "photo_url"}).
			AddRow(3, 1, "plov", "rice and lamb", 1000, "").
			AddRow(4, 1, "non", "", 500, ""))

	dishes, err := r.ListDishes(ctx, 1)
	require.NoError(t, err)
	require.Len(t, dishes, 2)
	assert.Empty(t, dishes[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}
