package repo

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	domain "github.com/MAKHFIRAT2408/food/internal/entity"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderRepoMock(t *testing.T) (*MySQLOrderRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewMySQLOrderRepo(db), mock
}

func orderRows(id, userID int64, status domain.Status, total int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "courier_id", "status", "delivery_address", "total_cents", "user_confirmed", "created_at",
	}).AddRow(id, userID, nil, string(status), nil, total, false, time.Now())
}

func emptyLineRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "order_id", "dish_id", "quantity", "unit_price_cents"})
}

func TestFindOpenCart(t *testing.T) {
	ctx := context.Background()

	t.Run("no open cart means nil, not an error", func(t *testing.T) {
		r, mock := newOrderRepoMock(t)
		mock.ExpectQuery(`SELECT .+ FROM orders WHERE user_id = \? AND status = \?`).
			WithArgs(int64(7), "in_cart").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "courier_id", "status", "delivery_address", "total_cents", "user_confirmed", "created_at",
			}))

		cart, err := r.FindOpenCart(ctx, 7)
		require.NoError(t, err)
		assert.Nil(t, cart)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("an open cart comes back with its lines", func(t *testing.T) {
		r, mock := newOrderRepoMock(t)
		mock.ExpectQuery(`SELECT .+ FROM orders WHERE user_id = \? AND status = \?`).
			WithArgs(int64(7), "in_cart").
			WillReturnRows(orderRows(42, 7, domain.StatusInCart, 2000))
		mock.ExpectQuery(`SELECT .+ FROM order_lines WHERE order_id = \? ORDER BY id`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "dish_id", "quantity", "unit_price_cents"}).
				AddRow(1, 42, 3, 2, 1000))

		cart, err := r.FindOpenCart(ctx, 7)
		require.NoError(t, err)
		require.NotNil(t, cart)
		assert.Equal(t, int64(2000), cart.TotalCents)
		require.Len(t, cart.Lines, 1)
		assert.Equal(t, 2, cart.Lines[0].Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateOpenCartDuplicate(t *testing.T) {
	ctx := context.Background()
	r, mock := newOrderRepoMock(t)

	// The unique open-cart key fires: fall back to the winner's cart.
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO orders (user_id, status, total_cents, created_at) VALUES (?, ?, 0, NOW())`)).
		WithArgs(int64(7), "in_cart").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectQuery(`SELECT .+ FROM orders WHERE user_id = \? AND status = \?`).
		WithArgs(int64(7), "in_cart").
		WillReturnRows(orderRows(42, 7, domain.StatusInCart, 0))
	mock.ExpectQuery(`SELECT .+ FROM order_lines WHERE order_id = \?`).
		WithArgs(int64(42)).
		WillReturnRows(emptyLineRows())

	cart, err := r.CreateOpenCart(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(42), cart.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertLine(t *testing.T) {
	ctx := context.Background()

	t.Run("an existing line is incremented", func(t *testing.T) {
		r, mock := newOrderRepoMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM orders WHERE id = ? FOR UPDATE`)).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("in_cart"))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE order_lines SET quantity = quantity + ? WHERE order_id = ? AND dish_id = ?`)).
			WithArgs(2, int64(42), int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE orders SET total_cents = `).
			WithArgs(int64(42), int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, r.UpsertLine(ctx, 42, 3, 2, 1000))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a new line is inserted with the price snapshot", func(t *testing.T) {
		r, mock := newOrderRepoMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM orders WHERE id = ? FOR UPDATE`)).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("in_cart"))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE order_lines SET quantity = quantity + ?`)).
			WithArgs(2, int64(42), int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO order_lines (order_id, dish_id, quantity, unit_price_cents) VALUES (?, ?, ?, ?)`)).
			WithArgs(int64(42), int64(3), 2, int64(1000)).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`UPDATE orders SET total_cents = `).
			WithArgs(int64(42), int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, r.UpsertLine(ctx, 42, 3, 2, 1000))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a vanished order rolls back with NotFound", func(t *testing.T) {
		r, mock := newOrderRepoMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM orders WHERE id = ? FOR UPDATE`)).
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}))
		mock.ExpectRollback()

		err := r.UpsertLine(ctx, 404, 3, 1, 1000)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("an order that raced out of in_cart rejects new lines", func(t *testing.T) {
		r, mock := newOrderRepoMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM orders WHERE id = ? FOR UPDATE`)).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("placed"))
		mock.ExpectRollback()

		err := r.UpsertLine(ctx, 42, 3, 1, 1000)
		assert.Equal(t, domain.KindInvalidState, domain.KindOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteLineMissing(t *testing.T) {
	ctx := context.Background()
	r, mock := newOrderRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM orders WHERE id = ? FOR UPDATE`)).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("in_cart"))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM order_lines WHERE order_id = ? AND dish_id = ?`)).
		WithArgs(int64(42), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := r.DeleteLine(ctx, 42, 3)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimIf(t *testing.T) {
	ctx := context.Background()
	claim := regexp.QuoteMeta(`UPDATE orders SET courier_id = ?, status = ? WHERE id = ? AND status = ? AND courier_id IS NULL`)

	t.Run("the first courier wins", func(t *testing.T) {
		r, mock := newOrderRepoMock(t)
		mock.ExpectExec(claim).
			WithArgs(int64(11), "in_delivery", int64(42), "placed").
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := r.ClaimIf(ctx, 42, 11)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("an already claimed order matches no row", func(t *testing.T) {
		r, mock := newOrderRepoMock(t)
		mock.ExpectExec(claim).
			WithArgs(int64(12), "in_delivery", int64(42), "placed").
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := r.ClaimIf(ctx, 42, 12)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestPlaceIf(t *testing.T) {
	ctx := context.Background()
	r, mock := newOrderRepoMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders SET status = ?, delivery_address = ? WHERE id = ? AND status = ?`)).
		WithArgs("placed", "Main St 1", int64(42), "in_cart").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := r.PlaceIf(ctx, 42, "Main St 1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	ctx := context.Background()
	r, mock := newOrderRepoMock(t)

	mock.ExpectQuery(`SELECT .+ FROM orders WHERE id = \?`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "courier_id", "status", "delivery_address", "total_cents", "user_confirmed", "created_at",
		}))

	_, err := r.GetByID(ctx, 404)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
