package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/MAKHFIRAT2408/food/internal/entity"
	"github.com/MAKHFIRAT2408/food/internal/usecase"
	"github.com/go-sql-driver/mysql"
)

// MySQLOrderRepo persists orders and their lines. Cart mutations lock the
// order row (SELECT ... FOR UPDATE) and recompute the stored total inside
// the same transaction; lifecycle transitions are single conditional
// UPDATEs, so two concurrent actors can never both apply one.
type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

const orderColumns = `id, user_id, courier_id, status, delivery_address, total_cents, user_confirmed, created_at`

const totalSubquery = `(SELECT COALESCE(SUM(unit_price_cents * quantity), 0) FROM order_lines WHERE order_id = ?)`

func (r *MySQLOrderRepo) FindOpenCart(ctx context.Context, userID int64) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+orderColumns+` FROM orders WHERE user_id = ? AND status = ?`,
		userID, domain.StatusInCart)
	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *MySQLOrderRepo) CreateOpenCart(ctx context.Context, userID int64) (*domain.Order, error) {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO orders (user_id, status, total_cents, created_at) VALUES (?, ?, 0, NOW())`,
		userID, domain.StatusInCart)
	if err != nil {
		// uniq_open_cart: a concurrent call created the cart first; use theirs.
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return r.FindOpenCart(ctx, userID)
		}
		return nil, err
	}
	return r.FindOpenCart(ctx, userID)
}

func (r *MySQLOrderRepo) RefreshTotal(ctx context.Context, orderID int64) (int64, error) {
	if _, err := r.db.ExecContext(ctx, `
UPDATE orders SET total_cents = `+totalSubquery+` WHERE id = ?`, orderID, orderID); err != nil {
		return 0, err
	}
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT total_cents FROM orders WHERE id = ?`, orderID).Scan(&total)
	return total, err
}

func (r *MySQLOrderRepo) UpsertLine(ctx context.Context, orderID, dishID int64, qty int, unitPriceCents int64) error {
	return r.withCartLock(ctx, orderID, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE order_lines SET quantity = quantity + ? WHERE order_id = ? AND dish_id = ?`,
			qty, orderID, dishID)
		if err != nil {
			return err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO order_lines (order_id, dish_id, quantity, unit_price_cents) VALUES (?, ?, ?, ?)`,
				orderID, dishID, qty, unitPriceCents); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *MySQLOrderRepo) DeleteLine(ctx context.Context, orderID, dishID int64) error {
	return r.withCartLock(ctx, orderID, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
DELETE FROM order_lines WHERE order_id = ? AND dish_id = ?`, orderID, dishID)
		if err != nil {
			return err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.NotFound("dish is not in the cart")
		}
		return nil
	})
}

func (r *MySQLOrderRepo) ClearLines(ctx context.Context, orderID int64) error {
	return r.withCartLock(ctx, orderID, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM order_lines WHERE order_id = ?`, orderID)
		return err
	})
}

// withCartLock runs fn inside a transaction holding the order's row lock,
// then recomputes total_cents from the surviving lines before committing.
// The row lock serializes concurrent cart edits for the same order, and the
// status check under the lock keeps a checkout that raced in from ever
// seeing new lines: once the order left in_cart its lines are frozen.
func (r *MySQLOrderRepo) withCartLock(ctx context.Context, orderID int64, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status domain.Status
	if err := tx.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE id = ? FOR UPDATE`, orderID).Scan(&status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFound("order %d not found", orderID)
		}
		return err
	}
	if status != domain.StatusInCart {
		return domain.InvalidState("order is no longer a cart")
	}

	if err := fn(tx); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
UPDATE orders SET total_cents = `+totalSubquery+` WHERE id = ?`, orderID, orderID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *MySQLOrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("order %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *MySQLOrderRepo) PlaceIf(ctx context.Context, orderID int64, address string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders SET status = ?, delivery_address = ? WHERE id = ? AND status = ?`,
		domain.StatusPlaced, address, orderID, domain.StatusInCart)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}

func (r *MySQLOrderRepo) ClaimIf(ctx context.Context, orderID, courierID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders SET courier_id = ?, status = ?
WHERE id = ? AND status = ? AND courier_id IS NULL`,
		courierID, domain.StatusInDelivery, orderID, domain.StatusPlaced)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	// rows == 0: wrong status or another courier already won
	return rows > 0, err
}

func (r *MySQLOrderRepo) UpdateStatusIf(ctx context.Context, orderID int64, from, to domain.Status) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders SET status = ? WHERE id = ? AND status = ?`, to, orderID, from)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}

func (r *MySQLOrderRepo) CompleteIf(ctx context.Context, orderID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders SET status = ?, user_confirmed = 1 WHERE id = ? AND status = ?`,
		domain.StatusCompleted, orderID, domain.StatusDelivered)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}

func (r *MySQLOrderRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return r.list(ctx, `
SELECT `+orderColumns+` FROM orders
WHERE user_id = ? AND status <> ? ORDER BY created_at DESC`, userID, domain.StatusInCart)
}

func (r *MySQLOrderRepo) ListAvailable(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, `
SELECT `+orderColumns+` FROM orders
WHERE status = ? AND courier_id IS NULL ORDER BY created_at`, domain.StatusPlaced)
}

func (r *MySQLOrderRepo) ListByCourier(ctx context.Context, courierID int64) ([]domain.Order, error) {
	return r.list(ctx, `
SELECT `+orderColumns+` FROM orders
WHERE courier_id = ? AND status IN (?, ?) ORDER BY created_at DESC`,
		courierID, domain.StatusInDelivery, domain.StatusDelivered)
}

func (r *MySQLOrderRepo) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range orders {
		if err := r.loadLines(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *MySQLOrderRepo) loadLines(ctx context.Context, order *domain.Order) error {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, order_id, dish_id, quantity, unit_price_cents
FROM order_lines WHERE order_id = ? ORDER BY id`, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.DishID, &l.Quantity, &l.UnitPriceCents); err != nil {
			return err
		}
		order.Lines = append(order.Lines, l)
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o       domain.Order
		courier sql.NullInt64
		address sql.NullString
	)
	if err := row.Scan(&o.ID, &o.UserID, &courier, &o.Status, &address,
		&o.TotalCents, &o.UserConfirmed, &o.CreatedAt); err != nil {
		return nil, err
	}
	if courier.Valid {
		o.CourierID = &courier.Int64
	}
	o.DeliveryAddress = address.String
	return &o, nil
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)
