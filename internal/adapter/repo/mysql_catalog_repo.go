package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/MAKHFIRAT2408/food/internal/entity"
	"github.com/MAKHFIRAT2408/food/internal/usecase"
)

// MySQLCatalogRepo serves restaurant and dish reads. Writes go through the
// admin tooling, not this service.
type MySQLCatalogRepo struct{ db *sql.DB }

func NewMySQLCatalogRepo(db *sql.DB) *MySQLCatalogRepo { return &MySQLCatalogRepo{db: db} }

const dishColumns = `id, restaurant_id, name, COALESCE(description, ''), price_cents, COALESCE(photo_url, '')`

func (r *MySQLCatalogRepo) GetDish(ctx context.Context, id int64) (*domain.Dish, error) {
	var d domain.Dish
	err := r.db.QueryRowContext(ctx, `
SELECT `+dishColumns+` FROM dishes WHERE id = ?`, id).
		Scan(&d.ID, &d.RestaurantID, &d.Name, &d.Description, &d.PriceCents, &d.PhotoURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("dish %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDishes returns all dishes, or only one restaurant's when
// restaurantID > 0.
func (r *MySQLCatalogRepo) ListDishes(ctx context.Context, restaurantID int64) ([]domain.Dish, error) {
	query := `SELECT ` + dishColumns + ` FROM dishes ORDER BY id`
	args := []any{}
	if restaurantID > 0 {
		query = `SELECT ` + dishColumns + ` FROM dishes WHERE restaurant_id = ? ORDER BY id`
		args = append(args, restaurantID)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dishes []domain.Dish
	for rows.Next() {
		var d domain.Dish
		if err := rows.Scan(&d.ID, &d.RestaurantID, &d.Name, &d.Description, &d.PriceCents, &d.PhotoURL); err != nil {
			return nil, err
		}
		dishes = append(dishes, d)
	}
	return dishes, rows.Err()
}

func (r *MySQLCatalogRepo) GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, address, COALESCE(description, '') FROM restaurants WHERE id = ?`, id).
		Scan(&rest.ID, &rest.Name, &rest.Address, &rest.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("restaurant %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *MySQLCatalogRepo) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, address, COALESCE(description, '') FROM restaurants ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Address, &rest.Description); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, rows.Err()
}

var _ usecase.DishCatalog = (*MySQLCatalogRepo)(nil)
