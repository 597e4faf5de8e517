package repo

import (
	"context"
	"database/sql"
	"fmt"
)

// EnsureSchema creates the tables this service owns. The generated
// open_flag column is 1 only while an order sits in_cart, so the
// (user_id, open_flag) unique key enforces one open cart per user while
// allowing any number of historical orders (NULLs don't collide).
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(64) NOT NULL UNIQUE,
			role VARCHAR(16) NOT NULL DEFAULT 'customer'
		)`,
		`CREATE TABLE IF NOT EXISTS restaurants (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			address VARCHAR(255) NOT NULL,
			description TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS dishes (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			restaurant_id BIGINT NOT NULL,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			price_cents BIGINT NOT NULL,
			photo_url VARCHAR(512) NULL,
			KEY idx_dishes_restaurant (restaurant_id),
			CONSTRAINT fk_dishes_restaurant FOREIGN KEY (restaurant_id) REFERENCES restaurants (id)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			courier_id BIGINT NULL,
			status VARCHAR(16) NOT NULL DEFAULT 'in_cart',
			delivery_address VARCHAR(255) NULL,
			total_cents BIGINT NOT NULL DEFAULT 0,
			user_confirmed TINYINT(1) NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			open_flag TINYINT AS (IF(status = 'in_cart', 1, NULL)) STORED,
			UNIQUE KEY uniq_open_cart (user_id, open_flag),
			KEY idx_orders_status (status),
			KEY idx_orders_courier (courier_id),
			CONSTRAINT fk_orders_user FOREIGN KEY (user_id) REFERENCES users (id),
			CONSTRAINT fk_orders_courier FOREIGN KEY (courier_id) REFERENCES users (id)
		)`,
		`CREATE TABLE IF NOT EXISTS order_lines (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			order_id BIGINT NOT NULL,
			dish_id BIGINT NOT NULL,
			quantity INT NOT NULL,
			unit_price_cents BIGINT NOT NULL,
			UNIQUE KEY uniq_order_dish (order_id, dish_id),
			CONSTRAINT fk_lines_order FOREIGN KEY (order_id) REFERENCES orders (id),
			CONSTRAINT fk_lines_dish FOREIGN KEY (dish_id) REFERENCES dishes (id)
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
