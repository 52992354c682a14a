package database

import (
	"context"
	"database/sql"
)

// schema lists the DDL for every table the API uses. Statements are
// idempotent so the server can run them on every start.
//
// Rentals carry denormalized customer/movie columns on purpose: a
// rental is a snapshot taken at checkout, not a join. There is no
// foreign key from rentals back to customers or movies.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name          VARCHAR(255) NOT NULL,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		is_admin      TINYINT(1) NOT NULL DEFAULT 0,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS customers (
		id      BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name    VARCHAR(50) NOT NULL,
		phone   VARCHAR(50) NOT NULL,
		is_gold TINYINT(1) NOT NULL DEFAULT 0
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS genres (
		id   BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS movies (
		id                BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		title             VARCHAR(50) NOT NULL,
		genre_id          BIGINT UNSIGNED NOT NULL,
		genre_name        VARCHAR(50) NOT NULL,
		number_in_stock   SMALLINT UNSIGNED NOT NULL DEFAULT 0,
		daily_rental_rate DECIMAL(8,2) NOT NULL DEFAULT 0
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS rentals (
		id               BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		customer_id      BIGINT UNSIGNED NOT NULL,
		customer_name    VARCHAR(50) NOT NULL,
		customer_phone   VARCHAR(50) NOT NULL,
		movie_id         BIGINT UNSIGNED NOT NULL,
		movie_title      VARCHAR(50) NOT NULL,
		movie_daily_rate DECIMAL(8,2) NOT NULL,
		date_out         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		date_returned    DATETIME NULL,
		rental_fee       DECIMAL(10,2) NULL,
		KEY idx_rentals_pair (customer_id, movie_id),
		KEY idx_rentals_date_out (date_out)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
