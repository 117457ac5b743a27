package db

import (
	"context"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal().Msg("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid DATABASE_URL")
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal().Err(err).Msg("pgx pool init failed")
	}

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}

	log.Info().Msg("connected to PostgreSQL")

	if err := initSchema(pool); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize schema")
	}

	return pool
}

// initSchema creates or updates the database schema
func initSchema(pool *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// EMPLOYEES
	// -------------------------------
	employeesSQL := `
		CREATE TABLE IF NOT EXISTS employees (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'CASHIER',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, employeesSQL); err != nil {
		return err
	}

	// -------------------------------
	// MENU CATALOG
	// -------------------------------
	// Individual food items (sides, entrees, appetizers, drinks).
	menuItemsSQL := `
		CREATE TABLE IF NOT EXISTS menu_items (
			food_id SERIAL PRIMARY KEY,
			name VARCHAR(255) UNIQUE NOT NULL,
			category VARCHAR(50) NOT NULL,
			base_price NUMERIC(10,2) NOT NULL DEFAULT 0,
			is_premium BOOLEAN NOT NULL DEFAULT FALSE,
			in_stock BOOLEAN NOT NULL DEFAULT TRUE
		)
	`
	if _, err := pool.Exec(ctx, menuItemsSQL); err != nil {
		return err
	}

	// Sellable composite units ("Plate", "Bigger Plate", "Medium Side", ...).
	baseItemsSQL := `
		CREATE TABLE IF NOT EXISTS base_items (
			item_id SERIAL PRIMARY KEY,
			name VARCHAR(255) UNIQUE NOT NULL,
			price NUMERIC(10,2) NOT NULL DEFAULT 0
		)
	`
	if _, err := pool.Exec(ctx, baseItemsSQL); err != nil {
		return err
	}

	// -------------------------------
	// INVENTORY
	// -------------------------------
	inventorySQL := `
		CREATE TABLE IF NOT EXISTS inventory_food (
			food_id INT PRIMARY KEY REFERENCES menu_items(food_id),
			quantity INT NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS inventory_item_types (
			item_id INT PRIMARY KEY REFERENCES base_items(item_id),
			quantity INT NOT NULL DEFAULT 0
		)
	`
	if _, err := pool.Exec(ctx, inventorySQL); err != nil {
		return err
	}

	// -------------------------------
	// TRANSACTIONS
	// -------------------------------
	// Ids come from a sequence so two concurrent checkouts can never
	// allocate the same id.
	transactionsSQL := `
		CREATE SEQUENCE IF NOT EXISTS transaction_id_seq;

		CREATE TABLE IF NOT EXISTS transactions (
			id BIGINT PRIMARY KEY,
			employee_id INT NOT NULL REFERENCES employees(id),
			total NUMERIC(10,2) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			payment_method VARCHAR(50) NOT NULL
		);

		CREATE TABLE IF NOT EXISTS transaction_items (
			id SERIAL PRIMARY KEY,
			transaction_id BIGINT NOT NULL REFERENCES transactions(id),
			item_id INT NOT NULL,
			food1 INT NOT NULL DEFAULT 0,
			food2 INT NOT NULL DEFAULT 0,
			food3 INT NOT NULL DEFAULT 0,
			food4 INT NOT NULL DEFAULT 0
		)
	`
	if _, err := pool.Exec(ctx, transactionsSQL); err != nil {
		return err
	}

	log.Info().Msg("schema initialized")
	return nil
}
