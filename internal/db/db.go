package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"demo-bank/internal/config"
)

// Open abre la base de datos SQLite embebida y aplica el esquema.
func Open(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", cfg.DatabasePath)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// SQLite serializa escrituras; una sola conexión evita SQLITE_BUSY.
	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(30 * time.Minute)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	if err := Migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// Migrate crea las tablas si todavía no existen.
func Migrate(ctx context.Context, conn *sql.DB) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS personal_info (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL UNIQUE REFERENCES users(id),
		middle_name TEXT,
		date_of_birth TEXT,
		social_insurance_number TEXT,
		marital_status TEXT,
		res_province TEXT,
		mailing_address TEXT,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tax_returns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id),
		external_return_id TEXT NOT NULL UNIQUE,
		tax_year INTEGER NOT NULL,
		status TEXT NOT NULL,
		last_event_type TEXT NOT NULL,
		last_event_id TEXT NOT NULL,
		last_event_at TEXT NOT NULL,
		payload TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := conn.ExecContext(ctx, schema)
	return err
}

// Ping verifica conectividad con la base de datos.
func Ping(ctx context.Context, conn *sql.DB) error {
	return conn.PingContext(ctx)
}
