package database

import (
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"
)

func Connect() (*sqlx.DB, error) {
	dsn := viper.GetString("DB_DSN")
	return sqlx.Connect("pgx", dsn)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                   TEXT PRIMARY KEY,
		username             TEXT NOT NULL UNIQUE,
		password_hash        TEXT NOT NULL,
		name                 TEXT NOT NULL,
		role                 TEXT NOT NULL DEFAULT 'user',
		must_change_password BOOLEAN NOT NULL DEFAULT FALSE,
		created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS appliances (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		usage        DOUBLE PRECISION NOT NULL DEFAULT 0,
		user_id      TEXT NOT NULL REFERENCES users(id),
		voltage      DOUBLE PRECISION,
		current      DOUBLE PRECISION,
		power        DOUBLE PRECISION,
		frequency    DOUBLE PRECISION,
		power_factor DOUBLE PRECISION,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS readings (
		id           BIGSERIAL PRIMARY KEY,
		device_id    TEXT NOT NULL,
		timestamp    TIMESTAMPTZ NOT NULL,
		voltage      DOUBLE PRECISION NOT NULL,
		current      DOUBLE PRECISION NOT NULL,
		power        DOUBLE PRECISION NOT NULL,
		energy       DOUBLE PRECISION NOT NULL,
		frequency    DOUBLE PRECISION NOT NULL,
		power_factor DOUBLE PRECISION NOT NULL,
		status       TEXT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS readings_device_ts_idx ON readings (device_id, timestamp DESC)`,
}

// Migrate creates the schema if it does not exist yet. Statements are
// idempotent so it is safe to run on every startup.
func Migrate(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
