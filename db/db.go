package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = `
CREATE TABLE IF NOT EXISTS payment_attempts (
	payment_id VARCHAR(255) PRIMARY KEY,
	order_id VARCHAR(255) NOT NULL,
	event_id VARCHAR(255) NOT NULL,
	seat_id VARCHAR(255) NOT NULL,
	seat_code VARCHAR(255) NOT NULL,
	amount INT NOT NULL,
	outcome VARCHAR(64) NOT NULL,
	reservation_id VARCHAR(255) NOT NULL DEFAULT '',
	message TEXT NOT NULL DEFAULT '',
	requires_reconciliation BOOLEAN NOT NULL DEFAULT FALSE,
	occurred_at TIMESTAMPTZ NOT NULL
);
`

func InitializeDatabaseSchema(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("could not initialize database schema: %w", err)
	}
	return nil
}
