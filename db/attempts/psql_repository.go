package attempts

import (
	"context"

	"github.com/jmoiron/sqlx"

	"boxoffice/entity"
)

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Store(ctx context.Context, record entity.AttemptRecord) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO payment_attempts (
			payment_id, order_id, event_id, seat_id, seat_code, amount,
			outcome, reservation_id, message, requires_reconciliation, occurred_at
		)
		VALUES (
			:payment_id, :order_id, :event_id, :seat_id, :seat_code, :amount,
			:outcome, :reservation_id, :message, :requires_reconciliation, :occurred_at
		)
		ON CONFLICT (payment_id) DO NOTHING -- ignore redelivered events
	`, record)
	return err
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]entity.AttemptRecord, error) {
	var records []entity.AttemptRecord
	err := r.db.SelectContext(ctx, &records, `
		SELECT payment_id, order_id, event_id, seat_id, seat_code, amount,
		       outcome, reservation_id, message, requires_reconciliation, occurred_at
		FROM payment_attempts
		ORDER BY occurred_at DESC
	`)
	return records, err
}

func (r *PostgresRepository) FindRequiringReconciliation(ctx context.Context) ([]entity.AttemptRecord, error) {
	var records []entity.AttemptRecord
	err := r.db.SelectContext(ctx, &records, `
		SELECT payment_id, order_id, event_id, seat_id, seat_code, amount,
		       outcome, reservation_id, message, requires_reconciliation, occurred_at
		FROM payment_attempts
		WHERE requires_reconciliation
		ORDER BY occurred_at DESC
	`)
	return records, err
}
