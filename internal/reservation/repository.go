package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrReservationNotFoundOrCancelled = errors.New("reservation not found or already cancelled")
	ErrDuplicateActiveReservation     = errors.New("athlete already holds an active reservation for this class")
)

const uniqueViolation = "23505"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateReservation(ctx context.Context, athleteID, classID int, startTime, endTime string, createdAt time.Time) (*Reservation, error) {
	query := `
		INSERT INTO reservations (athlete_id, class_id, start_time, end_time, status, created_at)
		VALUES ($1, $2, $3, $4, 'confirmed', $5)
		RETURNING id, athlete_id, class_id, start_time, end_time, status, created_at
	`

	var reservation Reservation
	err := r.db.GetContext(ctx, &reservation, query, athleteID, classID, startTime, endTime, createdAt)
	if err != nil {
		// The partial unique index on (athlete_id, class_id) for non-cancelled
		// rows backstops the application-level check under concurrency.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateActiveReservation
		}
		return nil, err
	}

	return &reservation, nil
}

func (r *repository) GetReservationByID(ctx context.Context, id int) (*Reservation, error) {
	query := `
		SELECT id, athlete_id, class_id, start_time, end_time, status, created_at
		FROM reservations
		WHERE id = $1
	`

	var reservation Reservation
	err := r.db.GetContext(ctx, &reservation, query, id)
	if err != nil {
		return nil, err
	}

	return &reservation, nil
}

func (r *repository) CancelReservation(ctx context.Context, id int) error {
	query := `
		UPDATE reservations
		SET status = 'cancelled'
		WHERE id = $1 AND status <> 'cancelled'
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrReservationNotFoundOrCancelled
	}

	return nil
}

func (r *repository) ListByAthlete(ctx context.Context, athleteID int) ([]Reservation, error) {
	query := `
		SELECT id, athlete_id, class_id, start_time, end_time, status, created_at
		FROM reservations
		WHERE athlete_id = $1
		ORDER BY created_at DESC
	`

	var reservations []Reservation
	err := r.db.SelectContext(ctx, &reservations, query, athleteID)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}

func (r *repository) CountForClassSlot(ctx context.Context, classID int, startTime string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM reservations
		WHERE class_id = $1 AND start_time = $2
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, classID, startTime)
	if err != nil {
		return 0, err
	}

	return count, nil
}
