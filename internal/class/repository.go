package class

import (
	"context"
	"errors"
	"time"

	"github.com/javaqber/wodup-backend/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrClassNotFoundInStore = errors.New("class not found")
	ErrDuplicateClassDate   = errors.New("a class already exists on this date")
	ErrClassReferenced      = errors.New("class is referenced by reservations")
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) CreateClass(ctx context.Context, name string, date time.Time, startTime, endTime string, capacity, coachID int) (*Class, error) {
	query := `
		INSERT INTO classes (name, date, start_time, end_time, capacity, coach_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, date, start_time, end_time, capacity, coach_id, created_at
	`

	var class Class
	err := r.db.GetContext(ctx, &class, query, name, date, startTime, endTime, capacity, coachID)
	if err != nil {
		// classes_date_idx backstops the exists-on-date check under concurrency.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateClassDate
		}
		return nil, err
	}

	return &class, nil
}

func (r *repository) GetClassByID(ctx context.Context, id int) (*Class, error) {
	query := `
		SELECT id, name, date, start_time, end_time, capacity, coach_id, created_at
		FROM classes
		WHERE id = $1
	`

	var class Class
	err := r.db.GetContext(ctx, &class, query, id)
	if err != nil {
		return nil, err
	}

	return &class, nil
}

func (r *repository) UpdateClass(ctx context.Context, id int, name string, date time.Time, startTime, endTime string, capacity int) (*Class, error) {
	query := `
		UPDATE classes
		SET name = $2, date = $3, start_time = $4, end_time = $5, capacity = $6
		WHERE id = $1
		RETURNING id, name, date, start_time, end_time, capacity, coach_id, created_at
	`

	var class Class
	err := r.db.GetContext(ctx, &class, query, id, name, date, startTime, endTime, capacity)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateClassDate
		}
		return nil, err
	}

	return &class, nil
}

func (r *repository) DeleteClass(ctx context.Context, id int) error {
	query := `DELETE FROM classes WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		// Cancelled reservations keep their class_id forever, so a class with
		// any reservation history trips the foreign key even after the
		// active-reservation guard passes.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return ErrClassReferenced
		}
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrClassNotFoundInStore
	}

	return nil
}

func (r *repository) ListUpcoming(ctx context.Context, from time.Time) ([]Class, error) {
	query := `
		SELECT id, name, date, start_time, end_time, capacity, coach_id, created_at
		FROM classes
		WHERE date >= $1
		ORDER BY date ASC, start_time ASC
	`

	var classes []Class
	err := r.db.SelectContext(ctx, &classes, query, from)
	if err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *repository) ListByDate(ctx context.Context, date time.Time) ([]Class, error) {
	query := `
		SELECT id, name, date, start_time, end_time, capacity, coach_id, created_at
		FROM classes
		WHERE date = $1
		ORDER BY start_time ASC
	`

	var classes []Class
	err := r.db.SelectContext(ctx, &classes, query, date)
	if err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *repository) ExistsOnDate(ctx context.Context, date time.Time) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM classes WHERE date = $1)`
	return db.Exists(ctx, r.db, query, date)
}

func (r *repository) HasActiveReservations(ctx context.Context, classID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM reservations
			WHERE class_id = $1 AND status <> 'cancelled'
		)
	`
	return db.Exists(ctx, r.db, query, classID)
}
