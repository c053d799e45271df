package reservation

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Reservation is an athlete's claim on a class. Start and end are times of
// day; they default to the class times but may be overridden at booking.
// Cancelled reservations are kept forever, they block re-booking the same
// slot.
type Reservation struct {
	ID        int       `db:"id" json:"id"`
	AthleteID int       `db:"athlete_id" json:"athlete_id"`
	ClassID   int       `db:"class_id" json:"class_id"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (r *Reservation) Active() bool {
	return r.Status != StatusCancelled
}

type CreateReservationRequest struct {
	ClassID   int    `json:"class_id" binding:"required"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}
