package reservation

import (
	"context"
	"time"
)

type Repository interface {
	CreateReservation(ctx context.Context, athleteID, classID int, startTime, endTime string, createdAt time.Time) (*Reservation, error)
	GetReservationByID(ctx context.Context, id int) (*Reservation, error)
	CancelReservation(ctx context.Context, id int) error
	ListByAthlete(ctx context.Context, athleteID int) ([]Reservation, error)
	CountForClassSlot(ctx context.Context, classID int, startTime string) (int, error)
}
