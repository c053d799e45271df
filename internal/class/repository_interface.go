package class

import (
	"context"
	"time"
)

type Repository interface {
	CreateClass(ctx context.Context, name string, date time.Time, startTime, endTime string, capacity, coachID int) (*Class, error)
	GetClassByID(ctx context.Context, id int) (*Class, error)
	UpdateClass(ctx context.Context, id int, name string, date time.Time, startTime, endTime string, capacity int) (*Class, error)
	DeleteClass(ctx context.Context, id int) error
	ListUpcoming(ctx context.Context, from time.Time) ([]Class, error)
	ListByDate(ctx context.Context, date time.Time) ([]Class, error)
	ExistsOnDate(ctx context.Context, date time.Time) (bool, error)
	HasActiveReservations(ctx context.Context, classID int) (bool, error)
}
