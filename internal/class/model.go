package class

import "time"

// Class is a scheduled session on a single calendar date. Start and end are
// times of day in "15:04:05" form; the schedule allows at most one class per
// date.
type Class struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Date      time.Time `db:"date" json:"date"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	Capacity  int       `db:"capacity" json:"capacity"`
	CoachID   int       `db:"coach_id" json:"coach_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateClassRequest struct {
	Name      string `json:"name" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Capacity  int    `json:"capacity" binding:"required,min=1"`
}

type UpdateClassRequest struct {
	Name      string `json:"name" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Capacity  int    `json:"capacity" binding:"required,min=1"`
}
