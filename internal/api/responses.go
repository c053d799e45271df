// Package api holds the response envelopes shared by every handler.
package api

type ErrorResponse struct {
	Error string `json:"error" example:"class is full"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Reservation cancelled successfully"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
