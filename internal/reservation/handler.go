package reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/javaqber/wodup-backend/internal/api"
	"github.com/javaqber/wodup-backend/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary      Book a class
// @Description  Creates a confirmed reservation for the authenticated athlete. Times default to the class schedule.
// @Tags         reservations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateReservationRequest  true  "Reservation data"
// @Success      201      {object}  Reservation
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /reservations [post]
func (h *Handler) Create(c *gin.Context) {
	email, ok := auth.GetUserEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	reservation, err := h.service.Create(c.Request.Context(), email, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAthleteNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Athlete not found"})
		case errors.Is(err, ErrClassNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Class not found"})
		case errors.Is(err, ErrInvalidTime), errors.Is(err, ErrClassHasNoTimes), errors.Is(err, ErrInvalidTimeRange):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrSlotCancelledBefore):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "You cannot re-book a slot you cancelled"})
		case errors.Is(err, ErrAlreadyReserved):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "You already have an active reservation for this class"})
		case errors.Is(err, ErrClassFull):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Class is full"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create reservation"})
		}
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// Cancel godoc
// @Summary      Cancel reservation
// @Description  Cancels a reservation of the authenticated athlete and returns a session to a finite subscription.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        reservationID  path      int  true  "Reservation ID"
// @Success      200            {object}  api.MessageResponse
// @Failure      400            {object}  api.ErrorResponse
// @Failure      403            {object}  api.ErrorResponse
// @Failure      404            {object}  api.ErrorResponse
// @Failure      500            {object}  api.ErrorResponse
// @Router       /reservations/{reservationID}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	athleteID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	reservationID, err := strconv.Atoi(c.Param("reservationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid reservation ID"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), reservationID, athleteID); err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Reservation not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You can only cancel your own reservations"})
		case errors.Is(err, ErrAlreadyCancelled):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Reservation is already cancelled"})
		case errors.Is(err, ErrCutoffPassed):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Too close to class start to cancel"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel reservation"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Reservation cancelled successfully"})
}

// ListMy godoc
// @Summary      List my reservations
// @Description  Returns all reservations of the authenticated athlete, cancelled included.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Reservation
// @Failure      500  {object}  api.ErrorResponse
// @Router       /reservations [get]
func (h *Handler) ListMy(c *gin.Context) {
	athleteID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	reservations, err := h.service.ListForAthlete(c.Request.Context(), athleteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}
