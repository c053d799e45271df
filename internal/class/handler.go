package class

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

// ListUpcoming godoc
// @Summary      List upcoming classes
// @Description  Returns classes scheduled today or later, ordered by date and start time.
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Class
// @Failure      500  {object}  api.ErrorResponse
// @Router       /classes [get]
func (h *Handler) ListUpcoming(c *gin.Context) {
	classes, err := h.service.ListUpcoming(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch classes"})
		return
	}

	c.JSON(http.StatusOK, classes)
}

// ListToday godoc
// @Summary      List today's classes
// @Description  Returns classes scheduled for today, ordered by start time.
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Class
// @Failure      500  {object}  api.ErrorResponse
// @Router       /classes/today [get]
func (h *Handler) ListToday(c *gin.Context) {
	classes, err := h.service.ListToday(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch classes"})
		return
	}

	c.JSON(http.StatusOK, classes)
}

// Create godoc
// @Summary      Create class
// @Description  Schedules a new class owned by the authenticated coach.
// @Tags         classes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateClassRequest  true  "Class data"
// @Success      201      {object}  Class
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /classes [post]
func (h *Handler) Create(c *gin.Context) {
	coachID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	class, err := h.service.Create(c.Request.Context(), req, coachID)
	if err != nil {
		switch {
		case errors.Is(err, ErrCoachNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Coach not found"})
		case errors.Is(err, ErrDateTaken):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "A class is already scheduled on this date"})
		case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidTime):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid date or time format"})
		case errors.Is(err, ErrInvalidTimeRange):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "End time must be after start time"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create class"})
		}
		return
	}

	c.JSON(http.StatusCreated, class)
}

// Update godoc
// @Summary      Update class
// @Description  Overwrites name, date, times and capacity of a class. The coach is unchanged.
// @Tags         classes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        classID  path      int                 true  "Class ID"
// @Param        request  body      UpdateClassRequest  true  "Class data"
// @Success      200      {object}  Class
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /classes/{classID} [put]
func (h *Handler) Update(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	var req UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	class, err := h.service.Update(c.Request.Context(), classID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrClassNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Class not found"})
		case errors.Is(err, ErrDateTaken):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "A class is already scheduled on this date"})
		case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidTime):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid date or time format"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update class"})
		}
		return
	}

	c.JSON(http.StatusOK, class)
}

// Delete godoc
// @Summary      Delete class
// @Description  Removes a class. Fails while non-cancelled reservations reference it.
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Param        classID  path  int  true  "Class ID"
// @Success      204
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /classes/{classID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), classID); err != nil {
		switch {
		case errors.Is(err, ErrClassNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Class not found"})
		case errors.Is(err, ErrClassHasReservations):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Class has active reservations"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete class"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
