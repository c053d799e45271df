package subscription

import (
	"net/http"

	"github.com/javaqber/wodup-backend/internal/api"
	"github.com/javaqber/wodup-backend/internal/auth"
	"github.com/javaqber/wodup-backend/internal/logger"
	"github.com/javaqber/wodup-backend/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{
		repo: NewRepository(db),
	}
}

type CreateSubscriptionRequest struct {
	TariffID int `json:"tariff_id" binding:"required"`
}

// ListTariffs godoc
// @Summary      List tariffs
// @Description  Returns the tariff catalog.
// @Tags         subscriptions
// @Produce      json
// @Success      200  {array}   Tariff
// @Failure      500  {object}  api.ErrorResponse
// @Router       /tariffs [get]
func (h *Handler) ListTariffs(c *gin.Context) {
	tariffs, err := h.repo.ListTariffs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load tariffs"})
		return
	}

	c.JSON(http.StatusOK, tariffs)
}

// Create godoc
// @Summary      Create subscription
// @Description  Subscribes the authenticated athlete to a tariff.
// @Tags         subscriptions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateSubscriptionRequest  true  "Subscription data"
// @Success      201      {object}  Subscription
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /subscriptions [post]
func (h *Handler) Create(c *gin.Context) {
	athleteID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()

	tariff, err := h.repo.GetTariffByID(ctx, req.TariffID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "tariff not found"})
		return
	}

	sub, err := h.repo.CreateSubscription(ctx, athleteID, tariff)
	if err != nil {
		logger.Errorf("Failed to create subscription for athlete %d: %v", athleteID, err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create subscription"})
		return
	}

	logger.Infof("Subscription created: Tariff=%s, Athlete=%d", tariff.Name, athleteID)
	metrics.RecordSubscription(tariff.Name)

	c.JSON(http.StatusCreated, sub)
}

// ListMy godoc
// @Summary      List my subscriptions
// @Description  Returns subscriptions of the authenticated athlete.
// @Tags         subscriptions
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Subscription
// @Failure      500  {object}  api.ErrorResponse
// @Router       /subscriptions [get]
func (h *Handler) ListMy(c *gin.Context) {
	athleteID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	subs, err := h.repo.ListByAthlete(c.Request.Context(), athleteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load subscriptions"})
		return
	}

	c.JSON(http.StatusOK, subs)
}
