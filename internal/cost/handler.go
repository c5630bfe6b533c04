package cost

import (
	"errors"
	"net/http"

	"rentercheck/internal/api"
	"rentercheck/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo     Repository
	resolver *Resolver
}

func NewHandler(db *sqlx.DB, resolver *Resolver) *Handler {
	return &Handler{
		repo:     NewRepository(db),
		resolver: resolver,
	}
}

type UpsertCostRequest struct {
	ActionName  string `json:"action_name" binding:"required"`
	Cost        *int64 `json:"cost" binding:"required"`
	Description string `json:"description"`
}

type ToggleRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// @Summary      List action costs
// @Tags         admin
// @Produce      json
// @Success      200 {array}  ActionCost
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/costs [get]
// @Security     BearerAuth
func (h *Handler) List(c *gin.Context) {
	costs, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load action costs"})
		return
	}

	c.JSON(http.StatusOK, costs)
}

// @Summary      Create or update an action cost
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        actionKey path string            true "Action key"
// @Param        request   body UpsertCostRequest true "Cost"
// @Success      200 {object} ActionCost
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/costs/{actionKey} [put]
// @Security     BearerAuth
func (h *Handler) Upsert(c *gin.Context) {
	actionKey := c.Param("actionKey")

	var req UpsertCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "action_name and cost are required"})
		return
	}
	if *req.Cost < 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "cost must be non-negative"})
		return
	}

	ac, err := h.repo.Upsert(c.Request.Context(), actionKey, req.ActionName, *req.Cost, req.Description)
	if err != nil {
		logger.Error("cost upsert failed", "action", actionKey, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to save action cost"})
		return
	}

	h.resolver.Invalidate(c.Request.Context(), actionKey)
	logger.Info("action cost updated", "action", actionKey, "cost", *req.Cost)
	c.JSON(http.StatusOK, ac)
}

// @Summary      Toggle an action cost active flag
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        actionKey path string         true "Action key"
// @Param        request   body ToggleRequest true "Flag"
// @Success      200 {object} ActionCost
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/costs/{actionKey}/toggle [post]
// @Security     BearerAuth
func (h *Handler) Toggle(c *gin.Context) {
	actionKey := c.Param("actionKey")

	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "is_active is required"})
		return
	}

	ac, err := h.repo.SetActive(c.Request.Context(), actionKey, *req.IsActive)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "action cost not found"})
			return
		}
		logger.Error("cost toggle failed", "action", actionKey, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to toggle action cost"})
		return
	}

	h.resolver.Invalidate(c.Request.Context(), actionKey)
	c.JSON(http.StatusOK, ac)
}
