package billing

import (
	"errors"
	"net/http"

	"rentercheck/internal/api"
	"rentercheck/internal/auth"
	"rentercheck/internal/identifier"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Gate a search request
// @Description  Charges for the identifiers in the request that were
// @Description  not already billed within the active window, then
// @Description  clears the search to proceed.
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        request body identifier.SearchInput true "Search input"
// @Success      200 {object} GateResult
// @Failure      400 {object} api.ErrorResponse
// @Failure      402 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /search/gate [post]
// @Security     BearerAuth
func (h *Handler) Gate(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "user not authenticated"})
		return
	}

	var input identifier.SearchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid search input"})
		return
	}

	result, err := h.service.Gate(c.Request.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrInsufficientCredits):
			c.JSON(http.StatusPaymentRequired, api.ErrorResponse{Error: "insufficient credits"})
		case errors.Is(err, ErrCostLookup):
			c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "cost configuration unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "billing failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
