package wallet

import (
	"errors"
	"net/http"
	"strconv"

	"rentercheck/internal/api"
	"rentercheck/internal/auth"
	"rentercheck/internal/logger"
	"rentercheck/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo             Repository
	betaRefillAmount int64
}

func NewHandler(db *sqlx.DB, betaRefillAmount int64) *Handler {
	return &Handler{
		repo:             NewRepository(db),
		betaRefillAmount: betaRefillAmount,
	}
}

type AdjustRequest struct {
	Amount int64  `json:"amount" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// @Summary      Current credit balance
// @Tags         wallet
// @Produce      json
// @Success      200 {object} api.BalanceResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /wallet [get]
// @Security     BearerAuth
func (h *Handler) GetBalance(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "user not authenticated"})
		return
	}

	balance, err := h.repo.GetBalance(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load balance"})
		return
	}

	c.JSON(http.StatusOK, api.BalanceResponse{UserID: userID, Balance: balance})
}

// @Summary      Transaction history
// @Tags         wallet
// @Produce      json
// @Param        limit  query int false "Page size"  default(50)
// @Param        offset query int false "Page offset" default(0)
// @Success      200 {array}  Transaction
// @Failure      500 {object} api.ErrorResponse
// @Router       /wallet/transactions [get]
// @Security     BearerAuth
func (h *Handler) ListTransactions(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "user not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txs, err := h.repo.GetTransactions(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load transactions"})
		return
	}

	c.JSON(http.StatusOK, txs)
}

// @Summary      Beta credit refill
// @Description  Grants the fixed promotional bonus. Not idempotent.
// @Tags         wallet
// @Produce      json
// @Success      200 {object} api.BalanceResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /beta/refill [post]
// @Security     BearerAuth
func (h *Handler) BetaRefill(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "user not authenticated"})
		return
	}

	// Known gap: repeated calls grant repeated bonuses.
	logger.Warn("beta refill granted without idempotency key", "user_id", userID)

	newBalance, err := h.repo.BetaRefill(c.Request.Context(), userID, h.betaRefillAmount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to refill wallet"})
		return
	}

	metrics.RecordWalletAdjustment(TxTypeBonus)
	c.JSON(http.StatusOK, api.BalanceResponse{UserID: userID, Balance: newBalance})
}

// @Summary      Admin balance adjustment
// @Description  Applies a signed credit delta with a mandatory reason.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        userID  path int            true "User ID"
// @Param        request body AdjustRequest true "Adjustment"
// @Success      200 {object} api.BalanceResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/wallets/{userID}/adjust [post]
// @Security     BearerAuth
func (h *Handler) Adjust(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userID"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid user id"})
		return
	}

	var req AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "amount and reason are required"})
		return
	}

	newBalance, err := h.repo.Adjust(c.Request.Context(), userID, req.Amount, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyReason), errors.Is(err, ErrZeroDelta):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrInsufficientBalance):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "adjustment would make balance negative"})
		default:
			logger.Error("wallet adjustment failed", "user_id", userID, "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to adjust wallet"})
		}
		return
	}

	metrics.RecordWalletAdjustment(TxTypeAdjustment)
	logger.Info("wallet adjusted", "user_id", userID, "amount", req.Amount, "new_balance", newBalance)
	c.JSON(http.StatusOK, api.BalanceResponse{UserID: userID, Balance: newBalance})
}
