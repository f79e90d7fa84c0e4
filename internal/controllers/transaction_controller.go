package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/AinaRoxane/Wallet/internal/dto"
	"github.com/AinaRoxane/Wallet/internal/middleware"
	"github.com/AinaRoxane/Wallet/internal/models"
	"github.com/AinaRoxane/Wallet/internal/monitoring"
	"github.com/AinaRoxane/Wallet/internal/services"
	"github.com/AinaRoxane/Wallet/pkg/utils"
)

type TransactionController struct {
	transactions services.TransactionService
}

func NewTransactionController(transactions services.TransactionService) *TransactionController {
	return &TransactionController{transactions: transactions}
}

// Deposit handles POST /api/transactions/deposit
func (ctrl *TransactionController) Deposit(c *gin.Context) {
	ctrl.createIntent(c, ctrl.transactions.Deposit)
}

// Withdraw handles POST /api/transactions/withdrawal
func (ctrl *TransactionController) Withdraw(c *gin.Context) {
	ctrl.createIntent(c, ctrl.transactions.Withdraw)
}

func (ctrl *TransactionController) createIntent(
	c *gin.Context,
	create func(ctx context.Context, identity models.Identity, amount decimal.Decimal) (*models.Transaction, error),
) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := create(c.Request.Context(), identity, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount):
			utils.ErrorResponse(c, http.StatusBadRequest, "amount must be greater than zero")
		case errors.Is(err, services.ErrInsufficientFunds):
			utils.ErrorResponse(c, http.StatusUnprocessableEntity, "amount exceeds portfolio value")
		case errors.Is(err, services.ErrUserNotFound):
			utils.ErrorResponse(c, http.StatusNotFound, "user not found")
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "failed to record transaction")
		}
		return
	}

	monitoring.CountTransaction(tx.Type)
	utils.SuccessResponse(c, http.StatusCreated, tx)
}

// GetHistory handles GET /api/history
func (ctrl *TransactionController) GetHistory(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	entries, err := ctrl.transactions.GetHistory(c.Request.Context(), identity)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to load history")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, entries)
}
