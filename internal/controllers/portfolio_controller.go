package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AinaRoxane/Wallet/internal/middleware"
	"github.com/AinaRoxane/Wallet/internal/services"
	"github.com/AinaRoxane/Wallet/pkg/utils"
)

type PortfolioController struct {
	portfolio services.PortfolioService
}

func NewPortfolioController(portfolio services.PortfolioService) *PortfolioController {
	return &PortfolioController{portfolio: portfolio}
}

// GetValuation handles GET /api/portfolio
func (ctrl *PortfolioController) GetValuation(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	valuation, err := ctrl.portfolio.GetValuation(c.Request.Context(), identity)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "user not found")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to compute valuation")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, valuation)
}

// GetSnapshots handles GET /api/portfolio/snapshots
func (ctrl *PortfolioController) GetSnapshots(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	limit := int64(30)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			utils.ErrorResponse(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	snapshots, err := ctrl.portfolio.GetSnapshots(c.Request.Context(), identity, limit)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to load snapshots")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, snapshots)
}
