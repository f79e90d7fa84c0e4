package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/AinaRoxane/Wallet/internal/middleware"
	"github.com/AinaRoxane/Wallet/internal/monitoring"
	"github.com/AinaRoxane/Wallet/internal/services"
	"github.com/AinaRoxane/Wallet/internal/streaming"
	"github.com/AinaRoxane/Wallet/pkg/utils"
)

type MarketController struct {
	portfolio services.PortfolioService
	favorites services.FavoritesService
	hub       *streaming.Hub
	upgrader  websocket.Upgrader
}

func NewMarketController(portfolio services.PortfolioService, favorites services.FavoritesService, hub *streaming.Hub) *MarketController {
	return &MarketController{
		portfolio: portfolio,
		favorites: favorites,
		hub:       hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Token auth happens before the upgrade; origins are not
			// meaningful for the mobile clients.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// GetFeeds handles GET /api/market/feeds
func (ctrl *MarketController) GetFeeds(c *gin.Context) {
	feeds, err := ctrl.portfolio.GetFeeds(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to load price feeds")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, feeds)
}

// Stream handles GET /api/market/stream, upgrading to a websocket that
// receives a full feed snapshot on every price change.
func (ctrl *MarketController) Stream(c *gin.Context) {
	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	monitoring.SetStreamClients(ctrl.hub.ClientCount() + 1)
	ctrl.hub.Register(conn)
	monitoring.SetStreamClients(ctrl.hub.ClientCount())
}

// ToggleFavorite handles PUT /api/favorites/:symbol
func (ctrl *MarketController) ToggleFavorite(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	symbol := c.Param("symbol")
	if symbol == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "symbol is required")
		return
	}

	result, err := ctrl.favorites.Toggle(c.Request.Context(), identity, symbol)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownSymbol):
			utils.ErrorResponse(c, http.StatusNotFound, "unknown asset symbol")
		case errors.Is(err, services.ErrUserNotFound):
			utils.ErrorResponse(c, http.StatusNotFound, "user not found")
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "failed to toggle favorite")
		}
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}
