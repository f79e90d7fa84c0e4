package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AinaRoxane/Wallet/internal/middleware"
	"github.com/AinaRoxane/Wallet/internal/repositories"
	"github.com/AinaRoxane/Wallet/internal/services"
	"github.com/AinaRoxane/Wallet/pkg/utils"
)

type NotificationController struct {
	notifications services.NotificationService
}

func NewNotificationController(notifications services.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

// GetFeed handles GET /api/notifications
func (ctrl *NotificationController) GetFeed(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	feed, err := ctrl.notifications.GetFeed(c.Request.Context(), identity)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to load notifications")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, feed)
}

// CountUnread handles GET /api/notifications/unread
func (ctrl *NotificationController) CountUnread(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	count, err := ctrl.notifications.CountUnread(c.Request.Context(), identity)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to count notifications")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"unread": count})
}

// MarkOpened handles PUT /api/notifications/:id/opened
func (ctrl *NotificationController) MarkOpened(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	id := c.Param("id")
	if err := ctrl.notifications.MarkOpened(c.Request.Context(), identity, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "notification not found")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to mark notification")
		return
	}

	utils.MessageResponse(c, http.StatusOK, "notification marked as opened")
}
