package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AinaRoxane/Wallet/internal/dto"
	"github.com/AinaRoxane/Wallet/internal/middleware"
	"github.com/AinaRoxane/Wallet/internal/services"
	"github.com/AinaRoxane/Wallet/pkg/utils"
)

type ProfileController struct {
	profile       services.ProfileService
	maxUploadSize int64
}

func NewProfileController(profile services.ProfileService, maxUploadSize int64) *ProfileController {
	return &ProfileController{
		profile:       profile,
		maxUploadSize: maxUploadSize,
	}
}

// Get handles GET /api/profile
func (ctrl *ProfileController) Get(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := ctrl.profile.Get(c.Request.Context(), identity)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "user not found")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to load profile")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, user)
}

// UpdateFullName handles PUT /api/profile/name
func (ctrl *ProfileController) UpdateFullName(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req dto.UpdateFullNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := ctrl.profile.UpdateFullName(c.Request.Context(), identity, req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyFullName):
			utils.ErrorResponse(c, http.StatusBadRequest, "full name must not be empty")
		case errors.Is(err, services.ErrUserNotFound):
			utils.ErrorResponse(c, http.StatusNotFound, "user not found")
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "failed to update name")
		}
		return
	}

	utils.SuccessResponse(c, http.StatusOK, user)
}

// UploadPhoto handles POST /api/profile/photo
func (ctrl *ProfileController) UploadPhoto(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ctrl.maxUploadSize)

	header, err := c.FormFile("photo")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "photo file is required")
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read photo")
		return
	}
	defer file.Close()

	url, err := ctrl.profile.UpdatePhoto(c.Request.Context(), identity, header.Filename, file)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "user not found")
			return
		}
		utils.ErrorResponse(c, http.StatusBadGateway, "failed to upload photo")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"profile_pic": url})
}
