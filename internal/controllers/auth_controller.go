package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AinaRoxane/Wallet/internal/dto"
	"github.com/AinaRoxane/Wallet/internal/services"
	"github.com/AinaRoxane/Wallet/pkg/utils"
)

type AuthController struct {
	auth services.AuthService
}

func NewAuthController(auth services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register handles POST /api/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := ctrl.auth.Register(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			utils.ErrorResponse(c, http.StatusConflict, "email already registered")
			return
		}
		if isValidationError(err) {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to register")
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, result)
}

// Login handles POST /api/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := ctrl.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid email or password")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to log in")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}

// isValidationError distinguishes input problems from infrastructure
// failures so the status code stays honest.
func isValidationError(err error) bool {
	return errors.Is(err, utils.ErrEmailRequired) ||
		errors.Is(err, utils.ErrInvalidEmail) ||
		errors.Is(err, utils.ErrPasswordTooShort)
}
