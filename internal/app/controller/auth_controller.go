package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipehub/recipehub-backend/internal/app/dto"
	"github.com/recipehub/recipehub-backend/internal/app/service"
	apperrors "github.com/recipehub/recipehub-backend/internal/errors"
	"github.com/recipehub/recipehub-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type RegisterRequest struct {
	Username  string `json:"username" binding:"required,max=150"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// registrationErrorCode maps registration rejections to error codes;
// empty string means the error is not a client fault
func registrationErrorCode(err error) string {
	switch {
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return apperrors.AuthEmailAlreadyExists
	case errors.Is(err, service.ErrUsernameAlreadyExists):
		return apperrors.AuthUsernameExists
	case errors.Is(err, service.ErrReservedUsername):
		return apperrors.ValidationReservedUsername
	case errors.Is(err, service.ErrInvalidUsername):
		return apperrors.ValidationInvalidInput
	}
	return ""
}

// Register creates a user account
// POST /api/v1/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	user, tokens, err := ctrl.authService.Register(req.Username, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if code := registrationErrorCode(err); code != "" {
			log.Warn("Registration rejected", map[string]interface{}{
				"username": req.Username,
				"email":    req.Email,
				"reason":   err.Error(),
			})
			apperrors.BadRequest(c, code, err.Error())
			return
		}
		log.Error("Failed to register user", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "register user")
		return
	}

	log.Info("User registered successfully", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})

	c.JSON(http.StatusCreated, gin.H{
		"user":   dto.ToUserResponse(user, dto.Viewer{}),
		"tokens": tokens,
	})
}

// Login authenticates by email and password
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	user, tokens, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warn("Login failed: invalid credentials", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Invalid email or password")
			return
		}
		log.Error("Failed to log in", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "log in")
		return
	}

	log.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"user":   dto.ToUserResponse(user, dto.Viewer{}),
		"tokens": tokens,
	})
}

// SetPassword changes the caller's password
// POST /api/v1/auth/set_password
func (ctrl *AuthController) SetPassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid password change request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	if err := ctrl.authService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			log.Warn("Password change rejected: wrong current password", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.BadRequest(c, apperrors.AuthWrongPassword, "Current password is incorrect")
			return
		}
		log.Error("Failed to change password", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "change password")
		return
	}

	log.Info("Password changed successfully", map[string]interface{}{
		"user_id": userID,
	})

	c.Status(http.StatusNoContent)
}
