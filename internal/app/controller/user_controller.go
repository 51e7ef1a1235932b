package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/recipehub/recipehub-backend/internal/app/dto"
	"github.com/recipehub/recipehub-backend/internal/app/service"
	apperrors "github.com/recipehub/recipehub-backend/internal/errors"
	"github.com/recipehub/recipehub-backend/internal/middleware"
)

type UserController struct {
	userService         service.UserService
	authService         service.AuthService
	subscriptionService service.SubscriptionService
}

func NewUserController(
	userService service.UserService,
	authService service.AuthService,
	subscriptionService service.SubscriptionService,
) *UserController {
	return &UserController{
		userService:         userService,
		authService:         authService,
		subscriptionService: subscriptionService,
	}
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
}

// parseRecipesLimit reads ?recipes_limit; negative means unlimited
func parseRecipesLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("recipes_limit", "-1"))
	if err != nil || limit < 0 {
		return -1
	}
	return limit
}

// GetUsers lists user profiles
// GET /api/v1/users
func (ctrl *UserController) GetUsers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, offset := parsePagination(c)
	viewerID := middleware.GetOptionalUserID(c)

	users, count, err := ctrl.userService.GetUsers(limit, offset, viewerID)
	if err != nil {
		log.Error("Failed to fetch users", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch users")
		return
	}

	c.JSON(http.StatusOK, pagedResponse{
		Count:   count,
		Results: users,
	})
}

// GetUser returns one user profile
// GET /api/v1/users/:id
func (ctrl *UserController) GetUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid user ID")
		return
	}

	viewerID := middleware.GetOptionalUserID(c)

	user, err := ctrl.userService.GetUser(id, viewerID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
			return
		}
		log.Error("Failed to fetch user", err, map[string]interface{}{
			"user_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetMe returns the caller's own profile
// GET /api/v1/users/me
func (ctrl *UserController) GetMe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		log.Error("Failed to fetch profile", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch profile")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user, dto.Viewer{}))
}

// UpdateMe updates the caller's first and last name
// PUT /api/v1/users/me
func (ctrl *UserController) UpdateMe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid profile update request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	user, err := ctrl.authService.UpdateProfile(userID, req.FirstName, req.LastName)
	if err != nil {
		log.Error("Failed to update profile", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update profile")
		return
	}

	log.Info("Profile updated successfully", map[string]interface{}{
		"user_id": userID,
	})

	c.JSON(http.StatusOK, dto.ToUserResponse(user, dto.Viewer{}))
}

// Subscribe follows an author
// POST /api/v1/users/:id/subscribe
func (ctrl *UserController) Subscribe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	authorID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid user ID")
		return
	}

	card, err := ctrl.subscriptionService.Subscribe(userID, authorID, parseRecipesLimit(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
		case errors.Is(err, service.ErrSelfSubscription):
			log.Warn("Self-subscription rejected", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.BadRequest(c, apperrors.SubscriptionSelfFollow, "You cannot subscribe to yourself")
		case errors.Is(err, service.ErrAlreadySubscribed):
			apperrors.BadRequest(c, apperrors.SubscriptionExists, "Already subscribed to this author")
		default:
			log.Error("Failed to subscribe", err, map[string]interface{}{
				"user_id":   userID,
				"author_id": authorID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "subscribe")
		}
		return
	}

	c.JSON(http.StatusCreated, card)
}

// Unsubscribe unfollows an author
// DELETE /api/v1/users/:id/subscribe
func (ctrl *UserController) Unsubscribe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	authorID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid user ID")
		return
	}

	if err := ctrl.subscriptionService.Unsubscribe(userID, authorID); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
		case errors.Is(err, service.ErrNotSubscribed):
			apperrors.BadRequest(c, apperrors.SubscriptionNotFound, "Not subscribed to this author")
		default:
			log.Error("Failed to unsubscribe", err, map[string]interface{}{
				"user_id":   userID,
				"author_id": authorID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "unsubscribe")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSubscriptions lists the authors the caller follows
// GET /api/v1/users/subscriptions
func (ctrl *UserController) GetSubscriptions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	limit, offset := parsePagination(c)

	cards, count, err := ctrl.subscriptionService.GetSubscriptions(userID, limit, offset, parseRecipesLimit(c))
	if err != nil {
		log.Error("Failed to fetch subscriptions", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch subscriptions")
		return
	}

	c.JSON(http.StatusOK, pagedResponse{
		Count:   count,
		Results: cards,
	})
}
