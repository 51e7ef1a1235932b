package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorInfo is a parsed error: a stable code plus a user-facing message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts database errors into user-facing codes and messages.
// Constraint violations surfacing from concurrent duplicate writes map to
// the same already-exists outcomes the service-level checks produce.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	// Postgres unique constraint violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStrLower)
	}

	// Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "A referenced record does not exist",
		}
	}

	// Not null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "not-null constraint") {
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: "A required field is missing",
		}
	}

	// Connection level failures
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "A backing service is unavailable, please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "Something went wrong, please try again later",
	}
}

// parseDuplicateKeyError narrows a unique violation to its table. Postgres
// reports the index name, SQLite the table.column pair, so both are matched.
func parseDuplicateKeyError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "idx_users_email"), strings.Contains(errLower, "users.email"):
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "This email is already registered"}
	case strings.Contains(errLower, "idx_users_username"), strings.Contains(errLower, "users.username"):
		return ErrorInfo{Code: AuthUsernameExists, Message: "This username is already taken"}
	case strings.Contains(errLower, "idx_favorites_user_recipe"), strings.Contains(errLower, "favorites.user_id"):
		return ErrorInfo{Code: FavoriteAlreadyExists, Message: "Recipe is already in favorites"}
	case strings.Contains(errLower, "idx_cart_items_user_recipe"), strings.Contains(errLower, "cart_items.user_id"):
		return ErrorInfo{Code: CartItemAlreadyExists, Message: "Recipe is already in the shopping cart"}
	case strings.Contains(errLower, "idx_subscriptions_user_author"), strings.Contains(errLower, "subscriptions.user_id"):
		return ErrorInfo{Code: SubscriptionExists, Message: "Already subscribed to this author"}
	case strings.Contains(errLower, "idx_tags_name"), strings.Contains(errLower, "idx_tags_slug"),
		strings.Contains(errLower, "tags.name"), strings.Contains(errLower, "tags.slug"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "A tag with this name or slug already exists"}
	case strings.Contains(errLower, "idx_ingredients_name"), strings.Contains(errLower, "ingredients.name"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "An ingredient with this name already exists"}
	case strings.Contains(errLower, "idx_recipe_ingredients_recipe_ingredient"), strings.Contains(errLower, "recipe_ingredients.recipe_id"):
		return ErrorInfo{Code: RecipeDuplicateIngr, Message: "Ingredients must be unique per recipe"}
	default:
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "This record already exists"}
	}
}

// statusForCode returns the HTTP status a parsed code implies, or 0 when
// the code carries no client-fault status of its own.
func statusForCode(code string) int {
	switch code {
	case ResourceNotFound:
		return http.StatusNotFound
	case AuthEmailAlreadyExists, AuthUsernameExists,
		FavoriteAlreadyExists, CartItemAlreadyExists, SubscriptionExists,
		ResourceAlreadyExists, RecipeDuplicateIngr, ValidationInvalidInput:
		return http.StatusBadRequest
	default:
		return 0
	}
}

// ParseAndRespond parses err and writes the matching error response.
// Client faults surfacing from the database keep their 4xx status, so a
// duplicate row from a racing toggle answers 400 like the service-level
// check would; anything unclassified uses fallbackStatus.
func ParseAndRespond(c *gin.Context, fallbackStatus int, err error, context string) {
	errorInfo := ParseError(err, context)
	status := statusForCode(errorInfo.Code)
	if status == 0 {
		status = fallbackStatus
	}
	RespondWithError(c, status, errorInfo.Code, errorInfo.Message)
}

func notFoundMessage(context string) string {
	switch context {
	case "user":
		return "User not found"
	case "recipe":
		return "Recipe not found"
	case "tag":
		return "Tag not found"
	case "ingredient":
		return "Ingredient not found"
	case "subscription":
		return "Subscription not found"
	default:
		return "Record not found"
	}
}
