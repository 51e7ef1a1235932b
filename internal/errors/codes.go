package errors

// Error code constants returned in the "error" field of error responses.
// Format: CATEGORY_SPECIFIC_DETAIL; the frontend maps these to messages.

const (
	// Authentication (AUTH_)
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"
	AuthWrongPassword      = "AUTH_WRONG_PASSWORD"

	// Authorization (AUTHZ_)
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"

	// Validation (VALIDATION_)
	ValidationInvalidInput     = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID        = "VALIDATION_INVALID_ID"
	ValidationReservedUsername = "VALIDATION_RESERVED_USERNAME"

	// Resources (RESOURCE_)
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"

	// Recipes (RECIPE_)
	RecipeNotFound         = "RECIPE_NOT_FOUND"
	RecipeNoTags           = "RECIPE_NO_TAGS"
	RecipeNoIngredients    = "RECIPE_NO_INGREDIENTS"
	RecipeDuplicateTag     = "RECIPE_DUPLICATE_TAG"
	RecipeDuplicateIngr    = "RECIPE_DUPLICATE_INGREDIENT"
	RecipeInvalidAmount    = "RECIPE_INVALID_AMOUNT"
	RecipeInvalidTime      = "RECIPE_INVALID_COOKING_TIME"
	RecipeInvalidImage     = "RECIPE_INVALID_IMAGE"
	RecipeUnknownTag       = "RECIPE_UNKNOWN_TAG"
	RecipeUnknownIngr      = "RECIPE_UNKNOWN_INGREDIENT"

	// Favorites / shopping cart (FAVORITE_, CART_)
	FavoriteAlreadyExists = "FAVORITE_ALREADY_EXISTS"
	FavoriteNotFound      = "FAVORITE_NOT_FOUND"
	CartItemAlreadyExists = "CART_ITEM_ALREADY_EXISTS"
	CartItemNotFound      = "CART_ITEM_NOT_FOUND"

	// Subscriptions (SUBSCRIPTION_)
	SubscriptionExists     = "SUBSCRIPTION_ALREADY_EXISTS"
	SubscriptionNotFound   = "SUBSCRIPTION_NOT_FOUND"
	SubscriptionSelfFollow = "SUBSCRIPTION_SELF_FOLLOW"

	// Users / reference data
	UserNotFound       = "USER_NOT_FOUND"
	TagNotFound        = "TAG_NOT_FOUND"
	IngredientNotFound = "INGREDIENT_NOT_FOUND"

	// Internal (INTERNAL_)
	InternalServerError = "INTERNAL_SERVER_ERROR"
	InternalExternalAPI = "INTERNAL_EXTERNAL_API"
)
