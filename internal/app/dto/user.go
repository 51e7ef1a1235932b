package dto

import (
	"github.com/recipehub/recipehub-backend/internal/app/model"
)

// Viewer carries the per-request flag sets resolved for the calling user.
// The zero value is a guest: nil map lookups yield false, so anonymous
// callers see is_favorited / is_in_shopping_cart / is_subscribed as false.
type Viewer struct {
	FavoriteRecipeIDs   map[uint]bool
	CartRecipeIDs       map[uint]bool
	SubscribedAuthorIDs map[uint]bool
}

// UserResponse is the profile read view
type UserResponse struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// ToUserResponse maps a user row to its profile read view
func ToUserResponse(user *model.User, viewer Viewer) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: viewer.SubscribedAuthorIDs[user.ID],
	}
}

// SubscriptionResponse is a followed author's profile plus their recipes
type SubscriptionResponse struct {
	ID           uint            `json:"id"`
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	IsSubscribed bool            `json:"is_subscribed"`
	Recipes      []RecipePreview `json:"recipes"`
	RecipesCount int64           `json:"recipes_count"`
}

// ToSubscriptionResponse maps a followed author with their recipes
func ToSubscriptionResponse(author *model.User, recipes []model.Recipe, recipesCount int64, viewer Viewer) SubscriptionResponse {
	previews := make([]RecipePreview, 0, len(recipes))
	for i := range recipes {
		previews = append(previews, ToRecipePreview(&recipes[i]))
	}

	return SubscriptionResponse{
		ID:           author.ID,
		Username:     author.Username,
		Email:        author.Email,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		IsSubscribed: viewer.SubscribedAuthorIDs[author.ID],
		Recipes:      previews,
		RecipesCount: recipesCount,
	}
}
