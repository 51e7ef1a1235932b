package dto

import (
	"github.com/recipehub/recipehub-backend/internal/app/model"
)

// TagResponse is the tag read view
type TagResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

// RecipeIngredientResponse flattens the join row with the ingredient's
// name and unit; no raw foreign keys are exposed.
type RecipeIngredientResponse struct {
	ID              uint   `json:"id"` // ingredient id
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipePreview is the reduced representation used by the toggle actions
// and the subscriptions listing
type RecipePreview struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// RecipeResponse is the full recipe read view
type RecipeResponse struct {
	ID               uint                       `json:"id"`
	Tags             []TagResponse              `json:"tags"`
	Author           UserResponse               `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
}

func ToTagResponse(tag *model.Tag) TagResponse {
	return TagResponse{
		ID:    tag.ID,
		Name:  tag.Name,
		Color: tag.Color,
		Slug:  tag.Slug,
	}
}

func ToRecipePreview(recipe *model.Recipe) RecipePreview {
	return RecipePreview{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

// ToRecipeResponse maps a recipe row (tags and ingredient joins preloaded)
// to its full read view with the viewer's flags resolved
func ToRecipeResponse(recipe *model.Recipe, viewer Viewer) RecipeResponse {
	tags := make([]TagResponse, 0, len(recipe.Tags))
	for i := range recipe.Tags {
		tags = append(tags, ToTagResponse(&recipe.Tags[i]))
	}

	ingredients := make([]RecipeIngredientResponse, 0, len(recipe.Ingredients))
	for _, row := range recipe.Ingredients {
		ingredients = append(ingredients, RecipeIngredientResponse{
			ID:              row.IngredientID,
			Name:            row.Ingredient.Name,
			MeasurementUnit: row.Ingredient.MeasurementUnit,
			Amount:          row.Amount,
		})
	}

	return RecipeResponse{
		ID:               recipe.ID,
		Tags:             tags,
		Author:           ToUserResponse(&recipe.Author, viewer),
		Ingredients:      ingredients,
		IsFavorited:      viewer.FavoriteRecipeIDs[recipe.ID],
		IsInShoppingCart: viewer.CartRecipeIDs[recipe.ID],
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}
}

// ToRecipeResponses maps a recipe list with a shared viewer context
func ToRecipeResponses(recipes []model.Recipe, viewer Viewer) []RecipeResponse {
	responses := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		responses = append(responses, ToRecipeResponse(&recipes[i], viewer))
	}
	return responses
}
