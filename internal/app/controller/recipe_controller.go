package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/recipehub/recipehub-backend/internal/app/model"
	"github.com/recipehub/recipehub-backend/internal/app/repository"
	"github.com/recipehub/recipehub-backend/internal/app/service"
	apperrors "github.com/recipehub/recipehub-backend/internal/errors"
	"github.com/recipehub/recipehub-backend/internal/middleware"
)

type RecipeController struct {
	recipeService   service.RecipeService
	favoriteService service.FavoriteService
	cartService     service.ShoppingCartService
}

func NewRecipeController(
	recipeService service.RecipeService,
	favoriteService service.FavoriteService,
	cartService service.ShoppingCartService,
) *RecipeController {
	return &RecipeController{
		recipeService:   recipeService,
		favoriteService: favoriteService,
		cartService:     cartService,
	}
}

type RecipeIngredientRequest struct {
	ID     uint `json:"id" binding:"required"`
	Amount int  `json:"amount" binding:"required"`
}

type CreateRecipeRequest struct {
	Name        string                    `json:"name" binding:"required,max=200"`
	Text        string                    `json:"text" binding:"required"`
	Image       string                    `json:"image" binding:"required"`
	CookingTime int                       `json:"cooking_time" binding:"required"`
	Tags        []uint                    `json:"tags" binding:"required"`
	Ingredients []RecipeIngredientRequest `json:"ingredients" binding:"required"`
}

type UpdateRecipeRequest struct {
	Name        *string                   `json:"name" binding:"omitempty,max=200"`
	Text        *string                   `json:"text"`
	Image       *string                   `json:"image"`
	CookingTime *int                      `json:"cooking_time"`
	Tags        []uint                    `json:"tags"`
	Ingredients []RecipeIngredientRequest `json:"ingredients"`
}

func toIngredientAmounts(items []RecipeIngredientRequest) []service.IngredientAmount {
	if items == nil {
		return nil
	}
	amounts := make([]service.IngredientAmount, 0, len(items))
	for _, item := range items {
		amounts = append(amounts, service.IngredientAmount{
			ID:     item.ID,
			Amount: item.Amount,
		})
	}
	return amounts
}

// writePipelineError maps a write-pipeline error to an HTTP status and
// error code; status 0 means the error is not a client fault
func writePipelineError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		return http.StatusNotFound, apperrors.RecipeNotFound
	case errors.Is(err, service.ErrNotRecipeOwner):
		return http.StatusForbidden, apperrors.AuthzOwnerOnly
	case errors.Is(err, service.ErrNoTags):
		return http.StatusBadRequest, apperrors.RecipeNoTags
	case errors.Is(err, service.ErrNoIngredients):
		return http.StatusBadRequest, apperrors.RecipeNoIngredients
	case errors.Is(err, service.ErrDuplicateTag):
		return http.StatusBadRequest, apperrors.RecipeDuplicateTag
	case errors.Is(err, service.ErrDuplicateIngredient):
		return http.StatusBadRequest, apperrors.RecipeDuplicateIngr
	case errors.Is(err, service.ErrInvalidAmount):
		return http.StatusBadRequest, apperrors.RecipeInvalidAmount
	case errors.Is(err, service.ErrInvalidCookingTime):
		return http.StatusBadRequest, apperrors.RecipeInvalidTime
	case errors.Is(err, service.ErrUnknownTag):
		return http.StatusBadRequest, apperrors.RecipeUnknownTag
	case errors.Is(err, service.ErrUnknownIngredient):
		return http.StatusBadRequest, apperrors.RecipeUnknownIngr
	case errors.Is(err, service.ErrInvalidImage):
		return http.StatusBadRequest, apperrors.RecipeInvalidImage
	}
	return 0, ""
}

// buildFilter assembles the repository filter from query parameters.
// Viewer-bound filters only apply to authenticated callers.
func buildFilter(c *gin.Context, viewerID *uint) repository.RecipeFilter {
	limit, offset := parsePagination(c)
	filter := repository.RecipeFilter{
		TagSlugs: c.QueryArray("tags"),
		Limit:    limit,
		Offset:   offset,
	}

	if idStr := c.Query("author"); idStr != "" {
		if id, err := strconv.ParseUint(idStr, 10, 32); err == nil {
			authorID := uint(id)
			filter.AuthorID = &authorID
		}
	}
	if viewerID != nil {
		if c.Query("is_favorited") == "1" {
			filter.FavoritedBy = viewerID
		}
		if c.Query("is_in_shopping_cart") == "1" {
			filter.InCartOf = viewerID
		}
	}
	return filter
}

// GetRecipes lists recipes, newest first, with optional filters
// GET /api/v1/recipes
func (ctrl *RecipeController) GetRecipes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	viewerID := middleware.GetOptionalUserID(c)
	filter := buildFilter(c, viewerID)

	recipes, count, err := ctrl.recipeService.GetRecipes(filter, viewerID)
	if err != nil {
		log.Error("Failed to fetch recipes", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch recipes")
		return
	}

	c.JSON(http.StatusOK, pagedResponse{
		Count:   count,
		Results: recipes,
	})
}

// GetRecipe returns one recipe
// GET /api/v1/recipes/:id
func (ctrl *RecipeController) GetRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid recipe ID")
		return
	}

	viewerID := middleware.GetOptionalUserID(c)

	recipe, err := ctrl.recipeService.GetRecipe(id, viewerID)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
			return
		}
		log.Error("Failed to fetch recipe", err, map[string]interface{}{
			"recipe_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch recipe")
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// CreateRecipe publishes a recipe
// POST /api/v1/recipes
func (ctrl *RecipeController) CreateRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid recipe creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	recipe, err := ctrl.recipeService.CreateRecipe(userID, service.RecipeInput{
		Name:        req.Name,
		Text:        req.Text,
		Image:       req.Image,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
		Ingredients: toIngredientAmounts(req.Ingredients),
	})
	if err != nil {
		if status, code := writePipelineError(err); status != 0 {
			log.Warn("Recipe creation rejected", map[string]interface{}{
				"user_id": userID,
				"reason":  err.Error(),
			})
			apperrors.RespondWithError(c, status, code, err.Error())
			return
		}
		log.Error("Failed to create recipe", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create recipe")
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

// UpdateRecipe edits a recipe; author or admin only
// PATCH /api/v1/recipes/:id
func (ctrl *RecipeController) UpdateRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid recipe ID")
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid recipe update request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	role, _ := middleware.GetUserRole(c)
	isAdmin := role == model.RoleAdmin

	recipe, err := ctrl.recipeService.UpdateRecipe(userID, isAdmin, id, service.RecipeUpdateInput{
		Name:        req.Name,
		Text:        req.Text,
		Image:       req.Image,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
		Ingredients: toIngredientAmounts(req.Ingredients),
	})
	if err != nil {
		if status, code := writePipelineError(err); status != 0 {
			log.Warn("Recipe update rejected", map[string]interface{}{
				"recipe_id": id,
				"user_id":   userID,
				"reason":    err.Error(),
			})
			apperrors.RespondWithError(c, status, code, err.Error())
			return
		}
		log.Error("Failed to update recipe", err, map[string]interface{}{
			"recipe_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update recipe")
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe removes a recipe; author or admin only
// DELETE /api/v1/recipes/:id
func (ctrl *RecipeController) DeleteRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid recipe ID")
		return
	}

	role, _ := middleware.GetUserRole(c)
	isAdmin := role == model.RoleAdmin

	if err := ctrl.recipeService.DeleteRecipe(userID, isAdmin, id); err != nil {
		if status, code := writePipelineError(err); status != 0 {
			apperrors.RespondWithError(c, status, code, err.Error())
			return
		}
		log.Error("Failed to delete recipe", err, map[string]interface{}{
			"recipe_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete recipe")
		return
	}

	log.Info("Recipe deleted", map[string]interface{}{
		"recipe_id": id,
		"user_id":   userID,
	})

	c.Status(http.StatusNoContent)
}

// Favorite adds a recipe to the caller's favorites
// POST /api/v1/recipes/:id/favorite
func (ctrl *RecipeController) Favorite(c *gin.Context) {
	ctrl.toggleOn(c, "favorite", func(userID, recipeID uint) (interface{}, error) {
		return ctrl.favoriteService.AddFavorite(userID, recipeID)
	}, service.ErrAlreadyFavorited, apperrors.FavoriteAlreadyExists)
}

// Unfavorite removes a recipe from the caller's favorites
// DELETE /api/v1/recipes/:id/favorite
func (ctrl *RecipeController) Unfavorite(c *gin.Context) {
	ctrl.toggleOff(c, "favorite", ctrl.favoriteService.RemoveFavorite, service.ErrNotFavorited, apperrors.FavoriteNotFound)
}

// AddToCart adds a recipe to the caller's shopping cart
// POST /api/v1/recipes/:id/shopping_cart
func (ctrl *RecipeController) AddToCart(c *gin.Context) {
	ctrl.toggleOn(c, "shopping cart", func(userID, recipeID uint) (interface{}, error) {
		return ctrl.cartService.AddToCart(userID, recipeID)
	}, service.ErrAlreadyInCart, apperrors.CartItemAlreadyExists)
}

// RemoveFromCart removes a recipe from the caller's shopping cart
// DELETE /api/v1/recipes/:id/shopping_cart
func (ctrl *RecipeController) RemoveFromCart(c *gin.Context) {
	ctrl.toggleOff(c, "shopping cart", ctrl.cartService.RemoveFromCart, service.ErrNotInCart, apperrors.CartItemNotFound)
}

// toggleOn is the shared add half of the favorite and cart toggles:
// 201 with a recipe preview, 400 on duplicates, 404 on missing recipes.
// Unclassified errors go through ParseAndRespond so a unique violation
// from a racing duplicate add still answers 400.
func (ctrl *RecipeController) toggleOn(c *gin.Context, relation string, add func(userID, recipeID uint) (interface{}, error), duplicateErr error, duplicateCode string) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	recipeID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid recipe ID")
		return
	}

	preview, err := add(userID, recipeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
		case errors.Is(err, duplicateErr):
			apperrors.BadRequest(c, duplicateCode, err.Error())
		default:
			log.Error("Failed to add recipe to "+relation, err, map[string]interface{}{
				"user_id":   userID,
				"recipe_id": recipeID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "add to "+relation)
		}
		return
	}

	c.JSON(http.StatusCreated, preview)
}

// toggleOff is the shared remove half: 204, 400 when absent, 404 on
// missing recipes
func (ctrl *RecipeController) toggleOff(c *gin.Context, relation string, remove func(userID, recipeID uint) error, absentErr error, absentCode string) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	recipeID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid recipe ID")
		return
	}

	if err := remove(userID, recipeID); err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
		case errors.Is(err, absentErr):
			apperrors.BadRequest(c, absentCode, err.Error())
		default:
			log.Error("Failed to remove recipe from "+relation, err, map[string]interface{}{
				"user_id":   userID,
				"recipe_id": recipeID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "remove from "+relation)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// DownloadShoppingCart returns the aggregated shopping list as a
// plain-text attachment
// GET /api/v1/recipes/download_shopping_cart
func (ctrl *RecipeController) DownloadShoppingCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	list, err := ctrl.cartService.BuildShoppingList(userID)
	if err != nil {
		log.Error("Failed to build shopping list", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "build shopping list")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping-list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(list))
}
