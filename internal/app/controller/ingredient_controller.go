package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipehub/recipehub-backend/internal/app/service"
	apperrors "github.com/recipehub/recipehub-backend/internal/errors"
	"github.com/recipehub/recipehub-backend/internal/middleware"
)

type IngredientController struct {
	ingredientService service.IngredientService
}

func NewIngredientController(ingredientService service.IngredientService) *IngredientController {
	return &IngredientController{
		ingredientService: ingredientService,
	}
}

// SearchIngredients lists ingredients, optionally filtered by a
// case-insensitive name prefix
// GET /api/v1/ingredients?name=
func (ctrl *IngredientController) SearchIngredients(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	namePrefix := c.Query("name")

	ingredients, err := ctrl.ingredientService.SearchIngredients(namePrefix)
	if err != nil {
		log.Error("Failed to search ingredients", err, map[string]interface{}{
			"name": namePrefix,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "search ingredients")
		return
	}

	c.JSON(http.StatusOK, ingredients)
}

// GetIngredient returns one ingredient
// GET /api/v1/ingredients/:id
func (ctrl *IngredientController) GetIngredient(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid ingredient ID")
		return
	}

	ingredient, err := ctrl.ingredientService.GetIngredient(id)
	if err != nil {
		if errors.Is(err, service.ErrIngredientNotFound) {
			apperrors.NotFound(c, apperrors.IngredientNotFound, "Ingredient not found")
			return
		}
		log.Error("Failed to fetch ingredient", err, map[string]interface{}{
			"ingredient_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch ingredient")
		return
	}

	c.JSON(http.StatusOK, ingredient)
}
