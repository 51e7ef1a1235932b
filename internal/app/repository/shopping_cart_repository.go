package repository

import (
	"github.com/recipehub/recipehub-backend/internal/app/model"
	"github.com/recipehub/recipehub-backend/pkg/logger"
	"gorm.io/gorm"
)

// IngredientTotal is one grouped-sum row of the shopping list
type IngredientTotal struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Total           int    `json:"total"`
}

type ShoppingCartRepository interface {
	Create(item *model.ShoppingCartItem) error
	FindByUserAndRecipe(userID, recipeID uint) (*model.ShoppingCartItem, error)
	FindRecipeIDsByUser(userID uint) ([]uint, error)
	SumIngredientsByUser(userID uint) ([]IngredientTotal, error)
	Delete(userID, recipeID uint) error
}

type shoppingCartRepository struct {
	db *gorm.DB
}

func NewShoppingCartRepository(db *gorm.DB) ShoppingCartRepository {
	return &shoppingCartRepository{db: db}
}

func (r *shoppingCartRepository) Create(item *model.ShoppingCartItem) error {
	logger.Debug("Creating shopping cart item in database", map[string]interface{}{
		"user_id":   item.UserID,
		"recipe_id": item.RecipeID,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create shopping cart item in database", err, map[string]interface{}{
			"user_id":   item.UserID,
			"recipe_id": item.RecipeID,
		})
		return err
	}
	return nil
}

func (r *shoppingCartRepository) FindByUserAndRecipe(userID, recipeID uint) (*model.ShoppingCartItem, error) {
	var item model.ShoppingCartItem
	err := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindRecipeIDsByUser returns the IDs of every recipe in the user's cart
func (r *shoppingCartRepository) FindRecipeIDsByUser(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.ShoppingCartItem{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		logger.Error("Failed to find cart recipe IDs", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return ids, nil
}

// SumIngredientsByUser gathers every ingredient row belonging to any
// recipe in the user's cart, grouped by (name, unit) with summed amounts,
// ordered by name. An empty cart yields an empty slice, not an error.
func (r *shoppingCartRepository) SumIngredientsByUser(userID uint) ([]IngredientTotal, error) {
	logger.Debug("Aggregating shopping list ingredients", map[string]interface{}{
		"user_id": userID,
	})

	var totals []IngredientTotal
	err := r.db.Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_cart_items ON shopping_cart_items.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_cart_items.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC").
		Scan(&totals).Error
	if err != nil {
		logger.Error("Failed to aggregate shopping list ingredients", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Shopping list aggregated", map[string]interface{}{
		"user_id": userID,
		"rows":    len(totals),
	})
	return totals, nil
}

func (r *shoppingCartRepository) Delete(userID, recipeID uint) error {
	logger.Debug("Deleting shopping cart item from database", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
	})

	if err := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&model.ShoppingCartItem{}).Error; err != nil {
		logger.Error("Failed to delete shopping cart item from database", err, map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return err
	}
	return nil
}
