package repository

import (
	"github.com/recipehub/recipehub-backend/internal/app/model"
	"github.com/recipehub/recipehub-backend/pkg/logger"
	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Create(favorite *model.Favorite) error
	FindByUserAndRecipe(userID, recipeID uint) (*model.Favorite, error)
	FindRecipeIDsByUser(userID uint) ([]uint, error)
	Delete(userID, recipeID uint) error
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(favorite *model.Favorite) error {
	logger.Debug("Creating favorite in database", map[string]interface{}{
		"user_id":   favorite.UserID,
		"recipe_id": favorite.RecipeID,
	})

	if err := r.db.Create(favorite).Error; err != nil {
		logger.Error("Failed to create favorite in database", err, map[string]interface{}{
			"user_id":   favorite.UserID,
			"recipe_id": favorite.RecipeID,
		})
		return err
	}
	return nil
}

func (r *favoriteRepository) FindByUserAndRecipe(userID, recipeID uint) (*model.Favorite, error) {
	var favorite model.Favorite
	err := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&favorite).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

// FindRecipeIDsByUser returns the IDs of every recipe the user has
// favorited, for resolving is_favorited flags over a listing in one query
func (r *favoriteRepository) FindRecipeIDsByUser(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		logger.Error("Failed to find favorite recipe IDs", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return ids, nil
}

func (r *favoriteRepository) Delete(userID, recipeID uint) error {
	logger.Debug("Deleting favorite from database", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
	})

	if err := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&model.Favorite{}).Error; err != nil {
		logger.Error("Failed to delete favorite from database", err, map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return err
	}
	return nil
}
