package service

import (
	"errors"

	"github.com/recipehub/recipehub-backend/internal/app/dto"
	"github.com/recipehub/recipehub-backend/internal/app/model"
	"github.com/recipehub/recipehub-backend/internal/app/repository"
	"github.com/recipehub/recipehub-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrAlreadyFavorited = errors.New("recipe is already in favorites")
	ErrNotFavorited     = errors.New("recipe is not in favorites")
)

type FavoriteService interface {
	AddFavorite(userID, recipeID uint) (*dto.RecipePreview, error)
	RemoveFavorite(userID, recipeID uint) error
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	recipeRepo   repository.RecipeRepository
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, recipeRepo repository.RecipeRepository) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		recipeRepo:   recipeRepo,
	}
}

func (s *favoriteService) AddFavorite(userID, recipeID uint) (*dto.RecipePreview, error) {
	recipe, err := s.recipeRepo.FindByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	if _, err := s.favoriteRepo.FindByUserAndRecipe(userID, recipeID); err == nil {
		return nil, ErrAlreadyFavorited
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	favorite := &model.Favorite{
		UserID:   userID,
		RecipeID: recipeID,
	}
	if err := s.favoriteRepo.Create(favorite); err != nil {
		return nil, err
	}

	logger.Debug("Recipe added to favorites", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
	})

	preview := dto.ToRecipePreview(recipe)
	return &preview, nil
}

func (s *favoriteService) RemoveFavorite(userID, recipeID uint) error {
	if _, err := s.recipeRepo.FindByID(recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	if _, err := s.favoriteRepo.FindByUserAndRecipe(userID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFavorited
		}
		return err
	}

	if err := s.favoriteRepo.Delete(userID, recipeID); err != nil {
		return err
	}

	logger.Debug("Recipe removed from favorites", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
	})
	return nil
}
