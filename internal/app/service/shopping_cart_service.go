package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/recipehub/recipehub-backend/internal/app/dto"
	"github.com/recipehub/recipehub-backend/internal/app/model"
	"github.com/recipehub/recipehub-backend/internal/app/repository"
	"github.com/recipehub/recipehub-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrAlreadyInCart = errors.New("recipe is already in the shopping cart")
	ErrNotInCart     = errors.New("recipe is not in the shopping cart")
)

type ShoppingCartService interface {
	AddToCart(userID, recipeID uint) (*dto.RecipePreview, error)
	RemoveFromCart(userID, recipeID uint) error
	BuildShoppingList(userID uint) (string, error)
}

type shoppingCartService struct {
	cartRepo   repository.ShoppingCartRepository
	recipeRepo repository.RecipeRepository
}

func NewShoppingCartService(cartRepo repository.ShoppingCartRepository, recipeRepo repository.RecipeRepository) ShoppingCartService {
	return &shoppingCartService{
		cartRepo:   cartRepo,
		recipeRepo: recipeRepo,
	}
}

func (s *shoppingCartService) AddToCart(userID, recipeID uint) (*dto.RecipePreview, error) {
	recipe, err := s.recipeRepo.FindByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	if _, err := s.cartRepo.FindByUserAndRecipe(userID, recipeID); err == nil {
		return nil, ErrAlreadyInCart
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := &model.ShoppingCartItem{
		UserID:   userID,
		RecipeID: recipeID,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}

	logger.Debug("Recipe added to shopping cart", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
	})

	preview := dto.ToRecipePreview(recipe)
	return &preview, nil
}

func (s *shoppingCartService) RemoveFromCart(userID, recipeID uint) error {
	if _, err := s.recipeRepo.FindByID(recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	if _, err := s.cartRepo.FindByUserAndRecipe(userID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotInCart
		}
		return err
	}

	if err := s.cartRepo.Delete(userID, recipeID); err != nil {
		return err
	}

	logger.Debug("Recipe removed from shopping cart", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
	})
	return nil
}

// BuildShoppingList aggregates the ingredients of every recipe in the
// user's cart. Amounts of the same ingredient are summed across
// recipes, so "Salt 5 g" in two recipes and "Salt 5 g" in a third
// comes out as a single "Salt: 15 g" line.
func (s *shoppingCartService) BuildShoppingList(userID uint) (string, error) {
	totals, err := s.cartRepo.SumIngredientsByUser(userID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Shopping list:\n\n")
	for _, total := range totals {
		fmt.Fprintf(&b, "%s: %d %s\n", total.Name, total.Total, total.MeasurementUnit)
	}

	logger.Debug("Shopping list built", map[string]interface{}{
		"user_id":     userID,
		"ingredients": len(totals),
	})
	return b.String(), nil
}
