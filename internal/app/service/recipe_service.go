package service

import (
	"errors"

	"github.com/recipehub/recipehub-backend/internal/app/dto"
	"github.com/recipehub/recipehub-backend/internal/app/model"
	"github.com/recipehub/recipehub-backend/internal/app/repository"
	"github.com/recipehub/recipehub-backend/pkg/logger"
	"github.com/recipehub/recipehub-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrRecipeNotFound        = errors.New("recipe not found")
	ErrNotRecipeOwner        = errors.New("only the author may modify this recipe")
	ErrNoTags                = errors.New("recipe needs at least one tag")
	ErrNoIngredients         = errors.New("recipe needs at least one ingredient")
	ErrDuplicateTag          = errors.New("tags must be unique")
	ErrDuplicateIngredient   = errors.New("ingredients must be unique")
	ErrInvalidAmount         = errors.New("ingredient amount must be at least 1")
	ErrInvalidCookingTime    = errors.New("cooking time must be at least 1 minute")
	ErrUnknownTag            = errors.New("unknown tag")
	ErrUnknownIngredient     = errors.New("unknown ingredient")
	ErrInvalidImage          = errors.New("invalid image payload")
)

// ImageStore persists a decoded image and returns its public URL
type ImageStore interface {
	SaveImage(data []byte, contentType, ext string) (string, error)
}

// IngredientAmount is one (ingredient id, amount) pair of the write view
type IngredientAmount struct {
	ID     uint `json:"id" binding:"required"`
	Amount int  `json:"amount" binding:"required"`
}

// RecipeInput is the write view for creation
type RecipeInput struct {
	Name        string
	Text        string
	Image       string // base64 data URI
	CookingTime int
	TagIDs      []uint
	Ingredients []IngredientAmount
}

// RecipeUpdateInput is the write view for partial updates. Nil fields
// keep their stored values; a supplied ingredient or tag list fully
// replaces the previous set.
type RecipeUpdateInput struct {
	Name        *string
	Text        *string
	Image       *string
	CookingTime *int
	TagIDs      []uint
	Ingredients []IngredientAmount
}

type RecipeService interface {
	GetRecipes(filter repository.RecipeFilter, viewerID *uint) ([]dto.RecipeResponse, int64, error)
	GetRecipe(id uint, viewerID *uint) (*dto.RecipeResponse, error)
	CreateRecipe(authorID uint, input RecipeInput) (*dto.RecipeResponse, error)
	UpdateRecipe(userID uint, isAdmin bool, recipeID uint, input RecipeUpdateInput) (*dto.RecipeResponse, error)
	DeleteRecipe(userID uint, isAdmin bool, recipeID uint) error
}

type recipeService struct {
	recipeRepo     repository.RecipeRepository
	tagRepo        repository.TagRepository
	ingredientRepo repository.IngredientRepository
	viewer         viewerResolver
	images         ImageStore // may be nil; the data URI is then stored as-is
}

func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	tagRepo repository.TagRepository,
	ingredientRepo repository.IngredientRepository,
	favoriteRepo repository.FavoriteRepository,
	cartRepo repository.ShoppingCartRepository,
	subscriptionRepo repository.SubscriptionRepository,
	images ImageStore,
) RecipeService {
	return &recipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		viewer: viewerResolver{
			favoriteRepo:     favoriteRepo,
			cartRepo:         cartRepo,
			subscriptionRepo: subscriptionRepo,
		},
		images: images,
	}
}

func (s *recipeService) GetRecipes(filter repository.RecipeFilter, viewerID *uint) ([]dto.RecipeResponse, int64, error) {
	recipes, err := s.recipeRepo.FindWithFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.recipeRepo.CountWithFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	viewer, err := s.viewer.resolve(viewerID)
	if err != nil {
		return nil, 0, err
	}

	return dto.ToRecipeResponses(recipes, viewer), count, nil
}

func (s *recipeService) GetRecipe(id uint, viewerID *uint) (*dto.RecipeResponse, error) {
	recipe, err := s.recipeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	viewer, err := s.viewer.resolve(viewerID)
	if err != nil {
		return nil, err
	}

	response := dto.ToRecipeResponse(recipe, viewer)
	return &response, nil
}

// resolveTags validates the tag-id list and loads the tag rows
func (s *recipeService) resolveTags(tagIDs []uint) ([]model.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, ErrNoTags
	}

	seen := make(map[uint]bool, len(tagIDs))
	for _, id := range tagIDs {
		if seen[id] {
			return nil, ErrDuplicateTag
		}
		seen[id] = true
	}

	tags, err := s.tagRepo.FindByIDs(tagIDs)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, ErrUnknownTag
	}
	return tags, nil
}

// resolveIngredients validates the (id, amount) list and builds join rows
func (s *recipeService) resolveIngredients(items []IngredientAmount) ([]model.RecipeIngredient, error) {
	if len(items) == 0 {
		return nil, ErrNoIngredients
	}

	seen := make(map[uint]bool, len(items))
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if seen[item.ID] {
			return nil, ErrDuplicateIngredient
		}
		seen[item.ID] = true
		if item.Amount < 1 {
			return nil, ErrInvalidAmount
		}
		ids = append(ids, item.ID)
	}

	ingredients, err := s.ingredientRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(ingredients) != len(ids) {
		return nil, ErrUnknownIngredient
	}

	rows := make([]model.RecipeIngredient, 0, len(items))
	for _, item := range items {
		rows = append(rows, model.RecipeIngredient{
			IngredientID: item.ID,
			Amount:       item.Amount,
		})
	}
	return rows, nil
}

// storeImage validates the inline image payload and uploads it when an
// image store is configured; otherwise the data URI is kept verbatim
func (s *recipeService) storeImage(image string) (string, error) {
	if !util.IsBase64Image(image) {
		return "", ErrInvalidImage
	}

	raw, contentType, ext, err := util.DecodeBase64Image(image)
	if err != nil {
		return "", ErrInvalidImage
	}

	if s.images == nil {
		return image, nil
	}

	url, err := s.images.SaveImage(raw, contentType, ext)
	if err != nil {
		logger.Error("Failed to store recipe image", err, map[string]interface{}{
			"content_type": contentType,
			"size":         len(raw),
		})
		return "", err
	}
	return url, nil
}

func (s *recipeService) CreateRecipe(authorID uint, input RecipeInput) (*dto.RecipeResponse, error) {
	logger.Info("Creating recipe", map[string]interface{}{
		"author_id":   authorID,
		"name":        input.Name,
		"tags":        len(input.TagIDs),
		"ingredients": len(input.Ingredients),
	})

	// All validation happens before any write
	if input.CookingTime < 1 {
		return nil, ErrInvalidCookingTime
	}
	tags, err := s.resolveTags(input.TagIDs)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.resolveIngredients(input.Ingredients)
	if err != nil {
		return nil, err
	}
	image, err := s.storeImage(input.Image)
	if err != nil {
		return nil, err
	}

	recipe := &model.Recipe{
		AuthorID:    authorID,
		Name:        input.Name,
		Image:       image,
		Text:        input.Text,
		CookingTime: input.CookingTime,
		Tags:        tags,
		Ingredients: ingredients,
	}

	if err := s.recipeRepo.Create(recipe); err != nil {
		return nil, err
	}

	logger.Info("Recipe created successfully", map[string]interface{}{
		"recipe_id": recipe.ID,
		"author_id": authorID,
	})

	// Read-back goes through the read view so clients never see the
	// write-only shape
	return s.GetRecipe(recipe.ID, &authorID)
}

func (s *recipeService) UpdateRecipe(userID uint, isAdmin bool, recipeID uint, input RecipeUpdateInput) (*dto.RecipeResponse, error) {
	recipe, err := s.recipeRepo.FindByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	if recipe.AuthorID != userID && !isAdmin {
		logger.Warn("Recipe update rejected: not the author", map[string]interface{}{
			"recipe_id": recipeID,
			"user_id":   userID,
			"author_id": recipe.AuthorID,
		})
		return nil, ErrNotRecipeOwner
	}

	if input.CookingTime != nil && *input.CookingTime < 1 {
		return nil, ErrInvalidCookingTime
	}

	var tags []model.Tag
	if input.TagIDs != nil {
		if tags, err = s.resolveTags(input.TagIDs); err != nil {
			return nil, err
		}
	}

	var ingredients []model.RecipeIngredient
	if input.Ingredients != nil {
		if ingredients, err = s.resolveIngredients(input.Ingredients); err != nil {
			return nil, err
		}
	}

	if input.Name != nil {
		recipe.Name = *input.Name
	}
	if input.Text != nil {
		recipe.Text = *input.Text
	}
	if input.CookingTime != nil {
		recipe.CookingTime = *input.CookingTime
	}
	if input.Image != nil {
		image, err := s.storeImage(*input.Image)
		if err != nil {
			return nil, err
		}
		recipe.Image = image
	}

	// Detach loaded associations so Save does not rewrite them; the
	// repository replaces the sets explicitly when supplied
	recipe.Tags = nil
	recipe.Ingredients = nil

	if err := s.recipeRepo.Update(recipe, ingredients, tags); err != nil {
		return nil, err
	}

	logger.Info("Recipe updated successfully", map[string]interface{}{
		"recipe_id": recipeID,
		"user_id":   userID,
	})

	return s.GetRecipe(recipeID, &userID)
}

func (s *recipeService) DeleteRecipe(userID uint, isAdmin bool, recipeID uint) error {
	recipe, err := s.recipeRepo.FindByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	if recipe.AuthorID != userID && !isAdmin {
		logger.Warn("Recipe delete rejected: not the author", map[string]interface{}{
			"recipe_id": recipeID,
			"user_id":   userID,
			"author_id": recipe.AuthorID,
		})
		return ErrNotRecipeOwner
	}

	if err := s.recipeRepo.Delete(recipeID); err != nil {
		return err
	}

	logger.Info("Recipe deleted successfully", map[string]interface{}{
		"recipe_id": recipeID,
		"user_id":   userID,
	})
	return nil
}
