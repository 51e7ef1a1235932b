package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/recipehub/recipehub-backend/internal/app/dto"
	"github.com/recipehub/recipehub-backend/internal/app/repository"
	"github.com/recipehub/recipehub-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrIngredientNotFound = errors.New("ingredient not found")

const (
	ingredientCachePrefix = "ingredients:search:"
	ingredientCacheTTL    = 10 * time.Minute
)

type IngredientService interface {
	SearchIngredients(namePrefix string) ([]dto.IngredientResponse, error)
	GetIngredient(id uint) (*dto.IngredientResponse, error)
}

type ingredientService struct {
	ingredientRepo repository.IngredientRepository
	cache          *goredis.Client // nil when caching is disabled
}

func NewIngredientService(ingredientRepo repository.IngredientRepository, cache *goredis.Client) IngredientService {
	return &ingredientService{
		ingredientRepo: ingredientRepo,
		cache:          cache,
	}
}

// SearchIngredients lists ingredients whose name starts with the given
// prefix, case-insensitively. The reference catalog rarely changes, so
// results are cached per normalized prefix.
func (s *ingredientService) SearchIngredients(namePrefix string) ([]dto.IngredientResponse, error) {
	cacheKey := ingredientCachePrefix + strings.ToLower(namePrefix)

	if s.cache != nil {
		cached, err := s.cache.Get(context.Background(), cacheKey).Result()
		if err == nil {
			var responses []dto.IngredientResponse
			if err := json.Unmarshal([]byte(cached), &responses); err == nil {
				return responses, nil
			}
		} else if !errors.Is(err, goredis.Nil) {
			logger.Warn("Ingredient cache read failed", map[string]interface{}{
				"key":   cacheKey,
				"error": err.Error(),
			})
		}
	}

	ingredients, err := s.ingredientRepo.FindAll(namePrefix)
	if err != nil {
		return nil, err
	}

	responses := dto.ToIngredientResponses(ingredients)

	if s.cache != nil {
		if payload, err := json.Marshal(responses); err == nil {
			if err := s.cache.Set(context.Background(), cacheKey, payload, ingredientCacheTTL).Err(); err != nil {
				logger.Warn("Ingredient cache write failed", map[string]interface{}{
					"key":   cacheKey,
					"error": err.Error(),
				})
			}
		}
	}

	return responses, nil
}

func (s *ingredientService) GetIngredient(id uint) (*dto.IngredientResponse, error) {
	ingredient, err := s.ingredientRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}

	response := dto.ToIngredientResponse(ingredient)
	return &response, nil
}
