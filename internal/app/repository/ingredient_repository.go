package repository

import (
	"strings"

	"github.com/recipehub/recipehub-backend/internal/app/model"
	"github.com/recipehub/recipehub-backend/pkg/logger"
	"gorm.io/gorm"
)

// likeEscaper neutralizes LIKE wildcards so a prefix matches literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type IngredientRepository interface {
	FindAll(namePrefix string) ([]model.Ingredient, error)
	FindByID(id uint) (*model.Ingredient, error)
	FindByIDs(ids []uint) ([]model.Ingredient, error)
	GetOrCreate(ingredient *model.Ingredient) error
}

type ingredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

// FindAll lists ingredients, optionally restricted to a case-insensitive
// name prefix ("to" matches "Tomato" but not "Potato")
func (r *ingredientRepository) FindAll(namePrefix string) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	query := r.db.Order("name ASC")
	if namePrefix != "" {
		query = query.Where(`LOWER(name) LIKE LOWER(?) ESCAPE '\'`, likeEscaper.Replace(namePrefix)+"%")
	}
	if err := query.Find(&ingredients).Error; err != nil {
		logger.Error("Failed to find ingredients in database", err, map[string]interface{}{
			"name_prefix": namePrefix,
		})
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) FindByID(id uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	if err := r.db.First(&ingredient, id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) FindByIDs(ids []uint) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	if err := r.db.Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		logger.Error("Failed to find ingredients by IDs in database", err, map[string]interface{}{
			"ingredient_ids": ids,
		})
		return nil, err
	}
	return ingredients, nil
}

// GetOrCreate loads an existing ingredient by name or creates it. Used by
// the fixture import.
func (r *ingredientRepository) GetOrCreate(ingredient *model.Ingredient) error {
	return r.db.Where(model.Ingredient{Name: ingredient.Name}).FirstOrCreate(ingredient).Error
}
