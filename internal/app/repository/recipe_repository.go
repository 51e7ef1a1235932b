package repository

import (
	"github.com/recipehub/recipehub-backend/internal/app/model"
	"github.com/recipehub/recipehub-backend/pkg/logger"
	"gorm.io/gorm"
)

// RecipeFilter translates the list query parameters into predicates.
// TagSlugs are OR-ed among themselves and AND-ed with the other fields.
type RecipeFilter struct {
	TagSlugs    []string
	AuthorID    *uint
	FavoritedBy *uint // user ID whose favorites to restrict to
	InCartOf    *uint // user ID whose shopping cart to restrict to
	Limit       int
	Offset      int
}

type RecipeRepository interface {
	Create(recipe *model.Recipe) error
	FindByID(id uint) (*model.Recipe, error)
	FindWithFilter(filter RecipeFilter) ([]model.Recipe, error)
	CountWithFilter(filter RecipeFilter) (int64, error)
	FindByAuthorID(authorID uint, limit int) ([]model.Recipe, error)
	CountByAuthorID(authorID uint) (int64, error)
	Update(recipe *model.Recipe, ingredients []model.RecipeIngredient, tags []model.Tag) error
	Delete(id uint) error
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// Create persists the recipe together with its tag associations and
// ingredient join rows in a single transaction. The caller sets
// recipe.Tags to existing tag rows and recipe.Ingredients to join rows
// carrying IngredientID and Amount.
func (r *recipeRepository) Create(recipe *model.Recipe) error {
	logger.Debug("Creating recipe in database", map[string]interface{}{
		"name":        recipe.Name,
		"author_id":   recipe.AuthorID,
		"tags":        len(recipe.Tags),
		"ingredients": len(recipe.Ingredients),
	})

	if err := r.db.Omit("Author").Create(recipe).Error; err != nil {
		logger.Error("Failed to create recipe in database", err, map[string]interface{}{
			"name":      recipe.Name,
			"author_id": recipe.AuthorID,
		})
		return err
	}

	logger.Debug("Recipe created in database", map[string]interface{}{
		"recipe_id": recipe.ID,
	})
	return nil
}

func (r *recipeRepository) preloaded() *gorm.DB {
	return r.db.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients").
		Preload("Ingredients.Ingredient")
}

func (r *recipeRepository) FindByID(id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.preloaded().First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// filterQuery builds the predicate part shared by list and count
func (r *recipeRepository) filterQuery(filter RecipeFilter) *gorm.DB {
	query := r.db.Model(&model.Recipe{})

	if len(filter.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
	}
	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if filter.FavoritedBy != nil {
		query = query.
			Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
			Where("favorites.user_id = ?", *filter.FavoritedBy)
	}
	if filter.InCartOf != nil {
		query = query.
			Joins("JOIN shopping_cart_items ON shopping_cart_items.recipe_id = recipes.id").
			Where("shopping_cart_items.user_id = ?", *filter.InCartOf)
	}

	return query
}

func (r *recipeRepository) FindWithFilter(filter RecipeFilter) ([]model.Recipe, error) {
	logger.Debug("Finding recipes with filter", map[string]interface{}{
		"tag_slugs":    filter.TagSlugs,
		"author_id":    filter.AuthorID,
		"favorited_by": filter.FavoritedBy,
		"in_cart_of":   filter.InCartOf,
		"limit":        filter.Limit,
		"offset":       filter.Offset,
	})

	query := r.filterQuery(filter).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		Group("recipes.id").
		Order("recipes.created_at DESC, recipes.id DESC")

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var recipes []model.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		logger.Error("Failed to find recipes with filter", err)
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) CountWithFilter(filter RecipeFilter) (int64, error) {
	var count int64
	if err := r.filterQuery(filter).Distinct("recipes.id").Count(&count).Error; err != nil {
		logger.Error("Failed to count recipes with filter", err)
		return 0, err
	}
	return count, nil
}

// FindByAuthorID lists an author's recipes newest-first, optionally capped
func (r *recipeRepository) FindByAuthorID(authorID uint, limit int) ([]model.Recipe, error) {
	var recipes []model.Recipe
	query := r.db.
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC")
	if limit >= 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&recipes).Error; err != nil {
		logger.Error("Failed to find recipes by author", err, map[string]interface{}{
			"author_id": authorID,
		})
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) CountByAuthorID(authorID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Recipe{}).Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Update saves the recipe's scalar fields and, when a non-nil slice is
// supplied, fully replaces the ingredient join rows and/or the tag set.
// The whole write commits or rolls back as one transaction.
func (r *recipeRepository) Update(recipe *model.Recipe, ingredients []model.RecipeIngredient, tags []model.Tag) error {
	logger.Debug("Updating recipe in database", map[string]interface{}{
		"recipe_id":           recipe.ID,
		"replace_ingredients": ingredients != nil,
		"replace_tags":        tags != nil,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Author", "Tags", "Ingredients").Save(recipe).Error; err != nil {
			return err
		}

		if ingredients != nil {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.RecipeIngredient{}).Error; err != nil {
				return err
			}
			for i := range ingredients {
				ingredients[i].RecipeID = recipe.ID
			}
			if err := tx.Create(&ingredients).Error; err != nil {
				return err
			}
		}

		if tags != nil {
			if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		logger.Error("Failed to update recipe in database", err, map[string]interface{}{
			"recipe_id": recipe.ID,
		})
		return err
	}
	return nil
}

// Delete removes the recipe and everything hanging off it: join rows,
// favorite marks and cart entries
func (r *recipeRepository) Delete(id uint) error {
	logger.Debug("Deleting recipe from database", map[string]interface{}{
		"recipe_id": id,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.ShoppingCartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Recipe{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete recipe from database", err, map[string]interface{}{
			"recipe_id": id,
		})
		return err
	}

	logger.Debug("Recipe deleted from database", map[string]interface{}{
		"recipe_id": id,
	})
	return nil
}
