package model

import (
	"time"
)

type Recipe struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`
	Image       string    `gorm:"type:text" json:"image"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	CookingTime int       `gorm:"not null" json:"cooking_time"` // minutes, >= 1
	CreatedAt   time.Time `json:"created_at"`                   // publication date, list order is newest-first
	UpdatedAt   time.Time `json:"updated_at"`

	Author      User               `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Tags        []Tag              `gorm:"many2many:recipe_tags;" json:"tags,omitempty"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient is the join row carrying the per-recipe amount
type RecipeIngredient struct {
	ID           uint `gorm:"primarykey" json:"id"`
	RecipeID     uint `gorm:"not null;uniqueIndex:idx_recipe_ingredients_recipe_ingredient" json:"recipe_id"`
	IngredientID uint `gorm:"not null;uniqueIndex:idx_recipe_ingredients_recipe_ingredient" json:"ingredient_id"`
	Amount       int  `gorm:"not null" json:"amount"` // >= 1

	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
