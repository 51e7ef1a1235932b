package model

import (
	"time"
)

// ShoppingCartItem marks a recipe as part of a user's shopping cart.
// Deliberately a separate row type from Favorite: uniqueness and
// deletion are scoped independently per kind.
type ShoppingCartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_items_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_cart_items_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Recipe Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
}

func (ShoppingCartItem) TableName() string {
	return "shopping_cart_items"
}
