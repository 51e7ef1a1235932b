package model

import (
	"time"
)

// Tag is immutable reference data attached to recipes (e.g. "breakfast")
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(200);uniqueIndex:idx_tags_name;not null" json:"name"`
	Color     string    `gorm:"type:varchar(7);not null" json:"color"` // hex, e.g. "#49B64E"
	Slug      string    `gorm:"type:varchar(200);uniqueIndex:idx_tags_slug;not null" json:"slug"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Tag) TableName() string {
	return "tags"
}

// RecipeTag is the join row between recipes and tags
type RecipeTag struct {
	RecipeID  uint      `gorm:"primaryKey;index" json:"recipe_id"`
	TagID     uint      `gorm:"primaryKey;index" json:"tag_id"`
	Recipe    Recipe    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Tag       Tag       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tag,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}
