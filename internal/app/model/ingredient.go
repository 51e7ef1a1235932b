package model

import (
	"time"
)

// Ingredient is reference data, bulk-loaded from a fixture file
type Ingredient struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	Name            string    `gorm:"type:varchar(200);uniqueIndex:idx_ingredients_name;not null" json:"name"`
	MeasurementUnit string    `gorm:"type:varchar(200);not null" json:"measurement_unit"`
	CreatedAt       time.Time `json:"-"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
