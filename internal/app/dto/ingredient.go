package dto

import "github.com/recipehub/recipehub-backend/internal/app/model"

type IngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func ToIngredientResponse(ingredient *model.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}

func ToIngredientResponses(ingredients []model.Ingredient) []IngredientResponse {
	responses := make([]IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		responses = append(responses, ToIngredientResponse(&ingredient))
	}
	return responses
}
