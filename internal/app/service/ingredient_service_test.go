package service

import (
	"testing"

	"github.com/recipehub/recipehub-backend/internal/app/model"
	"github.com/recipehub/recipehub-backend/internal/app/repository"
	"github.com/recipehub/recipehub-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupIngredientServiceTest(t *testing.T) IngredientService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	for _, ingredient := range []model.Ingredient{
		{Name: "Tomato", MeasurementUnit: "g"},
		{Name: "tomato paste", MeasurementUnit: "g"},
		{Name: "Potato", MeasurementUnit: "g"},
	} {
		i := ingredient
		require.NoError(t, testDB.Create(&i).Error)
	}

	// No cache client: the service must work without Redis
	return NewIngredientService(repository.NewIngredientRepository(testDB), nil)
}

func TestIngredientService_SearchIngredients_Prefix(t *testing.T) {
	ingredientService := setupIngredientServiceTest(t)

	results, err := ingredientService.SearchIngredients("To")
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, result := range results {
		assert.NotEqual(t, "Potato", result.Name)
		assert.Equal(t, "g", result.MeasurementUnit)
	}
}

func TestIngredientService_SearchIngredients_All(t *testing.T) {
	ingredientService := setupIngredientServiceTest(t)

	results, err := ingredientService.SearchIngredients("")
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestIngredientService_GetIngredient(t *testing.T) {
	ingredientService := setupIngredientServiceTest(t)

	results, err := ingredientService.SearchIngredients("Tomato")
	require.NoError(t, err)
	require.NotEmpty(t, results)

	ingredient, err := ingredientService.GetIngredient(results[0].ID)
	require.NoError(t, err)
	assert.Equal(t, results[0].Name, ingredient.Name)

	_, err = ingredientService.GetIngredient(9999)
	assert.ErrorIs(t, err, ErrIngredientNotFound)
}
