package repository

import (
	"testing"

	"github.com/recipehub/recipehub-backend/internal/app/model"
	"github.com/recipehub/recipehub-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartRepoTest(t *testing.T) (ShoppingCartRepository, *model.User, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	user := &model.User{
		Username:     "shopper",
		Email:        "shopper@example.com",
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "Shopper",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(user).Error)

	return NewShoppingCartRepository(testDB), user, testDB
}

// createRecipeWith inserts a recipe whose ingredient rows reference the
// given (ingredient, amount) pairs, creating ingredients on demand
func createRecipeWith(t *testing.T, testDB *gorm.DB, author *model.User, name string, items map[string]int, units map[string]string) *model.Recipe {
	t.Helper()

	ingredientRows := make([]model.RecipeIngredient, 0, len(items))
	for ingredientName, amount := range items {
		ingredient := model.Ingredient{Name: ingredientName, MeasurementUnit: units[ingredientName]}
		require.NoError(t, testDB.Where("name = ?", ingredientName).FirstOrCreate(&ingredient).Error)
		ingredientRows = append(ingredientRows, model.RecipeIngredient{
			IngredientID: ingredient.ID,
			Amount:       amount,
		})
	}

	recipe := &model.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Image:       "https://cdn.example.com/r.png",
		Text:        "Cook it",
		CookingTime: 10,
		Ingredients: ingredientRows,
	}
	require.NoError(t, testDB.Omit("Author").Create(recipe).Error)
	return recipe
}

func TestShoppingCartRepository_CreateAndFind(t *testing.T) {
	cartRepo, user, testDB := setupCartRepoTest(t)

	recipe := createRecipeWith(t, testDB, user, "Soup", map[string]int{"Salt": 5}, map[string]string{"Salt": "g"})

	require.NoError(t, cartRepo.Create(&model.ShoppingCartItem{UserID: user.ID, RecipeID: recipe.ID}))

	item, err := cartRepo.FindByUserAndRecipe(user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, item.RecipeID)

	ids, err := cartRepo.FindRecipeIDsByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{recipe.ID}, ids)
}

func TestShoppingCartRepository_Delete(t *testing.T) {
	cartRepo, user, testDB := setupCartRepoTest(t)

	recipe := createRecipeWith(t, testDB, user, "Soup", map[string]int{"Salt": 5}, map[string]string{"Salt": "g"})
	require.NoError(t, cartRepo.Create(&model.ShoppingCartItem{UserID: user.ID, RecipeID: recipe.ID}))

	require.NoError(t, cartRepo.Delete(user.ID, recipe.ID))

	_, err := cartRepo.FindByUserAndRecipe(user.ID, recipe.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestShoppingCartRepository_SumIngredientsByUser(t *testing.T) {
	cartRepo, user, testDB := setupCartRepoTest(t)

	units := map[string]string{"Salt": "g", "Tomato": "g", "Milk": "ml"}

	soup := createRecipeWith(t, testDB, user, "Soup", map[string]int{"Salt": 5, "Tomato": 100}, units)
	stew := createRecipeWith(t, testDB, user, "Stew", map[string]int{"Salt": 10}, units)
	// Not in the cart, must not contribute
	createRecipeWith(t, testDB, user, "Shake", map[string]int{"Milk": 300}, units)

	require.NoError(t, cartRepo.Create(&model.ShoppingCartItem{UserID: user.ID, RecipeID: soup.ID}))
	require.NoError(t, cartRepo.Create(&model.ShoppingCartItem{UserID: user.ID, RecipeID: stew.ID}))

	totals, err := cartRepo.SumIngredientsByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	// Name-ascending order, amounts summed across recipes
	assert.Equal(t, "Salt", totals[0].Name)
	assert.Equal(t, 15, totals[0].Total)
	assert.Equal(t, "g", totals[0].MeasurementUnit)
	assert.Equal(t, "Tomato", totals[1].Name)
	assert.Equal(t, 100, totals[1].Total)
}

func TestShoppingCartRepository_SumIngredientsByUser_EmptyCart(t *testing.T) {
	cartRepo, user, _ := setupCartRepoTest(t)

	totals, err := cartRepo.SumIngredientsByUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, totals)
}
