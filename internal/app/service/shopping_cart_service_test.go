package service

import (
	"strings"
	"testing"

	"github.com/recipehub/recipehub-backend/internal/app/model"
	"github.com/recipehub/recipehub-backend/internal/app/repository"
	"github.com/recipehub/recipehub-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (ShoppingCartService, *model.User, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewShoppingCartRepository(testDB)
	recipeRepo := repository.NewRecipeRepository(testDB)
	cartService := NewShoppingCartService(cartRepo, recipeRepo)

	user := &model.User{
		Username:     "shopper",
		Email:        "shopper@example.com",
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "Shopper",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(user).Error)

	return cartService, user, testDB
}

// seedRecipe inserts a recipe with the given (name, unit, amount)
// ingredient triples, reusing ingredients that already exist
func seedRecipe(t *testing.T, testDB *gorm.DB, authorID uint, name string, items [][2]string, amounts []int) *model.Recipe {
	t.Helper()

	rows := make([]model.RecipeIngredient, 0, len(items))
	for i, item := range items {
		ingredient := model.Ingredient{Name: item[0], MeasurementUnit: item[1]}
		require.NoError(t, testDB.Where("name = ?", item[0]).FirstOrCreate(&ingredient).Error)
		rows = append(rows, model.RecipeIngredient{
			IngredientID: ingredient.ID,
			Amount:       amounts[i],
		})
	}

	recipe := &model.Recipe{
		AuthorID:    authorID,
		Name:        name,
		Image:       "https://cdn.example.com/r.png",
		Text:        "Cook",
		CookingTime: 20,
		Ingredients: rows,
	}
	require.NoError(t, testDB.Omit("Author").Create(recipe).Error)
	return recipe
}

func TestShoppingCartService_ToggleSequence(t *testing.T) {
	cartService, user, testDB := setupCartServiceTest(t)

	recipe := seedRecipe(t, testDB, user.ID, "Soup",
		[][2]string{{"Salt", "g"}}, []int{5})

	preview, err := cartService.AddToCart(user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, preview.ID)

	_, err = cartService.AddToCart(user.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrAlreadyInCart)

	require.NoError(t, cartService.RemoveFromCart(user.ID, recipe.ID))

	err = cartService.RemoveFromCart(user.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrNotInCart)
}

func TestShoppingCartService_RecipeNotFound(t *testing.T) {
	cartService, user, _ := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, 9999)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestShoppingCartService_BuildShoppingList_Aggregates(t *testing.T) {
	cartService, user, testDB := setupCartServiceTest(t)

	soup := seedRecipe(t, testDB, user.ID, "Soup",
		[][2]string{{"Salt", "g"}, {"Tomato", "g"}}, []int{5, 100})
	stew := seedRecipe(t, testDB, user.ID, "Stew",
		[][2]string{{"Salt", "g"}}, []int{10})

	_, err := cartService.AddToCart(user.ID, soup.ID)
	require.NoError(t, err)
	_, err = cartService.AddToCart(user.ID, stew.ID)
	require.NoError(t, err)

	list, err := cartService.BuildShoppingList(user.ID)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(list, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Shopping list:", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "Salt: 15 g", lines[2])
	assert.Equal(t, "Tomato: 100 g", lines[3])
}

func TestShoppingCartService_BuildShoppingList_EmptyCart(t *testing.T) {
	cartService, user, _ := setupCartServiceTest(t)

	list, err := cartService.BuildShoppingList(user.ID)
	require.NoError(t, err)

	assert.Equal(t, "Shopping list:\n\n", list)
}
