package repository

import (
	"testing"

	"github.com/recipehub/recipehub-backend/internal/app/model"
	"github.com/recipehub/recipehub-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRecipeRepoTest(t *testing.T) (RecipeRepository, *model.User, []model.Tag, []model.Ingredient, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	recipeRepo := NewRecipeRepository(testDB)

	author := &model.User{
		Username:     "chef",
		Email:        "chef@example.com",
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "Chef",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(author).Error)

	tags := []model.Tag{
		{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
	}
	require.NoError(t, testDB.Create(&tags).Error)

	ingredients := []model.Ingredient{
		{Name: "Salt", MeasurementUnit: "g"},
		{Name: "Tomato", MeasurementUnit: "g"},
	}
	require.NoError(t, testDB.Create(&ingredients).Error)

	return recipeRepo, author, tags, ingredients, testDB
}

func buildRecipe(author *model.User, name string, tags []model.Tag, ingredients []model.RecipeIngredient) *model.Recipe {
	return &model.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Image:       "https://cdn.example.com/r.png",
		Text:        "Cook it",
		CookingTime: 30,
		Tags:        tags,
		Ingredients: ingredients,
	}
}

func TestRecipeRepository_CreateAndFind(t *testing.T) {
	recipeRepo, author, tags, ingredients, _ := setupRecipeRepoTest(t)

	recipe := buildRecipe(author, "Soup", tags[:1], []model.RecipeIngredient{
		{IngredientID: ingredients[0].ID, Amount: 5},
	})
	require.NoError(t, recipeRepo.Create(recipe))
	require.NotZero(t, recipe.ID)

	found, err := recipeRepo.FindByID(recipe.ID)
	require.NoError(t, err)

	assert.Equal(t, "Soup", found.Name)
	assert.Equal(t, author.ID, found.Author.ID)
	require.Len(t, found.Tags, 1)
	assert.Equal(t, "breakfast", found.Tags[0].Slug)
	require.Len(t, found.Ingredients, 1)
	assert.Equal(t, "Salt", found.Ingredients[0].Ingredient.Name)
	assert.Equal(t, 5, found.Ingredients[0].Amount)
}

func TestRecipeRepository_FindByID_NotFound(t *testing.T) {
	recipeRepo, _, _, _, _ := setupRecipeRepoTest(t)

	_, err := recipeRepo.FindByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRecipeRepository_FindWithFilter_NewestFirst(t *testing.T) {
	recipeRepo, author, tags, ingredients, _ := setupRecipeRepoTest(t)

	for _, name := range []string{"First", "Second", "Third"} {
		recipe := buildRecipe(author, name, tags[:1], []model.RecipeIngredient{
			{IngredientID: ingredients[0].ID, Amount: 1},
		})
		require.NoError(t, recipeRepo.Create(recipe))
	}

	recipes, err := recipeRepo.FindWithFilter(RecipeFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, recipes, 3)

	// Publication order, newest first; identical timestamps fall back
	// to descending IDs
	assert.Equal(t, "Third", recipes[0].Name)
	assert.Equal(t, "First", recipes[2].Name)
}

func TestRecipeRepository_FindWithFilter_TagSlugsORed(t *testing.T) {
	recipeRepo, author, tags, ingredients, _ := setupRecipeRepoTest(t)

	breakfast := buildRecipe(author, "Porridge", tags[:1], []model.RecipeIngredient{
		{IngredientID: ingredients[0].ID, Amount: 1},
	})
	require.NoError(t, recipeRepo.Create(breakfast))

	dinner := buildRecipe(author, "Stew", tags[1:2], []model.RecipeIngredient{
		{IngredientID: ingredients[1].ID, Amount: 2},
	})
	require.NoError(t, recipeRepo.Create(dinner))

	both := buildRecipe(author, "Omelette", tags, []model.RecipeIngredient{
		{IngredientID: ingredients[0].ID, Amount: 3},
	})
	require.NoError(t, recipeRepo.Create(both))

	recipes, err := recipeRepo.FindWithFilter(RecipeFilter{TagSlugs: []string{"breakfast"}, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, recipes, 2)

	// A recipe matching several requested slugs still appears once
	recipes, err = recipeRepo.FindWithFilter(RecipeFilter{TagSlugs: []string{"breakfast", "dinner"}, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, recipes, 3)

	count, err := recipeRepo.CountWithFilter(RecipeFilter{TagSlugs: []string{"breakfast", "dinner"}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestRecipeRepository_FindWithFilter_FavoritedBy(t *testing.T) {
	recipeRepo, author, tags, ingredients, testDB := setupRecipeRepoTest(t)

	liked := buildRecipe(author, "Liked", tags[:1], []model.RecipeIngredient{
		{IngredientID: ingredients[0].ID, Amount: 1},
	})
	require.NoError(t, recipeRepo.Create(liked))

	other := buildRecipe(author, "Other", tags[:1], []model.RecipeIngredient{
		{IngredientID: ingredients[0].ID, Amount: 1},
	})
	require.NoError(t, recipeRepo.Create(other))

	require.NoError(t, testDB.Create(&model.Favorite{UserID: author.ID, RecipeID: liked.ID}).Error)

	recipes, err := recipeRepo.FindWithFilter(RecipeFilter{FavoritedBy: &author.ID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Liked", recipes[0].Name)
}

func TestRecipeRepository_Update_ReplacesSets(t *testing.T) {
	recipeRepo, author, tags, ingredients, _ := setupRecipeRepoTest(t)

	recipe := buildRecipe(author, "Soup", tags[:1], []model.RecipeIngredient{
		{IngredientID: ingredients[0].ID, Amount: 5},
	})
	require.NoError(t, recipeRepo.Create(recipe))

	recipe.Name = "Thick Soup"
	recipe.Tags = nil
	recipe.Ingredients = nil
	newIngredients := []model.RecipeIngredient{
		{IngredientID: ingredients[1].ID, Amount: 200},
	}
	require.NoError(t, recipeRepo.Update(recipe, newIngredients, tags[1:2]))

	found, err := recipeRepo.FindByID(recipe.ID)
	require.NoError(t, err)

	assert.Equal(t, "Thick Soup", found.Name)
	require.Len(t, found.Tags, 1)
	assert.Equal(t, "dinner", found.Tags[0].Slug)
	require.Len(t, found.Ingredients, 1)
	assert.Equal(t, "Tomato", found.Ingredients[0].Ingredient.Name)
	assert.Equal(t, 200, found.Ingredients[0].Amount)
}

func TestRecipeRepository_Delete_RemovesDependents(t *testing.T) {
	recipeRepo, author, tags, ingredients, testDB := setupRecipeRepoTest(t)

	recipe := buildRecipe(author, "Soup", tags[:1], []model.RecipeIngredient{
		{IngredientID: ingredients[0].ID, Amount: 5},
	})
	require.NoError(t, recipeRepo.Create(recipe))

	require.NoError(t, testDB.Create(&model.Favorite{UserID: author.ID, RecipeID: recipe.ID}).Error)
	require.NoError(t, testDB.Create(&model.ShoppingCartItem{UserID: author.ID, RecipeID: recipe.ID}).Error)

	require.NoError(t, recipeRepo.Delete(recipe.ID))

	_, err := recipeRepo.FindByID(recipe.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var favorites, cartItems, joinRows int64
	testDB.Model(&model.Favorite{}).Where("recipe_id = ?", recipe.ID).Count(&favorites)
	testDB.Model(&model.ShoppingCartItem{}).Where("recipe_id = ?", recipe.ID).Count(&cartItems)
	testDB.Model(&model.RecipeIngredient{}).Where("recipe_id = ?", recipe.ID).Count(&joinRows)
	assert.Zero(t, favorites)
	assert.Zero(t, cartItems)
	assert.Zero(t, joinRows)
}
