package service

import (
	"testing"

	"github.com/recipehub/recipehub-backend/internal/app/model"
	"github.com/recipehub/recipehub-backend/internal/app/repository"
	"github.com/recipehub/recipehub-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFavoriteServiceTest(t *testing.T) (FavoriteService, *model.User, *model.Recipe) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	favoriteRepo := repository.NewFavoriteRepository(testDB)
	recipeRepo := repository.NewRecipeRepository(testDB)
	favoriteService := NewFavoriteService(favoriteRepo, recipeRepo)

	user := &model.User{
		Username:     "reader",
		Email:        "reader@example.com",
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "Reader",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(user).Error)

	recipe := &model.Recipe{
		AuthorID:    user.ID,
		Name:        "Pancakes",
		Image:       "https://cdn.example.com/p.png",
		Text:        "Flip them",
		CookingTime: 15,
	}
	require.NoError(t, testDB.Omit("Author").Create(recipe).Error)

	return favoriteService, user, recipe
}

func TestFavoriteService_ToggleSequence(t *testing.T) {
	favoriteService, user, recipe := setupFavoriteServiceTest(t)

	// Add returns the preview
	preview, err := favoriteService.AddFavorite(user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, preview.ID)
	assert.Equal(t, "Pancakes", preview.Name)
	assert.Equal(t, 15, preview.CookingTime)

	// Adding again is a client error
	_, err = favoriteService.AddFavorite(user.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrAlreadyFavorited)

	// Remove succeeds once
	require.NoError(t, favoriteService.RemoveFavorite(user.ID, recipe.ID))

	// Removing again is a client error
	err = favoriteService.RemoveFavorite(user.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrNotFavorited)

	// And the pair can be re-created after removal
	_, err = favoriteService.AddFavorite(user.ID, recipe.ID)
	assert.NoError(t, err)
}

func TestFavoriteService_RecipeNotFound(t *testing.T) {
	favoriteService, user, _ := setupFavoriteServiceTest(t)

	_, err := favoriteService.AddFavorite(user.ID, 9999)
	assert.ErrorIs(t, err, ErrRecipeNotFound)

	err = favoriteService.RemoveFavorite(user.ID, 9999)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestFavoriteService_PerUserIndependence(t *testing.T) {
	favoriteService, user, recipe := setupFavoriteServiceTest(t)

	// Favorites of one user do not affect another
	_, err := favoriteService.AddFavorite(user.ID, recipe.ID)
	require.NoError(t, err)

	otherUserID := user.ID + 1
	err = favoriteService.RemoveFavorite(otherUserID, recipe.ID)
	assert.ErrorIs(t, err, ErrNotFavorited)
}
