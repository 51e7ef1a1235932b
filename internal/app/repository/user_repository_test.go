package repository

import (
	"testing"

	"github.com/recipehub/recipehub-backend/internal/app/model"
	"github.com/recipehub/recipehub-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUserRepoTest(t *testing.T) (UserRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewUserRepository(testDB), testDB
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	userRepo, _ := setupUserRepoTest(t)

	user := &model.User{
		Username:     "home_chef",
		Email:        "chef@example.com",
		PasswordHash: "hash",
		FirstName:    "Home",
		LastName:     "Chef",
		Role:         model.RoleUser,
	}
	require.NoError(t, userRepo.Create(user))
	require.NotZero(t, user.ID)

	byID, err := userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "home_chef", byID.Username)

	byEmail, err := userRepo.FindByEmail("chef@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byUsername, err := userRepo.FindByUsername("home_chef")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byUsername.ID)
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	userRepo, _ := setupUserRepoTest(t)

	_, err := userRepo.FindByEmail("nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	userRepo, _ := setupUserRepoTest(t)

	first := &model.User{
		Username:     "first",
		Email:        "chef@example.com",
		PasswordHash: "hash",
		FirstName:    "A",
		LastName:     "B",
		Role:         model.RoleUser,
	}
	require.NoError(t, userRepo.Create(first))

	second := &model.User{
		Username:     "second",
		Email:        "chef@example.com",
		PasswordHash: "hash",
		FirstName:    "C",
		LastName:     "D",
		Role:         model.RoleUser,
	}
	assert.Error(t, userRepo.Create(second))
}

func TestUserRepository_FindAllPaginated(t *testing.T) {
	userRepo, testDB := setupUserRepoTest(t)

	for _, username := range []string{"alpha", "bravo", "charlie"} {
		require.NoError(t, testDB.Create(&model.User{
			Username:     username,
			Email:        username + "@example.com",
			PasswordHash: "hash",
			FirstName:    "Test",
			LastName:     "User",
			Role:         model.RoleUser,
		}).Error)
	}

	users, err := userRepo.FindAll(2, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = userRepo.FindAll(2, 2)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	count, err := userRepo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
