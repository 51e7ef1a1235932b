package controller

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/recipehub/recipehub-backend/internal/app/dto"
	"github.com/recipehub/recipehub-backend/internal/app/service"
	"github.com/recipehub/recipehub-backend/internal/middleware"
)

// stubFavoriteService returns canned results so the toggle handlers can be
// driven into specific error branches
type stubFavoriteService struct {
	addErr    error
	removeErr error
}

func (s *stubFavoriteService) AddFavorite(userID, recipeID uint) (*dto.RecipePreview, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	return &dto.RecipePreview{ID: recipeID}, nil
}

func (s *stubFavoriteService) RemoveFavorite(userID, recipeID uint) error {
	return s.removeErr
}

type stubCartService struct {
	addErr error
}

func (s *stubCartService) AddToCart(userID, recipeID uint) (*dto.RecipePreview, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	return &dto.RecipePreview{ID: recipeID}, nil
}

func (s *stubCartService) RemoveFromCart(userID, recipeID uint) error {
	return nil
}

func (s *stubCartService) BuildShoppingList(userID uint) (string, error) {
	return "", nil
}

func toggleRouter(favorites service.FavoriteService, cart service.ShoppingCartService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewRecipeController(nil, favorites, cart)

	router := gin.New()
	authed := func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uint(1))
		c.Next()
	}
	router.POST("/recipes/:id/favorite", authed, ctrl.Favorite)
	router.DELETE("/recipes/:id/favorite", authed, ctrl.Unfavorite)
	router.POST("/recipes/:id/shopping_cart", authed, ctrl.AddToCart)
	return router
}

func TestFavorite_DuplicateDetectedByService(t *testing.T) {
	router := toggleRouter(&stubFavoriteService{addErr: service.ErrAlreadyFavorited}, &stubCartService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/recipes/5/favorite", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFavorite_RacingDuplicateAnswers400(t *testing.T) {
	// A second identical add can slip past the service's existence check
	// and fail on the unique index instead; the database error must map
	// to the same 400 the check produces
	raceErr := errors.New("UNIQUE constraint failed: favorites.user_id, favorites.recipe_id")
	router := toggleRouter(&stubFavoriteService{addErr: raceErr}, &stubCartService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/recipes/5/favorite", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "FAVORITE_ALREADY_EXISTS")
}

func TestAddToCart_RacingDuplicateAnswers400(t *testing.T) {
	raceErr := errors.New("UNIQUE constraint failed: cart_items.user_id, cart_items.recipe_id")
	router := toggleRouter(&stubFavoriteService{}, &stubCartService{addErr: raceErr})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/recipes/5/shopping_cart", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CART_ITEM_ALREADY_EXISTS")
}

func TestFavorite_UnknownErrorAnswers500(t *testing.T) {
	router := toggleRouter(&stubFavoriteService{addErr: errors.New("connection reset")}, &stubCartService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/recipes/5/favorite", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUnfavorite_AbsentAnswers400(t *testing.T) {
	router := toggleRouter(&stubFavoriteService{removeErr: service.ErrNotFavorited}, &stubCartService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/recipes/5/favorite", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
