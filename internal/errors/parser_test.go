package errors

import (
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestParseError_RecordNotFound(t *testing.T) {
	info := ParseError(gorm.ErrRecordNotFound, "recipe")
	assert.Equal(t, ResourceNotFound, info.Code)
	assert.Equal(t, "Recipe not found", info.Message)
}

func TestParseError_UniqueViolationByIndexName(t *testing.T) {
	tests := []struct {
		name     string
		errMsg   string
		wantCode string
	}{
		{
			name:     "favorites index",
			errMsg:   `duplicate key value violates unique constraint "idx_favorites_user_recipe"`,
			wantCode: FavoriteAlreadyExists,
		},
		{
			name:     "cart items index",
			errMsg:   `duplicate key value violates unique constraint "idx_cart_items_user_recipe"`,
			wantCode: CartItemAlreadyExists,
		},
		{
			name:     "subscriptions index",
			errMsg:   `duplicate key value violates unique constraint "idx_subscriptions_user_author"`,
			wantCode: SubscriptionExists,
		},
		{
			name:     "user email index",
			errMsg:   `duplicate key value violates unique constraint "idx_users_email"`,
			wantCode: AuthEmailAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseError(stderrors.New(tt.errMsg), "create")
			assert.Equal(t, tt.wantCode, info.Code)
		})
	}
}

func TestParseError_UniqueViolationByTableColumn(t *testing.T) {
	// SQLite reports the columns instead of the index name
	tests := []struct {
		name     string
		errMsg   string
		wantCode string
	}{
		{
			name:     "favorites",
			errMsg:   "UNIQUE constraint failed: favorites.user_id, favorites.recipe_id",
			wantCode: FavoriteAlreadyExists,
		},
		{
			name:     "cart items",
			errMsg:   "UNIQUE constraint failed: cart_items.user_id, cart_items.recipe_id",
			wantCode: CartItemAlreadyExists,
		},
		{
			name:     "subscriptions",
			errMsg:   "UNIQUE constraint failed: subscriptions.user_id, subscriptions.author_id",
			wantCode: SubscriptionExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseError(stderrors.New(tt.errMsg), "create")
			assert.Equal(t, tt.wantCode, info.Code)
		})
	}
}

func TestParseError_UnknownError(t *testing.T) {
	info := ParseError(stderrors.New("disk exploded"), "create")
	assert.Equal(t, InternalServerError, info.Code)
}

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestParseAndRespond_DuplicateRowAnswers400(t *testing.T) {
	// A duplicate row from a racing insert must not surface as a 500
	c, w := testContext()

	err := stderrors.New("UNIQUE constraint failed: favorites.user_id, favorites.recipe_id")
	ParseAndRespond(c, http.StatusInternalServerError, err, "add to favorite")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), FavoriteAlreadyExists)
}

func TestParseAndRespond_RecordNotFoundAnswers404(t *testing.T) {
	c, w := testContext()

	ParseAndRespond(c, http.StatusInternalServerError, gorm.ErrRecordNotFound, "recipe")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), ResourceNotFound)
}

func TestParseAndRespond_UnknownErrorUsesFallback(t *testing.T) {
	c, w := testContext()

	ParseAndRespond(c, http.StatusInternalServerError, stderrors.New("disk exploded"), "create recipe")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), InternalServerError)
}
