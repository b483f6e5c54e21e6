package api

import (
	"net/http"
	"testing"

	"github.com/Domenick1991/eventra/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestFavoritesHandler_add(t *testing.T) {
	m := newMockApp("p1")
	r := newTestRouter(m)

	m.identity.On("IsLoggedIn", mock.Anything).Return(true, nil)
	m.identity.On("AddToFavorites", mock.Anything, mock.MatchedBy(func(item domain.ItemData) bool {
		return item.ID == "lights" && item.Price.String() == "1500"
	})).Return(true, nil).Once()

	w := do(t, r, http.MethodPost, "/api/v1/favorites", map[string]interface{}{
		"id": "lights", "title": "LED Par Lights", "price": "₹1,500",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"added":true}`, w.Body.String())
	m.identity.AssertExpectations(t)
}

func TestFavoritesHandler_add_RequiresLogin(t *testing.T) {
	m := newMockApp("p1")
	r := newTestRouter(m)

	m.identity.On("IsLoggedIn", mock.Anything).Return(false, nil)

	w := do(t, r, http.MethodPost, "/api/v1/favorites", map[string]interface{}{"id": "lights"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	m.identity.AssertNotCalled(t, "AddToFavorites", mock.Anything, mock.Anything)
}

func TestFavoritesHandler_add_MissingID(t *testing.T) {
	m := newMockApp("p1")
	r := newTestRouter(m)

	w := do(t, r, http.MethodPost, "/api/v1/favorites", map[string]interface{}{"title": "x"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFavoritesHandler_listCheckRemove(t *testing.T) {
	m := newMockApp("p1")
	r := newTestRouter(m)

	m.identity.On("Favorites", mock.Anything).Return([]domain.FavoriteItem{{ItemData: domain.ItemData{ID: "lights"}}}, nil)
	m.identity.On("IsFavorite", mock.Anything, "lights").Return(true, nil)
	m.identity.On("IsLoggedIn", mock.Anything).Return(true, nil)
	m.identity.On("RemoveFromFavorites", mock.Anything, "lights").Return(true, nil)

	w := do(t, r, http.MethodGet, "/api/v1/favorites", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"lights"`)

	w = do(t, r, http.MethodGet, "/api/v1/favorites/lights", nil)
	assert.JSONEq(t, `{"favorite":true}`, w.Body.String())

	w = do(t, r, http.MethodDelete, "/api/v1/favorites/lights", nil)
	assert.JSONEq(t, `{"removed":true}`, w.Body.String())
}
