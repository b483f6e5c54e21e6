package api

import (
	"net/http"

	"github.com/Domenick1991/eventra/internal/domain"
	"github.com/gin-gonic/gin"
)

type FavoritesHandler struct{}

func NewFavoritesHandler() *FavoritesHandler {
	return &FavoritesHandler{}
}

func (h *FavoritesHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.add)
	router.GET("/:id", h.check)
	router.DELETE("/:id", h.remove)
}

func (h *FavoritesHandler) list(c *gin.Context) {
	favorites, err := appFrom(c).Identity.Favorites(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

func (h *FavoritesHandler) add(c *gin.Context) {
	var item domain.ItemData
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, err)
		return
	}
	if item.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item id is required"})
		return
	}
	if !h.requireLogin(c) {
		return
	}

	added, err := appFrom(c).Identity.AddToFavorites(c.Request.Context(), item)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

func (h *FavoritesHandler) check(c *gin.Context) {
	favorite, err := appFrom(c).Identity.IsFavorite(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorite": favorite})
}

func (h *FavoritesHandler) remove(c *gin.Context) {
	if !h.requireLogin(c) {
		return
	}

	removed, err := appFrom(c).Identity.RemoveFromFavorites(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (h *FavoritesHandler) requireLogin(c *gin.Context) bool {
	loggedIn, err := appFrom(c).Identity.IsLoggedIn(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return false
	}
	if !loggedIn {
		respondError(c, domain.ErrNotAuthenticated)
		return false
	}
	return true
}
