package api

import (
	"net/http"

	"github.com/Domenick1991/eventra/internal/domain"
	"github.com/gin-gonic/gin"
)

type CartHandler struct{}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func NewCartHandler() *CartHandler {
	return &CartHandler{}
}

func (h *CartHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.summary)
	router.DELETE("", h.clear)
	router.POST("/items", h.addItem)
	router.PUT("/items/:id", h.updateQuantity)
	router.DELETE("/items/:id", h.removeItem)
}

func (h *CartHandler) summary(c *gin.Context) {
	summary, err := appFrom(c).Cart.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *CartHandler) addItem(c *gin.Context) {
	var item domain.ItemData
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, err)
		return
	}

	line, err := appFrom(c).Cart.AddItem(c.Request.Context(), item)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, line)
}

func (h *CartHandler) updateQuantity(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := appFrom(c).Cart.UpdateQuantity(c.Request.Context(), c.Param("id"), *req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	h.summary(c)
}

func (h *CartHandler) removeItem(c *gin.Context) {
	if err := appFrom(c).Cart.RemoveItem(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	h.summary(c)
}

func (h *CartHandler) clear(c *gin.Context) {
	if err := appFrom(c).Cart.Clear(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	h.summary(c)
}
