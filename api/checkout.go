package api

import (
	"net/http"

	"github.com/Domenick1991/eventra/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct{}

func NewCheckoutHandler() *CheckoutHandler {
	return &CheckoutHandler{}
}

func (h *CheckoutHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.checkout)
}

// checkout blocks for the payment delay; a client disconnect cancels the payment.
func (h *CheckoutHandler) checkout(c *gin.Context) {
	var req checkout.Input
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}

	receipt, err := appFrom(c).Checkout.Checkout(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}
