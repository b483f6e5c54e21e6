package api

import (
	"net/http"

	"github.com/Domenick1991/eventra/internal/domain"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct{}

type createBookingRequest struct {
	Items           []domain.BookingItem `json:"items" binding:"required"`
	EventDate       string               `json:"eventDate"`
	EventLocation   string               `json:"eventLocation"`
	SpecialRequests string               `json:"specialRequests"`
	TransactionID   string               `json:"transactionId"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func NewBookingHandler() *BookingHandler {
	return &BookingHandler{}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id/status", h.updateStatus)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	booking, err := appFrom(c).Bookings.CreateBooking(c.Request.Context(), domain.CreateBookingInput{
		Items:           req.Items,
		EventDate:       req.EventDate,
		EventLocation:   req.EventLocation,
		SpecialRequests: req.SpecialRequests,
		TransactionID:   req.TransactionID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) list(c *gin.Context) {
	app := appFrom(c)
	user, err := app.Identity.CurrentUser(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	bookings, err := app.Bookings.GetUserBookings(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// get only reveals bookings owned by the logged-in user.
func (h *BookingHandler) get(c *gin.Context) {
	booking, ok := h.owned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, booking)
}

// updateStatus is limited to the owner, like get.
func (h *BookingHandler) updateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if _, ok := h.owned(c); !ok {
		return
	}

	booking, err := appFrom(c).Bookings.UpdateBookingStatus(c.Request.Context(), c.Param("id"), domain.BookingStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// owned loads the :id booking and answers 401/404 unless the session user owns it.
func (h *BookingHandler) owned(c *gin.Context) (*domain.Booking, bool) {
	app := appFrom(c)
	user, err := app.Identity.CurrentUser(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	booking, err := app.Bookings.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if booking.UserID != user.ID {
		respondError(c, domain.ErrBookingNotFound)
		return nil, false
	}
	return booking, true
}
