package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed},
	BookingStatusConfirmed: {BookingStatusCompleted},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether next follows s in pending -> confirmed -> completed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type BookingItem struct {
	ItemData
	Quantity   int `json:"quantity"`
	RentalDays int `json:"rentalDays"`
}

func (i BookingItem) Total() decimal.Decimal {
	return i.Price.Decimal().
		Mul(decimal.NewFromInt(int64(i.Quantity))).
		Mul(decimal.NewFromInt(int64(i.RentalDays)))
}

type Booking struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []BookingItem   `json:"items"`
	Status          BookingStatus   `json:"status"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	EventDate       string          `json:"eventDate"`
	EventLocation   string          `json:"eventLocation"`
	SpecialRequests string          `json:"specialRequests,omitempty"`
	TransactionID   string          `json:"transactionId,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type CreateBookingInput struct {
	Items           []BookingItem `json:"items"`
	EventDate       string        `json:"eventDate"`
	EventLocation   string        `json:"eventLocation"`
	SpecialRequests string        `json:"specialRequests"`
	TransactionID   string        `json:"transactionId"`
}

// NormalizeItems defaults missing quantity and rental duration to one.
func NormalizeItems(items []BookingItem) []BookingItem {
	out := make([]BookingItem, len(items))
	for i, item := range items {
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		if item.RentalDays <= 0 {
			item.RentalDays = 1
		}
		out[i] = item
	}
	return out
}

// BookingTotal is the sum of price x quantity x rentalDays over normalised items.
func BookingTotal(items []BookingItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range NormalizeItems(items) {
		total = total.Add(item.Total())
	}
	return total
}
