package checkout

import (
	"context"
	"fmt"

	"github.com/Domenick1991/eventra/internal/domain"
	"github.com/sirupsen/logrus"
)

type CheckoutUseCase interface {
	Checkout(ctx context.Context, input Input) (*Receipt, error)
}

type SessionReader interface {
	CurrentUser(ctx context.Context) (*domain.User, error)
}

type Cart interface {
	Items(ctx context.Context) ([]domain.CartLine, error)
	Clear(ctx context.Context) error
}

type Bookings interface {
	CreateBooking(ctx context.Context, input domain.CreateBookingInput) (*domain.Booking, error)
}

type Payments interface {
	ProcessPayment(ctx context.Context, req domain.PaymentRequest) (*domain.Transaction, error)
}

// Input describes one payment. When Items is empty the cart is checked out
// and every line is rented for RentalDays.
type Input struct {
	Method          string               `json:"method"`
	Items           []domain.BookingItem `json:"items"`
	RentalDays      int                  `json:"rentalDays"`
	EventDate       string               `json:"eventDate"`
	EventLocation   string               `json:"eventLocation"`
	SpecialRequests string               `json:"specialRequests"`
}

type Receipt struct {
	Transaction *domain.Transaction `json:"transaction"`
	Booking     *domain.Booking     `json:"booking"`
}

type Service struct {
	session  SessionReader
	cart     Cart
	bookings Bookings
	payments Payments
	log      logrus.FieldLogger
}

type ServiceOption func(*Service)

func WithLogger(log logrus.FieldLogger) ServiceOption {
	return func(s *Service) {
		s.log = log
	}
}

func NewService(session SessionReader, cart Cart, bookings Bookings, payments Payments, opts ...ServiceOption) *Service {
	s := &Service{
		session:  session,
		cart:     cart,
		bookings: bookings,
		payments: payments,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Checkout charges the booking total, then records the booking with the
// transaction id. The cart is cleared only when it was the source of the
// items. A declined payment leaves cart and bookings untouched.
func (s *Service) Checkout(ctx context.Context, input Input) (*Receipt, error) {
	user, err := s.session.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	items := input.Items
	fromCart := len(items) == 0
	if fromCart {
		lines, err := s.cart.Items(ctx)
		if err != nil {
			return nil, err
		}
		if len(lines) == 0 {
			return nil, domain.ErrEmptyCart
		}
		items = cartToBooking(lines, input.RentalDays)
	}
	items = domain.NormalizeItems(items)

	method := input.Method
	if method == "" {
		method = "card"
	}

	txn, err := s.payments.ProcessPayment(ctx, domain.PaymentRequest{
		Amount: domain.BookingTotal(items),
		Method: method,
	})
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.CreateBooking(ctx, domain.CreateBookingInput{
		Items:           items,
		EventDate:       input.EventDate,
		EventLocation:   input.EventLocation,
		SpecialRequests: input.SpecialRequests,
		TransactionID:   txn.ID,
	})
	if err != nil {
		s.log.WithError(err).WithField("transaction_id", txn.ID).Error("payment captured but booking failed")
		return nil, fmt.Errorf("create booking for %s: %w", txn.ID, err)
	}

	if fromCart {
		if err := s.cart.Clear(ctx); err != nil {
			return nil, err
		}
	}

	s.log.WithFields(logrus.Fields{
		"user_id":        user.ID,
		"booking_id":     booking.ID,
		"transaction_id": txn.ID,
	}).Info("checkout completed")
	return &Receipt{Transaction: txn, Booking: booking}, nil
}

func cartToBooking(lines []domain.CartLine, rentalDays int) []domain.BookingItem {
	items := make([]domain.BookingItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.BookingItem{
			ItemData:   l.ItemData,
			Quantity:   l.Quantity,
			RentalDays: rentalDays,
		})
	}
	return items
}

var _ CheckoutUseCase = (*Service)(nil)
