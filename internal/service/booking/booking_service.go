package booking

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/eventra/internal/domain"
	"github.com/Domenick1991/eventra/internal/kafka"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input domain.CreateBookingInput) (*domain.Booking, error)
	GetUserBookings(ctx context.Context, userID string) ([]domain.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (*domain.Booking, error)
}

type Store interface {
	Bookings(ctx context.Context) ([]domain.Booking, error)
	SaveBookings(ctx context.Context, bookings []domain.Booking) error
}

// UserDirectory resolves the session owner and records bookings on the user.
type UserDirectory interface {
	CurrentUser(ctx context.Context) (*domain.User, error)
	AttachBooking(ctx context.Context, userID, bookingID string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	mu                 sync.Mutex
	bookings           Store
	users              UserDirectory
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	strict             bool
	now                func() time.Time
	idSuffix           func() string
	log                logrus.FieldLogger
}

type BookingServiceOption func(*BookingService)

func WithProducer(producer Producer, bookingTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = bookingTopic
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithStrictTransitions rejects unknown statuses and jumps outside
// pending -> confirmed -> completed.
func WithStrictTransitions() BookingServiceOption {
	return func(s *BookingService) {
		s.strict = true
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func WithIDSuffix(fn func() string) BookingServiceOption {
	return func(s *BookingService) {
		s.idSuffix = fn
	}
}

func WithLogger(log logrus.FieldLogger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = log
	}
}

func NewBookingService(bookings Store, users UserDirectory, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		bookings: bookings,
		users:    users,
		now:      func() time.Time { return time.Now().UTC() },
		idSuffix: randomSuffix,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, input domain.CreateBookingInput) (*domain.Booking, error) {
	user, err := s.users.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, domain.ErrEmptyBooking
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.bookings.Bookings(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	items := domain.NormalizeItems(input.Items)
	booking := domain.Booking{
		ID:              strconv.FormatInt(now.UnixMilli(), 10) + s.idSuffix(),
		UserID:          user.ID,
		Items:           items,
		Status:          domain.BookingStatusPending,
		TotalAmount:     domain.BookingTotal(items),
		EventDate:       input.EventDate,
		EventLocation:   input.EventLocation,
		SpecialRequests: input.SpecialRequests,
		TransactionID:   input.TransactionID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// The owner must still exist before the booking is written.
	if err := s.users.AttachBooking(ctx, user.ID, booking.ID); err != nil {
		return nil, fmt.Errorf("attach booking %s to user: %w", booking.ID, err)
	}
	bookings = append(bookings, booking)
	if err := s.bookings.SaveBookings(ctx, bookings); err != nil {
		return nil, err
	}

	if err := s.publish(ctx, "booking_created", &booking, user); err != nil {
		s.log.WithError(err).WithField("booking_id", booking.ID).Warn("failed to publish booking_created event")
	}
	return &booking, nil
}

// GetUserBookings returns the user's bookings oldest first.
func (s *BookingService) GetUserBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	bookings, err := s.bookings.Bookings(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]domain.Booking, 0)
	for _, b := range bookings {
		if b.UserID == userID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	bookings, err := s.bookings.Bookings(ctx)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if bookings[i].ID == bookingID {
			return &bookings[i], nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

// UpdateBookingStatus overwrites the status and updatedAt. Unless strict
// transitions are enabled any status and any jump is accepted.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.bookings.Bookings(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range bookings {
		if bookings[i].ID == bookingID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrBookingNotFound
	}

	if s.strict {
		if !status.Valid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
		}
		if !bookings[idx].Status.CanTransitionTo(status) {
			return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, bookings[idx].Status, status)
		}
	}

	bookings[idx].Status = status
	bookings[idx].UpdatedAt = s.now()
	if err := s.bookings.SaveBookings(ctx, bookings); err != nil {
		return nil, err
	}

	updated := bookings[idx]
	if err := s.publish(ctx, "booking_status_changed", &updated, nil); err != nil {
		s.log.WithError(err).WithField("booking_id", updated.ID).Warn("failed to publish booking_status_changed event")
	}
	return &updated, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking, user *domain.User) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.NewBookingEvent(eventType, booking, user)
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" && event.Email != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event)
	}
	return nil
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}

var _ BookingUseCase = (*BookingService)(nil)
