package booking

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Domenick1991/eventra/internal/domain"
	"github.com/Domenick1991/eventra/internal/kafka"
	"github.com/Domenick1991/eventra/internal/store"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) CurrentUser(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserDirectory) AttachBooking(ctx context.Context, userID, bookingID string) error {
	args := m.Called(ctx, userID, bookingID)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

var (
	fixedNow = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	asha     = &domain.User{ID: "u1", FirstName: "Asha", LastName: "Rao", Email: "a@x.com"}
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestService(users UserDirectory, opts ...BookingServiceOption) (*BookingService, *store.SessionStore) {
	session := store.NewSessionStore(store.NewMemoryKV(), "eventra_")
	base := []BookingServiceOption{
		WithClock(func() time.Time { return fixedNow }),
		WithIDSuffix(func() string { return "abc123def" }),
		WithLogger(quietLogger()),
	}
	return NewBookingService(session, users, append(base, opts...)...), session
}

func soundSystem(qty, days int) domain.BookingItem {
	return domain.BookingItem{
		ItemData:   domain.ItemData{ID: "professional-sound-system", Title: "Professional Sound System", Price: domain.MustParsePrice("₹8,500")},
		Quantity:   qty,
		RentalDays: days,
	}
}

// ============================ CreateBooking ============================

func TestBookingService_CreateBooking_Success(t *testing.T) {
	users := &MockUserDirectory{}
	producer := &MockProducer{}
	service, _ := newTestService(users, WithProducer(producer, "booking_topic"))
	ctx := context.Background()

	users.On("CurrentUser", ctx).Return(asha, nil).Once()
	users.On("AttachBooking", ctx, "u1", mock.AnythingOfType("string")).Return(nil).Once()
	producer.On("Publish", ctx, "booking_topic", mock.Anything, mock.AnythingOfType("kafka.BookingEvent")).Return(nil).Once()

	booking, err := service.CreateBooking(ctx, domain.CreateBookingInput{
		Items:         []domain.BookingItem{soundSystem(2, 3)},
		EventDate:     "2025-09-15",
		EventLocation: "Grand Ballroom, Mumbai",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPending, booking.Status)
	assert.Equal(t, "u1", booking.UserID)
	assert.True(t, decimal.NewFromInt(8500*2*3).Equal(booking.TotalAmount), "total %s", booking.TotalAmount)
	assert.Equal(t, "1756720800000abc123def", booking.ID)
	assert.Equal(t, fixedNow, booking.CreatedAt)

	users.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestBookingService_CreateBooking_NotAuthenticated(t *testing.T) {
	users := &MockUserDirectory{}
	service, session := newTestService(users)
	ctx := context.Background()

	users.On("CurrentUser", ctx).Return(nil, domain.ErrNotAuthenticated).Once()

	booking, err := service.CreateBooking(ctx, domain.CreateBookingInput{Items: []domain.BookingItem{soundSystem(1, 1)}})

	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Nil(t, booking)

	stored, err := session.Bookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
	users.AssertNotCalled(t, "AttachBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_CreateBooking_EmptyItems(t *testing.T) {
	users := &MockUserDirectory{}
	service, _ := newTestService(users)
	ctx := context.Background()

	users.On("CurrentUser", ctx).Return(asha, nil).Once()

	_, err := service.CreateBooking(ctx, domain.CreateBookingInput{})

	assert.ErrorIs(t, err, domain.ErrEmptyBooking)
}

func TestBookingService_CreateBooking_DefaultsRentalDaysAndQuantity(t *testing.T) {
	users := &MockUserDirectory{}
	service, _ := newTestService(users)
	ctx := context.Background()

	users.On("CurrentUser", ctx).Return(asha, nil).Once()
	users.On("AttachBooking", ctx, "u1", mock.Anything).Return(nil).Once()

	booking, err := service.CreateBooking(ctx, domain.CreateBookingInput{Items: []domain.BookingItem{soundSystem(0, 0)}})

	require.NoError(t, err)
	assert.Equal(t, 1, booking.Items[0].Quantity)
	assert.Equal(t, 1, booking.Items[0].RentalDays)
	assert.True(t, decimal.NewFromInt(8500).Equal(booking.TotalAmount))
}

func TestBookingService_CreateBooking_PublishFailureIsNotFatal(t *testing.T) {
	users := &MockUserDirectory{}
	producer := &MockProducer{}
	service, _ := newTestService(users, WithProducer(producer, "booking_topic"))
	ctx := context.Background()

	users.On("CurrentUser", ctx).Return(asha, nil).Once()
	users.On("AttachBooking", ctx, "u1", mock.Anything).Return(nil).Once()
	producer.On("Publish", ctx, "booking_topic", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	booking, err := service.CreateBooking(ctx, domain.CreateBookingInput{Items: []domain.BookingItem{soundSystem(1, 1)}})

	require.NoError(t, err)
	assert.NotNil(t, booking)
	producer.AssertExpectations(t)
}

func TestBookingService_CreateBooking_NotificationTopic(t *testing.T) {
	users := &MockUserDirectory{}
	producer := &MockProducer{}
	service, _ := newTestService(users, WithProducer(producer, "booking_topic"), WithNotificationsTopic("notifications"))
	ctx := context.Background()

	users.On("CurrentUser", ctx).Return(asha, nil).Once()
	users.On("AttachBooking", ctx, "u1", mock.Anything).Return(nil).Once()
	producer.On("Publish", ctx, "booking_topic", mock.Anything, mock.Anything).Return(nil).Once()
	producer.On("Publish", ctx, "notifications", mock.Anything, mock.MatchedBy(func(e kafka.BookingEvent) bool {
		return e.Email == "a@x.com" && e.Type == "booking_created"
	})).Return(nil).Once()

	_, err := service.CreateBooking(ctx, domain.CreateBookingInput{Items: []domain.BookingItem{soundSystem(1, 1)}})

	require.NoError(t, err)
	producer.AssertExpectations(t)
}

func TestBookingService_CreateBooking_AttachFailure(t *testing.T) {
	users := &MockUserDirectory{}
	producer := &MockProducer{}
	service, session := newTestService(users, WithProducer(producer, "booking_topic"))
	ctx := context.Background()

	users.On("CurrentUser", ctx).Return(asha, nil).Once()
	users.On("AttachBooking", ctx, "u1", mock.Anything).Return(domain.ErrUserNotFound).Once()

	booking, err := service.CreateBooking(ctx, domain.CreateBookingInput{Items: []domain.BookingItem{soundSystem(1, 1)}})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Nil(t, booking)

	stored, err := session.Bookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)

	owned, err := service.GetUserBookings(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, owned)
	producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_CreateBooking_UniqueIDs(t *testing.T) {
	users := &MockUserDirectory{}
	session := store.NewSessionStore(store.NewMemoryKV(), "")
	service := NewBookingService(session, users,
		WithClock(func() time.Time { return fixedNow }),
		WithLogger(quietLogger()),
	)
	ctx := context.Background()

	users.On("CurrentUser", ctx).Return(asha, nil)
	users.On("AttachBooking", ctx, "u1", mock.Anything).Return(nil)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		b, err := service.CreateBooking(ctx, domain.CreateBookingInput{Items: []domain.BookingItem{soundSystem(1, 1)}})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(b.ID, "1756720800000"))
		assert.False(t, seen[b.ID], "duplicate id %s", b.ID)
		seen[b.ID] = true
	}
}

// ============================ Queries ============================

func TestBookingService_GetUserBookings(t *testing.T) {
	users := &MockUserDirectory{}
	service, session := newTestService(users)
	ctx := context.Background()

	require.NoError(t, session.SaveBookings(ctx, []domain.Booking{
		{ID: "1", UserID: "u1"},
		{ID: "2", UserID: "u2"},
		{ID: "3", UserID: "u1"},
	}))

	bookings, err := service.GetUserBookings(ctx, "u1")

	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "1", bookings[0].ID)
	assert.Equal(t, "3", bookings[1].ID)

	none, err := service.GetUserBookings(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestBookingService_GetBooking(t *testing.T) {
	service, session := newTestService(&MockUserDirectory{})
	ctx := context.Background()

	require.NoError(t, session.SaveBookings(ctx, []domain.Booking{{ID: "1", UserID: "u1"}}))

	b, err := service.GetBooking(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "u1", b.UserID)

	_, err = service.GetBooking(ctx, "2")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

// ============================ UpdateBookingStatus ============================

func seedPending(t *testing.T, session *store.SessionStore) {
	t.Helper()
	earlier := fixedNow.Add(-time.Hour)
	require.NoError(t, session.SaveBookings(context.Background(), []domain.Booking{
		{ID: "1", UserID: "u1", Status: domain.BookingStatusPending, CreatedAt: earlier, UpdatedAt: earlier},
	}))
}

// Without strict transitions any jump is accepted, including pending -> completed.
func TestBookingService_UpdateBookingStatus_Permissive(t *testing.T) {
	service, session := newTestService(&MockUserDirectory{})
	ctx := context.Background()
	seedPending(t, session)

	updated, err := service.UpdateBookingStatus(ctx, "1", domain.BookingStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCompleted, updated.Status)
	assert.Equal(t, fixedNow, updated.UpdatedAt)

	updated, err = service.UpdateBookingStatus(ctx, "1", domain.BookingStatus("on-hold"))
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatus("on-hold"), updated.Status)

	stored, err := service.GetBooking(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatus("on-hold"), stored.Status)
}

func TestBookingService_UpdateBookingStatus_Strict(t *testing.T) {
	service, session := newTestService(&MockUserDirectory{}, WithStrictTransitions())
	ctx := context.Background()
	seedPending(t, session)

	_, err := service.UpdateBookingStatus(ctx, "1", domain.BookingStatusCompleted)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = service.UpdateBookingStatus(ctx, "1", domain.BookingStatus("cancelled"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	updated, err := service.UpdateBookingStatus(ctx, "1", domain.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, updated.Status)

	updated, err = service.UpdateBookingStatus(ctx, "1", domain.BookingStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCompleted, updated.Status)

	_, err = service.UpdateBookingStatus(ctx, "1", domain.BookingStatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestBookingService_UpdateBookingStatus_NotFound(t *testing.T) {
	service, _ := newTestService(&MockUserDirectory{})

	_, err := service.UpdateBookingStatus(context.Background(), "missing", domain.BookingStatusConfirmed)

	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestBookingService_UpdateBookingStatus_KeepsTotal(t *testing.T) {
	service, session := newTestService(&MockUserDirectory{})
	ctx := context.Background()
	require.NoError(t, session.SaveBookings(ctx, []domain.Booking{
		{ID: "1", UserID: "u1", Status: domain.BookingStatusPending, Items: []domain.BookingItem{soundSystem(1, 1)}, TotalAmount: decimal.NewFromInt(1)},
	}))

	updated, err := service.UpdateBookingStatus(ctx, "1", domain.BookingStatusConfirmed)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1).Equal(updated.TotalAmount))
}

func TestBookingService_UpdateBookingStatus_Publishes(t *testing.T) {
	producer := &MockProducer{}
	service, session := newTestService(&MockUserDirectory{}, WithProducer(producer, "booking_topic"))
	ctx := context.Background()
	seedPending(t, session)

	producer.On("Publish", ctx, "booking_topic", "1", mock.MatchedBy(func(e kafka.BookingEvent) bool {
		return e.Type == "booking_status_changed" && e.Status == "confirmed"
	})).Return(nil).Once()

	_, err := service.UpdateBookingStatus(ctx, "1", domain.BookingStatusConfirmed)

	require.NoError(t, err)
	producer.AssertExpectations(t)
}
