package api

import (
	"context"

	"github.com/Domenick1991/eventra/internal/domain"
	"github.com/Domenick1991/eventra/internal/service/checkout"
	"github.com/Domenick1991/eventra/internal/storefront"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockIdentityUseCase struct {
	mock.Mock
}

func (m *MockIdentityUseCase) userResult(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockIdentityUseCase) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
	return m.userResult(m.Called(ctx, input))
}

func (m *MockIdentityUseCase) Login(ctx context.Context, email, password string) (*domain.User, error) {
	return m.userResult(m.Called(ctx, email, password))
}

func (m *MockIdentityUseCase) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockIdentityUseCase) IsLoggedIn(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdentityUseCase) CurrentUser(ctx context.Context) (*domain.User, error) {
	return m.userResult(m.Called(ctx))
}

func (m *MockIdentityUseCase) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	return m.userResult(m.Called(ctx, update))
}

func (m *MockIdentityUseCase) AddToFavorites(ctx context.Context, item domain.ItemData) (bool, error) {
	args := m.Called(ctx, item)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdentityUseCase) RemoveFromFavorites(ctx context.Context, itemID string) (bool, error) {
	args := m.Called(ctx, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdentityUseCase) IsFavorite(ctx context.Context, itemID string) (bool, error) {
	args := m.Called(ctx, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdentityUseCase) Favorites(ctx context.Context) ([]domain.FavoriteItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FavoriteItem), args.Error(1)
}

func (m *MockIdentityUseCase) AttachBooking(ctx context.Context, userID, bookingID string) error {
	return m.Called(ctx, userID, bookingID).Error(0)
}

type MockCartUseCase struct {
	mock.Mock
}

func (m *MockCartUseCase) AddItem(ctx context.Context, item domain.ItemData) (*domain.CartLine, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CartLine), args.Error(1)
}

func (m *MockCartUseCase) RemoveItem(ctx context.Context, itemID string) error {
	return m.Called(ctx, itemID).Error(0)
}

func (m *MockCartUseCase) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	return m.Called(ctx, itemID, quantity).Error(0)
}

func (m *MockCartUseCase) Items(ctx context.Context) ([]domain.CartLine, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.CartLine), args.Error(1)
}

func (m *MockCartUseCase) Total(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCartUseCase) ItemCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockCartUseCase) Summary(ctx context.Context) (domain.CartSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.CartSummary), args.Error(1)
}

func (m *MockCartUseCase) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) bookingResult(args mock.Arguments) (*domain.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, input domain.CreateBookingInput) (*domain.Booking, error) {
	return m.bookingResult(m.Called(ctx, input))
}

func (m *MockBookingUseCase) GetUserBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	return m.bookingResult(m.Called(ctx, bookingID))
}

func (m *MockBookingUseCase) UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (*domain.Booking, error) {
	return m.bookingResult(m.Called(ctx, bookingID, status))
}

type MockCheckoutUseCase struct {
	mock.Mock
}

func (m *MockCheckoutUseCase) Checkout(ctx context.Context, input checkout.Input) (*checkout.Receipt, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Receipt), args.Error(1)
}

type mockApp struct {
	identity *MockIdentityUseCase
	cart     *MockCartUseCase
	bookings *MockBookingUseCase
	checkout *MockCheckoutUseCase
	app      *storefront.App
}

func newMockApp(profileID string) *mockApp {
	m := &mockApp{
		identity: &MockIdentityUseCase{},
		cart:     &MockCartUseCase{},
		bookings: &MockBookingUseCase{},
		checkout: &MockCheckoutUseCase{},
	}
	m.app = &storefront.App{
		ProfileID: profileID,
		Identity:  m.identity,
		Cart:      m.cart,
		Bookings:  m.bookings,
		Checkout:  m.checkout,
	}
	return m
}

// For satisfies AppResolver for every profile id.
func (m *mockApp) For(string) (*storefront.App, error) {
	return m.app, nil
}
