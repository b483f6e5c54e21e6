package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/eventra/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockKV struct {
	mock.Mock
}

func (m *MockKV) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKV) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockKV) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func TestSessionStore_EmptyStore(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore(NewMemoryKV(), "eventra_")

	users, err := s.Users(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	current, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	lines, err := s.Cart(ctx, KeyCart)
	require.NoError(t, err)
	assert.Empty(t, lines)

	bookings, err := s.Bookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestSessionStore_UsesPrefixedKeys(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s := NewSessionStore(kv, "eventra_")

	require.NoError(t, s.SaveUsers(ctx, []domain.User{{ID: "1", Email: "a@x.com"}}))
	require.NoError(t, s.SaveCart(ctx, KeyCart, nil))

	dump := kv.Dump()
	assert.Contains(t, dump, "eventra_users")
	assert.Equal(t, "[]", string(dump["eventra_cart"]))
}

func TestSessionStore_Namespace(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	root := NewSessionStore(kv, "eventra_")
	a := root.Namespace("profile:a:")
	b := root.Namespace("profile:b:")

	require.NoError(t, a.SaveCurrentUser(ctx, &domain.User{ID: "1"}))

	got, err := b.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, "eventra_profile:a:current_user", a.Key(KeyCurrentUser))
}

func TestSessionStore_CurrentUserLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore(NewMemoryKV(), "")
	user := &domain.User{ID: "1", Email: "a@x.com", CreatedAt: time.Now().UTC().Truncate(time.Millisecond)}

	require.NoError(t, s.SaveCurrentUser(ctx, user))
	got, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a@x.com", got.Email)
	assert.True(t, user.CreatedAt.Equal(got.CreatedAt))

	require.NoError(t, s.ClearCurrentUser(ctx))
	got, err = s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStore_BackendErrorsAreWrapped(t *testing.T) {
	ctx := context.Background()
	kv := &MockKV{}
	s := NewSessionStore(kv, "p_")
	boom := errors.New("connection refused")

	kv.On("Get", ctx, "p_users").Return(nil, boom).Once()
	kv.On("Set", ctx, "p_bookings", mock.Anything).Return(boom).Once()

	_, err := s.Users(ctx)
	assert.ErrorIs(t, err, boom)

	err = s.SaveBookings(ctx, []domain.Booking{})
	assert.ErrorIs(t, err, boom)

	kv.AssertExpectations(t)
}

func TestSessionStore_CorruptValue(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, "users", []byte("{not json")))

	_, err := NewSessionStore(kv, "").Users(ctx)
	assert.Error(t, err)
}
