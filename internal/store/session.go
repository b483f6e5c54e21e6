package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Domenick1991/eventra/internal/domain"
)

const (
	KeyUsers       = "users"
	KeyCurrentUser = "current_user"
	KeyCart        = "cart"
	KeyBookings    = "bookings"
)

// SessionStore gives typed access to the storefront keys of one browser
// profile. Every key is namespaced under prefix.
type SessionStore struct {
	kv     KV
	prefix string
}

func NewSessionStore(kv KV, prefix string) *SessionStore {
	return &SessionStore{kv: kv, prefix: prefix}
}

// Namespace returns a store sharing the same KV under a longer prefix.
func (s *SessionStore) Namespace(suffix string) *SessionStore {
	return &SessionStore{kv: s.kv, prefix: s.prefix + suffix}
}

func (s *SessionStore) Key(name string) string {
	return s.prefix + name
}

func (s *SessionStore) Users(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if _, err := s.load(ctx, KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *SessionStore) SaveUsers(ctx context.Context, users []domain.User) error {
	return s.save(ctx, KeyUsers, users)
}

// CurrentUser returns the cached session snapshot, or nil when nobody is logged in.
func (s *SessionStore) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	found, err := s.load(ctx, KeyCurrentUser, &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (s *SessionStore) SaveCurrentUser(ctx context.Context, user *domain.User) error {
	return s.save(ctx, KeyCurrentUser, user)
}

func (s *SessionStore) ClearCurrentUser(ctx context.Context) error {
	return s.kv.Delete(ctx, s.Key(KeyCurrentUser))
}

func (s *SessionStore) Cart(ctx context.Context, key string) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	if _, err := s.load(ctx, key, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *SessionStore) SaveCart(ctx context.Context, key string, lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return s.save(ctx, key, lines)
}

func (s *SessionStore) Bookings(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if _, err := s.load(ctx, KeyBookings, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *SessionStore) SaveBookings(ctx context.Context, bookings []domain.Booking) error {
	return s.save(ctx, KeyBookings, bookings)
}

func (s *SessionStore) load(ctx context.Context, name string, dst interface{}) (bool, error) {
	data, err := s.kv.Get(ctx, s.Key(name))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return true, nil
}

func (s *SessionStore) save(ctx context.Context, name string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := s.kv.Set(ctx, s.Key(name), data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
