package identity

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/Domenick1991/eventra/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type IdentityUseCase interface {
	Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Logout(ctx context.Context) error
	IsLoggedIn(ctx context.Context) (bool, error)
	CurrentUser(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error)
	AddToFavorites(ctx context.Context, item domain.ItemData) (bool, error)
	RemoveFromFavorites(ctx context.Context, itemID string) (bool, error)
	IsFavorite(ctx context.Context, itemID string) (bool, error)
	Favorites(ctx context.Context) ([]domain.FavoriteItem, error)
	AttachBooking(ctx context.Context, userID, bookingID string) error
}

// Store is the part of the session store the identity manager owns.
type Store interface {
	Users(ctx context.Context) ([]domain.User, error)
	SaveUsers(ctx context.Context, users []domain.User) error
	CurrentUser(ctx context.Context) (*domain.User, error)
	SaveCurrentUser(ctx context.Context, user *domain.User) error
	ClearCurrentUser(ctx context.Context) error
}

type Service struct {
	mu         sync.Mutex
	store      Store
	bcryptCost int
	now        func() time.Time
	log        logrus.FieldLogger
}

type ServiceOption func(*Service)

func WithBcryptCost(cost int) ServiceOption {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

func WithLogger(log logrus.FieldLogger) ServiceOption {
	return func(s *Service) {
		s.log = log
	}
}

func NewService(store Store, opts ...ServiceOption) *Service {
	s := &Service{
		store:      store,
		bcryptCost: bcrypt.DefaultCost,
		now:        func() time.Time { return time.Now().UTC() },
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates the user and logs them in. Emails are compared as exact,
// case-sensitive strings.
func (s *Service) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
	if input.Email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	if input.Password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == input.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := domain.User{
		ID:           newUserID(now, users),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hash),
		Phone:        input.Phone,
		Address:      input.Address,
		Favorites:    []domain.FavoriteItem{},
		Bookings:     []string{},
		CreatedAt:    now,
	}

	users = append(users, user)
	if err := s.store.SaveUsers(ctx, users); err != nil {
		return nil, err
	}
	if err := s.store.SaveCurrentUser(ctx, &user); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID}).Info("user registered")
	return &user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(users[i].PasswordHash), []byte(password)) != nil {
			break
		}
		user := users[i]
		if err := s.store.SaveCurrentUser(ctx, &user); err != nil {
			return nil, err
		}
		s.log.WithFields(logrus.Fields{"user_id": user.ID}).Info("user logged in")
		return &user, nil
	}

	return nil, domain.ErrInvalidCredentials
}

func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.ClearCurrentUser(ctx)
}

func (s *Service) IsLoggedIn(ctx context.Context) (bool, error) {
	user, err := s.store.CurrentUser(ctx)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// CurrentUser returns the session snapshot or ErrNotAuthenticated.
func (s *Service) CurrentUser(ctx context.Context) (*domain.User, error) {
	user, err := s.store.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	if update.Email != "" && update.Email != current.Email {
		users, err := s.store.Users(ctx)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			if u.Email == update.Email && u.ID != current.ID {
				return nil, domain.ErrDuplicateEmail
			}
		}
	}

	updated, found, err := s.updateUser(ctx, current.ID, func(u *domain.User) bool {
		mergeProfile(u, update)
		return true
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrUserNotFound
	}
	return updated, nil
}

// AddToFavorites returns false when nobody is logged in or the item is already a favorite.
func (s *Service) AddToFavorites(ctx context.Context, item domain.ItemData) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.store.CurrentUser(ctx)
	if err != nil || current == nil {
		return false, err
	}

	_, changed, err := s.updateUser(ctx, current.ID, func(u *domain.User) bool {
		if u.HasFavorite(item.ID) {
			return false
		}
		u.Favorites = append(u.Favorites, domain.FavoriteItem{ItemData: item, AddedAt: s.now()})
		return true
	})
	return changed, err
}

// RemoveFromFavorites returns false when nobody is logged in or the item is not a favorite.
func (s *Service) RemoveFromFavorites(ctx context.Context, itemID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.store.CurrentUser(ctx)
	if err != nil || current == nil {
		return false, err
	}

	_, changed, err := s.updateUser(ctx, current.ID, func(u *domain.User) bool {
		idx := u.FavoriteIndex(itemID)
		if idx < 0 {
			return false
		}
		u.Favorites = append(u.Favorites[:idx], u.Favorites[idx+1:]...)
		return true
	})
	return changed, err
}

func (s *Service) IsFavorite(ctx context.Context, itemID string) (bool, error) {
	current, err := s.store.CurrentUser(ctx)
	if err != nil || current == nil {
		return false, err
	}
	return current.HasFavorite(itemID), nil
}

func (s *Service) Favorites(ctx context.Context) ([]domain.FavoriteItem, error) {
	current, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if current.Favorites == nil {
		return []domain.FavoriteItem{}, nil
	}
	return current.Favorites, nil
}

// AttachBooking records bookingID on the owning user.
func (s *Service) AttachBooking(ctx context.Context, userID, bookingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, found, err := s.updateUser(ctx, userID, func(u *domain.User) bool {
		u.Bookings = append(u.Bookings, bookingID)
		return true
	})
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrUserNotFound
	}
	return nil
}

// updateUser applies fn to the stored user and, when fn reports a change,
// writes the user list back and refreshes the session snapshot if it belongs
// to the same user. The boolean result is false when the user is missing or
// fn made no change.
func (s *Service) updateUser(ctx context.Context, userID string, fn func(*domain.User) bool) (*domain.User, bool, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, false, err
	}

	idx := -1
	for i := range users {
		if users[i].ID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false, nil
	}

	if !fn(&users[idx]) {
		return &users[idx], false, nil
	}

	if err := s.store.SaveUsers(ctx, users); err != nil {
		return nil, false, err
	}

	updated := users[idx]
	current, err := s.store.CurrentUser(ctx)
	if err != nil {
		return nil, false, err
	}
	if current != nil && current.ID == userID {
		if err := s.store.SaveCurrentUser(ctx, &updated); err != nil {
			return nil, false, err
		}
	}
	return &updated, true, nil
}

func mergeProfile(u *domain.User, update domain.ProfileUpdate) {
	if update.FirstName != "" {
		u.FirstName = update.FirstName
	}
	if update.LastName != "" {
		u.LastName = update.LastName
	}
	if update.Email != "" {
		u.Email = update.Email
	}
	if update.Phone != "" {
		u.Phone = update.Phone
	}
	if update.Address != "" {
		u.Address = update.Address
	}
}

// newUserID is the registration time in milliseconds, bumped past any id
// already taken by a registration in the same millisecond.
func newUserID(now time.Time, users []domain.User) string {
	taken := make(map[string]struct{}, len(users))
	for _, u := range users {
		taken[u.ID] = struct{}{}
	}
	ms := now.UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if _, ok := taken[id]; !ok {
			return id
		}
		ms++
	}
}

var _ IdentityUseCase = (*Service)(nil)
