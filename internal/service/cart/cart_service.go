package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Domenick1991/eventra/internal/domain"
	"github.com/Domenick1991/eventra/internal/store"
	"github.com/shopspring/decimal"
)

type CartUseCase interface {
	AddItem(ctx context.Context, item domain.ItemData) (*domain.CartLine, error)
	RemoveItem(ctx context.Context, itemID string) error
	UpdateQuantity(ctx context.Context, itemID string, quantity int) error
	Items(ctx context.Context) ([]domain.CartLine, error)
	Total(ctx context.Context) (decimal.Decimal, error)
	ItemCount(ctx context.Context) (int, error)
	Summary(ctx context.Context) (domain.CartSummary, error)
	Clear(ctx context.Context) error
}

type Store interface {
	Cart(ctx context.Context, key string) ([]domain.CartLine, error)
	SaveCart(ctx context.Context, key string, lines []domain.CartLine) error
}

type SessionReader interface {
	CurrentUser(ctx context.Context) (*domain.User, error)
}

type Scope string

const (
	// ScopeShared keeps one cart per browser profile, surviving login and logout.
	ScopeShared Scope = "shared"
	// ScopeSession keeps a cart per logged-in user plus one guest cart.
	ScopeSession Scope = "session"
)

// ChangeListener is called after every persisted cart mutation.
type ChangeListener func(ctx context.Context, summary domain.CartSummary)

type Service struct {
	mu        sync.Mutex
	store     Store
	scope     Scope
	session   SessionReader
	now       func() time.Time
	listeners []ChangeListener
}

type ServiceOption func(*Service)

func WithSessionScope(session SessionReader) ServiceOption {
	return func(s *Service) {
		s.scope = ScopeSession
		s.session = session
	}
}

func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

func WithChangeListener(l ChangeListener) ServiceOption {
	return func(s *Service) {
		s.listeners = append(s.listeners, l)
	}
}

func NewService(st Store, opts ...ServiceOption) *Service {
	s := &Service{
		store: st,
		scope: ScopeShared,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddItem increments the quantity of an existing line or appends a new line with quantity 1.
func (s *Service) AddItem(ctx context.Context, item domain.ItemData) (*domain.CartLine, error) {
	if item.ID == "" {
		return nil, fmt.Errorf("%w: item id is required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key, lines, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOf(lines, item.ID)
	if idx >= 0 {
		lines[idx].Quantity++
	} else {
		lines = append(lines, domain.CartLine{ItemData: item, Quantity: 1, AddedAt: s.now()})
		idx = len(lines) - 1
	}
	line := lines[idx]

	if err := s.persist(ctx, key, lines); err != nil {
		return nil, err
	}
	return &line, nil
}

func (s *Service) RemoveItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove(ctx, itemID)
}

// UpdateQuantity sets the quantity of an existing line; quantity <= 0 removes
// the line and unknown ids are ignored.
func (s *Service) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, lines, err := s.load(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(lines, itemID)
	if idx < 0 {
		return nil
	}
	if quantity <= 0 {
		return s.remove(ctx, itemID)
	}
	lines[idx].Quantity = quantity
	return s.persist(ctx, key, lines)
}

func (s *Service) Items(ctx context.Context) ([]domain.CartLine, error) {
	_, lines, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return lines, nil
}

func (s *Service) Total(ctx context.Context) (decimal.Decimal, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return summary.Total, nil
}

// ItemCount is the sum of quantities, not the number of lines.
func (s *Service) ItemCount(ctx context.Context) (int, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return 0, err
	}
	return summary.ItemCount, nil
}

func (s *Service) Summary(ctx context.Context) (domain.CartSummary, error) {
	_, lines, err := s.load(ctx)
	if err != nil {
		return domain.CartSummary{}, err
	}
	return domain.SummarizeCart(lines), nil
}

func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, err := s.key(ctx)
	if err != nil {
		return err
	}
	return s.persist(ctx, key, []domain.CartLine{})
}

func (s *Service) remove(ctx context.Context, itemID string) error {
	key, lines, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := lines[:0]
	for _, l := range lines {
		if l.ID != itemID {
			kept = append(kept, l)
		}
	}
	return s.persist(ctx, key, kept)
}

func (s *Service) load(ctx context.Context) (string, []domain.CartLine, error) {
	key, err := s.key(ctx)
	if err != nil {
		return "", nil, err
	}
	lines, err := s.store.Cart(ctx, key)
	if err != nil {
		return "", nil, err
	}
	return key, lines, nil
}

func (s *Service) persist(ctx context.Context, key string, lines []domain.CartLine) error {
	if err := s.store.SaveCart(ctx, key, lines); err != nil {
		return err
	}
	if len(s.listeners) > 0 {
		summary := domain.SummarizeCart(lines)
		for _, l := range s.listeners {
			l(ctx, summary)
		}
	}
	return nil
}

func (s *Service) key(ctx context.Context) (string, error) {
	if s.scope != ScopeSession || s.session == nil {
		return store.KeyCart, nil
	}
	user, err := s.session.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			return store.KeyCart + ":guest", nil
		}
		return "", err
	}
	return store.KeyCart + ":" + user.ID, nil
}

func indexOf(lines []domain.CartLine, itemID string) int {
	for i := range lines {
		if lines[i].ID == itemID {
			return i
		}
	}
	return -1
}

var _ CartUseCase = (*Service)(nil)
