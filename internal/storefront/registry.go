package storefront

import (
	"container/list"
	"fmt"
	"strings"
	"sync"

	"github.com/Domenick1991/eventra/internal/domain"
	"github.com/Domenick1991/eventra/internal/store"
	"github.com/google/uuid"
)

const DefaultMaxProfiles = 10000

// Registry hands out one App per browser profile, all backed by the same KV.
// At most maxProfiles Apps are kept; the least recently used one is dropped
// first. Apps hold no state of their own, so a dropped profile is rebuilt
// from the KV on its next request.
type Registry struct {
	mu          sync.Mutex
	kv          store.KV
	prefix      string
	deps        Deps
	maxProfiles int
	apps        map[string]*list.Element
	order       *list.List
}

type RegistryOption func(*Registry)

func WithMaxProfiles(n int) RegistryOption {
	return func(r *Registry) {
		if n > 0 {
			r.maxProfiles = n
		}
	}
}

func NewRegistry(kv store.KV, prefix string, deps Deps, opts ...RegistryOption) *Registry {
	r := &Registry{
		kv:          kv,
		prefix:      prefix,
		deps:        deps,
		maxProfiles: DefaultMaxProfiles,
		apps:        make(map[string]*list.Element),
		order:       list.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// For returns the App of profileID, building it on first use. Its keys live
// under <prefix>profile:<id>:.
func (r *Registry) For(profileID string) (*App, error) {
	if profileID == "" || strings.ContainsAny(profileID, ": ") {
		return nil, fmt.Errorf("%w: bad profile id %q", domain.ErrInvalidInput, profileID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if el, ok := r.apps[profileID]; ok {
		r.order.MoveToFront(el)
		return el.Value.(*App), nil
	}

	session := store.NewSessionStore(r.kv, r.prefix).Namespace("profile:" + profileID + ":")
	app := New(profileID, session, r.deps)
	r.apps[profileID] = r.order.PushFront(app)

	for r.order.Len() > r.maxProfiles {
		oldest := r.order.Back()
		r.order.Remove(oldest)
		delete(r.apps, oldest.Value.(*App).ProfileID)
	}
	return app, nil
}

// Len is the number of cached Apps.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.order.Len()
}

func NewProfileID() string {
	return uuid.NewString()
}
