// Package wizardcache keeps the live onboarding wizards of all sessions in
// memory and expires idle ones.
package wizardcache

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/safeonboard/internal/domain"
	"github.com/nfrund/safeonboard/internal/wizard"
	"github.com/patrickmn/go-cache"
)

// Factory builds a fresh wizard for the given id.
type Factory func(id string) *wizard.Wizard

// EvictFunc runs after a wizard has left the registry, whether it expired
// or was deleted.
type EvictFunc func(id string)

// Registry maps wizard ids to wizards. Every successful Get pushes the
// expiry out by the idle TTL.
type Registry struct {
	cache   *cache.Cache
	ttl     time.Duration
	factory Factory
	onEvict []EvictFunc
	logger  *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithEvictHook adds fn to the hooks run on eviction.
func WithEvictHook(fn EvictFunc) Option {
	return func(r *Registry) { r.onEvict = append(r.onEvict, fn) }
}

// WithLogger sets the registry logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// New creates a registry whose entries expire after ttl without access.
func New(ttl time.Duration, factory Factory, opts ...Option) *Registry {
	r := &Registry{
		cache:   cache.New(ttl, ttl/2),
		ttl:     ttl,
		factory: factory,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.cache.OnEvicted(r.evicted)
	return r
}

func (r *Registry) evicted(id string, v interface{}) {
	if w, ok := v.(*wizard.Wizard); ok {
		w.Close()
	}
	for _, fn := range r.onEvict {
		fn(id)
	}
	r.logger.Debug("wizard evicted", "wizard_id", id)
}

// Create starts a new wizard under a random id.
func (r *Registry) Create() *wizard.Wizard {
	id := uuid.NewString()
	w := r.factory(id)
	r.cache.Set(id, w, cache.DefaultExpiration)
	r.logger.Debug("wizard created", "wizard_id", id)
	return w
}

// Get returns the wizard stored under id and refreshes its expiry.
func (r *Registry) Get(id string) (*wizard.Wizard, error) {
	v, found := r.cache.Get(id)
	if !found {
		return nil, fmt.Errorf("wizard %q: %w", id, domain.ErrWizardNotFound)
	}
	w, ok := v.(*wizard.Wizard)
	if !ok {
		return nil, fmt.Errorf("wizard %q: unexpected entry %T", id, v)
	}
	if err := r.touch(id, w); err != nil {
		return nil, err
	}
	return w, nil
}

// touch pushes the expiry of id out. It fails when the entry was evicted
// after the lookup, so a closed wizard is never stored again.
func (r *Registry) touch(id string, w *wizard.Wizard) error {
	if err := r.cache.Replace(id, w, cache.DefaultExpiration); err != nil {
		return fmt.Errorf("wizard %q: %w", id, domain.ErrWizardNotFound)
	}
	return nil
}

// GetOrCreate returns the wizard under id, or a new one when id is empty
// or no longer known.
func (r *Registry) GetOrCreate(id string) (w *wizard.Wizard, created bool) {
	if id != "" {
		if w, err := r.Get(id); err == nil {
			return w, false
		}
	}
	return r.Create(), true
}

// Delete removes the wizard under id and runs the eviction hooks.
func (r *Registry) Delete(id string) {
	r.cache.Delete(id)
}

// Len returns the number of live wizards, including expired ones not yet
// swept.
func (r *Registry) Len() int {
	return r.cache.ItemCount()
}

// Shutdown evicts every wizard so background work stops and uploads are
// released.
func (r *Registry) Shutdown() {
	for id := range r.cache.Items() {
		r.cache.Delete(id)
	}
}
