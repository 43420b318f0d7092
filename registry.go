package notchity

import (
	"fmt"
	"log/slog"
	"sync"
)

// Registry maps version ranges to adapter factories.
//
// Ranges may overlap. When several ranges contain a version, the one with
// the highest lower bound wins, so a narrow version-specific adapter takes
// precedence over a broad fallback. Remaining ties go to the range with the
// lower upper bound, then to the earlier registration.
type Registry struct {
	descriptors []Descriptor
	mu          sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a descriptor. It fails with ErrDuplicateRegistration when an
// equal range is already registered.
func (r *Registry) Register(d Descriptor) error {
	if d.Factory == nil {
		return fmt.Errorf("%w: %s has no factory", ErrInvalidDescriptor, d.Name)
	}
	if err := d.Range.Validate(); err != nil {
		return fmt.Errorf("adapter %s: %w", d.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.descriptors {
		if existing.Range.Equal(d.Range) {
			return fmt.Errorf("%w: %s and %s both cover %s",
				ErrDuplicateRegistration, existing.Name, d.Name, d.Range)
		}
	}
	r.descriptors = append(r.descriptors, d)
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(ds ...Descriptor) *Registry {
	for _, d := range ds {
		if err := r.Register(d); err != nil {
			panic(err)
		}
	}
	return r
}

// Lookup returns the descriptor selected for v.
func (r *Registry) Lookup(v Version) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	best := -1
	for i, d := range r.descriptors {
		if !d.Range.Contains(v) {
			continue
		}
		if best < 0 || preferred(d.Range, r.descriptors[best].Range) {
			best = i
		}
	}
	if best < 0 {
		return Descriptor{}, &VersionError{Version: v, Err: ErrUnsupportedVersion}
	}
	return r.descriptors[best], nil
}

// preferred reports whether a should win over b when both match.
func preferred(a, b Range) bool {
	if c := a.Min.Compare(b.Min); c != 0 {
		return c > 0
	}
	return a.narrower(b)
}

// Resolve selects the descriptor for env.Version and runs its factory.
func (r *Registry) Resolve(env Env) (Adapter, error) {
	d, err := r.Lookup(env.Version)
	if err != nil {
		return nil, err
	}
	return d.New(env)
}

// New runs the descriptor's factory. A factory returning no adapter is an
// ErrInvalidDescriptor error.
func (d Descriptor) New(env Env) (Adapter, error) {
	if d.Factory == nil {
		return nil, fmt.Errorf("%w: %s has no factory", ErrInvalidDescriptor, d.Name)
	}
	if env.Logger == nil {
		env.Logger = slog.Default()
	}

	a, err := d.Factory(env)
	if err != nil {
		return nil, fmt.Errorf("notchity: adapter %s for %s: %w", d.Name, env.Version, err)
	}
	if a == nil {
		return nil, fmt.Errorf("%w: %s returned no adapter", ErrInvalidDescriptor, d.Name)
	}
	return a, nil
}

// Descriptors returns a snapshot of the registered descriptors in
// registration order.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Descriptor, len(r.descriptors))
	copy(result, r.descriptors)
	return result
}
