package notchity

import (
	"fmt"
	"image/color"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
)

// Facade is the single entry point calling code depends on.
//
// A Facade binds to exactly one adapter and forwards every capability call
// to it. Until Bind succeeds every call fails with ErrNotInitialized. The
// binding is published once through an atomic pointer, so calls after
// binding take no locks and are safe from any goroutine.
type Facade struct {
	bound atomic.Pointer[binding]

	// bindMu serializes Bind
	bindMu sync.Mutex

	options Options
}

// binding is the published result of Bind. It is never mutated.
type binding struct {
	adapter    Adapter
	version    Version
	descriptor string
}

// NewFacade creates an unbound facade.
func NewFacade(opts ...Option) *Facade {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Facade{options: options}
}

// Bind detects the host version, resolves the adapter registered for it and
// binds the facade to it.
//
// Errors are fatal for the facade's purpose: ErrMalformedVersion when the
// version cannot be parsed, ErrUnsupportedVersion when no adapter covers it,
// or the factory's error. On failure nothing is published and the facade
// stays unbound. A bound facade is never rebound.
func (f *Facade) Bind(reg *Registry, host Host) error {
	f.bindMu.Lock()
	defer f.bindMu.Unlock()

	if b := f.bound.Load(); b != nil {
		return fmt.Errorf("%w to %s (%s)", ErrAlreadyBound, b.descriptor, b.version)
	}
	if reg == nil {
		return fmt.Errorf("%w: nil registry", ErrInvalidDescriptor)
	}

	log := f.options.Logger
	if log == nil {
		log = slog.Default()
	}

	raw := f.options.VersionOverride
	if raw == "" && host != nil {
		raw = host.Version()
	}
	v, err := Parse(raw)
	if err != nil {
		log.Error("notchity: cannot parse server version", "version", raw, "error", err)
		return err
	}

	d, err := reg.Lookup(v)
	if err != nil {
		log.Error("notchity: no adapter for server version", "version", v.String(), "error", err)
		return err
	}

	a, err := d.New(Env{Host: host, Version: v, Logger: log})
	if err != nil {
		log.Error("notchity: adapter initialization failed", "adapter", d.Name, "version", v.String(), "error", err)
		return err
	}

	f.bound.Store(&binding{adapter: a, version: v, descriptor: d.Name})
	log.Info("notchity: bound adapter",
		"adapter", a.Name(),
		"range", d.Range.String(),
		"version", v.String())
	return nil
}

// load returns the binding or ErrNotInitialized.
func (f *Facade) load() (*binding, error) {
	b := f.bound.Load()
	if b == nil {
		return nil, ErrNotInitialized
	}
	return b, nil
}

// Bound reports whether Bind has succeeded.
func (f *Facade) Bound() bool {
	return f.bound.Load() != nil
}

// Version returns the bound server version.
func (f *Facade) Version() (Version, error) {
	b, err := f.load()
	if err != nil {
		return Version{}, err
	}
	return b.version, nil
}

// AdapterName returns the name of the bound adapter.
func (f *Facade) AdapterName() (string, error) {
	b, err := f.load()
	if err != nil {
		return "", err
	}
	return b.adapter.Name(), nil
}

// Material converts a logical material to the host representation.
func (f *Facade) Material(m Material) (NativeMaterial, error) {
	b, err := f.load()
	if err != nil {
		return NativeMaterial{}, err
	}
	return b.adapter.Material(m)
}

// NewItem constructs a native item.
func (f *Facade) NewItem(m Material, count int) (any, error) {
	b, err := f.load()
	if err != nil {
		return nil, err
	}
	return b.adapter.NewItem(m, count)
}

// EntityID returns the identity of a native entity.
func (f *Facade) EntityID(entity any) (EntityID, error) {
	b, err := f.load()
	if err != nil {
		return EntityID{}, err
	}
	return b.adapter.EntityID(entity)
}

// EntityPosition returns the position of a native entity.
func (f *Facade) EntityPosition(entity any) (mgl64.Vec3, error) {
	b, err := f.load()
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return b.adapter.EntityPosition(entity)
}

// ReadTag returns the custom data tag of a native item.
func (f *Facade) ReadTag(item any) (Tag, error) {
	b, err := f.load()
	if err != nil {
		return nil, err
	}
	return b.adapter.ReadTag(item)
}

// WriteTag stores tag on a native item and returns the item.
func (f *Facade) WriteTag(item any, tag Tag) (any, error) {
	b, err := f.load()
	if err != nil {
		return nil, err
	}
	return b.adapter.WriteTag(item, tag)
}

// EncodeTag encodes a tag in the host's NBT encoding.
func (f *Facade) EncodeTag(tag Tag) ([]byte, error) {
	b, err := f.load()
	if err != nil {
		return nil, err
	}
	return b.adapter.EncodeTag(tag)
}

// DecodeTag decodes a tag in the host's NBT encoding.
func (f *Facade) DecodeTag(data []byte) (Tag, error) {
	b, err := f.load()
	if err != nil {
		return nil, err
	}
	return b.adapter.DecodeTag(data)
}

// TitlePackets returns the packets that display t.
func (f *Facade) TitlePackets(t Title) ([]Packet, error) {
	b, err := f.load()
	if err != nil {
		return nil, err
	}
	return b.adapter.TitlePackets(t)
}

// FormatColor returns the chat formatting code for an RGB colour.
func (f *Facade) FormatColor(c color.RGBA) (string, error) {
	b, err := f.load()
	if err != nil {
		return "", err
	}
	return b.adapter.FormatColor(c)
}
