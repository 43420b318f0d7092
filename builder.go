package notchity

import "log/slog"

// Builder configures a Facade and its registry before binding.
// Use NewBuilder() to create a builder and chain configuration methods.
type Builder struct {
	descriptors []Descriptor
	options     []Option
}

// NewBuilder creates a new builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Register adds adapter descriptors.
//
// Example:
//
//	builder.Register(bukkit.Descriptors()...)
func (b *Builder) Register(ds ...Descriptor) *Builder {
	b.descriptors = append(b.descriptors, ds...)
	return b
}

// Logger sets the logger used by the facade and its adapter.
func (b *Builder) Logger(l *slog.Logger) *Builder {
	b.options = append(b.options, WithLogger(l))
	return b
}

// VersionOverride makes the facade ignore the host's reported version.
func (b *Builder) VersionOverride(raw string) *Builder {
	b.options = append(b.options, WithVersionOverride(raw))
	return b
}

// Init registers all descriptors and binds a new facade to host.
// Registration and binding errors are returned unchanged; no facade is
// returned on failure.
func (b *Builder) Init(host Host) (*Facade, error) {
	reg := NewRegistry()
	for _, d := range b.descriptors {
		if err := reg.Register(d); err != nil {
			return nil, err
		}
	}

	f := NewFacade(b.options...)
	if err := f.Bind(reg, host); err != nil {
		return nil, err
	}
	return f, nil
}

// MustInit is like Init but panics on error.
func (b *Builder) MustInit(host Host) *Facade {
	f, err := b.Init(host)
	if err != nil {
		panic("notchity: failed to bind adapter: " + err.Error())
	}
	return f
}
