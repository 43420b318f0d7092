package bukkit

import (
	"github.com/oriumgames/notchity"
)

// Family is a group of server versions sharing one internal layout.
type Family int

const (
	// Legacy covers 1.5 to 1.7.10: numeric materials, no titles.
	Legacy Family = iota
	// Bountiful covers 1.8 to 1.12.2: numeric materials, title packets.
	Bountiful
	// Flattened covers 1.13 to 1.20.4: namespaced materials, NBT item tags.
	Flattened
	// Component covers 1.20.5 and 1.20.6: item data components.
	Component
)

// Families lists every family from oldest to newest.
func Families() []Family {
	return []Family{Legacy, Bountiful, Flattened, Component}
}

// String returns the string representation of Family.
func (f Family) String() string {
	switch f {
	case Legacy:
		return "Legacy"
	case Bountiful:
		return "Bountiful"
	case Flattened:
		return "Flattened"
	case Component:
		return "Component"
	default:
		return "Unknown"
	}
}

// Version boundaries between families.
var (
	v1_5    = notchity.NewVersion(1, 5, 0)
	v1_8    = notchity.NewVersion(1, 8, 0)
	v1_13   = notchity.NewVersion(1, 13, 0)
	v1_16   = notchity.NewVersion(1, 16, 0)
	v1_17   = notchity.NewVersion(1, 17, 0)
	v1_20_5 = notchity.NewVersion(1, 20, 5)
	v1_21   = notchity.NewVersion(1, 21, 0)
)

// Range returns the versions f covers.
func (f Family) Range() notchity.Range {
	switch f {
	case Legacy:
		return notchity.Between(v1_5, v1_8)
	case Bountiful:
		return notchity.Between(v1_8, v1_13)
	case Flattened:
		return notchity.Between(v1_13, v1_20_5)
	case Component:
		return notchity.Between(v1_20_5, v1_21)
	default:
		return notchity.Range{}
	}
}

// flattened reports whether materials use namespaced keys.
func (f Family) flattened() bool {
	return f >= Flattened
}

// Descriptors returns one descriptor per family.
func Descriptors() []notchity.Descriptor {
	families := Families()
	ds := make([]notchity.Descriptor, 0, len(families))
	for _, f := range families {
		ds = append(ds, notchity.Descriptor{
			Name:    "bukkit/" + f.String(),
			Range:   f.Range(),
			Factory: factory(f),
		})
	}
	return ds
}

// Register adds every family's descriptor to reg.
func Register(reg *notchity.Registry) error {
	for _, d := range Descriptors() {
		if err := reg.Register(d); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding every family.
func NewRegistry() *notchity.Registry {
	return notchity.NewRegistry().MustRegister(Descriptors()...)
}

func factory(f Family) notchity.Factory {
	return func(env notchity.Env) (notchity.Adapter, error) {
		return newAdapter(f, env), nil
	}
}
