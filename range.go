package notchity

import "fmt"

// Range is a set of versions with an inclusive lower bound and an exclusive
// or inclusive upper bound. An unbounded range has no upper bound.
type Range struct {
	Min          Version
	Max          Version
	MaxInclusive bool
	Unbounded    bool
}

// Between returns [min, max).
func Between(min, max Version) Range {
	return Range{Min: min.Core(), Max: max.Core()}
}

// Through returns [min, max].
func Through(min, max Version) Range {
	return Range{Min: min.Core(), Max: max.Core(), MaxInclusive: true}
}

// From returns [min, ∞).
func From(min Version) Range {
	return Range{Min: min.Core(), Unbounded: true}
}

// Contains reports whether v lies within r.
func (r Range) Contains(v Version) bool {
	if v.Less(r.Min) {
		return false
	}
	if r.Unbounded {
		return true
	}
	c := v.Compare(r.Max)
	return c < 0 || (c == 0 && r.MaxInclusive)
}

// Equal reports whether r and other describe the same set of versions
// with the same bounds. Tags are ignored.
func (r Range) Equal(other Range) bool {
	if !r.Min.Equal(other.Min) || r.Unbounded != other.Unbounded {
		return false
	}
	if r.Unbounded {
		return true
	}
	return r.Max.Equal(other.Max) && r.MaxInclusive == other.MaxInclusive
}

// Validate returns ErrInvalidRange if r contains no versions.
func (r Range) Validate() error {
	if r.Unbounded {
		return nil
	}
	c := r.Min.Compare(r.Max)
	if c > 0 || (c == 0 && !r.MaxInclusive) {
		return fmt.Errorf("%w: %s", ErrInvalidRange, r)
	}
	return nil
}

// narrower reports whether r's upper bound sorts before other's.
func (r Range) narrower(other Range) bool {
	switch {
	case r.Unbounded || other.Unbounded:
		return !r.Unbounded && other.Unbounded
	case !r.Max.Equal(other.Max):
		return r.Max.Less(other.Max)
	default:
		return !r.MaxInclusive && other.MaxInclusive
	}
}

// String formats r in interval notation, e.g. [1.8.0, 1.13.0).
func (r Range) String() string {
	if r.Unbounded {
		return fmt.Sprintf("[%s, ∞)", r.Min.Core())
	}
	closing := ")"
	if r.MaxInclusive {
		closing = "]"
	}
	return fmt.Sprintf("[%s, %s%s", r.Min.Core(), r.Max.Core(), closing)
}
