package notchity

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// HandleKind tells how a Handle reaches its target.
type HandleKind int

const (
	// HandleMethod is a zero-argument method returning at least one value.
	HandleMethod HandleKind = iota
	// HandleField is a struct field, possibly promoted through embedding.
	HandleField
	// HandleSymbol is a function exported by the host.
	HandleSymbol
	// HandleValue is a host value found through a registry lookup.
	HandleValue
)

// String returns the string representation of HandleKind.
func (k HandleKind) String() string {
	switch k {
	case HandleMethod:
		return "Method"
	case HandleField:
		return "Field"
	case HandleSymbol:
		return "Symbol"
	case HandleValue:
		return "Value"
	default:
		return "Unknown"
	}
}

// Handle is a resolved reference into the host runtime: a method or field
// of a native type, or a host symbol. Handles are immutable once resolved
// and are shared by every caller of the Cache that holds them.
type Handle struct {
	// Name is the member or symbol name that matched.
	Name string

	// Kind tells how the handle is used.
	Kind HandleKind

	// Owner is the native type the member belongs to (nil for symbols).
	Owner reflect.Type

	// Type is the method's result type, the field's type or the function type.
	Type reflect.Type

	method int
	index  []int

	// fn holds the symbol function or the wrapped value
	fn reflect.Value
}

// ResolveMember finds the first of names on t, trying exported zero-argument
// methods before exported fields.
func ResolveMember(t reflect.Type, names ...string) (*Handle, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", ErrMemberNotFound)
	}
	for _, name := range names {
		if m, ok := t.MethodByName(name); ok && m.Type.NumIn() == 1 && m.Type.NumOut() >= 1 {
			return &Handle{Name: name, Kind: HandleMethod, Owner: t, Type: m.Type.Out(0), method: m.Index}, nil
		}
		if h, ok := fieldHandle(t, name); ok {
			return h, nil
		}
	}
	return nil, notFound(t.String(), names)
}

// ResolveField finds the first exported field of t matching names.
func ResolveField(t reflect.Type, names ...string) (*Handle, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", ErrMemberNotFound)
	}
	for _, name := range names {
		if h, ok := fieldHandle(t, name); ok {
			return h, nil
		}
	}
	return nil, notFound(t.String(), names)
}

// ResolveSymbol finds the first of names the host exports as a function.
func ResolveSymbol(host Host, names ...string) (*Handle, error) {
	if host == nil {
		return nil, fmt.Errorf("%w: no host", ErrMemberNotFound)
	}
	for _, name := range names {
		sym, ok := host.Symbol(name)
		if !ok || sym == nil {
			continue
		}
		fn := reflect.ValueOf(sym)
		if fn.Kind() != reflect.Func {
			continue
		}
		return &Handle{Name: name, Kind: HandleSymbol, Type: fn.Type(), fn: fn}, nil
	}
	return nil, notFound("host", names)
}

// ValueHandle wraps a host value found by name, such as an entry of a
// platform registry, so it can be memoized in a Cache.
func ValueHandle(name string, v any) *Handle {
	return &Handle{Name: name, Kind: HandleValue, Type: reflect.TypeOf(v), fn: reflect.ValueOf(v)}
}

// Value returns the value of a HandleValue handle, or nil for other kinds.
func (h *Handle) Value() any {
	if h.Kind != HandleValue || !h.fn.IsValid() {
		return nil
	}
	return h.fn.Interface()
}

// fieldHandle resolves an exported field of t or of the struct t points to.
func fieldHandle(t reflect.Type, name string) (*Handle, bool) {
	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		return nil, false
	}
	sf, ok := st.FieldByName(name)
	if !ok || !sf.IsExported() {
		return nil, false
	}
	return &Handle{Name: name, Kind: HandleField, Owner: t, Type: sf.Type, index: sf.Index}, true
}

func notFound(owner string, names []string) error {
	return fmt.Errorf("%w: %s has none of %s", ErrMemberNotFound, owner, strings.Join(names, ", "))
}

// Get reads the handle's target from v: the method's first result or the
// field's value. A trailing error result of a method is returned as err.
func (h *Handle) Get(v reflect.Value) (reflect.Value, error) {
	switch h.Kind {
	case HandleMethod:
		if !v.IsValid() || v.Type() != h.Owner {
			return reflect.Value{}, h.mismatch(v)
		}
		out := v.Method(h.method).Call(nil)
		if err := trailingError(out); err != nil {
			return reflect.Value{}, err
		}
		return out[0], nil
	case HandleField:
		f, err := h.field(v)
		if err != nil {
			return reflect.Value{}, err
		}
		return f, nil
	default:
		return reflect.Value{}, fmt.Errorf("notchity: handle %s is a %s", h.Name, h.Kind)
	}
}

// Set assigns x to the handle's field on v. v must be a pointer to the
// owning struct so the field is addressable.
func (h *Handle) Set(v reflect.Value, x reflect.Value) error {
	if h.Kind != HandleField {
		return fmt.Errorf("notchity: handle %s is a %s, not a field", h.Name, h.Kind)
	}
	f, err := h.field(v)
	if err != nil {
		return err
	}
	if !f.CanSet() {
		return fmt.Errorf("notchity: field %s of %s is not settable", h.Name, h.Owner)
	}
	if !x.IsValid() {
		f.SetZero()
		return nil
	}
	if !x.Type().AssignableTo(f.Type()) {
		if !x.Type().ConvertibleTo(f.Type()) {
			return fmt.Errorf("notchity: cannot assign %s to field %s %s", x.Type(), h.Name, f.Type())
		}
		x = x.Convert(f.Type())
	}
	f.Set(x)
	return nil
}

// Call invokes a symbol handle. Arguments are converted to the parameter
// types where Go allows it. A trailing error result is returned as err and
// stripped from the results.
func (h *Handle) Call(args ...any) ([]reflect.Value, error) {
	if h.Kind != HandleSymbol {
		return nil, fmt.Errorf("notchity: handle %s is a %s, not a symbol", h.Name, h.Kind)
	}
	ft := h.fn.Type()
	if ft.IsVariadic() || ft.NumIn() != len(args) {
		return nil, fmt.Errorf("notchity: symbol %s takes %d arguments, got %d", h.Name, ft.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		want := ft.In(i)
		v := reflect.ValueOf(arg)
		switch {
		case !v.IsValid():
			v = reflect.Zero(want)
		case v.Type().AssignableTo(want):
		case v.Type().ConvertibleTo(want):
			v = v.Convert(want)
		default:
			return nil, fmt.Errorf("notchity: symbol %s argument %d: cannot use %s as %s", h.Name, i, v.Type(), want)
		}
		in[i] = v
	}

	out := h.fn.Call(in)
	if err := trailingError(out); err != nil {
		return nil, err
	}
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		out = out[:n-1]
	}
	return out, nil
}

func (h *Handle) field(v reflect.Value) (reflect.Value, error) {
	if !v.IsValid() || v.Type() != h.Owner {
		return reflect.Value{}, h.mismatch(v)
	}
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("notchity: nil %s", h.Owner)
		}
		v = v.Elem()
	}
	f, err := v.FieldByIndexErr(h.index)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("notchity: field %s: %w", h.Name, err)
	}
	return f, nil
}

func (h *Handle) mismatch(v reflect.Value) error {
	if !v.IsValid() {
		return fmt.Errorf("notchity: handle %s used on nil value", h.Name)
	}
	return fmt.Errorf("notchity: handle %s resolved for %s used on %s", h.Name, h.Owner, v.Type())
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// trailingError returns the last result if it is a non-nil error.
func trailingError(out []reflect.Value) error {
	if len(out) == 0 {
		return nil
	}
	last := out[len(out)-1]
	if last.Type() != errorType || last.IsNil() {
		return nil
	}
	return last.Interface().(error)
}

// IsMemberNotFound reports whether err stems from a failed resolution.
func IsMemberNotFound(err error) bool {
	return errors.Is(err, ErrMemberNotFound)
}
