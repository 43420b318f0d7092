package notchity

import (
	"fmt"
	"reflect"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// EntityID is the identity of an entity as reported by the host.
type EntityID struct {
	// UUID is the persistent unique id.
	UUID uuid.UUID

	// RuntimeID is the per-session numeric id, or 0 if the host has none.
	RuntimeID int64
}

var (
	uuidType = reflect.TypeOf(uuid.UUID{})
	vec3Type = reflect.TypeOf(mgl64.Vec3{})
)

// UUIDOf converts a native identity value to a UUID. Accepted forms are
// uuid.UUID, [16]byte, strings in any format uuid.Parse understands, and
// values with a String method returning such a string.
func UUIDOf(v reflect.Value) (uuid.UUID, error) {
	v = deref(v)
	if !v.IsValid() {
		return uuid.Nil, fmt.Errorf("nil identity")
	}

	switch {
	case v.Type() == uuidType:
		return v.Interface().(uuid.UUID), nil
	case v.Kind() == reflect.Array && v.Len() == 16 && v.Type().Elem().Kind() == reflect.Uint8:
		var id uuid.UUID
		reflect.Copy(reflect.ValueOf(id[:]), v)
		return id, nil
	case v.Kind() == reflect.String:
		return uuid.Parse(v.String())
	}
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return uuid.Parse(s.String())
	}
	return uuid.Nil, fmt.Errorf("cannot convert %s to uuid", v.Type())
}

// IntOf converts a native integer value to int64.
func IntOf(v reflect.Value) (int64, error) {
	v = deref(v)
	if !v.IsValid() {
		return 0, fmt.Errorf("nil integer")
	}
	switch {
	case v.CanInt():
		return v.Int(), nil
	case v.CanUint():
		return int64(v.Uint()), nil
	}
	return 0, fmt.Errorf("cannot convert %s to integer", v.Type())
}

// FloatOf converts a native numeric value to float64.
func FloatOf(v reflect.Value) (float64, error) {
	v = deref(v)
	if !v.IsValid() {
		return 0, fmt.Errorf("nil number")
	}
	switch {
	case v.CanFloat():
		return v.Float(), nil
	case v.CanInt():
		return float64(v.Int()), nil
	case v.CanUint():
		return float64(v.Uint()), nil
	}
	return 0, fmt.Errorf("cannot convert %s to float", v.Type())
}

// Vec3Of converts a native position to a vector. Accepted forms are
// anything convertible to mgl64.Vec3 (e.g. [3]float64) and structs with
// numeric X, Y and Z fields.
func Vec3Of(v reflect.Value) (mgl64.Vec3, error) {
	v = deref(v)
	if !v.IsValid() {
		return mgl64.Vec3{}, fmt.Errorf("nil position")
	}
	if v.Type().ConvertibleTo(vec3Type) {
		return v.Convert(vec3Type).Interface().(mgl64.Vec3), nil
	}
	if v.Kind() == reflect.Struct {
		var out mgl64.Vec3
		for i, name := range [3]string{"X", "Y", "Z"} {
			f := v.FieldByName(name)
			if !f.IsValid() {
				return mgl64.Vec3{}, fmt.Errorf("%s has no field %s", v.Type(), name)
			}
			n, err := FloatOf(f)
			if err != nil {
				return mgl64.Vec3{}, err
			}
			out[i] = n
		}
		return out, nil
	}
	return mgl64.Vec3{}, fmt.Errorf("cannot convert %s to position", v.Type())
}

// deref follows pointers and interfaces down to a concrete value.
func deref(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
