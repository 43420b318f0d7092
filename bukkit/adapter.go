package bukkit

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oriumgames/notchity"
	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

// customDataKey is the data component holding plugin data from 1.20.5.
const customDataKey = "minecraft:custom_data"

// adapter implements notchity.Adapter for one family. Every capability
// dispatches on the family; per-type member lookups are memoized in cache.
type adapter struct {
	family  Family
	version notchity.Version
	host    notchity.Host
	cache   *notchity.Cache
	logger  *slog.Logger
}

func newAdapter(f Family, env notchity.Env) *adapter {
	logger := env.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &adapter{
		family:  f,
		version: env.Version,
		host:    env.Host,
		cache:   notchity.NewCache(),
		logger:  logger,
	}
}

// Name returns "bukkit/<family>".
func (a *adapter) Name() string {
	return "bukkit/" + a.family.String()
}

// Member names per family.
var (
	legacyUUIDNames  = []string{"UniqueID", "GetUniqueID"}
	modernUUIDNames  = []string{"UUID", "GetUUID", "UniqueID"}
	legacyIDNames    = []string{"ID", "EntityID"}
	modernIDNames    = []string{"EntityID", "ID"}
	positionNames    = []string{"Position", "Location"}
	itemStackSymbols = []string{"ItemStack", "NewItemStack"}
)

func (a *adapter) uuidNames() []string {
	if a.family.flattened() {
		return modernUUIDNames
	}
	return legacyUUIDNames
}

func (a *adapter) runtimeIDNames() []string {
	if a.family.flattened() {
		return modernIDNames
	}
	return legacyIDNames
}

// member resolves a method or field of t through the cache.
func (a *adapter) member(op string, t reflect.Type, names ...string) (*notchity.Handle, error) {
	return a.cache.GetOrResolve(notchity.CacheKey{Op: op, Type: t}, func() (*notchity.Handle, error) {
		h, err := notchity.ResolveMember(t, names...)
		if err != nil {
			return nil, err
		}
		a.resolved(op, t, h)
		return h, nil
	})
}

// field resolves a field of t through the cache.
func (a *adapter) field(op string, t reflect.Type, names ...string) (*notchity.Handle, error) {
	return a.cache.GetOrResolve(notchity.CacheKey{Op: op, Type: t}, func() (*notchity.Handle, error) {
		h, err := notchity.ResolveField(t, names...)
		if err != nil {
			return nil, err
		}
		a.resolved(op, t, h)
		return h, nil
	})
}

// symbol resolves a host symbol through the cache.
func (a *adapter) symbol(op string, names ...string) (*notchity.Handle, error) {
	return a.cache.GetOrResolve(notchity.CacheKey{Op: op}, func() (*notchity.Handle, error) {
		h, err := notchity.ResolveSymbol(a.host, names...)
		if err != nil {
			return nil, err
		}
		a.resolved(op, nil, h)
		return h, nil
	})
}

func (a *adapter) resolved(op string, t reflect.Type, h *notchity.Handle) {
	owner := "host"
	if t != nil {
		owner = t.String()
	}
	a.logger.Debug("notchity: resolved handle",
		"adapter", a.Name(),
		"op", op,
		"owner", owner,
		"member", h.Name,
		"kind", h.Kind.String())
}

func (a *adapter) unavailable(capability string, cause error) error {
	return notchity.Unavailable(capability, a.version, cause)
}

// native returns the reflect value of a non-nil native value.
func native(what string, x any) (reflect.Value, error) {
	v := reflect.ValueOf(x)
	if !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		return reflect.Value{}, fmt.Errorf("notchity: nil %s", what)
	}
	return v, nil
}

// Material converts m to a numeric id before 1.13 and to a namespaced key after.
func (a *adapter) Material(m notchity.Material) (notchity.NativeMaterial, error) {
	info, err := notchity.LookupMaterial(m)
	if err != nil {
		return notchity.NativeMaterial{}, err
	}
	if err := notchity.RequireSince(notchity.CapMaterial, a.version, info.Since); err != nil {
		return notchity.NativeMaterial{}, err
	}

	if a.family.flattened() {
		return notchity.NativeMaterial{Key: m.Key()}, nil
	}
	if !info.HasLegacy {
		return notchity.NativeMaterial{}, a.unavailable(notchity.CapMaterial,
			fmt.Errorf("%s has no numeric id", m))
	}
	return notchity.NativeMaterial{ID: info.LegacyID, Data: info.LegacyData, Legacy: true}, nil
}

// NewItem calls the host's ItemStack constructor: (id, amount, data) before
// 1.13 and (key, amount) after.
func (a *adapter) NewItem(m notchity.Material, count int) (any, error) {
	if count <= 0 {
		return nil, fmt.Errorf("notchity: item count must be positive, got %d", count)
	}
	mat, err := a.Material(m)
	if err != nil {
		return nil, err
	}

	h, err := a.symbol("symbol.item_stack", itemStackSymbols...)
	if err != nil {
		return nil, a.unavailable(notchity.CapNewItem, err)
	}

	var out []reflect.Value
	if mat.Legacy {
		out, err = h.Call(mat.ID, count, mat.Data)
	} else {
		out, err = h.Call(mat.Key, count)
	}
	if err != nil {
		return nil, fmt.Errorf("notchity: new item %s: %w", m, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("notchity: symbol %s returned nothing", h.Name)
	}
	return out[0].Interface(), nil
}

// EntityID reads the entity's unique id and runtime id.
func (a *adapter) EntityID(entity any) (notchity.EntityID, error) {
	v, err := native("entity", entity)
	if err != nil {
		return notchity.EntityID{}, err
	}

	uh, err := a.member("entity.uuid", v.Type(), a.uuidNames()...)
	if err != nil {
		return notchity.EntityID{}, a.unavailable(notchity.CapEntityID, err)
	}
	ih, err := a.member("entity.runtime_id", v.Type(), a.runtimeIDNames()...)
	if err != nil {
		return notchity.EntityID{}, a.unavailable(notchity.CapEntityID, err)
	}

	raw, err := uh.Get(v)
	if err != nil {
		return notchity.EntityID{}, err
	}
	id, err := notchity.UUIDOf(raw)
	if err != nil {
		return notchity.EntityID{}, fmt.Errorf("notchity: entity uuid: %w", err)
	}

	raw, err = ih.Get(v)
	if err != nil {
		return notchity.EntityID{}, err
	}
	rid, err := notchity.IntOf(raw)
	if err != nil {
		return notchity.EntityID{}, fmt.Errorf("notchity: entity runtime id: %w", err)
	}
	return notchity.EntityID{UUID: id, RuntimeID: rid}, nil
}

// EntityPosition reads LocX/LocY/LocZ before 1.13 and Position after.
func (a *adapter) EntityPosition(entity any) (mgl64.Vec3, error) {
	v, err := native("entity", entity)
	if err != nil {
		return mgl64.Vec3{}, err
	}

	if a.family.flattened() {
		h, err := a.member("entity.position", v.Type(), positionNames...)
		if err != nil {
			return mgl64.Vec3{}, a.unavailable(notchity.CapEntityPosition, err)
		}
		raw, err := h.Get(v)
		if err != nil {
			return mgl64.Vec3{}, err
		}
		return notchity.Vec3Of(raw)
	}

	var pos mgl64.Vec3
	for i, axis := range [3]string{"X", "Y", "Z"} {
		h, err := a.field("entity.loc_"+axis, v.Type(), "Loc"+axis)
		if err != nil {
			return mgl64.Vec3{}, a.unavailable(notchity.CapEntityPosition, err)
		}
		raw, err := h.Get(v)
		if err != nil {
			return mgl64.Vec3{}, err
		}
		if pos[i], err = notchity.FloatOf(raw); err != nil {
			return mgl64.Vec3{}, fmt.Errorf("notchity: entity position: %w", err)
		}
	}
	return pos, nil
}

// ReadTag decodes the item's NBT tag, or its custom_data component from 1.20.5.
func (a *adapter) ReadTag(item any) (notchity.Tag, error) {
	v, err := native("item", item)
	if err != nil {
		return nil, err
	}

	if a.family == Component {
		components, err := a.components(v, notchity.CapReadTag)
		if err != nil {
			return nil, err
		}
		if !components.IsValid() || components.IsNil() {
			return notchity.Tag{}, nil
		}
		key := reflect.ValueOf(customDataKey).Convert(components.Type().Key())
		data := components.MapIndex(key)
		if !data.IsValid() {
			return notchity.Tag{}, nil
		}
		return a.decodeValue(data)
	}

	h, err := a.field("item.tag", v.Type(), "Tag")
	if err != nil {
		return nil, a.unavailable(notchity.CapReadTag, err)
	}
	raw, err := h.Get(v)
	if err != nil {
		return nil, err
	}
	return a.decodeValue(raw)
}

// WriteTag replaces the item's tag. The item must be a pointer so the
// field can be assigned; the same pointer is returned.
func (a *adapter) WriteTag(item any, tag notchity.Tag) (any, error) {
	v, err := native("item", item)
	if err != nil {
		return nil, err
	}
	if v.Kind() != reflect.Pointer {
		return nil, fmt.Errorf("notchity: write tag needs a pointer item, got %s", v.Type())
	}

	var data []byte
	if len(tag) > 0 {
		if data, err = a.EncodeTag(tag); err != nil {
			return nil, err
		}
	}

	if a.family == Component {
		if err := a.writeComponent(v, data); err != nil {
			return nil, err
		}
		return item, nil
	}

	h, err := a.field("item.tag", v.Type(), "Tag")
	if err != nil {
		return nil, a.unavailable(notchity.CapWriteTag, err)
	}
	var x reflect.Value
	if data != nil {
		x = reflect.ValueOf(data)
	}
	if err := h.Set(v, x); err != nil {
		return nil, err
	}
	return item, nil
}

// components returns the item's Components map value.
func (a *adapter) components(v reflect.Value, capability string) (reflect.Value, error) {
	h, err := a.field("item.components", v.Type(), "Components")
	if err != nil {
		return reflect.Value{}, a.unavailable(capability, err)
	}
	if h.Type.Kind() != reflect.Map || h.Type.Key().Kind() != reflect.String {
		return reflect.Value{}, a.unavailable(capability,
			fmt.Errorf("components field is %s, not a string-keyed map", h.Type))
	}
	return h.Get(v)
}

// writeComponent stores data under custom_data, deleting it when data is nil.
func (a *adapter) writeComponent(v reflect.Value, data []byte) error {
	components, err := a.components(v, notchity.CapWriteTag)
	if err != nil {
		return err
	}
	key := reflect.ValueOf(customDataKey).Convert(components.Type().Key())

	if data == nil {
		if !components.IsNil() {
			components.SetMapIndex(key, reflect.Value{})
		}
		return nil
	}

	if components.IsNil() {
		if !components.CanSet() {
			return fmt.Errorf("notchity: components of %s are not settable", v.Type())
		}
		components.Set(reflect.MakeMap(components.Type()))
	}

	val := reflect.ValueOf(data)
	elem := components.Type().Elem()
	if !val.Type().AssignableTo(elem) {
		if !val.Type().ConvertibleTo(elem) {
			return fmt.Errorf("notchity: cannot store custom data in %s", components.Type())
		}
		val = val.Convert(elem)
	}
	components.SetMapIndex(key, val)
	return nil
}

// decodeValue decodes a native NBT byte value.
func (a *adapter) decodeValue(raw reflect.Value) (notchity.Tag, error) {
	raw = indirect(raw)
	if !raw.IsValid() {
		return notchity.Tag{}, nil
	}
	if raw.Kind() != reflect.Slice || raw.Type().Elem().Kind() != reflect.Uint8 {
		return nil, fmt.Errorf("notchity: tag is %s, not bytes", raw.Type())
	}
	return a.DecodeTag(raw.Bytes())
}

// indirect unwraps interfaces and pointers.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// EncodeTag encodes big-endian NBT as used by Java servers.
func (a *adapter) EncodeTag(tag notchity.Tag) ([]byte, error) {
	return notchity.EncodeTag(tag, nbt.BigEndian)
}

// DecodeTag decodes big-endian NBT.
func (a *adapter) DecodeTag(data []byte) (notchity.Tag, error) {
	return notchity.DecodeTag(data, nbt.BigEndian)
}
