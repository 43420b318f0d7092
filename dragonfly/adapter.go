package dragonfly

import (
	"fmt"
	"image/color"
	"log/slog"
	"reflect"
	"strconv"

	"github.com/df-mc/dragonfly/server/item"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oriumgames/notchity"
	"github.com/sandertv/gophertunnel/minecraft/nbt"
	"github.com/sandertv/gophertunnel/minecraft/protocol/packet"
)

// Name is the descriptor and adapter name.
const Name = "dragonfly"

var v1_21 = notchity.NewVersion(1, 21, 0)

// Range returns the Bedrock versions the adapter covers.
func Range() notchity.Range {
	return notchity.From(v1_21)
}

// Descriptor returns the Dragonfly descriptor.
func Descriptor() notchity.Descriptor {
	return notchity.Descriptor{
		Name:  Name,
		Range: Range(),
		Factory: func(env notchity.Env) (notchity.Adapter, error) {
			return newAdapter(env), nil
		},
	}
}

// Register adds the Dragonfly descriptor to reg.
func Register(reg *notchity.Registry) error {
	return reg.Register(Descriptor())
}

// NewRegistry returns a registry holding the Dragonfly descriptor.
func NewRegistry() *notchity.Registry {
	return notchity.NewRegistry().MustRegister(Descriptor())
}

type adapter struct {
	version notchity.Version
	cache   *notchity.Cache
	logger  *slog.Logger
}

func newAdapter(env notchity.Env) *adapter {
	logger := env.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &adapter{
		version: env.Version,
		cache:   notchity.NewCache(),
		logger:  logger,
	}
}

func (a *adapter) Name() string {
	return Name
}

func (a *adapter) unavailable(capability string, cause error) error {
	return notchity.Unavailable(capability, a.version, cause)
}

// Material returns the Bedrock item name and metadata of m.
func (a *adapter) Material(m notchity.Material) (notchity.NativeMaterial, error) {
	info, err := notchity.LookupMaterial(m)
	if err != nil {
		return notchity.NativeMaterial{}, err
	}
	return notchity.NativeMaterial{Key: info.BedrockName, Data: info.BedrockMeta}, nil
}

// lookupItem finds the registered world.Item for mat. Lookups are memoized
// per name and metadata.
func (a *adapter) lookupItem(mat notchity.NativeMaterial) (world.Item, error) {
	key := notchity.CacheKey{Op: "item:" + mat.Key + ":" + strconv.Itoa(int(mat.Data))}
	h, err := a.cache.GetOrResolve(key, func() (*notchity.Handle, error) {
		it, ok := world.ItemByName(mat.Key, mat.Data)
		if !ok {
			return nil, fmt.Errorf("%w: no item registered as %s", notchity.ErrMemberNotFound, mat)
		}
		a.logger.Debug("notchity: resolved handle",
			"adapter", Name,
			"op", key.Op,
			"owner", "world",
			"member", mat.Key,
			"kind", notchity.HandleValue.String())
		return notchity.ValueHandle(mat.Key, it), nil
	})
	if err != nil {
		return nil, err
	}
	return h.Value().(world.Item), nil
}

// NewItem returns an item.Stack of count items.
func (a *adapter) NewItem(m notchity.Material, count int) (any, error) {
	if count <= 0 {
		return nil, fmt.Errorf("notchity: item count must be positive, got %d", count)
	}
	mat, err := a.Material(m)
	if err != nil {
		return nil, err
	}
	it, err := a.lookupItem(mat)
	if err != nil {
		return nil, a.unavailable(notchity.CapNewItem, err)
	}
	return item.NewStack(it, count), nil
}

// EntityID returns the entity handle's UUID. Dragonfly assigns runtime ids
// per viewer, so RuntimeID is always zero.
func (a *adapter) EntityID(entity any) (notchity.EntityID, error) {
	e, ok := entity.(world.Entity)
	if !ok || isNil(entity) {
		return notchity.EntityID{}, a.unavailable(notchity.CapEntityID,
			fmt.Errorf("%T is not a world.Entity", entity))
	}
	h := e.H()
	if h == nil {
		return notchity.EntityID{}, fmt.Errorf("notchity: entity %T has no handle", entity)
	}
	return notchity.EntityID{UUID: h.UUID()}, nil
}

// positioned is implemented by every Dragonfly entity.
type positioned interface {
	Position() mgl64.Vec3
}

// EntityPosition returns the entity's position.
func (a *adapter) EntityPosition(entity any) (mgl64.Vec3, error) {
	e, ok := entity.(positioned)
	if !ok || isNil(entity) {
		return mgl64.Vec3{}, a.unavailable(notchity.CapEntityPosition,
			fmt.Errorf("%T has no position", entity))
	}
	return e.Position(), nil
}

// isNil reports whether x is nil or a typed nil behind an interface.
func isNil(x any) bool {
	if x == nil {
		return true
	}
	switch v := reflect.ValueOf(x); v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// stackOf accepts item.Stack or *item.Stack.
func stackOf(x any) (item.Stack, error) {
	switch s := x.(type) {
	case item.Stack:
		return s, nil
	case *item.Stack:
		if s == nil {
			return item.Stack{}, fmt.Errorf("notchity: nil item")
		}
		return *s, nil
	default:
		return item.Stack{}, fmt.Errorf("notchity: %T is not an item.Stack", x)
	}
}

// ReadTag returns the stack's custom values.
func (a *adapter) ReadTag(x any) (notchity.Tag, error) {
	s, err := stackOf(x)
	if err != nil {
		return nil, err
	}
	tag := notchity.Tag{}
	for k, v := range s.Values() {
		tag[k] = v
	}
	return tag, nil
}

// WriteTag replaces the stack's custom values. Stacks are immutable, so the
// updated copy is returned.
func (a *adapter) WriteTag(x any, tag notchity.Tag) (any, error) {
	s, err := stackOf(x)
	if err != nil {
		return nil, err
	}
	for k := range s.Values() {
		if _, ok := tag[k]; !ok {
			s = s.WithValue(k, nil)
		}
	}
	for k, v := range tag {
		s = s.WithValue(k, v)
	}
	return s, nil
}

// EncodeTag encodes little-endian NBT as used by Bedrock.
func (a *adapter) EncodeTag(tag notchity.Tag) ([]byte, error) {
	return notchity.EncodeTag(tag, nbt.LittleEndian)
}

// DecodeTag decodes little-endian NBT.
func (a *adapter) DecodeTag(data []byte) (notchity.Tag, error) {
	return notchity.DecodeTag(data, nbt.LittleEndian)
}

// TitlePackets returns SetTitle packets for durations, subtitle and title.
func (a *adapter) TitlePackets(t notchity.Title) ([]notchity.Packet, error) {
	pks := []*packet.SetTitle{{
		ActionType:      packet.TitleActionSetDurations,
		FadeInDuration:  notchity.Ticks(t.FadeIn),
		RemainDuration:  notchity.Ticks(t.Stay),
		FadeOutDuration: notchity.Ticks(t.FadeOut),
	}}
	if t.Subtitle != "" {
		pks = append(pks, &packet.SetTitle{ActionType: packet.TitleActionSetSubtitle, Text: t.Subtitle})
	}
	pks = append(pks, &packet.SetTitle{ActionType: packet.TitleActionSetTitle, Text: t.Title})

	out := make([]notchity.Packet, 0, len(pks))
	for _, pk := range pks {
		out = append(out, notchity.PacketOf(pk))
	}
	return out, nil
}

// FormatColor is unavailable: Bedrock chat has no RGB formatting codes.
func (a *adapter) FormatColor(color.RGBA) (string, error) {
	return "", a.unavailable(notchity.CapHexColor, fmt.Errorf("bedrock chat has a fixed palette"))
}
