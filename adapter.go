package notchity

import (
	"image/color"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
)

// Capability names used in CapabilityError.
const (
	CapMaterial       = "material"
	CapNewItem        = "new_item"
	CapEntityID       = "entity_id"
	CapEntityPosition = "entity_position"
	CapReadTag        = "read_tag"
	CapWriteTag       = "write_tag"
	CapTitle          = "title"
	CapHexColor       = "hex_color"
)

// Host is the running server notchity is embedded in.
type Host interface {
	// Version returns the server's raw version string,
	// e.g. "1.20.6-R0.1-SNAPSHOT".
	Version() string

	// Symbol returns a runtime symbol the host exports by name, such as an
	// item constructor. Adapters resolve symbols reflectively.
	Symbol(name string) (any, bool)
}

// Adapter implements every capability against one family of server versions.
//
// Native values (entities, items) are passed as the host's own values;
// everything else uses notchity's logical types. Calling a capability twice
// with the same input returns equal results. Operations the bound version
// lacks fail with an error matching ErrCapabilityUnavailable.
type Adapter interface {
	// Name identifies the adapter in logs.
	Name() string

	// Material converts a logical material to the host representation.
	Material(m Material) (NativeMaterial, error)

	// NewItem constructs a native item of count m.
	NewItem(m Material, count int) (any, error)

	// EntityID returns the identity of a native entity.
	EntityID(entity any) (EntityID, error)

	// EntityPosition returns the position of a native entity.
	EntityPosition(entity any) (mgl64.Vec3, error)

	// ReadTag returns the custom data tag of a native item.
	ReadTag(item any) (Tag, error)

	// WriteTag stores tag as the custom data of a native item and returns
	// the item. Hosts with immutable items return a new value.
	WriteTag(item any, tag Tag) (any, error)

	// EncodeTag encodes a tag in the host's NBT encoding.
	EncodeTag(tag Tag) ([]byte, error)

	// DecodeTag decodes a tag in the host's NBT encoding.
	DecodeTag(data []byte) (Tag, error)

	// TitlePackets returns the packets that display t.
	TitlePackets(t Title) ([]Packet, error)

	// FormatColor returns the chat formatting code for an RGB colour.
	FormatColor(c color.RGBA) (string, error)
}

// Env is what a Factory receives when its adapter is selected.
type Env struct {
	Host    Host
	Version Version
	Logger  *slog.Logger
}

// Factory creates an adapter for the environment it is given.
type Factory func(env Env) (Adapter, error)

// Descriptor binds a version range to an adapter factory.
type Descriptor struct {
	// Name identifies the adapter family in logs and errors.
	Name    string
	Range   Range
	Factory Factory
}
