package bukkit

import (
	"bytes"
	"image/color"
	"log/slog"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oriumgames/notchity"
	"github.com/sandertv/gophertunnel/minecraft/nbt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var steve = uuid.MustParse("8667ba71-b85a-4004-af54-457a9734eed7")

// legacyEntity mirrors a pre-1.13 entity: getUniqueId, getId and locX fields.
type legacyEntity struct {
	uuid             uuid.UUID
	id               int32
	LocX, LocY, LocZ float64
}

func (e *legacyEntity) UniqueID() uuid.UUID { return e.uuid }

func (e *legacyEntity) ID() int32 { return e.id }

// modernEntity mirrors a flattened entity exposing a string UUID.
type modernEntity struct {
	EntityID int
	uuid     uuid.UUID
	pos      mgl64.Vec3
}

func (e *modernEntity) UUID() string { return e.uuid.String() }

func (e *modernEntity) Position() mgl64.Vec3 { return e.pos }

// location mirrors a Bukkit Location.
type location struct {
	X, Y, Z float64
}

type locatedEntity struct {
	ID  int64
	loc location
}

func (e locatedEntity) UniqueID() [16]byte { return steve }

func (e locatedEntity) Location() location { return e.loc }

type legacyItem struct {
	Type   int
	Amount int
	Data   int16
	Tag    []byte
}

type modernItem struct {
	Key    string
	Amount int
	Tag    []byte
}

type componentItem struct {
	Key        string
	Amount     int
	Components map[string][]byte
}

func legacySymbols() map[string]any {
	return map[string]any{
		"ItemStack": func(id, amount int, data int16) *legacyItem {
			return &legacyItem{Type: id, Amount: amount, Data: data}
		},
	}
}

func modernSymbols() map[string]any {
	return map[string]any{
		"NewItemStack": func(key string, amount int) *modernItem {
			return &modernItem{Key: key, Amount: amount}
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

// resolve returns the adapter the bukkit registry selects for version.
func resolve(t *testing.T, version string, symbols map[string]any) *adapter {
	t.Helper()
	v := notchity.MustParse(version)
	a, err := NewRegistry().Resolve(notchity.Env{
		Host:    NewHost(fakeServer{version: version}, symbols),
		Version: v,
		Logger:  discardLogger(),
	})
	require.NoError(t, err)
	return a.(*adapter)
}

func TestAdapterName(t *testing.T) {
	assert.Equal(t, "bukkit/Legacy", resolve(t, "1.7.10", nil).Name())
	assert.Equal(t, "bukkit/Bountiful", resolve(t, "1.8.8", nil).Name())
	assert.Equal(t, "bukkit/Flattened", resolve(t, "1.16.5", nil).Name())
	assert.Equal(t, "bukkit/Component", resolve(t, "1.20.6", nil).Name())
}

func TestMaterial(t *testing.T) {
	tests := []struct {
		version  string
		material notchity.Material
		want     notchity.NativeMaterial
	}{
		{"1.7.10", notchity.RedWool, notchity.NativeMaterial{ID: 35, Data: 14, Legacy: true}},
		{"1.8.8", notchity.RedWool, notchity.NativeMaterial{ID: 35, Data: 14, Legacy: true}},
		{"1.8.8", notchity.SlimeBlock, notchity.NativeMaterial{ID: 165, Legacy: true}},
		{"1.12.2", notchity.Observer, notchity.NativeMaterial{ID: 218, Legacy: true}},
		{"1.13", notchity.RedWool, notchity.NativeMaterial{Key: "minecraft:red_wool"}},
		{"1.16.5", notchity.NetheriteIngot, notchity.NativeMaterial{Key: "minecraft:netherite_ingot"}},
		{"1.20.6", notchity.Stone, notchity.NativeMaterial{Key: "minecraft:stone"}},
	}
	for _, tt := range tests {
		t.Run(tt.version+"/"+string(tt.material), func(t *testing.T) {
			a := resolve(t, tt.version, nil)
			got, err := a.Material(tt.material)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := a.Material(tt.material)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestMaterialUnavailable(t *testing.T) {
	tests := []struct {
		version  string
		material notchity.Material
	}{
		{"1.7.10", notchity.SlimeBlock},
		{"1.8.8", notchity.Observer},
		{"1.12.2", notchity.NetheriteIngot},
		{"1.15.2", notchity.NetheriteIngot},
	}
	for _, tt := range tests {
		t.Run(tt.version+"/"+string(tt.material), func(t *testing.T) {
			_, err := resolve(t, tt.version, nil).Material(tt.material)
			assert.ErrorIs(t, err, notchity.ErrCapabilityUnavailable)
		})
	}

	_, err := resolve(t, "1.16.5", nil).Material("unobtainium")
	assert.ErrorIs(t, err, notchity.ErrUnknownMaterial)
}

func TestNewItemLegacy(t *testing.T) {
	a := resolve(t, "1.8.8", legacySymbols())

	x, err := a.NewItem(notchity.RedWool, 16)
	require.NoError(t, err)
	assert.Equal(t, &legacyItem{Type: 35, Amount: 16, Data: 14}, x)

	_, err = a.NewItem(notchity.Apple, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), a.cache.Resolutions())
}

func TestNewItemModern(t *testing.T) {
	a := resolve(t, "1.16.5", modernSymbols())

	x, err := a.NewItem(notchity.RedWool, 3)
	require.NoError(t, err)
	assert.Equal(t, &modernItem{Key: "minecraft:red_wool", Amount: 3}, x)
}

func TestNewItemErrors(t *testing.T) {
	a := resolve(t, "1.16.5", nil)

	_, err := a.NewItem(notchity.Stone, 1)
	assert.ErrorIs(t, err, notchity.ErrCapabilityUnavailable)
	assert.ErrorIs(t, err, notchity.ErrMemberNotFound)

	_, err = a.NewItem(notchity.Stone, 0)
	assert.Error(t, err)

	// A legacy-shaped constructor on a flattened server.
	a = resolve(t, "1.16.5", legacySymbols())
	_, err = a.NewItem(notchity.Stone, 1)
	assert.Error(t, err)
}

func TestEntityIDLegacy(t *testing.T) {
	a := resolve(t, "1.8.8", nil)
	e := &legacyEntity{uuid: steve, id: 42}

	for i := 0; i < 5; i++ {
		id, err := a.EntityID(e)
		require.NoError(t, err)
		assert.Equal(t, notchity.EntityID{UUID: steve, RuntimeID: 42}, id)
	}
	// One resolution per member, then cache hits only.
	assert.Equal(t, uint64(2), a.cache.Resolutions())
	assert.Equal(t, uint64(8), a.cache.Hits())
}

func TestEntityIDModern(t *testing.T) {
	a := resolve(t, "1.20.6", nil)

	id, err := a.EntityID(&modernEntity{EntityID: 7, uuid: steve})
	require.NoError(t, err)
	assert.Equal(t, notchity.EntityID{UUID: steve, RuntimeID: 7}, id)
}

func TestEntityIDByteArray(t *testing.T) {
	a := resolve(t, "1.10.2", nil)

	id, err := a.EntityID(locatedEntity{ID: 9})
	require.NoError(t, err)
	assert.Equal(t, notchity.EntityID{UUID: steve, RuntimeID: 9}, id)
}

func TestEntityIDUnavailable(t *testing.T) {
	a := resolve(t, "1.16.5", nil)

	_, err := a.EntityID(location{})
	assert.ErrorIs(t, err, notchity.ErrCapabilityUnavailable)

	_, err = a.EntityID(struct{}{})
	assert.ErrorIs(t, err, notchity.ErrCapabilityUnavailable)

	_, err = a.EntityID(nil)
	assert.Error(t, err)
	var nilEntity *modernEntity
	_, err = a.EntityID(nilEntity)
	assert.Error(t, err)
}

func TestEntityPositionLegacy(t *testing.T) {
	a := resolve(t, "1.7.10", nil)

	pos, err := a.EntityPosition(&legacyEntity{LocX: 1.5, LocY: 64, LocZ: -20})
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{1.5, 64, -20}, pos)
}

func TestEntityPositionModern(t *testing.T) {
	a := resolve(t, "1.16.5", nil)
	e := &modernEntity{pos: mgl64.Vec3{10, 70, 10}}

	for i := 0; i < 5; i++ {
		pos, err := a.EntityPosition(e)
		require.NoError(t, err)
		assert.Equal(t, mgl64.Vec3{10, 70, 10}, pos)
	}
	assert.Equal(t, uint64(1), a.cache.Resolutions())
	assert.Equal(t, 1, a.cache.Len())
}

func TestEntityPositionLocation(t *testing.T) {
	a := resolve(t, "1.20.6", nil)

	pos, err := a.EntityPosition(locatedEntity{loc: location{X: 1, Y: 2, Z: 3}})
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, pos)
}

func TestEntityPositionUnavailable(t *testing.T) {
	_, err := resolve(t, "1.8.8", nil).EntityPosition(&modernEntity{})
	assert.ErrorIs(t, err, notchity.ErrCapabilityUnavailable)

	_, err = resolve(t, "1.16.5", nil).EntityPosition(&legacyEntity{})
	assert.ErrorIs(t, err, notchity.ErrCapabilityUnavailable)
}

func TestTagRoundTrip(t *testing.T) {
	tag := notchity.Tag{"owner": "steve", "level": int32(5)}

	tests := []struct {
		version string
		item    any
	}{
		{"1.8.8", &legacyItem{Type: 1}},
		{"1.16.5", &modernItem{Key: "minecraft:stone"}},
		{"1.20.6", &componentItem{Key: "minecraft:stone"}},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			a := resolve(t, tt.version, nil)

			empty, err := a.ReadTag(tt.item)
			require.NoError(t, err)
			assert.Empty(t, empty)

			out, err := a.WriteTag(tt.item, tag)
			require.NoError(t, err)
			assert.Same(t, tt.item, out)

			got, err := a.ReadTag(out)
			require.NoError(t, err)
			assert.Equal(t, tag, got)

			again, err := a.ReadTag(out)
			require.NoError(t, err)
			assert.Equal(t, got, again)

			_, err = a.WriteTag(out, notchity.Tag{})
			require.NoError(t, err)
			cleared, err := a.ReadTag(out)
			require.NoError(t, err)
			assert.Empty(t, cleared)
		})
	}
}

func TestComponentTagStorage(t *testing.T) {
	a := resolve(t, "1.20.6", nil)
	item := &componentItem{Components: map[string][]byte{"minecraft:damage": {0}}}

	_, err := a.WriteTag(item, notchity.Tag{"k": "v"})
	require.NoError(t, err)
	require.Contains(t, item.Components, customDataKey)
	assert.Contains(t, item.Components, "minecraft:damage")

	data, err := a.EncodeTag(notchity.Tag{"k": "v"})
	require.NoError(t, err)
	assert.Equal(t, data, item.Components[customDataKey])

	_, err = a.WriteTag(item, nil)
	require.NoError(t, err)
	assert.NotContains(t, item.Components, customDataKey)
	assert.Contains(t, item.Components, "minecraft:damage")
}

func TestTagErrors(t *testing.T) {
	a := resolve(t, "1.16.5", nil)

	_, err := a.WriteTag(modernItem{}, notchity.Tag{"k": "v"})
	assert.Error(t, err)

	_, err = a.ReadTag(&componentItem{})
	assert.ErrorIs(t, err, notchity.ErrCapabilityUnavailable)

	_, err = a.ReadTag(&modernItem{Tag: []byte{0x0a}})
	assert.Error(t, err)

	_, err = a.ReadTag(nil)
	assert.Error(t, err)

	_, err = resolve(t, "1.20.6", nil).ReadTag(&modernItem{})
	assert.ErrorIs(t, err, notchity.ErrCapabilityUnavailable)
}

func TestEncodeTagBigEndian(t *testing.T) {
	a := resolve(t, "1.12.2", nil)
	tag := notchity.Tag{"n": int32(1)}

	data, err := a.EncodeTag(tag)
	require.NoError(t, err)
	want, err := notchity.EncodeTag(tag, nbt.BigEndian)
	require.NoError(t, err)
	assert.Equal(t, want, data)

	got, err := a.DecodeTag(data)
	require.NoError(t, err)
	assert.Equal(t, tag, got)
}

func TestTitlePacketsUnavailable(t *testing.T) {
	_, err := resolve(t, "1.7.10", nil).TitlePackets(notchity.Title{Title: "hi"})
	assert.ErrorIs(t, err, notchity.ErrCapabilityUnavailable)

	var cerr *notchity.CapabilityError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, notchity.CapTitle, cerr.Capability)
}

func TestTitlePacketsCombined(t *testing.T) {
	a := resolve(t, "1.8.8", nil)
	title := notchity.Title{
		Title:    "Welcome",
		Subtitle: "to the server",
		FadeIn:   time.Second,
		Stay:     3 * time.Second,
		FadeOut:  500 * time.Millisecond,
	}

	pks, err := a.TitlePackets(title)
	require.NoError(t, err)
	require.Len(t, pks, 3)

	assert.Equal(t, notchity.Packet{
		Name: "PacketPlayOutTitle",
		Fields: map[string]any{
			"Action":  "TIMES",
			"FadeIn":  int32(20),
			"Stay":    int32(60),
			"FadeOut": int32(10),
		},
	}, pks[0])
	assert.Equal(t, "SUBTITLE", pks[1].Fields["Action"])
	assert.Equal(t, `{"text":"to the server"}`, pks[1].Fields["Text"])
	assert.Equal(t, "TITLE", pks[2].Fields["Action"])
	assert.Equal(t, `{"text":"Welcome"}`, pks[2].Fields["Text"])

	again, err := a.TitlePackets(title)
	require.NoError(t, err)
	assert.Equal(t, pks, again)

	pks, err = a.TitlePackets(notchity.Title{Title: "Only"})
	require.NoError(t, err)
	require.Len(t, pks, 2)
	assert.Equal(t, "TITLE", pks[1].Fields["Action"])
}

func TestTitlePacketsSplit(t *testing.T) {
	a := resolve(t, "1.17.1", nil)

	pks, err := a.TitlePackets(notchity.Title{Title: "Welcome", Subtitle: "back", Stay: time.Second})
	require.NoError(t, err)
	require.Len(t, pks, 3)

	assert.Equal(t, "ClientboundSetTitlesAnimationPacket", pks[0].Name)
	assert.Equal(t, int32(20), pks[0].Fields["Stay"])
	assert.Equal(t, "ClientboundSetSubtitleTextPacket", pks[1].Name)
	assert.Equal(t, "ClientboundSetTitleTextPacket", pks[2].Name)
	assert.Equal(t, `{"text":"Welcome"}`, pks[2].Fields["Text"])
}

func TestFormatColor(t *testing.T) {
	s, err := resolve(t, "1.16.5", nil).FormatColor(color.RGBA{R: 0xff, G: 0x00, B: 0x80, A: 0xff})
	require.NoError(t, err)
	assert.Equal(t, "§x§f§f§0§0§8§0", s)

	_, err = resolve(t, "1.12.2", nil).FormatColor(color.RGBA{R: 0xff})
	assert.ErrorIs(t, err, notchity.ErrCapabilityUnavailable)
}

func TestFacadeWithBukkit(t *testing.T) {
	f, err := notchity.NewBuilder().
		Register(Descriptors()...).
		Logger(discardLogger()).
		Init(NewHost(fakeServer{version: "1.12.2-R0.1-SNAPSHOT"}, legacySymbols()))
	require.NoError(t, err)

	name, err := f.AdapterName()
	require.NoError(t, err)
	assert.Equal(t, "bukkit/Bountiful", name)

	item, err := f.NewItem(notchity.WhiteWool, 1)
	require.NoError(t, err)
	assert.Equal(t, &legacyItem{Type: 35, Amount: 1}, item)

	_, err = f.FormatColor(color.RGBA{})
	assert.ErrorIs(t, err, notchity.ErrCapabilityUnavailable)

	_, err = notchity.NewBuilder().
		Register(Descriptors()...).
		Logger(discardLogger()).
		Init(NewHost(fakeServer{version: "1.4.7"}, nil))
	assert.ErrorIs(t, err, notchity.ErrUnsupportedVersion)
}
