package notchity

import (
	"fmt"
	"maps"

	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

// Tag is the logical form of a native data tag (an NBT compound).
//
// Values use the NBT kinds: uint8, int16, int32, int64, float32, float64,
// string, []any, map[string]any and the typed array slices. Plain int is
// not an NBT kind and fails to encode.
type Tag map[string]any

// Clone returns a shallow copy of t.
func (t Tag) Clone() Tag {
	if t == nil {
		return Tag{}
	}
	return maps.Clone(t)
}

// EncodeTag encodes t as an NBT compound using enc.
// Java servers use nbt.BigEndian, Bedrock servers nbt.LittleEndian.
func EncodeTag(t Tag, enc nbt.Encoding) ([]byte, error) {
	if t == nil {
		t = Tag{}
	}
	data, err := nbt.MarshalEncoding(map[string]any(t), enc)
	if err != nil {
		return nil, fmt.Errorf("notchity: encode tag: %w", err)
	}
	return data, nil
}

// DecodeTag decodes an NBT compound encoded with enc. Empty input decodes
// to an empty tag.
func DecodeTag(data []byte, enc nbt.Encoding) (Tag, error) {
	if len(data) == 0 {
		return Tag{}, nil
	}
	m := make(map[string]any)
	if err := nbt.UnmarshalEncoding(data, &m, enc); err != nil {
		return nil, fmt.Errorf("notchity: decode tag: %w", err)
	}
	return Tag(m), nil
}
