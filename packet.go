package notchity

import (
	"encoding/json"
	"math"
	"reflect"
	"time"
)

// TickDuration is the length of one server tick.
const TickDuration = 50 * time.Millisecond

// Title is a title shown in the middle of the client's screen.
type Title struct {
	Title    string
	Subtitle string
	FadeIn   time.Duration
	Stay     time.Duration
	FadeOut  time.Duration
}

// Ticks converts d to whole server ticks, rounding down and saturating at
// math.MaxInt32.
func Ticks(d time.Duration) int32 {
	if d <= 0 {
		return 0
	}
	t := d / TickDuration
	if t > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(t)
}

// Packet is the logical form of a native packet: its name in the host's
// protocol and its field values.
type Packet struct {
	Name   string
	Fields map[string]any
}

// ChatJSON encodes text as a plain JSON chat component.
func ChatJSON(text string) string {
	data, _ := json.Marshal(struct {
		Text string `json:"text"`
	}{text})
	return string(data)
}

// PacketOf flattens the exported fields of a native packet struct into a
// Packet named after the struct type.
func PacketOf(pk any) Packet {
	v := deref(reflect.ValueOf(pk))
	if !v.IsValid() || v.Kind() != reflect.Struct {
		return Packet{}
	}

	t := v.Type()
	fields := make(map[string]any, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fields[sf.Name] = v.Field(i).Interface()
	}
	return Packet{Name: t.Name(), Fields: fields}
}
