package notchity

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Material is a logical material identified by its modern name without
// namespace, e.g. "red_wool".
type Material string

// Frequently used materials. Every entry of Materials() is valid, these are
// only shortcuts.
const (
	Stone          Material = "stone"
	Dirt           Material = "dirt"
	Cobblestone    Material = "cobblestone"
	OakPlanks      Material = "oak_planks"
	WhiteWool      Material = "white_wool"
	RedWool        Material = "red_wool"
	Glass          Material = "glass"
	Apple          Material = "apple"
	Diamond        Material = "diamond"
	SlimeBlock     Material = "slime_block"
	Observer       Material = "observer"
	NetheriteIngot Material = "netherite_ingot"
)

// Key returns the namespaced key, e.g. "minecraft:red_wool".
func (m Material) Key() string {
	return "minecraft:" + string(m)
}

// MaterialInfo describes how a material is represented across versions.
type MaterialInfo struct {
	Material Material

	// Since is the first release containing the material.
	Since Version

	// HasLegacy reports whether a pre-flattening id exists.
	HasLegacy  bool
	LegacyID   int
	LegacyData int16

	// BedrockName and BedrockMeta identify the Bedrock item.
	BedrockName string
	BedrockMeta int16
}

// NativeMaterial is the host-side representation of a material.
// Legacy representations use ID and Data, flattened ones use Key.
type NativeMaterial struct {
	Key    string
	ID     int
	Data   int16
	Legacy bool
}

// String formats the material as "35:14" or "minecraft:red_wool".
func (n NativeMaterial) String() string {
	if n.Legacy {
		return fmt.Sprintf("%d:%d", n.ID, n.Data)
	}
	if n.Data != 0 {
		return fmt.Sprintf("%s:%d", n.Key, n.Data)
	}
	return n.Key
}

//go:embed materials.yaml
var materialsYAML []byte

// materialEntry mirrors one entry of materials.yaml.
type materialEntry struct {
	Name   string `yaml:"name"`
	Since  string `yaml:"since"`
	Legacy *struct {
		ID   int   `yaml:"id"`
		Data int16 `yaml:"data"`
	} `yaml:"legacy"`
	Bedrock *struct {
		Name string `yaml:"name"`
		Meta int16  `yaml:"meta"`
	} `yaml:"bedrock"`
}

// firstRelease is the oldest release the table describes.
var firstRelease = NewVersion(1, 5, 0)

var materialTable = sync.OnceValue(func() map[Material]MaterialInfo {
	table, err := decodeMaterials(materialsYAML)
	if err != nil {
		panic("notchity: embedded material table: " + err.Error())
	}
	return table
})

// decodeMaterials builds the material table from YAML.
func decodeMaterials(data []byte) (map[Material]MaterialInfo, error) {
	var entries []materialEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	table := make(map[Material]MaterialInfo, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("material without name")
		}
		m := Material(e.Name)
		if _, dup := table[m]; dup {
			return nil, fmt.Errorf("material %s listed twice", m)
		}

		info := MaterialInfo{
			Material:    m,
			Since:       firstRelease,
			BedrockName: m.Key(),
		}
		if e.Since != "" {
			v, err := Parse(e.Since)
			if err != nil {
				return nil, fmt.Errorf("material %s: %w", m, err)
			}
			info.Since = v
		}
		if e.Legacy != nil {
			info.HasLegacy = true
			info.LegacyID = e.Legacy.ID
			info.LegacyData = e.Legacy.Data
		}
		if e.Bedrock != nil {
			if e.Bedrock.Name != "" {
				info.BedrockName = e.Bedrock.Name
			}
			info.BedrockMeta = e.Bedrock.Meta
		}
		table[m] = info
	}
	return table, nil
}

// LookupMaterial returns the table entry for m.
func LookupMaterial(m Material) (MaterialInfo, error) {
	info, ok := materialTable()[m]
	if !ok {
		return MaterialInfo{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, string(m))
	}
	return info, nil
}

// Materials returns all known materials sorted by name.
func Materials() []Material {
	table := materialTable()
	out := make([]Material, 0, len(table))
	for m := range table {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
