package primitives

import (
	"embed"
	"fmt"
	"path"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed defs/*.yaml
var defsFS embed.FS

// fallback mirrors defs/ and is only used if the embedded files fail to parse.
var fallback = map[string]PrimitiveDef{
	"cube":   {Type: "cube", Geometry: "box", Size: 1},
	"sphere": {Type: "sphere", Geometry: "sphere", Segments: 4, Diameter: 1},
}

var (
	builtinOnce sync.Once
	builtin     map[string]PrimitiveDef
)

// Parse decodes one YAML primitive definition.
func Parse(data []byte) (PrimitiveDef, error) {
	var d PrimitiveDef
	if err := yaml.Unmarshal(data, &d); err != nil {
		return PrimitiveDef{}, fmt.Errorf("primitives: %w", err)
	}
	if d.Type == "" {
		return PrimitiveDef{}, fmt.Errorf("primitives: missing type")
	}
	return d, nil
}

// Load reads every definition under defs/ in the embedded set, keyed by Type.
func Load() (map[string]PrimitiveDef, error) {
	entries, err := defsFS.ReadDir("defs")
	if err != nil {
		return nil, fmt.Errorf("primitives: %w", err)
	}
	out := make(map[string]PrimitiveDef, len(entries))
	for _, e := range entries {
		data, err := defsFS.ReadFile(path.Join("defs", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("primitives: %w", err)
		}
		d, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		out[d.Type] = d
	}
	return out, nil
}

// Builtin returns the embedded definitions, loaded once. Callers must not mutate the map.
func Builtin() map[string]PrimitiveDef {
	builtinOnce.Do(func() {
		defs, err := Load()
		if err != nil {
			defs = fallback
		}
		builtin = defs
	})
	return builtin
}
