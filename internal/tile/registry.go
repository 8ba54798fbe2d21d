package tile

import (
	"fmt"
	"os"
	"slices"

	"github.com/Bullke/DFL---HTL/internal/grid"
	"gopkg.in/yaml.v3"
)

// Data is the definition of one tile key in tiles.yaml.
type Data struct {
	Name              string           `yaml:"name"`
	Kind              Kind             `yaml:"kind"`
	Letter            string           `yaml:"letter"`
	SpeedMultiplier   *float64         `yaml:"speed_multiplier,omitempty"`
	StaminaMultiplier *float64         `yaml:"stamina_multiplier,omitempty"`
	CheckForwardFirst bool             `yaml:"check_forward_first"`
	SwampThreshold    int              `yaml:"swamp_threshold,omitempty"`
	Priorities        map[string]int16 `yaml:"priorities,omitempty"`
}

// Config is the layout of tiles.yaml.
type Config struct {
	Tiles map[string]Data `yaml:"tiles"`
}

// Registry holds tile definitions by key.
type Registry struct {
	tileData    map[string]*Data
	letterToKey map[string]string
	keyToLetter map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tileData:    make(map[string]*Data),
		letterToKey: make(map[string]string),
		keyToLetter: make(map[string]string),
	}
}

// DefaultRegistry knows one key per kind, named after the kind.
func DefaultRegistry() *Registry {
	half := 0.5
	r := NewRegistry()
	letters := map[Kind]string{
		KindBasic: "x", KindPath: ".", KindIce: "I", KindMud: "M",
		KindSwamp: "W", KindTeleportIn: "T", KindTeleportOut: "O", KindEnd: "E",
	}
	for _, k := range kinds {
		d := Data{Name: string(k), Kind: k, Letter: letters[k]}
		switch k {
		case KindMud:
			d.SpeedMultiplier = &half
		case KindSwamp:
			d.SwampThreshold = 2
		}
		r.tileData[string(k)] = &d
	}
	r.createLetterMappings()
	return r
}

// LoadTileConfig loads tile definitions from a YAML file
func (r *Registry) LoadTileConfig(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read tile config file: %w", err)
	}
	return r.LoadTileData(data)
}

// LoadTileData replaces the definitions with those in a tiles.yaml document.
func (r *Registry) LoadTileData(data []byte) error {
	var tileConfig Config
	if err := yaml.Unmarshal(data, &tileConfig); err != nil {
		return fmt.Errorf("failed to parse tile config: %w", err)
	}

	r.tileData = make(map[string]*Data)
	for key, tileData := range tileConfig.Tiles {
		if tileData.Kind == "" {
			return fmt.Errorf("tile %q: %w: kind missing", key, ErrUnknownKind)
		}
		if tileData.Name == "" {
			tileData.Name = key
		}
		// copy, so the map entry is not shared
		tileCopy := tileData
		r.tileData[key] = &tileCopy
	}

	r.createLetterMappings()
	return nil
}

func (r *Registry) createLetterMappings() {
	r.letterToKey = make(map[string]string)
	r.keyToLetter = make(map[string]string)
	for _, key := range r.GetAllTileKeys() {
		if data := r.tileData[key]; data.Letter != "" {
			r.letterToKey[data.Letter] = key
			r.keyToLetter[key] = data.Letter
		}
	}
}

// GetTileData returns the definition of key, or nil.
func (r *Registry) GetTileData(key string) *Data {
	return r.tileData[key]
}

func (r *Registry) HasTileKey(key string) bool {
	_, exists := r.tileData[key]
	return exists
}

// GetAllTileKeys returns every key, sorted.
func (r *Registry) GetAllTileKeys() []string {
	keys := make([]string, 0, len(r.tileData))
	for key := range r.tileData {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// KeyForLetter maps an ASCII map letter to a tile key.
func (r *Registry) KeyForLetter(letter string) (string, bool) {
	key, ok := r.letterToKey[letter]
	return key, ok
}

func (r *Registry) LetterForKey(key string) (string, bool) {
	letter, ok := r.keyToLetter[key]
	return letter, ok
}

// New creates a tile of the given key at i with the key's defaults.
func (r *Registry) New(key string, i grid.Index) (*Tile, error) {
	data := r.GetTileData(key)
	if data == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, key)
	}
	t := New(key, data.Kind, i)
	speed, stamina := 1.0, 1.0
	if data.SpeedMultiplier != nil {
		speed = *data.SpeedMultiplier
	}
	if data.StaminaMultiplier != nil {
		stamina = *data.StaminaMultiplier
	}
	t.SetMultipliers(speed, stamina)
	t.SetCheckForwardFirst(data.CheckForwardFirst)
	t.SetSwampThreshold(data.SwampThreshold)
	if err := applyPriorities(t, data.Priorities); err != nil {
		return nil, fmt.Errorf("tile %q: %w", key, err)
	}
	return t, nil
}

func applyPriorities(t *Tile, prio map[string]int16) error {
	for name, p := range prio {
		d, err := grid.ParseDirection(name)
		if err != nil {
			return err
		}
		t.SetPriority(d, p)
	}
	return nil
}
