// Package tile implements the tiles agents walk on, the obstacles placed
// on them, and the registry that loads tile definitions from YAML.
package tile

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrOccupied is returned when placing an object on a tile that already
	// holds one.
	ErrOccupied = errors.New("tile: already occupied")
	// ErrUnknownKind is returned for tile keys or kinds the registry does not
	// know.
	ErrUnknownKind = errors.New("tile: unknown tile kind")
)

// Kind selects the behavior of a tile.
type Kind string

const (
	KindBasic       Kind = "basic"
	KindPath        Kind = "path"
	KindIce         Kind = "ice"
	KindMud         Kind = "mud"
	KindSwamp       Kind = "swamp"
	KindTeleportIn  Kind = "teleport_in"
	KindTeleportOut Kind = "teleport_out"
	KindEnd         Kind = "end"
)

var kinds = []Kind{KindBasic, KindPath, KindIce, KindMud, KindSwamp, KindTeleportIn, KindTeleportOut, KindEnd}

// ParseKind accepts a kind name, any case.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownKind, s)
}

// IsPath reports whether agents may walk on tiles of this kind.
func (k Kind) IsPath() bool {
	return k != KindBasic
}

// ForcesForwardFirst reports whether agents on this kind keep going
// straight when they can.
func (k Kind) ForcesForwardFirst() bool {
	return k == KindIce || k == KindTeleportIn
}

func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseKind(value.Value)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
