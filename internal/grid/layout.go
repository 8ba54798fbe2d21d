package grid

import (
	"fmt"

	"golang.org/x/image/math/f64"
)

// Layout is the persisted form of a Collection: two parallel lists. R is
// the record type occupants are saved as.
type Layout[R any] struct {
	Indices   []f64.Vec2 `yaml:"indices"`
	Occupants []R        `yaml:"occupants"`
}

// Len is the number of entries, or an error when the lists disagree.
func (l Layout[R]) Len() (int, error) {
	if len(l.Indices) != len(l.Occupants) {
		return 0, fmt.Errorf("%w: %d indices, %d occupants", ErrLayoutMismatch, len(l.Indices), len(l.Occupants))
	}
	return len(l.Indices), nil
}

// SaveLayout flattens the live occupants of c in Keys order. Destroyed
// occupants are dropped.
func SaveLayout[R any](c *Collection, encode func(Index, Occupant) (R, error)) (Layout[R], error) {
	keys := c.Keys()
	l := Layout[R]{
		Indices:   make([]f64.Vec2, 0, len(keys)),
		Occupants: make([]R, 0, len(keys)),
	}
	for _, i := range keys {
		rec, err := encode(i, c.tiles[i])
		if err != nil {
			return Layout[R]{}, fmt.Errorf("failed to encode occupant at %v: %w", i, err)
		}
		l.Indices = append(l.Indices, i.Vec2())
		l.Occupants = append(l.Occupants, rec)
	}
	return l, nil
}

// LoadLayout rebuilds c from l. Existing entries are dropped first. Indices
// are rounded; a repeated index keeps the last occupant.
func LoadLayout[R any](c *Collection, l Layout[R], decode func(Index, R) (Occupant, error)) error {
	n, err := l.Len()
	if err != nil {
		return err
	}
	clear(c.tiles)
	for k := 0; k < n; k++ {
		i := IndexOf(l.Indices[k])
		o, err := decode(i, l.Occupants[k])
		if err != nil {
			return fmt.Errorf("failed to decode occupant %d at %v: %w", k, i, err)
		}
		c.Set(i, o)
	}
	return nil
}
