package grid

import (
	"iter"
	"math"
	"slices"

	"golang.org/x/image/math/f64"
)

// Occupant is anything that can sit on a tile.
type Occupant interface {
	// Destroy is called when the occupant is evicted by another.
	Destroy()
	Destroyed() bool
}

// valid reports whether o is a live occupant.
func valid(o Occupant) bool {
	return o != nil && !o.Destroyed()
}

// Collection is a sparse mapping from tile index to occupant. It shares the
// topology of its grid. It is not safe for concurrent mutation.
type Collection struct {
	grid  *Grid
	tiles map[Index]Occupant
}

func NewCollection(g *Grid) *Collection {
	return &Collection{grid: g, tiles: make(map[Index]Occupant)}
}

func (c *Collection) Grid() *Grid {
	return c.grid
}

// Len counts the stored entries, including destroyed ones.
func (c *Collection) Len() int {
	return len(c.tiles)
}

// Get returns the live occupant at i.
func (c *Collection) Get(i Index) (Occupant, bool) {
	o := c.tiles[i]
	if !valid(o) {
		return nil, false
	}
	return o, true
}

// Lookup resolves a real-valued index. Without round, a point that is not
// integral names no tile.
func (c *Collection) Lookup(p f64.Vec2, round bool) (Occupant, bool) {
	i, ok := c.resolve(p, round)
	if !ok {
		return nil, false
	}
	return c.Get(i)
}

// Set stores o at i. A non-nil o destroys the previous occupant; a nil o
// removes the entry and leaves the previous occupant alone.
func (c *Collection) Set(i Index, o Occupant) {
	prev, had := c.tiles[i]
	if o == nil {
		delete(c.tiles, i)
		return
	}
	if had && prev != nil && prev != o && !prev.Destroyed() {
		prev.Destroy()
	}
	c.tiles[i] = o
}

// SetAt is Set for a real-valued index; it reports false when the point
// names no tile.
func (c *Collection) SetAt(p f64.Vec2, round bool, o Occupant) bool {
	i, ok := c.resolve(p, round)
	if !ok {
		return false
	}
	c.Set(i, o)
	return true
}

// Remove deletes the entry at i without destroying it and returns what was
// there.
func (c *Collection) Remove(i Index) Occupant {
	o := c.tiles[i]
	delete(c.tiles, i)
	return o
}

func (c *Collection) resolve(p f64.Vec2, round bool) (Index, bool) {
	if round {
		return IndexOf(p), true
	}
	return ExactIndex(p)
}

// Keys returns the indices holding live occupants, ordered by row then
// column.
func (c *Collection) Keys() []Index {
	keys := make([]Index, 0, len(c.tiles))
	for i, o := range c.tiles {
		if valid(o) {
			keys = append(keys, i)
		}
	}
	slices.SortFunc(keys, compareIndex)
	return keys
}

// All yields live occupants in Keys order.
func (c *Collection) All() iter.Seq2[Index, Occupant] {
	return func(yield func(Index, Occupant) bool) {
		for _, i := range c.Keys() {
			if !yield(i, c.tiles[i]) {
				return
			}
		}
	}
}

// NeighborKeys yields the indices adjacent to root over the active
// directions of the topology. With validOnly, only indices holding a live
// occupant are yielded.
func (c *Collection) NeighborKeys(root Index, validOnly bool) iter.Seq[Index] {
	return c.neighbors(root, slices.Values(c.grid.Topology().Directions()), validOnly)
}

// SweepKeys is NeighborKeys in Sweep order from fromDir, which is skipped.
func (c *Collection) SweepKeys(root Index, fromDir Direction, validOnly bool) iter.Seq[Index] {
	return c.neighbors(root, fromDir.Sweep(c.grid.Topology()), validOnly)
}

func (c *Collection) neighbors(root Index, dirs iter.Seq[Direction], validOnly bool) iter.Seq[Index] {
	return func(yield func(Index) bool) {
		for d := range dirs {
			n := root.Neighbor(d)
			if validOnly && !valid(c.tiles[n]) {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

// Northernmost is the occupied index with the largest x+y. An empty
// collection yields the zero index. Equal keys resolve to the first in
// Keys order.
func (c *Collection) Northernmost() Index {
	return c.extreme(func(i Index) int { return i.X + i.Y })
}

// Southernmost is the occupied index with the smallest x+y.
func (c *Collection) Southernmost() Index {
	return c.extreme(func(i Index) int { return -(i.X + i.Y) })
}

// Easternmost is the occupied index with the largest x-y.
func (c *Collection) Easternmost() Index {
	return c.extreme(func(i Index) int { return i.X - i.Y })
}

// Westernmost is the occupied index with the largest y-x.
func (c *Collection) Westernmost() Index {
	return c.extreme(func(i Index) int { return i.Y - i.X })
}

func (c *Collection) extreme(key func(Index) int) Index {
	var best Index
	bestVal := math.MinInt
	for _, i := range c.Keys() {
		if v := key(i); v > bestVal {
			best, bestVal = i, v
		}
	}
	return best
}

// Bounds returns the component-wise minimum and maximum over occupied
// indices, and false when nothing is occupied.
func (c *Collection) Bounds() (lo, hi Index, ok bool) {
	for _, i := range c.Keys() {
		if !ok {
			lo, hi, ok = i, i, true
			continue
		}
		lo = Index{X: min(lo.X, i.X), Y: min(lo.Y, i.Y)}
		hi = Index{X: max(hi.X, i.X), Y: max(hi.Y, i.Y)}
	}
	return lo, hi, ok
}
