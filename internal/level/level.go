package level

import (
	"fmt"
	"slices"

	"github.com/Bullke/DFL---HTL/internal/agent"
	"github.com/Bullke/DFL---HTL/internal/grid"
	"github.com/Bullke/DFL---HTL/internal/tile"
	"go.uber.org/zap"
)

// Level is a loaded board. It is the world agents walk on.
type Level struct {
	Name string

	file     File
	grid     *grid.Grid
	tiles    *grid.Collection
	registry *tile.Registry
	spawns   []Spawn
	log      *zap.Logger
	baseLog  *zap.Logger
}

var _ agent.World = (*Level)(nil)

func (l *Level) Grid() *grid.Grid         { return l.grid }
func (l *Level) Tiles() *grid.Collection  { return l.tiles }
func (l *Level) Registry() *tile.Registry { return l.registry }
func (l *Level) Source() File             { return l.file }

// Spawns lists the agent releases ordered by time.
func (l *Level) Spawns() []Spawn { return slices.Clone(l.spawns) }

// Tile returns the live tile at i.
func (l *Level) Tile(i grid.Index) (*tile.Tile, bool) {
	o, ok := l.tiles.Get(i)
	if !ok {
		return nil, false
	}
	t, ok := o.(*tile.Tile)
	return t, ok
}

// TileAt implements agent.Neighborhood.
func (l *Level) TileAt(i grid.Index) (agent.Tile, bool) {
	t, ok := l.Tile(i)
	if !ok {
		return nil, false
	}
	return t, true
}

// AllTiles yields the live tiles in index order.
func (l *Level) AllTiles() []*tile.Tile {
	var out []*tile.Tile
	for _, i := range l.tiles.Keys() {
		if t, ok := l.Tile(i); ok {
			out = append(out, t)
		}
	}
	return out
}

// LateTick lets every tile settle after the agents moved.
func (l *Level) LateTick() {
	for _, o := range l.tiles.All() {
		if t, ok := o.(*tile.Tile); ok {
			t.LateTick()
		}
	}
}

// PlaceObstacle puts a new obstacle on the tile at i.
func (l *Level) PlaceObstacle(i grid.Index, passable, permanent bool) (*tile.Obstacle, error) {
	t, ok := l.Tile(i)
	if !ok {
		return nil, fmt.Errorf("%w: no tile at %v", ErrInvalidLevel, i)
	}
	ob := tile.NewObstacle(passable, permanent)
	if err := ob.Place(t); err != nil {
		return nil, err
	}
	return ob, nil
}

// Reset rebuilds the level from its source, dropping every runtime change.
func (l *Level) Reset() (*Level, error) {
	return build(l.file, l.registry, l.baseLog)
}

// Save returns the level as a file. The map is flattened into the layout
// and teleports are read back from the tiles.
func (l *Level) Save() (File, error) {
	layout, err := grid.SaveLayout(l.tiles, func(i grid.Index, o grid.Occupant) (tile.Record, error) {
		t, ok := o.(*tile.Tile)
		if !ok {
			return tile.Record{}, fmt.Errorf("unexpected occupant %T", o)
		}
		return l.registry.Encode(t)
	})
	if err != nil {
		return File{}, err
	}

	f := File{Name: l.Name, Grid: l.file.Grid, Layout: layout}
	for _, t := range l.AllTiles() {
		if t.Kind() != tile.KindTeleportOut || len(t.Links()) == 0 {
			continue
		}
		f.Teleports = append(f.Teleports, TeleportSpec{
			From:   t.Index(),
			To:     t.Links(),
			Active: t.TeleportActive(),
		})
	}
	for _, s := range l.spawns {
		at := s.Index
		f.Agents = append(f.Agents, AgentSpec{At: &at, Delay: s.Time})
	}
	return f, nil
}

func build(f File, reg *tile.Registry, log *zap.Logger) (*Level, error) {
	g := f.Grid.Build()
	l := &Level{
		Name:     f.Name,
		file:     f,
		grid:     g,
		tiles:    grid.NewCollection(g),
		registry: reg,
		log:      log.With(zap.String("level", f.Name)),
		baseLog:  log,
	}

	layout, starts, err := parseMap(f.Map, f.Grid.Topology, reg)
	if err != nil {
		return nil, err
	}
	// explicit layout entries override the map
	layout.Indices = append(layout.Indices, f.Layout.Indices...)
	layout.Occupants = append(layout.Occupants, f.Layout.Occupants...)
	if _, err := f.Layout.Len(); err != nil {
		return nil, err
	}
	err = grid.LoadLayout(l.tiles, layout, func(i grid.Index, rec tile.Record) (grid.Occupant, error) {
		return reg.Build(i, rec)
	})
	if err != nil {
		return nil, err
	}

	for _, tp := range f.Teleports {
		if err := l.link(tp); err != nil {
			return nil, err
		}
	}

	for _, i := range starts {
		l.spawns = append(l.spawns, Spawn{Index: i})
	}
	for k, a := range f.Agents {
		i, err := l.resolve(a)
		if err != nil {
			return nil, fmt.Errorf("agent %d: %w", k, err)
		}
		for n := range a.GetCount() {
			l.spawns = append(l.spawns, Spawn{Index: i, Time: a.Delay + float64(n)*a.Interval})
		}
	}
	slices.SortStableFunc(l.spawns, func(a, b Spawn) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})
	return l, nil
}

func (l *Level) link(tp TeleportSpec) error {
	from, ok := l.Tile(tp.From)
	if !ok || from.Kind() != tile.KindTeleportOut {
		return fmt.Errorf("%w: teleport at %v is not a teleport-out tile", ErrInvalidLevel, tp.From)
	}
	for _, i := range tp.To {
		to, _ := l.Tile(i)
		if !from.StoreTeleportIn(to) {
			l.log.Warn("Teleport link refused",
				zap.Stringer("from", tp.From),
				zap.Stringer("to", i))
		}
	}
	from.SetActive(tp.Active)
	return nil
}

func (l *Level) resolve(a AgentSpec) (grid.Index, error) {
	switch {
	case a.At != nil:
		return *a.At, nil
	case a.World != nil:
		i, ok := l.grid.SelectTile(*a.World)
		if !ok {
			return grid.Index{}, fmt.Errorf("%w: world point %v", grid.ErrNoProjection, *a.World)
		}
		return i, nil
	}
	return grid.Index{}, fmt.Errorf("%w: agent start has neither at nor world", ErrInvalidLevel)
}
