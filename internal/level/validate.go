package level

import (
	"fmt"

	"github.com/Bullke/DFL---HTL/internal/grid"
	"github.com/Bullke/DFL---HTL/internal/tile"
	"go.uber.org/zap"
)

// Validate rejects levels without tiles and agent starts off the path.
// Isolated path tiles, missing end tiles and starts that cannot reach an end
// tile are logged as warnings.
func (l *Level) Validate() error {
	if l.tiles.Len() == 0 {
		return fmt.Errorf("%w: %q has no tiles", ErrInvalidLevel, l.Name)
	}
	for _, s := range l.spawns {
		if t, ok := l.Tile(s.Index); !ok || !t.IsPath() {
			return fmt.Errorf("%w: agent start %v is not on a path tile", ErrInvalidLevel, s.Index)
		}
	}

	g := l.PathGraph()
	for _, i := range g.ByLinkCount()[0] {
		l.log.Warn("Isolated path tile", zap.Stringer("index", i))
	}

	var ends []grid.Index
	for _, t := range l.AllTiles() {
		if t.Kind() == tile.KindEnd {
			ends = append(ends, t.Index())
		}
	}
	if len(ends) == 0 {
		l.log.Warn("Level has no end tile")
		return nil
	}

	checked := make(map[grid.Index]bool)
	for _, s := range l.spawns {
		if checked[s.Index] {
			continue
		}
		checked[s.Index] = true
		if !l.reachesEnd(g, s.Index, ends) {
			l.log.Warn("Agent start cannot reach an end tile", zap.Stringer("index", s.Index))
		}
	}
	return nil
}

// PathGraph links every path tile to its neighboring path tiles.
func (l *Level) PathGraph() *grid.Graph {
	return grid.BuildGraph(l.tiles, func(o grid.Occupant) bool {
		t, ok := o.(*tile.Tile)
		return ok && t.IsPath()
	})
}

// reachesEnd follows path links and teleport links out of start.
func (l *Level) reachesEnd(g *grid.Graph, start grid.Index, ends []grid.Index) bool {
	if g.Reachable(start, ends...) {
		return true
	}
	isEnd := make(map[grid.Index]bool, len(ends))
	for _, e := range ends {
		isEnd[e] = true
	}
	seen := map[grid.Index]bool{}
	frontier := []grid.Index{start}
	for len(frontier) > 0 {
		from := frontier[0]
		frontier = frontier[1:]
		for i := range g.Distances(from) {
			if seen[i] {
				continue
			}
			seen[i] = true
			if isEnd[i] {
				return true
			}
			if t, ok := l.Tile(i); ok && t.Kind() == tile.KindTeleportOut {
				frontier = append(frontier, t.Links()...)
			}
		}
	}
	return false
}
