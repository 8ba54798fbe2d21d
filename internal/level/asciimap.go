package level

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/Bullke/DFL---HTL/internal/grid"
	"github.com/Bullke/DFL---HTL/internal/tile"
	"golang.org/x/image/math/f64"
)

// Map letters with a fixed meaning. Every other letter is looked up in the
// tile registry.
const (
	blankLetter = ' '
	startLetter = '+'
)

// Priorities given to path directions derived from a map.
const (
	openPriority  int16 = 1
	arrowPriority int16 = 4
)

var arrows = map[rune]grid.Direction{
	'>': grid.E,
	'<': grid.W,
	'^': grid.N,
	'v': grid.S,
}

type mapCell struct {
	key   string
	arrow *grid.Direction
}

// parseMap turns ASCII rows into a layout. The first row is the northern
// edge; a path tile opens every direction toward a neighboring path tile.
// Arrows are path tiles that prefer their direction, and '+' is a path tile
// where one agent starts.
func parseMap(text string, topology grid.Topology, reg *tile.Registry) (grid.Layout[tile.Record], []grid.Index, error) {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		// Skip empty lines and comment lines
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return grid.Layout[tile.Record]{}, nil, fmt.Errorf("error reading map: %w", err)
	}
	if len(lines) == 0 {
		return grid.Layout[tile.Record]{}, nil, nil
	}

	pathKey, ok := reg.KeyForLetter(".")
	if !ok {
		pathKey = string(tile.KindPath)
	}

	height := len(lines)
	width := len([]rune(lines[0]))
	cells := make(map[grid.Index]mapCell)
	var starts []grid.Index
	for row, line := range lines {
		runes := []rune(line)
		if len(runes) != width {
			return grid.Layout[tile.Record]{}, nil, fmt.Errorf("%w: map line %d has inconsistent width: expected %d, got %d", ErrInvalidLevel, row+1, width, len(runes))
		}
		for col, r := range runes {
			i := grid.Index{X: col, Y: height - 1 - row}
			d, isArrow := arrows[r]
			switch {
			case r == blankLetter:
				continue
			case r == startLetter:
				cells[i] = mapCell{key: pathKey}
				starts = append(starts, i)
			case isArrow:
				cells[i] = mapCell{key: pathKey, arrow: &d}
			default:
				key, ok := reg.KeyForLetter(string(r))
				if !ok {
					return grid.Layout[tile.Record]{}, nil, fmt.Errorf("%w: map letter %q at line %d, column %d", tile.ErrUnknownKind, r, row+1, col+1)
				}
				cells[i] = mapCell{key: key}
			}
		}
	}

	isPath := func(i grid.Index) bool {
		c, ok := cells[i]
		if !ok {
			return false
		}
		d := reg.GetTileData(c.key)
		return d != nil && d.Kind.IsPath()
	}

	var layout grid.Layout[tile.Record]
	for y := height - 1; y >= 0; y-- {
		for x := 0; x < width; x++ {
			i := grid.Index{X: x, Y: y}
			c, ok := cells[i]
			if !ok {
				continue
			}
			rec := tile.Record{Tile: c.key}
			if isPath(i) {
				for _, d := range topology.Directions() {
					if !isPath(i.Neighbor(d)) {
						continue
					}
					if rec.Priorities == nil {
						rec.Priorities = make(map[string]int16)
					}
					p := openPriority
					if c.arrow != nil && *c.arrow == d {
						p = arrowPriority
					}
					rec.Priorities[d.String()] = p
				}
			}
			layout.Indices = append(layout.Indices, f64.Vec2{float64(x), float64(y)})
			layout.Occupants = append(layout.Occupants, rec)
		}
	}
	return layout, starts, nil
}
