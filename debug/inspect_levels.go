package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Bullke/DFL---HTL/internal/grid"
	"github.com/Bullke/DFL---HTL/internal/level"
	"github.com/Bullke/DFL---HTL/internal/tile"
)

// Prints the tile registry and every level given on the command line as an
// ASCII map, with the endpoints of its path graph.
func main() {
	reg := tile.NewRegistry()
	if err := reg.LoadTileConfig("../assets/tiles.yaml"); err != nil {
		log.Fatalf("Failed to load tile config: %v", err)
	}

	fmt.Println("Tiles:")
	for _, key := range reg.GetAllTileKeys() {
		data := reg.GetTileData(key)
		fmt.Printf("  %-14s kind=%-12s letter='%s'\n", key, data.Kind, data.Letter)
	}

	loader := level.NewLoader(reg, nil)
	for _, path := range os.Args[1:] {
		l, err := loader.LoadLevel(path)
		if err != nil {
			log.Printf("Failed to load %s: %v", path, err)
			continue
		}
		fmt.Printf("\n%s (%s, %d tiles)\n", l.Name, l.Grid().Topology(), l.Tiles().Len())
		fmt.Print(render(l, reg))
		fmt.Printf("endpoints: %v\n", l.PathGraph().Endpoints())
	}
}

func render(l *level.Level, reg *tile.Registry) string {
	lo, hi, ok := l.Tiles().Bounds()
	if !ok {
		return ""
	}
	var b strings.Builder
	for y := hi.Y; y >= lo.Y; y-- {
		for x := lo.X; x <= hi.X; x++ {
			t, ok := l.Tile(grid.Index{X: x, Y: y})
			if !ok {
				b.WriteByte(' ')
				continue
			}
			letter, ok := reg.LetterForKey(t.Key)
			if !ok {
				letter = "?"
			}
			b.WriteString(letter)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
