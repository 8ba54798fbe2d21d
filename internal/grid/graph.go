package grid

import (
	"maps"
	"slices"
)

// Graph links occupied tiles to their occupied neighbors. It is a snapshot:
// later changes to the collection are not seen.
type Graph struct {
	links map[Index][]Index
}

// BuildGraph links every occupant accepted by match to the neighbors that
// match too. A nil match accepts every live occupant.
func BuildGraph(c *Collection, match func(Occupant) bool) *Graph {
	if match == nil {
		match = func(Occupant) bool { return true }
	}
	g := &Graph{links: make(map[Index][]Index)}
	for i, o := range c.All() {
		if !match(o) {
			continue
		}
		links := []Index{}
		for n := range c.NeighborKeys(i, true) {
			if match(c.tiles[n]) {
				links = append(links, n)
			}
		}
		g.links[i] = links
	}
	return g
}

// Nodes returns every node ordered by row then column.
func (g *Graph) Nodes() []Index {
	nodes := slices.Collect(maps.Keys(g.links))
	slices.SortFunc(nodes, compareIndex)
	return nodes
}

// Has reports whether i is a node.
func (g *Graph) Has(i Index) bool {
	_, ok := g.links[i]
	return ok
}

// Links returns the neighbors of i, in topology direction order.
func (g *Graph) Links(i Index) []Index {
	return slices.Clone(g.links[i])
}

// ByLinkCount groups nodes by how many links they have.
func (g *Graph) ByLinkCount() map[int][]Index {
	out := make(map[int][]Index)
	for _, i := range g.Nodes() {
		n := len(g.links[i])
		out[n] = append(out[n], i)
	}
	return out
}

// Endpoints are the dead ends, forks and isolated nodes: every node whose
// link count is not 2.
func (g *Graph) Endpoints() []Index {
	var out []Index
	for _, i := range g.Nodes() {
		if len(g.links[i]) != 2 {
			out = append(out, i)
		}
	}
	return out
}

// Distances returns the link count of the shortest route from start to
// every node reachable from it, start included at 0.
func (g *Graph) Distances(start Index) map[Index]int {
	dist := make(map[Index]int)
	if !g.Has(start) {
		return dist
	}
	dist[start] = 0
	queue := []Index{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range g.links[cur] {
			if _, seen := dist[n]; seen {
				continue
			}
			dist[n] = dist[cur] + 1
			queue = append(queue, n)
		}
	}
	return dist
}

// Reachable reports whether any of targets can be reached from start.
func (g *Graph) Reachable(start Index, targets ...Index) bool {
	dist := g.Distances(start)
	for _, t := range targets {
		if _, ok := dist[t]; ok {
			return true
		}
	}
	return false
}
