package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraph(t *testing.T) {
	//   x . x
	//   x x x x
	c := occupied(Square,
		Index{0, 1}, Index{2, 1},
		Index{0, 0}, Index{1, 0}, Index{2, 0}, Index{3, 0},
		Index{6, 6},
	)
	g := BuildGraph(c, nil)

	assert.Len(t, g.Nodes(), 7)
	assert.ElementsMatch(t, []Index{{1, 0}, {0, 1}}, g.Links(Index{0, 0}))
	assert.ElementsMatch(t, []Index{{3, 0}, {1, 0}, {2, 1}}, g.Links(Index{2, 0}))

	groups := g.ByLinkCount()
	assert.Equal(t, []Index{{6, 6}}, groups[0])
	assert.ElementsMatch(t, []Index{{0, 1}, {2, 1}, {3, 0}}, groups[1])
	assert.Equal(t, []Index{{2, 0}}, groups[3])

	assert.Equal(t, []Index{{2, 0}, {3, 0}, {0, 1}, {2, 1}, {6, 6}}, g.Endpoints())

	dist := g.Distances(Index{0, 1})
	assert.Equal(t, 4, dist[Index{3, 0}])
	assert.True(t, g.Reachable(Index{0, 1}, Index{6, 6}, Index{2, 1}))
	assert.False(t, g.Reachable(Index{0, 1}, Index{6, 6}))
	assert.Empty(t, g.Distances(Index{9, 9}))
}

func TestGraphMatch(t *testing.T) {
	c := occupied(Hexagon, Index{0, 0}, Index{1, 0}, Index{2, 0})
	g := BuildGraph(c, func(o Occupant) bool { return o.(*mockOccupant).name != "(1,0)" })
	assert.False(t, g.Has(Index{1, 0}))
	assert.Empty(t, g.Links(Index{0, 0}))
}
