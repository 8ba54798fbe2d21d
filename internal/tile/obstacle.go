package tile

import (
	"fmt"

	"github.com/google/uuid"
)

// Obstacle sits on a tile and may block agents. An impassable permanent
// obstacle makes agents choose another way; an impassable transient one
// makes them wait.
type Obstacle struct {
	ID        uuid.UUID
	passable  bool
	permanent bool
	tile      *Tile
	destroyed bool
}

func NewObstacle(passable, permanent bool) *Obstacle {
	return &Obstacle{ID: uuid.New(), passable: passable, permanent: permanent}
}

func (o *Obstacle) Passable() bool     { return o.passable }
func (o *Obstacle) Permanent() bool    { return o.permanent }
func (o *Obstacle) SetPassable(v bool) { o.passable = v }
func (o *Obstacle) Toggle()            { o.passable = !o.passable }
func (o *Obstacle) Tile() *Tile        { return o.tile }
func (o *Obstacle) Destroyed() bool    { return o.destroyed }

// Place puts the obstacle on t, moving it off its previous tile.
func (o *Obstacle) Place(t *Tile) error {
	if o.destroyed {
		return fmt.Errorf("obstacle %s: destroyed", o.ID)
	}
	if err := t.SetOccupant(o); err != nil {
		return err
	}
	if o.tile != nil && o.tile != t {
		o.tile.ClearOccupant(o)
	}
	o.tile = t
	return nil
}

// Remove takes the obstacle off its tile.
func (o *Obstacle) Remove() {
	if o.tile != nil {
		o.tile.ClearOccupant(o)
		o.tile = nil
	}
}

func (o *Obstacle) Destroy() {
	o.Remove()
	o.destroyed = true
}
