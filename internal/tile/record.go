package tile

import (
	"fmt"

	"github.com/Bullke/DFL---HTL/internal/grid"
)

// Record is the persisted form of a tile in a level layout. Unset optional
// fields fall back to the registry defaults for the key.
type Record struct {
	Tile              string           `yaml:"tile"`
	Priorities        map[string]int16 `yaml:"priorities,omitempty"`
	CheckForwardFirst *bool            `yaml:"check_forward_first,omitempty"`
	SpeedMultiplier   *float64         `yaml:"speed_multiplier,omitempty"`
	StaminaMultiplier *float64         `yaml:"stamina_multiplier,omitempty"`
	SwampThreshold    *int             `yaml:"swamp_threshold,omitempty"`
	Active            *bool            `yaml:"active,omitempty"`
	Obstacle          *ObstacleRecord  `yaml:"obstacle,omitempty"`
}

// ObstacleRecord is an obstacle placed on a tile.
type ObstacleRecord struct {
	Passable  bool `yaml:"passable"`
	Permanent bool `yaml:"permanent"`
}

// Build creates the tile a record describes.
func (r *Registry) Build(i grid.Index, rec Record) (*Tile, error) {
	t, err := r.New(rec.Tile, i)
	if err != nil {
		return nil, err
	}
	if err := applyPriorities(t, rec.Priorities); err != nil {
		return nil, fmt.Errorf("tile at %v: %w", i, err)
	}
	if rec.CheckForwardFirst != nil {
		t.SetCheckForwardFirst(*rec.CheckForwardFirst)
	}
	speed, stamina := t.SpeedMultiplier(), t.StaminaMultiplier()
	if rec.SpeedMultiplier != nil {
		speed = *rec.SpeedMultiplier
	}
	if rec.StaminaMultiplier != nil {
		stamina = *rec.StaminaMultiplier
	}
	t.SetMultipliers(speed, stamina)
	if rec.SwampThreshold != nil {
		t.SetSwampThreshold(*rec.SwampThreshold)
	}
	if rec.Active != nil {
		t.SetActive(*rec.Active)
	}
	if rec.Obstacle != nil {
		ob := NewObstacle(rec.Obstacle.Passable, rec.Obstacle.Permanent)
		if err := ob.Place(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Encode returns the record for t. Only values that differ from the
// registry defaults are written; agents standing on the tile are not.
func (r *Registry) Encode(t *Tile) (Record, error) {
	def, err := r.New(t.Key, t.index)
	if err != nil {
		return Record{}, err
	}
	rec := Record{Tile: t.Key}
	for _, d := range allDirections {
		if p := t.Priority(d); p != def.Priority(d) {
			if rec.Priorities == nil {
				rec.Priorities = make(map[string]int16)
			}
			rec.Priorities[d.String()] = p
		}
	}
	if t.forwardFirst != def.forwardFirst {
		v := t.forwardFirst
		rec.CheckForwardFirst = &v
	}
	if t.baseSpeed != def.baseSpeed {
		v := t.baseSpeed
		rec.SpeedMultiplier = &v
	}
	if t.stamina != def.stamina {
		v := t.stamina
		rec.StaminaMultiplier = &v
	}
	if t.threshold != def.threshold {
		v := t.threshold
		rec.SwampThreshold = &v
	}
	if t.active {
		v := true
		rec.Active = &v
	}
	if ob, ok := t.occupant.(*Obstacle); ok {
		rec.Obstacle = &ObstacleRecord{Passable: ob.passable, Permanent: ob.permanent}
	}
	return rec, nil
}

var allDirections = []grid.Direction{grid.E, grid.SE, grid.S, grid.SW, grid.W, grid.NW, grid.N, grid.NE}
