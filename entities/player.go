package entities

import (
	"github.com/VAX325/ArcticLights/components"
	"github.com/VAX325/ArcticLights/ecs"
)

// PlayerTag marks the locally controlled entity
const PlayerTag = "player"

// DefaultPlayerSpeed is the distance covered per frame unit
const DefaultPlayerSpeed = 4

// Player is a one-cell, non-static entity steered by direction intent
type Player struct {
	*ecs.Base
	Speed      float64
	directions components.Directions
}

// NewPlayer creates a player occupying one cell at position
func NewPlayer(position ecs.Vec2, cellSize, speed float64, visual ecs.Visual) *Player {
	return &Player{
		Base: ecs.NewBase(ecs.Options{
			Position:    position,
			Size:        ecs.V(cellSize, cellSize),
			Visual:      visual,
			Collideable: true,
			Tags:        []string{PlayerTag},
		}),
		Speed: speed,
	}
}

// SetDirection records whether a direction is currently held
func (p *Player) SetDirection(dir components.Direction, held bool) {
	p.directions.Set(dir, held)
}

// Directions returns the current movement intent
func (p *Player) Directions() components.Directions {
	return p.directions
}

// Update moves the player by direction * speed * dt
func (p *Player) Update(dt float64) {
	x, y := p.directions.Vector()
	if x == 0 && y == 0 {
		return
	}
	p.SetPosition(p.Position().Add(ecs.V(x, y).Mul(p.Speed * dt)))
}
