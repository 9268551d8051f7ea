package entities

import (
	"github.com/VAX325/ArcticLights/ecs"
)

// BuildingTag marks every building
const BuildingTag = "building"

// Building is a static block measured in grid cells
type Building struct {
	*ecs.Base
	Cells ecs.Vec2
	// OnTick runs once per frame when set
	OnTick func(b *Building, dt float64)
}

// NewBuilding creates a static building of widthCells x heightCells
func NewBuilding(position ecs.Vec2, widthCells, heightCells int, cellSize float64, collideable bool, visual ecs.Visual) *Building {
	cells := ecs.V(float64(widthCells), float64(heightCells))
	return &Building{
		Base: ecs.NewBase(ecs.Options{
			Position:    position,
			Size:        cells.Mul(cellSize),
			Visual:      visual,
			Collideable: collideable,
			Static:      true,
			Tags:        []string{BuildingTag},
		}),
		Cells: cells,
	}
}

// TestBuilding is the 4x2 collideable block placed by the debug world
type TestBuilding struct {
	*Building
}

// NewTestBuilding creates a test building
func NewTestBuilding(position ecs.Vec2, cellSize float64, visual ecs.Visual) *TestBuilding {
	return &TestBuilding{Building: NewBuilding(position, 4, 2, cellSize, true, visual)}
}

// Update runs the tick hook if one is set
func (b *Building) Update(dt float64) {
	if b.OnTick != nil {
		b.OnTick(b, dt)
	}
}
