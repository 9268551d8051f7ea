package systems

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/VAX325/ArcticLights/ecs"
)

// Drawable is a visual that knows how to render itself through a camera
type Drawable interface {
	Draw(dst *ebiten.Image, camera ebiten.GeoM)
}

// RenderSystem handles drawing entities to the screen
type RenderSystem struct {
	cameraSystem *CameraSystem
	cellSize     float64

	Background   color.RGBA
	GridColor    color.RGBA
	DrawSnapGrid bool
}

// NewRenderSystem creates a new rendering system
func NewRenderSystem(camera *CameraSystem, cellSize float64) *RenderSystem {
	return &RenderSystem{
		cameraSystem: camera,
		cellSize:     cellSize,
		Background:   color.RGBA{18, 22, 30, 255},
		GridColor:    color.RGBA{255, 255, 255, 40},
	}
}

// Draw renders the world: background, optional snap grid, then entities.
// Static entities are drawn first so moving ones stay on top.
func (s *RenderSystem) Draw(registry *ecs.Registry, screen *ebiten.Image) {
	screen.Fill(s.Background)

	if s.DrawSnapGrid {
		s.drawSnapGrid(screen)
	}

	camera := s.cameraSystem.GeoM()
	for _, entity := range DrawOrder(registry.Entities()) {
		if !s.cameraSystem.IsVisible(entity.Bounds()) {
			continue
		}
		if drawable, ok := entity.Visual().(Drawable); ok {
			drawable.Draw(screen, camera)
		}
	}
}

// DrawOrder returns static entities followed by dynamic ones, each group in
// registry order
func DrawOrder(entities []ecs.Entity) []ecs.Entity {
	ordered := make([]ecs.Entity, 0, len(entities))
	for _, e := range entities {
		if e.Static() {
			ordered = append(ordered, e)
		}
	}
	for _, e := range entities {
		if !e.Static() {
			ordered = append(ordered, e)
		}
	}
	return ordered
}

// GridLines returns the world coordinates of the cell boundaries inside view
func GridLines(view ecs.Box, cellSize float64) (xs, ys []float64) {
	if cellSize <= 0 {
		return nil, nil
	}
	for x := math.Ceil(view.Pos.X/cellSize) * cellSize; x < view.Right(); x += cellSize {
		xs = append(xs, x)
	}
	for y := math.Ceil(view.Pos.Y/cellSize) * cellSize; y < view.Bottom(); y += cellSize {
		ys = append(ys, y)
	}
	return xs, ys
}

func (s *RenderSystem) drawSnapGrid(screen *ebiten.Image) {
	view := s.cameraSystem.ViewBounds()
	xs, ys := GridLines(view, s.cellSize)

	for _, x := range xs {
		from := s.cameraSystem.WorldToScreen(ecs.V(x, view.Pos.Y))
		to := s.cameraSystem.WorldToScreen(ecs.V(x, view.Bottom()))
		vector.StrokeLine(screen, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y), 1, s.GridColor, false)
	}
	for _, y := range ys {
		from := s.cameraSystem.WorldToScreen(ecs.V(view.Pos.X, y))
		to := s.cameraSystem.WorldToScreen(ecs.V(view.Right(), y))
		vector.StrokeLine(screen, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y), 1, s.GridColor, false)
	}
}
