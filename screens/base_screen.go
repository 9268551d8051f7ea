package screens

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// BaseScreen provides common functionality for all screens
type BaseScreen struct {
	// Screen dimensions from the last layout
	width  int
	height int
}

// NewBaseScreen creates a new base screen
func NewBaseScreen() *BaseScreen {
	return &BaseScreen{}
}

// Update implements the Screen interface
func (s *BaseScreen) Update() error {
	return nil
}

// Draw implements the Screen interface
func (s *BaseScreen) Draw(*ebiten.Image) {}

// Layout implements the Screen interface and records the outside size
func (s *BaseScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.width = outsideWidth
	s.height = outsideHeight
	return outsideWidth, outsideHeight
}

// Size returns the size recorded by the last layout
func (s *BaseScreen) Size() (width, height int) {
	return s.width, s.height
}

// Resized reports whether a layout of this size would change the recorded one
func (s *BaseScreen) Resized(width, height int) bool {
	return width != s.width || height != s.height
}
