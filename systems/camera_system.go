package systems

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/VAX325/ArcticLights/ecs"
)

// Camera defaults
const (
	DefaultTransitionSpeed = 0.1
	DefaultZoom            = 1.0
)

// CameraSystem handles viewport positioning and smooth following
type CameraSystem struct {
	target ecs.Entity
	// Point the camera is moving towards
	position ecs.Vec2
	// Point the camera is currently showing
	displayed ecs.Vec2

	TransitionSpeed float64
	Zoom            float64
	Rotation        float64

	viewW float64
	viewH float64
}

// NewCameraSystem creates a new camera system
func NewCameraSystem(transitionSpeed, zoom float64) *CameraSystem {
	if transitionSpeed <= 0 || transitionSpeed > 1 {
		transitionSpeed = DefaultTransitionSpeed
	}
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	return &CameraSystem{
		TransitionSpeed: transitionSpeed,
		Zoom:            zoom,
	}
}

// Follow makes the camera track the centre of target
func (s *CameraSystem) Follow(target ecs.Entity) {
	s.target = target
}

// Unfollow stops tracking the current target
func (s *CameraSystem) Unfollow() {
	s.target = nil
}

// Target returns the followed entity, if any
func (s *CameraSystem) Target() ecs.Entity {
	return s.target
}

// MoveTo sets the point to move towards. Ignored while following a target.
func (s *CameraSystem) MoveTo(position ecs.Vec2) {
	if s.target != nil {
		return
	}
	s.position = position
}

// SnapTo jumps to position without smoothing
func (s *CameraSystem) SnapTo(position ecs.Vec2) {
	s.position = position
	s.displayed = position
}

// Position returns the point the camera is currently showing
func (s *CameraSystem) Position() ecs.Vec2 {
	return s.displayed
}

// SetViewport sets the screen size the camera centres on
func (s *CameraSystem) SetViewport(width, height float64) {
	s.viewW = width
	s.viewH = height
}

// Update implements ecs.System and eases the camera towards its goal
func (s *CameraSystem) Update(_ *ecs.Registry, dt float64) {
	if s.target != nil {
		s.position = s.target.Bounds().Center()
	}
	s.displayed = s.displayed.Add(s.position.Sub(s.displayed).Mul(s.TransitionSpeed))
}

// GeoM returns the world-to-screen transform. Zoom and rotation are applied
// about the displayed point, which lands on the viewport centre.
func (s *CameraSystem) GeoM() ebiten.GeoM {
	var geoM ebiten.GeoM
	geoM.Translate(-s.displayed.X, -s.displayed.Y)
	geoM.Scale(s.Zoom, s.Zoom)
	geoM.Rotate(s.Rotation)
	geoM.Translate(s.viewW/2, s.viewH/2)
	return geoM
}

// WorldToScreen converts world coordinates to screen coordinates
func (s *CameraSystem) WorldToScreen(world ecs.Vec2) ecs.Vec2 {
	geoM := s.GeoM()
	x, y := geoM.Apply(world.X, world.Y)
	return ecs.V(x, y)
}

// ScreenToWorld converts screen coordinates to world coordinates
func (s *CameraSystem) ScreenToWorld(screen ecs.Vec2) ecs.Vec2 {
	geoM := s.GeoM()
	geoM.Invert()
	x, y := geoM.Apply(screen.X, screen.Y)
	return ecs.V(x, y)
}

// ViewBounds returns the world-space rectangle covered by the screen.
// Rotated views return the bounding square of the rotated viewport.
func (s *CameraSystem) ViewBounds() ecs.Box {
	halfW := s.viewW / 2 / s.Zoom
	halfH := s.viewH / 2 / s.Zoom
	if s.Rotation != 0 {
		diag := ecs.V(halfW, halfH).Length()
		halfW, halfH = diag, diag
	}
	return ecs.Box{
		Pos:  ecs.V(s.displayed.X-halfW, s.displayed.Y-halfH),
		Size: ecs.V(halfW*2, halfH*2),
	}
}

// IsVisible checks whether any part of a world box is on screen
func (s *CameraSystem) IsVisible(box ecs.Box) bool {
	return s.ViewBounds().Overlaps(box)
}
