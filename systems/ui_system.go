package systems

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/VAX325/ArcticLights/ecs"
)

// UIElement is something drawn inside a panel, in virtual device coordinates
type UIElement interface {
	Update(dt float64)
	Draw(dst *ebiten.Image, geoM ebiten.GeoM)
}

// UIPanel groups elements at a position on the virtual device
type UIPanel struct {
	Position   ecs.Vec2
	Size       ecs.Vec2
	Background color.RGBA

	scale    float64
	elements []UIElement
}

// NewUIPanel creates an empty panel
func NewUIPanel(position, size ecs.Vec2) *UIPanel {
	return &UIPanel{
		Position:   position,
		Size:       size,
		Background: color.RGBA{0, 0, 0, 160},
		scale:      1,
	}
}

// AddElement appends an element to the panel
func (p *UIPanel) AddElement(element UIElement) {
	p.elements = append(p.elements, element)
}

// SetScale sets the virtual-to-screen scale
func (p *UIPanel) SetScale(scale float64) {
	p.scale = scale
}

// Scale returns the virtual-to-screen scale
func (p *UIPanel) Scale() float64 {
	return p.scale
}

// ScreenRect returns the panel's on-screen rectangle
func (p *UIPanel) ScreenRect() ecs.Box {
	return ecs.Box{Pos: p.Position.Mul(p.scale), Size: p.Size.Mul(p.scale)}
}

// Update updates every element
func (p *UIPanel) Update(dt float64) {
	for _, element := range p.elements {
		element.Update(dt)
	}
}

// Draw draws the background and the elements
func (p *UIPanel) Draw(screen *ebiten.Image) {
	rect := p.ScreenRect()
	if p.Background.A > 0 {
		vector.DrawFilledRect(screen,
			float32(rect.Pos.X), float32(rect.Pos.Y), float32(rect.Size.X), float32(rect.Size.Y),
			p.Background, false)
	}

	var geoM ebiten.GeoM
	geoM.Translate(p.Position.X, p.Position.Y)
	geoM.Scale(p.scale, p.scale)
	for _, element := range p.elements {
		element.Draw(screen, geoM)
	}
}

// UIManager lays out panels designed for a fixed virtual device
type UIManager struct {
	virtualW float64
	virtualH float64
	screenW  int
	screenH  int
	scale    float64
	panels   []*UIPanel
}

// NewUIManager creates a manager for a virtualW x virtualH device
func NewUIManager(virtualW, virtualH float64) *UIManager {
	return &UIManager{virtualW: virtualW, virtualH: virtualH, scale: 1}
}

// Layout recomputes the scale when the screen size changes
func (m *UIManager) Layout(screenW, screenH int) {
	if screenW == m.screenW && screenH == m.screenH {
		return
	}
	m.screenW, m.screenH = screenW, screenH
	m.scale = min(float64(screenW)/m.virtualW, float64(screenH)/m.virtualH)
	for _, panel := range m.panels {
		panel.SetScale(m.scale)
	}
}

// Scale returns the current virtual-to-screen scale
func (m *UIManager) Scale() float64 {
	return m.scale
}

// AddPanel registers a panel and applies the current scale to it
func (m *UIManager) AddPanel(panel *UIPanel) {
	panel.SetScale(m.scale)
	m.panels = append(m.panels, panel)
}

// Panels returns the registered panels
func (m *UIManager) Panels() []*UIPanel {
	return m.panels
}

// Update implements ecs.System
func (m *UIManager) Update(_ *ecs.Registry, dt float64) {
	for _, panel := range m.panels {
		panel.Update(dt)
	}
}

// Draw draws every panel in registration order
func (m *UIManager) Draw(screen *ebiten.Image) {
	for _, panel := range m.panels {
		panel.Draw(screen)
	}
}

// Label is a line of text refreshed from a callback every update
type Label struct {
	Offset ecs.Vec2
	Color  color.Color
	// Face may be nil, in which case the debug font is used
	Face    text.Face
	Content func() string

	current string
}

// NewLabel creates a label at offset within its panel
func NewLabel(offset ecs.Vec2, face text.Face, content func() string) *Label {
	return &Label{
		Offset:  offset,
		Color:   color.White,
		Face:    face,
		Content: content,
	}
}

// Text returns the text shown since the last update
func (l *Label) Text() string {
	return l.current
}

// Update implements UIElement
func (l *Label) Update(float64) {
	if l.Content != nil {
		l.current = l.Content()
	}
}

// Draw implements UIElement
func (l *Label) Draw(dst *ebiten.Image, geoM ebiten.GeoM) {
	if l.Face == nil {
		x, y := geoM.Apply(l.Offset.X, l.Offset.Y)
		ebitenutil.DebugPrintAt(dst, l.current, int(x), int(y))
		return
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(l.Offset.X, l.Offset.Y)
	op.GeoM.Concat(geoM)
	op.ColorScale.ScaleWithColor(l.Color)
	text.Draw(dst, l.current, l.Face, op)
}

// NewPositionLabel creates a HUD label tracking an entity's position
func NewPositionLabel(offset ecs.Vec2, face text.Face, name string, entity ecs.Entity) *Label {
	return NewLabel(offset, face, func() string {
		pos := entity.Position()
		return fmt.Sprintf("%s  X: %.0f  Y: %.0f", name, pos.X, pos.Y)
	})
}
