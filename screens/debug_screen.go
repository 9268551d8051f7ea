package screens

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/VAX325/ArcticLights/systems"
)

const (
	debugScreenWidth  = 600
	debugScreenHeight = 400
	debugStartY       = 30
	debugLineHeight   = 16
	debugFooterHeight = 20
)

// DebugScreen shows the message log in a scrollable modal window
type DebugScreen struct {
	*ModalScreen
	messages     *systems.MessageLog
	scrollOffset int
	line         *ebiten.Image
}

// NewDebugScreen creates a debug screen reading from messages
func NewDebugScreen(messages *systems.MessageLog) *DebugScreen {
	return &DebugScreen{
		ModalScreen: NewModalScreen("DEBUG LOG", "", debugScreenWidth, debugScreenHeight),
		messages:    messages,
	}
}

// Update handles input for the debug screen
func (s *DebugScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		s.ScrollUp()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		s.ScrollDown()
	}
	return s.ModalScreen.Update()
}

// ScrollUp moves the view up by one line
func (s *DebugScreen) ScrollUp() {
	if s.scrollOffset > 0 {
		s.scrollOffset--
	}
}

// ScrollDown moves the view down by one line
func (s *DebugScreen) ScrollDown() {
	if s.scrollOffset < s.messages.Len()-1 {
		s.scrollOffset++
	}
}

// MaxLines returns how many messages fit in the window
func (s *DebugScreen) MaxLines() int {
	return (s.height - debugStartY - debugFooterHeight) / debugLineHeight
}

// Visible returns the messages in view, oldest first. The view never
// scrolls past the point where the last page is full.
func (s *DebugScreen) Visible() []systems.ColoredMessage {
	messages := s.messages.Messages
	maxLines := s.MaxLines()

	start := min(s.scrollOffset, max(len(messages)-maxLines, 0))
	end := min(start+maxLines, len(messages))
	return messages[start:end]
}

// Draw renders the debug screen
func (s *DebugScreen) Draw(screen *ebiten.Image) {
	canvas := s.beginFrame()

	if s.line == nil {
		s.line = ebiten.NewImage(s.width, debugLineHeight)
	}
	for i, msg := range s.Visible() {
		s.line.Clear()
		ebitenutil.DebugPrintAt(s.line, msg.Text, 10, 0)

		op := &ebiten.DrawImageOptions{}
		op.ColorScale.ScaleWithColor(msg.GetColor())
		op.GeoM.Translate(0, float64(debugStartY+i*debugLineHeight))
		canvas.DrawImage(s.line, op)
	}

	// Scroll indicator
	total := s.messages.Len()
	maxLines := s.MaxLines()
	if total > maxLines {
		track := float64(s.height - debugStartY - debugFooterHeight)
		barHeight := float64(maxLines) / float64(total) * track
		barY := float64(debugStartY) + float64(s.scrollOffset)/float64(total)*track
		vector.DrawFilledRect(canvas, float32(s.width-10), float32(barY), 5, float32(barHeight), s.frameColor, false)
	}

	ebitenutil.DebugPrintAt(canvas, "Up/Down: Scroll  ESC: Close", 10, s.height-debugFooterHeight)
	s.present(screen)
}
