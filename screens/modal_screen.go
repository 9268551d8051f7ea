package screens

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ModalScreen represents a popup window that appears on top of other screens
type ModalScreen struct {
	*BaseScreen
	title   string
	Content string
	width   int
	height  int

	background color.RGBA
	frameColor color.RGBA
	canvas     *ebiten.Image
}

// NewModalScreen creates a new modal screen
func NewModalScreen(title, content string, width, height int) *ModalScreen {
	return &ModalScreen{
		BaseScreen: NewBaseScreen(),
		title:      title,
		Content:    content,
		width:      width,
		height:     height,
		background: color.RGBA{0, 0, 0, 230},
		frameColor: color.RGBA{255, 255, 255, 255},
	}
}

// Update closes the modal on ESC
func (s *ModalScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ErrCloseScreen
	}
	return nil
}

// Origin returns the top-left corner that centres the modal on a screen
func (s *ModalScreen) Origin(screenWidth, screenHeight int) (x, y int) {
	return (screenWidth - s.width) / 2, (screenHeight - s.height) / 2
}

// beginFrame clears the modal canvas and draws the frame and title
func (s *ModalScreen) beginFrame() *ebiten.Image {
	if s.canvas == nil {
		s.canvas = ebiten.NewImage(s.width, s.height)
	}
	s.canvas.Fill(s.background)

	const frameWidth = 2
	vector.StrokeRect(s.canvas, frameWidth/2, frameWidth/2,
		float32(s.width-frameWidth), float32(s.height-frameWidth),
		frameWidth, s.frameColor, false)

	// Approximate text width of the debug font
	titleX := (s.width - len(s.title)*6) / 2
	ebitenutil.DebugPrintAt(s.canvas, s.title, titleX, 8)
	return s.canvas
}

// present copies the canvas to the centre of screen
func (s *ModalScreen) present(screen *ebiten.Image) {
	bounds := screen.Bounds()
	x, y := s.Origin(bounds.Dx(), bounds.Dy())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(s.canvas, op)
}

// Draw implements the Screen interface
func (s *ModalScreen) Draw(screen *ebiten.Image) {
	canvas := s.beginFrame()
	ebitenutil.DebugPrintAt(canvas, s.Content, 10, 30)
	s.present(screen)
}
