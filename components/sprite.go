package components

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is the render handle of an entity. It implements ecs.Visual so the
// entity keeps it in sync with its world position.
type Sprite struct {
	Image *ebiten.Image
	// World position of the anchor point
	X, Y float64
	// On-screen extent in world units; the image is stretched or tiled to fit
	Width, Height float64
	// Tiled repeats the image instead of stretching it
	Tiled bool
	// Anchor is the fraction of the extent that sits on (X, Y)
	AnchorX, AnchorY float64
	Hidden           bool
}

// NewSprite creates a sprite that stretches img over width x height
func NewSprite(img *ebiten.Image, width, height float64) *Sprite {
	return &Sprite{
		Image:  img,
		Width:  width,
		Height: height,
	}
}

// NewTiledSprite creates a sprite that repeats img over width x height
func NewTiledSprite(img *ebiten.Image, width, height float64) *Sprite {
	s := NewSprite(img, width, height)
	s.Tiled = true
	return s
}

// SetPosition implements ecs.Visual
func (s *Sprite) SetPosition(x, y float64) {
	s.X = x
	s.Y = y
}

// Origin returns the world position of the sprite's top-left corner
func (s *Sprite) Origin() (x, y float64) {
	return s.X - s.AnchorX*s.Width, s.Y - s.AnchorY*s.Height
}

// Draw renders the sprite through the camera transform
func (s *Sprite) Draw(dst *ebiten.Image, camera ebiten.GeoM) {
	if s.Hidden || s.Image == nil {
		return
	}

	bounds := s.Image.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}

	if !s.Tiled {
		op := &ebiten.DrawImageOptions{}
		op.GeoM = s.stretchGeoM(bounds.Dx(), bounds.Dy(), camera)
		dst.DrawImage(s.Image, op)
		return
	}

	for _, tile := range s.tiles(bounds.Dx(), bounds.Dy()) {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(tile.X, tile.Y)
		op.GeoM.Concat(camera)
		sub := s.Image.SubImage(image.Rect(
			bounds.Min.X, bounds.Min.Y,
			bounds.Min.X+tile.W, bounds.Min.Y+tile.H,
		)).(*ebiten.Image)
		dst.DrawImage(sub, op)
	}
}

// stretchGeoM maps an imgW x imgH image onto the sprite box in screen space
func (s *Sprite) stretchGeoM(imgW, imgH int, camera ebiten.GeoM) ebiten.GeoM {
	var geoM ebiten.GeoM
	geoM.Scale(s.Width/float64(imgW), s.Height/float64(imgH))
	x, y := s.Origin()
	geoM.Translate(x, y)
	geoM.Concat(camera)
	return geoM
}

// spriteTile is one repetition of a tiled sprite, clipped at the far edges
type spriteTile struct {
	X, Y float64
	W, H int
}

func (s *Sprite) tiles(imgW, imgH int) []spriteTile {
	originX, originY := s.Origin()
	var tiles []spriteTile

	for ty := 0.0; ty < s.Height; ty += float64(imgH) {
		h := min(imgH, int(s.Height-ty))
		if h <= 0 {
			break
		}
		for tx := 0.0; tx < s.Width; tx += float64(imgW) {
			w := min(imgW, int(s.Width-tx))
			if w <= 0 {
				break
			}
			tiles = append(tiles, spriteTile{X: originX + tx, Y: originY + ty, W: w, H: h})
		}
	}

	return tiles
}
