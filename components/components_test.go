package components

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

func TestDirectionsVector(t *testing.T) {
	tests := []struct {
		name   string
		dirs   Directions
		wantX  float64
		wantY  float64
		wantOn bool
	}{
		{"idle", Directions{}, 0, 0, false},
		{"left", Directions{Left: true}, -1, 0, true},
		{"opposite cancel", Directions{Left: true, Right: true}, 0, 0, true},
		{"diagonal", Directions{Right: true, Down: true}, 1, 1, true},
		{"up", Directions{Up: true}, 0, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.dirs.Vector()
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
			assert.Equal(t, tt.wantOn, tt.dirs.Any())
		})
	}
}

func TestSpritePositionAndAnchor(t *testing.T) {
	s := NewSprite(nil, 20, 10)
	s.SetPosition(100, 50)

	x, y := s.Origin()
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 50.0, y)

	s.AnchorX, s.AnchorY = 0.5, 1
	x, y = s.Origin()
	assert.Equal(t, 90.0, x)
	assert.Equal(t, 40.0, y)
}

func TestSpriteStretchGeoM(t *testing.T) {
	s := NewSprite(nil, 64, 32)
	s.SetPosition(10, 20)

	var camera ebiten.GeoM
	camera.Translate(-5, -5)

	geoM := s.stretchGeoM(16, 16, camera)

	x, y := geoM.Apply(0, 0)
	assert.InDelta(t, 5.0, x, 1e-9)
	assert.InDelta(t, 15.0, y, 1e-9)

	x, y = geoM.Apply(16, 16)
	assert.InDelta(t, 69.0, x, 1e-9)
	assert.InDelta(t, 47.0, y, 1e-9)
}

func TestSpriteTilesClipAtEdges(t *testing.T) {
	s := NewTiledSprite(nil, 40, 20)
	s.SetPosition(0, 0)

	tiles := s.tiles(16, 16)

	// 3 columns (16, 16, 8) by 2 rows (16, 4)
	assert.Len(t, tiles, 6)
	assert.Equal(t, spriteTile{X: 32, Y: 0, W: 8, H: 16}, tiles[2])
	assert.Equal(t, spriteTile{X: 32, Y: 16, W: 8, H: 4}, tiles[5])
}

func TestDrawWithoutImageIsNoop(t *testing.T) {
	s := NewSprite(nil, 10, 10)
	assert.NotPanics(t, func() { s.Draw(nil, ebiten.GeoM{}) })
}

func TestDirectionsSet(t *testing.T) {
	var d Directions
	d.Set(DirectionUp, true)
	d.Set(DirectionRight, true)
	d.Set(DirectionRight, false)

	assert.Equal(t, Directions{Up: true}, d)
}
