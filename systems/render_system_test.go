package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VAX325/ArcticLights/ecs"
)

func TestDrawOrderPutsStaticFirst(t *testing.T) {
	mover := newBox(0, 0, 1, 1, false)
	wall := newBox(0, 0, 1, 1, true)
	floor := newBox(0, 0, 1, 1, true)

	ordered := DrawOrder([]ecs.Entity{mover, wall, floor})
	require.Len(t, ordered, 3)
	assert.Same(t, wall, ordered[0])
	assert.Same(t, floor, ordered[1])
	assert.Same(t, mover, ordered[2])
}

func TestGridLines(t *testing.T) {
	view := ecs.Box{Pos: ecs.V(-10, 5), Size: ecs.V(80, 40)}

	xs, ys := GridLines(view, 32)
	assert.Equal(t, []float64{0, 32, 64}, xs)
	assert.Equal(t, []float64{32}, ys)

	xs, ys = GridLines(view, 0)
	assert.Nil(t, xs)
	assert.Nil(t, ys)
}

func TestCameraViewBounds(t *testing.T) {
	cam := NewCameraSystem(1, 2)
	cam.SetViewport(200, 100)
	cam.SnapTo(ecs.V(50, 50))

	view := cam.ViewBounds()
	assert.Equal(t, ecs.V(0, 25), view.Pos)
	assert.Equal(t, ecs.V(100, 50), view.Size)
}
