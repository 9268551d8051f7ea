package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingVisual struct {
	x, y  float64
	calls int
}

func (v *recordingVisual) SetPosition(x, y float64) {
	v.x, v.y = x, y
	v.calls++
}

// crate is a plain entity kind used across the package tests
type crate struct {
	*Base
	collisions []Entity
	updates    int
}

func (c *crate) Update(dt float64) {
	c.updates++
}

func (c *crate) OnCollide(other Entity) {
	c.collisions = append(c.collisions, other)
	c.Base.OnCollide(other)
}

func newCrate(x, y, w, h float64) *crate {
	return &crate{Base: NewBase(Options{
		Position:    V(x, y),
		Size:        V(w, h),
		Collideable: true,
	})}
}

func newCrateWith(opts Options) *crate {
	return &crate{Base: NewBase(opts)}
}

func TestCollidesWith(t *testing.T) {
	tests := []struct {
		name string
		a, b Box
		want bool
	}{
		{"overlapping", Box{V(0, 0), V(10, 10)}, Box{V(5, 5), V(10, 10)}, true},
		{"contained", Box{V(0, 0), V(10, 10)}, Box{V(2, 2), V(2, 2)}, true},
		{"touching right edge", Box{V(0, 0), V(10, 10)}, Box{V(10, 0), V(10, 10)}, false},
		{"touching bottom edge", Box{V(0, 0), V(10, 10)}, Box{V(0, 10), V(10, 10)}, false},
		{"disjoint on x", Box{V(0, 0), V(10, 10)}, Box{V(30, 0), V(10, 10)}, false},
		{"disjoint on y", Box{V(0, 0), V(10, 10)}, Box{V(0, -30), V(10, 10)}, false},
		{"overlap on x only", Box{V(0, 0), V(10, 10)}, Box{V(5, 20), V(10, 10)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newCrate(tt.a.Pos.X, tt.a.Pos.Y, tt.a.Size.X, tt.a.Size.Y)
			b := newCrate(tt.b.Pos.X, tt.b.Pos.Y, tt.b.Size.X, tt.b.Size.Y)

			assert.Equal(t, tt.want, a.CollidesWith(b))
			assert.Equal(t, tt.want, b.CollidesWith(a), "overlap test must be symmetric")
		})
	}
}

func TestPenetrationPicksLeastAxis(t *testing.T) {
	// 5 deep on x, 10 deep on y
	c := Penetration(Box{V(0, 0), V(10, 10)}, Box{V(5, 0), V(10, 10)})
	assert.Equal(t, V(-5, 0), c)

	// 2 deep on y from above
	c = Penetration(Box{V(0, 8), V(10, 10)}, Box{V(0, 0), V(10, 10)})
	assert.Equal(t, V(0, 2), c)

	// Equal overlap resolves on y
	c = Penetration(Box{V(0, 0), V(10, 10)}, Box{V(5, 5), V(10, 10)})
	assert.Equal(t, V(0, -5), c)

	// Coincident centers push negative
	c = Penetration(Box{V(0, 0), V(10, 10)}, Box{V(0, 0), V(10, 10)})
	assert.Equal(t, V(0, -10), c)
}

func TestOnCollideSeparatesOnResolvedAxis(t *testing.T) {
	mover := newCrate(8, 1, 4, 4)
	wall := newCrate(0, 0, 10, 10)

	mover.OnCollide(wall)

	assert.Equal(t, V(10, 1), mover.Position())
	assert.False(t, mover.CollidesWith(wall))
}

func TestOnCollideIsIdempotent(t *testing.T) {
	mover := newCrate(8, 1, 4, 4)
	wall := newCrate(0, 0, 10, 10)

	mover.OnCollide(wall)
	first := mover.Position()
	mover.OnCollide(wall)

	assert.Equal(t, first, mover.Position())
}

func TestOnCollideIgnoredWhenNotCollideable(t *testing.T) {
	ghost := newCrateWith(Options{Position: V(5, 0), Size: V(10, 10)})
	wall := newCrate(0, 0, 10, 10)

	ghost.OnCollide(wall)

	assert.Equal(t, V(5, 0), ghost.Position())
}

func TestSetPositionSyncsVisual(t *testing.T) {
	visual := &recordingVisual{}
	e := newCrateWith(Options{Position: V(3, 4), Size: V(1, 1), Visual: visual, Collideable: true})

	require.Equal(t, 1, visual.calls, "construction syncs the visual")
	assert.Equal(t, 3.0, visual.x)
	assert.Equal(t, 4.0, visual.y)

	e.SetPosition(V(7, 9))
	assert.Equal(t, 7.0, visual.x)
	assert.Equal(t, 9.0, visual.y)

	e.OnCollide(newCrate(6, 8, 4, 4))
	assert.Equal(t, e.Position().X, visual.x)
	assert.Equal(t, e.Position().Y, visual.y)
}

func TestSetVisualSyncsCurrentPosition(t *testing.T) {
	e := newCrate(5, 6, 1, 1)
	assert.Equal(t, NopVisual, e.Visual())

	visual := &recordingVisual{}
	e.SetVisual(visual)
	assert.Same(t, visual, e.Visual())
	assert.Equal(t, 1, visual.calls)
	assert.Equal(t, 5.0, visual.x)
	assert.Equal(t, 6.0, visual.y)

	e.SetVisual(nil)
	assert.Equal(t, NopVisual, e.Visual())
	e.SetPosition(V(1, 1))
	assert.Equal(t, 1, visual.calls, "the replaced visual is no longer synced")
}

func TestAccessorsReturnCopies(t *testing.T) {
	tags := []string{"building"}
	e := newCrateWith(Options{Tags: tags, CollideList: []string{"player"}})

	tags[0] = "mutated"
	assert.Equal(t, []string{"building"}, e.Tags())

	got := e.Tags()
	got[0] = "mutated"
	assert.True(t, e.HasTag("building"))

	list := e.CollideList()
	list[0] = "mutated"
	assert.Equal(t, []string{"player"}, e.CollideList())

	pos := e.Position()
	pos.X = 100
	assert.Equal(t, 0.0, e.Position().X)
}

func TestDefaultBehaviorIsBlackList(t *testing.T) {
	e := newCrateWith(Options{})
	assert.Equal(t, BlackList, e.CollideListBehavior())
	assert.NotNil(t, e.Visual())
}
