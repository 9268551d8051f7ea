package ecs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// walker moves right every frame
type walker struct {
	*Base
	speed float64
	log   *[]string
	name  string
}

func (w *walker) Update(dt float64) {
	if w.log != nil {
		*w.log = append(*w.log, w.name)
	}
	w.SetPosition(w.Position().Add(V(w.speed*dt, 0)))
}

type recordingSink struct {
	frames int
	infos  []EntityInfo
}

func (s *recordingSink) BeginFrame() {
	s.frames++
	s.infos = s.infos[:0]
}

func (s *recordingSink) Record(info EntityInfo) {
	s.infos = append(s.infos, info)
}

func TestInstantiateRenamesDuplicates(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t))

	first := Instantiate(r, "x", func() *crate { return newCrate(0, 0, 1, 1) })
	second := Instantiate(r, "x", func() *crate { return newCrate(0, 0, 1, 1) })
	third := Instantiate(r, "x", func() *crate { return newCrate(0, 0, 1, 1) })

	for name, want := range map[string]*crate{"x": first, "x1": second, "x2": third} {
		got, err := r.Get(name)
		require.NoError(t, err, name)
		assert.Same(t, want, got, name)
	}
	assert.Equal(t, []string{"x", "x1", "x2"}, r.Names())
}

func TestInstantiateSkipsTakenSuffixes(t *testing.T) {
	r := NewRegistry(nil)

	r.Add("x1", newCrate(0, 0, 1, 1))
	r.Add("x", newCrate(0, 0, 1, 1))
	name := r.Add("x", newCrate(0, 0, 1, 1))

	assert.Equal(t, "x2", name)
	assert.Equal(t, 3, r.Len())
}

func TestGetMissing(t *testing.T) {
	r := NewRegistry(nil)

	_, err := r.Get("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEntityNotFound))

	var notFound *EntityNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.Name)
	assert.Equal(t, "entity with name 'missing' not found", err.Error())
}

func TestGetAs(t *testing.T) {
	r := NewRegistry(nil)
	c := Instantiate(r, "crate", func() *crate { return newCrate(0, 0, 1, 1) })

	got, err := GetAs[*crate](r, "crate")
	require.NoError(t, err)
	assert.Same(t, c, got)

	_, err = GetAs[*walker](r, "crate")
	assert.ErrorIs(t, err, ErrEntityKind)

	_, err = GetAs[*crate](r, "nope")
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestKindAndNameLookup(t *testing.T) {
	r := NewRegistry(nil)
	c := Instantiate(r, "box", func() *crate { return newCrate(0, 0, 1, 1) })

	name, ok := r.NameOf(c)
	assert.True(t, ok)
	assert.Equal(t, "box", name)
	assert.Equal(t, "crate", r.KindOf(c))

	_, ok = r.NameOf(newCrate(0, 0, 1, 1))
	assert.False(t, ok)
}

// marker embeds a zero Base instead of calling NewBase
type marker struct {
	Base
}

func TestZeroBaseEntities(t *testing.T) {
	r := NewRegistry(nil)
	first := Instantiate(r, "marker", func() *marker { return &marker{} })
	second := Instantiate(r, "marker", func() *marker { return &marker{} })

	assert.NotEqual(t, first.ID(), second.ID())
	assert.Equal(t, first.ID(), first.ID(), "the ID is stable once assigned")

	name, ok := r.NameOf(first)
	require.True(t, ok)
	assert.Equal(t, "marker", name)
	name, ok = r.NameOf(second)
	require.True(t, ok)
	assert.Equal(t, "marker1", name)
	assert.Equal(t, "marker", r.KindOf(second))

	assert.NotPanics(t, func() { second.SetPosition(V(3, 4)) })
	assert.Equal(t, V(3, 4), second.Position())
	assert.Equal(t, NopVisual, second.Visual())
	assert.NotPanics(t, func() { r.Update(1) })
}

func TestUpdateRunsInInsertionOrder(t *testing.T) {
	r := NewRegistry(nil)
	var calls []string

	for _, name := range []string{"c", "a", "b"} {
		n := name
		Instantiate(r, n, func() *walker {
			return &walker{Base: NewBase(Options{Size: V(1, 1)}), log: &calls, name: n}
		})
	}

	r.Update(1)

	assert.Equal(t, []string{"c", "a", "b"}, calls)
}

func TestUpdateMovesBeforeResolving(t *testing.T) {
	r := NewRegistry(nil)

	// The walker is clear of the wall until it moves this frame
	w := Instantiate(r, "walker", func() *walker {
		return &walker{
			Base:  NewBase(Options{Position: V(0, 0), Size: V(10, 10), Collideable: true}),
			speed: 4,
		}
	})
	wall := Instantiate(r, "wall", func() *crate {
		return newCrateWith(Options{Position: V(12, 0), Size: V(10, 10), Collideable: true, Static: true})
	})

	r.Update(1)

	assert.Equal(t, V(2, 0), w.Position())
	assert.Equal(t, V(12, 0), wall.Position())
	assert.Equal(t, 1, r.LastStats().Overlaps)
	assert.Equal(t, 1, r.LastStats().Resolutions)
	assert.Equal(t, 1, wall.updates)
}

func TestUpdateScenarioModes(t *testing.T) {
	tests := []struct {
		mode       ResolutionMode
		wantA      Vec2
		wantB      Vec2
		resolution int
	}{
		{ResolveSequential, V(-5, 0), V(5, 0), 2},
		{ResolveSymmetric, V(-2.5, 0), V(7.5, 0), 2},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			r := NewRegistry(nil)
			r.SetResolutionMode(tt.mode)
			assert.Equal(t, tt.mode, r.ResolutionMode())

			a := Instantiate(r, "a", func() *crate { return newCrate(0, 0, 10, 10) })
			b := Instantiate(r, "b", func() *crate { return newCrate(5, 0, 10, 10) })

			r.Update(1.0 / 60.0)

			assert.Equal(t, tt.wantA, a.Position())
			assert.Equal(t, tt.wantB, b.Position())
			assert.Equal(t, tt.resolution, r.LastStats().Resolutions)
		})
	}
}

func TestRegistryEvents(t *testing.T) {
	r := NewRegistry(nil)
	events := NewEventManager()
	r.SetEventManager(events)

	var instantiated []EntityInstantiatedEvent
	var collisions []CollisionEvent
	events.Subscribe(EntityInstantiatedEventType, func(e Event) {
		instantiated = append(instantiated, e.(EntityInstantiatedEvent))
	})
	events.Subscribe(CollisionEventType, func(e Event) {
		collisions = append(collisions, e.(CollisionEvent))
	})

	a := Instantiate(r, "box", func() *crate { return newCrate(0, 0, 10, 10) })
	Instantiate(r, "box", func() *crate { return newCrate(5, 0, 10, 10) })
	r.Update(1)

	require.Len(t, instantiated, 2)
	assert.False(t, instantiated[0].Renamed())
	assert.True(t, instantiated[1].Renamed())
	assert.Equal(t, "box1", instantiated[1].Name)
	assert.Equal(t, "crate", instantiated[1].Kind)

	require.Len(t, collisions, 1)
	assert.Equal(t, "box", collisions[0].NameA)
	assert.Equal(t, "box1", collisions[0].NameB)
	assert.True(t, collisions[0].Involves(a))
}

func TestDebugSinkOnlyWhenAttached(t *testing.T) {
	r := NewRegistry(nil)
	Instantiate(r, "one", func() *crate { return newCrate(0, 0, 1, 1) })
	Instantiate(r, "two", func() *crate { return newCrate(5, 0, 2, 3) })

	sink := &recordingSink{}
	r.Update(1)
	assert.Equal(t, 0, sink.frames)

	r.SetDebugSink(sink)
	r.Update(1)
	require.Equal(t, 1, sink.frames)
	require.Len(t, sink.infos, 2)
	assert.Equal(t, "two", sink.infos[1].Name)
	assert.Equal(t, "crate", sink.infos[1].Kind)
	assert.Equal(t, Box{Pos: V(5, 0), Size: V(2, 3)}, sink.infos[1].Bounds)

	r.SetDebugSink(nil)
	r.Update(1)
	assert.Equal(t, 1, sink.frames)
}
