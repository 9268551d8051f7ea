package systems

import (
	"github.com/VAX325/ArcticLights/ecs"
)

// Contact is a pair of entities that overlapped during a frame
type Contact struct {
	A     ecs.Entity
	B     ecs.Entity
	NameA string
	NameB string
}

type contactKey struct {
	a, b string
}

func keyFor(nameA, nameB string) contactKey {
	if nameA > nameB {
		nameA, nameB = nameB, nameA
	}
	return contactKey{a: nameA, b: nameB}
}

// ContactTracker turns per-frame collision events into contact-began
// notifications, so listeners are not called every frame two entities
// stay pressed together.
type ContactTracker struct {
	current  map[contactKey]Contact
	previous map[contactKey]Contact
	onBegin  []func(Contact)
	active   int
}

// NewContactTracker creates a tracker fed by collision events from events
func NewContactTracker(events *ecs.EventManager) *ContactTracker {
	t := &ContactTracker{
		current:  make(map[contactKey]Contact),
		previous: make(map[contactKey]Contact),
	}
	events.Subscribe(ecs.CollisionEventType, t.record)
	return t
}

// OnBegin registers a callback for contacts that were absent last frame
func (t *ContactTracker) OnBegin(fn func(Contact)) {
	t.onBegin = append(t.onBegin, fn)
}

// Active returns the number of contacts seen in the last completed frame
func (t *ContactTracker) Active() int {
	return t.active
}

func (t *ContactTracker) record(e ecs.Event) {
	ev := e.(ecs.CollisionEvent)
	t.current[keyFor(ev.NameA, ev.NameB)] = Contact{A: ev.A, B: ev.B, NameA: ev.NameA, NameB: ev.NameB}
}

// Update implements ecs.System. It runs after the registry's collision pass.
func (t *ContactTracker) Update(_ *ecs.Registry, _ float64) {
	for key, contact := range t.current {
		if _, seen := t.previous[key]; seen {
			continue
		}
		for _, fn := range t.onBegin {
			fn(contact)
		}
	}

	t.active = len(t.current)
	t.previous = t.current
	t.current = make(map[contactKey]Contact, len(t.previous))
}
