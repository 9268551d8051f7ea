package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type pingEvent struct{}

func (pingEvent) Type() EventType { return "ping" }

func TestEventManagerSubscribeAndUnsubscribe(t *testing.T) {
	em := NewEventManager()

	var first, second int
	unsubscribe := em.Subscribe("ping", func(Event) { first++ })
	em.Subscribe("ping", func(Event) { second++ })

	em.Emit(pingEvent{})
	unsubscribe()
	em.Emit(pingEvent{})

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestEventManagerIgnoresUnknownTypes(t *testing.T) {
	em := NewEventManager()
	assert.NotPanics(t, func() { em.Emit(pingEvent{}) })
}

func TestCollisionEventOther(t *testing.T) {
	a := newCrate(0, 0, 1, 1)
	b := newCrate(0, 0, 1, 1)
	e := CollisionEvent{A: a, B: b}

	assert.Equal(t, Entity(b), e.Other(a))
	assert.Equal(t, Entity(a), e.Other(b))
	assert.False(t, e.Involves(newCrate(0, 0, 1, 1)))
}
