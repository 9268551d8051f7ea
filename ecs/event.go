package ecs

// EventType identifies different types of events
type EventType string

const (
	// EntityInstantiatedEventType is emitted when the registry adopts an entity
	EntityInstantiatedEventType EventType = "entity_instantiated"
	// CollisionEventType is emitted for each resolved overlapping pair
	CollisionEventType EventType = "collision"
)

// Event interface that all events must implement
type Event interface {
	Type() EventType
}

// EventHandler is a function that processes events
type EventHandler func(Event)

type subscription struct {
	id      uint64
	handler EventHandler
}

// EventManager manages event subscriptions and dispatches
type EventManager struct {
	subscribers map[EventType][]subscription
	nextID      uint64
}

// NewEventManager creates a new event manager
func NewEventManager() *EventManager {
	return &EventManager{
		subscribers: make(map[EventType][]subscription),
	}
}

// Subscribe registers a handler for a specific event type.
// The returned function removes the handler again.
func (em *EventManager) Subscribe(eventType EventType, handler EventHandler) func() {
	em.nextID++
	id := em.nextID
	em.subscribers[eventType] = append(em.subscribers[eventType], subscription{id: id, handler: handler})

	return func() {
		em.unsubscribe(eventType, id)
	}
}

func (em *EventManager) unsubscribe(eventType EventType, id uint64) {
	subs, exists := em.subscribers[eventType]
	if !exists {
		return
	}

	remaining := make([]subscription, 0, len(subs))
	for _, sub := range subs {
		if sub.id != id {
			remaining = append(remaining, sub)
		}
	}

	if len(remaining) == 0 {
		delete(em.subscribers, eventType)
	} else {
		em.subscribers[eventType] = remaining
	}
}

// Emit dispatches an event to all subscribed handlers
func (em *EventManager) Emit(event Event) {
	subs, exists := em.subscribers[event.Type()]
	if !exists {
		return
	}

	for _, sub := range subs {
		sub.handler(event)
	}
}

// EntityInstantiatedEvent is emitted after an entity has been registered
type EntityInstantiatedEvent struct {
	Name      string
	Requested string
	Kind      string
}

// Type implements Event
func (e EntityInstantiatedEvent) Type() EventType {
	return EntityInstantiatedEventType
}

// Renamed reports whether the requested name was already taken
func (e EntityInstantiatedEvent) Renamed() bool {
	return e.Name != e.Requested
}

// CollisionEvent is emitted after an overlapping pair has been resolved
type CollisionEvent struct {
	A     Entity
	B     Entity
	NameA string
	NameB string
}

// Type implements Event
func (e CollisionEvent) Type() EventType {
	return CollisionEventType
}

// Involves reports whether either side of the contact is the given entity
func (e CollisionEvent) Involves(entity Entity) bool {
	return e.A == entity || e.B == entity
}

// Other returns the opposite side of the contact
func (e CollisionEvent) Other(entity Entity) Entity {
	if e.A == entity {
		return e.B
	}
	return e.A
}
