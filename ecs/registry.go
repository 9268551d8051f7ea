package ecs

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EntityInfo describes one entity for debug telemetry
type EntityInfo struct {
	Name   string
	Kind   string
	ID     uuid.UUID
	Bounds Box
}

// DebugSink receives per-frame entity telemetry while debugging is enabled
type DebugSink interface {
	BeginFrame()
	Record(info EntityInfo)
}

// Registry owns every entity, hands out unique names and drives the
// per-frame update and collision pass. It is not safe for concurrent use.
type Registry struct {
	logger   *zap.Logger
	entities map[string]Entity
	// Insertion order, used for updates and debug output
	order []string
	// Reverse lookups keyed by instance ID
	names map[uuid.UUID]string
	kinds map[uuid.UUID]string

	pipeline  Pipeline
	events    *EventManager
	debug     DebugSink
	lastStats CollisionStats
}

// NewRegistry creates an empty registry
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Registry{
		logger:   logger,
		entities: make(map[string]Entity),
		order:    make([]string, 0),
		names:    make(map[uuid.UUID]string),
		kinds:    make(map[uuid.UUID]string),
	}
	r.pipeline.OnContact = r.onContact
	return r
}

// Instantiate builds an entity with ctor and registers it under name.
// Taken names get a numeric suffix: name, name1, name2 and so on.
func Instantiate[T Entity](r *Registry, name string, ctor func() T) T {
	entity := ctor()
	r.Add(name, entity)
	return entity
}

// Add registers an entity and returns the name it was stored under
func (r *Registry) Add(name string, entity Entity) string {
	unique := r.uniqueName(name)
	kind := kindOf(entity)

	r.entities[unique] = entity
	r.order = append(r.order, unique)
	r.names[entity.ID()] = unique
	r.kinds[entity.ID()] = kind

	if unique != name {
		r.logger.Debug("entity name in use, renamed",
			zap.String("requested", name),
			zap.String("name", unique),
		)
	}
	r.logger.Debug("entity instantiated",
		zap.String("name", unique),
		zap.String("kind", kind),
		zap.Stringer("id", entity.ID()),
	)

	if r.events != nil {
		r.events.Emit(EntityInstantiatedEvent{Name: unique, Requested: name, Kind: kind})
	}

	return unique
}

func (r *Registry) uniqueName(name string) string {
	if _, taken := r.entities[name]; !taken {
		return name
	}
	for i := 1; ; i++ {
		candidate := name + strconv.Itoa(i)
		if _, taken := r.entities[candidate]; !taken {
			return candidate
		}
	}
}

func kindOf(entity Entity) string {
	t := reflect.TypeOf(entity)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// Get returns the entity stored under name
func (r *Registry) Get(name string) (Entity, error) {
	entity, exists := r.entities[name]
	if !exists {
		return nil, &EntityNotFoundError{Name: name}
	}
	return entity, nil
}

// GetAs returns the entity stored under name as its concrete kind
func GetAs[T Entity](r *Registry, name string) (T, error) {
	var zero T

	entity, err := r.Get(name)
	if err != nil {
		return zero, err
	}

	typed, ok := entity.(T)
	if !ok {
		return zero, fmt.Errorf("entity '%s' is a %s: %w", name, r.KindOf(entity), ErrEntityKind)
	}
	return typed, nil
}

// NameOf returns the registered name of an entity
func (r *Registry) NameOf(entity Entity) (string, bool) {
	name, ok := r.names[entity.ID()]
	return name, ok
}

// KindOf returns the recorded kind of an entity
func (r *Registry) KindOf(entity Entity) string {
	return r.kinds[entity.ID()]
}

// Len returns the number of registered entities
func (r *Registry) Len() int {
	return len(r.order)
}

// Names returns all names in insertion order
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Entities returns all entities in insertion order
func (r *Registry) Entities() []Entity {
	entities := make([]Entity, 0, len(r.order))
	for _, name := range r.order {
		entities = append(entities, r.entities[name])
	}
	return entities
}

// Each calls fn for every entity in insertion order
func (r *Registry) Each(fn func(name string, entity Entity)) {
	for _, name := range r.order {
		fn(name, r.entities[name])
	}
}

// SetResolutionMode selects how overlapping pairs are separated
func (r *Registry) SetResolutionMode(mode ResolutionMode) {
	r.pipeline.Mode = mode
}

// ResolutionMode returns the active resolution mode
func (r *Registry) ResolutionMode() ResolutionMode {
	return r.pipeline.Mode
}

// SetEventManager attaches an event manager for registry events
func (r *Registry) SetEventManager(events *EventManager) {
	r.events = events
}

// SetDebugSink attaches or, with nil, detaches debug telemetry
func (r *Registry) SetDebugSink(sink DebugSink) {
	r.debug = sink
}

// LastStats returns the statistics of the most recent collision pass
func (r *Registry) LastStats() CollisionStats {
	return r.lastStats
}

// Update runs every entity's Update hook in insertion order and then one
// collision pass over the moved entities.
func (r *Registry) Update(dt float64) {
	if r.debug != nil {
		r.debug.BeginFrame()
	}

	for _, name := range r.order {
		entity := r.entities[name]
		entity.Update(dt)

		if r.debug != nil {
			r.debug.Record(EntityInfo{
				Name:   name,
				Kind:   r.kinds[entity.ID()],
				ID:     entity.ID(),
				Bounds: entity.Bounds(),
			})
		}
	}

	r.lastStats = r.pipeline.Run(r.Entities())
}

func (r *Registry) onContact(a, b Entity) {
	if r.events == nil {
		return
	}
	r.events.Emit(CollisionEvent{
		A:     a,
		B:     b,
		NameA: r.names[a.ID()],
		NameB: r.names[b.ID()],
	})
}
