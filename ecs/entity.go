package ecs

import (
	"slices"

	"github.com/google/uuid"
)

// ListBehavior decides how an entity's collide list is interpreted
type ListBehavior int

const (
	// BlackList excludes entities sharing a tag with the collide list
	BlackList ListBehavior = iota
	// WhiteList only tests entities sharing a tag with the collide list
	WhiteList
)

// String returns the behavior name as used in logs and config
func (b ListBehavior) String() string {
	switch b {
	case WhiteList:
		return "whitelist"
	default:
		return "blacklist"
	}
}

// Visual is the render handle an entity keeps in sync with its position
type Visual interface {
	SetPosition(x, y float64)
}

type nopVisual struct{}

func (nopVisual) SetPosition(float64, float64) {}

// NopVisual is used for entities that have nothing to draw
var NopVisual Visual = nopVisual{}

// Entity is an axis-aligned box that takes part in the per-frame update
// and collision pass. Concrete kinds embed *Base and override Update or
// OnCollide as needed.
type Entity interface {
	ID() uuid.UUID
	// Position returns a snapshot of the top-left corner
	Position() Vec2
	SetPosition(position Vec2)
	Size() Vec2
	Bounds() Box
	Visual() Visual

	Collideable() bool
	Static() bool
	// CollideList returns a copy of the filter tags
	CollideList() []string
	CollideListBehavior() ListBehavior
	// Tags returns a copy of the category tags
	Tags() []string
	HasTag(tag string) bool

	// Update is called once per frame before collisions are processed
	Update(dt float64)
	CollidesWith(other Entity) bool
	// OnCollide pushes this entity out of other
	OnCollide(other Entity)
}

// Options configures a Base at construction time
type Options struct {
	Position    Vec2
	Size        Vec2
	Visual      Visual
	Collideable bool
	Static      bool
	CollideList []string
	Behavior    ListBehavior
	Tags        []string
}

// Base holds the state shared by every entity kind. A zero Base is usable:
// it gets an ID on first use and renders nothing.
type Base struct {
	id          uuid.UUID
	position    Vec2
	size        Vec2
	visual      Visual
	collideable bool
	static      bool
	collideList []string
	behavior    ListBehavior
	tags        []string
}

// NewBase creates a new entity base from options
func NewBase(opts Options) *Base {
	visual := opts.Visual
	if visual == nil {
		visual = NopVisual
	}

	b := &Base{
		id:          uuid.New(),
		size:        opts.Size,
		visual:      visual,
		collideable: opts.Collideable,
		static:      opts.Static,
		collideList: slices.Clone(opts.CollideList),
		behavior:    opts.Behavior,
		tags:        slices.Clone(opts.Tags),
	}
	b.SetPosition(opts.Position)
	return b
}

// ID returns the instance identifier
func (b *Base) ID() uuid.UUID {
	if b.id == uuid.Nil {
		b.id = uuid.New()
	}
	return b.id
}

// Position returns the current top-left corner
func (b *Base) Position() Vec2 {
	return b.position
}

// SetPosition moves the entity and syncs its visual
func (b *Base) SetPosition(position Vec2) {
	b.position = position
	b.Visual().SetPosition(position.X, position.Y)
}

// Size returns the entity extent
func (b *Base) Size() Vec2 {
	return b.size
}

// Bounds returns the current box
func (b *Base) Bounds() Box {
	return Box{Pos: b.position, Size: b.size}
}

// Visual returns the render handle
func (b *Base) Visual() Visual {
	if b.visual == nil {
		return NopVisual
	}
	return b.visual
}

// SetVisual replaces the render handle and syncs it to the current position
func (b *Base) SetVisual(visual Visual) {
	if visual == nil {
		visual = NopVisual
	}
	b.visual = visual
	b.visual.SetPosition(b.position.X, b.position.Y)
}

// Collideable reports whether the entity takes part in collision tests
func (b *Base) Collideable() bool {
	return b.collideable
}

// Static reports whether the entity is never displaced by resolution
func (b *Base) Static() bool {
	return b.static
}

// CollideList returns a copy of the filter tags
func (b *Base) CollideList() []string {
	return slices.Clone(b.collideList)
}

// CollideListBehavior returns how the collide list is interpreted
func (b *Base) CollideListBehavior() ListBehavior {
	return b.behavior
}

// Tags returns a copy of the category tags
func (b *Base) Tags() []string {
	return slices.Clone(b.tags)
}

// HasTag checks if the entity carries a specific tag
func (b *Base) HasTag(tag string) bool {
	return slices.Contains(b.tags, tag)
}

// Update does nothing by default
func (b *Base) Update(dt float64) {}

// CollidesWith reports whether the two boxes overlap
func (b *Base) CollidesWith(other Entity) bool {
	return b.Bounds().Overlaps(other.Bounds())
}

// OnCollide pushes the entity out of other along the axis of least
// penetration. The correction is derived from current positions only.
func (b *Base) OnCollide(other Entity) {
	if !b.collideable {
		return
	}
	b.SetPosition(b.position.Add(Penetration(b.Bounds(), other.Bounds())))
}
