package ecs

// System is per-frame logic that runs after the registry has updated
// entities and resolved collisions
type System interface {
	// Update is called each frame with the registry it observes
	Update(registry *Registry, dt float64)
}
