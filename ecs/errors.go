package ecs

import (
	"errors"
	"fmt"
)

var (
	// ErrEntityNotFound matches any lookup of a name the registry does not hold
	ErrEntityNotFound = errors.New("entity not found")
	// ErrEntityKind is returned by typed lookups when the entity has another kind
	ErrEntityKind = errors.New("entity kind mismatch")
)

// EntityNotFoundError is returned by Registry.Get for unknown names
type EntityNotFoundError struct {
	Name string
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity with name '%s' not found", e.Name)
}

// Is lets errors.Is match ErrEntityNotFound
func (e *EntityNotFoundError) Is(target error) bool {
	return target == ErrEntityNotFound
}
