package ecs

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// ShouldCheckCollision applies self's collide list to other's tags.
// The check is directional: other's own list is not consulted.
func ShouldCheckCollision(self, other Entity) bool {
	collideList := self.CollideList()
	if len(collideList) == 0 {
		return true
	}

	hasMatch := false
	for _, tag := range other.Tags() {
		if slices.Contains(collideList, tag) {
			hasMatch = true
			break
		}
	}

	if self.CollideListBehavior() == WhiteList {
		return hasMatch
	}
	return !hasMatch
}

// SweepStats counts what the broad phase did with the entity set
type SweepStats struct {
	// Candidates is the number of pairs handed to the visitor
	Candidates int
	// Filtered is the number of x-overlapping pairs rejected by the collide list
	Filtered int
}

// Sweep sorts a copy of entities by x and calls visit for every pair whose
// x-intervals may overlap and that passes the filter from the left entity.
// Ties in x keep their input order. The visitor may move entities; the
// pruning bound is re-read from the left entity after every visit.
func Sweep(entities []Entity, visit func(a, b Entity)) SweepStats {
	sorted := slices.Clone(entities)
	slices.SortStableFunc(sorted, func(a, b Entity) int {
		return cmp.Compare(a.Position().X, b.Position().X)
	})

	var stats SweepStats
	for i, a := range sorted {
		if !a.Collideable() {
			continue
		}

		for _, b := range sorted[i+1:] {
			// Sorted by x, so nothing further right can reach a
			if b.Position().X > a.Bounds().Right() {
				break
			}
			if !b.Collideable() {
				continue
			}
			if !ShouldCheckCollision(a, b) {
				stats.Filtered++
				continue
			}

			stats.Candidates++
			visit(a, b)
		}
	}

	return stats
}

// Pair is an overlapping pair in sweep order
type Pair struct {
	A Entity
	B Entity
}

// FindOverlaps returns every overlapping pair without resolving anything
func FindOverlaps(entities []Entity) []Pair {
	var pairs []Pair
	Sweep(entities, func(a, b Entity) {
		if a.CollidesWith(b) {
			pairs = append(pairs, Pair{A: a, B: b})
		}
	})
	return pairs
}

// ResolutionMode selects how an overlapping pair is separated
type ResolutionMode int

const (
	// ResolveSequential calls A.OnCollide(B) then B.OnCollide(A). The second
	// call sees A's corrected position, so results depend on sweep order.
	ResolveSequential ResolutionMode = iota
	// ResolveSymmetric computes one correction from the pre-correction
	// positions and splits it between the two entities.
	ResolveSymmetric
)

// String returns the mode name as used in config
func (m ResolutionMode) String() string {
	switch m {
	case ResolveSymmetric:
		return "symmetric"
	default:
		return "sequential"
	}
}

// ParseResolutionMode converts a config value into a ResolutionMode.
// An empty string selects the sequential mode.
func ParseResolutionMode(s string) (ResolutionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sequential":
		return ResolveSequential, nil
	case "symmetric":
		return ResolveSymmetric, nil
	default:
		return ResolveSequential, fmt.Errorf("unknown collision resolution mode %q", s)
	}
}

// CollisionStats summarises one collision pass
type CollisionStats struct {
	Entities    int
	Candidates  int
	Filtered    int
	Overlaps    int
	Resolutions int
}

// Pipeline runs the broad phase, narrow phase and resolution for a frame
type Pipeline struct {
	Mode ResolutionMode
	// OnContact is called after each overlapping pair has been resolved
	OnContact func(a, b Entity)
}

// Run processes one frame's entity set, moving entities in place
func (p *Pipeline) Run(entities []Entity) CollisionStats {
	stats := CollisionStats{Entities: len(entities)}

	sweep := Sweep(entities, func(a, b Entity) {
		if !a.CollidesWith(b) {
			return
		}
		stats.Overlaps++

		switch p.Mode {
		case ResolveSymmetric:
			stats.Resolutions += resolveSymmetric(a, b)
		default:
			stats.Resolutions += resolveSequential(a, b)
		}

		if p.OnContact != nil {
			p.OnContact(a, b)
		}
	})

	stats.Candidates = sweep.Candidates
	stats.Filtered = sweep.Filtered
	return stats
}

func resolveSequential(a, b Entity) int {
	n := 0
	if !a.Static() {
		a.OnCollide(b)
		n++
	}
	if !b.Static() {
		b.OnCollide(a)
		n++
	}
	return n
}

func resolveSymmetric(a, b Entity) int {
	switch {
	case !a.Static() && !b.Static():
		correction := Penetration(a.Bounds(), b.Bounds()).Mul(0.5)
		a.SetPosition(a.Position().Add(correction))
		b.SetPosition(b.Position().Sub(correction))
		return 2
	case !a.Static():
		a.SetPosition(a.Position().Add(Penetration(a.Bounds(), b.Bounds())))
		return 1
	case !b.Static():
		b.SetPosition(b.Position().Add(Penetration(b.Bounds(), a.Bounds())))
		return 1
	default:
		return 0
	}
}
