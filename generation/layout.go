package generation

import (
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/VAX325/ArcticLights/config"
)

// Noise sampling frequency in noise units per cell
const noiseScale = 1.0 / 8.0

// Building size limits in cells
const (
	minBuildingWidth  = 2
	maxBuildingWidth  = 5
	minBuildingHeight = 1
	maxBuildingHeight = 3
)

// Footprint is a rectangle of grid cells
type Footprint struct {
	X, Y int
	W, H int
}

// Overlaps reports whether two footprints come closer than gap cells
func (f Footprint) Overlaps(other Footprint, gap int) bool {
	return f.X < other.X+other.W+gap &&
		other.X < f.X+f.W+gap &&
		f.Y < other.Y+other.H+gap &&
		other.Y < f.Y+f.H+gap
}

// Within reports whether the footprint fits in a width x height grid
func (f Footprint) Within(width, height int) bool {
	return f.X >= 0 && f.Y >= 0 && f.X+f.W <= width && f.Y+f.H <= height
}

// LayoutGenerator places buildings where perlin noise density is high
type LayoutGenerator struct {
	cfg    config.GenerationConfig
	width  int
	height int
	noise  *perlin.Perlin
	rng    *rand.Rand
}

// NewLayoutGenerator creates a generator for a widthCells x heightCells world
func NewLayoutGenerator(cfg config.GenerationConfig, widthCells, heightCells int) *LayoutGenerator {
	return &LayoutGenerator{
		cfg:    cfg,
		width:  widthCells,
		height: heightCells,
		noise:  perlin.NewPerlin(cfg.Alpha, cfg.Beta, cfg.Octaves, cfg.Seed),
		rng:    rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Density returns the noise value of a cell mapped into [0, 1]
func (g *LayoutGenerator) Density(x, y int) float64 {
	// Sample cell centres; perlin noise is zero on lattice points
	n := g.noise.Noise2D((float64(x)+0.5)*noiseScale, (float64(y)+0.5)*noiseScale)
	return (n + 1) / 2
}

// Buildings returns up to cfg.Buildings footprints that stay one cell apart
// from each other and from reserved. The result depends only on the seed.
func (g *LayoutGenerator) Buildings(reserved []Footprint) []Footprint {
	var candidates [][2]int
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.Density(x, y) >= g.cfg.Threshold {
				candidates = append(candidates, [2]int{x, y})
			}
		}
	}
	g.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	var placed []Footprint
	for _, cell := range candidates {
		if len(placed) >= g.cfg.Buildings {
			break
		}

		fp := Footprint{
			X: cell[0],
			Y: cell[1],
			W: minBuildingWidth + g.rng.Intn(maxBuildingWidth-minBuildingWidth+1),
			H: minBuildingHeight + g.rng.Intn(maxBuildingHeight-minBuildingHeight+1),
		}
		if !fp.Within(g.width, g.height) {
			continue
		}
		if collides(fp, placed) || collides(fp, reserved) {
			continue
		}
		placed = append(placed, fp)
	}

	return placed
}

func collides(fp Footprint, others []Footprint) bool {
	for _, other := range others {
		if fp.Overlaps(other, 1) {
			return true
		}
	}
	return false
}
