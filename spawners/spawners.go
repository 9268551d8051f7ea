package spawners

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/VAX325/ArcticLights/components"
	"github.com/VAX325/ArcticLights/config"
	"github.com/VAX325/ArcticLights/data"
	"github.com/VAX325/ArcticLights/ecs"
	"github.com/VAX325/ArcticLights/entities"
	"github.com/VAX325/ArcticLights/generation"
	"github.com/VAX325/ArcticLights/systems"
)

// Entity names used by the world
const (
	TestBuildingName = "testBuilding"
	BuildingName     = "building"
)

// Texture names looked up in the default bundle
const (
	PlayerTexture   = "player"
	BuildingTexture = data.PlaceholderTexture
)

// Debug world layout in cells
var (
	DebugPlayerCell    = ecs.V(10, 10)
	DebugBuildingCells = []ecs.Vec2{ecs.V(10, 15), ecs.V(20, 15)}
)

// TextureSource resolves textures by name
type TextureSource interface {
	Texture(name string) (*data.Texture, error)
}

// PlaceOnCell moves e so its top-left corner sits on the given cell
func PlaceOnCell(e ecs.Entity, cell ecs.Vec2, cellSize float64) {
	e.SetPosition(cell.Mul(cellSize).Floor())
}

// SnapToGrid moves e to the centre of the cell containing wanted
func SnapToGrid(e ecs.Entity, wanted ecs.Vec2, cellSize float64) {
	half := cellSize / 2
	e.SetPosition(ecs.V(
		math.Floor(wanted.X/cellSize)*cellSize+half,
		math.Floor(wanted.Y/cellSize)*cellSize+half,
	))
}

// EntitySpawner manages the creation of game entities
type EntitySpawner struct {
	registry *ecs.Registry
	textures TextureSource
	cfg      *config.Config
	logger   *zap.Logger
}

// NewEntitySpawner creates a new entity spawner. textures may be nil, in
// which case entities get no sprite.
func NewEntitySpawner(registry *ecs.Registry, textures TextureSource, cfg *config.Config, logger *zap.Logger) *EntitySpawner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntitySpawner{
		registry: registry,
		textures: textures,
		cfg:      cfg,
		logger:   logger,
	}
}

// CellSize returns the world grid cell size in pixels
func (s *EntitySpawner) CellSize() float64 {
	return s.cfg.World.CellSize
}

// PlaceOnCell places e on a cell of this world's grid
func (s *EntitySpawner) PlaceOnCell(e ecs.Entity, cell ecs.Vec2) {
	PlaceOnCell(e, cell, s.CellSize())
}

// SnapToGrid snaps e to a cell centre of this world's grid
func (s *EntitySpawner) SnapToGrid(e ecs.Entity, wanted ecs.Vec2) {
	SnapToGrid(e, wanted, s.CellSize())
}

// sprite builds a stretched sprite, or nil when no texture source is set
func (s *EntitySpawner) sprite(texture string, size ecs.Vec2) ecs.Visual {
	if s.textures == nil {
		return nil
	}
	tex, err := s.textures.Texture(texture)
	if err != nil {
		s.logger.Warn("texture unavailable", zap.String("texture", texture), zap.Error(err))
		return nil
	}
	return components.NewSprite(tex.Image(), size.X, size.Y)
}

// CreatePlayer registers the local player under the configured name
func (s *EntitySpawner) CreatePlayer() *entities.Player {
	player := ecs.Instantiate(s.registry, s.cfg.Player.Name, func() *entities.Player {
		return entities.NewPlayer(ecs.V(0, 0), s.CellSize(), s.cfg.Player.Speed, nil)
	})
	player.SetVisual(s.sprite(PlayerTexture, player.Size()))
	return player
}

// CreateBuilding registers a static building of the given cell size
func (s *EntitySpawner) CreateBuilding(name string, widthCells, heightCells int, collideable bool) *entities.Building {
	building := ecs.Instantiate(s.registry, name, func() *entities.Building {
		return entities.NewBuilding(ecs.V(0, 0), widthCells, heightCells, s.CellSize(), collideable, nil)
	})
	building.SetVisual(s.sprite(BuildingTexture, building.Size()))
	return building
}

// CreateTestBuilding registers a 4x2 test building
func (s *EntitySpawner) CreateTestBuilding() *entities.TestBuilding {
	building := ecs.Instantiate(s.registry, TestBuildingName, func() *entities.TestBuilding {
		return entities.NewTestBuilding(ecs.V(0, 0), s.CellSize(), nil)
	})
	building.SetVisual(s.sprite(BuildingTexture, building.Size()))
	return building
}

// LoadDebugWorld places the player and two test buildings on fixed cells
func (s *EntitySpawner) LoadDebugWorld(player *entities.Player) []*entities.TestBuilding {
	s.PlaceOnCell(player, DebugPlayerCell)

	buildings := make([]*entities.TestBuilding, 0, len(DebugBuildingCells))
	for _, cell := range DebugBuildingCells {
		b := s.CreateTestBuilding()
		s.PlaceOnCell(b, cell)
		buildings = append(buildings, b)
	}

	s.logger.Info("debug world loaded", zap.Int("buildings", len(buildings)))
	return buildings
}

// LoadWorld places the player in the middle of the world and fills the rest
// with generated buildings
func (s *EntitySpawner) LoadWorld(player *entities.Player, generator *generation.LayoutGenerator) []*entities.Building {
	center := generation.Footprint{
		X: s.cfg.World.WidthCells / 2,
		Y: s.cfg.World.HeightCells / 2,
		W: 1,
		H: 1,
	}
	s.PlaceOnCell(player, ecs.V(float64(center.X), float64(center.Y)))

	footprints := generator.Buildings([]generation.Footprint{center})
	buildings := make([]*entities.Building, 0, len(footprints))
	for _, fp := range footprints {
		b := s.CreateBuilding(BuildingName, fp.W, fp.H, true)
		s.PlaceOnCell(b, ecs.V(float64(fp.X), float64(fp.Y)))
		buildings = append(buildings, b)
	}

	s.logger.Info("world generated",
		zap.Int64("seed", s.cfg.Generation.Seed),
		zap.Int("buildings", len(buildings)),
	)
	return buildings
}

var playerActions = []struct {
	action    string
	direction components.Direction
}{
	{config.ActionMoveLeft, components.DirectionLeft},
	{config.ActionMoveRight, components.DirectionRight},
	{config.ActionMoveUp, components.DirectionUp},
	{config.ActionMoveDown, components.DirectionDown},
}

// BindPlayerInput registers the movement actions from bindings and steers
// player with them. The returned function removes the handlers.
func BindPlayerInput(input *systems.InputManager, bindings map[string]config.KeyBinding, player *entities.Player) (func(), error) {
	var removers []func()
	unbind := func() {
		for _, remove := range removers {
			remove()
		}
	}

	for _, pa := range playerActions {
		if !input.HasAction(pa.action) {
			binding, ok := bindings[pa.action]
			if !ok {
				unbind()
				return nil, fmt.Errorf("no key bound to %s", pa.action)
			}
			mods, err := systems.ParseModifiers(binding.Modifiers)
			if err != nil {
				unbind()
				return nil, fmt.Errorf("binding %s: %w", pa.action, err)
			}
			if err := input.RegisterAction(pa.action, binding.Key, mods); err != nil {
				unbind()
				return nil, err
			}
		}

		dir := pa.direction
		down, err := input.AppendHandler(pa.action, systems.KeyDown, func() { player.SetDirection(dir, true) })
		if err != nil {
			unbind()
			return nil, err
		}
		removers = append(removers, down)

		up, err := input.AppendHandler(pa.action, systems.KeyUp, func() { player.SetDirection(dir, false) })
		if err != nil {
			unbind()
			return nil, err
		}
		removers = append(removers, up)
	}

	return unbind, nil
}
