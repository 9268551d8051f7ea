package screens

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"

	"github.com/VAX325/ArcticLights/config"
	"github.com/VAX325/ArcticLights/ecs"
	"github.com/VAX325/ArcticLights/entities"
	"github.com/VAX325/ArcticLights/generation"
	"github.com/VAX325/ArcticLights/spawners"
	"github.com/VAX325/ArcticLights/systems"
)

// HUD layout on the UI virtual device
var (
	hudPosition = ecs.V(24, 24)
	hudSize     = ecs.V(480, 56)
	hudPadding  = ecs.V(12, 12)
)

// GameScreenOptions are the collaborators of the gameplay screen. Audio,
// Overlay, Metrics and Face may be nil.
type GameScreenOptions struct {
	Config   *config.Config
	Logger   *zap.Logger
	Registry *ecs.Registry
	Events   *ecs.EventManager
	Input    *systems.InputManager
	Camera   *systems.CameraSystem
	Render   *systems.RenderSystem
	UI       *systems.UIManager
	Messages *systems.MessageLog
	Contacts *systems.ContactTracker
	Spawner  *spawners.EntitySpawner
	Audio    *systems.AudioSystem
	Overlay  *systems.DebugOverlay
	Metrics  *systems.FrameMetrics
	Face     text.Face
}

// GameScreen handles the main gameplay state
type GameScreen struct {
	*BaseScreen
	cfg      *config.Config
	logger   *zap.Logger
	registry *ecs.Registry
	input    *systems.InputManager
	camera   *systems.CameraSystem
	render   *systems.RenderSystem
	ui       *systems.UIManager
	messages *systems.MessageLog
	audio    *systems.AudioSystem
	overlay  *systems.DebugOverlay
	metrics  *systems.FrameMetrics

	player      *entities.Player
	systems     []ecs.System
	screenStack *ScreenStack
	dt          float64
	cleanup     []func()
}

// NewGameScreen builds the world and wires every system to the registry
func NewGameScreen(opts GameScreenOptions) (*GameScreen, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &GameScreen{
		BaseScreen:  NewBaseScreen(),
		cfg:         cfg,
		logger:      logger,
		registry:    opts.Registry,
		input:       opts.Input,
		camera:      opts.Camera,
		render:      opts.Render,
		ui:          opts.UI,
		messages:    opts.Messages,
		audio:       opts.Audio,
		overlay:     opts.Overlay,
		metrics:     opts.Metrics,
		screenStack: NewScreenStack(),
		dt:          cfg.FrameDelta(),
	}

	mode, err := ecs.ParseResolutionMode(cfg.Collision.Resolution)
	if err != nil {
		return nil, err
	}
	s.registry.SetResolutionMode(mode)
	s.registry.SetEventManager(opts.Events)
	s.cleanup = append(s.cleanup, s.messages.AttachRegistryEvents(opts.Events))

	opts.Contacts.OnBegin(s.messages.LogContact)
	if s.audio != nil {
		opts.Contacts.OnBegin(s.audio.OnContact)
		if cfg.Audio.BGM != "" {
			if err := s.audio.PlayBGM(cfg.Audio.BGM); err != nil {
				logger.Warn("background music unavailable", zap.String("sound", cfg.Audio.BGM), zap.Error(err))
			}
		}
	}

	s.player = opts.Spawner.CreatePlayer()
	unbind, err := spawners.BindPlayerInput(s.input, cfg.Input.Bindings, s.player)
	if err != nil {
		return nil, fmt.Errorf("bind player input: %w", err)
	}
	s.cleanup = append(s.cleanup, unbind)

	if cfg.Debug.Enabled && cfg.Debug.LoadDebugWorld {
		opts.Spawner.LoadDebugWorld(s.player)
	} else {
		if cfg.Generation.Seed == 0 {
			cfg.Generation.Seed = time.Now().UnixNano()
		}
		generator := generation.NewLayoutGenerator(cfg.Generation, cfg.World.WidthCells, cfg.World.HeightCells)
		opts.Spawner.LoadWorld(s.player, generator)
	}

	s.camera.Follow(s.player)
	s.camera.SnapTo(s.player.Bounds().Center())
	s.render.DrawSnapGrid = cfg.Debug.Enabled && cfg.Debug.DrawSnapGrid

	hud := systems.NewUIPanel(hudPosition, hudSize)
	hud.AddElement(systems.NewPositionLabel(hudPadding, opts.Face, cfg.Player.Name, s.player))
	s.ui.AddPanel(hud)

	// Systems run after the registry's collision pass, in this order
	s.systems = append(s.systems, opts.Contacts, s.camera)
	if s.audio != nil {
		s.systems = append(s.systems, s.audio)
	}
	s.systems = append(s.systems, s.ui)
	if s.overlay != nil {
		s.registry.SetDebugSink(s.overlay)
		s.systems = append(s.systems, s.overlay)
	}

	s.messages.AddColored("Use WASD to move, F1 for the debug log.", systems.MessageTypeSystem)
	logger.Info("game screen ready",
		zap.Int("entities", s.registry.Len()),
		zap.Stringer("resolution", mode),
	)
	return s, nil
}

// Player returns the local player
func (s *GameScreen) Player() *entities.Player {
	return s.player
}

// Registry returns the entity registry
func (s *GameScreen) Registry() *ecs.Registry {
	return s.registry
}

// Step advances the world by one frame of dt
func (s *GameScreen) Step(dt float64) {
	s.input.Update()

	start := time.Now()
	s.registry.Update(dt)
	elapsed := time.Since(start)

	for _, system := range s.systems {
		system.Update(s.registry, dt)
	}

	if s.metrics != nil {
		s.metrics.Observe(s.registry.LastStats(), elapsed)
	}
}

// Update handles game updates
func (s *GameScreen) Update() error {
	// Toggle debug message window with F1 key
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		if s.screenStack.Peek() != nil {
			s.screenStack.Pop()
		} else {
			s.screenStack.Push(NewDebugScreen(s.messages))
		}
	}

	if err := s.screenStack.Update(); err != nil {
		return err
	}

	// Only update the game world if no modal is open
	if s.screenStack.Peek() == nil {
		s.Step(s.dt)
	}

	return nil
}

// Draw draws the game screen
func (s *GameScreen) Draw(screen *ebiten.Image) {
	s.render.Draw(s.registry, screen)
	if s.overlay != nil {
		s.overlay.Draw(screen)
	}
	s.ui.Draw(screen)

	// If there's a screen on the stack, draw it
	if s.screenStack.Peek() != nil {
		s.screenStack.Draw(screen)
	}
}

// Layout follows the window size and keeps the camera and UI in step with it
func (s *GameScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	if s.Resized(outsideWidth, outsideHeight) {
		s.camera.SetViewport(float64(outsideWidth), float64(outsideHeight))
		s.ui.Layout(outsideWidth, outsideHeight)
	}
	s.screenStack.Layout(outsideWidth, outsideHeight)
	return s.BaseScreen.Layout(outsideWidth, outsideHeight)
}

// Close releases input handlers, event subscriptions and audio
func (s *GameScreen) Close() {
	for _, fn := range s.cleanup {
		fn()
	}
	s.cleanup = nil
	if s.audio != nil {
		s.audio.Close()
	}
}
