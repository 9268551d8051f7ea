package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable consulted when no config path is given
const EnvVar = "ARCTIC_CONFIG"

// Config is the root of the game configuration
type Config struct {
	GameName   string           `yaml:"game_name"`
	Window     WindowConfig     `yaml:"window"`
	World      WorldConfig      `yaml:"world"`
	UI         UIConfig         `yaml:"ui"`
	Debug      DebugConfig      `yaml:"debug"`
	Collision  CollisionConfig  `yaml:"collision"`
	Player     PlayerConfig     `yaml:"player"`
	Camera     CameraConfig     `yaml:"camera"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Assets     AssetsConfig     `yaml:"assets"`
	Audio      AudioConfig      `yaml:"audio"`
	Generation GenerationConfig `yaml:"generation"`
	Input      InputConfig      `yaml:"input"`
}

type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	TPS        int    `yaml:"tps"`
}

type WorldConfig struct {
	CellSize    float64 `yaml:"cell_size"`
	WidthCells  int     `yaml:"width_cells"`
	HeightCells int     `yaml:"height_cells"`
}

type UIConfig struct {
	VirtualWidth  float64 `yaml:"virtual_width"`
	VirtualHeight float64 `yaml:"virtual_height"`
}

type DebugConfig struct {
	Enabled        bool `yaml:"enabled"`
	DrawEntities   bool `yaml:"draw_entities"`
	LoadDebugWorld bool `yaml:"load_debug_world"`
	DrawSnapGrid   bool `yaml:"draw_snap_grid"`
}

type CollisionConfig struct {
	// Resolution is "sequential" or "symmetric"
	Resolution string `yaml:"resolution"`
}

type PlayerConfig struct {
	Name  string  `yaml:"name"`
	Speed float64 `yaml:"speed"`
}

type CameraConfig struct {
	TransitionSpeed float64 `yaml:"transition_speed"`
	Zoom            float64 `yaml:"zoom"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type MetricsConfig struct {
	// Addr enables the Prometheus endpoint when non-empty, e.g. ":2112"
	Addr string `yaml:"addr"`
}

type AssetsConfig struct {
	Dir              string `yaml:"dir"`
	AllowPlaceholder bool   `yaml:"allow_placeholder"`
}

type AudioConfig struct {
	SampleRate   int     `yaml:"sample_rate"`
	Volume       float64 `yaml:"volume"`
	BumpCooldown float64 `yaml:"bump_cooldown_seconds"`
	// Looping background music from the default bundle, empty for silence
	BGM string `yaml:"bgm"`
}

type GenerationConfig struct {
	Seed      int64   `yaml:"seed"`
	Buildings int     `yaml:"buildings"`
	Alpha     float64 `yaml:"alpha"`
	Beta      float64 `yaml:"beta"`
	Octaves   int32   `yaml:"octaves"`
	Threshold float64 `yaml:"threshold"`
}

// KeyBinding maps an action to a key and the modifiers of which any one must be held
type KeyBinding struct {
	Key       string   `yaml:"key"`
	Modifiers []string `yaml:"modifiers"`
}

type InputConfig struct {
	Bindings map[string]KeyBinding `yaml:"bindings"`
}

// Action names used by the player
const (
	ActionMoveLeft  = "#MoveLeft"
	ActionMoveRight = "#MoveRight"
	ActionMoveUp    = "#MoveUp"
	ActionMoveDown  = "#MoveDown"
)

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		GameName: "ArcticLights",
		Window: WindowConfig{
			Title:  "Arctic Lights",
			Width:  WindowWidth,
			Height: WindowHeight,
			TPS:    60,
		},
		World: WorldConfig{
			CellSize:    CellSize,
			WidthCells:  WorldWidthCells,
			HeightCells: WorldHeightCells,
		},
		UI: UIConfig{
			VirtualWidth:  UIVirtualWidth,
			VirtualHeight: UIVirtualHeight,
		},
		Collision: CollisionConfig{Resolution: "sequential"},
		Player: PlayerConfig{
			Name:  "localPlayer",
			Speed: 4,
		},
		Camera: CameraConfig{
			TransitionSpeed: 0.1,
			Zoom:            1,
		},
		Logging: LoggingConfig{Level: "info"},
		Assets: AssetsConfig{
			Dir:              "assets",
			AllowPlaceholder: true,
		},
		Audio: AudioConfig{
			SampleRate:   44100,
			Volume:       1,
			BumpCooldown: 0.5,
			BGM:          "music",
		},
		Generation: GenerationConfig{
			Buildings: 12,
			Alpha:     2,
			Beta:      2,
			Octaves:   3,
			Threshold: 0.55,
		},
		Input: InputConfig{
			Bindings: map[string]KeyBinding{
				ActionMoveLeft:  {Key: "a"},
				ActionMoveRight: {Key: "d"},
				ActionMoveUp:    {Key: "w"},
				ActionMoveDown:  {Key: "s"},
			},
		},
	}
}

// Load reads a YAML config on top of the defaults. An empty path falls back
// to $ARCTIC_CONFIG, and if that is unset too the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that would break the game loop
func (c *Config) Validate() error {
	var errs []error

	if c.World.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("world.cell_size must be positive, got %v", c.World.CellSize))
	}
	if c.World.WidthCells <= 0 || c.World.HeightCells <= 0 {
		errs = append(errs, errors.New("world dimensions must be positive"))
	}
	if c.UI.VirtualWidth <= 0 || c.UI.VirtualHeight <= 0 {
		errs = append(errs, errors.New("ui virtual size must be positive"))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window.tps must be positive, got %d", c.Window.TPS))
	}
	if c.Player.Speed < 0 {
		errs = append(errs, fmt.Errorf("player.speed must not be negative, got %v", c.Player.Speed))
	}
	if c.Camera.Zoom <= 0 {
		errs = append(errs, fmt.Errorf("camera.zoom must be positive, got %v", c.Camera.Zoom))
	}
	switch strings.ToLower(c.Collision.Resolution) {
	case "", "sequential", "symmetric":
	default:
		errs = append(errs, fmt.Errorf("collision.resolution must be sequential or symmetric, got %q", c.Collision.Resolution))
	}
	for action, binding := range c.Input.Bindings {
		if binding.Key == "" {
			errs = append(errs, fmt.Errorf("input binding %s has no key", action))
		}
	}

	return errors.Join(errs...)
}

// DebugDrawEntities reports whether entity boxes should be recorded and drawn
func (c *Config) DebugDrawEntities() bool {
	return c.Debug.Enabled && c.Debug.DrawEntities
}
