package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"

	"github.com/VAX325/ArcticLights/config"
	"github.com/VAX325/ArcticLights/data"
	"github.com/VAX325/ArcticLights/ecs"
	"github.com/VAX325/ArcticLights/screens"
	"github.com/VAX325/ArcticLights/spawners"
	"github.com/VAX325/ArcticLights/systems"
)

// UI font lookup
const (
	uiFontName = "ui"
	uiFontSize = 28
)

func provideRegistry(logger *zap.Logger) *ecs.Registry {
	return ecs.NewRegistry(logger.Named("registry"))
}

func provideInput(logger *zap.Logger) *systems.InputManager {
	return systems.NewInputManager(logger.Named("input"), systems.EbitenKeyState{})
}

func provideCamera(cfg *config.Config) *systems.CameraSystem {
	return systems.NewCameraSystem(cfg.Camera.TransitionSpeed, cfg.Camera.Zoom)
}

func provideRender(cfg *config.Config, camera *systems.CameraSystem) *systems.RenderSystem {
	return systems.NewRenderSystem(camera, cfg.World.CellSize)
}

func provideUI(cfg *config.Config) *systems.UIManager {
	return systems.NewUIManager(cfg.UI.VirtualWidth, cfg.UI.VirtualHeight)
}

func provideMessageLog() *systems.MessageLog {
	return systems.NewMessageLog(systems.DefaultMaxMessages)
}

func provideAssets(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*data.Manager, error) {
	manager := data.NewManager(logger.Named("assets"), os.DirFS(cfg.Assets.Dir), cfg.GameName)
	if err := manager.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("load assets from %s: %w", cfg.Assets.Dir, err)
	}
	return manager, nil
}

// textureLookup applies the configured placeholder policy to the default bundle
type textureLookup struct {
	assets           *data.Manager
	bundle           string
	allowPlaceholder bool
}

func (l textureLookup) Texture(name string) (*data.Texture, error) {
	return l.assets.TextureFrom(l.bundle, name, l.allowPlaceholder)
}

func provideSpawner(cfg *config.Config, logger *zap.Logger, registry *ecs.Registry, assets *data.Manager) *spawners.EntitySpawner {
	textures := textureLookup{
		assets:           assets,
		bundle:           cfg.GameName,
		allowPlaceholder: cfg.Assets.AllowPlaceholder,
	}
	return spawners.NewEntitySpawner(registry, textures, cfg, logger.Named("spawner"))
}

func provideAudio(cfg *config.Config, logger *zap.Logger, assets *data.Manager) *systems.AudioSystem {
	audioContext := audio.NewContext(cfg.Audio.SampleRate)
	return systems.NewAudioSystem(logger.Named("audio"), audioContext, assets, cfg.Audio)
}

// provideOverlay returns nil unless debug mode is on
func provideOverlay(cfg *config.Config, logger *zap.Logger, camera *systems.CameraSystem) *systems.DebugOverlay {
	if !cfg.Debug.Enabled {
		return nil
	}
	sampler, err := systems.NewProcessSampler()
	if err != nil {
		logger.Warn("process stats unavailable", zap.Error(err))
		sampler = nil
	}
	return systems.NewDebugOverlay(camera, sampler, cfg.DebugDrawEntities())
}

func provideMetrics(cfg *config.Config, logger *zap.Logger) (*systems.FrameMetrics, func()) {
	metrics := systems.NewFrameMetrics()
	if cfg.Metrics.Addr == "" {
		return metrics, func() {}
	}

	server := metrics.StartHTTP(cfg.Metrics.Addr, logger.Named("metrics"))
	return metrics, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Warn("metrics shutdown", zap.Error(err))
		}
	}
}

// provideFace returns nil when the bundle has no usable UI font, which
// makes labels fall back to the debug font
func provideFace(logger *zap.Logger, assets *data.Manager) text.Face {
	font, err := assets.Font(uiFontName)
	if err != nil {
		logger.Debug("no ui font in bundle", zap.Error(err))
		return nil
	}
	source, err := font.Source()
	if err != nil {
		logger.Warn("ui font unreadable", zap.Error(err))
		return nil
	}
	return &text.GoTextFace{Source: source, Size: uiFontSize}
}

func provideGameScreen(opts screens.GameScreenOptions) (*screens.GameScreen, func(), error) {
	screen, err := screens.NewGameScreen(opts)
	if err != nil {
		return nil, nil, err
	}
	return screen, screen.Close, nil
}
