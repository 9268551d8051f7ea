package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/VAX325/ArcticLights/config"
	"github.com/VAX325/ArcticLights/screens"
)

// Game implements ebiten.Game interface.
type Game struct {
	screens *screens.ScreenStack
	logger  *zap.Logger
}

// NewGame creates a new game instance with the gameplay screen on top
func NewGame(cfg *config.Config, logger *zap.Logger, gameScreen *screens.GameScreen) *Game {
	stack := screens.NewScreenStack()
	stack.Push(gameScreen)

	logger.Info("game created",
		zap.String("name", cfg.GameName),
		zap.Int("tps", cfg.Window.TPS),
		zap.Bool("debug", cfg.Debug.Enabled),
	)

	return &Game{
		screens: stack,
		logger:  logger,
	}
}

// Update updates the game state.
func (g *Game) Update() error {
	if g.screens.Peek() == nil {
		return ebiten.Termination
	}
	return g.screens.Update()
}

// Draw draws the game screen.
func (g *Game) Draw(screen *ebiten.Image) {
	g.screens.Draw(screen)
}

// Layout implements ebiten.Game's Layout.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screens.Layout(outsideWidth, outsideHeight)
}
