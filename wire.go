//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/VAX325/ArcticLights/config"
	"github.com/VAX325/ArcticLights/ecs"
	"github.com/VAX325/ArcticLights/screens"
	"github.com/VAX325/ArcticLights/systems"
)

var gameSet = wire.NewSet(
	provideRegistry,
	ecs.NewEventManager,
	provideInput,
	provideCamera,
	provideRender,
	provideUI,
	provideMessageLog,
	systems.NewContactTracker,
	provideAssets,
	provideSpawner,
	provideAudio,
	provideOverlay,
	provideMetrics,
	provideFace,
	wire.Struct(new(screens.GameScreenOptions), "*"),
	provideGameScreen,
	NewGame,
)

// InitializeGame builds the game and everything it owns
func InitializeGame(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Game, func(), error) {
	wire.Build(gameSet)
	return nil, nil, nil
}
