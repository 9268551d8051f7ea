package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/VAX325/ArcticLights/config"
	"github.com/VAX325/ArcticLights/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults to $"+config.EnvVar+")")
	debug := flag.Bool("debug", false, "enable debug mode")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address, e.g. :2112")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *debug {
		cfg.Debug.Enabled = true
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("game exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	windowWidth, windowHeight := cfg.GetWindowSize()
	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)
	ebiten.SetTPS(cfg.Window.TPS)

	game, cleanup, err := InitializeGame(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	return ebiten.RunGame(game)
}
