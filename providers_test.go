package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/VAX325/ArcticLights/config"
	"github.com/VAX325/ArcticLights/data"
	"github.com/VAX325/ArcticLights/systems"
)

func TestShippedAssetBundle(t *testing.T) {
	cfg := config.Default()
	logger := zaptest.NewLogger(t)

	assets, err := provideAssets(context.Background(), cfg, logger)
	require.NoError(t, err)

	player, err := assets.Texture("player")
	require.NoError(t, err)
	w, h := player.Size()
	assert.Equal(t, 32, w)
	assert.Equal(t, 32, h)

	bump, err := assets.Sound(systems.BumpSound)
	require.NoError(t, err)
	assert.Equal(t, "wav", bump.Format)

	music, err := assets.Sound(cfg.Audio.BGM)
	require.NoError(t, err)
	assert.Equal(t, "wav", music.Format)

	assert.Nil(t, provideFace(logger, assets), "no ui font is shipped")
}

func TestTextureLookupHonoursPlaceholderPolicy(t *testing.T) {
	cfg := config.Default()
	assets, err := provideAssets(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	lenient := textureLookup{assets: assets, bundle: cfg.GameName, allowPlaceholder: true}
	tex, err := lenient.Texture("nope")
	require.NoError(t, err)
	assert.Equal(t, data.PlaceholderTexture, tex.Name)

	strict := textureLookup{assets: assets, bundle: cfg.GameName}
	_, err = strict.Texture("nope")
	assert.ErrorIs(t, err, data.ErrAssetNotFound)
}

func TestMissingAssetDirFails(t *testing.T) {
	cfg := config.Default()
	cfg.Assets.Dir = t.TempDir()

	_, err := provideAssets(context.Background(), cfg, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestOverlayOnlyInDebug(t *testing.T) {
	cfg := config.Default()
	logger := zaptest.NewLogger(t)
	camera := provideCamera(cfg)

	assert.Nil(t, provideOverlay(cfg, logger, camera))

	cfg.Debug.Enabled = true
	assert.NotNil(t, provideOverlay(cfg, logger, camera))
}

func TestMetricsWithoutAddress(t *testing.T) {
	metrics, cleanup := provideMetrics(config.Default(), zaptest.NewLogger(t))
	require.NotNil(t, metrics)
	assert.NotPanics(t, cleanup)
}
