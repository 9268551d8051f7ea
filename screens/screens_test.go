package screens

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/VAX325/ArcticLights/config"
	"github.com/VAX325/ArcticLights/ecs"
	"github.com/VAX325/ArcticLights/spawners"
	"github.com/VAX325/ArcticLights/systems"
)

type stubScreen struct {
	BaseScreen
	updates int
	err     error
}

func (s *stubScreen) Update() error {
	s.updates++
	return s.err
}

func TestScreenStackUpdatesTopOnly(t *testing.T) {
	stack := NewScreenStack()
	assert.NoError(t, stack.Update())

	bottom, top := &stubScreen{}, &stubScreen{}
	stack.Push(bottom)
	stack.Push(top)

	require.NoError(t, stack.Update())
	assert.Equal(t, 0, bottom.updates)
	assert.Equal(t, 1, top.updates)
	assert.Same(t, top, stack.Peek())
}

func TestScreenStackPopsClosingScreen(t *testing.T) {
	stack := NewScreenStack()
	stack.Push(&stubScreen{})
	stack.Push(&stubScreen{err: ErrCloseScreen})

	require.NoError(t, stack.Update())
	assert.Equal(t, 1, stack.Len())

	boom := errors.New("boom")
	stack.Push(&stubScreen{err: boom})
	assert.ErrorIs(t, stack.Update(), boom)
	assert.Equal(t, 2, stack.Len())
}

func TestScreenStackLayout(t *testing.T) {
	stack := NewScreenStack()
	w, h := stack.Layout(640, 480)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)

	base := &stubScreen{}
	stack.Push(base)
	stack.Layout(800, 600)
	gotW, gotH := base.Size()
	assert.Equal(t, 800, gotW)
	assert.Equal(t, 600, gotH)
	assert.False(t, base.Resized(800, 600))
	assert.True(t, base.Resized(800, 601))
}

func TestModalOrigin(t *testing.T) {
	modal := NewModalScreen("Help", "text", 200, 100)
	x, y := modal.Origin(800, 600)
	assert.Equal(t, 300, x)
	assert.Equal(t, 250, y)
}

func TestDebugScreenScrolling(t *testing.T) {
	log := systems.NewMessageLog(0)
	for i := 0; i < 30; i++ {
		log.Add(fmt.Sprintf("message %d", i))
	}

	s := NewDebugScreen(log)
	maxLines := s.MaxLines()
	require.Equal(t, 21, maxLines)

	visible := s.Visible()
	require.Len(t, visible, maxLines)
	assert.Equal(t, "message 0", visible[0].Text)

	s.ScrollUp()
	assert.Equal(t, "message 0", s.Visible()[0].Text)

	for i := 0; i < 100; i++ {
		s.ScrollDown()
	}
	visible = s.Visible()
	assert.Equal(t, "message 9", visible[0].Text, "last page stays full")
	assert.Equal(t, "message 29", visible[len(visible)-1].Text)
}

func TestDebugScreenShortLog(t *testing.T) {
	log := systems.NewMessageLog(0)
	s := NewDebugScreen(log)
	assert.Empty(t, s.Visible())

	log.Add("only")
	s.ScrollDown()
	assert.Len(t, s.Visible(), 1)
}

type scriptedKeys struct {
	held     map[ebiten.Key]bool
	previous map[ebiten.Key]bool
}

func (k *scriptedKeys) frame(held ...ebiten.Key) {
	k.previous = k.held
	k.held = map[ebiten.Key]bool{}
	for _, key := range held {
		k.held[key] = true
	}
}

func (k *scriptedKeys) IsPressed(key ebiten.Key) bool    { return k.held[key] }
func (k *scriptedKeys) JustPressed(key ebiten.Key) bool  { return k.held[key] && !k.previous[key] }
func (k *scriptedKeys) JustReleased(key ebiten.Key) bool { return !k.held[key] && k.previous[key] }

func newTestGameScreen(t *testing.T, cfg *config.Config, keys *scriptedKeys) (*GameScreen, *systems.MessageLog, *systems.FrameMetrics) {
	t.Helper()
	logger := zaptest.NewLogger(t)

	events := ecs.NewEventManager()
	registry := ecs.NewRegistry(logger)
	camera := systems.NewCameraSystem(cfg.Camera.TransitionSpeed, cfg.Camera.Zoom)
	messages := systems.NewMessageLog(0)
	metrics := systems.NewFrameMetrics()

	screen, err := NewGameScreen(GameScreenOptions{
		Config:   cfg,
		Logger:   logger,
		Registry: registry,
		Events:   events,
		Input:    systems.NewInputManager(logger, keys),
		Camera:   camera,
		Render:   systems.NewRenderSystem(camera, cfg.World.CellSize),
		UI:       systems.NewUIManager(cfg.UI.VirtualWidth, cfg.UI.VirtualHeight),
		Messages: messages,
		Contacts: systems.NewContactTracker(events),
		Spawner:  spawners.NewEntitySpawner(registry, nil, cfg, logger),
		Overlay:  systems.NewDebugOverlay(camera, nil, true),
		Metrics:  metrics,
	})
	require.NoError(t, err)
	t.Cleanup(screen.Close)
	return screen, messages, metrics
}

func debugConfig() *config.Config {
	cfg := config.Default()
	cfg.Debug.Enabled = true
	cfg.Debug.LoadDebugWorld = true
	return cfg
}

func countContaining(messages []systems.ColoredMessage, substr string) int {
	n := 0
	for _, m := range messages {
		if strings.Contains(m.Text, substr) {
			n++
		}
	}
	return n
}

func TestGameScreenDebugWorld(t *testing.T) {
	keys := &scriptedKeys{}
	keys.frame()
	screen, messages, _ := newTestGameScreen(t, debugConfig(), keys)

	assert.Equal(t, []string{"localPlayer", "testBuilding", "testBuilding1"}, screen.Registry().Names())
	assert.Equal(t, ecs.V(320, 320), screen.Player().Position())
	assert.Equal(t, 1, countContaining(messages.Messages, "registered as 'testBuilding1'"))
}

func TestGameScreenPlayerStopsAtBuilding(t *testing.T) {
	keys := &scriptedKeys{}
	keys.frame()
	screen, messages, metrics := newTestGameScreen(t, debugConfig(), keys)

	for i := 0; i < 40; i++ {
		keys.frame(ebiten.KeyS)
		screen.Step(1)
	}

	// The building's top edge is at y=480 and the player is one cell tall
	assert.Equal(t, ecs.V(320, 448), screen.Player().Position())
	assert.Equal(t, 1, countContaining(messages.Messages, "localPlayer touched testBuilding"),
		"contact is logged once while the player stays pressed against the wall")
	assert.Equal(t, 40.0, testutil.ToFloat64(metrics.Frames()))

	keys.frame()
	screen.Step(1)
	screen.Step(1)
	assert.Equal(t, ecs.V(320, 448), screen.Player().Position())
}

func TestGameScreenRejectsUnknownResolution(t *testing.T) {
	cfg := debugConfig()
	cfg.Collision.Resolution = "bouncy"

	registry := ecs.NewRegistry(nil)
	camera := systems.NewCameraSystem(0, 0)
	events := ecs.NewEventManager()
	_, err := NewGameScreen(GameScreenOptions{
		Config:   cfg,
		Registry: registry,
		Events:   events,
		Input:    systems.NewInputManager(nil, &scriptedKeys{}),
		Camera:   camera,
		Render:   systems.NewRenderSystem(camera, cfg.World.CellSize),
		UI:       systems.NewUIManager(cfg.UI.VirtualWidth, cfg.UI.VirtualHeight),
		Messages: systems.NewMessageLog(0),
		Contacts: systems.NewContactTracker(events),
		Spawner:  spawners.NewEntitySpawner(registry, nil, cfg, nil),
	})
	assert.ErrorContains(t, err, "bouncy")
}
