package systems

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/VAX325/ArcticLights/ecs"
)

// FPSCounter measures frames per second, refreshing its value once a second
type FPSCounter struct {
	now    func() time.Time
	start  time.Time
	frames int
	fps    float64
}

// NewFPSCounter creates a counter reading time from now; nil uses time.Now
func NewFPSCounter(now func() time.Time) *FPSCounter {
	if now == nil {
		now = time.Now
	}
	return &FPSCounter{now: now, start: now()}
}

// Tick counts one frame
func (c *FPSCounter) Tick() {
	c.frames++
	elapsed := c.now().Sub(c.start)
	if elapsed >= time.Second {
		c.fps = float64(c.frames) / elapsed.Seconds()
		c.frames = 0
		c.start = c.now()
	}
}

// FPS returns the last measured value
func (c *FPSCounter) FPS() float64 {
	return c.fps
}

// ProcessStats is a snapshot of this process's resource usage
type ProcessStats struct {
	CPUPercent float64
	RSS        uint64
}

// String formats the stats for the overlay
func (s ProcessStats) String() string {
	return fmt.Sprintf("CPU: %.1f%%  RSS: %.1f MiB", s.CPUPercent, float64(s.RSS)/1024/1024)
}

// ProcessSampler reads CPU and memory usage of the running process
type ProcessSampler struct {
	proc *process.Process
}

// NewProcessSampler creates a sampler for the current process
func NewProcessSampler() (*ProcessSampler, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("open process: %w", err)
	}
	return &ProcessSampler{proc: proc}, nil
}

// Sample returns CPU usage since the previous call and the resident set size
func (s *ProcessSampler) Sample() (ProcessStats, error) {
	cpu, err := s.proc.Percent(0)
	if err != nil {
		return ProcessStats{}, fmt.Errorf("cpu percent: %w", err)
	}
	mem, err := s.proc.MemoryInfo()
	if err != nil {
		return ProcessStats{}, fmt.Errorf("memory info: %w", err)
	}
	return ProcessStats{CPUPercent: cpu, RSS: mem.RSS}, nil
}

// DebugOverlay draws entity boxes and runtime stats. It implements
// ecs.DebugSink and is only attached to the registry in debug mode.
type DebugOverlay struct {
	camera  *CameraSystem
	fps     *FPSCounter
	sampler *ProcessSampler

	entities    []ecs.EntityInfo
	stats       ecs.CollisionStats
	process     ProcessStats
	nextSample  time.Time
	drawBoxes   bool
	BoxColor    color.RGBA
	BorderColor color.RGBA
}

// NewDebugOverlay creates an overlay drawing through camera. A nil sampler
// disables process stats.
func NewDebugOverlay(camera *CameraSystem, sampler *ProcessSampler, drawBoxes bool) *DebugOverlay {
	return &DebugOverlay{
		camera:      camera,
		fps:         NewFPSCounter(nil),
		sampler:     sampler,
		drawBoxes:   drawBoxes,
		BoxColor:    color.RGBA{255, 0, 0, 80},
		BorderColor: color.RGBA{255, 0, 0, 255},
	}
}

// BeginFrame implements ecs.DebugSink
func (o *DebugOverlay) BeginFrame() {
	o.entities = o.entities[:0]
}

// Record implements ecs.DebugSink
func (o *DebugOverlay) Record(info ecs.EntityInfo) {
	o.entities = append(o.entities, info)
}

// Entities returns the telemetry recorded this frame
func (o *DebugOverlay) Entities() []ecs.EntityInfo {
	return o.entities
}

// Update implements ecs.System
func (o *DebugOverlay) Update(registry *ecs.Registry, dt float64) {
	o.fps.Tick()
	if registry != nil {
		o.stats = registry.LastStats()
	}

	if o.sampler == nil {
		return
	}
	now := time.Now()
	if now.Before(o.nextSample) {
		return
	}
	o.nextSample = now.Add(time.Second)
	if stats, err := o.sampler.Sample(); err == nil {
		o.process = stats
	}
}

// Lines returns the text block shown in the corner of the screen
func (o *DebugOverlay) Lines() []string {
	lines := []string{
		fmt.Sprintf("FPS: %.1f  TPS: %.1f", o.fps.FPS(), ebiten.ActualTPS()),
		fmt.Sprintf("Entities: %d  Candidates: %d  Filtered: %d", o.stats.Entities, o.stats.Candidates, o.stats.Filtered),
		fmt.Sprintf("Overlaps: %d  Resolutions: %d", o.stats.Overlaps, o.stats.Resolutions),
	}
	if o.sampler != nil {
		lines = append(lines, o.process.String())
	}
	return lines
}

// Draw renders the entity boxes and the stats block
func (o *DebugOverlay) Draw(screen *ebiten.Image) {
	if o.drawBoxes {
		for _, info := range o.entities {
			o.drawEntity(screen, info)
		}
	}

	for i, line := range o.Lines() {
		ebitenutil.DebugPrintAt(screen, line, 4, 4+i*16)
	}
}

func (o *DebugOverlay) drawEntity(screen *ebiten.Image, info ecs.EntityInfo) {
	if !o.camera.IsVisible(info.Bounds) {
		return
	}

	topLeft := o.camera.WorldToScreen(info.Bounds.Pos)
	w := float32(info.Bounds.Size.X * o.camera.Zoom)
	h := float32(info.Bounds.Size.Y * o.camera.Zoom)
	x, y := float32(topLeft.X), float32(topLeft.Y)

	vector.DrawFilledRect(screen, x, y, w, h, o.BoxColor, false)
	vector.StrokeRect(screen, x, y, w, h, 1, o.BorderColor, false)

	ebitenutil.DebugPrintAt(screen, "Entity: "+info.Name, int(x), int(y)-32)
	ebitenutil.DebugPrintAt(screen, "Class: "+info.Kind, int(x), int(y)-16)
}
