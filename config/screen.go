package config

// ReferenceFPS is the frame rate that one unit of update delta represents
const ReferenceFPS = 60

// Screen layout configuration
const (
	// Size of one world grid cell in pixels
	CellSize = 32

	// Default window dimensions in pixels
	WindowWidth  = 1280
	WindowHeight = 720

	// Virtual device the UI is laid out against before scaling
	UIVirtualWidth  = 1920
	UIVirtualHeight = 1080

	// Default world dimensions in cells
	WorldWidthCells  = 64
	WorldHeightCells = 48
)

// GetScreenDimensions returns the default logical screen size in pixels
func GetScreenDimensions() (width, height int) {
	return WindowWidth, WindowHeight
}

// GetWindowSize returns the window size from the config, falling back to defaults
func (c *Config) GetWindowSize() (width, height int) {
	width, height = c.Window.Width, c.Window.Height
	if width <= 0 || height <= 0 {
		return GetScreenDimensions()
	}
	return width, height
}

// FrameDelta returns the update delta for one tick at the configured TPS
func (c *Config) FrameDelta() float64 {
	if c.Window.TPS <= 0 {
		return 1
	}
	return ReferenceFPS / float64(c.Window.TPS)
}
