// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/sunsphere/internal/engine/sphere"
	"github.com/Faultbox/sunsphere/internal/logger"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Window backends, shared with the window package.
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// Draw modes.
const (
	DrawIndexed = "indexed" // glDrawElements over the shared vertices
	DrawArrays  = "arrays"  // glDrawArrays over per-index expanded vertices
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Scene   SceneConfig   `yaml:"scene"`
	Capture CaptureConfig `yaml:"capture"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Backend    string `yaml:"backend"` // sdl or glfw
	GLMajor    int    `yaml:"gl_major"`
	GLMinor    int    `yaml:"gl_minor"`
}

// SceneConfig holds the sphere, its assets and the camera.
type SceneConfig struct {
	Precision      int        `yaml:"precision"`
	Texture        string     `yaml:"texture"`
	FlipTextureY   bool       `yaml:"flip_texture_y"`
	Anisotropic    bool       `yaml:"anisotropic"`
	VertexShader   string     `yaml:"vertex_shader"`   // empty uses the built-in shader
	FragmentShader string     `yaml:"fragment_shader"` // empty uses the built-in shader
	DrawMode       string     `yaml:"draw_mode"`
	Camera         [3]float32 `yaml:"camera"`
	SunPosition    [3]float32 `yaml:"sun_position"`
	SpinAxis       [3]float32 `yaml:"spin_axis"`
	SpinSpeed      float32    `yaml:"spin_speed"` // radians per second
	FOVDegrees     float32    `yaml:"fov_degrees"`
	Near           float32    `yaml:"near"`
	Far            float32    `yaml:"far"`
	ClearColor     [4]float32 `yaml:"clear_color"`
	LimbDarkening  float32    `yaml:"limb_darkening"` // 0 disables, 1 is full
}

// CaptureConfig holds frame capture settings.
type CaptureConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:   "Sun",
			Width:   1200,
			Height:  800,
			VSync:   true,
			Backend: BackendSDL,
			GLMajor: 4,
			GLMinor: 1,
		},
		Scene: SceneConfig{
			Precision:     48,
			Texture:       "map.jpg",
			FlipTextureY:  true,
			Anisotropic:   true,
			DrawMode:      DrawIndexed,
			Camera:        [3]float32{0, 0, 5},
			SpinAxis:      [3]float32{0, -1, 0},
			SpinSpeed:     1,
			FOVDegrees:    60,
			Near:          0.1,
			Far:           1000,
			ClearColor:    [4]float32{0, 0, 0, 1},
			LimbDarkening: 0.5,
		},
		Capture: CaptureConfig{
			Dir:    "screenshots",
			Prefix: "sun",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Window.Backend != BackendSDL && c.Window.Backend != BackendGLFW:
		return fmt.Errorf("%w: window backend %q", ErrInvalid, c.Window.Backend)
	case c.Window.GLMajor < 3:
		return fmt.Errorf("%w: OpenGL %d.%d is below 3.3 core", ErrInvalid, c.Window.GLMajor, c.Window.GLMinor)
	case c.Window.GLMajor == 3 && c.Window.GLMinor < 3:
		return fmt.Errorf("%w: OpenGL %d.%d is below 3.3 core", ErrInvalid, c.Window.GLMajor, c.Window.GLMinor)
	case c.Scene.Precision < sphere.MinPrecision || c.Scene.Precision > sphere.MaxPrecision:
		return fmt.Errorf("%w: precision %d outside [%d, %d]", ErrInvalid, c.Scene.Precision, sphere.MinPrecision, sphere.MaxPrecision)
	case c.Scene.DrawMode != DrawIndexed && c.Scene.DrawMode != DrawArrays:
		return fmt.Errorf("%w: draw mode %q", ErrInvalid, c.Scene.DrawMode)
	case c.Scene.FOVDegrees <= 0 || c.Scene.FOVDegrees >= 180:
		return fmt.Errorf("%w: field of view %v degrees", ErrInvalid, c.Scene.FOVDegrees)
	case c.Scene.Near <= 0 || c.Scene.Far <= c.Scene.Near:
		return fmt.Errorf("%w: clip planes near=%v far=%v", ErrInvalid, c.Scene.Near, c.Scene.Far)
	case c.Scene.LimbDarkening < 0 || c.Scene.LimbDarkening > 1:
		return fmt.Errorf("%w: limb darkening %v outside [0, 1]", ErrInvalid, c.Scene.LimbDarkening)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := logger.CheckFormat(c.Logging.Format); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
