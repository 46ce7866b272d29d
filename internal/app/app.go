// Package app wires the window, renderer and input into the viewer's main loop.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/sunsphere/internal/config"
	"github.com/Faultbox/sunsphere/internal/engine/capture"
	"github.com/Faultbox/sunsphere/internal/engine/input"
	"github.com/Faultbox/sunsphere/internal/engine/renderer"
	"github.com/Faultbox/sunsphere/internal/engine/shader"
	"github.com/Faultbox/sunsphere/internal/engine/sphere"
	"github.com/Faultbox/sunsphere/internal/engine/texture"
	"github.com/Faultbox/sunsphere/internal/engine/window"
	"github.com/Faultbox/sunsphere/internal/logger"
	"github.com/Faultbox/sunsphere/internal/scene"
)

// App is the viewer instance.
type App struct {
	config   *config.Config
	running  bool
	window   window.Window
	renderer *renderer.Renderer
	input    *input.Input
	capturer *capture.Capturer
	clock    *spinClock
	fps      fpsCounter
}

// New creates the window, builds the GL resources and uploads the sphere.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("precision", cfg.Scene.Precision),
	)

	a := &App{
		config:   cfg,
		input:    input.New(),
		capturer: capture.New(cfg.Capture.Dir, cfg.Capture.Prefix),
		clock:    newSpinClock(),
	}

	// Create window (this also creates the OpenGL context)
	var err error
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Backend:    cfg.Window.Backend,
		GLMajor:    cfg.Window.GLMajor,
		GLMinor:    cfg.Window.GLMinor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	if err := renderer.InitGL(); err != nil {
		a.window.Close()
		return nil, err
	}

	program, err := shader.LoadProgram(cfg.Scene.VertexShader, cfg.Scene.FragmentShader)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to build shader program: %w", err)
	}

	tex := texture.Load(cfg.Scene.Texture,
		texture.Options{FlipY: cfg.Scene.FlipTextureY},
		texture.UploadOptions{Mipmaps: true, Anisotropic: cfg.Scene.Anisotropic},
	)

	mesh := sphere.New(cfg.Scene.Precision)
	width, height := a.window.FramebufferSize()

	a.renderer, err = renderer.New(renderer.Config{
		Width:         width,
		Height:        height,
		Indexed:       cfg.Scene.DrawMode != config.DrawArrays,
		ClearColor:    cfg.Scene.ClearColor,
		LimbDarkening: cfg.Scene.LimbDarkening,
	}, scene.FromConfig(cfg.Scene), mesh, program, tex)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	logger.Info("viewer initialized",
		zap.Int("vertices", mesh.NumVertices()),
		zap.Int("triangles", mesh.NumTriangles()),
	)
	return a, nil
}

// Run starts the main loop and returns when the window is closed or
// Escape is pressed.
func (a *App) Run() error {
	a.running = true
	last := a.window.Time()
	a.fps.reset(last)

	logger.Info("starting render loop")

	for a.running {
		now := a.window.Time()
		dt := now - last
		last = now

		a.window.PollEvents(a.input)
		c := readControls(a.input)
		a.apply(c)
		if !a.running {
			break
		}

		a.clock.advance(dt)
		if err := a.renderer.DrawFrame(a.clock.time()); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		// Read the back buffer before it is swapped away.
		if c.capture {
			a.captureFrame()
		}

		a.window.SwapBuffers()

		if fps, ok := a.fps.tick(now); ok {
			logger.Debug("fps",
				zap.Int("count", fps),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
			)
			a.window.SetTitle(a.title(fps))
		}
	}

	return nil
}

// apply reacts to one frame's controls.
func (a *App) apply(c controls) {
	if c.quit {
		a.running = false
		return
	}
	if c.resized {
		a.renderer.Resize(c.width, c.height)
	}
	if c.togglePause {
		a.clock.togglePause()
		logger.Info("spin", zap.Bool("paused", a.clock.paused))
	}
	if c.speedSteps != 0 {
		a.clock.adjust(c.speedSteps)
		logger.Info("spin speed", zap.Float64("scale", a.clock.scale))
	}
}

func (a *App) captureFrame() {
	frame, err := a.renderer.ReadPixels()
	if err != nil {
		logger.Warn("capture failed", zap.Error(err))
		return
	}
	path, err := a.capturer.SaveFrame(frame)
	if err != nil {
		logger.Warn("capture failed", zap.Error(err))
		return
	}
	logger.Info("frame captured", zap.String("path", path))
}

func (a *App) title(fps int) string {
	if a.clock.paused {
		return fmt.Sprintf("%s - %d fps (paused)", a.config.Window.Title, fps)
	}
	return fmt.Sprintf("%s - %d fps", a.config.Window.Title, fps)
}

// Close releases the renderer and then the window.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
