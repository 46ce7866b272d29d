package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/Faultbox/sunsphere/internal/config"
	"github.com/Faultbox/sunsphere/internal/engine/input"
	"github.com/Faultbox/sunsphere/internal/logger"
)

var glfwKeys = map[glfw.Key]input.Key{
	glfw.KeyEscape: input.KeyEscape,
	glfw.KeySpace:  input.KeySpace,
	glfw.KeyF12:    input.KeyF12,
	glfw.KeyUp:     input.KeyUp,
	glfw.KeyDown:   input.KeyDown,
}

// glfwWindow holds the GLFW window. Callbacks queue events in pending
// until the next PollEvents hands them over.
type glfwWindow struct {
	window  *glfw.Window
	pending []input.Event
}

func newGLFW(cfg Config) (*glfwWindow, error) {
	logger.Info("initializing GLFW")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, cfg.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)

	var monitor *glfw.Monitor
	width, height := cfg.Width, cfg.Height
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		if mode := monitor.GetVideoMode(); mode != nil {
			width, height = mode.Width, mode.Height
		}
	}

	win, err := glfw.CreateWindow(width, height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window (OpenGL %d.%d core): %w", cfg.GLMajor, cfg.GLMinor, err)
	}
	win.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &glfwWindow{
		window:  win,
		pending: make([]input.Event, 0, 16),
	}

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		k, ok := glfwKeys[key]
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			w.pending = append(w.pending, input.Event{Type: input.EventKeyDown, Key: k})
		case glfw.Repeat:
			w.pending = append(w.pending, input.Event{Type: input.EventKeyDown, Key: k, Repeat: true})
		case glfw.Release:
			w.pending = append(w.pending, input.Event{Type: input.EventKeyUp, Key: k})
		}
	})

	// Framebuffer size, not window size, so high-DPI displays get pixel dimensions.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.pending = append(w.pending, input.Event{
			Type:   input.EventWindowResize,
			Width:  width,
			Height: height,
		})
	})

	win.SetCloseCallback(func(_ *glfw.Window) {
		w.pending = append(w.pending, input.Event{Type: input.EventQuit})
	})

	glfw.SetTime(0)

	logger.Info("window created",
		zap.String("backend", config.BackendGLFW),
		zap.String("title", cfg.Title),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

func (w *glfwWindow) PollEvents(in *input.Input) {
	in.Begin()
	glfw.PollEvents()
	for _, e := range w.pending {
		in.Push(e)
	}
	w.pending = w.pending[:0]
}

func (w *glfwWindow) SwapBuffers() {
	w.window.SwapBuffers()
}

func (w *glfwWindow) FramebufferSize() (int, int) {
	return w.window.GetFramebufferSize()
}

func (w *glfwWindow) Time() float64 {
	return glfw.GetTime()
}

func (w *glfwWindow) SetTitle(title string) {
	w.window.SetTitle(title)
}

func (w *glfwWindow) Close() {
	logger.Info("closing window")
	w.window.Destroy()
	glfw.Terminate()
}
