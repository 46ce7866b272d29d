// Package window creates the OS window and its OpenGL context.
package window

import (
	"fmt"
	"runtime"

	"github.com/Faultbox/sunsphere/internal/config"
	"github.com/Faultbox/sunsphere/internal/engine/input"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	Backend    string // config.BackendSDL or config.BackendGLFW
	GLMajor    int
	GLMinor    int
}

// Window is an OS window with a current OpenGL core-profile context.
type Window interface {
	// PollEvents resets in and fills it with the events since the last call.
	PollEvents(in *input.Input)
	SwapBuffers()
	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize() (width, height int)
	// Time returns seconds since the window was created.
	Time() float64
	SetTitle(title string)
	Close()
}

// New creates a window using the configured backend. An empty backend means SDL.
func New(cfg Config) (Window, error) {
	if cfg.GLMajor == 0 {
		cfg.GLMajor, cfg.GLMinor = 4, 1
	}

	switch cfg.Backend {
	case "", config.BackendSDL:
		w, err := newSDL(cfg)
		if err != nil {
			return nil, err
		}
		return w, nil
	case config.BackendGLFW:
		w, err := newGLFW(cfg)
		if err != nil {
			return nil, err
		}
		return w, nil
	default:
		return nil, fmt.Errorf("unknown window backend %q", cfg.Backend)
	}
}
