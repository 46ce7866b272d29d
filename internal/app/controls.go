package app

import (
	"github.com/Faultbox/sunsphere/internal/engine/input"
)

// Spin speed limits, as multiples of the configured speed.
const (
	speedStep     = 1.25
	minSpeedScale = 1.0 / 64
	maxSpeedScale = 64
)

// controls is what one frame of input asks the viewer to do.
type controls struct {
	quit        bool
	togglePause bool
	capture     bool
	speedSteps  int // positive is faster
	resized     bool
	width       int
	height      int
}

func readControls(in *input.Input) controls {
	var c controls
	c.quit = in.QuitRequested() || in.IsKeyPressed(input.KeyEscape)
	c.togglePause = in.IsKeyPressed(input.KeySpace)
	c.capture = in.IsKeyPressed(input.KeyF12)
	c.speedSteps = in.KeyPresses(input.KeyUp) - in.KeyPresses(input.KeyDown)
	c.width, c.height, c.resized = in.Resized()
	return c
}

// spinClock accumulates animation time. Pausing freezes it and the speed
// scale stretches it, so the sun never jumps when either changes.
type spinClock struct {
	t      float64
	scale  float64
	paused bool
}

func newSpinClock() *spinClock {
	return &spinClock{scale: 1}
}

func (c *spinClock) advance(dt float64) {
	if c.paused || dt <= 0 {
		return
	}
	c.t += dt * c.scale
}

func (c *spinClock) time() float64 {
	return c.t
}

func (c *spinClock) togglePause() {
	c.paused = !c.paused
}

// adjust multiplies the scale by speedStep per step, clamped to
// [minSpeedScale, maxSpeedScale].
func (c *spinClock) adjust(steps int) {
	for ; steps > 0; steps-- {
		c.scale *= speedStep
	}
	for ; steps < 0; steps++ {
		c.scale /= speedStep
	}
	c.scale = min(max(c.scale, minSpeedScale), maxSpeedScale)
}

// fpsCounter counts frames and reports once per second of window time.
type fpsCounter struct {
	frames int
	since  float64
}

func (f *fpsCounter) reset(now float64) {
	f.frames = 0
	f.since = now
}

func (f *fpsCounter) tick(now float64) (int, bool) {
	f.frames++
	if now-f.since < 1 {
		return 0, false
	}
	fps := f.frames
	f.reset(now)
	return fps, true
}
