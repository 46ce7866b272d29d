// Package scene computes the camera and sun transforms for a frame.
package scene

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/sunsphere/internal/config"
	"github.com/Faultbox/sunsphere/pkg/math"
)

// Scene describes where the camera and the sun are and how the sun spins.
type Scene struct {
	Camera      math.Vec3
	SunPosition math.Vec3
	SpinAxis    math.Vec3
	SpinSpeed   float32 // radians per second
	FOV         float32 // vertical field of view, radians
	Near, Far   float32
}

// Default returns the scene of the classic demo: camera five units back on
// +Z looking at a sun at the origin spinning about -Y at one radian per second.
func Default() Scene {
	return Scene{
		Camera:    math.Vec3{Z: 5},
		SpinAxis:  math.Vec3{Y: -1},
		SpinSpeed: 1,
		FOV:       1.0472,
		Near:      0.1,
		Far:       1000,
	}
}

// FromConfig builds a scene from the scene section of the config.
func FromConfig(c config.SceneConfig) Scene {
	return Scene{
		Camera:      vec3(c.Camera),
		SunPosition: vec3(c.SunPosition),
		SpinAxis:    vec3(c.SpinAxis),
		SpinSpeed:   c.SpinSpeed,
		FOV:         float32(float64(c.FOVDegrees) * gomath.Pi / 180),
		Near:        c.Near,
		Far:         c.Far,
	}
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

// Projection returns the perspective matrix for a framebuffer size.
// A zero or negative height is treated as 1 so minimized windows do not
// produce NaNs.
func (s Scene) Projection(width, height int) math.Mat4 {
	if height <= 0 {
		height = 1
	}
	if width <= 0 {
		width = 1
	}
	aspect := float32(width) / float32(height)
	return math.Perspective(s.FOV, aspect, s.Near, s.Far)
}

// View returns the camera transform. The camera never rotates, so this is
// a translation by the negated camera position.
func (s Scene) View() math.Mat4 {
	return math.TranslateVec3(s.Camera.Negate())
}

// SpinAngle returns the sun's rotation in radians at time t seconds.
func (s Scene) SpinAngle(t float64) float32 {
	return float32(t * float64(s.SpinSpeed))
}

// spin returns the rotation by angle about axis. Principal axes, such as
// the default -Y, use the single-axis builders.
func spin(axis math.Vec3, angle float32) math.Mat4 {
	switch axis.Normalize() {
	case math.Vec3{X: 1}:
		return math.RotateX(angle)
	case math.Vec3{X: -1}:
		return math.RotateX(-angle)
	case math.Vec3{Y: 1}:
		return math.RotateY(angle)
	case math.Vec3{Y: -1}:
		return math.RotateY(-angle)
	case math.Vec3{Z: 1}:
		return math.RotateZ(angle)
	case math.Vec3{Z: -1}:
		return math.RotateZ(-angle)
	}
	return math.RotateAxis(axis, angle)
}

// ModelView composes the sun's model-view matrix at time t on stack:
// the view frame, the sun's position inside it, then the sun's spin.
// The stack is left as it was found.
func (s Scene) ModelView(stack *math.MatrixStack, t float64) (math.Mat4, error) {
	depth := stack.Len()

	stack.Push(s.View())
	stack.PushMul(math.TranslateVec3(s.SunPosition))
	stack.PushMul(spin(s.SpinAxis, s.SpinAngle(t)))

	mv := stack.Top()

	for range 3 {
		if _, err := stack.Pop(); err != nil {
			return mv, fmt.Errorf("popping sun frames: %w", err)
		}
	}
	if stack.Len() != depth {
		return mv, fmt.Errorf("matrix stack depth %d after frame, want %d", stack.Len(), depth)
	}

	return mv, nil
}
