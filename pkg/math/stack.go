package math

import "errors"

// ErrStackUnderflow is returned by Pop on an empty stack.
var ErrStackUnderflow = errors.New("matrix stack underflow")

// MatrixStack is a last-in-first-out stack of transforms. Each entry is a
// coordinate frame; pushing with PushMul nests a frame inside the current
// top and popping restores the parent.
//
// A stack belongs to one render context and is not safe for concurrent use.
type MatrixStack struct {
	frames []Mat4
}

// NewMatrixStack creates an empty stack with room for a few nested frames.
func NewMatrixStack() *MatrixStack {
	return &MatrixStack{frames: make([]Mat4, 0, 8)}
}

// Push pushes m as a new frame, ignoring the current top.
func (s *MatrixStack) Push(m Mat4) {
	s.frames = append(s.frames, m)
}

// PushMul pushes Top() * m.
func (s *MatrixStack) PushMul(m Mat4) {
	s.frames = append(s.frames, s.Top().Mul(m))
}

// Dup pushes a copy of the current top.
func (s *MatrixStack) Dup() {
	s.frames = append(s.frames, s.Top())
}

// Top returns the current frame, or the identity when the stack is empty.
func (s *MatrixStack) Top() Mat4 {
	if len(s.frames) == 0 {
		return Identity()
	}
	return s.frames[len(s.frames)-1]
}

// Pop removes and returns the current frame.
func (s *MatrixStack) Pop() (Mat4, error) {
	if len(s.frames) == 0 {
		return Identity(), ErrStackUnderflow
	}
	m := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return m, nil
}

// Len returns the number of frames on the stack.
func (s *MatrixStack) Len() int {
	return len(s.frames)
}

// Reset empties the stack, keeping its storage.
func (s *MatrixStack) Reset() {
	s.frames = s.frames[:0]
}
