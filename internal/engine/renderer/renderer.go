// Package renderer draws the textured sun with OpenGL.
package renderer

import (
	"errors"
	"fmt"
	"image"
	gomath "math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/sunsphere/internal/engine/shader"
	"github.com/Faultbox/sunsphere/internal/engine/sphere"
	"github.com/Faultbox/sunsphere/internal/logger"
	"github.com/Faultbox/sunsphere/internal/scene"
	"github.com/Faultbox/sunsphere/pkg/math"
)

// Vertex attribute locations, matching the layout qualifiers in the shaders.
const (
	attribPosition = 0
	attribTexCoord = 1
	attribNormal   = 2
)

// Config holds renderer configuration.
type Config struct {
	Width         int
	Height        int
	Indexed       bool // glDrawElements over shared vertices, else glDrawArrays
	ClearColor    [4]float32
	LimbDarkening float32
}

type uniforms struct {
	mv, proj, norm int32
	samp           int32
	limbDarkening  int32
}

// Renderer owns every piece of GL state needed to draw a frame: the
// program, the sphere buffers, the texture, the projection and the matrix
// stack.
type Renderer struct {
	config Config
	scene  scene.Scene

	projection math.Mat4
	stack      *math.MatrixStack

	program  uint32
	texture  uint32
	uniforms uniforms

	vao uint32
	vbo [3]uint32 // positions, texcoords, normals
	ebo uint32

	drawCount int32
}

// InitGL loads the OpenGL function pointers for the current context.
// IMPORTANT: Must be called AFTER the OpenGL context is created and before
// any shader or texture is built.
func InitGL() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)
	return nil
}

// New uploads mesh and prepares the pipeline. program and texture are
// taken over by the renderer and released by Close, also when New fails.
// InitGL must have been called.
func New(cfg Config, sc scene.Scene, mesh *sphere.Mesh, program, texture uint32) (*Renderer, error) {
	r := &Renderer{
		config:  cfg,
		scene:   sc,
		stack:   math.NewMatrixStack(),
		program: program,
		texture: texture,
	}

	var data sphere.VertexData
	if cfg.Indexed {
		data = mesh.Flatten()
	} else {
		data = mesh.Expand()
	}
	if err := r.upload(&data); err != nil {
		r.Close()
		return nil, fmt.Errorf("failed to upload sphere: %w", err)
	}

	r.uniforms = uniforms{
		mv:            shader.GetUniform(program, "mv_matrix"),
		proj:          shader.GetUniform(program, "proj_matrix"),
		norm:          shader.GetUniform(program, "norm_matrix"),
		samp:          shader.GetUniform(program, "samp"),
		limbDarkening: shader.GetUniform(program, "limb_darkening"),
	}
	if r.uniforms.mv < 0 || r.uniforms.proj < 0 {
		r.Close()
		return nil, errors.New("shader program lacks mv_matrix or proj_matrix")
	}

	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	r.Resize(cfg.Width, cfg.Height)

	if shader.CheckError("renderer setup") {
		r.Close()
		return nil, errors.New("OpenGL error during renderer setup")
	}

	logger.Info("renderer ready",
		zap.Int("precision", mesh.Precision()),
		zap.Int("vertices", data.Count()),
		zap.Int32("draw_count", r.drawCount),
		zap.Bool("indexed", cfg.Indexed),
	)
	return r, nil
}

// upload creates the VAO and its buffers. Objects created before a failure
// are left for Close to release.
func (r *Renderer) upload(data *sphere.VertexData) error {
	if err := data.Validate(); err != nil {
		return err
	}
	if data.DrawCount() == 0 {
		return errors.New("no vertices")
	}
	if data.DrawCount() > gomath.MaxInt32 {
		return fmt.Errorf("%d elements exceed a single draw call", data.DrawCount())
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(int32(len(r.vbo)), &r.vbo[0])

	attribs := []struct {
		loc  uint32
		size int32
		data []float32
	}{
		{attribPosition, sphere.PositionSize, data.Positions},
		{attribTexCoord, sphere.TexCoordSize, data.TexCoords},
		{attribNormal, sphere.NormalSize, data.Normals},
	}
	for i, a := range attribs {
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo[i])
		gl.BufferData(gl.ARRAY_BUFFER, len(a.data)*4, gl.Ptr(a.data), gl.STATIC_DRAW)
		gl.VertexAttribPointerWithOffset(a.loc, a.size, gl.FLOAT, false, 0, 0)
		gl.EnableVertexAttribArray(a.loc)
	}

	if data.Indexed() {
		gl.GenBuffers(1, &r.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.Indices)*4, gl.Ptr(data.Indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.drawCount = int32(data.DrawCount())
	if shader.CheckError("buffer upload") {
		return errors.New("OpenGL error during buffer upload")
	}
	return nil
}

// Close releases every GL object the renderer owns. Safe to call on a
// partially built renderer.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
	for i := range r.vbo {
		if r.vbo[i] != 0 {
			gl.DeleteBuffers(1, &r.vbo[i])
			r.vbo[i] = 0
		}
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
		r.texture = 0
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.projection = r.scene.Projection(width, height)
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// DrawFrame renders the sun as it is at time t seconds.
func (r *Renderer) DrawFrame(t float64) error {
	mv, err := r.scene.ModelView(r.stack, t)
	if err != nil {
		r.stack.Reset()
		return err
	}
	norm := mv.NormalMatrix()

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.uniforms.proj, 1, false, r.projection.Ptr())
	gl.UniformMatrix4fv(r.uniforms.mv, 1, false, mv.Ptr())
	if r.uniforms.norm >= 0 {
		gl.UniformMatrix3fv(r.uniforms.norm, 1, false, &norm[0])
	}
	if r.uniforms.limbDarkening >= 0 {
		gl.Uniform1f(r.uniforms.limbDarkening, r.config.LimbDarkening)
	}
	if r.uniforms.samp >= 0 {
		gl.Uniform1i(r.uniforms.samp, 0)
	}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)

	gl.BindVertexArray(r.vao)
	if r.ebo != 0 {
		gl.DrawElementsWithOffset(gl.TRIANGLES, r.drawCount, gl.UNSIGNED_INT, 0)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, r.drawCount)
	}
	gl.BindVertexArray(0)

	if shader.CheckError("draw frame") {
		return errors.New("OpenGL error while drawing")
	}
	return nil
}

// ReadPixels reads the back buffer as tightly packed RGBA rows, bottom row
// first.
func (r *Renderer) ReadPixels() (*image.RGBA, error) {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("cannot read %dx%d framebuffer", w, h)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	if shader.CheckError("read pixels") {
		return nil, errors.New("OpenGL error while reading pixels")
	}
	return img, nil
}
