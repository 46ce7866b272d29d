// Package shader provides OpenGL shader loading and compilation.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/sunsphere/internal/logger"
)

// LoadProgram reads the two shader stages (see Sources) and links them.
func LoadProgram(vertPath, fragPath string) (uint32, error) {
	vert, frag, err := Sources(vertPath, fragPath)
	if err != nil {
		return 0, err
	}
	program, err := CompileProgram(vert, frag)
	if err != nil {
		return 0, fmt.Errorf("building program from %q and %q: %w", describe(vertPath), describe(fragPath), err)
	}
	return program, nil
}

func describe(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Diagnostics are logged and returned; a failed program is never handed out.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)
	CheckError("link program")

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := programLog(program)
		logger.Error("program link failed", zap.Uint32("program", program), zap.String("log", log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", log)
	}

	logger.Debug("shader program linked", zap.Uint32("program", program))
	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)
	CheckError("compile " + name + " shader")

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		log := shaderLog(shader)
		logger.Error("shader compilation failed", zap.String("stage", name), zap.String("log", log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, log)
	}

	return shader, nil
}

func shaderLog(shader uint32) string {
	var logLen int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return ""
	}
	log := make([]byte, logLen)
	gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
	return trimLog(log)
}

func programLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return ""
	}
	log := make([]byte, logLen)
	gl.GetProgramInfoLog(program, logLen, nil, &log[0])
	return trimLog(log)
}

// CheckError drains the GL error queue, logging every pending code.
// It reports whether any error was found.
func CheckError(op string) bool {
	found := false
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		logger.Warn("OpenGL error",
			zap.String("op", op),
			zap.String("code", ErrorName(code)),
		)
		found = true
	}
	return found
}

// ErrorName returns the symbolic name of a glGetError code.
func ErrorName(code uint32) string {
	switch code {
	case gl.NO_ERROR:
		return "GL_NO_ERROR"
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	default:
		return fmt.Sprintf("0x%04X", code)
	}
}

// GetUniform returns the uniform location for the given name.
// Returns -1 if the uniform is not found or inactive.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
