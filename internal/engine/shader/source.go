package shader

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

// DefaultVertexSource is the built-in sun vertex shader.
//
//go:embed shaders/sun.vert
var DefaultVertexSource string

// DefaultFragmentSource is the built-in sun fragment shader.
//
//go:embed shaders/sun.frag
var DefaultFragmentSource string

// ReadSource reads a GLSL source file. CRLF line endings are normalized and
// the result always ends with a newline.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading shader %s: %w", path, err)
	}
	src := strings.ReplaceAll(string(data), "\r\n", "\n")
	if strings.TrimSpace(src) == "" {
		return "", fmt.Errorf("shader %s is empty", path)
	}
	if !strings.HasSuffix(src, "\n") {
		src += "\n"
	}
	return src, nil
}

// Sources resolves the vertex and fragment sources. An empty path selects
// the built-in source for that stage.
func Sources(vertPath, fragPath string) (vert, frag string, err error) {
	vert, frag = DefaultVertexSource, DefaultFragmentSource
	if vertPath != "" {
		if vert, err = ReadSource(vertPath); err != nil {
			return "", "", err
		}
	}
	if fragPath != "" {
		if frag, err = ReadSource(fragPath); err != nil {
			return "", "", err
		}
	}
	return vert, frag, nil
}

// trimLog strips the NUL terminator and trailing whitespace from a GL info log.
func trimLog(b []byte) string {
	return strings.TrimRight(string(b), "\x00 \r\n\t")
}
