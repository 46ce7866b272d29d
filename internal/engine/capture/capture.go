// Package capture saves rendered frames as PNG files.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

const timestampLayout = "2006-01-02_15-04-05.000"

// Capturer writes frames to dir as <prefix>_<timestamp>.png.
type Capturer struct {
	dir    string
	prefix string
	now    func() time.Time
}

// New creates a capturer. An empty dir writes to the working directory.
func New(dir, prefix string) *Capturer {
	return &Capturer{
		dir:    dir,
		prefix: prefix,
		now:    time.Now,
	}
}

// Filename returns the path the next capture would be written to.
func (c *Capturer) Filename() string {
	name := fmt.Sprintf("%s_%s.png", c.prefix, c.now().Format(timestampLayout))
	if c.dir != "" {
		name = filepath.Join(c.dir, name)
	}
	return name
}

// SavePixels writes raw RGBA pixels read back from OpenGL. Rows are
// expected bottom row first and are flipped so the PNG is upright.
func (c *Capturer) SavePixels(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := range height {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}

	return c.SaveImage(img)
}

// SaveFrame writes a frame returned by the renderer's ReadPixels.
func (c *Capturer) SaveFrame(frame *image.RGBA) (string, error) {
	b := frame.Bounds()
	if frame.Stride != b.Dx()*4 {
		return "", fmt.Errorf("frame stride %d is not tightly packed", frame.Stride)
	}
	return c.SavePixels(frame.Pix, b.Dx(), b.Dy())
}

// SaveImage writes img unchanged.
func (c *Capturer) SaveImage(img image.Image) (string, error) {
	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := c.Filename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", filename, err)
	}

	return filename, nil
}
