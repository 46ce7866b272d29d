// Package texture decodes images and uploads them as OpenGL textures.
package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder
)

// Options controls how an image file is turned into pixels.
type Options struct {
	// FlipY stores the bottom row first, matching OpenGL's texture origin.
	FlipY bool
}

// Decode decodes image data. TGA is chosen by the name's extension since it
// has no magic number; everything else goes through the image registry.
func Decode(data []byte, name string) (*image.RGBA, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		return DecodeTGA(data)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return ToRGBA(img), nil
}

// LoadFile reads and decodes an image file.
func LoadFile(path string, opts Options) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture: %w", err)
	}

	img, err := Decode(data, path)
	if err != nil {
		return nil, err
	}
	if opts.FlipY {
		FlipVertical(img)
	}
	return img, nil
}

// ToRGBA converts any image to a tightly packed *image.RGBA with origin (0,0).
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == 4*b.Dx() {
		return rgba
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// FlipVertical reverses the row order of img in place.
func FlipVertical(img *image.RGBA) {
	b := img.Bounds()
	rowLen := b.Dx() * 4
	tmp := make([]byte, rowLen)

	for top, bottom := 0, b.Dy()-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := img.Pix[top*img.Stride : top*img.Stride+rowLen]
		u := img.Pix[bottom*img.Stride : bottom*img.Stride+rowLen]
		copy(tmp, t)
		copy(t, u)
		copy(u, tmp)
	}
}
