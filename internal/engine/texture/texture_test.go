package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// tgaHeader builds an 18-byte TGA header.
func tgaHeader(imageType byte, w, h int, bpp, descriptor byte) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	hdr[12] = byte(w)
	hdr[13] = byte(w >> 8)
	hdr[14] = byte(h)
	hdr[15] = byte(h >> 8)
	hdr[16] = bpp
	hdr[17] = descriptor
	return hdr
}

func TestDecodeTGA_RawBottomUp(t *testing.T) {
	// 2x2, 24-bit BGR, stored bottom row first.
	data := tgaHeader(tgaTrueColor, 2, 2, 24, 0)
	data = append(data,
		0, 0, 255, 0, 255, 0, // bottom row: red, green
		255, 0, 0, 255, 255, 255, // top row: blue, white
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, color.RGBA{0, 0, 255, 255}},
		{1, 0, color.RGBA{255, 255, 255, 255}},
		{0, 1, color.RGBA{255, 0, 0, 255}},
		{1, 1, color.RGBA{0, 255, 0, 255}},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDecodeTGA_TopDownAlpha(t *testing.T) {
	data := tgaHeader(tgaTrueColor, 1, 2, 32, 0x20)
	data = append(data,
		10, 20, 30, 40,
		50, 60, 70, 80,
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	if got, want := img.RGBAAt(0, 0), (color.RGBA{30, 20, 10, 40}); got != want {
		t.Errorf("top pixel = %v, want %v", got, want)
	}
	if got, want := img.RGBAAt(0, 1), (color.RGBA{70, 60, 50, 80}); got != want {
		t.Errorf("bottom pixel = %v, want %v", got, want)
	}
}

func TestDecodeTGA_RLE(t *testing.T) {
	// 4x1: a run of three red pixels followed by one raw blue pixel.
	data := tgaHeader(tgaTrueColorRLE, 4, 1, 24, 0)
	data = append(data,
		0x82, 0, 0, 255,
		0x00, 255, 0, 0,
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	red := color.RGBA{255, 0, 0, 255}
	for x := range 3 {
		if got := img.RGBAAt(x, 0); got != red {
			t.Errorf("pixel %d = %v, want red", x, got)
		}
	}
	if got, want := img.RGBAAt(3, 0), (color.RGBA{0, 0, 255, 255}); got != want {
		t.Errorf("pixel 3 = %v, want %v", got, want)
	}
}

func TestDecodeTGA_Grayscale(t *testing.T) {
	data := tgaHeader(tgaGrayscale, 2, 1, 8, 0)
	data = append(data, 0, 200)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	if got, want := img.RGBAAt(1, 0), (color.RGBA{200, 200, 200, 255}); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestDecodeTGA_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"colour mapped", func() []byte {
			h := tgaHeader(tgaTrueColor, 1, 1, 24, 0)
			h[1] = 1
			return h
		}()},
		{"unsupported type", tgaHeader(1, 1, 1, 8, 0)},
		{"bad colour depth", tgaHeader(tgaTrueColor, 1, 1, 16, 0)},
		{"bad gray depth", tgaHeader(tgaGrayscale, 1, 1, 24, 0)},
		{"empty", tgaHeader(tgaTrueColor, 0, 1, 24, 0)},
		{"truncated raw", append(tgaHeader(tgaTrueColor, 2, 1, 24, 0), 1, 2, 3)},
		{"truncated rle", tgaHeader(tgaTrueColorRLE, 1, 1, 24, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 10), uint8(y * 10), 0, 255})
		}
	}
	return img
}

func TestDecode_PNG(t *testing.T) {
	src := gradient(3, 2)

	img, err := Decode(encodePNG(t, src), "sun.png")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v, want %v", img.Bounds(), src.Bounds())
	}
	if !bytes.Equal(img.Pix, src.Pix) {
		t.Error("decoded pixels differ from source")
	}
}

func TestDecode_Garbage(t *testing.T) {
	if _, err := Decode([]byte("not an image"), "map.jpg"); err == nil {
		t.Error("expected error for garbage data")
	}
}

func TestDecode_TGAByExtension(t *testing.T) {
	data := tgaHeader(tgaGrayscale, 1, 1, 8, 0)
	data = append(data, 128)

	img, err := Decode(data, "SUN.TGA")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := img.RGBAAt(0, 0).R; got != 128 {
		t.Errorf("R = %d, want 128", got)
	}
}

func TestFlipVertical(t *testing.T) {
	img := gradient(2, 3)
	want := gradient(2, 3)

	FlipVertical(img)
	for y := range 3 {
		for x := range 2 {
			if got, w := img.RGBAAt(x, y), want.RGBAAt(x, 2-y); got != w {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, w)
			}
		}
	}

	FlipVertical(img)
	if !bytes.Equal(img.Pix, want.Pix) {
		t.Error("double flip should restore the image")
	}
}

func TestToRGBA(t *testing.T) {
	t.Run("packed RGBA is reused", func(t *testing.T) {
		img := gradient(2, 2)
		if ToRGBA(img) != img {
			t.Error("expected same image")
		}
	})

	t.Run("offset image is rebased", func(t *testing.T) {
		sub := gradient(4, 4).SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA)
		got := ToRGBA(sub)
		if got.Bounds() != image.Rect(0, 0, 2, 2) {
			t.Fatalf("bounds = %v", got.Bounds())
		}
		if c, want := got.RGBAAt(0, 0), sub.RGBAAt(1, 1); c != want {
			t.Errorf("origin = %v, want %v", c, want)
		}
	})

	t.Run("gray converts", func(t *testing.T) {
		g := image.NewGray(image.Rect(0, 0, 1, 1))
		g.SetGray(0, 0, color.Gray{Y: 77})
		if c := ToRGBA(g).RGBAAt(0, 0); c != (color.RGBA{77, 77, 77, 255}) {
			t.Errorf("got %v", c)
		}
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.png")
	src := gradient(2, 2)
	if err := os.WriteFile(path, encodePNG(t, src), 0o644); err != nil {
		t.Fatal(err)
	}

	plain, err := LoadFile(path, Options{})
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !bytes.Equal(plain.Pix, src.Pix) {
		t.Error("unflipped pixels differ")
	}

	flipped, err := LoadFile(path, Options{FlipY: true})
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got, want := flipped.RGBAAt(0, 0), src.RGBAAt(0, 1); got != want {
		t.Errorf("flipped (0,0) = %v, want %v", got, want)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.png"), Options{}); err == nil {
		t.Error("expected error for missing file")
	}
}
