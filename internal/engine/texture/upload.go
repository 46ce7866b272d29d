package texture

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/sunsphere/internal/logger"
)

// GL_EXT_texture_filter_anisotropic enums; not part of the core profile bindings.
const (
	extAnisotropic          = "GL_EXT_texture_filter_anisotropic"
	textureMaxAnisotropy    = 0x84FE
	maxTextureMaxAnisotropy = 0x84FF
)

// UploadOptions controls GPU-side sampling.
type UploadOptions struct {
	Mipmaps     bool
	Anisotropic bool
}

// Upload creates a 2D texture from img and returns its id.
func Upload(img *image.RGBA, opts UploadOptions) (uint32, error) {
	b := img.Bounds()
	if b.Empty() {
		return 0, fmt.Errorf("texture upload: empty image")
	}
	img = ToRGBA(img)

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	if opts.Mipmaps {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	if opts.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	if opts.Anisotropic && HasExtension(extAnisotropic) {
		var maxAniso float32
		gl.GetFloatv(maxTextureMaxAnisotropy, &maxAniso)
		gl.TexParameterf(gl.TEXTURE_2D, textureMaxAnisotropy, maxAniso)
		logger.Debug("anisotropic filtering enabled", zap.Float32("level", maxAniso))
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &id)
		return 0, fmt.Errorf("texture upload: GL error 0x%04X", code)
	}
	return id, nil
}

// Fallback uploads a 1x1 opaque white texture.
func Fallback() uint32 {
	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	copy(white.Pix, []byte{255, 255, 255, 255})
	id, err := Upload(white, UploadOptions{})
	if err != nil {
		logger.Error("fallback texture upload failed", zap.Error(err))
		return 0
	}
	return id
}

// Load decodes path and uploads it. A texture that cannot be decoded or
// uploaded is logged and replaced by the white fallback so rendering can
// continue.
func Load(path string, opts Options, upload UploadOptions) uint32 {
	img, err := LoadFile(path, opts)
	if err != nil {
		logger.Warn("could not load texture, using fallback", zap.String("path", path), zap.Error(err))
		return Fallback()
	}

	id, err := Upload(img, upload)
	if err != nil {
		logger.Warn("could not upload texture, using fallback", zap.String("path", path), zap.Error(err))
		return Fallback()
	}

	logger.Info("texture loaded",
		zap.String("path", path),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
		zap.Uint32("id", id),
	)
	return id
}

// Delete releases a texture id. Zero is ignored.
func Delete(id uint32) {
	if id != 0 {
		gl.DeleteTextures(1, &id)
	}
}

// HasExtension reports whether the current context advertises ext.
func HasExtension(ext string) bool {
	var n int32
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &n)
	for i := uint32(0); i < uint32(n); i++ {
		if strings.EqualFold(gl.GoStr(gl.GetStringi(gl.EXTENSIONS, i)), ext) {
			return true
		}
	}
	return false
}
