package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	tgaTrueColor    = 2
	tgaGrayscale    = 3
	tgaTrueColorRLE = 10
	tgaGrayscaleRLE = 11
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("tga: pixel data truncated")

// DecodeTGA decodes an uncompressed or RLE true-colour (24/32 bit) or
// grayscale (8 bit) TGA image. Colour-mapped images are not supported.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, errors.New("tga: header too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, errors.New("tga: colour-mapped images not supported")
	}

	gray := imageType == tgaGrayscale || imageType == tgaGrayscaleRLE
	rle := imageType == tgaTrueColorRLE || imageType == tgaGrayscaleRLE
	switch {
	case imageType != tgaTrueColor && imageType != tgaTrueColorRLE && !gray:
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	case gray && bpp != 8:
		return nil, fmt.Errorf("tga: unsupported grayscale depth %d", bpp)
	case !gray && bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("tga: unsupported colour depth %d", bpp)
	case width == 0 || height == 0:
		return nil, fmt.Errorf("tga: empty image %dx%d", width, height)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	d := tgaDecoder{
		src:         data[offset:],
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		bytesPP:     bpp / 8,
		topToBottom: descriptor&0x20 != 0,
	}

	var err error
	if rle {
		err = d.decodeRLE()
	} else {
		err = d.decodeRaw()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	src         []byte
	pos         int
	img         *image.RGBA
	bytesPP     int
	topToBottom bool
	pixel       int
}

// readColor reads one BGR(A) or grayscale pixel from the source.
func (d *tgaDecoder) readColor() (color.RGBA, error) {
	if d.pos+d.bytesPP > len(d.src) {
		return color.RGBA{}, errTGATruncated
	}
	p := d.src[d.pos : d.pos+d.bytesPP]
	d.pos += d.bytesPP

	switch d.bytesPP {
	case 1:
		return color.RGBA{R: p[0], G: p[0], B: p[0], A: 255}, nil
	case 3:
		return color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}, nil
	default:
		return color.RGBA{R: p[2], G: p[1], B: p[0], A: p[3]}, nil
	}
}

// put stores c at the next pixel. Rows are stored bottom-up unless the
// descriptor says otherwise.
func (d *tgaDecoder) put(c color.RGBA) {
	b := d.img.Bounds()
	x := d.pixel % b.Dx()
	y := d.pixel / b.Dx()
	if !d.topToBottom {
		y = b.Dy() - 1 - y
	}
	d.img.SetRGBA(x, y, c)
	d.pixel++
}

func (d *tgaDecoder) total() int {
	return d.img.Bounds().Dx() * d.img.Bounds().Dy()
}

func (d *tgaDecoder) decodeRaw() error {
	for d.pixel < d.total() {
		c, err := d.readColor()
		if err != nil {
			return err
		}
		d.put(c)
	}
	return nil
}

func (d *tgaDecoder) decodeRLE() error {
	for d.pixel < d.total() {
		if d.pos >= len(d.src) {
			return errTGATruncated
		}
		header := d.src[d.pos]
		d.pos++
		count := int(header&0x7F) + 1

		if header&0x80 != 0 {
			c, err := d.readColor()
			if err != nil {
				return err
			}
			for i := 0; i < count && d.pixel < d.total(); i++ {
				d.put(c)
			}
			continue
		}

		for i := 0; i < count && d.pixel < d.total(); i++ {
			c, err := d.readColor()
			if err != nil {
				return err
			}
			d.put(c)
		}
	}
	return nil
}
