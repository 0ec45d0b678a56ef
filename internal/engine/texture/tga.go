// Package texture provides sky texture decoding, sampling and procedural generation.
package texture

import (
	"fmt"
	"image"
)

// TGA image types handled by DecodeTGA.
const (
	TGATypeUncompressed = 2  // uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

// DecodeTGA decodes an uncompressed or RLE true-color TGA into straight alpha.
// 24-bit images are returned fully opaque.
func DecodeTGA(data []byte) (*image.NRGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("tga: header truncated (%d bytes)", len(data))
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	switch {
	case colorMapType != 0:
		return nil, fmt.Errorf("tga: color-mapped images not supported")
	case imageType != TGATypeUncompressed && imageType != TGATypeRLE:
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	case bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	case width == 0 || height == 0:
		return nil, fmt.Errorf("tga: empty image %dx%d", width, height)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("tga: id field truncated")
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	w := &tgaWriter{img: img, bytesPerPixel: bpp / 8, topToBottom: topToBottom}

	var err error
	if imageType == TGATypeUncompressed {
		err = w.readRaw(data[offset:])
	} else {
		err = w.readRLE(data[offset:])
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

// tgaWriter stores BGR(A) pixels in scan order, flipping bottom-up files.
type tgaWriter struct {
	img           *image.NRGBA
	bytesPerPixel int
	topToBottom   bool
	next          int
}

func (w *tgaWriter) total() int {
	b := w.img.Bounds()
	return b.Dx() * b.Dy()
}

func (w *tgaWriter) put(px []byte) {
	width := w.img.Bounds().Dx()
	x, y := w.next%width, w.next/width
	if !w.topToBottom {
		y = w.img.Bounds().Dy() - 1 - y
	}
	i := w.img.PixOffset(x, y)
	w.img.Pix[i+0] = px[2]
	w.img.Pix[i+1] = px[1]
	w.img.Pix[i+2] = px[0]
	if w.bytesPerPixel == 4 {
		w.img.Pix[i+3] = px[3]
	} else {
		w.img.Pix[i+3] = 0xff
	}
	w.next++
}

func (w *tgaWriter) readRaw(data []byte) error {
	need := w.total() * w.bytesPerPixel
	if len(data) < need {
		return fmt.Errorf("tga: pixel data truncated (%d of %d bytes)", len(data), need)
	}
	for i := 0; i < need; i += w.bytesPerPixel {
		w.put(data[i : i+w.bytesPerPixel])
	}
	return nil
}

func (w *tgaWriter) readRLE(data []byte) error {
	pos := 0
	for w.next < w.total() {
		if pos >= len(data) {
			return fmt.Errorf("tga: rle stream ended after %d of %d pixels", w.next, w.total())
		}
		header := data[pos]
		pos++
		count := int(header&0x7f) + 1

		if header&0x80 != 0 {
			if pos+w.bytesPerPixel > len(data) {
				return fmt.Errorf("tga: rle packet truncated")
			}
			px := data[pos : pos+w.bytesPerPixel]
			pos += w.bytesPerPixel
			for i := 0; i < count && w.next < w.total(); i++ {
				w.put(px)
			}
			continue
		}

		for i := 0; i < count && w.next < w.total(); i++ {
			if pos+w.bytesPerPixel > len(data) {
				return fmt.Errorf("tga: raw packet truncated")
			}
			w.put(data[pos : pos+w.bytesPerPixel])
			pos += w.bytesPerPixel
		}
	}
	return nil
}
