package image

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/gogpu/pixconv"
)

// ToStd converts slice 0 of m into a standard library image.
//
// Formats with more than 8 bits per channel, or floating formats, produce
// 16-bit images. Premultiplied images produce *image.RGBA or *image.RGBA64,
// straight images *image.NRGBA or *image.NRGBA64.
func (m *Image) ToStd() (image.Image, error) {
	info := m.format.Info()
	wide := info.IsFloat || info.BitsPerChannel > 8
	w, h := m.Width(), m.Height()
	rect := image.Rect(0, 0, w, h)

	// Convert to the matching RGBA anchor row by row.
	target := pixconv.FormatRGBA8888
	if wide {
		target = pixconv.FormatRGBAUnorm16
	}
	fn, err := pixconv.Transcoder(target, m.format)
	if err != nil {
		return nil, err
	}

	var pix []byte
	var stride int
	var out image.Image
	switch {
	case !wide && m.premultiplied:
		img := image.NewRGBA(rect)
		pix, stride, out = img.Pix, img.Stride, img
	case !wide:
		img := image.NewNRGBA(rect)
		pix, stride, out = img.Pix, img.Stride, img
	case m.premultiplied:
		img := image.NewRGBA64(rect)
		pix, stride, out = img.Pix, img.Stride, img
	default:
		img := image.NewNRGBA64(rect)
		pix, stride, out = img.Pix, img.Stride, img
	}

	for y := range h {
		row := pix[y*stride : y*stride+target.RowBytes(w)]
		fn(row, m.Row(y), w, false)
		if wide {
			// RGBAUnorm16 is little-endian; the standard 64-bit images are big-endian.
			for i := 0; i < len(row); i += 2 {
				row[i], row[i+1] = row[i+1], row[i]
			}
		}
	}
	return out, nil
}

// EncodePNG writes m as PNG.
func (m *Image) EncodePNG(w io.Writer) error {
	img, err := m.ToStd()
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("image: encode png: %w", err)
	}
	return nil
}
