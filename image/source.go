package image

import (
	"encoding/binary"
	"errors"
	"image"
	"image/color"
)

// ErrRowOutOfRange is returned by a RowSource asked for a row it does not have.
var ErrRowOutOfRange = errors.New("image: row out of range")

// stdSource adapts a decoded image.Image to RowSource. Rows are straight
// (non-premultiplied) alpha, 8 bits per channel or 16 for 16-bit models.
type stdSource struct {
	img   image.Image
	rect  image.Rectangle
	depth int
}

// FromStdImage returns a RowSource over img. Images whose color model is
// 16 bits per channel report depth 16; everything else reports depth 8.
func FromStdImage(img image.Image) RowSource {
	depth := 8
	switch img.ColorModel() {
	case color.RGBA64Model, color.NRGBA64Model, color.Gray16Model:
		depth = 16
	}
	return &stdSource{img: img, rect: img.Bounds(), depth: depth}
}

func (s *stdSource) Width() int  { return s.rect.Dx() }
func (s *stdSource) Height() int { return s.rect.Dy() }
func (s *stdSource) Depth() int  { return s.depth }

func (s *stdSource) ReadRow(y int, row []byte) error {
	if y < 0 || y >= s.rect.Dy() {
		return ErrRowOutOfRange
	}
	py := s.rect.Min.Y + y
	w := s.rect.Dx()

	if s.depth == 8 {
		if src, ok := s.img.(*image.NRGBA); ok {
			off := src.PixOffset(s.rect.Min.X, py)
			copy(row[:w*4], src.Pix[off:off+w*4])
			return nil
		}
		for x := range w {
			c := color.NRGBAModel.Convert(s.img.At(s.rect.Min.X+x, py)).(color.NRGBA)
			row[x*4+0] = c.R
			row[x*4+1] = c.G
			row[x*4+2] = c.B
			row[x*4+3] = c.A
		}
		return nil
	}

	le := binary.LittleEndian
	if src, ok := s.img.(*image.NRGBA64); ok {
		// NRGBA64 stores big-endian samples.
		off := src.PixOffset(s.rect.Min.X, py)
		pix := src.Pix[off : off+w*8]
		for i := 0; i < w*8; i += 2 {
			le.PutUint16(row[i:], binary.BigEndian.Uint16(pix[i:]))
		}
		return nil
	}
	for x := range w {
		c := color.NRGBA64Model.Convert(s.img.At(s.rect.Min.X+x, py)).(color.NRGBA64)
		le.PutUint16(row[x*8+0:], c.R)
		le.PutUint16(row[x*8+2:], c.G)
		le.PutUint16(row[x*8+4:], c.B)
		le.PutUint16(row[x*8+6:], c.A)
	}
	return nil
}
