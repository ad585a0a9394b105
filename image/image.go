// Package image holds decoded pixel buffers for the pixconv engine.
//
// An Image is an owned byte buffer with a rank of 1 to 3 spatial dimensions,
// a row stride padded to a 4-byte boundary and a [pixconv.PixelFormat] tag.
// Decoders produce images with [Load] or [Decode]; renderers read the tag,
// the stride and the bytes. An Image is not modified by this package once it
// has been returned, so it can be shared between goroutines for reading.
package image

import (
	"errors"
	"fmt"

	"github.com/gogpu/pixconv"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when a length is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidRank is returned when the number of lengths is not 1, 2 or 3.
	ErrInvalidRank = errors.New("image: rank must be 1, 2 or 3")

	// ErrInvalidStride is returned when stride is less than minimum required.
	ErrInvalidStride = errors.New("image: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// maxRank is the largest supported number of spatial dimensions.
const maxRank = 3

// Image is a pixel buffer in one concrete format.
type Image struct {
	data          []byte
	rank          int
	length        [maxRank]int
	stride        int
	format        pixconv.PixelFormat
	premultiplied bool
}

// New allocates a zeroed image. lengths gives the extent along each axis,
// width first. The stride is the row size padded to 4 bytes.
func New(format pixconv.PixelFormat, lengths ...int) (*Image, error) {
	img, err := newHeader(format, lengths)
	if err != nil {
		return nil, err
	}
	img.stride = format.AlignedRowBytes(img.length[0])
	img.data = make([]byte, img.stride*img.Rows())
	return img, nil
}

// NewWithStride allocates a zeroed image with a caller-chosen stride.
// Stride must be at least format.RowBytes(width).
func NewWithStride(format pixconv.PixelFormat, stride int, lengths ...int) (*Image, error) {
	img, err := newHeader(format, lengths)
	if err != nil {
		return nil, err
	}
	if stride < format.RowBytes(img.length[0]) {
		return nil, ErrInvalidStride
	}
	img.stride = stride
	img.data = make([]byte, stride*img.Rows())
	return img, nil
}

// FromRaw wraps existing data without copying. The caller must not modify
// data while the image is in use.
func FromRaw(data []byte, format pixconv.PixelFormat, stride int, lengths ...int) (*Image, error) {
	img, err := newHeader(format, lengths)
	if err != nil {
		return nil, err
	}
	if stride < format.RowBytes(img.length[0]) {
		return nil, ErrInvalidStride
	}
	size := stride * img.Rows()
	if len(data) < size {
		return nil, ErrDataTooSmall
	}
	img.stride = stride
	img.data = data[:size]
	return img, nil
}

func newHeader(format pixconv.PixelFormat, lengths []int) (*Image, error) {
	if !format.IsConcrete() {
		return nil, fmt.Errorf("image: format %v: %w", format, pixconv.ErrUnsupportedFormat)
	}
	if len(lengths) == 0 || len(lengths) > maxRank {
		return nil, ErrInvalidRank
	}
	img := &Image{rank: len(lengths), format: format, length: [maxRank]int{1, 1, 1}}
	for i, n := range lengths {
		if n <= 0 {
			return nil, ErrInvalidDimensions
		}
		img.length[i] = n
	}
	return img, nil
}

// Data returns the raw pixel bytes, rows stride bytes apart.
func (m *Image) Data() []byte {
	return m.data
}

// Size returns the buffer size in bytes: Stride() * Rows().
func (m *Image) Size() int {
	return len(m.data)
}

// Rank returns the number of spatial dimensions.
func (m *Image) Rank() int {
	return m.rank
}

// Length returns the extent along axis. Axes at or beyond Rank have length 1.
func (m *Image) Length(axis int) int {
	if axis < 0 || axis >= m.rank {
		return 1
	}
	return m.length[axis]
}

// Width returns Length(0).
func (m *Image) Width() int {
	return m.length[0]
}

// Height returns Length(1).
func (m *Image) Height() int {
	return m.Length(1)
}

// Stride returns the number of bytes per row (including padding).
func (m *Image) Stride() int {
	return m.stride
}

// Format returns the pixel format tag.
func (m *Image) Format() pixconv.PixelFormat {
	return m.format
}

// Premultiplied reports whether color channels already include alpha.
func (m *Image) Premultiplied() bool {
	return m.premultiplied
}

// Rows returns the number of rows across all slices: Length(1) * Length(2).
func (m *Image) Rows() int {
	return m.Length(1) * m.Length(2)
}

// Row returns the pixel bytes of row i, without padding. Rows of slice z
// start at index z*Length(1). Returns nil if i is out of range.
func (m *Image) Row(i int) []byte {
	if i < 0 || i >= m.Rows() {
		return nil
	}
	start := i * m.stride
	return m.data[start : start+m.format.RowBytes(m.length[0])]
}

// PixelOffset returns the byte offset of pixel (x, y) in slice 0.
// Returns -1 if coordinates are out of bounds.
func (m *Image) PixelOffset(x, y int) int {
	if x < 0 || x >= m.Width() || y < 0 || y >= m.Height() {
		return -1
	}
	return y*m.stride + x*m.format.BytesPerPixel()
}

// At returns the pixel at (x, y), or nil if out of bounds.
func (m *Image) At(x, y int) pixconv.Pixel {
	off := m.PixelOffset(x, y)
	if off < 0 {
		return nil
	}
	p, err := pixconv.Decode(m.format, m.data[off:])
	if err != nil {
		return nil
	}
	return p
}

// Set converts p into the image format and stores it at (x, y).
func (m *Image) Set(x, y int, p pixconv.Pixel) error {
	off := m.PixelOffset(x, y)
	if off < 0 {
		return ErrOutOfBounds
	}
	q, err := pixconv.Convert(p, m.format, false)
	if err != nil {
		return err
	}
	return pixconv.Encode(q, m.data[off:])
}

// Convert returns a new image holding m's pixels in the format resolved from
// target (see [pixconv.Resolve]). WithPremultiply multiplies color by alpha
// unless m is already premultiplied. WithWorkers converts rows in parallel.
func (m *Image) Convert(target pixconv.PixelFormat, opts ...Option) (*Image, error) {
	o := applyOptions(opts)
	format := pixconv.Resolve(target, m.format)

	out := &Image{
		rank:          m.rank,
		length:        m.length,
		format:        format,
		premultiplied: m.premultiplied,
	}
	if !format.IsConcrete() {
		return nil, fmt.Errorf("image: convert %v to %v: %w", m.format, target, pixconv.ErrUnsupportedConversion)
	}
	out.stride = format.AlignedRowBytes(m.length[0])
	out.data = make([]byte, out.stride*m.Rows())

	premultiply := o.premultiply && !m.premultiplied
	fn, err := pixconv.Transcoder(format, m.format)
	if err != nil {
		return nil, err
	}
	convertRows(fn, out, m.Rows(), func(i int) []byte { return m.Row(i) }, premultiply, o.workers)
	out.premultiplied = m.premultiplied || premultiply
	return out, nil
}
