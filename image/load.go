package image

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	// Container codecs registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/pixconv"
	"github.com/gogpu/pixconv/internal/parallel"
)

// RowSource is the contract with an external codec. It delivers rows in one
// of the two native row formats: pixconv.FormatRGBA8888 when Depth is 8,
// pixconv.FormatRGBAUnorm16 when Depth is 16.
type RowSource interface {
	Width() int
	Height() int

	// Depth returns the bits per channel of the rows the source emits.
	Depth() int

	// ReadRow fills row with the native pixels of row y. Load requests every
	// row exactly once, in increasing order; row holds exactly one row.
	ReadRow(y int, row []byte) error
}

// NativeFormat returns the row format a codec with the given depth emits.
func NativeFormat(depth int) (pixconv.PixelFormat, error) {
	switch depth {
	case 8:
		return pixconv.FormatRGBA8888, nil
	case 16:
		return pixconv.FormatRGBAUnorm16, nil
	default:
		return pixconv.FormatUnspecified, fmt.Errorf("image: depth %d: %w", depth, pixconv.ErrUnsupportedSourceDepth)
	}
}

// Load decodes src into a new image.
//
// The output format is pixconv.Resolve(WithFormat, native). When it equals
// the native format and no premultiplication is requested, rows are read
// straight into the image; otherwise each row is transcoded.
func Load(src RowSource, opts ...Option) (*Image, error) {
	o := applyOptions(opts)

	native, err := NativeFormat(src.Depth())
	if err != nil {
		return nil, err
	}
	width, height := src.Width(), src.Height()
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}

	format := pixconv.Resolve(o.format, native)
	if !format.IsConcrete() {
		return nil, fmt.Errorf("image: load %v as %v: %w", native, o.format, pixconv.ErrUnsupportedConversion)
	}
	img, err := New(format, width, height)
	if err != nil {
		return nil, err
	}

	log := pixconv.Logger()
	nativeRow := native.RowBytes(width)

	if format == native && !o.premultiply {
		log.Debug("image: direct row copy", "format", format, "width", width, "height", height)
		for y := range height {
			if err := src.ReadRow(y, img.Row(y)); err != nil {
				return nil, fmt.Errorf("image: read row %d: %w", y, err)
			}
		}
		return img, nil
	}

	fn, err := pixconv.Transcoder(format, native)
	if err != nil {
		return nil, err
	}
	log.Debug("image: transcoding rows", "from", native, "to", format,
		"premultiply", o.premultiply, "workers", o.workers)

	if o.workers <= 1 {
		row := o.pool.Get(nativeRow)
		defer o.pool.Put(row)
		for y := range height {
			if err := src.ReadRow(y, row); err != nil {
				return nil, fmt.Errorf("image: read row %d: %w", y, err)
			}
			fn(img.Row(y), row, width, o.premultiply)
		}
	} else {
		// Codecs read sequentially; stage the whole image, then convert the
		// independent row ranges in parallel.
		staging := o.pool.Get(nativeRow * height)
		defer o.pool.Put(staging)
		for y := range height {
			if err := src.ReadRow(y, staging[y*nativeRow:(y+1)*nativeRow]); err != nil {
				return nil, fmt.Errorf("image: read row %d: %w", y, err)
			}
		}
		convertRows(fn, img, height, func(y int) []byte {
			return staging[y*nativeRow : (y+1)*nativeRow]
		}, o.premultiply, o.workers)
	}

	img.premultiplied = o.premultiply
	return img, nil
}

// convertRows transcodes rows [0, rows) of srcRow into dst.
func convertRows(fn pixconv.RowFunc, dst *Image, rows int, srcRow func(int) []byte, premultiply bool, workers int) {
	width := dst.Width()
	if workers <= 1 || rows < 2 {
		for i := range rows {
			fn(dst.Row(i), srcRow(i), width, premultiply)
		}
		return
	}

	pool := parallel.NewWorkerPool(min(workers, rows))
	defer pool.Close()
	pool.ForEachRange(rows, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			fn(dst.Row(i), srcRow(i), width, premultiply)
		}
	})
}

// Decode decodes an image container from r and loads it.
// PNG, JPEG, GIF, BMP, TIFF and WebP are recognized.
func Decode(r io.Reader, opts ...Option) (*Image, error) {
	src, name, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	img, err := Load(FromStdImage(src), opts...)
	if err != nil {
		return nil, err
	}
	pixconv.Logger().Info("image: decoded", "container", name,
		"format", img.Format(), "width", img.Width(), "height", img.Height(), "stride", img.Stride())
	return img, nil
}

// DecodeBytes decodes an image container held in memory.
func DecodeBytes(data []byte, opts ...Option) (*Image, error) {
	return Decode(bytes.NewReader(data), opts...)
}

// LoadFile decodes the image file at path.
func LoadFile(path string, opts ...Option) (*Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f, opts...)
}
