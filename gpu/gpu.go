// Package gpu prepares pixconv images for upload as GPU textures.
//
// A renderer reads an image's [pixconv.PixelFormat] tag and either uploads
// the bytes as-is or remaps formats the WebGPU core cannot sample onto the
// closest supported one. [Prepare] does both and lays the rows out with the
// 256-byte BytesPerRow alignment that buffer-to-texture copies require.
//
// Usage:
//
//	up, err := gpu.Prepare(img)
//	if err != nil {
//	    return err
//	}
//	// copy up.Data with up.BytesPerRow and up.RowsPerImage into a texture
//	// created with up.Format, up.Size and up.Dimension
package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/pixconv"
	"github.com/gogpu/pixconv/image"
)

// CopyPitchAlignment is the BytesPerRow alignment WebGPU requires for
// buffer-to-texture copies.
const CopyPitchAlignment = 256

// TextureFormat returns the texture format an image in f can be uploaded as
// without conversion.
func TextureFormat(f pixconv.PixelFormat) (gputypes.TextureFormat, error) {
	switch f {
	case pixconv.FormatRGBAFloat32:
		return gputypes.TextureFormatRGBA32Float, nil
	case pixconv.FormatRGBAFloat16:
		return gputypes.TextureFormatRGBA16Float, nil
	case pixconv.FormatRGBAUnorm16:
		return gputypes.TextureFormatRGBA16Unorm, nil
	case pixconv.FormatRGBA8888:
		return gputypes.TextureFormatRGBA8Unorm, nil
	case pixconv.FormatBGRA8888:
		return gputypes.TextureFormatBGRA8Unorm, nil
	default:
		return gputypes.TextureFormatUndefined, fmt.Errorf("gpu: no texture format for %v: %w", f, pixconv.ErrUnsupportedFormat)
	}
}

// UploadFormat returns the pixel format f is converted to before upload.
// Formats with a native texture format map to themselves. Non-concrete
// formats map to pixconv.FormatUnspecified.
func UploadFormat(f pixconv.PixelFormat) pixconv.PixelFormat {
	switch f.Tier() {
	case pixconv.TierFloat32:
		return pixconv.FormatRGBAFloat32
	case pixconv.TierFloat16:
		return pixconv.FormatRGBAFloat16
	case pixconv.TierUnorm16:
		// There are no BGRA textures wider than 8 bits.
		return pixconv.FormatRGBAUnorm16
	case pixconv.Tier8888, pixconv.Tier4444, pixconv.Tier5551, pixconv.Tier565:
		return pixconv.FormatRGBA8888.WithOrder(f.Order())
	default:
		return pixconv.FormatUnspecified
	}
}

// Upload is an image laid out for a buffer-to-texture copy.
type Upload struct {
	// Format is the texture format of Data.
	Format gputypes.TextureFormat

	// PixelFormat is the pixconv format of Data; it differs from the
	// source image format when the image was remapped.
	PixelFormat pixconv.PixelFormat

	Size      gputypes.Extent3D
	Dimension gputypes.TextureDimension
	Usage     gputypes.TextureUsage

	// BytesPerRow is a multiple of CopyPitchAlignment.
	BytesPerRow  uint32
	RowsPerImage uint32

	Premultiplied bool
	Data          []byte
}

// Remapped reports whether the upload was converted from source.
func (u *Upload) Remapped(source pixconv.PixelFormat) bool {
	return u.PixelFormat != source
}

// Prepare converts img to its upload format if needed and copies it into a
// buffer with CopyPitchAlignment row pitch. When the image is already in a
// native format with an aligned stride, Data aliases img.Data().
func Prepare(img *image.Image) (*Upload, error) {
	src := img.Format()
	dst := UploadFormat(src)
	texFormat, err := TextureFormat(dst)
	if err != nil {
		return nil, err
	}

	w, rows := img.Width(), img.Rows()
	rowBytes := dst.RowBytes(w)
	pitch := alignPitch(rowBytes)

	up := &Upload{
		Format:      texFormat,
		PixelFormat: dst,
		Size: gputypes.Extent3D{
			Width:              safeIntToUint32(w),
			Height:             safeIntToUint32(img.Height()),
			DepthOrArrayLayers: safeIntToUint32(img.Length(2)),
		},
		Dimension:     dimension(img.Rank()),
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
		BytesPerRow:   safeIntToUint32(pitch),
		RowsPerImage:  safeIntToUint32(img.Height()),
		Premultiplied: img.Premultiplied(),
	}

	if dst == src && img.Stride() == pitch {
		up.Data = img.Data()
		return up, nil
	}

	if dst != src {
		pixconv.Logger().Warn("gpu: remapping unsupported texture format",
			"from", src, "to", dst, "width", w, "rows", rows)
	}
	fn, err := pixconv.Transcoder(dst, src)
	if err != nil {
		return nil, err
	}
	up.Data = make([]byte, pitch*rows)
	for i := range rows {
		fn(up.Data[i*pitch:i*pitch+rowBytes], img.Row(i), w, false)
	}
	return up, nil
}

func alignPitch(n int) int {
	return (n + CopyPitchAlignment - 1) &^ (CopyPitchAlignment - 1)
}

func dimension(rank int) gputypes.TextureDimension {
	switch rank {
	case 1:
		return gputypes.TextureDimension1D
	case 3:
		return gputypes.TextureDimension3D
	default:
		return gputypes.TextureDimension2D
	}
}

// safeIntToUint32 safely converts int to uint32.
// Returns 0 for negative values and clamps values exceeding uint32 max.
func safeIntToUint32(v int) uint32 {
	if v < 0 {
		return 0
	}
	if v > int(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(v)
}
