package pixconv

import "fmt"

// Transcode converts src into dst element by element in increasing index
// order and returns the number of elements written, min(len(dst), len(src)).
//
// Each element is widened to the anchor of dst's format, premultiplied when
// premultiply is set, and narrowed. dst and src must not overlap. Transcode
// does not allocate.
//
// Example:
//
//	row := make([]pixconv.BGRA4444, len(src))
//	pixconv.Transcode(row, src, true)
func Transcode[D any, PD Loader[D], S any, PS interface {
	*S
	Pixel
}](dst []D, src []S, premultiply bool) int {
	n := min(len(dst), len(src))
	for i := range n {
		PD(&dst[i]).Load(PS(&src[i]), premultiply)
	}
	return n
}

// RowFunc converts count pixels from src into dst. The buffers are assumed
// to be large enough and must not overlap.
type RowFunc func(dst, src []byte, count int, premultiply bool)

// Transcoder returns the row converter from srcFormat into dstFormat.
// Both formats must be concrete. The returned function does not allocate and
// is safe for concurrent use.
func Transcoder(dstFormat, srcFormat PixelFormat) (RowFunc, error) {
	if !srcFormat.IsConcrete() || !dstFormat.IsConcrete() {
		return nil, fmt.Errorf("transcode %v to %v: %w", srcFormat, dstFormat, ErrUnsupportedConversion)
	}
	return func(dst, src []byte, count int, premultiply bool) {
		convertRow(dst, dstFormat, src, srcFormat, count, premultiply)
	}, nil
}

// TranscodeBytes converts count pixels of srcFormat in src into dstFormat in
// dst. Formats and buffer sizes are checked before anything is written, so a
// failed call leaves dst untouched.
func TranscodeBytes(dst []byte, dstFormat PixelFormat, src []byte, srcFormat PixelFormat, count int, premultiply bool) error {
	if !srcFormat.IsConcrete() || !dstFormat.IsConcrete() {
		return fmt.Errorf("transcode %v to %v: %w", srcFormat, dstFormat, ErrUnsupportedConversion)
	}
	if count < 0 {
		return fmt.Errorf("transcode: negative count %d: %w", count, ErrShortBuffer)
	}
	if len(src) < srcFormat.RowBytes(count) {
		return fmt.Errorf("transcode: source holds %d bytes, need %d: %w", len(src), srcFormat.RowBytes(count), ErrShortBuffer)
	}
	if len(dst) < dstFormat.RowBytes(count) {
		return fmt.Errorf("transcode: destination holds %d bytes, need %d: %w", len(dst), dstFormat.RowBytes(count), ErrShortBuffer)
	}
	convertRow(dst, dstFormat, src, srcFormat, count, premultiply)
	return nil
}
