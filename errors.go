package pixconv

import (
	"errors"
	"fmt"
)

// Common errors for conversion operations.
var (
	// ErrUnsupportedConversion is returned when the destination format has no
	// conversion path, e.g. a wildcard or an unknown value.
	ErrUnsupportedConversion = errors.New("pixconv: unsupported conversion")

	// ErrUnsupportedSourceDepth is returned by decoders when the codec reports
	// a bit depth other than the two native row formats (8 and 16 bits).
	ErrUnsupportedSourceDepth = errors.New("pixconv: unsupported source bit depth")

	// ErrUnsupportedFormat is returned when a format is not usable for an operation.
	ErrUnsupportedFormat = errors.New("pixconv: unsupported pixel format")

	// ErrShortBuffer is returned when a buffer cannot hold the requested pixels.
	ErrShortBuffer = errors.New("pixconv: buffer too small")
)

// FormatError reports a format name that ParseFormat does not recognize.
type FormatError struct {
	Name string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("pixconv: unknown pixel format %q", e.Name)
}

// Unwrap lets errors.Is match ErrUnsupportedFormat.
func (e *FormatError) Unwrap() error {
	return ErrUnsupportedFormat
}
