package image

import "github.com/gogpu/pixconv"

// Option configures Load, Decode and Image.Convert.
//
// Example:
//
//	img, err := image.LoadFile("sprite.png",
//	    image.WithFormat(pixconv.FormatBGRA),
//	    image.WithPremultiply(true),
//	)
type Option func(*options)

type options struct {
	format      pixconv.PixelFormat
	premultiply bool
	workers     int
	pool        *Pool
}

func applyOptions(opts []Option) options {
	o := options{format: pixconv.FormatUnspecified, workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.pool == nil {
		o.pool = defaultPool
	}
	return o
}

// WithFormat sets the requested output format. Wildcards (pixconv.FormatRGBA,
// pixconv.FormatBGRA) keep the source bit depth in the requested channel
// order. The default, pixconv.FormatUnspecified, keeps the native format.
func WithFormat(f pixconv.PixelFormat) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithPremultiply multiplies color channels by alpha during conversion.
func WithPremultiply(enabled bool) Option {
	return func(o *options) {
		o.premultiply = enabled
	}
}

// WithWorkers splits row conversion across n goroutines.
// n <= 1 converts on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithPool sets the pool used for staging buffers. Defaults to a shared pool.
func WithPool(p *Pool) Option {
	return func(o *options) {
		o.pool = p
	}
}
