package pixconv

import "github.com/x448/float16"

// Loader is satisfied by pointers to the concrete pixel types.
//
// Load widens src to the receiver's anchor (see [PixelFormat.Anchor]),
// premultiplies the anchor value when asked, and narrows it into the receiver.
// Load does not allocate.
type Loader[T any] interface {
	*T
	Pixel
	Load(src Pixel, premultiply bool)
}

// narrowing of norm16 samples keeps the top bits.
func narrow8(v uint16) uint8 { return uint8(v >> 8) }
func narrow6(v uint16) uint8 { return uint8(v >> 10) }
func narrow5(v uint16) uint8 { return uint8(v >> 11) }
func narrow4(v uint16) uint8 { return uint8(v >> 12) }
func narrow1(v uint16) uint8 { return uint8(v >> 15) }

func anchorRGBAF32(src Pixel, premultiply bool) RGBAF32 {
	a := src.RGBAF32()
	if premultiply {
		a = a.Premultiply()
	}
	return a
}

func anchorBGRAF32(src Pixel, premultiply bool) BGRAF32 {
	a := src.BGRAF32()
	if premultiply {
		a = a.Premultiply()
	}
	return a
}

func anchorRGBAU16(src Pixel, premultiply bool) RGBAU16 {
	a := src.RGBAU16()
	if premultiply {
		a = a.Premultiply()
	}
	return a
}

func anchorBGRAU16(src Pixel, premultiply bool) BGRAU16 {
	a := src.BGRAU16()
	if premultiply {
		a = a.Premultiply()
	}
	return a
}

// Each type narrows from the anchor of its own tier family and order.

func (p *RGBAF32) narrow(a RGBAF32) { *p = a }
func (p *BGRAF32) narrow(a BGRAF32) { *p = a }

func (p *RGBAF16) narrow(a RGBAF32) {
	*p = RGBAF16{
		R: float16.Fromfloat32(a.R),
		G: float16.Fromfloat32(a.G),
		B: float16.Fromfloat32(a.B),
		A: float16.Fromfloat32(a.A),
	}
}

func (p *BGRAF16) narrow(a BGRAF32) {
	*p = BGRAF16{
		B: float16.Fromfloat32(a.B),
		G: float16.Fromfloat32(a.G),
		R: float16.Fromfloat32(a.R),
		A: float16.Fromfloat32(a.A),
	}
}

func (p *RGBAU16) narrow(a RGBAU16) { *p = a }
func (p *BGRAU16) narrow(a BGRAU16) { *p = a }

func (p *RGBA8888) narrow(a RGBAU16) {
	*p = RGBA8888{R: narrow8(a.R), G: narrow8(a.G), B: narrow8(a.B), A: narrow8(a.A)}
}

func (p *BGRA8888) narrow(a BGRAU16) {
	*p = BGRA8888{B: narrow8(a.B), G: narrow8(a.G), R: narrow8(a.R), A: narrow8(a.A)}
}

func (p *RGBA4444) narrow(a RGBAU16) {
	*p = RGBA4444{R: narrow4(a.R), G: narrow4(a.G), B: narrow4(a.B), A: narrow4(a.A)}
}

func (p *BGRA4444) narrow(a BGRAU16) {
	*p = BGRA4444{B: narrow4(a.B), G: narrow4(a.G), R: narrow4(a.R), A: narrow4(a.A)}
}

func (p *RGBA5551) narrow(a RGBAU16) {
	*p = RGBA5551{R: narrow5(a.R), G: narrow5(a.G), B: narrow5(a.B), A: narrow1(a.A)}
}

func (p *BGRA5551) narrow(a BGRAU16) {
	*p = BGRA5551{B: narrow5(a.B), G: narrow5(a.G), R: narrow5(a.R), A: narrow1(a.A)}
}

// narrow discards alpha; premultiplication has already been applied.
func (p *RGB565) narrow(a RGBAU16) {
	*p = RGB565{R: narrow5(a.R), G: narrow6(a.G), B: narrow5(a.B)}
}

// narrow discards alpha; premultiplication has already been applied.
func (p *BGR565) narrow(a BGRAU16) {
	*p = BGR565{B: narrow5(a.B), G: narrow6(a.G), R: narrow5(a.R)}
}

// Load sets p from src through the RGBAF32 anchor.
func (p *RGBAF32) Load(src Pixel, premultiply bool) { p.narrow(anchorRGBAF32(src, premultiply)) }

// Load sets p from src through the BGRAF32 anchor.
func (p *BGRAF32) Load(src Pixel, premultiply bool) { p.narrow(anchorBGRAF32(src, premultiply)) }

// Load sets p from src through the RGBAF32 anchor.
func (p *RGBAF16) Load(src Pixel, premultiply bool) { p.narrow(anchorRGBAF32(src, premultiply)) }

// Load sets p from src through the BGRAF32 anchor.
func (p *BGRAF16) Load(src Pixel, premultiply bool) { p.narrow(anchorBGRAF32(src, premultiply)) }

// Load sets p from src through the RGBAU16 anchor.
func (p *RGBAU16) Load(src Pixel, premultiply bool) { p.narrow(anchorRGBAU16(src, premultiply)) }

// Load sets p from src through the BGRAU16 anchor.
func (p *BGRAU16) Load(src Pixel, premultiply bool) { p.narrow(anchorBGRAU16(src, premultiply)) }

// Load sets p from src through the RGBAU16 anchor.
func (p *RGBA8888) Load(src Pixel, premultiply bool) { p.narrow(anchorRGBAU16(src, premultiply)) }

// Load sets p from src through the BGRAU16 anchor.
func (p *BGRA8888) Load(src Pixel, premultiply bool) { p.narrow(anchorBGRAU16(src, premultiply)) }

// Load sets p from src through the RGBAU16 anchor.
func (p *RGBA4444) Load(src Pixel, premultiply bool) { p.narrow(anchorRGBAU16(src, premultiply)) }

// Load sets p from src through the BGRAU16 anchor.
func (p *BGRA4444) Load(src Pixel, premultiply bool) { p.narrow(anchorBGRAU16(src, premultiply)) }

// Load sets p from src through the RGBAU16 anchor.
func (p *RGBA5551) Load(src Pixel, premultiply bool) { p.narrow(anchorRGBAU16(src, premultiply)) }

// Load sets p from src through the BGRAU16 anchor.
func (p *BGRA5551) Load(src Pixel, premultiply bool) { p.narrow(anchorBGRAU16(src, premultiply)) }

// Load sets p from src through the RGBAU16 anchor. Alpha is dropped after
// the optional premultiplication.
func (p *RGB565) Load(src Pixel, premultiply bool) { p.narrow(anchorRGBAU16(src, premultiply)) }

// Load sets p from src through the BGRAU16 anchor. Alpha is dropped after
// the optional premultiplication.
func (p *BGR565) Load(src Pixel, premultiply bool) { p.narrow(anchorBGRAU16(src, premultiply)) }
