package pixconv

import (
	"github.com/chewxy/math32"
	"github.com/x448/float16"
)

// Pixel is a single pixel value of one concrete format.
//
// Every pixel converts to the four anchor types: float32 and norm16, each in
// both channel orders. Conversions between two non-anchor formats go through
// the anchor the destination narrows from (see [PixelFormat.Anchor]).
type Pixel interface {
	Format() PixelFormat
	RGBAF32() RGBAF32
	BGRAF32() BGRAF32
	RGBAU16() RGBAU16
	BGRAU16() BGRAU16
}

// unorm16Max is the largest norm16 sample (1.0).
const unorm16Max = 0xffff

// unorm16FromFloat clamps v to [0,1] and scales it to norm16 with rounding.
// NaN maps to 0.
func unorm16FromFloat(v float32) uint16 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return unorm16Max
	}
	return uint16(math32.Round(v * unorm16Max))
}

func floatFromUnorm16(v uint16) float32 {
	return float32(v) / unorm16Max
}

// Widening of packed channels to norm16 replicates the stored bits.
func widen8(v uint8) uint16 { return uint16(v) * 0x101 }
func widen4(v uint8) uint16 { return uint16(v&0xf) * 0x1111 }
func widen5(v uint8) uint16 { return uint16(uint32(v&0x1f) * 0x8421 >> 4) }
func widen6(v uint8) uint16 { return uint16(uint32(v&0x3f) * 0x1041 >> 2) }
func widen1(v uint8) uint16 { return uint16(v&1) * 0xffff }

// RGBAF32 is a float32 pixel in RGBA order. It is an anchor type.
type RGBAF32 struct {
	R, G, B, A float32
}

// BGRAF32 is a float32 pixel in BGRA order. It is an anchor type.
type BGRAF32 struct {
	B, G, R, A float32
}

// Format reports FormatRGBAFloat32. The conversion methods swizzle or
// quantize p into the other anchors.
func (p RGBAF32) Format() PixelFormat { return FormatRGBAFloat32 }
func (p RGBAF32) RGBAF32() RGBAF32    { return p }
func (p RGBAF32) BGRAF32() BGRAF32    { return BGRAF32{B: p.B, G: p.G, R: p.R, A: p.A} }
func (p RGBAF32) RGBAU16() RGBAU16 {
	return RGBAU16{
		R: unorm16FromFloat(p.R),
		G: unorm16FromFloat(p.G),
		B: unorm16FromFloat(p.B),
		A: unorm16FromFloat(p.A),
	}
}
func (p RGBAF32) BGRAU16() BGRAU16 { return p.RGBAU16().BGRAU16() }

// Format reports FormatBGRAFloat32. The conversion methods swizzle or
// quantize p into the other anchors.
func (p BGRAF32) Format() PixelFormat { return FormatBGRAFloat32 }
func (p BGRAF32) RGBAF32() RGBAF32    { return RGBAF32{R: p.R, G: p.G, B: p.B, A: p.A} }
func (p BGRAF32) BGRAF32() BGRAF32    { return p }
func (p BGRAF32) RGBAU16() RGBAU16    { return p.BGRAU16().RGBAU16() }
func (p BGRAF32) BGRAU16() BGRAU16 {
	return BGRAU16{
		B: unorm16FromFloat(p.B),
		G: unorm16FromFloat(p.G),
		R: unorm16FromFloat(p.R),
		A: unorm16FromFloat(p.A),
	}
}

// RGBAF16 is an IEEE-754 half precision pixel in RGBA order.
type RGBAF16 struct {
	R, G, B, A float16.Float16
}

// BGRAF16 is an IEEE-754 half precision pixel in BGRA order.
type BGRAF16 struct {
	B, G, R, A float16.Float16
}

// Format reports FormatRGBAFloat16. The conversion methods widen through
// RGBAF32.
func (p RGBAF16) Format() PixelFormat { return FormatRGBAFloat16 }
func (p RGBAF16) RGBAF32() RGBAF32 {
	return RGBAF32{R: p.R.Float32(), G: p.G.Float32(), B: p.B.Float32(), A: p.A.Float32()}
}
func (p RGBAF16) BGRAF32() BGRAF32 { return p.RGBAF32().BGRAF32() }
func (p RGBAF16) RGBAU16() RGBAU16 { return p.RGBAF32().RGBAU16() }
func (p RGBAF16) BGRAU16() BGRAU16 { return p.RGBAF32().BGRAU16() }

// Format reports FormatBGRAFloat16. The conversion methods widen through
// BGRAF32.
func (p BGRAF16) Format() PixelFormat { return FormatBGRAFloat16 }
func (p BGRAF16) RGBAF32() RGBAF32    { return p.BGRAF32().RGBAF32() }
func (p BGRAF16) BGRAF32() BGRAF32 {
	return BGRAF32{B: p.B.Float32(), G: p.G.Float32(), R: p.R.Float32(), A: p.A.Float32()}
}
func (p BGRAF16) RGBAU16() RGBAU16 { return p.BGRAF32().RGBAU16() }
func (p BGRAF16) BGRAU16() BGRAU16 { return p.BGRAF32().BGRAU16() }

// RGBAU16 is a 16-bit normalized pixel in RGBA order. It is an anchor type.
type RGBAU16 struct {
	R, G, B, A uint16
}

// BGRAU16 is a 16-bit normalized pixel in BGRA order. It is an anchor type.
type BGRAU16 struct {
	B, G, R, A uint16
}

// Format reports FormatRGBAUnorm16. The float anchors normalize each
// channel by 65535.
func (p RGBAU16) Format() PixelFormat { return FormatRGBAUnorm16 }
func (p RGBAU16) RGBAF32() RGBAF32 {
	return RGBAF32{
		R: floatFromUnorm16(p.R),
		G: floatFromUnorm16(p.G),
		B: floatFromUnorm16(p.B),
		A: floatFromUnorm16(p.A),
	}
}
func (p RGBAU16) BGRAF32() BGRAF32 { return p.RGBAF32().BGRAF32() }
func (p RGBAU16) RGBAU16() RGBAU16 { return p }
func (p RGBAU16) BGRAU16() BGRAU16 { return BGRAU16{B: p.B, G: p.G, R: p.R, A: p.A} }

// Format reports FormatBGRAUnorm16. The float anchors normalize each
// channel by 65535.
func (p BGRAU16) Format() PixelFormat { return FormatBGRAUnorm16 }
func (p BGRAU16) RGBAF32() RGBAF32    { return p.BGRAF32().RGBAF32() }
func (p BGRAU16) BGRAF32() BGRAF32 {
	return BGRAF32{
		B: floatFromUnorm16(p.B),
		G: floatFromUnorm16(p.G),
		R: floatFromUnorm16(p.R),
		A: floatFromUnorm16(p.A),
	}
}
func (p BGRAU16) RGBAU16() RGBAU16 { return RGBAU16{R: p.R, G: p.G, B: p.B, A: p.A} }
func (p BGRAU16) BGRAU16() BGRAU16 { return p }

// RGBA8888 is an 8-bit per channel pixel stored as bytes R G B A.
type RGBA8888 struct {
	R, G, B, A uint8
}

// BGRA8888 is an 8-bit per channel pixel stored as bytes B G R A.
type BGRA8888 struct {
	B, G, R, A uint8
}

// Format reports FormatRGBA8888. The anchors replicate each 8-bit channel.
func (p RGBA8888) Format() PixelFormat { return FormatRGBA8888 }
func (p RGBA8888) RGBAF32() RGBAF32 {
	return RGBAF32{
		R: float32(p.R) / 0xff,
		G: float32(p.G) / 0xff,
		B: float32(p.B) / 0xff,
		A: float32(p.A) / 0xff,
	}
}
func (p RGBA8888) BGRAF32() BGRAF32 { return p.RGBAF32().BGRAF32() }
func (p RGBA8888) RGBAU16() RGBAU16 {
	return RGBAU16{R: widen8(p.R), G: widen8(p.G), B: widen8(p.B), A: widen8(p.A)}
}
func (p RGBA8888) BGRAU16() BGRAU16 { return p.RGBAU16().BGRAU16() }

// Format reports FormatBGRA8888. The anchors replicate each 8-bit channel.
func (p BGRA8888) Format() PixelFormat { return FormatBGRA8888 }
func (p BGRA8888) RGBAF32() RGBAF32    { return p.BGRAF32().RGBAF32() }
func (p BGRA8888) BGRAF32() BGRAF32 {
	return BGRAF32{
		B: float32(p.B) / 0xff,
		G: float32(p.G) / 0xff,
		R: float32(p.R) / 0xff,
		A: float32(p.A) / 0xff,
	}
}
func (p BGRA8888) RGBAU16() RGBAU16 { return p.BGRAU16().RGBAU16() }
func (p BGRA8888) BGRAU16() BGRAU16 {
	return BGRAU16{B: widen8(p.B), G: widen8(p.G), R: widen8(p.R), A: widen8(p.A)}
}

// RGBA4444 is a 4-bit per channel pixel. Each field holds a value in [0,15].
type RGBA4444 struct {
	R, G, B, A uint8
}

// BGRA4444 is a 4-bit per channel pixel. Each field holds a value in [0,15].
type BGRA4444 struct {
	B, G, R, A uint8
}

// Format reports FormatRGBA4444. The anchors replicate each 4-bit channel.
func (p RGBA4444) Format() PixelFormat { return FormatRGBA4444 }
func (p RGBA4444) RGBAF32() RGBAF32 {
	return RGBAF32{
		R: float32(p.R&0xf) / 0xf,
		G: float32(p.G&0xf) / 0xf,
		B: float32(p.B&0xf) / 0xf,
		A: float32(p.A&0xf) / 0xf,
	}
}
func (p RGBA4444) BGRAF32() BGRAF32 { return p.RGBAF32().BGRAF32() }
func (p RGBA4444) RGBAU16() RGBAU16 {
	return RGBAU16{R: widen4(p.R), G: widen4(p.G), B: widen4(p.B), A: widen4(p.A)}
}
func (p RGBA4444) BGRAU16() BGRAU16 { return p.RGBAU16().BGRAU16() }

// Format reports FormatBGRA4444. The anchors replicate each 4-bit channel.
func (p BGRA4444) Format() PixelFormat { return FormatBGRA4444 }
func (p BGRA4444) RGBAF32() RGBAF32    { return p.BGRAF32().RGBAF32() }
func (p BGRA4444) BGRAF32() BGRAF32 {
	return BGRAF32{
		B: float32(p.B&0xf) / 0xf,
		G: float32(p.G&0xf) / 0xf,
		R: float32(p.R&0xf) / 0xf,
		A: float32(p.A&0xf) / 0xf,
	}
}
func (p BGRA4444) RGBAU16() RGBAU16 { return p.BGRAU16().RGBAU16() }
func (p BGRA4444) BGRAU16() BGRAU16 {
	return BGRAU16{B: widen4(p.B), G: widen4(p.G), R: widen4(p.R), A: widen4(p.A)}
}

// RGBA5551 has 5-bit color channels in [0,31] and a 1-bit alpha in {0,1}.
type RGBA5551 struct {
	R, G, B, A uint8
}

// BGRA5551 has 5-bit color channels in [0,31] and a 1-bit alpha in {0,1}.
type BGRA5551 struct {
	B, G, R, A uint8
}

// Format reports FormatRGBA5551. Alpha widens to 0 or full scale.
func (p RGBA5551) Format() PixelFormat { return FormatRGBA5551 }
func (p RGBA5551) RGBAF32() RGBAF32 {
	return RGBAF32{
		R: float32(p.R&0x1f) / 0x1f,
		G: float32(p.G&0x1f) / 0x1f,
		B: float32(p.B&0x1f) / 0x1f,
		A: float32(p.A & 1),
	}
}
func (p RGBA5551) BGRAF32() BGRAF32 { return p.RGBAF32().BGRAF32() }
func (p RGBA5551) RGBAU16() RGBAU16 {
	return RGBAU16{R: widen5(p.R), G: widen5(p.G), B: widen5(p.B), A: widen1(p.A)}
}
func (p RGBA5551) BGRAU16() BGRAU16 { return p.RGBAU16().BGRAU16() }

// Format reports FormatBGRA5551. Alpha widens to 0 or full scale.
func (p BGRA5551) Format() PixelFormat { return FormatBGRA5551 }
func (p BGRA5551) RGBAF32() RGBAF32    { return p.BGRAF32().RGBAF32() }
func (p BGRA5551) BGRAF32() BGRAF32 {
	return BGRAF32{
		B: float32(p.B&0x1f) / 0x1f,
		G: float32(p.G&0x1f) / 0x1f,
		R: float32(p.R&0x1f) / 0x1f,
		A: float32(p.A & 1),
	}
}
func (p BGRA5551) RGBAU16() RGBAU16 { return p.BGRAU16().RGBAU16() }
func (p BGRA5551) BGRAU16() BGRAU16 {
	return BGRAU16{B: widen5(p.B), G: widen5(p.G), R: widen5(p.R), A: widen1(p.A)}
}

// RGB565 has 5-bit red and blue in [0,31] and 6-bit green in [0,63].
// There is no alpha; every conversion out of it is fully opaque.
type RGB565 struct {
	R, G, B uint8
}

// BGR565 is RGB565 with red and blue swapped in the packed word.
type BGR565 struct {
	B, G, R uint8
}

// Format reports FormatRGB565. All anchors are opaque.
func (p RGB565) Format() PixelFormat { return FormatRGB565 }
func (p RGB565) RGBAF32() RGBAF32 {
	return RGBAF32{
		R: float32(p.R&0x1f) / 0x1f,
		G: float32(p.G&0x3f) / 0x3f,
		B: float32(p.B&0x1f) / 0x1f,
		A: 1,
	}
}
func (p RGB565) BGRAF32() BGRAF32 { return p.RGBAF32().BGRAF32() }
func (p RGB565) RGBAU16() RGBAU16 {
	return RGBAU16{R: widen5(p.R), G: widen6(p.G), B: widen5(p.B), A: unorm16Max}
}
func (p RGB565) BGRAU16() BGRAU16 { return p.RGBAU16().BGRAU16() }

// Format reports FormatBGR565. All anchors are opaque.
func (p BGR565) Format() PixelFormat { return FormatBGR565 }
func (p BGR565) RGBAF32() RGBAF32    { return p.BGRAF32().RGBAF32() }
func (p BGR565) BGRAF32() BGRAF32 {
	return BGRAF32{
		B: float32(p.B&0x1f) / 0x1f,
		G: float32(p.G&0x3f) / 0x3f,
		R: float32(p.R&0x1f) / 0x1f,
		A: 1,
	}
}
func (p BGR565) RGBAU16() RGBAU16 { return p.BGRAU16().RGBAU16() }
func (p BGR565) BGRAU16() BGRAU16 {
	return BGRAU16{B: widen5(p.B), G: widen6(p.G), R: widen5(p.R), A: unorm16Max}
}
