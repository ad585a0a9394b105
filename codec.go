package pixconv

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/x448/float16"
)

// Pixel values are read from and written to byte buffers through explicit
// little-endian packing. No buffer is ever reinterpreted as a struct.

// Pack returns the 16-bit word for p: R bits 0-3, G 4-7, B 8-11, A 12-15.
func (p RGBA4444) Pack() uint16 {
	return uint16(p.R&0xf) | uint16(p.G&0xf)<<4 | uint16(p.B&0xf)<<8 | uint16(p.A&0xf)<<12
}

// UnpackRGBA4444 is the inverse of [RGBA4444.Pack].
func UnpackRGBA4444(w uint16) RGBA4444 {
	return RGBA4444{R: uint8(w & 0xf), G: uint8(w >> 4 & 0xf), B: uint8(w >> 8 & 0xf), A: uint8(w >> 12)}
}

// Pack returns the 16-bit word for p: B bits 0-3, G 4-7, R 8-11, A 12-15.
func (p BGRA4444) Pack() uint16 {
	return uint16(p.B&0xf) | uint16(p.G&0xf)<<4 | uint16(p.R&0xf)<<8 | uint16(p.A&0xf)<<12
}

// UnpackBGRA4444 is the inverse of [BGRA4444.Pack].
func UnpackBGRA4444(w uint16) BGRA4444 {
	return BGRA4444{B: uint8(w & 0xf), G: uint8(w >> 4 & 0xf), R: uint8(w >> 8 & 0xf), A: uint8(w >> 12)}
}

// Pack returns the 16-bit word for p: R bits 0-4, G 5-9, B 10-14, A 15.
func (p RGBA5551) Pack() uint16 {
	return uint16(p.R&0x1f) | uint16(p.G&0x1f)<<5 | uint16(p.B&0x1f)<<10 | uint16(p.A&1)<<15
}

// UnpackRGBA5551 is the inverse of [RGBA5551.Pack].
func UnpackRGBA5551(w uint16) RGBA5551 {
	return RGBA5551{R: uint8(w & 0x1f), G: uint8(w >> 5 & 0x1f), B: uint8(w >> 10 & 0x1f), A: uint8(w >> 15)}
}

// Pack returns the 16-bit word for p: B bits 0-4, G 5-9, R 10-14, A 15.
func (p BGRA5551) Pack() uint16 {
	return uint16(p.B&0x1f) | uint16(p.G&0x1f)<<5 | uint16(p.R&0x1f)<<10 | uint16(p.A&1)<<15
}

// UnpackBGRA5551 is the inverse of [BGRA5551.Pack].
func UnpackBGRA5551(w uint16) BGRA5551 {
	return BGRA5551{B: uint8(w & 0x1f), G: uint8(w >> 5 & 0x1f), R: uint8(w >> 10 & 0x1f), A: uint8(w >> 15)}
}

// Pack returns the 16-bit word for p: R bits 0-4, G 5-10, B 11-15.
func (p RGB565) Pack() uint16 {
	return uint16(p.R&0x1f) | uint16(p.G&0x3f)<<5 | uint16(p.B&0x1f)<<11
}

// UnpackRGB565 is the inverse of [RGB565.Pack].
func UnpackRGB565(w uint16) RGB565 {
	return RGB565{R: uint8(w & 0x1f), G: uint8(w >> 5 & 0x3f), B: uint8(w >> 11)}
}

// Pack returns the 16-bit word for p: B bits 0-4, G 5-10, R 11-15.
func (p BGR565) Pack() uint16 {
	return uint16(p.B&0x1f) | uint16(p.G&0x3f)<<5 | uint16(p.R&0x1f)<<11
}

// UnpackBGR565 is the inverse of [BGR565.Pack].
func UnpackBGR565(w uint16) BGR565 {
	return BGR565{B: uint8(w & 0x1f), G: uint8(w >> 5 & 0x3f), R: uint8(w >> 11)}
}

func getF32(b []byte) float32    { return math.Float32frombits(binary.LittleEndian.Uint32(b)) }
func putF32(b []byte, v float32) { binary.LittleEndian.PutUint32(b, math.Float32bits(v)) }

func getF16(b []byte) float16.Float16 {
	return float16.Frombits(binary.LittleEndian.Uint16(b))
}
func putF16(b []byte, v float16.Float16) { binary.LittleEndian.PutUint16(b, v.Bits()) }

func (p *RGBAF32) get(b []byte) {
	p.R, p.G, p.B, p.A = getF32(b[0:]), getF32(b[4:]), getF32(b[8:]), getF32(b[12:])
}
func (p RGBAF32) put(b []byte) {
	putF32(b[0:], p.R)
	putF32(b[4:], p.G)
	putF32(b[8:], p.B)
	putF32(b[12:], p.A)
}

func (p *BGRAF32) get(b []byte) {
	p.B, p.G, p.R, p.A = getF32(b[0:]), getF32(b[4:]), getF32(b[8:]), getF32(b[12:])
}
func (p BGRAF32) put(b []byte) {
	putF32(b[0:], p.B)
	putF32(b[4:], p.G)
	putF32(b[8:], p.R)
	putF32(b[12:], p.A)
}

func (p *RGBAF16) get(b []byte) {
	p.R, p.G, p.B, p.A = getF16(b[0:]), getF16(b[2:]), getF16(b[4:]), getF16(b[6:])
}
func (p RGBAF16) put(b []byte) {
	putF16(b[0:], p.R)
	putF16(b[2:], p.G)
	putF16(b[4:], p.B)
	putF16(b[6:], p.A)
}

func (p *BGRAF16) get(b []byte) {
	p.B, p.G, p.R, p.A = getF16(b[0:]), getF16(b[2:]), getF16(b[4:]), getF16(b[6:])
}
func (p BGRAF16) put(b []byte) {
	putF16(b[0:], p.B)
	putF16(b[2:], p.G)
	putF16(b[4:], p.R)
	putF16(b[6:], p.A)
}

func (p *RGBAU16) get(b []byte) {
	le := binary.LittleEndian
	p.R, p.G, p.B, p.A = le.Uint16(b[0:]), le.Uint16(b[2:]), le.Uint16(b[4:]), le.Uint16(b[6:])
}
func (p RGBAU16) put(b []byte) {
	le := binary.LittleEndian
	le.PutUint16(b[0:], p.R)
	le.PutUint16(b[2:], p.G)
	le.PutUint16(b[4:], p.B)
	le.PutUint16(b[6:], p.A)
}

func (p *BGRAU16) get(b []byte) {
	le := binary.LittleEndian
	p.B, p.G, p.R, p.A = le.Uint16(b[0:]), le.Uint16(b[2:]), le.Uint16(b[4:]), le.Uint16(b[6:])
}
func (p BGRAU16) put(b []byte) {
	le := binary.LittleEndian
	le.PutUint16(b[0:], p.B)
	le.PutUint16(b[2:], p.G)
	le.PutUint16(b[4:], p.R)
	le.PutUint16(b[6:], p.A)
}

func (p *RGBA8888) get(b []byte) { p.R, p.G, p.B, p.A = b[0], b[1], b[2], b[3] }
func (p RGBA8888) put(b []byte)  { b[0], b[1], b[2], b[3] = p.R, p.G, p.B, p.A }

func (p *BGRA8888) get(b []byte) { p.B, p.G, p.R, p.A = b[0], b[1], b[2], b[3] }
func (p BGRA8888) put(b []byte)  { b[0], b[1], b[2], b[3] = p.B, p.G, p.R, p.A }

func (p *RGBA4444) get(b []byte) { *p = UnpackRGBA4444(binary.LittleEndian.Uint16(b)) }
func (p RGBA4444) put(b []byte)  { binary.LittleEndian.PutUint16(b, p.Pack()) }

func (p *BGRA4444) get(b []byte) { *p = UnpackBGRA4444(binary.LittleEndian.Uint16(b)) }
func (p BGRA4444) put(b []byte)  { binary.LittleEndian.PutUint16(b, p.Pack()) }

func (p *RGBA5551) get(b []byte) { *p = UnpackRGBA5551(binary.LittleEndian.Uint16(b)) }
func (p RGBA5551) put(b []byte)  { binary.LittleEndian.PutUint16(b, p.Pack()) }

func (p *BGRA5551) get(b []byte) { *p = UnpackBGRA5551(binary.LittleEndian.Uint16(b)) }
func (p BGRA5551) put(b []byte)  { binary.LittleEndian.PutUint16(b, p.Pack()) }

func (p *RGB565) get(b []byte) { *p = UnpackRGB565(binary.LittleEndian.Uint16(b)) }
func (p RGB565) put(b []byte)  { binary.LittleEndian.PutUint16(b, p.Pack()) }

func (p *BGR565) get(b []byte) { *p = UnpackBGR565(binary.LittleEndian.Uint16(b)) }
func (p BGR565) put(b []byte)  { binary.LittleEndian.PutUint16(b, p.Pack()) }

func decodeAs[T Pixel, PT interface {
	*T
	get(b []byte)
}](b []byte) Pixel {
	var v T
	PT(&v).get(b)
	return v
}

// Decode reads one pixel of format from the start of b.
func Decode(format PixelFormat, b []byte) (Pixel, error) {
	if !format.IsConcrete() {
		return nil, fmt.Errorf("decode %v: %w", format, ErrUnsupportedFormat)
	}
	if len(b) < format.BytesPerPixel() {
		return nil, fmt.Errorf("decode %v: %w", format, ErrShortBuffer)
	}
	switch format {
	case FormatRGBAFloat32:
		return decodeAs[RGBAF32](b), nil
	case FormatBGRAFloat32:
		return decodeAs[BGRAF32](b), nil
	case FormatRGBAFloat16:
		return decodeAs[RGBAF16](b), nil
	case FormatBGRAFloat16:
		return decodeAs[BGRAF16](b), nil
	case FormatRGBAUnorm16:
		return decodeAs[RGBAU16](b), nil
	case FormatBGRAUnorm16:
		return decodeAs[BGRAU16](b), nil
	case FormatRGBA8888:
		return decodeAs[RGBA8888](b), nil
	case FormatBGRA8888:
		return decodeAs[BGRA8888](b), nil
	case FormatRGBA4444:
		return decodeAs[RGBA4444](b), nil
	case FormatBGRA4444:
		return decodeAs[BGRA4444](b), nil
	case FormatRGBA5551:
		return decodeAs[RGBA5551](b), nil
	case FormatBGRA5551:
		return decodeAs[BGRA5551](b), nil
	case FormatRGB565:
		return decodeAs[RGB565](b), nil
	default:
		return decodeAs[BGR565](b), nil
	}
}

// Encode writes p to the start of b in p's own format. Pointers to pixel
// values are accepted; nil pixels fail with ErrUnsupportedFormat.
func Encode(p Pixel, b []byte) error {
	p = pixelValue(p)
	if p == nil {
		return fmt.Errorf("encode nil pixel: %w", ErrUnsupportedFormat)
	}
	if len(b) < p.Format().BytesPerPixel() {
		return fmt.Errorf("encode %v: %w", p.Format(), ErrShortBuffer)
	}
	switch v := p.(type) {
	case RGBAF32:
		v.put(b)
	case BGRAF32:
		v.put(b)
	case RGBAF16:
		v.put(b)
	case BGRAF16:
		v.put(b)
	case RGBAU16:
		v.put(b)
	case BGRAU16:
		v.put(b)
	case RGBA8888:
		v.put(b)
	case BGRA8888:
		v.put(b)
	case RGBA4444:
		v.put(b)
	case BGRA4444:
		v.put(b)
	case RGBA5551:
		v.put(b)
	case BGRA5551:
		v.put(b)
	case RGB565:
		v.put(b)
	case BGR565:
		v.put(b)
	default:
		return fmt.Errorf("encode %T: %w", p, ErrUnsupportedFormat)
	}
	return nil
}

// pixelValue dereferences pointers to the concrete pixel types. It returns
// nil for nil interfaces and nil pointers.
func pixelValue(p Pixel) Pixel {
	switch v := p.(type) {
	case nil:
		return nil
	case *RGBAF32:
		if v == nil {
			return nil
		}
		return *v
	case *BGRAF32:
		if v == nil {
			return nil
		}
		return *v
	case *RGBAF16:
		if v == nil {
			return nil
		}
		return *v
	case *BGRAF16:
		if v == nil {
			return nil
		}
		return *v
	case *RGBAU16:
		if v == nil {
			return nil
		}
		return *v
	case *BGRAU16:
		if v == nil {
			return nil
		}
		return *v
	case *RGBA8888:
		if v == nil {
			return nil
		}
		return *v
	case *BGRA8888:
		if v == nil {
			return nil
		}
		return *v
	case *RGBA4444:
		if v == nil {
			return nil
		}
		return *v
	case *BGRA4444:
		if v == nil {
			return nil
		}
		return *v
	case *RGBA5551:
		if v == nil {
			return nil
		}
		return *v
	case *BGRA5551:
		if v == nil {
			return nil
		}
		return *v
	case *RGB565:
		if v == nil {
			return nil
		}
		return *v
	case *BGR565:
		if v == nil {
			return nil
		}
		return *v
	default:
		return p
	}
}
