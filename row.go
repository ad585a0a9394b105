package pixconv

// Row conversion stages pixels through a fixed-size anchor buffer on the
// stack. Sources are widened to the RGBA-order anchor of the destination's
// family; BGRA destinations swizzle while narrowing.

// rowChunk is the number of pixels staged per pass.
const rowChunk = 64

// convertRow converts count pixels of srcFormat in src into dstFormat in dst.
// Both formats are concrete and both buffers are large enough.
func convertRow(dst []byte, dstFormat PixelFormat, src []byte, srcFormat PixelFormat, count int, premultiply bool) {
	if dstFormat == srcFormat && !premultiply {
		n := dstFormat.RowBytes(count)
		copy(dst[:n], src[:n])
		return
	}
	sb, db := srcFormat.BytesPerPixel(), dstFormat.BytesPerPixel()

	if dstFormat.Info().IsFloat {
		var buf [rowChunk]RGBAF32
		for off := 0; off < count; off += rowChunk {
			a := buf[:min(rowChunk, count-off)]
			widenF32(srcFormat, src[off*sb:], a)
			if premultiply {
				for i := range a {
					a[i] = a[i].Premultiply()
				}
			}
			narrowF32(dstFormat, dst[off*db:], a)
		}
		return
	}

	var buf [rowChunk]RGBAU16
	for off := 0; off < count; off += rowChunk {
		a := buf[:min(rowChunk, count-off)]
		widenU16(srcFormat, src[off*sb:], a)
		if premultiply {
			for i := range a {
				a[i] = a[i].Premultiply()
			}
		}
		narrowU16(dstFormat, dst[off*db:], a)
	}
}

// widenF32 decodes len(out) pixels of format from src into the RGBAF32 anchor.
func widenF32(format PixelFormat, src []byte, out []RGBAF32) {
	bpp := format.BytesPerPixel()
	switch format {
	case FormatRGBAFloat32:
		var v RGBAF32
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v
		}
	case FormatBGRAFloat32:
		var v BGRAF32
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAF32()
		}
	case FormatRGBAFloat16:
		var v RGBAF16
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAF32()
		}
	case FormatBGRAFloat16:
		var v BGRAF16
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAF32()
		}
	case FormatRGBAUnorm16:
		var v RGBAU16
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAF32()
		}
	case FormatBGRAUnorm16:
		var v BGRAU16
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAF32()
		}
	case FormatRGBA8888:
		var v RGBA8888
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAF32()
		}
	case FormatBGRA8888:
		var v BGRA8888
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAF32()
		}
	case FormatRGBA4444:
		var v RGBA4444
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAF32()
		}
	case FormatBGRA4444:
		var v BGRA4444
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAF32()
		}
	case FormatRGBA5551:
		var v RGBA5551
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAF32()
		}
	case FormatBGRA5551:
		var v BGRA5551
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAF32()
		}
	case FormatRGB565:
		var v RGB565
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAF32()
		}
	case FormatBGR565:
		var v BGR565
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAF32()
		}
	}
}

// widenU16 decodes len(out) pixels of format from src into the RGBAU16 anchor.
func widenU16(format PixelFormat, src []byte, out []RGBAU16) {
	bpp := format.BytesPerPixel()
	switch format {
	case FormatRGBAFloat32:
		var v RGBAF32
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAU16()
		}
	case FormatBGRAFloat32:
		var v BGRAF32
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAU16()
		}
	case FormatRGBAFloat16:
		var v RGBAF16
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAU16()
		}
	case FormatBGRAFloat16:
		var v BGRAF16
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAU16()
		}
	case FormatRGBAUnorm16:
		var v RGBAU16
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v
		}
	case FormatBGRAUnorm16:
		var v BGRAU16
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAU16()
		}
	case FormatRGBA8888:
		var v RGBA8888
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAU16()
		}
	case FormatBGRA8888:
		var v BGRA8888
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAU16()
		}
	case FormatRGBA4444:
		var v RGBA4444
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAU16()
		}
	case FormatBGRA4444:
		var v BGRA4444
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAU16()
		}
	case FormatRGBA5551:
		var v RGBA5551
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAU16()
		}
	case FormatBGRA5551:
		var v BGRA5551
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAU16()
		}
	case FormatRGB565:
		var v RGB565
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAU16()
		}
	case FormatBGR565:
		var v BGR565
		for i := range out {
			v.get(src[i*bpp:])
			out[i] = v.RGBAU16()
		}
	}
}

// narrowF32 narrows the RGBAF32 pixels of in into format at the start of dst.
func narrowF32(format PixelFormat, dst []byte, in []RGBAF32) {
	bpp := format.BytesPerPixel()
	switch format {
	case FormatRGBAFloat32:
		var v RGBAF32
		for i, a := range in {
			v.narrow(a)
			v.put(dst[i*bpp:])
		}
	case FormatBGRAFloat32:
		var v BGRAF32
		for i, a := range in {
			v.narrow(a.BGRAF32())
			v.put(dst[i*bpp:])
		}
	case FormatRGBAFloat16:
		var v RGBAF16
		for i, a := range in {
			v.narrow(a)
			v.put(dst[i*bpp:])
		}
	case FormatBGRAFloat16:
		var v BGRAF16
		for i, a := range in {
			v.narrow(a.BGRAF32())
			v.put(dst[i*bpp:])
		}
	}
}

// narrowU16 narrows the RGBAU16 pixels of in into format at the start of dst.
func narrowU16(format PixelFormat, dst []byte, in []RGBAU16) {
	bpp := format.BytesPerPixel()
	switch format {
	case FormatRGBAUnorm16:
		var v RGBAU16
		for i, a := range in {
			v.narrow(a)
			v.put(dst[i*bpp:])
		}
	case FormatBGRAUnorm16:
		var v BGRAU16
		for i, a := range in {
			v.narrow(a.BGRAU16())
			v.put(dst[i*bpp:])
		}
	case FormatRGBA8888:
		var v RGBA8888
		for i, a := range in {
			v.narrow(a)
			v.put(dst[i*bpp:])
		}
	case FormatBGRA8888:
		var v BGRA8888
		for i, a := range in {
			v.narrow(a.BGRAU16())
			v.put(dst[i*bpp:])
		}
	case FormatRGBA4444:
		var v RGBA4444
		for i, a := range in {
			v.narrow(a)
			v.put(dst[i*bpp:])
		}
	case FormatBGRA4444:
		var v BGRA4444
		for i, a := range in {
			v.narrow(a.BGRAU16())
			v.put(dst[i*bpp:])
		}
	case FormatRGBA5551:
		var v RGBA5551
		for i, a := range in {
			v.narrow(a)
			v.put(dst[i*bpp:])
		}
	case FormatBGRA5551:
		var v BGRA5551
		for i, a := range in {
			v.narrow(a.BGRAU16())
			v.put(dst[i*bpp:])
		}
	case FormatRGB565:
		var v RGB565
		for i, a := range in {
			v.narrow(a)
			v.put(dst[i*bpp:])
		}
	case FormatBGR565:
		var v BGR565
		for i, a := range in {
			v.narrow(a.BGRAU16())
			v.put(dst[i*bpp:])
		}
	}
}
