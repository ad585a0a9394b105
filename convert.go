package pixconv

import "fmt"

// Convert returns p converted to the concrete format to.
//
// The value is routed through to's anchor: the float32 anchor when to is a
// floating tier, the norm16 anchor otherwise. With premultiply set, color
// channels are multiplied by alpha at the anchor before narrowing.
//
// The result is boxed in the Pixel interface. Use the destination type's
// Load method to convert without allocating.
func Convert(p Pixel, to PixelFormat, premultiply bool) (Pixel, error) {
	if p = pixelValue(p); p == nil {
		return nil, fmt.Errorf("convert nil pixel to %v: %w", to, ErrUnsupportedFormat)
	}
	switch to {
	case FormatRGBAFloat32:
		var v RGBAF32
		v.Load(p, premultiply)
		return v, nil
	case FormatBGRAFloat32:
		var v BGRAF32
		v.Load(p, premultiply)
		return v, nil
	case FormatRGBAFloat16:
		var v RGBAF16
		v.Load(p, premultiply)
		return v, nil
	case FormatBGRAFloat16:
		var v BGRAF16
		v.Load(p, premultiply)
		return v, nil
	case FormatRGBAUnorm16:
		var v RGBAU16
		v.Load(p, premultiply)
		return v, nil
	case FormatBGRAUnorm16:
		var v BGRAU16
		v.Load(p, premultiply)
		return v, nil
	case FormatRGBA8888:
		var v RGBA8888
		v.Load(p, premultiply)
		return v, nil
	case FormatBGRA8888:
		var v BGRA8888
		v.Load(p, premultiply)
		return v, nil
	case FormatRGBA4444:
		var v RGBA4444
		v.Load(p, premultiply)
		return v, nil
	case FormatBGRA4444:
		var v BGRA4444
		v.Load(p, premultiply)
		return v, nil
	case FormatRGBA5551:
		var v RGBA5551
		v.Load(p, premultiply)
		return v, nil
	case FormatBGRA5551:
		var v BGRA5551
		v.Load(p, premultiply)
		return v, nil
	case FormatRGB565:
		var v RGB565
		v.Load(p, premultiply)
		return v, nil
	case FormatBGR565:
		var v BGR565
		v.Load(p, premultiply)
		return v, nil
	default:
		return nil, fmt.Errorf("convert %v to %v: %w", p.Format(), to, ErrUnsupportedConversion)
	}
}
