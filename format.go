package pixconv

import "strings"

// PixelFormat identifies a concrete in-memory pixel layout, or a wildcard
// that is resolved against a source format by [Resolve].
type PixelFormat uint8

const (
	// FormatUnspecified leaves the choice of format to the producer.
	FormatUnspecified PixelFormat = iota

	// FormatRGBA requests the best RGBA-ordered member for the source's tier.
	FormatRGBA

	// FormatBGRA requests the best BGRA-ordered member for the source's tier.
	FormatBGRA

	// FormatRGBAFloat32 is stored (FLOAT32, LE) as R G B A, 16 bytes per pixel.
	FormatRGBAFloat32

	// FormatBGRAFloat32 is stored (FLOAT32, LE) as B G R A, 16 bytes per pixel.
	FormatBGRAFloat32

	// FormatRGBAFloat16 is stored (FLOAT16, LE) as R G B A, 8 bytes per pixel.
	FormatRGBAFloat16

	// FormatBGRAFloat16 is stored (FLOAT16, LE) as B G R A, 8 bytes per pixel.
	FormatBGRAFloat16

	// FormatRGBAUnorm16 is stored (UNORM16, LE) as R G B A, 8 bytes per pixel.
	FormatRGBAUnorm16

	// FormatBGRAUnorm16 is stored (UNORM16, LE) as B G R A, 8 bytes per pixel.
	FormatBGRAUnorm16

	// FormatRGBA8888 is stored as bytes R G B A.
	FormatRGBA8888

	// FormatBGRA8888 is stored as bytes B G R A.
	FormatBGRA8888

	// FormatRGBA4444 is a little-endian 16-bit word, R in the low nibble.
	FormatRGBA4444

	// FormatBGRA4444 is a little-endian 16-bit word, B in the low nibble.
	FormatBGRA4444

	// FormatRGBA5551 is a little-endian 16-bit word, R in bits 0-4 and A in bit 15.
	FormatRGBA5551

	// FormatBGRA5551 is a little-endian 16-bit word, B in bits 0-4 and A in bit 15.
	FormatBGRA5551

	// FormatRGB565 is a little-endian 16-bit word, R in bits 0-4, G in 5-10, B in 11-15.
	// It has no alpha channel and always reads as opaque.
	FormatRGB565

	// FormatBGR565 is a little-endian 16-bit word, B in bits 0-4, G in 5-10, R in 11-15.
	// It has no alpha channel and always reads as opaque.
	FormatBGR565

	// formatCount is the number of formats (for internal use).
	formatCount
)

// Tier is the storage class of a pixel format.
type Tier uint8

const (
	TierNone    Tier = iota // no storage; Auto and unknown formats
	TierFloat32             // 32-bit float channels
	TierFloat16             // 16-bit float channels
	TierUnorm16             // 16-bit normalized integer channels
	Tier8888                // 8-bit channels
	Tier4444                // 4-bit channels packed in 16 bits
	Tier5551                // 5-bit color and 1-bit alpha packed in 16 bits
	Tier565                 // 5/6/5-bit color, no alpha
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierFloat32:
		return "Float32"
	case TierFloat16:
		return "Float16"
	case TierUnorm16:
		return "Unorm16"
	case Tier8888:
		return "8888"
	case Tier4444:
		return "4444"
	case Tier5551:
		return "5551"
	case Tier565:
		return "565"
	default:
		return "None"
	}
}

// Order is the channel-order family of a pixel format.
type Order uint8

const (
	// OrderNone is used by FormatUnspecified.
	OrderNone Order = iota

	// OrderRGBA is the straight channel order.
	OrderRGBA

	// OrderBGRA is the alternate channel order used by native display formats.
	OrderBGRA
)

// String returns the order name.
func (o Order) String() string {
	switch o {
	case OrderRGBA:
		return "RGBA"
	case OrderBGRA:
		return "BGRA"
	default:
		return "None"
	}
}

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// Name is the canonical name used by String and ParseFormat.
	Name string

	// Tier is the storage class.
	Tier Tier

	// Order is the channel-order family.
	Order Order

	// BytesPerPixel is the storage size of one pixel. Zero for wildcards.
	BytesPerPixel int

	// HasAlpha reports whether an alpha sample is stored.
	HasAlpha bool

	// IsFloat reports whether samples are floating point.
	IsFloat bool

	// BitsPerChannel is the width of the widest stored channel.
	BitsPerChannel int
}

// formatInfoTable contains metadata for each format.
var formatInfoTable = [formatCount]FormatInfo{
	FormatUnspecified: {Name: "Unspecified"},
	FormatRGBA:        {Name: "RGBA", Order: OrderRGBA},
	FormatBGRA:        {Name: "BGRA", Order: OrderBGRA},
	FormatRGBAFloat32: {Name: "RGBAFloat32", Tier: TierFloat32, Order: OrderRGBA, BytesPerPixel: 16, HasAlpha: true, IsFloat: true, BitsPerChannel: 32},
	FormatBGRAFloat32: {Name: "BGRAFloat32", Tier: TierFloat32, Order: OrderBGRA, BytesPerPixel: 16, HasAlpha: true, IsFloat: true, BitsPerChannel: 32},
	FormatRGBAFloat16: {Name: "RGBAFloat16", Tier: TierFloat16, Order: OrderRGBA, BytesPerPixel: 8, HasAlpha: true, IsFloat: true, BitsPerChannel: 16},
	FormatBGRAFloat16: {Name: "BGRAFloat16", Tier: TierFloat16, Order: OrderBGRA, BytesPerPixel: 8, HasAlpha: true, IsFloat: true, BitsPerChannel: 16},
	FormatRGBAUnorm16: {Name: "RGBAUnorm16", Tier: TierUnorm16, Order: OrderRGBA, BytesPerPixel: 8, HasAlpha: true, BitsPerChannel: 16},
	FormatBGRAUnorm16: {Name: "BGRAUnorm16", Tier: TierUnorm16, Order: OrderBGRA, BytesPerPixel: 8, HasAlpha: true, BitsPerChannel: 16},
	FormatRGBA8888:    {Name: "RGBA8888", Tier: Tier8888, Order: OrderRGBA, BytesPerPixel: 4, HasAlpha: true, BitsPerChannel: 8},
	FormatBGRA8888:    {Name: "BGRA8888", Tier: Tier8888, Order: OrderBGRA, BytesPerPixel: 4, HasAlpha: true, BitsPerChannel: 8},
	FormatRGBA4444:    {Name: "RGBA4444", Tier: Tier4444, Order: OrderRGBA, BytesPerPixel: 2, HasAlpha: true, BitsPerChannel: 4},
	FormatBGRA4444:    {Name: "BGRA4444", Tier: Tier4444, Order: OrderBGRA, BytesPerPixel: 2, HasAlpha: true, BitsPerChannel: 4},
	FormatRGBA5551:    {Name: "RGBA5551", Tier: Tier5551, Order: OrderRGBA, BytesPerPixel: 2, HasAlpha: true, BitsPerChannel: 5},
	FormatBGRA5551:    {Name: "BGRA5551", Tier: Tier5551, Order: OrderBGRA, BytesPerPixel: 2, HasAlpha: true, BitsPerChannel: 5},
	FormatRGB565:      {Name: "RGB565", Tier: Tier565, Order: OrderRGBA, BytesPerPixel: 2, BitsPerChannel: 6},
	FormatBGR565:      {Name: "BGR565", Tier: Tier565, Order: OrderBGRA, BytesPerPixel: 2, BitsPerChannel: 6},
}

// familyTable maps (order, tier) to the concrete member of that family.
var familyTable = map[Order][Tier565 + 1]PixelFormat{
	OrderRGBA: {
		TierFloat32: FormatRGBAFloat32,
		TierFloat16: FormatRGBAFloat16,
		TierUnorm16: FormatRGBAUnorm16,
		Tier8888:    FormatRGBA8888,
		Tier4444:    FormatRGBA4444,
		Tier5551:    FormatRGBA5551,
		Tier565:     FormatRGB565,
	},
	OrderBGRA: {
		TierFloat32: FormatBGRAFloat32,
		TierFloat16: FormatBGRAFloat16,
		TierUnorm16: FormatBGRAUnorm16,
		Tier8888:    FormatBGRA8888,
		Tier4444:    FormatBGRA4444,
		Tier5551:    FormatBGRA5551,
		Tier565:     FormatBGR565,
	},
}

// Info returns the FormatInfo for this format.
// Unknown values return the zero FormatInfo.
func (f PixelFormat) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the storage size of one pixel.
func (f PixelFormat) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// Tier returns the storage class of the format.
func (f PixelFormat) Tier() Tier {
	return f.Info().Tier
}

// Order returns the channel-order family of the format.
func (f PixelFormat) Order() Order {
	return f.Info().Order
}

// HasAlpha returns true if the format stores an alpha sample.
func (f PixelFormat) HasAlpha() bool {
	return f.Info().HasAlpha
}

// IsValid returns true if the format is a known value.
func (f PixelFormat) IsValid() bool {
	return f < formatCount
}

// IsWildcard returns true for FormatRGBA and FormatBGRA.
func (f PixelFormat) IsWildcard() bool {
	return f == FormatRGBA || f == FormatBGRA
}

// IsConcrete returns true if the format names an actual memory layout.
func (f PixelFormat) IsConcrete() bool {
	return f.IsValid() && f.Tier() != TierNone
}

// Anchor returns the anchor format that f narrows from: the float32 member
// of f's order for floating tiers, the norm16 member for integer tiers.
// Non-concrete formats return FormatUnspecified.
func (f PixelFormat) Anchor() PixelFormat {
	info := f.Info()
	if info.Tier == TierNone {
		return FormatUnspecified
	}
	if info.IsFloat {
		return familyTable[info.Order][TierFloat32]
	}
	return familyTable[info.Order][TierUnorm16]
}

// WithOrder returns the member of order o that shares f's tier.
// Returns f unchanged if f is not concrete or o has no members.
func (f PixelFormat) WithOrder(o Order) PixelFormat {
	family, ok := familyTable[o]
	if !ok || !f.IsConcrete() {
		return f
	}
	return family[f.Tier()]
}

// RowBytes returns the unpadded byte length of width pixels.
func (f PixelFormat) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// AlignedRowBytes returns RowBytes padded up to a 4-byte boundary.
func (f PixelFormat) AlignedRowBytes(width int) int {
	return (f.RowBytes(width) + 3) &^ 3
}

// String returns the canonical format name.
func (f PixelFormat) String() string {
	if f >= formatCount {
		return "Unknown"
	}
	return formatInfoTable[f].Name
}

// ParseFormat returns the format with the given name, ignoring case.
func ParseFormat(name string) (PixelFormat, error) {
	for f := range formatCount {
		if strings.EqualFold(formatInfoTable[f].Name, name) {
			return f, nil
		}
	}
	return FormatUnspecified, &FormatError{Name: name}
}

// BytesPerPixel returns the number of bytes needed to store one pixel of
// format. Wildcards, FormatUnspecified and unknown values return 0; resolve
// wildcards before sizing buffers.
func BytesPerPixel(format PixelFormat) int {
	return format.BytesPerPixel()
}

// Resolve returns the format a decoder should actually produce when asked for
// target and holding data in source.
//
//   - FormatUnspecified yields source.
//   - A wildcard yields the member of the requested order with source's tier,
//     or source itself when it has no counterpart there.
//   - A concrete target is returned unchanged.
func Resolve(target, source PixelFormat) PixelFormat {
	switch target {
	case FormatUnspecified:
		return source
	case FormatRGBA, FormatBGRA:
		if !source.IsConcrete() {
			Logger().Debug("pixconv: resolve declined", "target", target, "source", source)
			return source
		}
		resolved := source.WithOrder(target.Order())
		Logger().Debug("pixconv: resolved wildcard", "target", target, "source", source, "result", resolved)
		return resolved
	default:
		return target
	}
}
