// Package pixconv converts raster pixel data between a fixed catalogue of
// in-memory color formats.
//
// # Formats
//
// Every [PixelFormat] belongs to a storage tier (float32, float16, norm16,
// 8888, 4444, 5551, 565) and a channel-order family (RGBA or BGRA).
// [FormatRGBA] and [FormatBGRA] are wildcards: [Resolve] maps them onto the
// member of that family matching a source's tier.
//
// # Conversion
//
// Each pixel type converts to four anchors: [RGBAF32], [BGRAF32], [RGBAU16]
// and [BGRAU16]. A destination narrows from the anchor of its own order,
// float32 for floating tiers and norm16 for integer tiers, so any-to-any
// conversion is a widen followed by a narrow:
//
//	p := pixconv.RGBA8888{R: 0xff, G: 0x80, B: 0x00, A: 0xff}
//	q, _ := pixconv.Convert(p, pixconv.FormatBGRA4444, false)
//
// Alpha premultiplication happens at the anchor, between the two steps.
//
// # Bulk transcoding
//
// [Transcode] converts typed slices; [TranscodeBytes] and [Transcoder]
// convert raw little-endian buffers and are what the image package uses
// row by row.
//
// # Architecture
//
//   - pixconv: formats, pixel types, conversion, transcoding
//   - image: image buffers, decoding into a requested format
//   - gpu: texture format mapping and upload preparation
//   - internal/parallel: worker pool for row-parallel conversion
//   - internal/cache: LRU cache behind gpu.UploadCache
package pixconv
