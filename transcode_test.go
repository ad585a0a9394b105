package pixconv

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"testing"
)

// samplePixels returns n deterministic pixels of format f.
func samplePixels(t testing.TB, f PixelFormat, n int) []Pixel {
	t.Helper()
	rng := rand.New(rand.NewPCG(1, uint64(f)))
	out := make([]Pixel, n)
	for i := range out {
		seed := RGBAU16{
			R: uint16(rng.Uint32()),
			G: uint16(rng.Uint32()),
			B: uint16(rng.Uint32()),
			A: uint16(rng.Uint32()),
		}
		switch i {
		case 0:
			seed.A = 0
		case 1:
			seed.A = 0xffff
		}
		p, err := Convert(seed, f, false)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = p
	}
	return out
}

func encodeAll(t testing.TB, f PixelFormat, pixels []Pixel) []byte {
	t.Helper()
	bpp := f.BytesPerPixel()
	b := make([]byte, bpp*len(pixels))
	for i, p := range pixels {
		if err := Encode(p, b[i*bpp:]); err != nil {
			t.Fatal(err)
		}
	}
	return b
}

func TestTranscodeBytes_MatchesScalar(t *testing.T) {
	const n = 33
	for _, sf := range concreteFormats {
		src := samplePixels(t, sf, n)
		srcBytes := encodeAll(t, sf, src)
		for _, df := range concreteFormats {
			for _, premul := range []bool{false, true} {
				dst := make([]byte, df.RowBytes(n))
				if err := TranscodeBytes(dst, df, srcBytes, sf, n, premul); err != nil {
					t.Fatalf("%v -> %v: %v", sf, df, err)
				}
				for i := range n {
					got, err := Decode(df, dst[i*df.BytesPerPixel():])
					if err != nil {
						t.Fatal(err)
					}
					want, _ := Convert(src[i], df, premul)
					if got != want {
						t.Fatalf("%v -> %v (premultiply=%v) [%d] = %+v, want %+v", sf, df, premul, i, got, want)
					}
				}
			}
		}
	}
}

func TestTranscode_Typed(t *testing.T) {
	src := make([]RGBA8888, 64)
	for i := range src {
		src[i] = RGBA8888{R: uint8(i * 4), G: uint8(255 - i), B: uint8(i), A: uint8(i * 3)}
	}

	dst := make([]BGRA4444, len(src))
	if n := Transcode(dst, src, false); n != len(src) {
		t.Fatalf("Transcode() = %d, want %d", n, len(src))
	}
	for i := range src {
		want, _ := Convert(src[i], FormatBGRA4444, false)
		if dst[i] != want {
			t.Errorf("[%d] = %+v, want %+v", i, dst[i], want)
		}
	}

	fdst := make([]RGBAF32, len(src))
	Transcode(fdst, src, true)
	for i := range src {
		want, _ := Convert(src[i], FormatRGBAFloat32, true)
		if fdst[i] != want {
			t.Errorf("premultiplied [%d] = %+v, want %+v", i, fdst[i], want)
		}
	}
}

func TestTranscode_ShortDestination(t *testing.T) {
	src := []RGB565{{R: 1}, {G: 2}, {B: 3}}
	dst := make([]RGBAU16, 2)
	if n := Transcode(dst, src, false); n != 2 {
		t.Errorf("Transcode() = %d, want 2", n)
	}
	if dst[1] != src[1].RGBAU16() {
		t.Errorf("dst[1] = %+v", dst[1])
	}
}

func TestTranscodeBytes_SameFormatCopies(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	dst := make([]byte, 8)
	if err := TranscodeBytes(dst, FormatBGRA8888, src, FormatBGRA8888, 2, false); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(dst, src) {
		t.Errorf("dst = % x, want % x", dst, src)
	}
}

func TestTranscodeBytes_Errors(t *testing.T) {
	src := make([]byte, 16)
	dst := bytes.Repeat([]byte{0xaa}, 8)

	tests := []struct {
		name      string
		dstFormat PixelFormat
		srcFormat PixelFormat
		count     int
		want      error
	}{
		{"wildcard destination", FormatBGRA, FormatRGBA8888, 1, ErrUnsupportedConversion},
		{"unspecified source", FormatRGBA8888, FormatUnspecified, 1, ErrUnsupportedConversion},
		{"short source", FormatRGBA8888, FormatRGBAFloat32, 2, ErrShortBuffer},
		{"short destination", FormatRGBAUnorm16, FormatRGBA8888, 2, ErrShortBuffer},
		{"negative count", FormatRGBA8888, FormatRGBA8888, -1, ErrShortBuffer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TranscodeBytes(dst, tt.dstFormat, src, tt.srcFormat, tt.count, false)
			if !errors.Is(err, tt.want) {
				t.Errorf("TranscodeBytes() error = %v, want %v", err, tt.want)
			}
			if !bytes.Equal(dst, bytes.Repeat([]byte{0xaa}, 8)) {
				t.Error("destination modified on failure")
			}
		})
	}
}

func TestTranscodeBytes_ZeroCount(t *testing.T) {
	if err := TranscodeBytes(nil, FormatRGB565, nil, FormatRGBAFloat32, 0, true); err != nil {
		t.Errorf("TranscodeBytes(0) = %v", err)
	}
}

func BenchmarkTranscodeBytes(b *testing.B) {
	pairs := []struct{ dst, src PixelFormat }{
		{FormatBGRA8888, FormatRGBA8888},
		{FormatBGRA4444, FormatRGBA8888},
		{FormatRGBAFloat32, FormatRGBAUnorm16},
		{FormatRGBAFloat16, FormatRGBA8888},
	}
	const n = 1920
	for _, p := range pairs {
		b.Run(p.src.String()+"->"+p.dst.String(), func(b *testing.B) {
			src := make([]byte, p.src.RowBytes(n))
			dst := make([]byte, p.dst.RowBytes(n))
			fn, err := Transcoder(p.dst, p.src)
			if err != nil {
				b.Fatal(err)
			}
			b.SetBytes(int64(len(src)))
			b.ResetTimer()
			for range b.N {
				fn(dst, src, n, true)
			}
		})
	}
}

func TestTranscodeBytes_LongRow(t *testing.T) {
	// Longer than one staging pass, with a partial final pass.
	const n = 3*rowChunk + 5
	for _, pair := range [][2]PixelFormat{
		{FormatBGRA5551, FormatRGBAFloat32},
		{FormatRGBAFloat16, FormatBGR565},
	} {
		df, sf := pair[0], pair[1]
		src := samplePixels(t, sf, n)
		dst := make([]byte, df.RowBytes(n))
		if err := TranscodeBytes(dst, df, encodeAll(t, sf, src), sf, n, true); err != nil {
			t.Fatal(err)
		}
		for i := range n {
			got, _ := Decode(df, dst[i*df.BytesPerPixel():])
			want, _ := Convert(src[i], df, true)
			if got != want {
				t.Fatalf("%v -> %v [%d] = %+v, want %+v", sf, df, i, got, want)
			}
		}
	}
}
