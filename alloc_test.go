package pixconv

import (
	"errors"
	"testing"
)

func skipAllocs(t *testing.T) {
	t.Helper()
	if raceEnabled {
		t.Skip("allocation counts are not stable under the race detector")
	}
}

func allocPixels(n int) ([]RGBA8888, []byte) {
	src := make([]RGBA8888, n)
	raw := make([]byte, n*4)
	for i := range src {
		src[i] = RGBA8888{R: uint8(i), G: uint8(i * 7), B: uint8(255 - i), A: uint8(i * 3)}
		src[i].put(raw[i*4:])
	}
	return src, raw
}

func TestTranscode_NoAllocs(t *testing.T) {
	skipAllocs(t)
	src, _ := allocPixels(256)
	dst := make([]BGRA4444, len(src))

	if n := testing.AllocsPerRun(50, func() { Transcode(dst, src, true) }); n != 0 {
		t.Errorf("Transcode allocs = %v, want 0", n)
	}
}

func TestRowFunc_NoAllocs(t *testing.T) {
	skipAllocs(t)
	_, raw := allocPixels(256)

	tests := []struct {
		dst PixelFormat
		src PixelFormat
	}{
		{FormatBGRA4444, FormatRGBA8888},
		{FormatRGBAFloat16, FormatRGBA8888},
		{FormatBGR565, FormatRGBA8888},
		{FormatRGBA8888, FormatRGBA8888},
	}
	for _, tt := range tests {
		t.Run(tt.src.String()+"->"+tt.dst.String(), func(t *testing.T) {
			fn, err := Transcoder(tt.dst, tt.src)
			if err != nil {
				t.Fatal(err)
			}
			dst := make([]byte, tt.dst.RowBytes(256))
			if n := testing.AllocsPerRun(50, func() { fn(dst, raw, 256, true) }); n != 0 {
				t.Errorf("RowFunc allocs = %v, want 0", n)
			}
			if n := testing.AllocsPerRun(50, func() {
				_ = TranscodeBytes(dst, tt.dst, raw, tt.src, 256, false)
			}); n != 0 {
				t.Errorf("TranscodeBytes allocs = %v, want 0", n)
			}
		})
	}
}

func TestLoad_NoAllocs(t *testing.T) {
	skipAllocs(t)
	var src Pixel = RGBA8888{R: 200, G: 100, B: 50, A: 128}
	var q BGRA4444
	var f RGBAF16

	n := testing.AllocsPerRun(100, func() {
		q.Load(src, true)
		f.Load(src, false)
	})
	if n != 0 {
		t.Errorf("Load allocs = %v, want 0", n)
	}
}

func TestConvert_SingleBox(t *testing.T) {
	skipAllocs(t)
	var src Pixel = RGBA8888{R: 200, G: 100, B: 50, A: 128}

	// The result is returned in an interface; nothing else is allocated.
	n := testing.AllocsPerRun(100, func() {
		_, _ = Convert(src, FormatRGBAFloat32, true)
	})
	if n > 1 {
		t.Errorf("Convert allocs = %v, want at most 1", n)
	}
}

func TestConvert_Nil(t *testing.T) {
	var nilPtr *RGBA8888
	for _, p := range []Pixel{nil, nilPtr} {
		if _, err := Convert(p, FormatRGBA8888, false); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Convert(%#v) error = %v, want ErrUnsupportedFormat", p, err)
		}
	}
}

func TestConvert_Pointer(t *testing.T) {
	p := &RGBA8888{R: 1, G: 2, B: 3, A: 4}
	got, err := Convert(p, FormatBGRA8888, false)
	if err != nil {
		t.Fatal(err)
	}
	if want := (BGRA8888{B: 3, G: 2, R: 1, A: 4}); got != want {
		t.Errorf("Convert(&p) = %v, want %v", got, want)
	}
}
