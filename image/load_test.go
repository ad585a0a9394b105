package image

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/pixconv"
)

// fakeSource serves rows from memory and records the order they were read.
type fakeSource struct {
	width, height, depth int
	rows                 [][]byte
	reads                []int
	failAt               int
}

var errRead = errors.New("read failed")

func (s *fakeSource) Width() int  { return s.width }
func (s *fakeSource) Height() int { return s.height }
func (s *fakeSource) Depth() int  { return s.depth }

func (s *fakeSource) ReadRow(y int, row []byte) error {
	s.reads = append(s.reads, y)
	if s.failAt >= 0 && y == s.failAt {
		return errRead
	}
	copy(row, s.rows[y])
	return nil
}

func newFake8(w, h int) *fakeSource {
	s := &fakeSource{width: w, height: h, depth: 8, failAt: -1}
	for y := range h {
		row := make([]byte, w*4)
		for x := range w {
			row[x*4+0] = byte(x * 10)
			row[x*4+1] = byte(y * 20)
			row[x*4+2] = byte(x + y)
			row[x*4+3] = byte(255 - x)
		}
		s.rows = append(s.rows, row)
	}
	return s
}

func newFake16(w, h int) *fakeSource {
	s := &fakeSource{width: w, height: h, depth: 16, failAt: -1}
	for y := range h {
		row := make([]byte, w*8)
		for x := range w {
			binary.LittleEndian.PutUint16(row[x*8+0:], uint16(x*1000))
			binary.LittleEndian.PutUint16(row[x*8+2:], uint16(y*3000))
			binary.LittleEndian.PutUint16(row[x*8+4:], 0x1234)
			binary.LittleEndian.PutUint16(row[x*8+6:], 0xffff)
		}
		s.rows = append(s.rows, row)
	}
	return s
}

func TestNativeFormat(t *testing.T) {
	tests := []struct {
		depth   int
		want    pixconv.PixelFormat
		wantErr error
	}{
		{8, pixconv.FormatRGBA8888, nil},
		{16, pixconv.FormatRGBAUnorm16, nil},
		{4, pixconv.FormatUnspecified, pixconv.ErrUnsupportedSourceDepth},
		{32, pixconv.FormatUnspecified, pixconv.ErrUnsupportedSourceDepth},
	}
	for _, tt := range tests {
		got, err := NativeFormat(tt.depth)
		if got != tt.want || !errors.Is(err, tt.wantErr) {
			t.Errorf("NativeFormat(%d) = %v, %v; want %v, %v", tt.depth, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestLoad_UnsupportedDepth(t *testing.T) {
	src := &fakeSource{width: 2, height: 2, depth: 4, failAt: -1}
	if _, err := Load(src); !errors.Is(err, pixconv.ErrUnsupportedSourceDepth) {
		t.Errorf("Load() error = %v, want ErrUnsupportedSourceDepth", err)
	}
	if len(src.reads) != 0 {
		t.Errorf("rows read before depth check: %v", src.reads)
	}
}

func TestLoad_InvalidDimensions(t *testing.T) {
	src := &fakeSource{width: 0, height: 2, depth: 8, failAt: -1}
	if _, err := Load(src); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Load() error = %v, want ErrInvalidDimensions", err)
	}
}

func TestLoad_DirectCopy(t *testing.T) {
	src := newFake8(3, 4)
	img, err := Load(src)
	if err != nil {
		t.Fatal(err)
	}
	if img.Format() != pixconv.FormatRGBA8888 {
		t.Errorf("Format() = %v, want RGBA8888", img.Format())
	}
	if img.Stride() != 12 {
		t.Errorf("Stride() = %d, want 12", img.Stride())
	}
	for y := range 4 {
		if !bytes.Equal(img.Row(y), src.rows[y]) {
			t.Errorf("row %d = %v, want %v", y, img.Row(y), src.rows[y])
		}
	}
	if img.Premultiplied() {
		t.Error("Premultiplied() = true")
	}
}

func TestLoad_RowOrder(t *testing.T) {
	for _, opts := range [][]Option{
		nil,
		{WithFormat(pixconv.FormatBGRA)},
		{WithFormat(pixconv.FormatBGRA), WithWorkers(3)},
	} {
		src := newFake8(2, 5)
		if _, err := Load(src, opts...); err != nil {
			t.Fatal(err)
		}
		for i, y := range src.reads {
			if y != i {
				t.Fatalf("reads = %v, want 0..4 in order", src.reads)
			}
		}
		if len(src.reads) != 5 {
			t.Errorf("read %d rows, want 5", len(src.reads))
		}
	}
}

func TestLoad_Wildcard(t *testing.T) {
	tests := []struct {
		name   string
		src    *fakeSource
		format pixconv.PixelFormat
		want   pixconv.PixelFormat
	}{
		{"8 to bgra", newFake8(3, 2), pixconv.FormatBGRA, pixconv.FormatBGRA8888},
		{"8 to rgba", newFake8(3, 2), pixconv.FormatRGBA, pixconv.FormatRGBA8888},
		{"16 to bgra", newFake16(3, 2), pixconv.FormatBGRA, pixconv.FormatBGRAUnorm16},
		{"16 to rgba", newFake16(3, 2), pixconv.FormatRGBA, pixconv.FormatRGBAUnorm16},
		{"8 to 565", newFake8(3, 2), pixconv.FormatRGB565, pixconv.FormatRGB565},
		{"16 to float", newFake16(3, 2), pixconv.FormatBGRAFloat32, pixconv.FormatBGRAFloat32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Load(tt.src, WithFormat(tt.format))
			if err != nil {
				t.Fatal(err)
			}
			if img.Format() != tt.want {
				t.Fatalf("Format() = %v, want %v", img.Format(), tt.want)
			}

			native, _ := NativeFormat(tt.src.depth)
			for y := range tt.src.height {
				for x := range tt.src.width {
					bpp := native.BytesPerPixel()
					p, err := pixconv.Decode(native, tt.src.rows[y][x*bpp:])
					if err != nil {
						t.Fatal(err)
					}
					want, _ := pixconv.Convert(p, tt.want, false)
					if got := img.At(x, y); got != want {
						t.Errorf("At(%d, %d) = %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestLoad_Premultiply(t *testing.T) {
	src := newFake8(4, 3)
	img, err := Load(src, WithPremultiply(true))
	if err != nil {
		t.Fatal(err)
	}
	if img.Format() != pixconv.FormatRGBA8888 {
		t.Errorf("Format() = %v, want RGBA8888", img.Format())
	}
	if !img.Premultiplied() {
		t.Error("Premultiplied() = false")
	}
	p, _ := pixconv.Decode(pixconv.FormatRGBA8888, src.rows[1][4:])
	want, _ := pixconv.Convert(p, pixconv.FormatRGBA8888, true)
	if got := img.At(1, 1); got != want {
		t.Errorf("At(1, 1) = %v, want %v", got, want)
	}
}

func TestLoad_Parallel(t *testing.T) {
	seq, err := Load(newFake16(31, 17), WithFormat(pixconv.FormatBGRA5551), WithPremultiply(true))
	if err != nil {
		t.Fatal(err)
	}
	par, err := Load(newFake16(31, 17), WithFormat(pixconv.FormatBGRA5551), WithPremultiply(true), WithWorkers(4))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(seq.Data(), par.Data()) {
		t.Error("parallel load differs from sequential")
	}
}

func TestLoad_ReadError(t *testing.T) {
	for _, opts := range [][]Option{
		nil,
		{WithFormat(pixconv.FormatBGRA)},
		{WithFormat(pixconv.FormatBGRA), WithWorkers(2)},
	} {
		src := newFake8(2, 4)
		src.failAt = 2
		if _, err := Load(src, opts...); !errors.Is(err, errRead) {
			t.Errorf("Load() error = %v, want errRead", err)
		}
	}
}

func TestLoad_CustomPool(t *testing.T) {
	pool := NewPool(4)
	if _, err := Load(newFake8(8, 2), WithFormat(pixconv.FormatBGRA), WithPool(pool)); err != nil {
		t.Fatal(err)
	}
	if pool.Len() != 1 {
		t.Errorf("pool.Len() = %d, want 1 (row buffer returned)", pool.Len())
	}
}

func makeNRGBA(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 60), B: 99, A: uint8(100 + x)})
		}
	}
	return img
}

func TestFromStdImage(t *testing.T) {
	src := FromStdImage(makeNRGBA(3, 2))
	if src.Width() != 3 || src.Height() != 2 || src.Depth() != 8 {
		t.Fatalf("got %dx%d depth %d", src.Width(), src.Height(), src.Depth())
	}
	row := make([]byte, 12)
	if err := src.ReadRow(1, row); err != nil {
		t.Fatal(err)
	}
	want := []byte{0, 60, 99, 100, 40, 60, 99, 101, 80, 60, 99, 102}
	if !bytes.Equal(row, want) {
		t.Errorf("row = %v, want %v", row, want)
	}
	if err := src.ReadRow(2, row); !errors.Is(err, ErrRowOutOfRange) {
		t.Errorf("ReadRow(2) error = %v, want ErrRowOutOfRange", err)
	}
}

func TestFromStdImage_Sixteen(t *testing.T) {
	img := image.NewNRGBA64(image.Rect(0, 0, 2, 1))
	img.SetNRGBA64(1, 0, color.NRGBA64{R: 0x0102, G: 0x0304, B: 0x0506, A: 0x0708})
	src := FromStdImage(img)
	if src.Depth() != 16 {
		t.Fatalf("Depth() = %d, want 16", src.Depth())
	}
	row := make([]byte, 16)
	if err := src.ReadRow(0, row); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x02, 0x01, 0x04, 0x03, 0x06, 0x05, 0x08, 0x07}
	if !bytes.Equal(row[8:], want) {
		t.Errorf("pixel bytes = %x, want %x", row[8:], want)
	}
}

func TestFromStdImage_Gray(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 1, 1))
	g.SetGray(0, 0, color.Gray{Y: 77})
	row := make([]byte, 4)
	if err := FromStdImage(g).ReadRow(0, row); err != nil {
		t.Fatal(err)
	}
	if want := []byte{77, 77, 77, 255}; !bytes.Equal(row, want) {
		t.Errorf("row = %v, want %v", row, want)
	}
}

func TestDecode_PNG(t *testing.T) {
	src := makeNRGBA(5, 3)
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	img, err := DecodeBytes(buf.Bytes(), WithFormat(pixconv.FormatBGRA))
	if err != nil {
		t.Fatal(err)
	}
	if img.Format() != pixconv.FormatBGRA8888 {
		t.Fatalf("Format() = %v, want BGRA8888", img.Format())
	}
	c := src.NRGBAAt(4, 2)
	want := pixconv.BGRA8888{B: c.B, G: c.G, R: c.R, A: c.A}
	if got := img.At(4, 2); got != want {
		t.Errorf("At(4, 2) = %v, want %v", got, want)
	}
}

func TestDecode_Garbage(t *testing.T) {
	if _, err := DecodeBytes([]byte("not an image")); err == nil {
		t.Error("Decode of garbage should fail")
	}
}

func TestEncodePNG_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		format pixconv.PixelFormat
	}{
		{"rgba8888", pixconv.FormatRGBA8888},
		{"unorm16", pixconv.FormatRGBAUnorm16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var src *fakeSource
			if tt.format == pixconv.FormatRGBAUnorm16 {
				src = newFake16(4, 3)
			} else {
				src = newFake8(4, 3)
			}
			img, err := Load(src)
			if err != nil {
				t.Fatal(err)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "out.png")
			f, err := os.Create(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := img.EncodePNG(f); err != nil {
				t.Fatal(err)
			}
			if err := f.Close(); err != nil {
				t.Fatal(err)
			}

			back, err := LoadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if back.Format() != tt.format {
				t.Fatalf("Format() = %v, want %v", back.Format(), tt.format)
			}
			if !bytes.Equal(back.Data(), img.Data()) {
				t.Error("round trip changed pixels")
			}
		})
	}
}

func TestToStd_Premultiplied(t *testing.T) {
	img, err := Load(newFake8(2, 2), WithPremultiply(true))
	if err != nil {
		t.Fatal(err)
	}
	std, err := img.ToStd()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := std.(*image.RGBA); !ok {
		t.Errorf("ToStd() = %T, want *image.RGBA", std)
	}

	f, err := New(pixconv.FormatBGRAFloat16, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	std, err = f.ToStd()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := std.(*image.NRGBA64); !ok {
		t.Errorf("ToStd() = %T, want *image.NRGBA64", std)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile() error = %v, want ErrNotExist", err)
	}
}
