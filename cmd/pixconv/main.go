// Command pixconv decodes an image into a pixconv pixel format and reports
// the resulting buffer layout and GPU upload format.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/pixconv"
	"github.com/gogpu/pixconv/gpu"
	"github.com/gogpu/pixconv/image"
)

func main() {
	var (
		input       = flag.String("in", "", "input image file (png, jpeg, gif, bmp, tiff, webp)")
		format      = flag.String("format", "Unspecified", "output pixel format, e.g. BGRA, RGBA4444, RGBAFloat16")
		premultiply = flag.Bool("premultiply", false, "premultiply color by alpha")
		workers     = flag.Int("workers", 1, "row conversion goroutines")
		output      = flag.String("out", "", "re-encode the converted image as PNG")
		raw         = flag.String("raw", "", "dump the raw pixel buffer")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	pixconv.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	target, err := pixconv.ParseFormat(*format)
	if err != nil {
		log.Fatalf("Invalid format: %v", err)
	}

	img, err := image.LoadFile(*input,
		image.WithFormat(target),
		image.WithPremultiply(*premultiply),
		image.WithWorkers(*workers),
	)
	if err != nil {
		log.Fatalf("Failed to load: %v", err)
	}

	log.Printf("%s: %dx%d %v, stride %d, %d bytes, premultiplied %v\n",
		*input, img.Width(), img.Height(), img.Format(), img.Stride(), img.Size(), img.Premultiplied())

	up, err := gpu.Prepare(img)
	if err != nil {
		log.Fatalf("Failed to prepare upload: %v", err)
	}
	log.Printf("GPU upload: %v as %v, %d bytes per row\n", up.PixelFormat, up.Format, up.BytesPerRow)

	if *raw != "" {
		if err := os.WriteFile(*raw, img.Data(), 0o600); err != nil {
			log.Fatalf("Failed to write raw buffer: %v", err)
		}
		log.Printf("Raw buffer saved to %s\n", *raw)
	}

	if *output != "" {
		if err := savePNG(img, *output); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		log.Printf("PNG saved to %s\n", *output)
	}
}

func savePNG(img *image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := img.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
