// Package assets loads images off the render thread and watches asset
// directories for changes.
package assets

import (
	"fmt"
	"image"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Result is the outcome of an asynchronous decode.
type Result struct {
	Path   string
	Image  image.Image
	Format string
	Err    error
}

// Decode reads one image in any registered format (png, bmp, webp).
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// DecodeFile opens and decodes the image at path.
func DecodeFile(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image file: %w", err)
	}
	defer f.Close()

	img, format, err := Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return img, format, nil
}

// DecodeAsync decodes path on its own goroutine. The returned channel
// delivers exactly one Result and is then closed. The caller uploads the
// image on the thread that owns the GL context.
func DecodeAsync(path string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		img, format, err := DecodeFile(path)
		out <- Result{Path: path, Image: img, Format: format, Err: err}
	}()
	return out
}
