// Package imaging loads raster images and exposes them as row-major RGB
// pixel sources for the conversion engine.
package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Frame is a decoded image normalized to an RGBA backing store.
type Frame struct {
	rgba   *image.RGBA
	width  int
	height int
}

// Load opens and decodes an image file. The format is auto-detected among
// the registered decoders (png, jpeg, gif, bmp, tiff, webp).
func Load(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return FromImage(img), nil
}

// FromImage wraps an image, converting it to RGBA when necessary.
func FromImage(img image.Image) *Frame {
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Bounds().Min != (image.Point{}) {
		b := img.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	return &Frame{
		rgba:   rgba,
		width:  rgba.Bounds().Dx(),
		height: rgba.Bounds().Dy(),
	}
}

// Size returns the frame dimensions in pixels.
func (f *Frame) Size() (width, height int) {
	return f.width, f.height
}

// PixelCount returns the number of pixels actually present in the backing
// store. It can disagree with width*height for exotic decoders; callers
// treat width*height as the expected count and this as ground truth.
func (f *Frame) PixelCount() int {
	return len(f.rgba.Pix) / 4
}

// Pixel returns the 8-bit RGB channels at the given zero-based coordinates.
// ok is false when the coordinates fall outside the backing store.
func (f *Frame) Pixel(x, y int) (r, g, b uint8, ok bool) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return 0, 0, 0, false
	}
	off := f.rgba.PixOffset(x, y)
	if off < 0 || off+3 >= len(f.rgba.Pix) {
		return 0, 0, 0, false
	}
	return f.rgba.Pix[off], f.rgba.Pix[off+1], f.rgba.Pix[off+2], true
}

// Scale resamples the frame in place to the given dimensions using Lanczos
// interpolation. Scaling to the current size is a no-op.
func (f *Frame) Scale(width, height int) {
	if width == f.width && height == f.height {
		return
	}
	scaled := resize.Resize(uint(width), uint(height), f.rgba, resize.Lanczos3)
	*f = *FromImage(scaled)
}

// Set overwrites the pixel at the given zero-based coordinates. Intended for
// constructing synthetic frames in tests and tools.
func (f *Frame) Set(x, y int, c color.Color) {
	f.rgba.Set(x, y, c)
}

// New creates a blank frame of the given size.
func New(width, height int) *Frame {
	return &Frame{
		rgba:   image.NewRGBA(image.Rect(0, 0, width, height)),
		width:  width,
		height: height,
	}
}
