// Package sink encodes a raw RGB render buffer to an image file. The buffer
// contract is row-major, 3 bytes per pixel (R, G, B), row stride width*3.
package sink

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var (
	// ErrBufferSize indicates the RGB buffer does not hold width*height*3 bytes.
	ErrBufferSize = errors.New("sink: buffer length does not match width*height*3")
	// ErrFormat indicates an unrecognized output format or file extension.
	ErrFormat = errors.New("sink: unsupported image format")
)

// Format is a supported output encoding.
type Format int

const (
	FormatPNG Format = iota
	FormatBMP
	FormatTIFF
)

// FormatForPath picks the output format from the file extension.
// Unknown extensions are an error rather than a silent PNG fallback.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
	}
}

// toImage wraps the RGB buffer into an NRGBA image, expanding each 3-byte
// pixel with an opaque alpha.
func toImage(width, height int, rgb []byte) (*image.NRGBA, error) {
	if len(rgb) != width*height*3 {
		return nil, fmt.Errorf("%w: got %d bytes for %dx%d", ErrBufferSize, len(rgb), width, height)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for py := 0; py < height; py++ {
		srcOff := py * width * 3
		dstOff := py * img.Stride
		for px := 0; px < width; px++ {
			s := srcOff + px*3
			d := dstOff + px*4
			img.Pix[d+0] = rgb[s+0]
			img.Pix[d+1] = rgb[s+1]
			img.Pix[d+2] = rgb[s+2]
			img.Pix[d+3] = 255
		}
	}
	return img, nil
}

// Encode writes the RGB buffer to w in the given format.
func Encode(w io.Writer, f Format, width, height int, rgb []byte) error {
	img, err := toImage(width, height, rgb)
	if err != nil {
		return err
	}

	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, nil)
	default:
		return fmt.Errorf("%w: format %d", ErrFormat, f)
	}
}

// WriteFile encodes the buffer to path, choosing the format by extension.
func WriteFile(path string, width, height int, rgb []byte) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := Encode(f, format, width, height, rgb); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
