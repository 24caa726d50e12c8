// Package icon decodes input source icons and re-encodes them as PNG.
package icon

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// ErrNoIcon is returned when a source carries no icon image URL.
var ErrNoIcon = errors.New("input source has no icon image")

// ErrUnsupportedFormat is returned for icon files that are neither TIFF nor PNG.
var ErrUnsupportedFormat = errors.New("unsupported icon format")

// Path converts an icon location to a filesystem path. Both file URLs
// ("file:///System/...") and plain paths are accepted.
func Path(loc string) (string, error) {
	if loc == "" {
		return "", ErrNoIcon
	}
	if !strings.Contains(loc, "://") {
		return loc, nil
	}
	u, err := url.Parse(loc)
	if err != nil {
		return "", fmt.Errorf("parse icon url: %w", err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("icon url scheme %q is not file", u.Scheme)
	}
	return u.Path, nil
}

// Load reads and decodes the icon at loc.
func Load(loc string) (image.Image, error) {
	path, err := Path(loc)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open icon: %w", err)
	}
	defer f.Close()
	return Decode(f, filepath.Ext(path))
}

// Decode decodes r according to the file extension ext.
func Decode(r io.Reader, ext string) (image.Image, error) {
	var (
		img image.Image
		err error
	)
	switch strings.ToLower(ext) {
	case ".tif", ".tiff":
		img, err = tiff.Decode(r)
	case ".png":
		img, err = png.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode icon: %w", err)
	}
	return img, nil
}

// Scale returns img resized so its longer side is size pixels. A size of
// zero or less returns img unchanged.
func Scale(img image.Image, size int) image.Image {
	b := img.Bounds()
	if size <= 0 || b.Empty() {
		return img
	}
	w, h := size, size
	if b.Dx() > b.Dy() {
		h = max(1, b.Dy()*size/b.Dx())
	} else if b.Dy() > b.Dx() {
		w = max(1, b.Dx()*size/b.Dy())
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// WritePNG encodes img as PNG to w.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
