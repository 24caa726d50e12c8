package icon

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/tiff"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	return img
}

func TestPath(t *testing.T) {
	tests := []struct {
		loc     string
		want    string
		wantErr bool
	}{
		{"file:///System/Library/Keyboard%20Layouts/US.tiff", "/System/Library/Keyboard Layouts/US.tiff", false},
		{"/tmp/icon.png", "/tmp/icon.png", false},
		{"https://example.com/icon.png", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := Path(tt.loc)
		if (err != nil) != tt.wantErr {
			t.Errorf("Path(%q) error = %v, wantErr %v", tt.loc, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Path(%q) = %q, want %q", tt.loc, got, tt.want)
		}
	}
	if _, err := Path(""); !errors.Is(err, ErrNoIcon) {
		t.Errorf("empty location: got %v, want ErrNoIcon", err)
	}
}

func TestLoad_TIFF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "US.tiff")
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, testImage(16, 16), nil); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	img, err := Load("file://" + path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(16, 16) {
		t.Errorf("size = %v, want 16x16", got)
	}
}

func TestLoad_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(8, 4)); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(8, 4) {
		t.Errorf("size = %v, want 8x4", got)
	}
}

func TestDecode_Unsupported(t *testing.T) {
	_, err := Decode(bytes.NewReader(nil), ".icns")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		size  int
		wantW int
		wantH int
	}{
		{"square", 16, 16, 32, 32, 32},
		{"wide", 32, 16, 16, 16, 8},
		{"tall", 10, 40, 20, 5, 20},
		{"zero keeps original", 12, 7, 0, 12, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scale(testImage(tt.w, tt.h), tt.size).Bounds().Size()
			if got != image.Pt(tt.wantW, tt.wantH) {
				t.Errorf("Scale = %v, want %dx%d", got, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, testImage(4, 4)); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not PNG: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("width = %d, want 4", img.Bounds().Dx())
	}
}
