package snapshot

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func blueImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{B: 255, A: 255})
		}
	}
	return img
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"frame.png", PNG},
		{"FRAME.PNG", PNG},
		{"a/b.jpg", JPEG},
		{"b.jpeg", JPEG},
		{"c.bmp", BMP},
		{"d.tif", TIFF},
		{"d.tiff", TIFF},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if err != nil || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, %v, want %v", tt.path, got, err, tt.want)
		}
	}
	for _, bad := range []string{"frame", "frame.gif", "frame.webp"} {
		if _, err := FormatFromPath(bad); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("FormatFromPath(%q) error = %v, want ErrUnsupportedFormat", bad, err)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := blueImage(8, 6)

	decoders := map[string]func(*os.File) (image.Image, error){
		"frame.png": func(f *os.File) (image.Image, error) {
			img, _, err := image.Decode(f)
			return img, err
		},
		"frame.bmp":  func(f *os.File) (image.Image, error) { return bmp.Decode(f) },
		"frame.tiff": func(f *os.File) (image.Image, error) { return tiff.Decode(f) },
	}
	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(path, src); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			img, err := decode(f)
			if err != nil {
				t.Fatalf("decode error = %v", err)
			}
			if img.Bounds() != src.Bounds() {
				t.Fatalf("bounds = %v, want %v", img.Bounds(), src.Bounds())
			}
			r, g, b, a := img.At(4, 3).RGBA()
			if r != 0 || g != 0 || b != 0xffff || a != 0xffff {
				t.Errorf("pixel = %d,%d,%d,%d, want opaque blue", r, g, b, a)
			}
		})
	}
}

func TestEncodeJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, blueImage(4, 4), JPEG); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte{0xff, 0xd8}) {
		t.Error("output is not a JPEG stream")
	}
}

func TestEncodeUnknown(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, blueImage(1, 1), Format(99)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestSaveUnsupportedCreatesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.gif")
	if err := Save(path, blueImage(1, 1)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Save() error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Save() created a file for an unsupported format")
	}
}
