package weekit

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeJPEG encodes a w by h image whose top half is red and bottom half
// is blue, and returns the encoded bytes.
func writeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		c := color.RGBA{R: 255, A: 255}
		if y >= h/2 {
			c = color.RGBA{B: 255, A: 255}
		}
		for x := 0; x < w; x++ {
			src.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: 100}); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadJPEG(t *testing.T) {
	data := writeJPEG(t, 16, 8)
	path := filepath.Join(t.TempDir(), "test.jpg")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	img, err := LoadJPEG(path)
	if err != nil {
		t.Fatalf("LoadJPEG: %v", err)
	}
	if img.Width != 16 || img.Height != 8 || img.Stride != 64 || len(img.Pix) != 16*8*4 {
		t.Errorf("image = %dx%d stride %d len %d", img.Width, img.Height, img.Stride, len(img.Pix))
	}
	if img.Format != NativeFormat() {
		t.Errorf("format = %v, want %v", img.Format, NativeFormat())
	}

	// Rows are stored bottom-up: the first row is the blue bottom of the
	// source.
	if r, b := img.Pix[0], img.Pix[2]; r > 40 || b < 200 {
		t.Errorf("first stored row = (%d, _, %d), want blue", r, b)
	}
	last := img.Pix[(img.Height-1)*img.Stride:]
	if r, b := last[0], last[2]; r < 200 || b > 40 {
		t.Errorf("last stored row = (%d, _, %d), want red", r, b)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 {
			t.Fatalf("alpha at %d = %d, want 255", i, img.Pix[i])
		}
	}

	mem, err := DecodeJPEG(data)
	if err != nil {
		t.Fatalf("DecodeJPEG: %v", err)
	}
	if !bytes.Equal(mem.Pix, img.Pix) {
		t.Error("DecodeJPEG and LoadJPEG disagree")
	}
}

func TestDecodeJPEGRowOrder(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"single pixel", 1, 1},
		{"odd height", 3, 7},
		{"odd both", 5, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Each source row y has gray level shade(y), a smooth ramp
			// JPEG keeps within a few levels.
			shade := func(y int) uint8 { return uint8(40 + 20*y) }
			src := image.NewGray(image.Rect(0, 0, tt.w, tt.h))
			for y := 0; y < tt.h; y++ {
				for x := 0; x < tt.w; x++ {
					src.SetGray(x, y, color.Gray{Y: shade(y)})
				}
			}
			var buf bytes.Buffer
			if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: 100}); err != nil {
				t.Fatal(err)
			}

			img, err := DecodeJPEG(buf.Bytes())
			if err != nil {
				t.Fatalf("DecodeJPEG: %v", err)
			}
			if img.Width != tt.w || img.Height != tt.h || len(img.Pix) != tt.w*tt.h*4 {
				t.Fatalf("image = %dx%d len %d", img.Width, img.Height, len(img.Pix))
			}
			for j := 0; j < tt.h; j++ {
				want := int(shade(tt.h - 1 - j))
				for x := 0; x < tt.w; x++ {
					px := img.Pix[j*img.Stride+x*4:]
					if d := int(px[0]) - want; d < -10 || d > 10 || px[3] != 255 {
						t.Errorf("stored row %d col %d = %v, want gray %d", j, x, px[:4], want)
					}
				}
			}
		})
	}
}

func TestLoadJPEGErrors(t *testing.T) {
	_, err := LoadJPEG(filepath.Join(t.TempDir(), "missing.jpg"))
	if !errors.Is(err, ErrImageNotFound) {
		t.Errorf("missing file: %v, want ErrImageNotFound", err)
	}

	path := filepath.Join(t.TempDir(), "bad.jpg")
	if err := os.WriteFile(path, []byte("not a jpeg"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err = LoadJPEG(path)
	var de *DecodeError
	if !errors.As(err, &de) || de.Source != path {
		t.Errorf("corrupt file: %v, want DecodeError for %s", err, path)
	}

	_, err = DecodeJPEG([]byte{0xff, 0xd8})
	if !errors.As(err, &de) || de.Source != "memory" {
		t.Errorf("truncated data: %v, want DecodeError from memory", err)
	}
}

func TestDecodeImagePNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 128})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	img, err := DecodeImage(&buf)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	// Top-left of the source is the first pixel of the last stored row.
	got := img.Pix[img.Stride : img.Stride+4]
	if want := []byte{10, 20, 30, 128}; !bytes.Equal(got, want) {
		t.Errorf("pixel = %v, want %v", got, want)
	}
	if back := img.NRGBA(); back.NRGBAAt(0, 0) != src.NRGBAAt(0, 0) {
		t.Errorf("NRGBA round trip = %v", back.NRGBAAt(0, 0))
	}
}

func TestNewImage(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		n       int
		wantErr bool
	}{
		{"exact", 2, 3, 24, false},
		{"larger buffer", 2, 3, 30, false},
		{"short", 2, 3, 20, true},
		{"zero width", 0, 3, 24, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := NewImage(tt.w, tt.h, make([]byte, tt.n))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidImage) {
					t.Errorf("err = %v, want ErrInvalidImage", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(img.Pix) != tt.w*tt.h*4 {
				t.Errorf("len(Pix) = %d", len(img.Pix))
			}
		})
	}
}

func TestImageScale(t *testing.T) {
	img, err := NewImage(4, 4, bytes.Repeat([]byte{200, 100, 50, 255}, 16))
	if err != nil {
		t.Fatal(err)
	}
	small := img.Scale(2, 1)
	if small.Width != 2 || small.Height != 1 {
		t.Fatalf("scaled size = %dx%d", small.Width, small.Height)
	}
	for i, want := range []byte{200, 100, 50, 255} {
		if d := int(small.Pix[i]) - int(want); d < -1 || d > 1 {
			t.Errorf("scaled pixel = %v", small.Pix[:4])
			break
		}
	}
	if img.Scale(0, 1) != nil {
		t.Error("Scale(0, 1) returned an image")
	}
}

func TestNativeFormat(t *testing.T) {
	f := NativeFormat()
	if f != FormatRGBA8888 && f != FormatABGR8888 {
		t.Errorf("NativeFormat() = %v", f)
	}
	if FormatABGR8888.String() != "sABGR_8888" || FormatRGBA8888.String() != "sRGBA_8888" {
		t.Error("format names")
	}
}
