package weekit

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"

	// Decoders for DecodeImage.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sys/cpu"
)

// PixelFormat names the packing of a 32-bit pixel as seen by the surface.
type PixelFormat uint8

const (
	// FormatRGBA8888 is a 32-bit word with R in the high byte. Big-endian
	// hosts store it as the bytes R, G, B, A.
	FormatRGBA8888 PixelFormat = iota
	// FormatABGR8888 is a 32-bit word with A in the high byte. Little-endian
	// hosts store it as the bytes R, G, B, A.
	FormatABGR8888
)

func (f PixelFormat) String() string {
	switch f {
	case FormatRGBA8888:
		return "sRGBA_8888"
	case FormatABGR8888:
		return "sABGR_8888"
	}
	return "unknown"
}

var nativeFormat = func() PixelFormat {
	if cpu.IsBigEndian {
		return FormatRGBA8888
	}
	return FormatABGR8888
}()

// NativeFormat returns the format whose in-memory byte order on this host
// is R, G, B, A.
func NativeFormat() PixelFormat { return nativeFormat }

// Image is a decoded raster. Pix holds Height rows of Width 4-byte R, G,
// B, A pixels, Stride bytes apart, bottom row first.
type Image struct {
	Width  int
	Height int
	Stride int
	Pix    []byte
	Format PixelFormat

	handle ImageHandle
	owner  Surface
}

// NewImage wraps a bottom-up R, G, B, A buffer of w by h pixels.
func NewImage(w, h int, pix []byte) (*Image, error) {
	if w <= 0 || h <= 0 || len(pix) < w*h*4 {
		return nil, fmt.Errorf("%w: %dx%d with %d bytes", ErrInvalidImage, w, h, len(pix))
	}
	return &Image{
		Width:  w,
		Height: h,
		Stride: w * 4,
		Pix:    pix[:w*h*4],
		Format: nativeFormat,
	}, nil
}

// LoadJPEG decodes a JPEG file. A file that cannot be opened yields an
// error matching ErrImageNotFound; a codec failure yields a *DecodeError.
func LoadJPEG(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		Logger().Warn("weekit: failed opening image", "path", path, "err", err)
		return nil, fmt.Errorf("%w: %s", ErrImageNotFound, path)
	}
	defer f.Close()
	return decodeJPEG(bufio.NewReader(f), path)
}

// DecodeJPEG decodes JPEG data held in memory. It produces the same image
// as LoadJPEG for the same bytes.
func DecodeJPEG(data []byte) (*Image, error) {
	return decodeJPEG(bytes.NewReader(data), "memory")
}

func decodeJPEG(r io.Reader, source string) (*Image, error) {
	src, err := jpeg.Decode(r)
	if err != nil {
		return nil, &DecodeError{Source: source, Err: err}
	}
	return fromImage(src), nil
}

// DecodeImage decodes any registered format: JPEG, PNG, GIF, BMP, TIFF
// and WebP.
func DecodeImage(r io.Reader) (*Image, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, &DecodeError{Source: "stream", Err: err}
	}
	Logger().Debug("weekit: decoded image", "format", format, "bounds", src.Bounds())
	return fromImage(src), nil
}

// fromImage expands src to non-premultiplied R, G, B, A and stores source
// row y at destination row H-1-y.
func fromImage(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	rgba, ok := src.(*image.NRGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		xdraw.Draw(rgba, rgba.Bounds(), src, b.Min, xdraw.Src)
	}

	img := &Image{
		Width:  w,
		Height: h,
		Stride: w * 4,
		Pix:    make([]byte, w*h*4),
		Format: nativeFormat,
	}
	for y := 0; y < h; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+img.Stride]
		copy(img.Pix[(h-1-y)*img.Stride:], row)
	}
	return img
}

// NRGBA returns a top-down copy of the image.
func (img *Image) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	row := img.Width * 4
	for y := 0; y < img.Height; y++ {
		src := img.Pix[(img.Height-1-y)*img.Stride:]
		copy(out.Pix[y*out.Stride:y*out.Stride+row], src[:row])
	}
	return out
}

// Scale returns a copy resampled to w by h pixels.
func (img *Image) Scale(w, h int) *Image {
	if w <= 0 || h <= 0 {
		return nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img.NRGBA(), image.Rect(0, 0, img.Width, img.Height), xdraw.Src, nil)
	return fromImage(dst)
}

// Upload creates the platform image on s, replacing any image previously
// uploaded to another surface.
func (img *Image) Upload(s Surface) (ImageHandle, error) {
	if img.handle != 0 && img.owner == s {
		return img.handle, nil
	}
	img.Destroy()
	h, err := s.CreateImage(img.Format, img.Width, img.Height, img.Pix, img.Stride)
	if err != nil {
		return 0, err
	}
	img.handle = h
	img.owner = s
	return h, nil
}

// Destroy releases the platform image. The pixel data stays valid.
func (img *Image) Destroy() {
	if img.handle == 0 {
		return
	}
	img.owner.DestroyImage(img.handle)
	img.handle = 0
	img.owner = nil
}
