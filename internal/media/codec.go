// filepath: internal/media/codec.go
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"

	// Import decoders for common formats
	_ "image/gif"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrReleased is returned when a released bitmap is encoded.
var ErrReleased = errors.New("bitmap already released")

// Bitmap holds decoded pixel data until Release is called.
type Bitmap struct {
	img    image.Image
	format string
}

// NewBitmap wraps an already decoded image.
func NewBitmap(img image.Image) *Bitmap {
	return &Bitmap{img: img, format: "raw"}
}

// Format is the name of the codec the bitmap was decoded from.
func (b *Bitmap) Format() string { return b.format }

// Bounds returns the pixel bounds, or an empty rectangle once released.
func (b *Bitmap) Bounds() image.Rectangle {
	if b == nil || b.img == nil {
		return image.Rectangle{}
	}
	return b.img.Bounds()
}

// Release drops the pixel data. It is safe to call more than once.
func (b *Bitmap) Release() {
	if b != nil {
		b.img = nil
	}
}

// Decoder turns an encoded image buffer into a Bitmap.
type Decoder interface {
	Decode(data []byte) (*Bitmap, error)
}

// StdDecoder decodes png, jpeg, gif, webp, bmp and tiff buffers.
type StdDecoder struct{}

var _ Decoder = StdDecoder{}

// Decode implements Decoder.
func (StdDecoder) Decode(data []byte) (*Bitmap, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("could not decode image: empty buffer")
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %w", err)
	}
	return &Bitmap{img: img, format: format}, nil
}

// EncodeJPEG writes b as JPEG at quality (clamped to 1..100).
// Transparent pixels are flattened onto white first.
func EncodeJPEG(w io.Writer, b *Bitmap, quality int) error {
	if b == nil || b.img == nil {
		return ErrReleased
	}
	if quality < 1 {
		quality = 1
	}
	if quality > 100 {
		quality = 100
	}

	bounds := b.img.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, bounds, b.img, bounds.Min, draw.Over)

	if err := jpeg.Encode(w, flat, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("could not encode jpeg: %w", err)
	}
	return nil
}

// EncodePNG writes b as PNG. PNG is lossless so there is no quality knob.
func EncodePNG(w io.Writer, b *Bitmap) error {
	if b == nil || b.img == nil {
		return ErrReleased
	}
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(w, b.img); err != nil {
		return fmt.Errorf("could not encode png: %w", err)
	}
	return nil
}
