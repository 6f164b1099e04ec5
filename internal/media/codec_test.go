// filepath: internal/media/codec_test.go
package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestImage encodes a solid red PNG of the given size.
func createTestImage(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	red := color.RGBA{255, 0, 0, 255}
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, red)
		}
	}

	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestStdDecoder_Decode(t *testing.T) {
	t.Run("PNG", func(t *testing.T) {
		bmp, err := StdDecoder{}.Decode(createTestImage(t, 10, 10))
		require.NoError(t, err)
		assert.Equal(t, "png", bmp.Format())
		assert.Equal(t, 10, bmp.Bounds().Dx())
	})

	t.Run("Empty buffer", func(t *testing.T) {
		_, err := StdDecoder{}.Decode(nil)
		assert.Error(t, err)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := StdDecoder{}.Decode([]byte("definitely not an image"))
		assert.Error(t, err)
	})
}

func TestEncode(t *testing.T) {
	bmp, err := StdDecoder{}.Decode(createTestImage(t, 10, 10))
	require.NoError(t, err)

	t.Run("JPEG output", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, EncodeJPEG(&out, bmp, 90))
		_, format, err := image.Decode(bytes.NewReader(out.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
	})

	t.Run("JPEG clamps quality", func(t *testing.T) {
		var out bytes.Buffer
		assert.NoError(t, EncodeJPEG(&out, bmp, 0))
		assert.NoError(t, EncodeJPEG(&out, bmp, 250))
	})

	t.Run("PNG output", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, EncodePNG(&out, bmp))
		decoded, format, err := image.Decode(bytes.NewReader(out.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, "png", format)
		r, g, b, _ := decoded.At(5, 5).RGBA()
		assert.Equal(t, uint32(0xffff), r)
		assert.Zero(t, g)
		assert.Zero(t, b)
	})

	t.Run("Released bitmap", func(t *testing.T) {
		released, err := StdDecoder{}.Decode(createTestImage(t, 2, 2))
		require.NoError(t, err)
		released.Release()
		released.Release()

		assert.ErrorIs(t, EncodePNG(&bytes.Buffer{}, released), ErrReleased)
		assert.ErrorIs(t, EncodeJPEG(&bytes.Buffer{}, released, 80), ErrReleased)
		assert.True(t, released.Bounds().Empty())
	})
}
