package common

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestDecodeInMemoryPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solidImage(3, 2, color.RGBA{G: 200, A: 255})))

	tex := &ImportedTexture{Name: "detail", Data: buf.Bytes()}
	data, err := tex.Decode(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), data.Width)
	assert.Equal(t, uint32(2), data.Height)
	assert.Len(t, data.Pixels, 3*2*4)
	assert.Equal(t, []byte{0, 200, 0, 255}, data.Pixels[:4])
	assert.Equal(t, 3, tex.Width)
}

// encodeTGA writes an uncompressed 32-bit, top-left origin TGA.
func encodeTGA(img *image.RGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	header := []byte{0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, byte(w), byte(w >> 8), byte(h), byte(h >> 8), 32, 0x28}
	out := append([]byte{}, header...)
	for y := range h {
		for x := range w {
			c := img.RGBAAt(x, y)
			out = append(out, c.B, c.G, c.R, c.A)
		}
	}
	return out
}

func TestDecodeFormats(t *testing.T) {
	src := solidImage(4, 2, color.RGBA{R: 255, A: 255})

	var pngBuf, jpegBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, src))
	require.NoError(t, jpeg.Encode(&jpegBuf, src, &jpeg.Options{Quality: 100}))

	tests := []struct {
		name string
		data []byte
	}{
		{"png", pngBuf.Bytes()},
		{"jpeg", jpegBuf.Bytes()},
		{"tga", encodeTGA(src)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := (&ImportedTexture{Name: tt.name, Data: tt.data}).Decode(0)
			require.NoError(t, err)
			assert.Equal(t, uint32(4), data.Width)
			assert.Equal(t, uint32(2), data.Height)
			assert.GreaterOrEqual(t, data.Pixels[0], byte(240))
			assert.LessOrEqual(t, data.Pixels[2], byte(15))
			assert.Equal(t, byte(255), data.Pixels[3])
		})
	}
}

func TestDecodeBMPFromDiskResamples(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, solidImage(40, 10, color.RGBA{R: 255, A: 255})))
	path := filepath.Join(t.TempDir(), "base.bmp")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	tex := &ImportedTexture{Name: "base", Path: path}
	data, err := tex.Decode(8)
	require.NoError(t, err)
	assert.Equal(t, uint32(8), data.Width)
	assert.Equal(t, uint32(2), data.Height)
	assert.GreaterOrEqual(t, data.Pixels[0], byte(250))
}

func TestDecodeErrors(t *testing.T) {
	var nilTex *ImportedTexture
	_, err := nilTex.Decode(0)
	assert.Error(t, err)

	_, err = (&ImportedTexture{Name: "none"}).Decode(0)
	assert.ErrorContains(t, err, "neither data nor path")

	_, err = (&ImportedTexture{Name: "junk", Data: []byte("junk")}).Decode(0)
	assert.ErrorContains(t, err, "junk")

	_, err = (&ImportedTexture{Name: "gone", Path: filepath.Join(t.TempDir(), "gone.png")}).Decode(0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
