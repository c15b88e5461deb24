// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"bytes"
	"fmt"
	"image"
	stddraw "image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
// This is primarily used in the BindGroupProvider to stage texture data before creating the GPU texture and bind group.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels. This is required to correctly create the GPU texture and interpret the pixel data.
	Width uint32
	// Height is the height of the texture in pixels. This is required to correctly create the GPU texture and interpret the pixel data.
	Height uint32
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// This is primarily used in the BindGroupProvider to stage sampler data before creating the GPU sampler and bind group.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range in each dimension (U, V, W).
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail (LOD) for mipmapping.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}

// ImportedTexture represents texture data to be decoded for GPU upload.
// Either Data holds encoded image bytes, or Path points at an image file on disk.
// PNG, JPEG, BMP, WebP and TGA are supported.
type ImportedTexture struct {
	// Name is an identifier for this texture (e.g., "base", "detail").
	Name string

	// Path is the file path for external textures (empty for in-memory ones).
	Path string

	// Data contains encoded image bytes for in-memory textures.
	Data []byte

	// Width is the texture width in pixels (populated after Decode).
	Width int

	// Height is the texture height in pixels (populated after Decode).
	Height int
}

// imageDecoders pairs a magic byte sequence, found at offset, with its decoder.
// TGA has no magic and is handled by decodeImage after these.
var imageDecoders = []struct {
	magic  string
	offset int
	decode func(io.Reader) (image.Image, error)
}{
	{"\x89PNG\r\n\x1a\n", 0, png.Decode},
	{"\xff\xd8", 0, jpeg.Decode},
	{"BM", 0, bmp.Decode},
	{"WEBP", 8, webp.Decode},
}

// decodeImage decodes PNG, JPEG, BMP or WebP by their magic bytes and falls back to TGA.
//
// Parameters:
//   - data: the encoded image
//
// Returns:
//   - image.Image: the decoded image
//   - error: error if no decoder accepts the data
func decodeImage(data []byte) (image.Image, error) {
	for _, d := range imageDecoders {
		if bytes.HasPrefix(data[min(d.offset, len(data)):], []byte(d.magic)) {
			return d.decode(bytes.NewReader(data))
		}
	}
	img, err := tga.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unrecognized image format: %w", err)
	}
	return img, nil
}

// Decode decodes the texture to raw RGBA pixel data.
// Uses either the in-memory Data bytes or loads from Path on disk. Images whose larger side
// exceeds maxSize are resampled down to fit, preserving aspect ratio; maxSize <= 0 disables resampling.
// Reference: https://pkg.go.dev/image
//
// Parameters:
//   - maxSize: the largest allowed width or height in pixels
//
// Returns:
//   - TextureStagingData: RGBA pixel data (4 bytes per pixel, row-major order) and its size
//   - error: error if decoding fails
func (t *ImportedTexture) Decode(maxSize int) (TextureStagingData, error) {
	if t == nil {
		return TextureStagingData{}, fmt.Errorf("texture is nil")
	}

	var img image.Image
	var err error

	if len(t.Data) > 0 {
		img, err = decodeImage(t.Data)
		if err != nil {
			return TextureStagingData{}, fmt.Errorf("failed to decode in-memory image %s: %w", t.Name, err)
		}
	} else if t.Path != "" {
		data, readErr := os.ReadFile(t.Path)
		if readErr != nil {
			return TextureStagingData{}, fmt.Errorf("failed to open texture file %s: %w", t.Path, readErr)
		}

		img, err = decodeImage(data)
		if err != nil {
			return TextureStagingData{}, fmt.Errorf("failed to decode texture file %s: %w", t.Path, err)
		}
	} else {
		return TextureStagingData{}, fmt.Errorf("texture %s has neither data nor path", t.Name)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return TextureStagingData{}, fmt.Errorf("texture %s is empty", t.Name)
	}

	var rgba *image.RGBA
	if maxSize > 0 && (width > maxSize || height > maxSize) {
		if width >= height {
			height = max(1, height*maxSize/width)
			width = maxSize
		} else {
			width = max(1, width*maxSize/height)
			height = maxSize
		}
		rgba = image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(rgba, rgba.Bounds(), img, bounds, draw.Src, nil)
	} else {
		rgba = image.NewRGBA(image.Rect(0, 0, width, height))
		stddraw.Draw(rgba, rgba.Bounds(), img, bounds.Min, stddraw.Src)
	}

	t.Width = width
	t.Height = height

	return TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(width),
		Height: uint32(height),
	}, nil
}
