package material

import (
	"github.com/Carmen-Shannon/oxy-mobile/common"
	"github.com/chewxy/math32"
)

// GenerateTexture builds a square RGBA texture for a slot when no image is available:
// a ringed emblem for base, bricks for detail, a radial mask for blend and a riveted plate for alt.
//
// Parameters:
//   - slot: the slot the texture stands in for
//   - size: the texture side in pixels, at least 1
//
// Returns:
//   - common.TextureStagingData: size*size RGBA pixels
func GenerateTexture(slot TextureSlot, size int) common.TextureStagingData {
	size = max(size, 1)
	pix := make([]byte, size*size*4)

	var shade func(u, v float32) [3]float32
	switch slot {
	case TextureDetail:
		shade = brickPattern
	case TextureBlend:
		shade = radialMask
	case TextureAlt:
		shade = rivetedPlate
	default:
		shade = ringedEmblem
	}

	for y := range size {
		for x := range size {
			u := (float32(x) + 0.5) / float32(size)
			v := (float32(y) + 0.5) / float32(size)
			c := shade(u, v)
			i := (y*size + x) * 4
			pix[i+0] = toByte(c[0])
			pix[i+1] = toByte(c[1])
			pix[i+2] = toByte(c[2])
			pix[i+3] = 0xFF
		}
	}

	return common.TextureStagingData{Pixels: pix, Width: uint32(size), Height: uint32(size)}
}

func toByte(c float32) byte {
	return byte(common.Clamp(c, 0, 1)*255 + 0.5)
}

func ringedEmblem(u, v float32) [3]float32 {
	d := math32.Hypot(u-0.5, v-0.5)
	ring := 0.5 + 0.5*math32.Cos(d*40)
	if d > 0.45 {
		return [3]float32{0.15, 0.2, 0.35}
	}
	return [3]float32{0.9 * ring, 0.75 * ring, 0.3 + 0.4*ring}
}

func brickPattern(u, v float32) [3]float32 {
	const rows, cols, mortar = 8, 4, 0.06
	row := math32.Floor(v * rows)
	bu := u*cols + 0.5*float32(int(row)%2)
	fu := bu - math32.Floor(bu)
	fv := v*rows - row
	if fu < mortar || fv < mortar*2 {
		return [3]float32{0.8, 0.78, 0.72}
	}
	return [3]float32{0.62, 0.27, 0.2}
}

func radialMask(u, v float32) [3]float32 {
	m := common.Clamp(1-2*math32.Hypot(u-0.5, v-0.5), 0, 1)
	return [3]float32{m, m, m}
}

func rivetedPlate(u, v float32) [3]float32 {
	base := 0.55 + 0.05*math32.Sin(v*120)
	for _, cu := range [2]float32{0.1, 0.9} {
		for _, cv := range [2]float32{0.1, 0.9} {
			if math32.Hypot(u-cu, v-cv) < 0.04 {
				return [3]float32{0.8, 0.8, 0.82}
			}
		}
	}
	return [3]float32{base, base, base + 0.03}
}
