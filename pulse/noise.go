package pulse

import (
	"image"
	"image/color"

	"github.com/furui/fastnoiselite-go"
)

// NoiseImage renders opaque fractal noise into a new image. Different seeds
// sample different regions of the noise field. Use it as a stand-in for
// textures that could not be loaded.
func NoiseImage(width, height int, seed int) *image.RGBA {
	noise := fastnoiselite.NewNoise()
	noise.SetNoiseType(fastnoiselite.NoiseTypeOpenSimplex2)
	noise.FractalType = fastnoiselite.FractalTypeFBm
	noise.Frequency = 4.0
	noise.SetFractalOctaves(3)

	img := image.NewRGBA(image.Rect(0, 0, width, height))

	offset := float64(seed) * 17.0

	for y := range height {
		for x := range width {
			nx := fastnoiselite.FNLfloat(float64(x)/float64(width) + offset)
			ny := fastnoiselite.FNLfloat(float64(y)/float64(height) + offset)

			// noise is in [-1, 1]
			value := (float64(noise.GetNoise2D(nx, ny)) + 1) / 2
			value = min(1, max(0, value))

			img.SetRGBA(x, y, color.RGBA{
				R: uint8(value * 255),
				G: uint8(value * 160),
				B: uint8(value * 96),
				A: 255,
			})
		}
	}

	return img
}
