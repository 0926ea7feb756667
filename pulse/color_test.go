package pulse_test

import (
	"testing"

	"github.com/oliverbestmann/learngl/glm"
	"github.com/oliverbestmann/learngl/pulse"
	"github.com/stretchr/testify/assert"
)

func TestColorZeroValueIsWhite(t *testing.T) {
	var color pulse.Color
	assert.Equal(t, pulse.ColorWhite, color)
}

func TestColorComponents(t *testing.T) {
	color := pulse.ColorOf(glm.Vec4f{0.25, 0.5, 0.75, 1})

	r, g, b, a := color.WithAlpha(0.5).Components()
	assert.InDeltaSlice(t, []float32{0.25, 0.5, 0.75, 0.5}, []float32{r, g, b, a}, 1e-6)

	vec := color.ToVec()
	assert.InDeltaSlice(t, []float32{0.25, 0.5, 0.75, 1}, vec[:], 1e-6)
}
