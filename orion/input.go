package orion

import (
	"log/slog"

	"github.com/oliverbestmann/learngl/glimpse"
	"github.com/oliverbestmann/learngl/glm"
	"github.com/oliverbestmann/learngl/pulse"
)

// MixStep is the change of the mix value per frame while up or down is held.
const MixStep = 0.01

type fillModeKey struct {
	Key  glimpse.Key
	Mode pulse.FillMode
}

// fillModeKeys are checked in order, so the last held key wins.
var fillModeKeys = []fillModeKey{
	{glimpse.Key1, pulse.FillModeFill},
	{glimpse.Key2, pulse.FillModeLine},
	{glimpse.Key3, pulse.FillModePoint},
}

// applyKeyBindings handles the keys every tutorial program shares:
// escape closes the window, 1, 2 and 3 switch the polygon fill mode and
// up and down change the mix value.
func applyKeyBindings(win glimpse.Window, ctx *pulse.Context, state *LoopState) {
	input := &state.Input

	if input.IsKeyPressed(glimpse.KeyEscape) && !win.ShouldClose() {
		slog.Info("Escape pressed, closing window")
		win.SetShouldClose(true)
	}

	for _, binding := range fillModeKeys {
		if input.IsKeyPressed(binding.Key) {
			ctx.SetFillMode(binding.Mode)
		}
	}

	if input.IsKeyPressed(glimpse.KeyUp) {
		state.Mix = glm.Clamp(state.Mix+MixStep, 0, 1)
	}

	if input.IsKeyPressed(glimpse.KeyDown) {
		state.Mix = glm.Clamp(state.Mix-MixStep, 0, 1)
	}
}
