package orion

import (
	"fmt"

	"github.com/oliverbestmann/learngl/glimpse"
)

// loopOnce runs a single iteration of the render loop. The phase switches
// to Closing in the same iteration the window was asked to close.
func loopOnce(win glimpse.Window, state *LoopState, scene Scene) error {
	if state.Frames.Tick() {
		state.Frames.log()
	}

	applyKeyBindings(win, state.ctx, state)

	state.ctx.ClearFrame()

	frame := state.frame()
	if err := scene.Draw(frame); err != nil {
		return fmt.Errorf("draw frame %d: %w", frame.Number, err)
	}

	state.Input = win.SwapAndPoll()

	if win.ShouldClose() {
		state.Phase = Closing
	}

	return nil
}
