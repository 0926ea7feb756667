package orion

import (
	"time"

	"github.com/oliverbestmann/learngl/glimpse"
	"github.com/oliverbestmann/learngl/pulse"
)

// Scene is the content of a tutorial program.
type Scene interface {
	// Setup creates programs, geometry and textures. Resources created
	// through the context are released when the loop ends.
	Setup(ctx *pulse.Context) error

	// Draw renders a single frame. The frame buffer is already cleared.
	Draw(frame *Frame) error
}

// Frame is passed to Scene.Draw once per loop iteration.
type Frame struct {
	Ctx   *pulse.Context
	Input glimpse.InputState

	// Mix is the blend value controlled with the up and down keys, in [0, 1]
	Mix float32

	// Number counts frames, starting at zero
	Number uint64

	// size of the viewport in pixels
	Width  int
	Height int

	// Time since the loop started and since the previous frame
	Time  time.Duration
	Delta time.Duration
}

// AspectRatio of the current viewport.
func (f *Frame) AspectRatio() float32 {
	return f.Ctx.ViewportRect().AspectRatio()
}
