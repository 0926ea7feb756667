package orion

import (
	"time"

	"github.com/oliverbestmann/learngl/glimpse"
	"github.com/oliverbestmann/learngl/pulse"
)

type Phase int

const (
	Running Phase = iota
	Closing
)

func (p Phase) String() string {
	if p == Running {
		return "running"
	}

	return "closing"
}

// LoopState is owned by the render loop and lives for exactly one call to Run.
type LoopState struct {
	Phase Phase

	// Mix is adjusted by the key bindings and passed to every frame
	Mix float32

	// input state as observed after the previous frame was presented
	Input glimpse.InputState

	Frames FrameTimes

	startTime time.Time
	ctx       *pulse.Context
}

func newLoopState(ctx *pulse.Context, initialMix float32) *LoopState {
	return &LoopState{
		Phase:     Running,
		Mix:       initialMix,
		startTime: time.Now(),
		ctx:       ctx,
	}
}

func (s *LoopState) frame() *Frame {
	return &Frame{
		Ctx:    s.ctx,
		Input:  s.Input,
		Mix:    s.Mix,
		Number: s.Frames.FrameCount - 1,
		Width:  int(s.ctx.ViewportRect().Width()),
		Height: int(s.ctx.ViewportRect().Height()),
		Time:   time.Since(s.startTime),
		Delta:  s.Frames.Delta,
	}
}
