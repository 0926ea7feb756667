// Package glimpsetest provides a scripted, in-memory glimpse.Window for tests
// of code that drives a render loop.
package glimpsetest

import "github.com/oliverbestmann/learngl/glimpse"

// Event is the set of platform events delivered by one call to SwapAndPoll.
type Event struct {
	Press   []glimpse.Key
	Release []glimpse.Key

	// Resize sets a new framebuffer size if non zero.
	Resize [2]int

	// Close simulates a close request by the platform, e.g. the
	// user clicking the close button of the window.
	Close bool
}

type Window struct {
	Width  int
	Height int

	// Events are consumed one per SwapAndPoll. Once all events are consumed,
	// the window requests to close itself so a loop can never run forever.
	Events []Event

	Swaps        int
	Terminations int

	closing  bool
	onResize func(width, height int)
	input    glimpse.InputState
}

var _ glimpse.Window = (*Window)(nil)

func New(width, height int, events ...Event) *Window {
	return &Window{Width: width, Height: height, Events: events}
}

func (w *Window) ShouldClose() bool {
	return w.closing
}

func (w *Window) SetShouldClose(value bool) {
	w.closing = value
}

func (w *Window) FramebufferSize() (int, int) {
	return w.Width, w.Height
}

func (w *Window) OnResize(callback func(width, height int)) {
	w.onResize = callback
}

func (w *Window) SwapAndPoll() glimpse.InputState {
	w.Swaps++
	w.input.NextTick()

	if len(w.Events) == 0 {
		w.closing = true
		return w.input
	}

	event := w.Events[0]
	w.Events = w.Events[1:]

	for _, key := range event.Press {
		w.input.Keys.Press(key)
	}

	for _, key := range event.Release {
		w.input.Keys.Release(key)
	}

	if event.Resize != [2]int{} {
		w.Width, w.Height = event.Resize[0], event.Resize[1]
		if w.onResize != nil {
			w.onResize(w.Width, w.Height)
		}
	}

	if event.Close {
		w.closing = true
	}

	return w.input
}

func (w *Window) Terminate() {
	w.Terminations++
}
