package glimpse

import "errors"

// ErrInit is wrapped by every error caused by a failure to bring up the
// windowing system or the requested graphics context.
var ErrInit = errors.New("window initialization failed")

// Window hosts a single native window together with its graphics context.
// All methods must be called from the thread that created the window.
type Window interface {
	ShouldClose() bool
	SetShouldClose(value bool)

	// FramebufferSize returns the current size of the drawable area in pixels.
	FramebufferSize() (width, height int)

	// OnResize registers a callback that is invoked synchronously from within
	// SwapAndPoll whenever the framebuffer changes its size.
	OnResize(callback func(width, height int))

	// SwapAndPoll presents the current frame and processes all pending
	// events. It returns the input state after all events were handled.
	SwapAndPoll() InputState

	// Terminate releases the window and all platform resources.
	// Calling Terminate more than once has no effect.
	Terminate()
}

type Options struct {
	Width  int
	Height int
	Title  string

	// requested context version, defaults to 3.3
	ContextMajor int
	ContextMinor int

	Resizable bool
}

func (o Options) WithDefaults() Options {
	if o.Width == 0 {
		o.Width = 800
	}

	if o.Height == 0 {
		o.Height = 600
	}

	if o.Title == "" {
		o.Title = "LearnOpenGL"
	}

	if o.ContextMajor == 0 {
		o.ContextMajor = 3
		o.ContextMinor = 3
	}

	return o
}
