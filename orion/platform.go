package orion

import (
	"github.com/oliverbestmann/learngl/glimpse"
	"github.com/oliverbestmann/learngl/pulse"
)

// Platform creates the native window and loads the graphics functions
// for the context of that window. See package desktop for the GLFW
// and OpenGL implementation.
type Platform interface {
	OpenWindow(opts glimpse.Options) (glimpse.Window, error)

	// OpenGL is called after OpenWindow, once the context is current.
	OpenGL() (pulse.GL, error)
}
