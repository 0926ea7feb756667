// Package desktop connects the render loop to a GLFW window with an
// OpenGL 3.3 core context.
package desktop

import (
	"github.com/oliverbestmann/learngl/glimpse"
	"github.com/oliverbestmann/learngl/glimpse/glfwwin"
	"github.com/oliverbestmann/learngl/orion"
	"github.com/oliverbestmann/learngl/pulse"
	"github.com/oliverbestmann/learngl/pulse/opengl"
)

type Platform struct{}

var _ orion.Platform = Platform{}

func (Platform) OpenWindow(opts glimpse.Options) (glimpse.Window, error) {
	win, err := glfwwin.New(opts)
	if err != nil {
		return nil, err
	}

	return win, nil
}

func (Platform) OpenGL() (pulse.GL, error) {
	gl, err := opengl.New()
	if err != nil {
		return nil, err
	}

	return gl, nil
}

// Run runs the scene in a desktop window. Logging is configured from the
// environment before the window is opened.
func Run(config orion.Config, opts orion.RunOptions) error {
	config.ConfigureLogging()

	opts.Platform = Platform{}
	opts.Config = config

	return orion.Run(opts)
}
