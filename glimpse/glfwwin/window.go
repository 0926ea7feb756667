// Package glfwwin implements glimpse.Window on top of GLFW with an
// OpenGL core profile context.
package glfwwin

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/oliverbestmann/learngl/glimpse"
)

func init() {
	// glfw event handling must run on the main thread
	runtime.LockOSThread()
}

type Window struct {
	win   *glfw.Window
	input glimpse.InputState

	onResize   func(width, height int)
	terminated bool
}

var _ glimpse.Window = (*Window)(nil)

// New initializes glfw, creates a window with an OpenGL core profile context
// of the requested version and makes that context current.
func New(opts glimpse.Options) (*Window, error) {
	opts = opts.WithDefaults()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: initialize glfw: %w", glimpse.ErrInit, err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, opts.ContextMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, opts.ContextMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolHint(opts.Resizable))

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: create window: %w", glimpse.ErrInit, err)
	}

	window.MakeContextCurrent()

	slog.Info("Window created",
		slog.String("title", opts.Title),
		slog.Int("width", opts.Width),
		slog.Int("height", opts.Height),
		slog.String("context", fmt.Sprintf("%d.%d core", opts.ContextMajor, opts.ContextMinor)),
	)

	w := &Window{win: window}

	configureInput(window, &w.input)

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	return w, nil
}

func (g *Window) ShouldClose() bool {
	return g.win.ShouldClose()
}

func (g *Window) SetShouldClose(value bool) {
	g.win.SetShouldClose(value)
}

func (g *Window) FramebufferSize() (int, int) {
	return g.win.GetFramebufferSize()
}

func (g *Window) OnResize(callback func(width, height int)) {
	g.onResize = callback
}

func (g *Window) SwapAndPoll() glimpse.InputState {
	g.win.SwapBuffers()

	g.input.NextTick()
	glfw.PollEvents()

	return g.input
}

func (g *Window) Terminate() {
	if g.terminated {
		return
	}

	g.terminated = true

	g.win.Destroy()
	glfw.Terminate()
}

func configureInput(window *glfw.Window, input *glimpse.InputState) {
	window.SetKeyCallback(func(_win *glfw.Window, glfwKey glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}

		key, ok := keyOf(glfwKey)
		if !ok {
			return
		}

		switch action {
		case glfw.Press:
			input.Keys.Press(key)

		case glfw.Release:
			input.Keys.Release(key)
		}
	})

	window.SetMouseButtonCallback(func(_win *glfw.Window, btn glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		button := glimpse.MouseButton(btn)

		switch action {
		case glfw.Press:
			input.Mouse.Press(button)
		case glfw.Release:
			input.Mouse.Release(button)
		}
	})

	window.SetCursorPosCallback(func(_win *glfw.Window, xpos float64, ypos float64) {
		input.Mouse.Position(float32(xpos), float32(ypos))
	})
}

func keyOf(glfwKey glfw.Key) (key glimpse.Key, ok bool) {
	key, ok = glfwToKey[glfwKey]
	if !ok {
		slog.Warn(
			"Unknown key code",
			slog.String("key", glfw.GetKeyName(glfwKey, 0)),
		)
	}

	return
}

func boolHint(value bool) int {
	if value {
		return glfw.True
	}

	return glfw.False
}

var glfwToKey = map[glfw.Key]glimpse.Key{
	glfw.KeyEscape: glimpse.KeyEscape,
	glfw.KeyEnter:  glimpse.KeyEnter,
	glfw.KeySpace:  glimpse.KeySpace,
	glfw.KeyUp:     glimpse.KeyUp,
	glfw.KeyDown:   glimpse.KeyDown,
	glfw.KeyLeft:   glimpse.KeyLeft,
	glfw.KeyRight:  glimpse.KeyRight,
	glfw.Key0:      glimpse.Key0,
	glfw.Key1:      glimpse.Key1,
	glfw.Key2:      glimpse.Key2,
	glfw.Key3:      glimpse.Key3,
	glfw.Key4:      glimpse.Key4,
	glfw.Key5:      glimpse.Key5,
	glfw.Key6:      glimpse.Key6,
	glfw.Key7:      glimpse.Key7,
	glfw.Key8:      glimpse.Key8,
	glfw.Key9:      glimpse.Key9,
	glfw.KeyA:      glimpse.KeyA,
	glfw.KeyD:      glimpse.KeyD,
	glfw.KeyS:      glimpse.KeyS,
	glfw.KeyW:      glimpse.KeyW,
}
