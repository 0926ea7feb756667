package pulse

import (
	"log/slog"
	"reflect"
	"slices"
)

type releaser interface{ Release() }

// Context couples a GL implementation with the small amount of state the
// render loop changes between frames: the viewport, the clear color, the
// polygon fill mode and depth testing. It also owns every resource created
// through it and releases them in Release.
type Context struct {
	GL

	viewport   Rectangle2i
	clearColor Color
	fillMode   FillMode
	depthTest  bool

	resources []releaser
	released  bool
}

func NewContext(gl GL) *Context {
	return &Context{
		GL:         gl,
		clearColor: ColorBlack,
	}
}

// SetViewport sets the active drawing region in framebuffer pixels.
func (c *Context) SetViewport(rect Rectangle2i) {
	c.viewport = rect
	c.GL.Viewport(rect.XYWH())
}

func (c *Context) ViewportRect() Rectangle2i {
	return c.viewport
}

func (c *Context) SetClearColor(color Color) {
	c.clearColor = color
	c.GL.ClearColor(color.Components())
}

// ClearFrame clears the color buffer, and the depth buffer if depth
// testing is enabled.
func (c *Context) ClearFrame() {
	c.GL.Clear(c.depthTest)
}

func (c *Context) SetFillMode(mode FillMode) {
	if c.fillMode == mode {
		return
	}

	slog.Debug("Switch polygon fill mode", slog.String("mode", mode.String()))

	c.fillMode = mode
	c.GL.PolygonMode(mode)
}

func (c *Context) CurrentFillMode() FillMode {
	return c.fillMode
}

func (c *Context) SetDepthTest(enabled bool) {
	c.depthTest = enabled
	c.GL.SetCapability(DepthTest, enabled)
}

func (c *Context) DepthTest() bool {
	return c.depthTest
}

// track registers a resource to be released together with the context.
func (c *Context) track(res releaser) {
	c.resources = append(c.resources, res)
}

// untrack removes a resource that was already released by its owner.
func (c *Context) untrack(res releaser) {
	c.resources = slices.DeleteFunc(c.resources, func(tracked releaser) bool {
		return tracked == res
	})
}

// Resources returns the number of resources the context still owns.
func (c *Context) Resources() int {
	return len(c.resources)
}

// Release releases all tracked resources in reverse order of their
// creation. Calling Release more than once has no effect.
func (c *Context) Release() {
	if c.released {
		return
	}

	c.released = true

	for idx := len(c.resources) - 1; idx >= 0; idx-- {
		res := c.resources[idx]

		slog.Debug("Release resource", slog.String("type", reflect.TypeOf(res).String()))
		res.Release()
	}

	c.resources = nil
}
