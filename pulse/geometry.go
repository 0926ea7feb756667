package pulse

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrInvalidLayout is wrapped by errors about vertex data that does not
// match its declared layout.
var ErrInvalidLayout = errors.New("invalid vertex layout")

const sizeOfFloat32 = 4

// VertexAttribute is a float32 vector attribute bound to a shader input location.
type VertexAttribute struct {
	Location   uint32
	Components int32
}

// VertexLayout describes interleaved float32 vertex data. Attributes are
// stored in the given order, stride and offsets are derived from it.
type VertexLayout struct {
	Attributes []VertexAttribute
}

func Layout(attributes ...VertexAttribute) VertexLayout {
	return VertexLayout{Attributes: attributes}
}

// FloatsPerVertex returns the number of float32 values of a single vertex.
func (l VertexLayout) FloatsPerVertex() int {
	var count int
	for _, attr := range l.Attributes {
		count += int(attr.Components)
	}

	return count
}

// Stride returns the size of a single vertex in bytes.
func (l VertexLayout) Stride() int {
	return l.FloatsPerVertex() * sizeOfFloat32
}

// Offset returns the byte offset of the attribute at the given index.
func (l VertexLayout) Offset(idx int) int {
	var offset int
	for _, attr := range l.Attributes[:idx] {
		offset += int(attr.Components) * sizeOfFloat32
	}

	return offset
}

func (l VertexLayout) validate() error {
	if len(l.Attributes) == 0 {
		return fmt.Errorf("%w: no attributes", ErrInvalidLayout)
	}

	seen := map[uint32]bool{}
	for _, attr := range l.Attributes {
		if attr.Components < 1 || attr.Components > 4 {
			return fmt.Errorf("%w: attribute %d has %d components",
				ErrInvalidLayout, attr.Location, attr.Components)
		}

		if seen[attr.Location] {
			return fmt.Errorf("%w: location %d used twice", ErrInvalidLayout, attr.Location)
		}

		seen[attr.Location] = true
	}

	return nil
}

type GeometryOptions struct {
	Vertices []float32
	Layout   VertexLayout

	// Indices are optional. If set, Draw uses indexed drawing.
	Indices []uint32

	// Primitive used by Draw, defaults to Triangles.
	Primitive Primitive
}

// Geometry is a vertex array with its vertex buffer and an optional index
// buffer. The data is uploaded once and never changes.
type Geometry struct {
	gl GL

	vao uint32
	vbo uint32
	ebo uint32

	primitive   Primitive
	vertexCount int32
	indexCount  int32
}

// NewGeometry validates the vertex data against its layout and uploads it.
// The geometry is released together with the context.
func NewGeometry(ctx *Context, opts GeometryOptions) (*Geometry, error) {
	layout := opts.Layout
	if err := layout.validate(); err != nil {
		return nil, err
	}

	floatsPerVertex := layout.FloatsPerVertex()
	if len(opts.Vertices) == 0 || len(opts.Vertices)%floatsPerVertex != 0 {
		return nil, fmt.Errorf("%w: %d floats is not a multiple of %d floats per vertex",
			ErrInvalidLayout, len(opts.Vertices), floatsPerVertex)
	}

	vertexCount := len(opts.Vertices) / floatsPerVertex

	for idx, index := range opts.Indices {
		if int(index) >= vertexCount {
			return nil, fmt.Errorf("%w: index %d at position %d is out of range, only %d vertices",
				ErrInvalidLayout, index, idx, vertexCount)
		}
	}

	g := &Geometry{
		gl:          ctx.GL,
		primitive:   opts.Primitive,
		vertexCount: int32(vertexCount),
		indexCount:  int32(len(opts.Indices)),
	}

	g.vao = ctx.CreateVertexArray()
	ctx.BindVertexArray(g.vao)

	g.vbo = ctx.CreateBuffer()
	ctx.BufferData(ArrayBuffer, g.vbo, AsBytes(opts.Vertices))

	if len(opts.Indices) > 0 {
		// the element buffer binding is recorded in the bound vertex array
		g.ebo = ctx.CreateBuffer()
		ctx.BufferData(ElementArrayBuffer, g.ebo, AsBytes(opts.Indices))
	}

	stride := int32(layout.Stride())
	for idx, attr := range layout.Attributes {
		ctx.VertexAttribPointer(attr.Location, attr.Components, stride, layout.Offset(idx))
	}

	ctx.BindVertexArray(0)

	ctx.track(g)

	slog.Debug("Geometry uploaded",
		slog.Int("vertices", vertexCount),
		slog.Int("indices", len(opts.Indices)),
		slog.Int("stride", int(stride)),
	)

	return g, nil
}

func (g *Geometry) VertexCount() int32 {
	return g.vertexCount
}

func (g *Geometry) IndexCount() int32 {
	return g.indexCount
}

func (g *Geometry) Indexed() bool {
	return g.ebo != 0
}

// Draw submits the complete geometry.
func (g *Geometry) Draw() {
	count := g.vertexCount
	if g.Indexed() {
		count = g.indexCount
	}

	g.DrawRange(0, count)
}

// DrawRange draws count vertices (or indices for indexed geometry),
// starting at first.
func (g *Geometry) DrawRange(first, count int32) {
	g.gl.BindVertexArray(g.vao)

	if g.Indexed() {
		g.gl.DrawElements(g.primitive, count, int(first)*4)
	} else {
		g.gl.DrawArrays(g.primitive, first, count)
	}
}

// Release deletes the vertex array and its buffers.
// Calling Release more than once has no effect.
func (g *Geometry) Release() {
	if g.vao == 0 {
		return
	}

	g.gl.DeleteVertexArray(g.vao)
	g.gl.DeleteBuffer(g.vbo)

	if g.ebo != 0 {
		g.gl.DeleteBuffer(g.ebo)
		g.ebo = 0
	}

	g.vao = 0
	g.vbo = 0
}
