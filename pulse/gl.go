package pulse

// GL is the subset of the OpenGL 3.3 core API the tutorial programs need.
// Handles are the raw GL object names, zero is never a valid object.
// The production implementation lives in package pulse/opengl, tests use
// the recording fake from package pulse/pulsetest.
type GL interface {
	CreateShader(stage ShaderStage) uint32
	// CompileShader sets the source of the shader and compiles it.
	CompileShader(shader uint32, source string) (ok bool, infoLog string)
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32) (ok bool, infoLog string)
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// UniformLocation returns -1 if the program has no active uniform with the given name.
	UniformLocation(program uint32, name string) int32
	Uniform1i(location int32, value int32)
	Uniform1f(location int32, value float32)
	Uniform2f(location int32, x, y float32)
	Uniform3f(location int32, x, y, z float32)
	Uniform4f(location int32, x, y, z, w float32)
	UniformMatrix4f(location int32, value [16]float32)

	CreateVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)

	CreateBuffer() uint32
	// BufferData binds the buffer to the target and uploads data with static usage.
	BufferData(target BufferTarget, buffer uint32, data []byte)
	DeleteBuffer(buffer uint32)

	// VertexAttribPointer describes a float32 attribute of the currently bound
	// vertex array and enables it.
	VertexAttribPointer(location uint32, components int32, stride int32, offset int)

	CreateTexture() uint32
	// TexImage2D uploads tightly packed RGBA8 pixels to a 2d texture.
	TexImage2D(texture uint32, width, height int32, pixels []byte, params TextureParams)
	BindTexture(unit uint32, texture uint32)
	DeleteTexture(texture uint32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(depth bool)
	PolygonMode(mode FillMode)
	SetCapability(capability Capability, enabled bool)

	DrawArrays(mode Primitive, first, count int32)
	// DrawElements draws using uint32 indices from the bound element buffer.
	DrawElements(mode Primitive, count int32, offset int)
}

type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

type Primitive int

const (
	Triangles Primitive = iota
	TriangleStrip
	Lines
	Points
)

// FillMode selects how polygons are rasterized.
type FillMode int

const (
	FillModeFill FillMode = iota
	FillModeLine
	FillModePoint
)

func (m FillMode) String() string {
	switch m {
	case FillModeFill:
		return "fill"
	case FillModeLine:
		return "line"
	case FillModePoint:
		return "point"
	default:
		return "unknown"
	}
}

type Capability int

const (
	DepthTest Capability = iota
	Blend
)

type Wrap int

const (
	WrapRepeat Wrap = iota
	WrapMirroredRepeat
	WrapClampToEdge
)

type Filter int

const (
	FilterLinear Filter = iota
	FilterNearest
	FilterLinearMipmapLinear
)

type TextureParams struct {
	Wrap      Wrap
	MinFilter Filter
	MagFilter Filter
	Mipmaps   bool
}
