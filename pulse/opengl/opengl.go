// Package opengl implements pulse.GL using the OpenGL 3.3 core profile
// bindings of go-gl. A context must be current on the calling thread
// before New is called.
package opengl

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/oliverbestmann/learngl/pulse"
)

func init() {
	// all gl calls must happen on the thread the context is current on
	runtime.LockOSThread()
}

type GL struct{}

var _ pulse.GL = GL{}

// New loads the OpenGL function pointers for the current context.
func New() (GL, error) {
	if err := gl.Init(); err != nil {
		return GL{}, fmt.Errorf("load opengl functions: %w", err)
	}

	slog.Info("OpenGL initialized",
		slog.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		slog.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	return GL{}, nil
}

func (GL) CreateShader(stage pulse.ShaderStage) uint32 {
	switch stage {
	case pulse.VertexStage:
		return gl.CreateShader(gl.VERTEX_SHADER)
	case pulse.FragmentStage:
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	default:
		panic(fmt.Sprintf("unsupported shader stage %s", stage))
	}
}

func (GL) CompileShader(shader uint32, source string) (bool, string) {
	sources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, sources, nil)
	free()

	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)

	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

	return status == gl.TRUE, infoLog(logLength, func(length int32, buf *uint8) {
		gl.GetShaderInfoLog(shader, length, nil, buf)
	})
}

func (GL) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (GL) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (GL) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (GL) LinkProgram(program uint32) (bool, string) {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)

	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

	return status == gl.TRUE, infoLog(logLength, func(length int32, buf *uint8) {
		gl.GetProgramInfoLog(program, length, nil, buf)
	})
}

func (GL) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (GL) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (GL) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (GL) Uniform1i(location int32, value int32) {
	gl.Uniform1i(location, value)
}

func (GL) Uniform1f(location int32, value float32) {
	gl.Uniform1f(location, value)
}

func (GL) Uniform2f(location int32, x, y float32) {
	gl.Uniform2f(location, x, y)
}

func (GL) Uniform3f(location int32, x, y, z float32) {
	gl.Uniform3f(location, x, y, z)
}

func (GL) Uniform4f(location int32, x, y, z, w float32) {
	gl.Uniform4f(location, x, y, z, w)
}

func (GL) UniformMatrix4f(location int32, value [16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &value[0])
}

func (GL) CreateVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (GL) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (GL) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (GL) CreateBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (GL) BufferData(target pulse.BufferTarget, buffer uint32, data []byte) {
	glTarget := bufferTarget(target)

	gl.BindBuffer(glTarget, buffer)

	if len(data) == 0 {
		gl.BufferData(glTarget, 0, nil, gl.STATIC_DRAW)
		return
	}

	gl.BufferData(glTarget, len(data), gl.Ptr(&data[0]), gl.STATIC_DRAW)
}

func (GL) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (GL) VertexAttribPointer(location uint32, components int32, stride int32, offset int) {
	gl.VertexAttribPointer(location, components, gl.FLOAT, false, stride, gl.PtrOffset(offset))
	gl.EnableVertexAttribArray(location)
}

func (GL) CreateTexture() uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	return texture
}

func (GL) TexImage2D(texture uint32, width, height int32, pixels []byte, params pulse.TextureParams) {
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapOf(params.Wrap))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapOf(params.Wrap))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filterOf(params.MinFilter, params.Mipmaps))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filterOf(params.MagFilter, false))

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	if params.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (GL) BindTexture(unit uint32, texture uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

func (GL) DeleteTexture(texture uint32) {
	gl.DeleteTextures(1, &texture)
}

func (GL) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (GL) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (GL) Clear(depth bool) {
	var mask uint32 = gl.COLOR_BUFFER_BIT
	if depth {
		mask |= gl.DEPTH_BUFFER_BIT
	}

	gl.Clear(mask)
}

func (GL) PolygonMode(mode pulse.FillMode) {
	switch mode {
	case pulse.FillModeLine:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	case pulse.FillModePoint:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.POINT)
	default:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (GL) SetCapability(capability pulse.Capability, enabled bool) {
	var glCap uint32

	switch capability {
	case pulse.DepthTest:
		glCap = gl.DEPTH_TEST
	case pulse.Blend:
		glCap = gl.BLEND
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	default:
		return
	}

	if enabled {
		gl.Enable(glCap)
	} else {
		gl.Disable(glCap)
	}
}

func (GL) DrawArrays(mode pulse.Primitive, first, count int32) {
	gl.DrawArrays(primitiveOf(mode), first, count)
}

func (GL) DrawElements(mode pulse.Primitive, count int32, offset int) {
	gl.DrawElements(primitiveOf(mode), count, gl.UNSIGNED_INT, gl.PtrOffset(offset))
}

func infoLog(length int32, read func(length int32, buf *uint8)) string {
	if length <= 1 {
		return ""
	}

	buf := strings.Repeat("\x00", int(length+1))
	read(length, gl.Str(buf))
	return strings.TrimRight(buf, "\x00")
}

func bufferTarget(target pulse.BufferTarget) uint32 {
	if target == pulse.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}

	return gl.ARRAY_BUFFER
}

func primitiveOf(mode pulse.Primitive) uint32 {
	switch mode {
	case pulse.TriangleStrip:
		return gl.TRIANGLE_STRIP
	case pulse.Lines:
		return gl.LINES
	case pulse.Points:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}

func wrapOf(wrap pulse.Wrap) int32 {
	switch wrap {
	case pulse.WrapMirroredRepeat:
		return gl.MIRRORED_REPEAT
	case pulse.WrapClampToEdge:
		return gl.CLAMP_TO_EDGE
	default:
		return gl.REPEAT
	}
}

func filterOf(filter pulse.Filter, mipmaps bool) int32 {
	switch filter {
	case pulse.FilterNearest:
		return gl.NEAREST
	case pulse.FilterLinearMipmapLinear:
		if mipmaps {
			return gl.LINEAR_MIPMAP_LINEAR
		}

		return gl.LINEAR
	default:
		return gl.LINEAR
	}
}
