// Package pulsetest provides an in-memory implementation of pulse.GL. It
// records every call that changes state, counts created and deleted objects
// per kind and understands enough GLSL to report compile and link errors
// of the simple tutorial shaders.
package pulsetest

import (
	"fmt"
	"slices"

	"github.com/oliverbestmann/learngl/pulse"
)

// Kind is the kind of a GL object.
type Kind string

const (
	KindShader      Kind = "shader"
	KindProgram     Kind = "program"
	KindVertexArray Kind = "vertex array"
	KindBuffer      Kind = "buffer"
	KindTexture     Kind = "texture"
)

var Kinds = []Kind{KindShader, KindProgram, KindVertexArray, KindBuffer, KindTexture}

type shader struct {
	stage    pulse.ShaderStage
	compiled bool
	iface    shaderInterface
}

type program struct {
	attached  []uint32
	linked    bool
	locations map[string]int32
}

// Upload is the data of a TexImage2D call.
type Upload struct {
	Width  int32
	Height int32
	Pixels []byte
	Params pulse.TextureParams
}

// Attribute is the data of a VertexAttribPointer call.
type Attribute struct {
	VertexArray uint32
	Location    uint32
	Components  int32
	Stride      int32
	Offset      int
}

// Draw is a recorded draw call.
type Draw struct {
	Program     uint32
	VertexArray uint32
	Primitive   pulse.Primitive
	Indexed     bool
	First       int32
	Count       int32
	Textures    map[uint32]uint32
}

type GL struct {
	nextHandle uint32

	live    map[uint32]Kind
	Created map[Kind]int
	Deleted map[Kind]int

	shaders  map[uint32]*shader
	programs map[uint32]*program

	Buffers    map[uint32][]byte
	Textures   map[uint32]Upload
	Attributes []Attribute

	// CurrentProgram is the program bound with UseProgram.
	CurrentProgram uint32
	// CurrentVertexArray is the vertex array bound with BindVertexArray.
	CurrentVertexArray uint32
	// BoundTextures maps texture units to textures.
	BoundTextures map[uint32]uint32

	// UniformLookups counts calls to UniformLocation.
	UniformLookups int
	// Uniforms holds the last value set per program and location.
	Uniforms map[uint32]map[int32]any

	Viewports    [][4]int32
	ClearColors  [][4]float32
	Clears       int
	DepthClears  int
	PolygonModes []pulse.FillMode
	Capabilities map[pulse.Capability]bool
	Draws        []Draw

	// Errors collects misuse of the API, e.g. deleting an object twice.
	Errors []string
}

var _ pulse.GL = (*GL)(nil)

func New() *GL {
	return &GL{
		live:          map[uint32]Kind{},
		Created:       map[Kind]int{},
		Deleted:       map[Kind]int{},
		shaders:       map[uint32]*shader{},
		programs:      map[uint32]*program{},
		Buffers:       map[uint32][]byte{},
		Textures:      map[uint32]Upload{},
		BoundTextures: map[uint32]uint32{},
		Uniforms:      map[uint32]map[int32]any{},
		Capabilities:  map[pulse.Capability]bool{},
	}
}

// Live returns the number of objects of the given kind that were created
// and not deleted yet.
func (g *GL) Live(kind Kind) int {
	return g.Created[kind] - g.Deleted[kind]
}

// LiveTotal returns the number of objects of all kinds that are not deleted yet.
func (g *GL) LiveTotal() int {
	return len(g.live)
}

// IsLinked returns true if the program exists and was linked successfully.
func (g *GL) IsLinked(handle uint32) bool {
	p, ok := g.programs[handle]
	return ok && p.linked
}

func (g *GL) create(kind Kind) uint32 {
	g.nextHandle++
	g.live[g.nextHandle] = kind
	g.Created[kind]++
	return g.nextHandle
}

func (g *GL) delete(kind Kind, handle uint32) bool {
	if handle == 0 {
		// deleting the zero object is silently ignored by GL
		return false
	}

	if g.live[handle] != kind {
		g.errorf("delete %s %d: no such object", kind, handle)
		return false
	}

	delete(g.live, handle)
	g.Deleted[kind]++
	return true
}

func (g *GL) errorf(format string, args ...any) {
	g.Errors = append(g.Errors, fmt.Sprintf(format, args...))
}

func (g *GL) CreateShader(stage pulse.ShaderStage) uint32 {
	handle := g.create(KindShader)
	g.shaders[handle] = &shader{stage: stage}
	return handle
}

func (g *GL) CompileShader(handle uint32, source string) (bool, string) {
	sh, ok := g.shaders[handle]
	if !ok {
		g.errorf("compile shader %d: no such shader", handle)
		return false, "invalid shader"
	}

	iface, infoLog, ok := compileGLSL(sh.stage, source)
	sh.compiled = ok
	sh.iface = iface
	return ok, infoLog
}

func (g *GL) DeleteShader(handle uint32) {
	if g.delete(KindShader, handle) {
		delete(g.shaders, handle)
	}
}

func (g *GL) CreateProgram() uint32 {
	handle := g.create(KindProgram)
	g.programs[handle] = &program{}
	return handle
}

func (g *GL) AttachShader(programHandle, shaderHandle uint32) {
	p, ok := g.programs[programHandle]
	if !ok {
		g.errorf("attach shader: no such program %d", programHandle)
		return
	}

	if _, ok := g.shaders[shaderHandle]; !ok {
		g.errorf("attach shader: no such shader %d", shaderHandle)
		return
	}

	p.attached = append(p.attached, shaderHandle)
}

func (g *GL) LinkProgram(handle uint32) (bool, string) {
	p, ok := g.programs[handle]
	if !ok {
		g.errorf("link program: no such program %d", handle)
		return false, "invalid program"
	}

	var vertex, fragment *shaderInterface

	for _, shaderHandle := range p.attached {
		sh, ok := g.shaders[shaderHandle]
		if !ok {
			continue
		}

		if !sh.compiled {
			return false, fmt.Sprintf("error: %s shader %d is not compiled", sh.stage, shaderHandle)
		}

		switch sh.stage {
		case pulse.VertexStage:
			vertex = &sh.iface
		case pulse.FragmentStage:
			fragment = &sh.iface
		}
	}

	locations, infoLog, ok := linkGLSL(vertex, fragment)
	p.linked = ok
	p.locations = locations
	return ok, infoLog
}

func (g *GL) UseProgram(handle uint32) {
	if handle != 0 && !g.IsLinked(handle) {
		g.errorf("use program %d: not a linked program", handle)
	}

	g.CurrentProgram = handle
}

func (g *GL) DeleteProgram(handle uint32) {
	if g.delete(KindProgram, handle) {
		delete(g.programs, handle)
		delete(g.Uniforms, handle)

		if g.CurrentProgram == handle {
			g.CurrentProgram = 0
		}
	}
}

func (g *GL) UniformLocation(handle uint32, name string) int32 {
	g.UniformLookups++

	p, ok := g.programs[handle]
	if !ok || !p.linked {
		g.errorf("uniform location %q: program %d is not linked", name, handle)
		return -1
	}

	location, ok := p.locations[name]
	if !ok {
		return -1
	}

	return location
}

func (g *GL) setUniform(location int32, value any) {
	if g.CurrentProgram == 0 {
		g.errorf("set uniform %d: no program in use", location)
		return
	}

	values := g.Uniforms[g.CurrentProgram]
	if values == nil {
		values = map[int32]any{}
		g.Uniforms[g.CurrentProgram] = values
	}

	values[location] = value
}

// Uniform returns the last value set for the named uniform of the program.
func (g *GL) Uniform(programHandle uint32, name string) (any, bool) {
	p, ok := g.programs[programHandle]
	if !ok {
		return nil, false
	}

	location, ok := p.locations[name]
	if !ok {
		return nil, false
	}

	value, ok := g.Uniforms[programHandle][location]
	return value, ok
}

func (g *GL) Uniform1i(location int32, value int32) {
	g.setUniform(location, value)
}

func (g *GL) Uniform1f(location int32, value float32) {
	g.setUniform(location, value)
}

func (g *GL) Uniform2f(location int32, x, y float32) {
	g.setUniform(location, [2]float32{x, y})
}

func (g *GL) Uniform3f(location int32, x, y, z float32) {
	g.setUniform(location, [3]float32{x, y, z})
}

func (g *GL) Uniform4f(location int32, x, y, z, w float32) {
	g.setUniform(location, [4]float32{x, y, z, w})
}

func (g *GL) UniformMatrix4f(location int32, value [16]float32) {
	g.setUniform(location, value)
}

func (g *GL) CreateVertexArray() uint32 {
	return g.create(KindVertexArray)
}

func (g *GL) BindVertexArray(vao uint32) {
	if vao != 0 && g.live[vao] != KindVertexArray {
		g.errorf("bind vertex array %d: no such vertex array", vao)
	}

	g.CurrentVertexArray = vao
}

func (g *GL) DeleteVertexArray(vao uint32) {
	g.delete(KindVertexArray, vao)

	if g.CurrentVertexArray == vao {
		g.CurrentVertexArray = 0
	}
}

func (g *GL) CreateBuffer() uint32 {
	return g.create(KindBuffer)
}

func (g *GL) BufferData(target pulse.BufferTarget, buffer uint32, data []byte) {
	if g.live[buffer] != KindBuffer {
		g.errorf("buffer data: no such buffer %d", buffer)
		return
	}

	if target == pulse.ElementArrayBuffer && g.CurrentVertexArray == 0 {
		g.errorf("buffer data: element buffer %d uploaded without a bound vertex array", buffer)
	}

	g.Buffers[buffer] = slices.Clone(data)
}

func (g *GL) DeleteBuffer(buffer uint32) {
	if g.delete(KindBuffer, buffer) {
		delete(g.Buffers, buffer)
	}
}

func (g *GL) VertexAttribPointer(location uint32, components int32, stride int32, offset int) {
	if g.CurrentVertexArray == 0 {
		g.errorf("vertex attrib pointer %d: no vertex array bound", location)
	}

	g.Attributes = append(g.Attributes, Attribute{
		VertexArray: g.CurrentVertexArray,
		Location:    location,
		Components:  components,
		Stride:      stride,
		Offset:      offset,
	})
}

func (g *GL) CreateTexture() uint32 {
	return g.create(KindTexture)
}

func (g *GL) TexImage2D(texture uint32, width, height int32, pixels []byte, params pulse.TextureParams) {
	if g.live[texture] != KindTexture {
		g.errorf("tex image: no such texture %d", texture)
		return
	}

	if int(width)*int(height)*4 != len(pixels) {
		g.errorf("tex image: %d bytes do not match %dx%d rgba", len(pixels), width, height)
	}

	g.Textures[texture] = Upload{
		Width:  width,
		Height: height,
		Pixels: slices.Clone(pixels),
		Params: params,
	}
}

func (g *GL) BindTexture(unit uint32, texture uint32) {
	if texture != 0 && g.live[texture] != KindTexture {
		g.errorf("bind texture %d: no such texture", texture)
	}

	g.BoundTextures[unit] = texture
}

func (g *GL) DeleteTexture(texture uint32) {
	if g.delete(KindTexture, texture) {
		delete(g.Textures, texture)

		for unit, bound := range g.BoundTextures {
			if bound == texture {
				delete(g.BoundTextures, unit)
			}
		}
	}
}

func (g *GL) Viewport(x, y, width, height int32) {
	g.Viewports = append(g.Viewports, [4]int32{x, y, width, height})
}

// LastViewport returns the viewport of the most recent Viewport call.
func (g *GL) LastViewport() [4]int32 {
	if len(g.Viewports) == 0 {
		return [4]int32{}
	}

	return g.Viewports[len(g.Viewports)-1]
}

func (g *GL) ClearColor(r, gr, b, a float32) {
	g.ClearColors = append(g.ClearColors, [4]float32{r, gr, b, a})
}

func (g *GL) Clear(depth bool) {
	g.Clears++

	if depth {
		g.DepthClears++
	}
}

func (g *GL) PolygonMode(mode pulse.FillMode) {
	g.PolygonModes = append(g.PolygonModes, mode)
}

func (g *GL) SetCapability(capability pulse.Capability, enabled bool) {
	g.Capabilities[capability] = enabled
}

func (g *GL) DrawArrays(mode pulse.Primitive, first, count int32) {
	g.draw(mode, false, first, count)
}

func (g *GL) DrawElements(mode pulse.Primitive, count int32, offset int) {
	g.draw(mode, true, int32(offset/4), count)
}

func (g *GL) draw(mode pulse.Primitive, indexed bool, first, count int32) {
	if g.CurrentProgram == 0 {
		g.errorf("draw: no program in use")
	}

	if g.CurrentVertexArray == 0 {
		g.errorf("draw: no vertex array bound")
	}

	textures := map[uint32]uint32{}
	for unit, texture := range g.BoundTextures {
		textures[unit] = texture
	}

	g.Draws = append(g.Draws, Draw{
		Program:     g.CurrentProgram,
		VertexArray: g.CurrentVertexArray,
		Primitive:   mode,
		Indexed:     indexed,
		First:       first,
		Count:       count,
		Textures:    textures,
	})
}
