package pulse

import (
	"errors"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrUnknownUniform is returned by Program.Lookup for names that are not an
// active uniform of the linked program.
var ErrUnknownUniform = errors.New("unknown uniform")

var uniformCacheSize = 64

// Program is a linked pair of vertex and fragment shaders.
//
// Uniform setters resolve the uniform by name and set the value on the
// currently bound program, so Use must have been called before. Setting a
// uniform the program does not have is a silent no-op: shader variants may
// omit uniforms that are optimized away or not needed. Use Lookup to fail
// on unknown names instead.
type Program struct {
	gl     GL
	handle uint32

	// a linked program never changes its uniform layout,
	// so a cached location is always equal to a fresh lookup.
	locations *lru.Cache[string, int32]
}

// NewProgram compiles both stages and links them into a program. Any failure
// is returned as *CompileError or *LinkError and no GL objects are left behind.
// The program is released together with the context.
func NewProgram(ctx *Context, vertexSource, fragmentSource string) (*Program, error) {
	locations, err := lru.New[string, int32](uniformCacheSize)
	if err != nil {
		return nil, fmt.Errorf("uniform cache: %w", err)
	}

	vertex, err := CompileShader(ctx.GL, VertexStage, vertexSource)
	if err != nil {
		return nil, err
	}

	defer vertex.Release()

	fragment, err := CompileShader(ctx.GL, FragmentStage, fragmentSource)
	if err != nil {
		return nil, err
	}

	defer fragment.Release()

	handle := ctx.CreateProgram()
	ctx.AttachShader(handle, vertex.handle)
	ctx.AttachShader(handle, fragment.handle)

	ok, infoLog := ctx.LinkProgram(handle)
	if !ok {
		ctx.DeleteProgram(handle)
		return nil, &LinkError{Log: infoLog}
	}

	program := &Program{
		gl:        ctx.GL,
		handle:    handle,
		locations: locations,
	}

	ctx.track(program)

	slog.Debug("Program linked", slog.Int("handle", int(handle)))

	return program, nil
}

// LoadProgram reads the vertex and fragment shader sources from
// the given files and builds a program from them.
func LoadProgram(ctx *Context, vertexPath, fragmentPath string) (*Program, error) {
	vertexSource, err := readSource(vertexPath)
	if err != nil {
		return nil, err
	}

	fragmentSource, err := readSource(fragmentPath)
	if err != nil {
		return nil, err
	}

	program, err := NewProgram(ctx, vertexSource, fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("program %q + %q: %w", vertexPath, fragmentPath, err)
	}

	return program, nil
}

// Use makes this the active program for the following draw calls.
func (p *Program) Use() {
	p.gl.UseProgram(p.handle)
}

// Lookup resolves the location of the uniform with the given name.
func (p *Program) Lookup(name string) (int32, error) {
	location, ok := p.location(name)
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownUniform, name)
	}

	return location, nil
}

func (p *Program) location(name string) (int32, bool) {
	location, ok := p.locations.Get(name)
	if !ok {
		location = p.gl.UniformLocation(p.handle, name)
		p.locations.Add(name, location)

		if location < 0 {
			slog.Debug("Program has no active uniform", slog.String("name", name))
		}
	}

	return location, location >= 0
}

func (p *Program) SetBool(name string, value bool) {
	var intValue int32
	if value {
		intValue = 1
	}

	p.SetInt(name, intValue)
}

func (p *Program) SetInt(name string, value int32) {
	if location, ok := p.location(name); ok {
		p.gl.Uniform1i(location, value)
	}
}

func (p *Program) SetFloat(name string, value float32) {
	if location, ok := p.location(name); ok {
		p.gl.Uniform1f(location, value)
	}
}

func (p *Program) SetVec2(name string, value [2]float32) {
	if location, ok := p.location(name); ok {
		p.gl.Uniform2f(location, value[0], value[1])
	}
}

func (p *Program) SetVec3(name string, value [3]float32) {
	if location, ok := p.location(name); ok {
		p.gl.Uniform3f(location, value[0], value[1], value[2])
	}
}

func (p *Program) SetVec4(name string, value [4]float32) {
	if location, ok := p.location(name); ok {
		p.gl.Uniform4f(location, value[0], value[1], value[2], value[3])
	}
}

func (p *Program) SetMat4(name string, value [16]float32) {
	if location, ok := p.location(name); ok {
		p.gl.UniformMatrix4f(location, value)
	}
}

// Release deletes the program. Calling Release more than once has no effect.
func (p *Program) Release() {
	if p.handle != 0 {
		p.gl.DeleteProgram(p.handle)
		p.handle = 0
		p.locations.Purge()
	}
}
