package pulse_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oliverbestmann/learngl/pulse"
	"github.com/oliverbestmann/learngl/pulse/pulsetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vertexSource = `#version 330 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

out vec3 ourColor;

uniform mat4 transform;

void main()
{
    gl_Position = transform * vec4(aPos, 1.0);
    ourColor = aColor;
}
`

const fragmentSource = `#version 330 core
in vec3 ourColor;
out vec4 FragColor;

uniform float mixValue;

void main()
{
    FragColor = vec4(ourColor * mixValue, 1.0);
}
`

func newContext() (*pulsetest.GL, *pulse.Context) {
	gl := pulsetest.New()
	return gl, pulse.NewContext(gl)
}

func TestNewProgramLinksValidPair(t *testing.T) {
	gl, ctx := newContext()

	program, err := pulse.NewProgram(ctx, vertexSource, fragmentSource)
	require.NoError(t, err)

	program.Use()
	assert.NotZero(t, gl.CurrentProgram)
	assert.True(t, gl.IsLinked(gl.CurrentProgram))
	assert.Empty(t, gl.Errors)

	// stage objects are not needed after linking
	assert.Equal(t, 2, gl.Created[pulsetest.KindShader])
	assert.Zero(t, gl.Live(pulsetest.KindShader))
	assert.Equal(t, 1, gl.Live(pulsetest.KindProgram))
}

func TestNewProgramReportsInvalidUniformCache(t *testing.T) {
	defer pulse.SetUniformCacheSize(0)()

	gl, ctx := newContext()

	_, err := pulse.NewProgram(ctx, vertexSource, fragmentSource)
	require.ErrorContains(t, err, "uniform cache")

	assert.Zero(t, gl.LiveTotal())
	assert.Zero(t, ctx.Resources())
}

func TestNewProgramReportsVertexSyntaxError(t *testing.T) {
	gl, ctx := newContext()

	broken := `#version 330 core
layout (location = 0) in vec3 aPos;

void main()
{
    gl_Position = vec4(aPos, 1.0)
}
`

	program, err := pulse.NewProgram(ctx, broken, fragmentSource)
	assert.Nil(t, program)

	var compileErr *pulse.CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, pulse.VertexStage, compileErr.Stage)
	assert.Contains(t, compileErr.Log, "syntax error")
	assert.True(t, pulse.IsShaderError(err))

	assert.Zero(t, gl.LiveTotal(), "no objects must leak")
	assert.Empty(t, gl.Errors)
}

func TestNewProgramReportsFragmentCompileError(t *testing.T) {
	gl, ctx := newContext()

	broken := `#version 330 core
out vec4 FragColor;

void main()
{
    FragColor = vec4(1.0, 0.5, 0.2, 1.0);
`

	_, err := pulse.NewProgram(ctx, vertexSource, broken)

	var compileErr *pulse.CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, pulse.FragmentStage, compileErr.Stage)
	assert.Contains(t, err.Error(), "compile fragment shader")

	assert.Zero(t, gl.LiveTotal())
}

func TestNewProgramReportsMissingVersion(t *testing.T) {
	_, ctx := newContext()

	_, err := pulse.NewProgram(ctx, "void main() {}\n", fragmentSource)

	var compileErr *pulse.CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Contains(t, compileErr.Log, "#version")
}

func TestNewProgramReportsLinkErrorOnInterfaceMismatch(t *testing.T) {
	gl, ctx := newContext()

	fragment := `#version 330 core
in vec2 TexCoord;
out vec4 FragColor;

void main()
{
    FragColor = vec4(TexCoord, 0.0, 1.0);
}
`

	program, err := pulse.NewProgram(ctx, vertexSource, fragment)
	assert.Nil(t, program)

	var linkErr *pulse.LinkError
	require.ErrorAs(t, err, &linkErr)
	assert.Contains(t, linkErr.Log, "TexCoord")
	assert.True(t, pulse.IsShaderError(err))

	assert.Zero(t, gl.LiveTotal(), "failed program must be deleted")
}

func TestNewProgramReportsLinkErrorOnTypeMismatch(t *testing.T) {
	_, ctx := newContext()

	fragment := `#version 330 core
in vec4 ourColor;
out vec4 FragColor;

void main()
{
    FragColor = ourColor;
}
`

	_, err := pulse.NewProgram(ctx, vertexSource, fragment)

	var linkErr *pulse.LinkError
	require.ErrorAs(t, err, &linkErr)
	assert.Contains(t, linkErr.Log, "ourColor")
}

func TestSetUniformOnUnknownNameIsNoop(t *testing.T) {
	gl, ctx := newContext()

	program, err := pulse.NewProgram(ctx, vertexSource, fragmentSource)
	require.NoError(t, err)

	program.Use()

	assert.NotPanics(t, func() {
		program.SetFloat("doesNotExist", 1)
		program.SetMat4("doesNotExist", [16]float32{})
		program.SetBool("doesNotExist", true)
	})

	assert.Empty(t, gl.Uniforms[gl.CurrentProgram])
	assert.Empty(t, gl.Errors)
}

func TestLookupReportsUnknownUniform(t *testing.T) {
	_, ctx := newContext()

	program, err := pulse.NewProgram(ctx, vertexSource, fragmentSource)
	require.NoError(t, err)

	_, err = program.Lookup("doesNotExist")
	assert.ErrorIs(t, err, pulse.ErrUnknownUniform)

	location, err := program.Lookup("mixValue")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, location, int32(0))
}

func TestSetUniformSetsValue(t *testing.T) {
	gl, ctx := newContext()

	program, err := pulse.NewProgram(ctx, vertexSource, fragmentSource)
	require.NoError(t, err)

	program.Use()
	program.SetFloat("mixValue", 0.25)

	transform := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0.5, 0, 0, 1}
	program.SetMat4("transform", transform)

	value, ok := gl.Uniform(gl.CurrentProgram, "mixValue")
	require.True(t, ok)
	assert.Equal(t, float32(0.25), value)

	value, ok = gl.Uniform(gl.CurrentProgram, "transform")
	require.True(t, ok)
	assert.Equal(t, transform, value)
}

func TestUniformLocationsAreCached(t *testing.T) {
	gl, ctx := newContext()

	program, err := pulse.NewProgram(ctx, vertexSource, fragmentSource)
	require.NoError(t, err)

	program.Use()

	for range 10 {
		program.SetFloat("mixValue", 0.5)
		program.SetFloat("doesNotExist", 0.5)
	}

	assert.Equal(t, 2, gl.UniformLookups)
}

func TestProgramReleaseIsIdempotent(t *testing.T) {
	gl, ctx := newContext()

	program, err := pulse.NewProgram(ctx, vertexSource, fragmentSource)
	require.NoError(t, err)

	program.Release()
	program.Release()
	ctx.Release()

	assert.Equal(t, 1, gl.Deleted[pulsetest.KindProgram])
	assert.Empty(t, gl.Errors)
}

func TestLoadProgramReadsFiles(t *testing.T) {
	gl, ctx := newContext()

	dir := t.TempDir()
	vertexPath := filepath.Join(dir, "shader.vert")
	fragmentPath := filepath.Join(dir, "shader.frag")

	require.NoError(t, os.WriteFile(vertexPath, []byte(vertexSource), 0o644))
	require.NoError(t, os.WriteFile(fragmentPath, []byte(fragmentSource), 0o644))

	program, err := pulse.LoadProgram(ctx, vertexPath, fragmentPath)
	require.NoError(t, err)

	program.Use()
	assert.True(t, gl.IsLinked(gl.CurrentProgram))
}

func TestLoadProgramReportsMissingFile(t *testing.T) {
	gl, ctx := newContext()

	dir := t.TempDir()
	vertexPath := filepath.Join(dir, "shader.vert")
	require.NoError(t, os.WriteFile(vertexPath, []byte(vertexSource), 0o644))

	_, err := pulse.LoadProgram(ctx, vertexPath, filepath.Join(dir, "missing.frag"))

	var sourceErr *pulse.SourceError
	require.ErrorAs(t, err, &sourceErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, sourceErr.Path, "missing.frag")

	assert.Zero(t, gl.LiveTotal())
}

func TestShaderStageString(t *testing.T) {
	assert.Equal(t, "vertex", pulse.VertexStage.String())
	assert.Equal(t, "fragment", pulse.FragmentStage.String())
	assert.Equal(t, "ShaderStage(7)", pulse.ShaderStage(7).String())
}
