package pulse

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// ShaderStage identifies the pipeline stage a shader is compiled for.
type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderStage(%d)", int(s))
	}
}

// CompileError reports a shader stage that failed to compile. Log holds
// the info log of the driver.
type CompileError struct {
	Stage ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s shader: %s", e.Stage, strings.TrimSpace(e.Log))
}

// LinkError reports a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "link program: " + strings.TrimSpace(e.Log)
}

// SourceError reports a shader source file that could not be read.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("read shader source %q: %s", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// IsShaderError returns true if the error was caused by a shader that failed
// to load, compile or link.
func IsShaderError(err error) bool {
	var compileErr *CompileError
	var linkErr *LinkError
	var sourceErr *SourceError

	return errors.As(err, &compileErr) || errors.As(err, &linkErr) || errors.As(err, &sourceErr)
}

type Shader struct {
	gl     GL
	handle uint32
	stage  ShaderStage
}

// CompileShader compiles a single shader stage. If compilation fails,
// the shader object is deleted and a *CompileError is returned.
func CompileShader(gl GL, stage ShaderStage, source string) (*Shader, error) {
	handle := gl.CreateShader(stage)

	ok, infoLog := gl.CompileShader(handle, source)
	if !ok {
		gl.DeleteShader(handle)
		return nil, &CompileError{Stage: stage, Log: infoLog}
	}

	if infoLog = strings.TrimSpace(infoLog); infoLog != "" {
		slog.Warn("Shader compiled with warnings",
			slog.String("stage", stage.String()),
			slog.String("log", infoLog),
		)
	}

	return &Shader{gl: gl, handle: handle, stage: stage}, nil
}

func (s *Shader) Stage() ShaderStage {
	return s.stage
}

// Release deletes the shader object. A shader attached to a linked program
// may be released right away, the program keeps its own copy.
func (s *Shader) Release() {
	if s.handle != 0 {
		s.gl.DeleteShader(s.handle)
		s.handle = 0
	}
}

func readSource(path string) (string, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return "", &SourceError{Path: path, Err: err}
	}

	return string(buf), nil
}
