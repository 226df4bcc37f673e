package graphics

import "fmt"

// Stage identifies a programmable pipeline stage.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
	StageGeometry
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageGeometry:
		return "geometry"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Shader is a single compiled shader stage. It is owned by the caller until
// a successful Link consumes it.
type Shader struct {
	ctx   *Context
	id    uint32
	stage Stage
}

// Compile creates a shader object for the given stage and compiles source
// into it. On failure the shader object is released and a *CompileError
// carrying the driver's log is returned.
func Compile(ctx *Context, source string, stage Stage) (*Shader, error) {
	d := ctx.d
	id := d.CreateShader(stage)
	if id == 0 {
		return nil, &ResourceError{Object: stage.String() + " shader"}
	}

	d.ShaderSource(id, source)
	d.CompileShader(id)

	if !d.ShaderCompiled(id) {
		log := infoLog(d.ShaderInfoLog(id))
		d.DeleteShader(id)
		return nil, &CompileError{Stage: stage, Log: log}
	}
	return &Shader{ctx: ctx, id: id, stage: stage}, nil
}

// ID returns the driver handle, or 0 once the shader has been released.
func (s *Shader) ID() uint32 { return s.id }

// Stage returns the stage the shader was compiled for.
func (s *Shader) Stage() Stage { return s.stage }

// Compiled reports whether the shader still holds a compiled driver object.
func (s *Shader) Compiled() bool { return s.id != 0 }

// Delete releases the driver object. It is safe to call more than once, so
// callers can defer it right after Compile even when Link releases it first.
func (s *Shader) Delete() {
	if s.id == 0 {
		return
	}
	s.ctx.d.DeleteShader(s.id)
	s.id = 0
}

func infoLog(log string) string {
	if log == "" {
		return "driver reported failure without a log"
	}
	return log
}
