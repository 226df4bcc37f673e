package graphics

import (
	"errors"
	"fmt"
)

var (
	// ErrNoShaders is returned by Link when called without shaders.
	ErrNoShaders = errors.New("graphics: no shaders to link")
	// ErrShaderReleased is returned when a shader that an earlier Link
	// already consumed is linked again.
	ErrShaderReleased = errors.New("graphics: shader already released")
	// ErrEmptyMesh is returned for vertex data that holds no whole vertex.
	ErrEmptyMesh = errors.New("graphics: mesh has no vertices")
)

// CompileError reports a shader that failed to compile.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

// LinkError reports a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "failed to link program: " + e.Log
}

// ResourceError means the driver refused to allocate an object, which
// usually indicates a broken or missing GL context.
type ResourceError struct {
	Object string
}

func (e *ResourceError) Error() string {
	return "driver could not allocate " + e.Object
}
