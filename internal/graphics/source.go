package graphics

import (
	"fmt"
	"io/fs"
	"path"
)

// Source is the text of one shader stage.
type Source struct {
	Name  string
	Stage Stage
	Text  string
}

// StageFromName infers the stage from a file extension: .vert, .frag or .geom.
func StageFromName(name string) (Stage, bool) {
	switch path.Ext(name) {
	case ".vert":
		return StageVertex, true
	case ".frag":
		return StageFragment, true
	case ".geom":
		return StageGeometry, true
	}
	return 0, false
}

// LoadSources reads the named shader files from fsys.
func LoadSources(fsys fs.FS, names ...string) ([]Source, error) {
	sources := make([]Source, 0, len(names))
	for _, name := range names {
		stage, ok := StageFromName(name)
		if !ok {
			return nil, fmt.Errorf("could not infer shader stage of %q", name)
		}
		text, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("could not read %s shader file: %w", stage, err)
		}
		sources = append(sources, Source{Name: name, Stage: stage, Text: string(text)})
	}
	return sources, nil
}

// NewProgram compiles every source and links the results. Whatever step
// fails, every shader compiled so far is released before returning.
func NewProgram(ctx *Context, sources ...Source) (*Program, error) {
	shaders := make([]*Shader, 0, len(sources))
	defer func() {
		for _, s := range shaders {
			s.Delete()
		}
	}()

	for _, src := range sources {
		s, err := Compile(ctx, src.Text, src.Stage)
		if err != nil {
			if src.Name != "" {
				return nil, fmt.Errorf("%s: %w", src.Name, err)
			}
			return nil, err
		}
		shaders = append(shaders, s)
	}
	return Link(ctx, shaders...)
}
