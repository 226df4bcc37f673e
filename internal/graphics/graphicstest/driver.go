// Package graphicstest provides an in-memory graphics.Driver for tests.
//
// The fake models just enough of a GL implementation to exercise the
// compile and link state machines: a shader compiles when it has a main
// function and balanced brackets, a program links when it has a vertex and
// a fragment stage and every fragment input is written by the previous
// stage, and only uniforms that are referenced past their declaration are
// active.
package graphicstest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"glpipeline/internal/graphics"
)

// Upload is one uniform write as seen by the driver.
type Upload struct {
	Entry string
	Data  []float32
}

// Draw is one recorded draw call.
type Draw struct {
	Program   uint32
	VAO       uint32
	Primitive graphics.Primitive
	First     int32
	Count     int32
	// Uniforms is a copy of the program's uniform state at draw time.
	Uniforms map[string]Upload
}

type shader struct {
	stage    graphics.Stage
	source   string
	compiled bool
	log      string
}

type program struct {
	attached []uint32
	linked   bool
	log      string
	names    map[int32]string
	locs     map[string]int32
	values   map[int32]Upload
}

// Driver is a recording graphics.Driver.
type Driver struct {
	// FailAlloc makes every object constructor return 0.
	FailAlloc bool
	// AllocLimit, when positive, fails allocations once that many objects
	// have been created.
	AllocLimit int
	// RecycleIDs hands released ids out again, oldest first, the way real
	// drivers reuse names.
	RecycleIDs bool

	// Bound is the program most recently passed to UseProgram.
	Bound uint32
	// Calls lists the names of driver entry points in call order.
	Calls []string
	// Errors collects calls a real driver would reject.
	Errors []string
	Draws  []Draw

	Allocs   int
	Releases int

	ViewportRect [4]int32
	Color        [4]float32
	Clears       int
	// Pixels, when set, backs ReadPixels. It receives the requested rect.
	Pixels func(x, y, width, height int32) []byte

	next     uint32
	free     []uint32
	shaders  map[uint32]*shader
	programs map[uint32]*program
	vaos     map[uint32]bool
	buffers  map[uint32][]float32

	boundVAO uint32
	boundVBO uint32
}

var _ graphics.Driver = (*Driver)(nil)

// New returns an empty fake driver.
func New() *Driver {
	return &Driver{
		shaders:  make(map[uint32]*shader),
		programs: make(map[uint32]*program),
		vaos:     make(map[uint32]bool),
		buffers:  make(map[uint32][]float32),
	}
}

// Live returns the number of allocated objects not yet released.
func (d *Driver) Live() int { return d.Allocs - d.Releases }

// LiveShaders returns the number of shader objects not yet deleted.
func (d *Driver) LiveShaders() int { return len(d.shaders) }

// LivePrograms returns the number of program objects not yet deleted.
func (d *Driver) LivePrograms() int { return len(d.programs) }

// Uniform returns the last value written to the named uniform of program.
func (d *Driver) Uniform(program uint32, name string) (Upload, bool) {
	p, ok := d.programs[program]
	if !ok {
		return Upload{}, false
	}
	loc, ok := p.locs[name]
	if !ok {
		return Upload{}, false
	}
	v, ok := p.values[loc]
	return v, ok
}

// Count returns how many times the named entry point was called.
func (d *Driver) Count(entry string) int {
	n := 0
	for _, c := range d.Calls {
		if c == entry {
			n++
		}
	}
	return n
}

// Buffer returns the data uploaded to a vertex buffer.
func (d *Driver) Buffer(vbo uint32) []float32 { return d.buffers[vbo] }

func (d *Driver) call(name string) { d.Calls = append(d.Calls, name) }

func (d *Driver) fail(format string, args ...any) {
	d.Errors = append(d.Errors, fmt.Sprintf(format, args...))
}

func (d *Driver) alloc() uint32 {
	if d.FailAlloc || (d.AllocLimit > 0 && d.Allocs >= d.AllocLimit) {
		return 0
	}
	d.Allocs++
	if d.RecycleIDs && len(d.free) > 0 {
		id := d.free[0]
		d.free = d.free[1:]
		return id
	}
	d.next++
	return d.next
}

func (d *Driver) release(id uint32) {
	d.Releases++
	if d.RecycleIDs {
		d.free = append(d.free, id)
	}
}

func (d *Driver) CreateShader(stage graphics.Stage) uint32 {
	d.call("CreateShader")
	id := d.alloc()
	if id != 0 {
		d.shaders[id] = &shader{stage: stage}
	}
	return id
}

func (d *Driver) ShaderSource(id uint32, source string) {
	d.call("ShaderSource")
	if s, ok := d.shaders[id]; ok {
		s.source = source
		return
	}
	d.fail("ShaderSource: unknown shader %d", id)
}

func (d *Driver) CompileShader(id uint32) {
	d.call("CompileShader")
	s, ok := d.shaders[id]
	if !ok {
		d.fail("CompileShader: unknown shader %d", id)
		return
	}
	s.log = compile(s.source)
	s.compiled = s.log == ""
}

func (d *Driver) ShaderCompiled(id uint32) bool {
	s, ok := d.shaders[id]
	return ok && s.compiled
}

func (d *Driver) ShaderInfoLog(id uint32) string {
	if s, ok := d.shaders[id]; ok {
		return s.log
	}
	return ""
}

func (d *Driver) DeleteShader(id uint32) {
	d.call("DeleteShader")
	if _, ok := d.shaders[id]; !ok {
		d.fail("DeleteShader: unknown shader %d", id)
		return
	}
	delete(d.shaders, id)
	d.release(id)
}

func (d *Driver) CreateProgram() uint32 {
	d.call("CreateProgram")
	id := d.alloc()
	if id != 0 {
		d.programs[id] = &program{}
	}
	return id
}

func (d *Driver) AttachShader(prog, sh uint32) {
	d.call("AttachShader")
	p, ok := d.programs[prog]
	if !ok {
		d.fail("AttachShader: unknown program %d", prog)
		return
	}
	if _, ok := d.shaders[sh]; !ok {
		d.fail("AttachShader: unknown shader %d", sh)
		return
	}
	p.attached = append(p.attached, sh)
}

func (d *Driver) LinkProgram(prog uint32) {
	d.call("LinkProgram")
	p, ok := d.programs[prog]
	if !ok {
		d.fail("LinkProgram: unknown program %d", prog)
		return
	}
	stages := make(map[graphics.Stage]*shader)
	for _, id := range p.attached {
		s := d.shaders[id]
		if s == nil || !s.compiled {
			p.log = fmt.Sprintf("error: attached shader %d is not compiled\n", id)
			return
		}
		stages[s.stage] = s
	}
	p.log = link(stages)
	p.linked = p.log == ""
	if p.linked {
		p.locs = activeUniforms(stages)
		p.names = make(map[int32]string, len(p.locs))
		for name, loc := range p.locs {
			p.names[loc] = name
		}
		p.values = make(map[int32]Upload)
	}
}

func (d *Driver) ProgramLinked(prog uint32) bool {
	p, ok := d.programs[prog]
	return ok && p.linked
}

func (d *Driver) ProgramInfoLog(prog uint32) string {
	if p, ok := d.programs[prog]; ok {
		return p.log
	}
	return ""
}

func (d *Driver) DeleteProgram(prog uint32) {
	d.call("DeleteProgram")
	if _, ok := d.programs[prog]; !ok {
		d.fail("DeleteProgram: unknown program %d", prog)
		return
	}
	if d.Bound == prog {
		d.fail("DeleteProgram: program %d is still bound", prog)
	}
	delete(d.programs, prog)
	d.release(prog)
}

func (d *Driver) UseProgram(prog uint32) {
	d.call("UseProgram")
	if prog != 0 {
		p, ok := d.programs[prog]
		if !ok || !p.linked {
			d.fail("UseProgram: program %d is not linked", prog)
			return
		}
	}
	d.Bound = prog
}

func (d *Driver) GetUniformLocation(prog uint32, name string) int32 {
	d.call("GetUniformLocation")
	p, ok := d.programs[prog]
	if !ok || !p.linked {
		d.fail("GetUniformLocation: program %d is not linked", prog)
		return -1
	}
	if loc, ok := p.locs[name]; ok {
		return loc
	}
	return -1
}

func (d *Driver) upload(entry string, loc int32, data ...float32) {
	d.call(entry)
	p, ok := d.programs[d.Bound]
	if !ok {
		d.fail("%s: no program bound", entry)
		return
	}
	if _, ok := p.names[loc]; !ok {
		d.fail("%s: location %d not active in program %d", entry, loc, d.Bound)
		return
	}
	p.values[loc] = Upload{Entry: entry, Data: data}
}

func (d *Driver) Uniform1f(loc int32, v float32)    { d.upload("Uniform1f", loc, v) }
func (d *Driver) Uniform2f(loc int32, v [2]float32) { d.upload("Uniform2f", loc, v[:]...) }
func (d *Driver) Uniform3f(loc int32, v [3]float32) { d.upload("Uniform3f", loc, v[:]...) }
func (d *Driver) Uniform4f(loc int32, v [4]float32) { d.upload("Uniform4f", loc, v[:]...) }
func (d *Driver) UniformMatrix2(loc int32, m [4]float32) {
	d.upload("UniformMatrix2", loc, m[:]...)
}
func (d *Driver) UniformMatrix3(loc int32, m [9]float32) {
	d.upload("UniformMatrix3", loc, m[:]...)
}
func (d *Driver) UniformMatrix4(loc int32, m [16]float32) {
	d.upload("UniformMatrix4", loc, m[:]...)
}
func (d *Driver) UniformMatrix2x3(loc int32, m [6]float32) {
	d.upload("UniformMatrix2x3", loc, m[:]...)
}
func (d *Driver) UniformMatrix3x2(loc int32, m [6]float32) {
	d.upload("UniformMatrix3x2", loc, m[:]...)
}
func (d *Driver) UniformMatrix2x4(loc int32, m [8]float32) {
	d.upload("UniformMatrix2x4", loc, m[:]...)
}
func (d *Driver) UniformMatrix4x2(loc int32, m [8]float32) {
	d.upload("UniformMatrix4x2", loc, m[:]...)
}
func (d *Driver) UniformMatrix3x4(loc int32, m [12]float32) {
	d.upload("UniformMatrix3x4", loc, m[:]...)
}
func (d *Driver) UniformMatrix4x3(loc int32, m [12]float32) {
	d.upload("UniformMatrix4x3", loc, m[:]...)
}

func (d *Driver) GenVertexArray() uint32 {
	d.call("GenVertexArray")
	id := d.alloc()
	if id != 0 {
		d.vaos[id] = true
	}
	return id
}

func (d *Driver) BindVertexArray(vao uint32) {
	d.call("BindVertexArray")
	if vao != 0 && !d.vaos[vao] {
		d.fail("BindVertexArray: unknown vertex array %d", vao)
		return
	}
	d.boundVAO = vao
}

func (d *Driver) DeleteVertexArray(vao uint32) {
	d.call("DeleteVertexArray")
	if !d.vaos[vao] {
		d.fail("DeleteVertexArray: unknown vertex array %d", vao)
		return
	}
	delete(d.vaos, vao)
	d.release(vao)
}

func (d *Driver) GenBuffer() uint32 {
	d.call("GenBuffer")
	id := d.alloc()
	if id != 0 {
		d.buffers[id] = nil
	}
	return id
}

func (d *Driver) BindArrayBuffer(vbo uint32) {
	d.call("BindArrayBuffer")
	if _, ok := d.buffers[vbo]; vbo != 0 && !ok {
		d.fail("BindArrayBuffer: unknown buffer %d", vbo)
		return
	}
	d.boundVBO = vbo
}

func (d *Driver) ArrayBufferData(data []float32) {
	d.call("ArrayBufferData")
	if d.boundVBO == 0 {
		d.fail("ArrayBufferData: no buffer bound")
		return
	}
	d.buffers[d.boundVBO] = append([]float32(nil), data...)
}

func (d *Driver) DeleteBuffer(vbo uint32) {
	d.call("DeleteBuffer")
	if _, ok := d.buffers[vbo]; !ok {
		d.fail("DeleteBuffer: unknown buffer %d", vbo)
		return
	}
	delete(d.buffers, vbo)
	d.release(vbo)
}

func (d *Driver) VertexAttribPointer(index uint32, components, stride int32, offset int) {
	d.call("VertexAttribPointer")
	if d.boundVAO == 0 || d.boundVBO == 0 {
		d.fail("VertexAttribPointer: vertex array or buffer not bound")
	}
}

func (d *Driver) EnableVertexAttribArray(index uint32) {
	d.call("EnableVertexAttribArray")
	if d.boundVAO == 0 {
		d.fail("EnableVertexAttribArray: no vertex array bound")
	}
}

func (d *Driver) DrawArrays(primitive graphics.Primitive, first, count int32) {
	d.call("DrawArrays")
	p, ok := d.programs[d.Bound]
	if !ok {
		d.fail("DrawArrays: no program bound")
		return
	}
	if d.boundVAO == 0 {
		d.fail("DrawArrays: no vertex array bound")
		return
	}
	uniforms := make(map[string]Upload, len(p.values))
	for loc, v := range p.values {
		uniforms[p.names[loc]] = v
	}
	d.Draws = append(d.Draws, Draw{
		Program:   d.Bound,
		VAO:       d.boundVAO,
		Primitive: primitive,
		First:     first,
		Count:     count,
		Uniforms:  uniforms,
	})
}

func (d *Driver) Viewport(x, y, width, height int32) {
	d.call("Viewport")
	d.ViewportRect = [4]int32{x, y, width, height}
}

func (d *Driver) ClearColor(r, g, b, a float32) {
	d.call("ClearColor")
	d.Color = [4]float32{r, g, b, a}
}

func (d *Driver) Clear() {
	d.call("Clear")
	d.Clears++
}

func (d *Driver) ReadPixels(x, y, width, height int32) []byte {
	d.call("ReadPixels")
	if d.Pixels != nil {
		return d.Pixels(x, y, width, height)
	}
	return make([]byte, int(width)*int(height)*4)
}

var (
	declRe = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(?:flat\s+|smooth\s+|noperspective\s+)?(in|out|uniform)\s+(\w+)\s+(\w+)\s*(\[[^\]]*\])?\s*;`)
	mainRe = regexp.MustCompile(`\bvoid\s+main\s*\(`)
)

// compile returns an info log, empty on success.
func compile(source string) string {
	if !mainRe.MatchString(source) {
		return "ERROR: 0:1: 'main' : function not defined\n"
	}
	depth := map[rune]int{}
	pairs := map[rune]rune{')': '(', '}': '{', ']': '['}
	for i, line := range strings.Split(source, "\n") {
		for _, r := range line {
			switch r {
			case '(', '{', '[':
				depth[r]++
			case ')', '}', ']':
				depth[pairs[r]]--
				if depth[pairs[r]] < 0 {
					return fmt.Sprintf("ERROR: 0:%d: '%c' : syntax error: unexpected token\n", i+1, r)
				}
			}
		}
	}
	for _, n := range depth {
		if n != 0 {
			return "ERROR: 0:1: '' : syntax error: unexpected end of file\n"
		}
	}
	return ""
}

type decl struct {
	kind, typ, name string
}

func declarations(source string) []decl {
	var out []decl
	for _, m := range declRe.FindAllStringSubmatch(source, -1) {
		out = append(out, decl{kind: m[1], typ: m[2], name: m[3]})
	}
	return out
}

// link returns an info log, empty on success.
func link(stages map[graphics.Stage]*shader) string {
	vs, fs := stages[graphics.StageVertex], stages[graphics.StageFragment]
	if vs == nil {
		return "error: program has no vertex shader\n"
	}
	if fs == nil {
		return "error: program has no fragment shader\n"
	}
	prev := vs
	if gs := stages[graphics.StageGeometry]; gs != nil {
		prev = gs
	}
	outputs := make(map[string]string)
	for _, d := range declarations(prev.source) {
		if d.kind == "out" {
			outputs[d.name] = d.typ
		}
	}
	var log strings.Builder
	for _, d := range declarations(fs.source) {
		if d.kind != "in" {
			continue
		}
		typ, ok := outputs[d.name]
		switch {
		case !ok:
			fmt.Fprintf(&log, "error: fragment shader input '%s' is not written by the %s shader\n", d.name, prevName(stages))
		case typ != d.typ:
			fmt.Fprintf(&log, "error: type mismatch for '%s': %s vs %s\n", d.name, typ, d.typ)
		}
	}
	return log.String()
}

func prevName(stages map[graphics.Stage]*shader) string {
	if stages[graphics.StageGeometry] != nil {
		return "geometry"
	}
	return "vertex"
}

// activeUniforms assigns locations, in name order, to uniforms that are
// used somewhere besides their declaration.
func activeUniforms(stages map[graphics.Stage]*shader) map[string]int32 {
	var names []string
	seen := make(map[string]bool)
	for _, s := range stages {
		for _, d := range declarations(s.source) {
			if d.kind != "uniform" || seen[d.name] {
				continue
			}
			word := regexp.MustCompile(`\b` + regexp.QuoteMeta(d.name) + `\b`)
			if len(word.FindAllStringIndex(s.source, 2)) > 1 {
				seen[d.name] = true
				names = append(names, d.name)
			}
		}
	}
	sort.Strings(names)
	locs := make(map[string]int32, len(names))
	for i, name := range names {
		locs[name] = int32(i)
	}
	return locs
}
