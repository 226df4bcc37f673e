package graphics

import "fmt"

// Program is a linked shader program. A *Program only exists in the linked
// state: Link either returns one or fails without leaking a driver object.
type Program struct {
	ctx      *Context
	id       uint32
	uniforms map[string]UniformLocation
}

// Link attaches shaders to a new program object and links it.
//
// On success every shader is released, since the linked program keeps its
// own copy of the compiled code. A consumed shader cannot be linked again.
// On failure the program object is released, the shaders stay with the
// caller and a *LinkError carrying the driver's log is returned.
func Link(ctx *Context, shaders ...*Shader) (*Program, error) {
	if len(shaders) == 0 {
		return nil, ErrNoShaders
	}
	seen := make(map[*Shader]bool, len(shaders))
	for i, s := range shaders {
		if s == nil {
			return nil, fmt.Errorf("graphics: shader %d is nil", i)
		}
		if s.id == 0 {
			return nil, fmt.Errorf("%s shader %d: %w", s.stage, i, ErrShaderReleased)
		}
		if seen[s] {
			return nil, fmt.Errorf("graphics: shader %d attached twice", i)
		}
		seen[s] = true
	}

	d := ctx.d
	id := d.CreateProgram()
	if id == 0 {
		return nil, &ResourceError{Object: "program"}
	}
	for _, s := range shaders {
		d.AttachShader(id, s.id)
	}
	d.LinkProgram(id)

	if !d.ProgramLinked(id) {
		log := infoLog(d.ProgramInfoLog(id))
		d.DeleteProgram(id)
		return nil, &LinkError{Log: log}
	}

	for _, s := range shaders {
		s.Delete()
	}
	return &Program{
		ctx:      ctx,
		id:       id,
		uniforms: make(map[string]UniformLocation),
	}, nil
}

// ID returns the driver handle, or 0 once the program has been deleted.
func (p *Program) ID() uint32 { return p.id }

// Bind makes p the current program for draws and uniform writes.
func (p *Program) Bind() {
	p.mustBeLive("bind")
	p.ctx.use(p.id)
}

// Bound reports whether p is the current program.
func (p *Program) Bound() bool {
	return p.id != 0 && p.ctx.bound == p.id
}

// Uniform returns the location of the named uniform, or NoUniform when the
// program has no active uniform by that name. Results are cached per name.
func (p *Program) Uniform(name string) UniformLocation {
	p.mustBeLive("query")
	if u, ok := p.uniforms[name]; ok {
		return u
	}
	u := NoUniform
	if loc := p.ctx.d.GetUniformLocation(p.id, name); loc >= 0 {
		u = UniformLocation{owner: p, loc: loc}
	}
	p.uniforms[name] = u
	return u
}

// Set uploads v to the uniform at u. Writes through NoUniform are ignored:
// the uniform is not used by any stage. The program must be bound, and u must
// come from this program.
func (p *Program) Set(u UniformLocation, v Value) {
	if !u.Valid() {
		return
	}
	p.mustBeLive("set uniform on")
	if u.owner != p {
		panic(fmt.Sprintf("graphics: uniform location from another program used with program %d", p.id))
	}
	if p.ctx.bound != p.id {
		panic(fmt.Sprintf("graphics: uniform write to program %d while program %d is bound", p.id, p.ctx.bound))
	}
	v.upload(p.ctx.d, u.loc)
}

// SetNamed resolves name and sets it to v.
func (p *Program) SetNamed(name string, v Value) {
	p.Set(p.Uniform(name), v)
}

// Delete releases the program, unbinding it first if it is current.
// It is safe to call more than once.
func (p *Program) Delete() {
	if p.id == 0 {
		return
	}
	if p.ctx.bound == p.id {
		p.ctx.use(0)
	}
	p.ctx.d.DeleteProgram(p.id)
	p.id = 0
	p.uniforms = nil
}

func (p *Program) mustBeLive(op string) {
	if p.id == 0 {
		panic("graphics: " + op + " deleted program")
	}
}
