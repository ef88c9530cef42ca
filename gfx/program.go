package gfx

type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageFragment
)

func (s ShaderStage) String() string {
	if s == StageVertex {
		return "vertex"
	}
	return "fragment"
}

// Shader is one program stage. Source is opaque to the scene graph; only a
// backend compiles it.
type Shader struct {
	Stage  ShaderStage
	Name   string
	Source string
}

func NewShader(stage ShaderStage, name, source string) *Shader {
	return &Shader{Stage: stage, Name: name, Source: source}
}

type Program struct {
	Name    string
	shaders []*Shader
}

func NewProgram(name string, shaders ...*Shader) *Program {
	p := &Program{Name: name}
	for _, s := range shaders {
		p.AddShader(s)
	}
	return p
}

// AddShader attaches a stage. Nil shaders are ignored so a failed load
// leaves the program without that stage.
func (p *Program) AddShader(s *Shader) {
	if s == nil {
		return
	}
	p.shaders = append(p.shaders, s)
}

func (p *Program) Shaders() []*Shader { return p.shaders }

func (p *Program) Shader(stage ShaderStage) *Shader {
	for _, s := range p.shaders {
		if s.Stage == stage {
			return s
		}
	}
	return nil
}
