package wgpugfx

import (
	"fmt"

	"github.com/gekko3d/volscene/gfx"

	"github.com/cogentcore/webgpu/wgpu"
)

// CompiledProgram holds one shader module per program stage.
type CompiledProgram struct {
	Name     string
	Vertex   *wgpu.ShaderModule
	Fragment *wgpu.ShaderModule
}

// CompileProgram turns both stages of p into WGSL shader modules. Programs
// missing a stage are rejected before anything is created on the device.
func CompileProgram(device *wgpu.Device, p *gfx.Program) (*CompiledProgram, error) {
	if p == nil {
		return nil, fmt.Errorf("compile program: nil program")
	}
	vs, fs := p.Shader(gfx.StageVertex), p.Shader(gfx.StageFragment)
	if vs == nil || fs == nil {
		return nil, fmt.Errorf("compile program %s: needs a vertex and a fragment stage", p.Name)
	}

	cp := &CompiledProgram{Name: p.Name}
	var err error
	cp.Vertex, err = compileShader(device, vs)
	if err != nil {
		return nil, fmt.Errorf("compile program %s: %w", p.Name, err)
	}
	cp.Fragment, err = compileShader(device, fs)
	if err != nil {
		cp.Release()
		return nil, fmt.Errorf("compile program %s: %w", p.Name, err)
	}
	return cp, nil
}

func compileShader(device *wgpu.Device, s *gfx.Shader) (*wgpu.ShaderModule, error) {
	return device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          s.Name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: s.Source},
	})
}

func (cp *CompiledProgram) Release() {
	if cp.Vertex != nil {
		cp.Vertex.Release()
		cp.Vertex = nil
	}
	if cp.Fragment != nil {
		cp.Fragment.Release()
		cp.Fragment = nil
	}
}
