package main

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"

	"github.com/gekko3d/volscene"
	"github.com/gekko3d/volscene/gfx"
	"github.com/gekko3d/volscene/gfx/wgpugfx"
	"github.com/gekko3d/volscene/scenegraph"
	"github.com/gekko3d/volscene/volume"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

const statsInterval = 240

// viewer drives the cull traversal and the offscreen target management of a
// VolumeScene against a real device. It compiles the backdrop and volume
// programs to validate them but builds no render pipelines, so the window
// only shows the clear colour; the queued leaves are reported in the debug
// stats.
type viewer struct {
	window *glfw.Window
	cfg    volscene.Config
	logger volscene.Logger

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface
	config   *wgpu.SurfaceConfiguration
	programs []*wgpugfx.CompiledProgram

	root   *scenegraph.Group
	scene  *volscene.VolumeScene
	tile   *volscene.VolumeTile
	camera *scenegraph.Camera
	cull   *scenegraph.CullVisitor

	angle  float64
	paused bool
	frames int
}

func newViewer(window *glfw.Window, cfg volscene.Config, logger volscene.Logger) *viewer {
	return &viewer{window: window, cfg: cfg, logger: logger}
}

func (v *viewer) init(resolution int, slices string) error {
	img, err := loadVolume(resolution, slices)
	if err != nil {
		return err
	}
	if err := v.initGPU(); err != nil {
		return err
	}
	v.buildScene(img)

	for _, p := range []*gfx.Program{v.scene.BackdropProgram(), v.tile.Geometry().StateSet().Program()} {
		cp, err := wgpugfx.CompileProgram(v.device, p)
		if err != nil {
			return err
		}
		v.programs = append(v.programs, cp)
	}

	v.cull = scenegraph.NewCullVisitor()
	v.cull.NearFarRatio = v.cfg.NearFarRatio
	v.cull.CacheFactory = wgpugfx.Factory(v.device)
	v.logger.Infof("context %s ready, %d programs compiled", v.cull.ContextID(), len(v.programs))
	return nil
}

func (v *viewer) initGPU() error {
	v.instance = wgpu.CreateInstance(nil)
	v.surface = v.instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(v.window))

	adapter, err := v.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: v.surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("request adapter: %w", err)
	}
	v.adapter = adapter

	v.device, err = adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "volview device"})
	if err != nil {
		return fmt.Errorf("request device: %w", err)
	}
	v.queue = v.device.GetQueue()

	width, height := v.window.GetFramebufferSize()
	caps := v.surface.GetCapabilities(adapter)
	v.config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	v.surface.Configure(adapter, v.device, v.config)
	return nil
}

// loadVolume reads the slices matched by pattern, or builds a soft sphere
// resting on a block when pattern is empty.
func loadVolume(resolution int, pattern string) (*volume.Image3D, error) {
	if pattern != "" {
		paths, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("slices %q: %w", pattern, err)
		}
		if len(paths) == 0 {
			return nil, fmt.Errorf("slices %q: no files match", pattern)
		}
		sort.Strings(paths)
		return volume.LoadSlices(paths)
	}

	if resolution <= 0 {
		return nil, fmt.Errorf("resolution must be positive, got %d", resolution)
	}
	img := volume.NewImage3D(resolution, resolution, resolution)
	r := float32(resolution)
	volume.SoftSphere(img, mgl32.Vec3{r / 2, r / 2, r / 2}, r*0.45, [3]uint8{255, 180, 90})
	volume.Cube(img, mgl32.Vec3{r * 0.4, 0, r * 0.4}, mgl32.Vec3{r * 0.6, r * 0.2, r * 0.6}, [4]uint8{90, 160, 255, 200})
	return img, nil
}

// buildScene puts an opaque floor and the volume under one VolumeScene.
func (v *viewer) buildScene(img *volume.Image3D) {
	v.scene = volscene.NewVolumeSceneWithConfig(v.cfg, v.logger)

	floor := scenegraph.NewGeode()
	floor.SetName("floor")
	floor.AddDrawable(scenegraph.NewBoxGeometry(mgl32.Vec3{-3, -1.2, -3}, mgl32.Vec3{3, -1, 3}))
	v.scene.AddChild(floor)

	layer := volume.NewLayerWithExtent(img, mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1})

	v.tile = volscene.NewVolumeTile(layer, volume.DefaultProperty())
	v.scene.AddChild(v.tile)

	v.root = scenegraph.NewGroup()
	v.root.AddChild(v.scene)

	v.camera = scenegraph.NewCamera()
	v.camera.SetClearColor(mgl32.Vec4{0.1, 0.1, 0.15, 1})
}

func (v *viewer) adjustDensity(factor float64) {
	p := v.tile.Property()
	p.SampleDensity = float32(math.Max(0.0005, float64(p.SampleDensity)*factor))
	v.tile.SetProperty(p)
	v.logger.Infof("sample density %.4f", p.SampleDensity)
}

func (v *viewer) resize(width, height int) {
	if uint32(width) == v.config.Width && uint32(height) == v.config.Height {
		return
	}
	v.config.Width, v.config.Height = uint32(width), uint32(height)
	v.surface.Configure(v.adapter, v.device, v.config)
}

func (v *viewer) updateCamera(width, height int) {
	if !v.paused {
		v.angle += 0.005
	}
	eye := mgl64.Vec3{4 * math.Sin(v.angle), 1.5, 4 * math.Cos(v.angle)}
	v.camera.SetViewport(0, 0, width, height)
	v.camera.SetViewMatrix(mgl64.LookAtV(eye, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0}))
	v.camera.SetProjectionMatrix(mgl64.Perspective(mgl64.DegToRad(45), float64(width)/float64(height), 0.1, 100))
}

func (v *viewer) frame() {
	width, height := v.window.GetFramebufferSize()
	if width == 0 || height == 0 {
		return
	}
	v.resize(width, height)
	v.updateCamera(width, height)

	stage := v.cull.Cull(v.camera, v.root)

	next, err := v.surface.GetCurrentTexture()
	if err != nil {
		v.logger.Errorf("GetCurrentTexture failed: %v", err)
		return
	}
	defer next.Release()
	view, err := next.CreateView(nil)
	if err != nil {
		v.logger.Errorf("CreateView failed: %v", err)
		return
	}
	defer view.Release()

	encoder, err := v.device.CreateCommandEncoder(nil)
	if err != nil {
		v.logger.Errorf("CreateCommandEncoder failed: %v", err)
		return
	}

	targets, err := wgpugfx.EncodePreRenderTargets(encoder, stage)
	if err != nil {
		v.logger.Errorf("offscreen targets: %v", err)
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpugfx.ClearColor(stage.ClearColor),
		}},
	})
	if err := pass.End(); err != nil {
		v.logger.Errorf("surface pass End failed: %v", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		v.logger.Errorf("encoder Finish failed: %v", err)
		return
	}
	v.queue.Submit(cmd)
	v.surface.Present()

	v.frames++
	if v.logger.DebugEnabled() && v.frames%statsInterval == 0 {
		v.logStats(stage, targets)
	}
}

func (v *viewer) logStats(stage *scenegraph.RenderStage, targets int) {
	vs := v.scene.ViewState(v.cull.ContextID())
	if vs == nil {
		return
	}
	v.logger.Debugf("frame %d: %d leaves, %d offscreen targets, captured depth %v",
		vs.Frame(), stage.NumLeaves(), targets, vs.CapturedDepthRange())
	v.logger.Debugf("%s", vs.Profiler.GetStatsString())
}

func (v *viewer) release() {
	if v.scene != nil {
		v.scene.Release()
	}
	for _, p := range v.programs {
		p.Release()
	}
	if v.device != nil {
		v.device.Release()
	}
	if v.adapter != nil {
		v.adapter.Release()
	}
	if v.surface != nil {
		v.surface.Release()
	}
	if v.instance != nil {
		v.instance.Release()
	}
}
