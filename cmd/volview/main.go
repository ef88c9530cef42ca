package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/gekko3d/volscene"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	debug := flag.Bool("debug", false, "Enable debug logging and per-view stats")
	resolution := flag.Int("resolution", 64, "Voxel resolution of the demo volume")
	slices := flag.String("slices", "", "Glob of 2D image slices to load instead of the demo volume")
	flag.Parse()

	cfg := volscene.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = volscene.LoadConfig(*configPath)
		if err != nil {
			volscene.NewLoggerFromConfig(cfg).Errorf("%v", err)
			os.Exit(1)
		}
	}
	if *debug {
		cfg.Debug = true
	}
	logger := volscene.NewLoggerFromConfig(cfg)

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	window, err := glfw.CreateWindow(int(cfg.InitialViewportSize[0]), int(cfg.InitialViewportSize[1]), "volview", nil, nil)
	if err != nil {
		panic(err)
	}
	defer window.Destroy()

	v := newViewer(window, cfg, logger)
	if err := v.init(*resolution, *slices); err != nil {
		logger.Errorf("init: %v", err)
		os.Exit(1)
	}
	defer v.release()

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeySpace:
			v.paused = !v.paused
		case glfw.KeyEqual, glfw.KeyKPAdd:
			v.adjustDensity(1.25)
		case glfw.KeyMinus, glfw.KeyKPSubtract:
			v.adjustDensity(0.8)
		}
	})

	for !window.ShouldClose() {
		glfw.PollEvents()
		v.frame()
	}
}
