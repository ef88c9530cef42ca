package volscene

import (
	"fmt"
	"os"

	"github.com/gekko3d/volscene/gfx"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables of a VolumeScene. Zero values are not usable,
// start from DefaultConfig.
type Config struct {
	// Offscreen target size used when the visitor has no viewport yet.
	DefaultTextureWidth  int `yaml:"default_texture_width"`
	DefaultTextureHeight int `yaml:"default_texture_height"`

	// Captured near/far are widened by these factors before fusion.
	NearScale float64 `yaml:"near_scale"`
	FarScale  float64 `yaml:"far_scale"`

	BackdropBinNumber int    `yaml:"backdrop_bin_number"`
	BackdropBinName   string `yaml:"backdrop_bin_name"`

	InitialViewportSize [2]float32 `yaml:"initial_viewport_size"`
	DepthBorderColor    [4]float32 `yaml:"depth_border_color"`

	NearFarRatio float64 `yaml:"near_far_ratio"`

	Debug     bool   `yaml:"debug"`
	LogPrefix string `yaml:"log_prefix"`
}

func DefaultConfig() Config {
	return Config{
		DefaultTextureWidth:  512,
		DefaultTextureHeight: 512,
		NearScale:            0.5,
		FarScale:             2.0,
		BackdropBinNumber:    10,
		BackdropBinName:      gfx.RenderBinDepthSorted,
		InitialViewportSize:  [2]float32{1280, 1024},
		DepthBorderColor:     [4]float32{1, 1, 1, 1},
		NearFarRatio:         0.0005,
		LogPrefix:            "volscene",
	}
}

// LoadConfig reads a YAML file over DefaultConfig. Keys missing from the
// file keep their default.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DefaultTextureWidth <= 0 || c.DefaultTextureHeight <= 0 {
		return fmt.Errorf("default texture size must be positive, got %dx%d", c.DefaultTextureWidth, c.DefaultTextureHeight)
	}
	if c.NearScale <= 0 || c.FarScale <= 0 {
		return fmt.Errorf("near/far scale must be positive, got %g/%g", c.NearScale, c.FarScale)
	}
	if c.NearFarRatio <= 0 || c.NearFarRatio >= 1 {
		return fmt.Errorf("near_far_ratio must be in (0,1), got %g", c.NearFarRatio)
	}
	return nil
}
