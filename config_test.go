package volscene

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 512, cfg.DefaultTextureWidth)
	assert.Equal(t, 512, cfg.DefaultTextureHeight)
	assert.Equal(t, 0.5, cfg.NearScale)
	assert.Equal(t, 2.0, cfg.FarScale)
	assert.Equal(t, 10, cfg.BackdropBinNumber)
	assert.Equal(t, "DepthSortedBin", cfg.BackdropBinName)
	assert.Equal(t, [2]float32{1280, 1024}, cfg.InitialViewportSize)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "volscene.yaml")
	data := strings.Join([]string{
		"default_texture_width: 1024",
		"far_scale: 3.5",
		"initial_viewport_size: [800, 600]",
		"debug: true",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.DefaultTextureWidth)
	assert.Equal(t, 512, cfg.DefaultTextureHeight)
	assert.Equal(t, 3.5, cfg.FarScale)
	assert.Equal(t, 0.5, cfg.NearScale)
	assert.Equal(t, [2]float32{800, 600}, cfg.InitialViewportSize)
	assert.True(t, cfg.Debug)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("near_scale: [1, 2"), 0o644))
	_, err := LoadConfig(bad)
	assert.ErrorContains(t, err, "parse config")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("default_texture_width: 0"), 0o644))
	_, err = LoadConfig(invalid)
	assert.ErrorContains(t, err, "default texture size")
}

func TestProfilerScopesAndCounts(t *testing.T) {
	p := NewProfiler()
	end := p.Scope("capture")
	end()
	p.Scope("capture")()
	p.SetCount("tiles", 3)

	assert.Equal(t, []string{"capture"}, p.Order)
	assert.Equal(t, 3, p.Count("tiles"))
	stats := p.GetStatsString()
	assert.Contains(t, stats, "capture")
	assert.Contains(t, stats, "tiles")

	p.Reset()
	assert.Zero(t, p.Duration("capture"))
}

func TestLoggers(t *testing.T) {
	l := NewDefaultLogger("test", false)
	assert.False(t, l.DebugEnabled())
	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())

	nop := NewNopLogger()
	assert.False(t, nop.DebugEnabled())
	assert.NotPanics(t, func() { nop.Debugf("%d", 1) })

	fromCfg := NewLoggerFromConfig(Config{LogPrefix: "x", Debug: true})
	assert.True(t, fromCfg.DebugEnabled())
}
