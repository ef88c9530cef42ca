package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadVolumeDemo(t *testing.T) {
	img, err := loadVolume(16, "")
	require.NoError(t, err)
	assert.Equal(t, 16, img.Depth)
	assert.NotZero(t, img.Density(8, 8, 8))
	assert.Zero(t, img.Density(0, 15, 0))
}

func TestLoadVolumeNoMatch(t *testing.T) {
	_, err := loadVolume(16, filepath.Join(t.TempDir(), "*.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files match")
}

func TestLoadVolumeRejectsBadResolution(t *testing.T) {
	for _, r := range []int{0, -8} {
		_, err := loadVolume(r, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "resolution must be positive")
	}
}
