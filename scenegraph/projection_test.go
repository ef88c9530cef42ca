package scenegraph

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestNearFarFromProjection(t *testing.T) {
	n, f := NearFarFromProjection(mgl64.Perspective(mgl64.DegToRad(45), 1.5, 0.5, 250))
	assert.InDelta(t, 0.5, n, 1e-9)
	assert.InDelta(t, 250, f, 1e-6)

	n, f = NearFarFromProjection(mgl64.Ortho(-1, 1, -1, 1, 2, 40))
	assert.InDelta(t, 2, n, 1e-9)
	assert.InDelta(t, 40, f, 1e-9)
}

func TestClampProjectionPerspective(t *testing.T) {
	p := mgl64.Perspective(mgl64.DegToRad(60), 1, 0.1, 10000)
	before := p

	assert.True(t, ClampProjectionMatrix(&p, 10, 100, DefaultNearFarRatio))
	n, f := NearFarFromProjection(p)
	assert.InDelta(t, 9.8, n, 1e-9)
	assert.InDelta(t, 102, f, 1e-9)

	// only the depth mapping changes
	assert.Equal(t, before.At(0, 0), p.At(0, 0))
	assert.Equal(t, before.At(1, 1), p.At(1, 1))
	assert.Equal(t, before.At(3, 2), p.At(3, 2))
}

func TestClampProjectionPerspectiveRatioFloor(t *testing.T) {
	p := mgl64.Perspective(mgl64.DegToRad(60), 1, 0.1, 10000)
	assert.True(t, ClampProjectionMatrix(&p, 0.0001, 1000, DefaultNearFarRatio))
	n, f := NearFarFromProjection(p)
	assert.InDelta(t, 1020*DefaultNearFarRatio, n, 1e-9)
	assert.InDelta(t, 1020, f, 1e-6)
}

func TestClampProjectionOrthographic(t *testing.T) {
	p := mgl64.Ortho(-1, 1, -1, 1, 1, 1000)
	assert.True(t, ClampProjectionMatrix(&p, 10, 110, DefaultNearFarRatio))
	n, f := NearFarFromProjection(p)
	assert.InDelta(t, 8, n, 1e-9)
	assert.InDelta(t, 112, f, 1e-9)
}

func TestClampProjectionRejectsBadRange(t *testing.T) {
	p := mgl64.Perspective(mgl64.DegToRad(60), 1, 1, 100)
	before := p
	assert.False(t, ClampProjectionMatrix(&p, 50, 50, DefaultNearFarRatio))
	assert.False(t, ClampProjectionMatrix(&p, 50, 10, DefaultNearFarRatio))
	assert.False(t, ClampProjectionMatrix(&p, math.Inf(1), math.Inf(-1), DefaultNearFarRatio))
	assert.False(t, ClampProjectionMatrix(&p, 1, math.Inf(1), DefaultNearFarRatio))
	assert.Equal(t, before, p)
}

func TestIsOrthographic(t *testing.T) {
	assert.True(t, IsOrthographic(mgl64.Ortho(-1, 1, -1, 1, 1, 10)))
	assert.False(t, IsOrthographic(mgl64.Perspective(1, 1, 1, 10)))
}
