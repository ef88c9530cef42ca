package scenegraph

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestFrustumCulling(t *testing.T) {
	// Camera at origin looking down -Z
	// Perspective: 90 deg FOV, Aspect 1.0, Near 1, Far 100
	proj := mgl64.Perspective(mgl64.DegToRad(90), 1.0, 1.0, 100.0)
	view := mgl64.LookAtV(
		mgl64.Vec3{0, 0, 0},  // Eye
		mgl64.Vec3{0, 0, -1}, // Center
		mgl64.Vec3{0, 1, 0},  // Up
	)
	planes := ExtractFrustum(proj.Mul4(view))

	tests := []struct {
		name     string
		min      mgl64.Vec3
		max      mgl64.Vec3
		expected bool
		sides    bool
	}{
		{"Inside (center)", mgl64.Vec3{-1, -1, -10}, mgl64.Vec3{1, 1, -5}, true, true},
		{"Outside (Left)", mgl64.Vec3{-20, -1, -10}, mgl64.Vec3{-15, 1, -5}, false, false},
		{"Outside (Right)", mgl64.Vec3{15, -1, -10}, mgl64.Vec3{20, 1, -5}, false, false},
		{"Outside (Behind)", mgl64.Vec3{-1, -1, 2}, mgl64.Vec3{1, 1, 5}, false, false},
		// Only the far plane rejects this one.
		{"Outside (Far)", mgl64.Vec3{-1, -1, -200}, mgl64.Vec3{1, 1, -150}, false, true},
		{"Intersecting (Left Plane)", mgl64.Vec3{-15, -1, -10}, mgl64.Vec3{-5, 1, -5}, true, true},
		{"Encompassing (Huge box)", mgl64.Vec3{-1000, -1000, -1000}, mgl64.Vec3{1000, 1000, 1000}, true, true},
	}

	for _, tc := range tests {
		box := BoundingBox{Min: tc.min, Max: tc.max}
		if visible := BoxInFrustum(box, planes[:]); visible != tc.expected {
			t.Errorf("Test %s failed: expected %v, got %v", tc.name, tc.expected, visible)
			for i, p := range planes {
				t.Logf("  plane %d: %v", i, p)
			}
		}
		if visible := BoxInFrustum(box, planes[:PlaneNear]); visible != tc.sides {
			t.Errorf("Test %s (side planes) failed: expected %v, got %v", tc.name, tc.sides, visible)
		}
	}
}

func TestBoundingBox(t *testing.T) {
	b := EmptyBoundingBox()
	if b.Valid() {
		t.Fatal("empty box should be invalid")
	}
	b.ExpandByBox(EmptyBoundingBox())
	if b.Valid() {
		t.Fatal("expanding by an empty box should keep it empty")
	}

	b.ExpandByPoint(mgl64.Vec3{1, 2, 3})
	b.ExpandByPoint(mgl64.Vec3{-1, 0, 5})
	if b.Min != (mgl64.Vec3{-1, 0, 3}) || b.Max != (mgl64.Vec3{1, 2, 5}) {
		t.Errorf("unexpected box %v", b)
	}
	if c := b.Center(); c != (mgl64.Vec3{0, 1, 4}) {
		t.Errorf("unexpected center %v", c)
	}

	moved := b.Transform(mgl64.Translate3D(10, 0, 0))
	if moved.Min.X() != 9 || moved.Max.X() != 11 {
		t.Errorf("unexpected transformed box %v", moved)
	}

	rotated := BoundingBox{Min: mgl64.Vec3{-1, -2, -1}, Max: mgl64.Vec3{1, 2, 1}}.Transform(mgl64.HomogRotate3DZ(mgl64.DegToRad(90)))
	if !mgl64.FloatEqualThreshold(rotated.Max.X(), 2, 1e-9) || !mgl64.FloatEqualThreshold(rotated.Max.Y(), 1, 1e-9) {
		t.Errorf("unexpected rotated box %v", rotated)
	}
}
