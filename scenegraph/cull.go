package scenegraph

import (
	"github.com/gekko3d/volscene/gfx"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// CullTraverser is the capability set of a cull-phase visitor. Nodes that
// need more than plain child traversal during culling check Kind() ==
// KindCull once and then work through this interface.
type CullTraverser interface {
	Visitor

	// ContextID identifies the viewer/window this visitor culls for.
	ContextID() uuid.UUID

	Phase() Phase
	SetPhase(p Phase)

	ProjectionMatrix() mgl64.Mat4
	ModelViewMatrix() mgl64.Mat4
	PushProjectionMatrix(m mgl64.Mat4)
	PopProjectionMatrix()
	PushModelViewMatrix(m mgl64.Mat4, rf ReferenceFrame)
	PopModelViewMatrix()

	PushStateSet(s *gfx.StateSet)
	PopStateSet()

	// Viewport is the viewport of the render stage being filled, or nil.
	Viewport() *gfx.Viewport
	CurrentCamera() *Camera

	CalculatedNearPlane() float64
	CalculatedFarPlane() float64
	SetCalculatedNearPlane(v float64)
	SetCalculatedFarPlane(v float64)

	// Traverse descends into n's children without applying n itself.
	Traverse(n Node)
}

// AsCullTraverser resolves the cull capability of v. It returns false for
// visitors of any other kind, and for cull-kind visitors that do not
// implement the interface.
func AsCullTraverser(v Visitor) (CullTraverser, bool) {
	if v == nil || v.Kind() != KindCull {
		return nil, false
	}
	cv, ok := v.(CullTraverser)
	return cv, ok
}

// The Scoped helpers push onto a stack and return the matching pop, so
// callers can write `defer ScopedStateSet(cv, ss)()`.

func ScopedProjection(cv CullTraverser, m mgl64.Mat4) func() {
	cv.PushProjectionMatrix(m)
	return cv.PopProjectionMatrix
}

func ScopedModelView(cv CullTraverser, m mgl64.Mat4, rf ReferenceFrame) func() {
	cv.PushModelViewMatrix(m, rf)
	return cv.PopModelViewMatrix
}

func ScopedStateSet(cv CullTraverser, s *gfx.StateSet) func() {
	cv.PushStateSet(s)
	return cv.PopStateSet
}

// ScopedNodePath installs p as the active path and returns a func restoring
// the previous one.
func ScopedNodePath(v Visitor, p NodePath) func() {
	prev := v.NodePath().Clone()
	v.SetNodePath(p)
	return func() { v.SetNodePath(prev) }
}

// ScopedPhase switches the visitor phase and returns a func restoring it.
func ScopedPhase(cv CullTraverser, p Phase) func() {
	prev := cv.Phase()
	cv.SetPhase(p)
	return func() { cv.SetPhase(prev) }
}
