package scenegraph

import (
	"github.com/go-gl/mathgl/mgl64"
)

type ReferenceFrame int

const (
	// RelativeRF composes with the enclosing model-view.
	RelativeRF ReferenceFrame = iota
	// AbsoluteRF replaces the model-view and the viewpoint.
	AbsoluteRF
	// AbsoluteRFInheritViewpoint replaces the model-view but keeps the
	// enclosing viewpoint for eye-distance computations.
	AbsoluteRFInheritViewpoint
)

// Transform is a group whose children are positioned by Matrix.
type Transform struct {
	Group
	Matrix         mgl64.Mat4
	ReferenceFrame ReferenceFrame
}

func NewTransform(m mgl64.Mat4) *Transform {
	return &Transform{Matrix: m}
}

// NewTransformTRS builds M = T * R * S.
func NewTransformTRS(position mgl64.Vec3, rotation mgl64.Quat, scale mgl64.Vec3) *Transform {
	translate := mgl64.Translate3D(position.X(), position.Y(), position.Z())
	rotate := rotation.Mat4()
	scaleM := mgl64.Scale3D(scale.X(), scale.Y(), scale.Z())
	return NewTransform(translate.Mul4(rotate).Mul4(scaleM))
}

func (t *Transform) Bound() BoundingBox {
	return t.Group.Bound().Transform(t.Matrix)
}
