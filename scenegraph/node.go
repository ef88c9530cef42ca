package scenegraph

import (
	"github.com/gekko3d/volscene/gfx"
)

// Node is an element of the scene graph. Traverse is the override point:
// types embedding Group can replace it to take control of how a visitor
// descends below them.
type Node interface {
	Name() string
	StateSet() *gfx.StateSet
	CullingActive() bool
	Bound() BoundingBox
	Traverse(v Visitor)
}

type NodeBase struct {
	name            string
	stateSet        *gfx.StateSet
	cullingDisabled bool
}

func (n *NodeBase) Name() string        { return n.name }
func (n *NodeBase) SetName(name string) { n.name = name }

func (n *NodeBase) StateSet() *gfx.StateSet     { return n.stateSet }
func (n *NodeBase) SetStateSet(s *gfx.StateSet) { n.stateSet = s }

func (n *NodeBase) GetOrCreateStateSet() *gfx.StateSet {
	if n.stateSet == nil {
		n.stateSet = gfx.NewStateSet()
	}
	return n.stateSet
}

// CullingActive reports whether the cull traversal may reject this node by
// its bound.
func (n *NodeBase) CullingActive() bool {
	return !n.cullingDisabled
}

func (n *NodeBase) SetCullingActive(on bool) {
	n.cullingDisabled = !on
}

func (n *NodeBase) Bound() BoundingBox { return EmptyBoundingBox() }

func (n *NodeBase) Traverse(v Visitor) {}
