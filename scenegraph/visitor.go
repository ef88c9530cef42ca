package scenegraph

// NodePath lists the nodes from the traversal root down to the current node.
type NodePath []Node

func (p NodePath) Clone() NodePath {
	out := make(NodePath, len(p))
	copy(out, p)
	return out
}

func (p NodePath) Last() Node {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1]
}

// IndexOf returns the position of n in the path, or -1.
func (p NodePath) IndexOf(n Node) int {
	for i, e := range p {
		if e == n {
			return i
		}
	}
	return -1
}

// VisitorKind tags a visitor with the pass it runs so nodes can pick their
// behaviour without probing the concrete type.
type VisitorKind int

const (
	KindNode VisitorKind = iota
	KindUpdate
	KindCull
)

func (k VisitorKind) String() string {
	switch k {
	case KindUpdate:
		return "update"
	case KindCull:
		return "cull"
	}
	return "node"
}

// Phase marks which sub-pass of a multipass cull is running.
type Phase int

const (
	PhaseDefault Phase = iota
	PhaseRenderToTexture
	PhasePost
)

func (p Phase) String() string {
	switch p {
	case PhaseRenderToTexture:
		return "RenderToTexture"
	case PhasePost:
		return "Post"
	}
	return "Default"
}

type Visitor interface {
	Kind() VisitorKind
	// Apply is called by Accept once the node is on the path.
	Apply(n Node)
	NodePath() NodePath
	SetNodePath(p NodePath)
	PushNode(n Node)
	PopNode()
}

// Accept pushes n onto the visitor's path, applies the visitor and pops n
// again, even if Apply panics.
func Accept(n Node, v Visitor) {
	v.PushNode(n)
	defer v.PopNode()
	v.Apply(n)
}

// NodePathStack implements the path bookkeeping part of Visitor.
type NodePathStack struct {
	path NodePath
}

func (s *NodePathStack) NodePath() NodePath { return s.path }

// SetNodePath replaces the active path. The visitor keeps its own copy.
func (s *NodePathStack) SetNodePath(p NodePath) {
	s.path = p.Clone()
}

func (s *NodePathStack) PushNode(n Node) {
	s.path = append(s.path, n)
}

func (s *NodePathStack) PopNode() {
	if len(s.path) > 0 {
		s.path[len(s.path)-1] = nil
		s.path = s.path[:len(s.path)-1]
	}
}

// NodeVisitor is a plain visitor that descends into every node, calling
// OnNode on the way down.
type NodeVisitor struct {
	NodePathStack
	kind   VisitorKind
	OnNode func(n Node, path NodePath)
}

func NewNodeVisitor(kind VisitorKind, onNode func(n Node, path NodePath)) *NodeVisitor {
	return &NodeVisitor{kind: kind, OnNode: onNode}
}

func (v *NodeVisitor) Kind() VisitorKind { return v.kind }

func (v *NodeVisitor) Apply(n Node) {
	if v.OnNode != nil {
		v.OnNode(n, v.path)
	}
	n.Traverse(v)
}
