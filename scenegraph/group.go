package scenegraph

// Group collects child nodes. It has no transform of its own.
type Group struct {
	NodeBase
	children []Node
}

func NewGroup() *Group {
	return &Group{}
}

func (g *Group) AddChild(n Node) {
	g.children = append(g.children, n)
}

func (g *Group) RemoveChild(n Node) bool {
	for i, c := range g.children {
		if c == n {
			g.children = append(g.children[:i], g.children[i+1:]...)
			return true
		}
	}
	return false
}

func (g *Group) Children() []Node { return g.children }
func (g *Group) NumChildren() int { return len(g.children) }

// Traverse accepts the visitor on every child in order.
func (g *Group) Traverse(v Visitor) {
	for _, c := range g.children {
		Accept(c, v)
	}
}

// Bound is the union of the children's bounds.
func (g *Group) Bound() BoundingBox {
	b := EmptyBoundingBox()
	for _, c := range g.children {
		b.ExpandByBox(c.Bound())
	}
	return b
}
