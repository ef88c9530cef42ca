package scenegraph

// Geode is a leaf node holding drawables.
type Geode struct {
	NodeBase
	drawables []*Geometry
}

func NewGeode() *Geode {
	return &Geode{}
}

func (g *Geode) AddDrawable(d *Geometry) {
	g.drawables = append(g.drawables, d)
}

func (g *Geode) Drawables() []*Geometry { return g.drawables }

func (g *Geode) Bound() BoundingBox {
	b := EmptyBoundingBox()
	for _, d := range g.drawables {
		b.ExpandByBox(d.Bound())
	}
	return b
}
