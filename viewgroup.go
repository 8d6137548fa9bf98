package deepzoom

import "strings"

// ViewGroup is a node of the nested scene tree. Its box (Left, Top, Width,
// Height) is expressed in the parent's content coordinates; Scale maps this
// group's own content units to box units, so the content extent is
// Width/Scale by Height/Scale.
//
// The tree is owned top-down; Parent is a back reference only.
type ViewGroup struct {
	ID   string
	Name string

	Left, Top     float64
	Width, Height float64
	Scale         float64

	Parent *ViewGroup
	// Contents is nil when the group has no children; it is never an empty
	// non-nil slice.
	Contents []*ViewGroup

	// UserData is carried for the host and never read by deepzoom.
	UserData any
}

// NewViewGroup creates a group with the given box and content scale.
// A non-positive scale is replaced by 1.
func NewViewGroup(name string, left, top, width, height, scale float64) *ViewGroup {
	if !(scale > 0) || !isFinite(scale) {
		scale = 1
	}
	return &ViewGroup{Name: name, Left: left, Top: top, Width: width, Height: height, Scale: scale}
}

// AddChild appends child, detaching it from any previous parent.
func (g *ViewGroup) AddChild(child *ViewGroup) {
	if child == nil || child == g {
		return
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = g
	g.Contents = append(g.Contents, child)
}

// RemoveChild detaches child. Removing the last child sets Contents to nil.
func (g *ViewGroup) RemoveChild(child *ViewGroup) {
	for i, c := range g.Contents {
		if c == child {
			copy(g.Contents[i:], g.Contents[i+1:])
			g.Contents[len(g.Contents)-1] = nil
			g.Contents = g.Contents[:len(g.Contents)-1]
			child.Parent = nil
			break
		}
	}
	if len(g.Contents) == 0 {
		g.Contents = nil
	}
}

// HasContents reports whether the group has children.
func (g *ViewGroup) HasContents() bool { return len(g.Contents) > 0 }

// Bounds returns the group's box in its parent's content coordinates.
func (g *ViewGroup) Bounds() Rect {
	return Rect{X: g.Left, Y: g.Top, Width: g.Width, Height: g.Height}
}

// ContentBounds returns the group's extent in its own content coordinates.
func (g *ViewGroup) ContentBounds() Rect {
	return Rect{Width: g.Width / g.contentScale(), Height: g.Height / g.contentScale()}
}

func (g *ViewGroup) contentScale() float64 {
	if g.Scale > 0 {
		return g.Scale
	}
	return 1
}

// ChildToParent converts a point in this group's content coordinates to its
// parent's content coordinates.
func (g *ViewGroup) ChildToParent(x, y float64) (float64, float64) {
	k := g.contentScale()
	return g.Left + x*k, g.Top + y*k
}

// ParentToChild converts a point in the parent's content coordinates to this
// group's content coordinates.
func (g *ViewGroup) ParentToChild(x, y float64) (float64, float64) {
	k := g.contentScale()
	return (x - g.Left) / k, (y - g.Top) / k
}

// Root returns the top of the tree containing g.
func (g *ViewGroup) Root() *ViewGroup {
	r := g
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

// Depth returns the number of ancestors of g.
func (g *ViewGroup) Depth() int {
	d := 0
	for p := g.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// Path returns the slash-separated names from the root's children down to g.
// The root itself has the empty path.
func (g *ViewGroup) Path() string {
	var parts []string
	for n := g; n.Parent != nil; n = n.Parent {
		parts = append(parts, n.Name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// Find resolves a slash-separated path of child names relative to g.
// An empty path returns g.
func (g *ViewGroup) Find(path string) *ViewGroup {
	path = strings.Trim(path, "/")
	if path == "" {
		return g
	}
	cur := g
	for _, name := range strings.Split(path, "/") {
		var next *ViewGroup
		for _, c := range cur.Contents {
			if c.Name == name {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// Walk visits g and its descendants depth-first. Returning false from fn
// skips the children of that node.
func (g *ViewGroup) Walk(fn func(*ViewGroup) bool) {
	if !fn(g) {
		return
	}
	for _, c := range g.Contents {
		c.Walk(fn)
	}
}

// BoundsIn returns g's box in the content coordinates of ancestor. It
// reports false when ancestor is not a proper ancestor of g.
func (g *ViewGroup) BoundsIn(ancestor *ViewGroup) (Rect, bool) {
	if ancestor == nil || g.Parent == nil {
		return Rect{}, false
	}
	r := g.Bounds()
	for p := g.Parent; p != ancestor; p = p.Parent {
		if p.Parent == nil {
			return Rect{}, false
		}
		k := p.contentScale()
		x, y := p.ChildToParent(r.X, r.Y)
		r = Rect{X: x, Y: y, Width: r.Width * k, Height: r.Height * k}
	}
	return r, true
}

// MapTo converts (x, y) in g's content coordinates to other's content
// coordinates. k converts lengths the same way. It reports false when the
// groups belong to different trees.
func (g *ViewGroup) MapTo(other *ViewGroup, x, y float64) (ox, oy, k float64, ok bool) {
	if other == nil || g.Root() != other.Root() {
		return 0, 0, 0, false
	}
	ax, ay, ak := g.rootFrame()
	bx, by, bk := other.rootFrame()
	return (ax + x*ak - bx) / bk, (ay + y*ak - by) / bk, ak / bk, true
}

// rootFrame returns the origin and unit size of g's content in the content
// coordinates of its root.
func (g *ViewGroup) rootFrame() (x, y, k float64) {
	k = 1
	for n := g; n.Parent != nil; n = n.Parent {
		s := n.contentScale()
		x, y = n.Left+x*s, n.Top+y*s
		k *= s
	}
	return x, y, k
}

// IsAncestorOf reports whether g is a proper ancestor of other.
func (g *ViewGroup) IsAncestorOf(other *ViewGroup) bool {
	for p := other.Parent; p != nil; p = p.Parent {
		if p == g {
			return true
		}
	}
	return false
}
