package spatial

import (
	"github.com/notargets/mulgrid/geometry2D"
	"gonum.org/v1/gonum/spatial/r2"
)

// Element is anything with a planar footprint that can be located by point
type Element[E any] interface {
	comparable
	Centre() r2.Vec
	BoundingBox() geometry2D.BoundingBox
	ContainsPoint(p r2.Vec) bool
	Neighbours() []E
}

// maxGeneration stops the subdivision of elements sharing the same centre
const maxGeneration = 32

/*
QuadTree recursively divides its bounds into four sub rectangles until each
leaf holds at most one element, assigned by element centre. Searching starts
from the leaf containing the point and spreads through element neighbours.
*/
type QuadTree[E Element[E]] struct {
	Bounds     geometry2D.BoundingBox
	Elements   []E
	Parent     *QuadTree[E]
	Children   []*QuadTree[E]
	Generation int
	all        map[E]struct{}
}

func NewQuadTree[E Element[E]](bounds geometry2D.BoundingBox, elements []E) (qt *QuadTree[E]) {
	all := make(map[E]struct{}, len(elements))
	for _, e := range elements {
		all[e] = struct{}{}
	}
	return newQuadTree(bounds, elements, nil, all)
}

func newQuadTree[E Element[E]](bounds geometry2D.BoundingBox, elements []E,
	parent *QuadTree[E], all map[E]struct{}) (qt *QuadTree[E]) {
	qt = &QuadTree[E]{
		Bounds:   bounds,
		Elements: elements,
		Parent:   parent,
		all:      all,
	}
	if parent != nil {
		qt.Generation = parent.Generation + 1
	}
	if len(elements) <= 1 || qt.Generation >= maxGeneration {
		return
	}
	var (
		rects    = bounds.SubRectangles()
		subElems [4][]E
	)
	for _, e := range elements {
		c := e.Centre()
		for i, rect := range rects {
			if rect.PointInside(c) {
				subElems[i] = append(subElems[i], e)
				break
			}
		}
	}
	for i, rect := range rects {
		if len(subElems[i]) > 0 {
			qt.Children = append(qt.Children, newQuadTree(rect, subElems[i], qt, all))
		}
	}
	return
}

func (qt *QuadTree[E]) NumElements() int { return len(qt.Elements) }

// Leaf returns the deepest tree node whose bounds contain p, or nil when p
// lies outside the tree
func (qt *QuadTree[E]) Leaf(p r2.Vec) *QuadTree[E] {
	if !qt.Bounds.PointInside(p) {
		return nil
	}
	for _, child := range qt.Children {
		if leaf := child.Leaf(p); leaf != nil {
			return leaf
		}
	}
	return qt
}

// Search returns the element containing p, starting from the elements of the
// leaf containing p and spreading outward through neighbours whose bounding
// boxes touch the leaf bounds
func (qt *QuadTree[E]) Search(p r2.Vec) (found E, ok bool) {
	leaf := qt.Leaf(p)
	if leaf == nil {
		return
	}
	var (
		queue  = append([]E{}, leaf.Elements...)
		queued = make(map[E]struct{}, len(queue))
	)
	for _, e := range queue {
		queued[e] = struct{}{}
	}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		if e.ContainsPoint(p) {
			return e, true
		}
		for _, nbr := range e.Neighbours() {
			if _, member := qt.all[nbr]; !member {
				continue
			}
			if _, seen := queued[nbr]; seen {
				continue
			}
			if nbr.BoundingBox().Intersects(leaf.Bounds) {
				queued[nbr] = struct{}{}
				queue = append(queue, nbr)
			}
		}
	}
	return
}

// Depth returns the number of generations below this node
func (qt *QuadTree[E]) Depth() (depth int) {
	for _, child := range qt.Children {
		if d := child.Depth() + 1; d > depth {
			depth = d
		}
	}
	return
}
