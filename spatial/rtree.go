package spatial

import (
	"github.com/dhconnelly/rtreego"
	"github.com/notargets/mulgrid/geometry2D"
	"gonum.org/v1/gonum/spatial/r2"
)

// pointTol is the half width of the rectangle used to query a single point
const pointTol = 1.e-9

type spatialElement[E Element[E]] struct {
	elem E
	rect rtreego.Rect
}

func (se spatialElement[E]) Bounds() rtreego.Rect { return se.rect }

/*
RTree indexes elements by bounding box. A point query returns the candidates
whose boxes contain the point, which are then tested exactly.
*/
type RTree[E Element[E]] struct {
	tree *rtreego.Rtree
	size int
}

func NewRTree[E Element[E]](elements []E) (rt *RTree[E]) {
	rt = &RTree[E]{tree: rtreego.NewTree(2, 25, 50)}
	for _, e := range elements {
		rt.Insert(e)
	}
	return
}

func toRect(bb geometry2D.BoundingBox) (rect rtreego.Rect) {
	var (
		lo = rtreego.Point{bb.Min.X, bb.Min.Y}
		hi = rtreego.Point{bb.Max.X, bb.Max.Y}
	)
	// Degenerate boxes are given a small width so the rectangle is valid
	for i := range lo {
		if hi[i]-lo[i] < pointTol {
			lo[i] -= pointTol
			hi[i] += pointTol
		}
	}
	rect, err := rtreego.NewRectFromPoints(lo, hi)
	if err != nil {
		panic(err)
	}
	return
}

func (rt *RTree[E]) Insert(e E) {
	rt.tree.Insert(spatialElement[E]{elem: e, rect: toRect(e.BoundingBox())})
	rt.size++
}

func (rt *RTree[E]) Size() int { return rt.size }

// Candidates returns the elements whose bounding boxes contain p
func (rt *RTree[E]) Candidates(p r2.Vec) (elems []E) {
	for _, s := range rt.tree.SearchIntersect(rtreego.Point{p.X, p.Y}.ToRect(pointTol)) {
		elems = append(elems, s.(spatialElement[E]).elem)
	}
	return
}

// Search returns the candidate closest to p by centre that contains p
func (rt *RTree[E]) Search(p r2.Vec) (found E, ok bool) {
	var (
		cands = rt.Candidates(p)
		best  = -1.
	)
	for _, e := range cands {
		if !e.ContainsPoint(p) {
			continue
		}
		d := r2.Norm(r2.Sub(e.Centre(), p))
		if best < 0 || d < best {
			found, ok, best = e, true, d
		}
	}
	return
}
