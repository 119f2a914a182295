package geometry2D

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// BoundingBox is an axis aligned rectangle, inclusive of its edges
type BoundingBox struct {
	Min, Max r2.Vec
}

func NewBoundingBox(Geometry []r2.Vec) (Box BoundingBox) {
	if len(Geometry) == 0 {
		return
	}
	Box.Min, Box.Max = Geometry[0], Geometry[0]
	for _, point := range Geometry[1:] {
		Box.Min.X = math.Min(Box.Min.X, point.X)
		Box.Min.Y = math.Min(Box.Min.Y, point.Y)
		Box.Max.X = math.Max(Box.Max.X, point.X)
		Box.Max.Y = math.Max(Box.Max.Y, point.Y)
	}
	return
}

func (bb BoundingBox) Centroid() (centroid r2.Vec) {
	return r2.Scale(0.5, r2.Add(bb.Min, bb.Max))
}

func (bb BoundingBox) Width() float64  { return bb.Max.X - bb.Min.X }
func (bb BoundingBox) Height() float64 { return bb.Max.Y - bb.Min.Y }

func (bb BoundingBox) PointInside(point r2.Vec) (within bool) {
	return point.X >= bb.Min.X && point.X <= bb.Max.X &&
		point.Y >= bb.Min.Y && point.Y <= bb.Max.Y
}

// Intersects is true if the two boxes overlap or touch
func (bb BoundingBox) Intersects(other BoundingBox) bool {
	return bb.Min.X <= other.Max.X && other.Min.X <= bb.Max.X &&
		bb.Min.Y <= other.Max.Y && other.Min.Y <= bb.Max.Y
}

func (bb *BoundingBox) Grow(newBB BoundingBox) {
	bb.Min.X = math.Min(bb.Min.X, newBB.Min.X)
	bb.Min.Y = math.Min(bb.Min.Y, newBB.Min.Y)
	bb.Max.X = math.Max(bb.Max.X, newBB.Max.X)
	bb.Max.Y = math.Max(bb.Max.Y, newBB.Max.Y)
}

// SubRectangles splits the box into four equal quadrants, ordered
// lower left, lower right, upper left, upper right
func (bb BoundingBox) SubRectangles() (rects [4]BoundingBox) {
	mid := bb.Centroid()
	rects[0] = BoundingBox{Min: bb.Min, Max: mid}
	rects[1] = BoundingBox{Min: r2.Vec{X: mid.X, Y: bb.Min.Y}, Max: r2.Vec{X: bb.Max.X, Y: mid.Y}}
	rects[2] = BoundingBox{Min: r2.Vec{X: bb.Min.X, Y: mid.Y}, Max: r2.Vec{X: mid.X, Y: bb.Max.Y}}
	rects[3] = BoundingBox{Min: mid, Max: bb.Max}
	return
}

// Outline returns the four corners in counterclockwise order
func (bb BoundingBox) Outline() (pLine []r2.Vec) {
	return []r2.Vec{
		bb.Min,
		{X: bb.Max.X, Y: bb.Min.Y},
		bb.Max,
		{X: bb.Min.X, Y: bb.Max.Y},
	}
}
