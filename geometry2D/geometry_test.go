package geometry2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

var unitSquare = []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

func TestPolygon(t *testing.T) {
	{ // Area and orientation
		assert.InDelta(t, 1., PolygonArea(unitSquare), 1.e-12)
		rev := []r2.Vec{unitSquare[3], unitSquare[2], unitSquare[1], unitSquare[0]}
		assert.InDelta(t, -1., PolygonArea(rev), 1.e-12)
		tri := []r2.Vec{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 2}}
		assert.InDelta(t, 2., PolygonArea(tri), 1.e-12)
	}
	{ // Centroid
		c := PolygonCentroid([]r2.Vec{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 3}})
		assert.InDelta(t, 1., c.X, 1.e-12)
		assert.InDelta(t, 1., c.Y, 1.e-12)
		m := Mean(unitSquare)
		assert.Equal(t, r2.Vec{X: 0.5, Y: 0.5}, m)
	}
	{ // Point in polygon
		assert.True(t, PointInPolygon(r2.Vec{X: 0.5, Y: 0.5}, unitSquare))
		assert.False(t, PointInPolygon(r2.Vec{X: 1.5, Y: 0.5}, unitSquare))
		assert.False(t, PointInPolygon(r2.Vec{X: -0.1, Y: 0.5}, unitSquare))
		// A point on a shared edge belongs to exactly one of the two squares
		right := []r2.Vec{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1}}
		p := r2.Vec{X: 1, Y: 0.5}
		assert.NotEqual(t, PointInPolygon(p, unitSquare), PointInPolygon(p, right))
	}
}

func TestBoundingBox(t *testing.T) {
	bb := NewBoundingBox([]r2.Vec{{X: 2, Y: -1}, {X: -1, Y: 3}, {X: 0, Y: 0}})
	assert.Equal(t, r2.Vec{X: -1, Y: -1}, bb.Min)
	assert.Equal(t, r2.Vec{X: 2, Y: 3}, bb.Max)
	assert.True(t, bb.PointInside(r2.Vec{X: 2, Y: 3}))
	assert.False(t, bb.PointInside(r2.Vec{X: 2.1, Y: 3}))
	subs := bb.SubRectangles()
	var area float64
	for _, s := range subs {
		area += s.Width() * s.Height()
	}
	assert.InDelta(t, bb.Width()*bb.Height(), area, 1.e-12)
	assert.True(t, subs[0].Intersects(subs[3])) // touching at the centre
	other := BoundingBox{Min: r2.Vec{X: 5, Y: 5}, Max: r2.Vec{X: 6, Y: 6}}
	assert.False(t, bb.Intersects(other))
	bb.Grow(other)
	assert.Equal(t, r2.Vec{X: 6, Y: 6}, bb.Max)
}

func TestLines(t *testing.T) {
	{ // Projection
		p := LineProjection(r2.Vec{X: 0.5, Y: 3}, [2]r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}})
		assert.InDelta(t, 0.5, p.X, 1.e-12)
		assert.InDelta(t, 0., p.Y, 1.e-12)
	}
	{ // Crossing a square
		cr := LinePolygonIntersections(unitSquare, [2]r2.Vec{{X: -1, Y: 0.5}, {X: 2, Y: 0.5}})
		assert.Len(t, cr, 2)
		assert.InDelta(t, 0., cr[0].X, 1.e-12)
		assert.InDelta(t, 1., cr[1].X, 1.e-12)
		// Starting inside
		cr = LinePolygonIntersections(unitSquare, [2]r2.Vec{{X: 0.5, Y: 0.5}, {X: 0.5, Y: 3}})
		assert.Len(t, cr, 2)
		assert.InDelta(t, 0.5, cr[0].Y, 1.e-12)
		assert.InDelta(t, 1., cr[1].Y, 1.e-12)
		// Missing
		assert.Nil(t, LinePolygonIntersections(unitSquare, [2]r2.Vec{{X: 2, Y: 2}, {X: 3, Y: 3}}))
	}
	{ // Simplification
		poly := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 2, Y: 2}, {X: 0, Y: 2}, {X: 0, Y: 1}}
		s := SimplifyPolygon(poly)
		assert.Len(t, s, 4)
		assert.InDelta(t, 4., PolygonArea(s), 1.e-12)
	}
	{ // Headings clockwise from north
		assert.InDelta(t, 0., VectorHeading(r2.Vec{X: 0, Y: 1}), 1.e-12)
		assert.InDelta(t, math.Pi/2, VectorHeading(r2.Vec{X: 1, Y: 0}), 1.e-12)
	}
}

func TestRotation(t *testing.T) {
	R := NewRotation(90, r2.Vec{X: 1, Y: 1})
	p := R.Apply(r2.Vec{X: 1, Y: 2})
	// (1,2) is north of the centre; a quarter turn clockwise puts it east
	assert.InDelta(t, 2., p.X, 1.e-12)
	assert.InDelta(t, 1., p.Y, 1.e-12)
	c := R.Apply(r2.Vec{X: 1, Y: 1})
	assert.InDelta(t, 1., c.X, 1.e-12)
	assert.InDelta(t, 1., c.Y, 1.e-12)
	I := NewIdentity()
	assert.Equal(t, r2.Vec{X: 3, Y: 4}, I.Apply(r2.Vec{X: 3, Y: 4}))
}
