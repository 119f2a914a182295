package geometry2D

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

const collinearTol = 1.e-9

// PolygonArea returns the signed area of an open polygon (first vertex not
// repeated), positive for counterclockwise vertex ordering
func PolygonArea(poly []r2.Vec) (area float64) {
	/*
		Algorithm: Green's theorem in the plane
	*/
	n := len(poly)
	for i := 0; i < n; i++ {
		pt0, pt1 := poly[i], poly[(i+1)%n]
		area += pt0.X*pt1.Y - pt1.X*pt0.Y
	}
	return 0.5 * area
}

// PolygonCentroid returns the area centroid of an open polygon
func PolygonCentroid(poly []r2.Vec) (centroid r2.Vec) {
	/*
		From: https://en.wikipedia.org/wiki/Centroid#Centroid_of_a_polygon
	*/
	area := PolygonArea(poly)
	if area == 0 {
		return Mean(poly)
	}
	n := len(poly)
	for i := 0; i < n; i++ {
		pt0, pt1 := poly[i], poly[(i+1)%n]
		metric := pt0.X*pt1.Y - pt0.Y*pt1.X
		centroid.X += (pt0.X + pt1.X) * metric
		centroid.Y += (pt0.Y + pt1.Y) * metric
	}
	return r2.Scale(1/(6*area), centroid)
}

// Mean is the arithmetic mean of the points
func Mean(pts []r2.Vec) (mean r2.Vec) {
	if len(pts) == 0 {
		return
	}
	for _, p := range pts {
		mean = r2.Add(mean, p)
	}
	return r2.Scale(1/float64(len(pts)), mean)
}

// PointInPolygon tests an open polygon for containment of a point.
// Points on an edge shared by two polygons of a tiling are assigned to
// exactly one of them.
func PointInPolygon(point r2.Vec, poly []r2.Vec) (inside bool) {
	/*
		Algorithm:
		Winding Number from http://geomalgorithms.com/a03-_inclusion.html#wn_PnPoly()
		if wn = 0, the point is outside
	*/
	isLeft := func(P0, P1, P2 r2.Vec) float64 {
		return (P1.X-P0.X)*(P2.Y-P0.Y) - (P2.X-P0.X)*(P1.Y-P0.Y)
	}
	var (
		wn int
		n  = len(poly)
	)
	for i := 0; i < n; i++ {
		pt0, pt1 := poly[i], poly[(i+1)%n]
		if pt0.Y <= point.Y {
			if pt1.Y > point.Y {
				if isLeft(pt0, pt1, point) > 0 {
					wn++
				}
			}
		} else {
			if pt1.Y <= point.Y {
				if isLeft(pt0, pt1, point) < 0 {
					wn--
				}
			}
		}
	}
	return wn != 0
}

// LineProjection returns the orthogonal projection of a point onto the
// infinite line through the two line points
func LineProjection(point r2.Vec, line [2]r2.Vec) (proj r2.Vec) {
	d := r2.Sub(line[1], line[0])
	len2 := r2.Dot(d, d)
	if len2 == 0 {
		return line[0]
	}
	t := r2.Dot(r2.Sub(point, line[0]), d) / len2
	return r2.Add(line[0], r2.Scale(t, d))
}

// SimplifyPolygon removes repeated and collinear vertices
func SimplifyPolygon(poly []r2.Vec) (simple []r2.Vec) {
	var pts []r2.Vec
	for i, p := range poly {
		if i > 0 && r2.Norm(r2.Sub(p, pts[len(pts)-1])) == 0 {
			continue
		}
		pts = append(pts, p)
	}
	if len(pts) > 1 && r2.Norm(r2.Sub(pts[0], pts[len(pts)-1])) == 0 {
		pts = pts[:len(pts)-1]
	}
	n := len(pts)
	if n < 3 {
		return pts
	}
	for i, p := range pts {
		prev, next := pts[(i+n-1)%n], pts[(i+1)%n]
		a, b := r2.Sub(p, prev), r2.Sub(next, p)
		scale := r2.Norm(a) * r2.Norm(b)
		if math.Abs(r2.Cross(a, b)) <= collinearTol*scale && r2.Dot(a, b) > 0 {
			continue
		}
		simple = append(simple, p)
	}
	return
}

// SegmentIntersection returns the intersection of two line segments, if any.
// Parallel segments do not intersect.
func SegmentIntersection(line1, line2 [2]r2.Vec) (pt r2.Vec, t float64, ok bool) {
	/*
		From: https://en.wikipedia.org/wiki/Line%E2%80%93line_intersection
	*/
	r := r2.Sub(line1[1], line1[0])
	s := r2.Sub(line2[1], line2[0])
	denom := r2.Cross(r, s)
	if denom == 0 {
		return
	}
	qp := r2.Sub(line2[0], line1[0])
	t = r2.Cross(qp, s) / denom
	u := r2.Cross(qp, r) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return
	}
	return r2.Add(line1[0], r2.Scale(t, r)), t, true
}

// LinePolygonIntersections returns the entry and exit points of a line
// segment through an open polygon, ordered along the line. A segment that
// only touches the polygon at a single point returns nil.
func LinePolygonIntersections(poly []r2.Vec, line [2]r2.Vec) (crossings []r2.Vec) {
	type hit struct {
		t  float64
		pt r2.Vec
	}
	var hits []hit
	n := len(poly)
	for i := 0; i < n; i++ {
		if pt, t, ok := SegmentIntersection(line, [2]r2.Vec{poly[i], poly[(i+1)%n]}); ok {
			hits = append(hits, hit{t, pt})
		}
	}
	if PointInPolygon(line[0], poly) {
		hits = append(hits, hit{0, line[0]})
	}
	if PointInPolygon(line[1], poly) {
		hits = append(hits, hit{1, line[1]})
	}
	if len(hits) < 2 {
		return nil
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].t < hits[j].t })
	first, last := hits[0], hits[len(hits)-1]
	if last.t-first.t <= collinearTol {
		return nil
	}
	return []r2.Vec{first.pt, last.pt}
}

// VectorHeading returns the compass heading of a vector in radians,
// measured clockwise from the positive y axis
func VectorHeading(v r2.Vec) float64 {
	return math.Atan2(v.X, v.Y)
}
