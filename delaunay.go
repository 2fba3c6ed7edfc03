package morph

import (
	"fmt"
	"math"
)

// Triangle is an ordered triple of control point IDs forming one mesh
// face. The IDs reference a PointSet, so the same topology can be laid
// over geometrically different point sets.
type Triangle [3]int

// Synthetic vertex IDs of the enclosing super triangle. They never leak
// into the returned triangulation.
const (
	superA = math.MinInt
	superB = math.MinInt + 1
	superC = math.MinInt + 2
)

type circumcircle struct {
	x, y, r2 float64
}

type delTriangle struct {
	a, b, c int
	circle  circumcircle
}

type delEdge struct {
	p, q int
}

func (e delEdge) eq(o delEdge) bool {
	return e.p == o.p && e.q == o.q || e.p == o.q && e.q == o.p
}

// newDelTriangle builds a triangle and caches its circumcircle. A
// degenerate (collinear) triple gets an empty circle so it never
// captures an inserted point.
func newDelTriangle(a, b, c int, pos map[int]Point) delTriangle {
	pa, pb, pc := pos[a], pos[b], pos[c]

	d := 2 * (pa.X*(pb.Y-pc.Y) + pb.X*(pc.Y-pa.Y) + pc.X*(pa.Y-pb.Y))
	t := delTriangle{a: a, b: b, c: c}
	if math.Abs(d) < 1e-12 {
		return t
	}

	sa := pa.X*pa.X + pa.Y*pa.Y
	sb := pb.X*pb.X + pb.Y*pb.Y
	sc := pc.X*pc.X + pc.Y*pc.Y

	t.circle.x = (sa*(pb.Y-pc.Y) + sb*(pc.Y-pa.Y) + sc*(pa.Y-pb.Y)) / d
	t.circle.y = (sa*(pc.X-pb.X) + sb*(pa.X-pc.X) + sc*(pb.X-pa.X)) / d

	dx := pa.X - t.circle.x
	dy := pa.Y - t.circle.y
	t.circle.r2 = dx*dx + dy*dy

	return t
}

func (t delTriangle) contains(p Point) bool {
	if t.circle.r2 == 0 {
		return false
	}
	dx := t.circle.x - p.X
	dy := t.circle.y - p.Y
	return dx*dx+dy*dy < t.circle.r2
}

func (t delTriangle) hasSuperVertex() bool {
	return t.a <= superC || t.b <= superC || t.c <= superC
}

// Triangulate computes the Delaunay triangulation of the point set
// using incremental insertion (Bowyer-Watson): every point is inserted
// into a super triangle enclosing the whole set, the triangles whose
// circumcircle contains it are removed and the resulting cavity is
// re-triangulated against the new point. Insertion follows ascending
// point ID, so repeated calls over the same set reproduce the same
// topology.
//
// It returns ErrDegenerateInput when fewer than three points are given
// or all points are collinear.
func Triangulate(points PointSet) ([]Triangle, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("%w: got %d points, need at least 3", ErrDegenerateInput, len(points))
	}

	min, max := points.Bounds()
	dx, dy := max.X-min.X, max.Y-min.Y
	margin := math.Max(dx, dy)
	if margin == 0 {
		return nil, fmt.Errorf("%w: all points coincide", ErrDegenerateInput)
	}

	// Super triangle large enough to strictly enclose every point.
	pos := map[int]Point{
		superA: {min.X - 10*margin, min.Y - margin},
		superB: {max.X + 10*margin, min.Y - margin},
		superC: {min.X + dx/2, max.Y + 10*margin},
	}
	for id, p := range points {
		pos[id] = p
	}

	triangles := []delTriangle{newDelTriangle(superA, superB, superC, pos)}

	for _, id := range points.IDs() {
		p := points[id]

		// Split triangles into the cavity (circumcircle contains the
		// new point) and the ones that survive.
		var edges []delEdge
		var keep []delTriangle
		for _, t := range triangles {
			if t.contains(p) {
				edges = append(edges, delEdge{t.a, t.b}, delEdge{t.b, t.c}, delEdge{t.c, t.a})
			} else {
				keep = append(keep, t)
			}
		}

		// The cavity boundary is the set of edges not shared by two
		// removed triangles.
		var boundary []delEdge
	edgeLoop:
		for i, e := range edges {
			for j, o := range edges {
				if i != j && e.eq(o) {
					continue edgeLoop
				}
			}
			boundary = append(boundary, e)
		}

		for _, e := range boundary {
			keep = append(keep, newDelTriangle(e.p, e.q, id, pos))
		}
		triangles = keep
	}

	var out []Triangle
	for _, t := range triangles {
		if t.hasSuperVertex() || t.circle.r2 == 0 {
			continue
		}
		out = append(out, orient(Triangle{t.a, t.b, t.c}, pos))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: all points collinear", ErrDegenerateInput)
	}
	return out, nil
}

// orient normalizes a triangle to counter-clockwise vertex order in
// image coordinates (y axis pointing down).
func orient(t Triangle, pos map[int]Point) Triangle {
	if signedArea(pos[t[0]], pos[t[1]], pos[t[2]]) < 0 {
		t[1], t[2] = t[2], t[1]
	}
	return t
}

func signedArea(a, b, c Point) float64 {
	return ((b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)) / 2
}
