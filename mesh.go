package morph

import "fmt"

// Correspondence pairs a source and a target point set sharing the same
// IDs and holds the one mesh topology reused for every interpolated
// frame. The topology is triangulated once from the midpoint-averaged
// positions so it is not biased toward either endpoint, and is immutable
// afterwards; a Correspondence is safe for concurrent reads.
type Correspondence struct {
	src, dst PointSet
	mesh     []Triangle
}

// NewCorrespondence validates that both sets carry identical point IDs
// and computes the shared mesh topology. It returns
// ErrMismatchedPointSet when the ID sets differ and propagates
// triangulation failures from the averaged point set.
func NewCorrespondence(src, dst PointSet) (*Correspondence, error) {
	if len(src) != len(dst) {
		return nil, fmt.Errorf("%w: %d source vs %d target points", ErrMismatchedPointSet, len(src), len(dst))
	}
	for id := range src {
		if _, ok := dst[id]; !ok {
			return nil, fmt.Errorf("%w: point %d missing from target set", ErrMismatchedPointSet, id)
		}
	}

	mid := make(PointSet, len(src))
	for id, sp := range src {
		tp := dst[id]
		mid[id] = Point{(sp.X + tp.X) / 2, (sp.Y + tp.Y) / 2}
	}

	mesh, err := Triangulate(mid)
	if err != nil {
		return nil, err
	}

	return &Correspondence{src: src.Clone(), dst: dst.Clone(), mesh: mesh}, nil
}

// Interpolate returns the control point positions at interpolation
// factor t as p = (1-t)*source + t*target. The endpoints are exact:
// t=0 yields the source coordinates, t=1 the target coordinates.
func (c *Correspondence) Interpolate(t float64) PointSet {
	out := make(PointSet, len(c.src))
	for id, sp := range c.src {
		tp := c.dst[id]
		out[id] = Point{(1-t)*sp.X + t*tp.X, (1-t)*sp.Y + t*tp.Y}
	}
	return out
}

// Mesh returns the shared triangle topology.
func (c *Correspondence) Mesh() []Triangle {
	return c.mesh
}

// SourcePoints returns a copy of the source point set.
func (c *Correspondence) SourcePoints() PointSet {
	return c.src.Clone()
}

// TargetPoints returns a copy of the target point set.
func (c *Correspondence) TargetPoints() PointSet {
	return c.dst.Clone()
}
