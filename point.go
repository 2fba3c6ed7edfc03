package morph

import (
	"math"
	"sort"
)

// Point is a coordinate in image space.
type Point struct {
	X, Y float64
}

// PointSet holds control points keyed by a stable ID. User supplied
// points use non-negative IDs; the reserved corner IDs are negative.
type PointSet map[int]Point

// Reserved IDs for the four image corners added by AnchorCorners.
const (
	CornerTopLeft     = -1
	CornerTopRight    = -2
	CornerBottomRight = -3
	CornerBottomLeft  = -4
)

// PointPair is a single source/target correspondence stored in
// normalized coordinates (0..1 range), the form used by the editor and
// the template files.
type PointPair struct {
	Source Point
	Target Point
}

// Clone returns a copy of the point set.
func (ps PointSet) Clone() PointSet {
	out := make(PointSet, len(ps))
	for id, p := range ps {
		out[id] = p
	}
	return out
}

// IDs returns the point IDs in ascending order.
func (ps PointSet) IDs() []int {
	ids := make([]int, 0, len(ps))
	for id := range ps {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Bounds returns the min and max coordinates spanned by the set.
func (ps PointSet) Bounds() (min, max Point) {
	min = Point{math.Inf(1), math.Inf(1)}
	max = Point{math.Inf(-1), math.Inf(-1)}
	for _, p := range ps {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// AnchorCorners returns a copy of the set with the four corners of a
// w x h image added under the reserved corner IDs, so that any
// triangulation of the result covers the full image rectangle. Corner
// IDs already present are overwritten; user IDs are left untouched.
func AnchorCorners(ps PointSet, w, h int) PointSet {
	out := ps.Clone()
	out[CornerTopLeft] = Point{0, 0}
	out[CornerTopRight] = Point{float64(w - 1), 0}
	out[CornerBottomRight] = Point{float64(w - 1), float64(h - 1)}
	out[CornerBottomLeft] = Point{0, float64(h - 1)}
	return out
}

// DenormalizePairs scales a normalized pair list into pixel space for a
// w x h image, assigning sequential IDs starting at zero. The returned
// source and target sets carry identical ID sets by construction.
func DenormalizePairs(pairs []PointPair, w, h int) (src, dst PointSet) {
	src = make(PointSet, len(pairs))
	dst = make(PointSet, len(pairs))
	for i, pair := range pairs {
		src[i] = Point{pair.Source.X * float64(w-1), pair.Source.Y * float64(h-1)}
		dst[i] = Point{pair.Target.X * float64(w-1), pair.Target.Y * float64(h-1)}
	}
	return src, dst
}
