package morph

import "errors"

// Error kinds reported by the morphing pipeline. All of them indicate
// invalid caller input and are never retried internally; match them
// with errors.Is.
var (
	// ErrDegenerateInput is returned when a point set cannot be
	// triangulated: fewer than three points or all points collinear.
	ErrDegenerateInput = errors.New("morph: degenerate point set")

	// ErrMismatchedPointSet is returned when the source and target
	// point sets do not carry the same point IDs.
	ErrMismatchedPointSet = errors.New("morph: mismatched point sets")

	// ErrSingularTriangle is returned when a source triangle has zero
	// area and no affine transform can be derived from it.
	ErrSingularTriangle = errors.New("morph: singular triangle")

	// ErrDimensionMismatch is returned when the two images handed to
	// the compositor differ in size.
	ErrDimensionMismatch = errors.New("morph: image dimensions differ")
)
