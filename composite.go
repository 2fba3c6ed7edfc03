package morph

import (
	"fmt"
	"image"
	"math"
)

// Composite renders the morph frame at interpolation factor t: the
// control points are interpolated between their source and target
// positions, both images are warped triangle by triangle into the
// interpolated mesh, and the two warps are cross-dissolved with weight
// t. The frame has the same dimensions as the inputs; t=0 reproduces
// the source image and t=1 the target image up to resampling rounding.
//
// Both images must share the same bounds (see Normalize), otherwise
// ErrDimensionMismatch is returned.
func Composite(src, dst *image.NRGBA, c *Correspondence, t float64) (*image.NRGBA, error) {
	if src.Bounds() != dst.Bounds() {
		return nil, fmt.Errorf("%w: %v vs %v", ErrDimensionMismatch, src.Bounds(), dst.Bounds())
	}

	mid := c.Interpolate(t)
	srcPts := c.src
	dstPts := c.dst

	warpedSrc := image.NewNRGBA(src.Bounds())
	warpedDst := image.NewNRGBA(src.Bounds())

	for _, tri := range c.mesh {
		midTri := triangleCoords(tri, mid)
		if err := warpTriangle(warpedSrc, src, triangleCoords(tri, srcPts), midTri); err != nil {
			return nil, err
		}
		if err := warpTriangle(warpedDst, dst, triangleCoords(tri, dstPts), midTri); err != nil {
			return nil, err
		}
	}

	return crossDissolve(warpedSrc, warpedDst, t), nil
}

// crossDissolve blends two equally sized images per channel:
// out = (1-t)*a + t*b, rounded and clamped to the valid pixel range.
func crossDissolve(a, b *image.NRGBA, t float64) *image.NRGBA {
	out := image.NewNRGBA(a.Bounds())
	for i := range out.Pix {
		v := (1-t)*float64(a.Pix[i]) + t*float64(b.Pix[i])
		out.Pix[i] = uint8(Clamp(math.Round(v), 0, 255))
	}
	return out
}
