package morph

import (
	"fmt"
	"image"
	"math"
)

// Affine is a 2D affine transform
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// AffineFromTriangles computes the unique affine transform mapping the
// three vertices of src onto the corresponding vertices of dst. It
// returns ErrSingularTriangle when src has (near) zero area.
func AffineFromTriangles(src, dst [3]Point) (Affine, error) {
	u1 := Point{src[1].X - src[0].X, src[1].Y - src[0].Y}
	u2 := Point{src[2].X - src[0].X, src[2].Y - src[0].Y}
	w1 := Point{dst[1].X - dst[0].X, dst[1].Y - dst[0].Y}
	w2 := Point{dst[2].X - dst[0].X, dst[2].Y - dst[0].Y}

	det := u1.X*u2.Y - u2.X*u1.Y
	if math.Abs(det) < 1e-9 {
		return Affine{}, fmt.Errorf("%w: vertices %v", ErrSingularTriangle, src)
	}

	a := Affine{
		A: (w1.X*u2.Y - w2.X*u1.Y) / det,
		B: (w2.X*u1.X - w1.X*u2.X) / det,
		D: (w1.Y*u2.Y - w2.Y*u1.Y) / det,
		E: (w2.Y*u1.X - w1.Y*u2.X) / det,
	}
	a.C = dst[0].X - a.A*src[0].X - a.B*src[0].Y
	a.F = dst[0].Y - a.D*src[0].X - a.E*src[0].Y

	return a, nil
}

// Apply transforms a single point.
func (a Affine) Apply(p Point) Point {
	return Point{
		X: a.A*p.X + a.B*p.Y + a.C,
		Y: a.D*p.X + a.E*p.Y + a.F,
	}
}

// Invert returns the inverse transform.
func (a Affine) Invert() (Affine, error) {
	det := a.A*a.E - a.B*a.D
	if math.Abs(det) < 1e-12 {
		return Affine{}, fmt.Errorf("%w: non-invertible transform", ErrSingularTriangle)
	}
	return Affine{
		A: a.E / det,
		B: -a.B / det,
		C: (a.B*a.F - a.E*a.C) / det,
		D: -a.D / det,
		E: a.A / det,
		F: (a.D*a.C - a.A*a.F) / det,
	}, nil
}

// Edge tolerance of the barycentric inside test. Slightly negative so
// pixels sitting exactly on a shared edge are claimed by both adjacent
// triangles instead of leaking through as gaps.
const insideEps = 1e-7

// warpTriangle samples the pixels of srcTri in src into the dstTri
// region of dst through the affine transform between the two triangles.
// Every destination pixel inside dstTri (edges included) is mapped back
// into source space and bilinearly sampled, clamping coordinates that
// land outside the source bounds. Pixels outside the triangle are left
// untouched. An empty (collapsed) destination triangle covers no pixels
// and is a no-op; a degenerate source triangle is an error.
func warpTriangle(dst, src *image.NRGBA, srcTri, dstTri [3]Point) error {
	if math.Abs(signedArea(srcTri[0], srcTri[1], srcTri[2])) < 1e-9 {
		return fmt.Errorf("%w: vertices %v", ErrSingularTriangle, srcTri)
	}

	// The destination triangle can collapse to zero area at some
	// interpolation factor even when both endpoints are valid.
	back, err := AffineFromTriangles(dstTri, srcTri)
	if err != nil {
		return nil
	}

	b := dst.Bounds()
	x0 := Max(b.Min.X, int(math.Floor(Min(dstTri[0].X, dstTri[1].X, dstTri[2].X))))
	x1 := Min(b.Max.X-1, int(math.Ceil(Max(dstTri[0].X, dstTri[1].X, dstTri[2].X))))
	y0 := Max(b.Min.Y, int(math.Floor(Min(dstTri[0].Y, dstTri[1].Y, dstTri[2].Y))))
	y1 := Min(b.Max.Y-1, int(math.Ceil(Max(dstTri[0].Y, dstTri[1].Y, dstTri[2].Y))))

	denom := 2 * signedArea(dstTri[0], dstTri[1], dstTri[2])

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := Point{float64(x), float64(y)}

			// Barycentric coordinates of p relative to dstTri.
			l0 := 2 * signedArea(dstTri[1], dstTri[2], p) / denom
			l1 := 2 * signedArea(dstTri[2], dstTri[0], p) / denom
			l2 := 1 - l0 - l1
			if l0 < -insideEps || l1 < -insideEps || l2 < -insideEps {
				continue
			}

			sp := back.Apply(p)
			r, g, bl, al := bilinearSample(src, sp.X, sp.Y)

			i := dst.PixOffset(x, y)
			dst.Pix[i+0] = r
			dst.Pix[i+1] = g
			dst.Pix[i+2] = bl
			dst.Pix[i+3] = al
		}
	}
	return nil
}

// bilinearSample reads the source image at a fractional coordinate,
// blending the four surrounding pixels. Coordinates outside the image
// are clamped to the nearest edge pixel.
func bilinearSample(img *image.NRGBA, x, y float64) (r, g, b, a uint8) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	x = Clamp(x, 0, float64(w-1))
	y = Clamp(y, 0, float64(h-1))

	ix, iy := int(x), int(y)
	fx, fy := x-float64(ix), y-float64(iy)
	ix1 := Min(ix+1, w-1)
	iy1 := Min(iy+1, h-1)

	i00 := img.PixOffset(ix, iy)
	i10 := img.PixOffset(ix1, iy)
	i01 := img.PixOffset(ix, iy1)
	i11 := img.PixOffset(ix1, iy1)

	for c := 0; c < 4; c++ {
		top := float64(img.Pix[i00+c])*(1-fx) + float64(img.Pix[i10+c])*fx
		bot := float64(img.Pix[i01+c])*(1-fx) + float64(img.Pix[i11+c])*fx
		v := uint8(math.Round(top*(1-fy) + bot*fy))
		switch c {
		case 0:
			r = v
		case 1:
			g = v
		case 2:
			b = v
		case 3:
			a = v
		}
	}
	return r, g, b, a
}

// triangleCoords resolves a triangle's vertex IDs against a point set.
func triangleCoords(t Triangle, ps PointSet) [3]Point {
	return [3]Point{ps[t[0]], ps[t[1]], ps[t[2]]}
}
