package morph

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAffineFromTrianglesMapsVertices(t *testing.T) {
	src := [3]Point{{0, 0}, {10, 0}, {0, 10}}
	dst := [3]Point{{5, 5}, {25, 10}, {-5, 20}}

	a, err := AffineFromTriangles(src, dst)
	require.NoError(t, err)

	for i := range src {
		got := a.Apply(src[i])
		assert.InDelta(t, dst[i].X, got.X, 1e-9)
		assert.InDelta(t, dst[i].Y, got.Y, 1e-9)
	}
}

func TestAffineFromTrianglesSingular(t *testing.T) {
	src := [3]Point{{0, 0}, {5, 5}, {10, 10}}
	dst := [3]Point{{0, 0}, {10, 0}, {0, 10}}

	_, err := AffineFromTriangles(src, dst)
	assert.ErrorIs(t, err, ErrSingularTriangle)
}

func TestAffineInvertRoundTrip(t *testing.T) {
	src := [3]Point{{0, 0}, {10, 0}, {0, 10}}
	dst := [3]Point{{2, 3}, {12, 5}, {1, 14}}

	a, err := AffineFromTriangles(src, dst)
	require.NoError(t, err)

	inv, err := a.Invert()
	require.NoError(t, err)

	p := Point{3.7, 4.2}
	back := inv.Apply(a.Apply(p))
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
}

// gradientImage builds a deterministic test pattern where every pixel
// value encodes its own coordinates.
func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = uint8(x * 255 / (w - 1))
			img.Pix[i+1] = uint8(y * 255 / (h - 1))
			img.Pix[i+2] = uint8((x + y) % 256)
			img.Pix[i+3] = 0xff
		}
	}
	return img
}

func TestWarpTriangleIdentity(t *testing.T) {
	src := gradientImage(32, 32)
	dst := image.NewNRGBA(src.Bounds())

	tri := [3]Point{{0, 0}, {31, 0}, {0, 31}}
	require.NoError(t, warpTriangle(dst, src, tri, tri))

	inside, outside := 0, 0
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			i := dst.PixOffset(x, y)
			if dst.Pix[i+3] == 0 {
				outside++
				continue
			}
			inside++
			si := src.PixOffset(x, y)
			for c := 0; c < 4; c++ {
				assert.Equal(t, src.Pix[si+c], dst.Pix[i+c], "pixel (%d,%d) channel %d", x, y, c)
			}
		}
	}

	// The triangle covers roughly half of the image; the remainder
	// must stay untouched.
	assert.Greater(t, inside, 0)
	assert.Greater(t, outside, 0)
}

func TestWarpTriangleSingularSource(t *testing.T) {
	src := gradientImage(16, 16)
	dst := image.NewNRGBA(src.Bounds())

	degenerate := [3]Point{{0, 0}, {8, 8}, {15, 15}}
	valid := [3]Point{{0, 0}, {15, 0}, {0, 15}}

	err := warpTriangle(dst, src, degenerate, valid)
	assert.ErrorIs(t, err, ErrSingularTriangle)
}

func TestWarpTriangleCollapsedDestination(t *testing.T) {
	src := gradientImage(16, 16)
	dst := image.NewNRGBA(src.Bounds())

	valid := [3]Point{{0, 0}, {15, 0}, {0, 15}}
	collapsed := [3]Point{{0, 0}, {8, 8}, {15, 15}}

	// A destination triangle collapsed to zero area covers no pixels.
	require.NoError(t, warpTriangle(dst, src, valid, collapsed))
	for _, v := range dst.Pix {
		assert.Zero(t, v)
	}
}

func TestBilinearSampleClamps(t *testing.T) {
	src := gradientImage(8, 8)

	r, g, b, a := bilinearSample(src, -5, -5)
	i := src.PixOffset(0, 0)
	assert.Equal(t, [4]uint8{src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3]}, [4]uint8{r, g, b, a})

	r, g, b, a = bilinearSample(src, 100, 100)
	i = src.PixOffset(7, 7)
	assert.Equal(t, [4]uint8{src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3]}, [4]uint8{r, g, b, a})
}
