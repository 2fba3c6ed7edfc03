package morph

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// maxPixelDiff returns the largest per-channel difference between two
// equally sized images.
func maxPixelDiff(a, b *image.NRGBA) int {
	var max int
	for i := range a.Pix {
		d := int(a.Pix[i]) - int(b.Pix[i])
		if d < 0 {
			d = -d
		}
		if d > max {
			max = d
		}
	}
	return max
}

func warpedCorrespondence(t *testing.T, w, h int) *Correspondence {
	t.Helper()

	src := AnchorCorners(PointSet{0: {float64(w) * 0.3, float64(h) * 0.3}}, w, h)
	dst := AnchorCorners(PointSet{0: {float64(w) * 0.6, float64(h) * 0.5}}, w, h)

	c, err := NewCorrespondence(src, dst)
	require.NoError(t, err)
	return c
}

func TestCompositeEndpointReproduction(t *testing.T) {
	src := gradientImage(48, 48)
	dst := solidImage(48, 48, color.NRGBA{R: 20, G: 200, B: 90, A: 255})
	c := warpedCorrespondence(t, 48, 48)

	atZero, err := Composite(src, dst, c, 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, maxPixelDiff(atZero, src), 1, "t=0 must reproduce the source image")

	atOne, err := Composite(src, dst, c, 1)
	require.NoError(t, err)
	assert.LessOrEqual(t, maxPixelDiff(atOne, dst), 1, "t=1 must reproduce the target image")
}

func TestCompositeDimensionMismatch(t *testing.T) {
	src := gradientImage(32, 32)
	dst := gradientImage(16, 16)
	c := warpedCorrespondence(t, 32, 32)

	_, err := Composite(src, dst, c, 0.5)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestCompositeCrossDissolveLinearity(t *testing.T) {
	src := gradientImage(40, 40)
	dst := solidImage(40, 40, color.NRGBA{R: 255, G: 40, B: 0, A: 255})

	// Identical geometry on both sides: no warping happens and the
	// composite must be the exact per-pixel blend.
	pts := AnchorCorners(PointSet{0: {13, 27}}, 40, 40)
	c, err := NewCorrespondence(pts, pts)
	require.NoError(t, err)

	for _, tf := range []float64{0.25, 0.5, 0.75} {
		frame, err := Composite(src, dst, c, tf)
		require.NoError(t, err)

		for i := range frame.Pix {
			want := uint8(Clamp(math.Round((1-tf)*float64(src.Pix[i])+tf*float64(dst.Pix[i])), 0, 255))
			if frame.Pix[i] != want {
				t.Fatalf("t=%v pixel %d: got %d, want %d", tf, i, frame.Pix[i], want)
			}
		}
	}
}

func TestCompositeSolidColorMidpoint(t *testing.T) {
	red := solidImage(100, 100, color.NRGBA{R: 255, A: 255})
	blue := solidImage(100, 100, color.NRGBA{B: 255, A: 255})

	pts := AnchorCorners(PointSet{}, 100, 100)
	c, err := NewCorrespondence(pts, pts)
	require.NoError(t, err)

	frame, err := Composite(red, blue, c, 0.5)
	require.NoError(t, err)

	b := frame.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := frame.PixOffset(x, y)
			r, g, bl := frame.Pix[i], frame.Pix[i+1], frame.Pix[i+2]
			if r < 127 || r > 128 || g != 0 || bl < 127 || bl > 128 {
				t.Fatalf("pixel (%d,%d): got (%d,%d,%d), want ~(127,0,127)", x, y, r, g, bl)
			}
		}
	}
}
