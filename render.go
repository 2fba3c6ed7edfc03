package morph

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// Overlay colors matching the editor's annotation look.
var (
	wireColor  = color.RGBA{R: 0, G: 255, B: 0, A: 128}
	pointColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// DrawOverlay renders the mesh wireframe and the control point markers
// on top of the image and returns the annotated copy. Corner anchor
// points are drawn like any other point; a nil mesh draws markers only.
func DrawOverlay(img image.Image, points PointSet, mesh []Triangle) image.Image {
	bounds := img.Bounds()
	ctx := gg.NewContext(bounds.Dx(), bounds.Dy())
	ctx.DrawImage(img, 0, 0)

	ctx.SetStrokeStyle(gg.NewSolidPattern(wireColor))
	ctx.SetLineWidth(1)
	for _, t := range mesh {
		p0, p1, p2 := points[t[0]], points[t[1]], points[t[2]]

		ctx.MoveTo(p0.X, p0.Y)
		ctx.LineTo(p1.X, p1.Y)
		ctx.LineTo(p2.X, p2.Y)
		ctx.LineTo(p0.X, p0.Y)
		ctx.Stroke()
	}

	ctx.SetFillStyle(gg.NewSolidPattern(pointColor))
	for _, p := range points {
		ctx.DrawCircle(p.X, p.Y, 2.5)
		ctx.Fill()
	}

	return ctx.Image()
}
