package editor

import (
	"image"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/fogleman/gg"
	"github.com/sirupsen/logrus"

	"github.com/esimov/morph"
)

// Pick radius for selecting an existing point, in widget pixels.
const pickRadius = 10

// PointCanvas displays one endpoint image and edits its side of the
// shared pair list. Left click adds a pair (source canvas only), a drag
// moves the nearest endpoint, right click deletes a pair (source canvas
// only), matching the editor conventions: pairs are created and removed
// on the source side, repositioned on either side.
type PointCanvas struct {
	widget.BaseWidget

	session *Session
	side    Side
	log     *logrus.Logger

	img     *canvas.Image
	overlay *canvas.Raster

	dragIdx int
}

// NewPointCanvas creates a canvas editing the given side of the
// session.
func NewPointCanvas(session *Session, side Side, log *logrus.Logger) *PointCanvas {
	pc := &PointCanvas{
		session: session,
		side:    side,
		log:     log,
		dragIdx: -1,
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

// CreateRenderer builds the image plus overlay raster stack.
func (pc *PointCanvas) CreateRenderer() fyne.WidgetRenderer {
	pc.img = canvas.NewImageFromImage(image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	pc.img.FillMode = canvas.ImageFillContain

	pc.overlay = canvas.NewRaster(func(w, h int) image.Image {
		return pc.drawOverlay(w, h)
	})

	return &pointCanvasRenderer{
		canvas:  pc,
		image:   pc.img,
		overlay: pc.overlay,
	}
}

// Refresh re-reads the session image and redraws the annotations.
func (pc *PointCanvas) Refresh() {
	if pc.img == nil {
		return
	}
	if img := pc.session.Image(pc.side); img != nil {
		pc.img.Image = img
	}
	pc.img.Refresh()
	pc.overlay.Refresh()
	pc.BaseWidget.Refresh()
}

func (pc *PointCanvas) MouseDown(ev *desktop.MouseEvent) {
	if !pc.session.HasImages() {
		return
	}

	pos := pc.widgetToNorm(ev.Position)
	tol := pc.pickTolerance()

	switch ev.Button {
	case desktop.MouseButtonPrimary:
		if idx := pc.session.NearestPoint(pc.side, pos, tol); idx >= 0 {
			pc.dragIdx = idx
			return
		}
		// New pairs are only created on the source canvas so the two
		// sides cannot drift out of sync.
		if pc.side == SideSource {
			pc.dragIdx = pc.session.AddPair(pos)
		}
	case desktop.MouseButtonSecondary:
		if pc.side != SideSource {
			return
		}
		if idx := pc.session.NearestPoint(pc.side, pos, tol); idx >= 0 {
			pc.session.DeletePair(idx)
		}
	}
}

func (pc *PointCanvas) MouseUp(ev *desktop.MouseEvent) {
	pc.dragIdx = -1
}

func (pc *PointCanvas) Dragged(ev *fyne.DragEvent) {
	if pc.dragIdx < 0 {
		return
	}
	pc.session.MovePoint(pc.dragIdx, pc.side, pc.widgetToNorm(ev.Position))
}

func (pc *PointCanvas) DragEnd() {
	pc.dragIdx = -1
}

// displayRect is the widget-space rectangle covered by the aspect-fit
// displayed image.
type displayRect struct {
	X, Y, W, H float64
}

// pickTolerance converts the pixel pick radius into normalized
// coordinates for the current display scale.
func (pc *PointCanvas) pickTolerance() float64 {
	rect := pc.imageRect()
	if rect.W <= 0 {
		return 0
	}
	return pickRadius / rect.W
}

func (pc *PointCanvas) imageRect() (r displayRect) {
	w, h := pc.session.Size()
	if w == 0 || h == 0 {
		return r
	}

	size := pc.Size()
	scale := math.Min(float64(size.Width)/float64(w), float64(size.Height)/float64(h))

	r.W = float64(w) * scale
	r.H = float64(h) * scale
	r.X = (float64(size.Width) - r.W) / 2
	r.Y = (float64(size.Height) - r.H) / 2
	return r
}

// widgetToNorm maps a widget position into normalized image
// coordinates, clamped to the 0..1 range.
func (pc *PointCanvas) widgetToNorm(pos fyne.Position) morph.Point {
	rect := pc.imageRect()
	if rect.W == 0 || rect.H == 0 {
		return morph.Point{}
	}
	return morph.Point{
		X: morph.Clamp((float64(pos.X)-rect.X)/rect.W, 0, 1),
		Y: morph.Clamp((float64(pos.Y)-rect.Y)/rect.H, 0, 1),
	}
}

// normToWidget maps normalized image coordinates into widget space.
func (pc *PointCanvas) normToWidget(p morph.Point) (x, y float64) {
	rect := pc.imageRect()
	return rect.X + p.X*rect.W, rect.Y + p.Y*rect.H
}

// drawOverlay renders the triangulation wireframe and the point
// markers in widget space.
func (pc *PointCanvas) drawOverlay(w, h int) image.Image {
	ctx := gg.NewContext(w, h)

	pairs := pc.session.Pairs()
	if len(pairs) == 0 || !pc.session.HasImages() {
		return ctx.Image()
	}

	sideOf := func(pair morph.PointPair) morph.Point {
		if pc.side == SideTarget {
			return pair.Target
		}
		return pair.Source
	}

	if pc.session.ShowTriangles() && len(pairs) >= 3 {
		points := pc.session.SidePoints(pc.side)
		if mesh, err := morph.Triangulate(points); err == nil {
			ctx.SetStrokeStyle(gg.NewSolidPattern(color.RGBA{G: 255, A: 128}))
			ctx.SetLineWidth(1)
			for _, t := range mesh {
				p0 := sideOf(pairs[t[0]])
				p1 := sideOf(pairs[t[1]])
				p2 := sideOf(pairs[t[2]])

				x0, y0 := pc.normToWidget(p0)
				x1, y1 := pc.normToWidget(p1)
				x2, y2 := pc.normToWidget(p2)

				ctx.MoveTo(x0, y0)
				ctx.LineTo(x1, y1)
				ctx.LineTo(x2, y2)
				ctx.LineTo(x0, y0)
				ctx.Stroke()
			}
		}
	}

	ctx.SetFillStyle(gg.NewSolidPattern(color.RGBA{R: 255, A: 255}))
	for _, pair := range pairs {
		x, y := pc.normToWidget(sideOf(pair))
		ctx.DrawCircle(x, y, 3)
		ctx.Fill()
	}

	return ctx.Image()
}

type pointCanvasRenderer struct {
	canvas  *PointCanvas
	image   *canvas.Image
	overlay *canvas.Raster
}

func (r *pointCanvasRenderer) Layout(size fyne.Size) {
	r.image.Resize(size)
	r.overlay.Resize(size)
}

func (r *pointCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *pointCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.image, r.overlay}
}

func (r *pointCanvasRenderer) Refresh() {
	r.image.Refresh()
	r.overlay.Refresh()
}

func (r *pointCanvasRenderer) Destroy() {}
