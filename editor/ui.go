package editor

import (
	"context"
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/esimov/morph"
)

// Editor wires the two point canvases and the control bar into a
// window.
type Editor struct {
	window  fyne.Window
	log     *logrus.Logger
	session *Session

	sourceCanvas *PointCanvas
	targetCanvas *PointCanvas
	statusLabel  *widget.Label

	frames    int
	delay     int
	boomerang bool
}

// New creates the editor for the given window.
func New(window fyne.Window, log *logrus.Logger) *Editor {
	e := &Editor{
		window:  window,
		log:     log,
		session: NewSession(log),
		frames:  10,
		delay:   5,
	}
	e.sourceCanvas = NewPointCanvas(e.session, SideSource, log)
	e.targetCanvas = NewPointCanvas(e.session, SideTarget, log)
	e.session.OnChange(e.refresh)
	return e
}

// BuildUI assembles the editor layout.
func (e *Editor) BuildUI() fyne.CanvasObject {
	e.statusLabel = widget.NewLabel("No images loaded")

	canvases := container.NewGridWithColumns(2, e.sourceCanvas, e.targetCanvas)

	buttons := container.NewHBox(
		widget.NewButton("Load Source", func() { e.openImage(e.session.SetSourceImage) }),
		widget.NewButton("Load Target", func() { e.openImage(e.session.SetTargetImage) }),
		widget.NewButton("Toggle Triangles", func() { e.session.ToggleTriangles() }),
		widget.NewButton("Clear Points", e.session.Clear),
		widget.NewButton("Reset Morph", e.session.ResetMorph),
		widget.NewButton("Save Template", e.saveTemplate),
		widget.NewButton("Load Template", e.loadTemplate),
	)

	framesLabel := widget.NewLabel(fmt.Sprintf("Frames: %d", e.frames))
	framesSlider := widget.NewSlider(2, 100)
	framesSlider.SetValue(float64(e.frames))
	framesSlider.OnChanged = func(v float64) {
		e.frames = int(v)
		framesLabel.SetText(fmt.Sprintf("Frames: %d", e.frames))
	}

	delayLabel := widget.NewLabel(fmt.Sprintf("Delay: %dms", e.delay*10))
	delaySlider := widget.NewSlider(1, 50)
	delaySlider.SetValue(float64(e.delay))
	delaySlider.OnChanged = func(v float64) {
		e.delay = int(v)
		delayLabel.SetText(fmt.Sprintf("Delay: %dms", e.delay*10))
	}

	boomerangCheck := widget.NewCheck("Boomerang", func(v bool) { e.boomerang = v })

	controls := container.NewHBox(
		framesLabel,
		framesSlider,
		delayLabel,
		delaySlider,
		boomerangCheck,
		widget.NewButton("Save GIF", e.exportGIF),
	)

	return container.NewBorder(
		nil,
		container.NewVBox(buttons, controls, e.statusLabel),
		nil,
		nil,
		canvases,
	)
}

// refresh repaints both canvases and the status line after every
// session change.
func (e *Editor) refresh() {
	fyne.Do(func() {
		e.sourceCanvas.Refresh()
		e.targetCanvas.Refresh()
		e.updateStatus()
	})
}

func (e *Editor) updateStatus() {
	if e.statusLabel == nil {
		return
	}
	if !e.session.HasImages() {
		e.statusLabel.SetText("No images loaded")
		return
	}
	w, h := e.session.Size()
	e.statusLabel.SetText(fmt.Sprintf("%dx%d, %d control points", w, h, len(e.session.Pairs())))
}

// openImage shows a file dialog and installs the decoded image through
// the given setter.
func (e *Editor) openImage(set func(image.Image)) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, e.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		img, _, err := image.Decode(reader)
		if err != nil {
			dialog.ShowError(err, e.window)
			return
		}

		e.log.WithField("file", reader.URI().Path()).Info("Loaded image")
		set(img)
	}, e.window)

	fd.SetFilter(storage.NewExtensionFileFilter([]string{".jpg", ".jpeg", ".png", ".bmp"}))
	fd.Show()
}

func (e *Editor) saveTemplate() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, e.window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if err := morph.WriteTemplate(writer, e.session.Pairs()); err != nil {
			dialog.ShowError(err, e.window)
			return
		}
		e.log.WithField("file", writer.URI().Path()).Info("Saved point template")
	}, e.window)

	fd.SetFileName("points.csv")
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".csv"}))
	fd.Show()
}

func (e *Editor) loadTemplate() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, e.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		pairs, err := morph.ReadTemplate(reader)
		if err != nil {
			dialog.ShowError(err, e.window)
			return
		}

		e.log.WithFields(logrus.Fields{
			"file":   reader.URI().Path(),
			"points": len(pairs),
		}).Info("Loaded point template")
		e.session.SetPairs(pairs)
	}, e.window)

	fd.SetFilter(storage.NewExtensionFileFilter([]string{".csv"}))
	fd.Show()
}

// exportGIF asks for the output file, then renders the sequence in the
// background with a cancellable progress dialog.
func (e *Editor) exportGIF() {
	if !e.session.HasImages() {
		dialog.ShowError(fmt.Errorf("load an image before exporting"), e.window)
		return
	}

	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, e.window)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		e.runExport(path)
	}, e.window)

	fd.SetFileName("morph.gif")
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".gif"}))
	fd.Show()
}

func (e *Editor) runExport(path string) {
	ctx, cancel := context.WithCancel(context.Background())

	progress := widget.NewProgressBar()
	d := dialog.NewCustom("Generating GIF", "Cancel", progress, e.window)
	d.SetOnClosed(cancel)
	d.Show()

	opts := ExportOptions{
		Path:      path,
		Frames:    e.frames,
		Delay:     e.delay,
		Boomerang: e.boomerang,
		OnFrame: func(done, total int) {
			fyne.Do(func() { progress.SetValue(float64(done) / float64(total)) })
		},
	}

	go func() {
		defer cancel()

		err := e.session.Export(ctx, opts)

		fyne.Do(func() {
			d.Hide()
			if err != nil {
				if ctx.Err() == nil {
					dialog.ShowError(err, e.window)
				}
				return
			}
			e.log.WithField("file", path).Info("Exported GIF")
			dialog.ShowInformation("Export", "GIF saved to "+path, e.window)
		})
	}()
}
