package morph

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// GIFOptions controls the animated GIF encoding.
type GIFOptions struct {
	// Delay between frames in 10ms units. Values below 1 are raised
	// to 1 so viewers do not fall back to their own default timing.
	Delay int

	// Boomerang appends the reversed sequence after the forward pass
	// (minus the two endpoint frames, which would otherwise be shown
	// twice in a row) so the animation swings back and forth.
	Boomerang bool

	// LoopCount is the GIF loop count: 0 loops forever, -1 plays
	// once, n > 0 plays n+1 times.
	LoopCount int
}

// EncodeGIF writes the frame sequence as an animated GIF. Every frame
// is quantized to the Plan9 palette; the conversions are independent
// per frame and run in parallel.
func EncodeGIF(w io.Writer, frames []*image.NRGBA, o GIFOptions) error {
	seq := frames
	if o.Boomerang && len(frames) > 2 {
		seq = make([]*image.NRGBA, 0, 2*len(frames)-2)
		seq = append(seq, frames...)
		for i := len(frames) - 2; i > 0; i-- {
			seq = append(seq, frames[i])
		}
	}

	delay := Max(o.Delay, 1)

	out := &gif.GIF{
		Image:     make([]*image.Paletted, len(seq)),
		Delay:     make([]int, len(seq)),
		LoopCount: o.LoopCount,
	}

	var eg errgroup.Group
	eg.SetLimit(runtime.NumCPU())

	for i, frame := range seq {
		i, frame := i, frame
		eg.Go(func() error {
			paletted := image.NewPaletted(frame.Bounds(), palette.Plan9)
			draw.Draw(paletted, paletted.Rect, frame, frame.Bounds().Min, draw.Src)
			out.Image[i] = paletted
			out.Delay[i] = delay
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	return gif.EncodeAll(w, out)
}

// WriteGIF encodes the frame sequence into the named file.
func WriteGIF(path string, frames []*image.NRGBA, o GIFOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := EncodeGIF(f, frames, o); err != nil {
		return err
	}
	return f.Sync()
}
