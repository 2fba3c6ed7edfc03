package morph

import (
	"context"
	"fmt"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Generator produces morph frame sequences.
type Generator struct {
	// Frames is the number of frames to generate, endpoints included.
	// Must be at least 2.
	Frames int

	// Workers bounds the number of frames rendered in parallel.
	// Zero means one worker per CPU.
	Workers int

	// OnFrame, when set, is invoked after each frame completes with
	// the number of finished frames so far. It runs on a background
	// goroutine, not on the caller's.
	OnFrame func(done int)
}

// Generate renders the full morph sequence: Frames frames at evenly
// spaced interpolation factors from 0 to 1 inclusive, in order. Frames
// are independent of each other, so they are rendered by a bounded pool
// of workers; the passed context cancels the remaining work between
// frames.
func (g *Generator) Generate(ctx context.Context, src, dst *image.NRGBA, c *Correspondence) ([]*image.NRGBA, error) {
	if g.Frames < 2 {
		return nil, fmt.Errorf("morph: frame count must be at least 2, got %d", g.Frames)
	}

	workers := g.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	frames := make([]*image.NRGBA, g.Frames)
	done := make(chan int, g.Frames)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i := 0; i < g.Frames; i++ {
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			t := float64(i) / float64(g.Frames-1)
			frame, err := Composite(src, dst, c, t)
			if err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			frames[i] = frame
			done <- i
			return nil
		})
	}

	finished := 0
	drain := make(chan struct{})
	go func() {
		for range done {
			finished++
			if g.OnFrame != nil {
				g.OnFrame(finished)
			}
		}
		close(drain)
	}()

	err := eg.Wait()
	close(done)
	<-drain

	if err != nil {
		return nil, err
	}
	return frames, nil
}
