// Package editor implements the desktop control point editor built on
// top of the morph library.
package editor

import (
	"context"
	"image"
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/esimov/morph"
)

// Side selects which endpoint of a correspondence a canvas edits.
type Side int

const (
	SideSource Side = iota
	SideTarget
)

// Session is the shared editing state: the two endpoint images and the
// single pair list both canvases operate on. Point coordinates are
// stored normalized (0..1) so they survive image reloads of different
// resolutions. All methods are safe for concurrent use; mutating calls
// fire the change callback.
type Session struct {
	mu            sync.RWMutex
	log           *logrus.Logger
	src, dst      *image.NRGBA
	pairs         []morph.PointPair
	showTriangles bool
	onChange      func()
}

// NewSession returns an empty session with the triangles overlay
// enabled.
func NewSession(log *logrus.Logger) *Session {
	return &Session{log: log, showTriangles: true}
}

// OnChange registers the callback invoked after every mutation.
func (s *Session) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Session) notify() {
	s.mu.RLock()
	fn := s.onChange
	s.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// SetSourceImage installs the source image. When no target image is
// loaded yet the same image is used for both endpoints, matching the
// single-image warping workflow.
func (s *Session) SetSourceImage(img image.Image) {
	s.mu.Lock()
	s.src = morph.ImgToNRGBA(img)
	if s.dst == nil {
		s.dst = s.src
	} else {
		s.src, s.dst = morph.Normalize(s.src, s.dst)
	}
	s.mu.Unlock()
	s.notify()
}

// SetTargetImage installs the target image, rescaled to the source
// dimensions when a source is already loaded.
func (s *Session) SetTargetImage(img image.Image) {
	s.mu.Lock()
	if s.src == nil || s.src == s.dst {
		s.dst = morph.ImgToNRGBA(img)
		if s.src == nil {
			s.src = s.dst
		} else {
			s.src, s.dst = morph.Normalize(s.src, s.dst)
		}
	} else {
		s.src, s.dst = morph.Normalize(s.src, morph.ImgToNRGBA(img))
	}
	s.mu.Unlock()
	s.notify()
}

// Image returns the endpoint image shown by the given side, or nil.
func (s *Session) Image(side Side) *image.NRGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if side == SideTarget {
		return s.dst
	}
	return s.src
}

// HasImages reports whether both endpoints are available.
func (s *Session) HasImages() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.src != nil && s.dst != nil
}

// Size returns the working image dimensions.
func (s *Session) Size() (w, h int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.src == nil {
		return 0, 0
	}
	return s.src.Bounds().Dx(), s.src.Bounds().Dy()
}

// Pairs returns a copy of the current pair list.
func (s *Session) Pairs() []morph.PointPair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]morph.PointPair, len(s.pairs))
	copy(out, s.pairs)
	return out
}

// SetPairs replaces the pair list, used by template loading.
func (s *Session) SetPairs(pairs []morph.PointPair) {
	s.mu.Lock()
	s.pairs = append(s.pairs[:0:0], pairs...)
	s.mu.Unlock()
	s.notify()
}

// AddPair appends a new correspondence with both endpoints at the same
// normalized position and returns its index.
func (s *Session) AddPair(p morph.Point) int {
	s.mu.Lock()
	s.pairs = append(s.pairs, morph.PointPair{Source: p, Target: p})
	idx := len(s.pairs) - 1
	count := len(s.pairs)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"index": idx, "points": count}).Debug("Added control point")
	s.notify()
	return idx
}

// MovePoint repositions one endpoint of a pair.
func (s *Session) MovePoint(idx int, side Side, p morph.Point) {
	s.mu.Lock()
	if idx < 0 || idx >= len(s.pairs) {
		s.mu.Unlock()
		return
	}
	p.X = morph.Clamp(p.X, 0, 1)
	p.Y = morph.Clamp(p.Y, 0, 1)
	if side == SideTarget {
		s.pairs[idx].Target = p
	} else {
		s.pairs[idx].Source = p
	}
	s.mu.Unlock()
	s.notify()
}

// DeletePair removes a correspondence.
func (s *Session) DeletePair(idx int) {
	s.mu.Lock()
	if idx < 0 || idx >= len(s.pairs) {
		s.mu.Unlock()
		return
	}
	s.pairs = append(s.pairs[:idx], s.pairs[idx+1:]...)
	count := len(s.pairs)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"index": idx, "points": count}).Debug("Deleted control point")
	s.notify()
}

// Clear drops every pair.
func (s *Session) Clear() {
	s.mu.Lock()
	s.pairs = nil
	s.mu.Unlock()
	s.notify()
}

// ResetMorph snaps every target endpoint back onto its source position.
func (s *Session) ResetMorph() {
	s.mu.Lock()
	for i := range s.pairs {
		s.pairs[i].Target = s.pairs[i].Source
	}
	s.mu.Unlock()
	s.notify()
}

// ToggleTriangles flips the wireframe overlay and returns the new state.
func (s *Session) ToggleTriangles() bool {
	s.mu.Lock()
	s.showTriangles = !s.showTriangles
	v := s.showTriangles
	s.mu.Unlock()
	s.notify()
	return v
}

// ShowTriangles reports whether the wireframe overlay is enabled.
func (s *Session) ShowTriangles() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.showTriangles
}

// NearestPoint returns the index of the pair whose endpoint on the
// given side lies within the normalized tolerance of p, or -1.
func (s *Session) NearestPoint(side Side, p morph.Point, tol float64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	best, bestDist := -1, tol
	for i, pair := range s.pairs {
		q := pair.Source
		if side == SideTarget {
			q = pair.Target
		}
		d := math.Hypot(q.X-p.X, q.Y-p.Y)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// SidePoints returns the given side's points in pixel space.
func (s *Session) SidePoints(side Side) morph.PointSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.src == nil {
		return nil
	}

	w := s.src.Bounds().Dx()
	h := s.src.Bounds().Dy()
	out := make(morph.PointSet, len(s.pairs))
	for i, pair := range s.pairs {
		p := pair.Source
		if side == SideTarget {
			p = pair.Target
		}
		out[i] = morph.Point{X: p.X * float64(w-1), Y: p.Y * float64(h-1)}
	}
	return out
}

// Correspondence builds the morph correspondence from the current
// state, with the image corners anchored for full coverage.
func (s *Session) Correspondence() (*morph.Correspondence, error) {
	s.mu.RLock()
	pairs := append(s.pairs[:0:0], s.pairs...)
	src := s.src
	s.mu.RUnlock()

	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	srcPts, dstPts := morph.DenormalizePairs(pairs, w, h)
	return morph.NewCorrespondence(
		morph.AnchorCorners(srcPts, w, h),
		morph.AnchorCorners(dstPts, w, h),
	)
}

// ExportOptions configures a GIF export run.
type ExportOptions struct {
	Path      string
	Frames    int
	Delay     int
	Boomerang bool
	OnFrame   func(done, total int)
}

// Export renders the morph sequence and writes it as an animated GIF.
// Cancelling the context aborts the run between frames.
func (s *Session) Export(ctx context.Context, o ExportOptions) error {
	corr, err := s.Correspondence()
	if err != nil {
		return err
	}

	s.mu.RLock()
	src, dst := s.src, s.dst
	s.mu.RUnlock()

	gen := &morph.Generator{Frames: o.Frames}
	if o.OnFrame != nil {
		gen.OnFrame = func(done int) { o.OnFrame(done, o.Frames) }
	}

	frames, err := gen.Generate(ctx, src, dst, corr)
	if err != nil {
		return err
	}

	return morph.WriteGIF(o.Path, frames, morph.GIFOptions{
		Delay:     o.Delay,
		Boomerang: o.Boomerang,
	})
}
