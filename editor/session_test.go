package editor

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esimov/morph"
)

func testSession(t *testing.T) *Session {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	s := NewSession(log)
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{R: 120, A: 255}), image.Point{}, draw.Src)
	s.SetSourceImage(img)
	return s
}

func TestSessionAddMoveDelete(t *testing.T) {
	s := testSession(t)

	idx := s.AddPair(morph.Point{X: 0.5, Y: 0.5})
	require.Equal(t, 0, idx)

	pairs := s.Pairs()
	require.Len(t, pairs, 1)
	assert.Equal(t, pairs[0].Source, pairs[0].Target)

	s.MovePoint(idx, SideTarget, morph.Point{X: 0.8, Y: 0.2})
	pairs = s.Pairs()
	assert.Equal(t, morph.Point{X: 0.5, Y: 0.5}, pairs[0].Source)
	assert.Equal(t, morph.Point{X: 0.8, Y: 0.2}, pairs[0].Target)

	s.DeletePair(idx)
	assert.Empty(t, s.Pairs())
}

func TestSessionMoveClampsToImage(t *testing.T) {
	s := testSession(t)
	idx := s.AddPair(morph.Point{X: 0.5, Y: 0.5})

	s.MovePoint(idx, SideSource, morph.Point{X: -0.4, Y: 1.7})
	assert.Equal(t, morph.Point{X: 0, Y: 1}, s.Pairs()[0].Source)
}

func TestSessionResetMorph(t *testing.T) {
	s := testSession(t)
	idx := s.AddPair(morph.Point{X: 0.3, Y: 0.3})
	s.MovePoint(idx, SideTarget, morph.Point{X: 0.9, Y: 0.9})

	s.ResetMorph()
	pair := s.Pairs()[0]
	assert.Equal(t, pair.Source, pair.Target)
}

func TestSessionNearestPoint(t *testing.T) {
	s := testSession(t)
	s.AddPair(morph.Point{X: 0.2, Y: 0.2})
	s.AddPair(morph.Point{X: 0.7, Y: 0.7})

	assert.Equal(t, 1, s.NearestPoint(SideSource, morph.Point{X: 0.72, Y: 0.69}, 0.05))
	assert.Equal(t, -1, s.NearestPoint(SideSource, morph.Point{X: 0.5, Y: 0.1}, 0.05))
}

func TestSessionChangeCallback(t *testing.T) {
	s := testSession(t)

	var calls int
	s.OnChange(func() { calls++ })

	s.AddPair(morph.Point{X: 0.4, Y: 0.4})
	s.ToggleTriangles()
	s.Clear()

	assert.Equal(t, 3, calls)
}

func TestSessionExport(t *testing.T) {
	s := testSession(t)
	s.AddPair(morph.Point{X: 0.4, Y: 0.4})

	path := filepath.Join(t.TempDir(), "out.gif")
	err := s.Export(context.Background(), ExportOptions{
		Path:   path,
		Frames: 3,
		Delay:  5,
	})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
