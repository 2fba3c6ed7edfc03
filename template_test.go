package morph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRoundTrip(t *testing.T) {
	pairs := []PointPair{
		{Source: Point{0.1, 0.2}, Target: Point{0.3, 0.4}},
		{Source: Point{0.55, 0.5}, Target: Point{0.5, 0.625}},
		{Source: Point{0, 0}, Target: Point{1, 1}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf, pairs))

	got, err := ReadTemplate(&buf)
	require.NoError(t, err)
	assert.Equal(t, pairs, got)
}

func TestReadTemplateRejectsBadRows(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"missing column", "0.1,0.2,0.3\n"},
		{"not a number", "0.1,0.2,0.3,zero\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadTemplate(strings.NewReader(tc.in))
			assert.Error(t, err)
		})
	}
}

func TestDenormalizePairs(t *testing.T) {
	pairs := []PointPair{
		{Source: Point{0, 0}, Target: Point{1, 1}},
		{Source: Point{0.5, 0.5}, Target: Point{0.5, 0.5}},
	}

	src, dst := DenormalizePairs(pairs, 101, 201)

	require.Len(t, src, 2)
	require.Len(t, dst, 2)

	assert.Equal(t, Point{0, 0}, src[0])
	assert.Equal(t, Point{100, 200}, dst[0])
	assert.Equal(t, Point{50, 100}, src[1])
	assert.Equal(t, Point{50, 100}, dst[1])
}
