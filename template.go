package morph

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Point templates are four-column CSV files holding one correspondence
// per row in normalized coordinates:
//
//	source_x,source_y,target_x,target_y

// ReadTemplate parses a point template.
func ReadTemplate(r io.Reader) ([]PointPair, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}

	pairs := make([]PointPair, 0, len(rows))
	for i, row := range rows {
		if len(row) != 4 {
			return nil, fmt.Errorf("template row %d: expected 4 columns, got %d", i+1, len(row))
		}
		var vals [4]float64
		for j, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("template row %d: %w", i+1, err)
			}
			vals[j] = v
		}
		pairs = append(pairs, PointPair{
			Source: Point{vals[0], vals[1]},
			Target: Point{vals[2], vals[3]},
		})
	}
	return pairs, nil
}

// WriteTemplate writes the pair list in template format.
func WriteTemplate(w io.Writer, pairs []PointPair) error {
	cw := csv.NewWriter(w)
	for _, p := range pairs {
		row := []string{
			strconv.FormatFloat(p.Source.X, 'g', -1, 64),
			strconv.FormatFloat(p.Source.Y, 'g', -1, 64),
			strconv.FormatFloat(p.Target.X, 'g', -1, 64),
			strconv.FormatFloat(p.Target.Y, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// LoadTemplate reads a point template from the named file.
func LoadTemplate(path string) ([]PointPair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadTemplate(f)
}

// SaveTemplate writes the pair list into the named file.
func SaveTemplate(path string, pairs []PointPair) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteTemplate(f, pairs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
