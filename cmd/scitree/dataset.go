package main

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/scitree/pkg/errors"
)

// dataset is a CSV table split into float feature columns and an optional
// string class column.
type dataset struct {
	features []string
	X        [][]float64
	y        []string
}

// readDataset parses CSV content whose first row names the columns. Every
// column other than classColumn must hold numbers. If classColumn is empty
// or absent and required is false, y is left nil.
func readDataset(r io.Reader, classColumn string, required bool) (*dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("reading header: empty input")
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}

	classIdx := -1
	ds := &dataset{}
	var featureIdx []int
	for i, name := range header {
		name = strings.TrimSpace(name)
		if classColumn != "" && name == classColumn {
			classIdx = i
			continue
		}
		ds.features = append(ds.features, name)
		featureIdx = append(featureIdx, i)
	}
	if classIdx < 0 && required {
		return nil, errors.Newf("class column %q not found in header %v", classColumn, header)
	}

	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading body")
		}
		row := make([]float64, len(featureIdx))
		for j, col := range featureIdx {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[col]), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d, column %q", line, header[col])
			}
			row[j] = v
		}
		ds.X = append(ds.X, row)
		if classIdx >= 0 {
			ds.y = append(ds.y, strings.TrimSpace(record[classIdx]))
		}
	}
	return ds, nil
}

// readDatasetFile reads from path, or from stdin when path is empty.
func readDatasetFile(path string, stdin io.Reader, classColumn string, required bool) (*dataset, error) {
	if path == "" {
		return readDataset(stdin, classColumn, required)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	ds, err := readDataset(f, classColumn, required)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing CSV file %s", path)
	}
	return ds, nil
}

// reorder returns ds.X with its columns rearranged to follow names. Every
// name must be a column of ds.
func (ds *dataset) reorder(names []string) ([][]float64, error) {
	pos := make(map[string]int, len(ds.features))
	for i, n := range ds.features {
		pos[n] = i
	}
	idx := make([]int, len(names))
	for i, n := range names {
		p, ok := pos[n]
		if !ok {
			return nil, errors.Newf("feature column %q missing from input", n)
		}
		idx[i] = p
	}
	out := make([][]float64, len(ds.X))
	for r, row := range ds.X {
		out[r] = make([]float64, len(idx))
		for i, p := range idx {
			out[r][i] = row[p]
		}
	}
	return out, nil
}
