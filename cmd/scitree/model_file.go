package main

import (
	"io"
	"os"

	"github.com/YuminosukeSato/scitree/core/model"
	"github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/tree"
)

// modelFile is the JSON document written by fit and read by predict and
// plot.
type modelFile struct {
	Features []string           `json:"features"`
	Class    string             `json:"class"`
	Params   map[string]any     `json:"params"`
	Tree     *tree.Tree[string] `json:"tree"`
}

func writeModel(path string, stdout io.Writer, m *modelFile) error {
	if path == "" {
		return model.WriteJSON(m, stdout)
	}
	return model.SaveJSON(m, path)
}

func readModel(path string) (*modelFile, error) {
	if path == "" {
		return nil, errors.New("required model flag was not set")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "model %s", path)
	}
	m := &modelFile{}
	if err := model.LoadJSON(m, path); err != nil {
		return nil, err
	}
	if m.Tree == nil {
		return nil, errors.Newf("model %s has no tree", path)
	}
	if len(m.Features) != m.Tree.NFeatures {
		return nil, errors.Newf("model %s names %d features but its tree uses %d",
			path, len(m.Features), m.Tree.NFeatures)
	}
	if err := m.Tree.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
