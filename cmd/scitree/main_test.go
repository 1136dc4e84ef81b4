package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioCSV = `a,b,label
2,3,lo
1,1,lo
4,5,hi
4,4,hi
2,1,lo
1,3,lo
3,3,hi
3,1,hi
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cliParser()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "scitree v0.1.0\n", out)
}

func TestFitPredict(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "train.csv", scenarioCSV)
	model := filepath.Join(dir, "model.json")

	_, stderr, err := run(t, "fit", "-i", data, "-c", "label", "-o", model, "--max-depth", "3")
	require.NoError(t, err)
	assert.Contains(t, stderr, "training accuracy")
	assert.Contains(t, stderr, `"metrics.accuracy":1`)

	m, err := readModel(model)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, m.Features)
	assert.Equal(t, "label", m.Class)
	assert.Equal(t, 3, m.Tree.NodeCount())
	assert.Equal(t, []string{"lo", "hi"}, m.Tree.Classes)

	out, stderr, err := run(t, "predict", "-m", model, "-i", data)
	require.NoError(t, err)
	assert.Equal(t, "lo\nlo\nhi\nhi\nlo\nlo\nhi\nhi\n", out)
	assert.Contains(t, stderr, "prediction accuracy")

	// Columns are matched by name and the class column is optional.
	swapped := writeFile(t, dir, "swapped.csv", "b,a\n1,1\n1,4\n")
	out, _, err = run(t, "predict", "-m", model, "-i", swapped)
	require.NoError(t, err)
	assert.Equal(t, "lo\nhi\n", out)
}

func TestFitToStdout(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "train.csv", scenarioCSV)
	out, _, err := run(t, "fit", "-i", data, "-c", "label", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, `"features"`)
	assert.Contains(t, out, `"kind": "decision"`)
}

func TestFitConfigFile(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "train.csv", scenarioCSV)
	cfg := writeFile(t, dir, "scitree.yml", "max_depth: 0\ncriterion: gini\nlog_level: warn\n")
	model := filepath.Join(dir, "model.json")

	_, stderr, err := run(t, "fit", "--config", cfg, "-i", data, "-c", "label", "-o", model)
	require.NoError(t, err)
	assert.NotContains(t, stderr, "training accuracy", "log_level warn hides info records")

	m, err := readModel(model)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Tree.NodeCount())
	assert.Equal(t, "gini", m.Params["criterion"])

	// Flags win over the file.
	_, _, err = run(t, "fit", "--config", cfg, "-i", data, "-c", "label", "-o", model, "--max-depth", "2")
	require.NoError(t, err)
	m, err = readModel(model)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Tree.NodeCount())
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(writeFile(t, dir, "empty.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig(writeFile(t, dir, "partial.yml", "min_samples_leaf: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MinSamplesLeaf)
	assert.Equal(t, -1, cfg.MaxDepth)
	assert.Equal(t, "entropy", cfg.Criterion)

	_, err = LoadConfig(writeFile(t, dir, "unknown.yml", "depth: 3\n"))
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestApplyFlags(t *testing.T) {
	fs := pflag.NewFlagSet("fit", pflag.ContinueOnError)
	addTreeFlags(fs)
	require.NoError(t, fs.Parse([]string{"--max-depth=2", "--criterion=gini"}))

	cfg := DefaultConfig()
	require.NoError(t, cfg.applyFlags(fs))
	assert.Equal(t, 2, cfg.MaxDepth)
	assert.Equal(t, "gini", cfg.Criterion)
	assert.Equal(t, 2, cfg.MinSamplesSplit, "unset flags keep config values")

	mistyped := pflag.NewFlagSet("fit", pflag.ContinueOnError)
	mistyped.String(flagMaxDepth, "", "")
	require.NoError(t, mistyped.Parse([]string{"--max-depth=deep"}))
	assert.Error(t, cfg.applyFlags(mistyped))
}

func TestFitErrors(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "train.csv", scenarioCSV)

	_, _, err := run(t, "fit", "-i", data)
	assert.ErrorContains(t, err, "class-feature")

	_, _, err = run(t, "fit", "-i", data, "-c", "missing")
	assert.ErrorContains(t, err, "class column")

	_, _, err = run(t, "fit", "-i", data, "-c", "label", "--max-depth=-3")
	assert.ErrorContains(t, err, "max_depth")

	_, _, err = run(t, "fit", "-i", data, "-c", "label", "--log-level", "loud")
	assert.Error(t, err)

	bad := writeFile(t, dir, "bad.csv", "a,label\n1,x\nfoo,y\n")
	_, _, err = run(t, "fit", "-i", bad, "-c", "label")
	assert.ErrorContains(t, err, "line 3")
}

func TestFitHoldout(t *testing.T) {
	dir := t.TempDir()
	var b strings.Builder
	b.WriteString("x,label\n")
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			b.WriteString("1,even\n")
		} else {
			b.WriteString("5,odd\n")
		}
	}
	data := writeFile(t, dir, "train.csv", b.String())
	_, stderr, err := run(t, "fit", "-i", data, "-c", "label", "-o", filepath.Join(dir, "m.json"), "--test-size", "0.25")
	require.NoError(t, err)
	assert.Contains(t, stderr, "test accuracy")
}

func TestPredictErrors(t *testing.T) {
	dir := t.TempDir()
	_, _, err := run(t, "predict", "-i", writeFile(t, dir, "x.csv", "a\n1\n"))
	assert.ErrorContains(t, err, "model")

	data := writeFile(t, dir, "train.csv", scenarioCSV)
	model := filepath.Join(dir, "model.json")
	_, _, err = run(t, "fit", "-i", data, "-c", "label", "-o", model)
	require.NoError(t, err)

	_, _, err = run(t, "predict", "-m", model, "-i", writeFile(t, dir, "narrow.csv", "a\n1\n"))
	assert.ErrorContains(t, err, `"b"`)
}

func TestPlot(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "train.csv", scenarioCSV)
	model := filepath.Join(dir, "model.json")
	_, _, err := run(t, "fit", "-i", data, "-c", "label", "-o", model)
	require.NoError(t, err)

	img := filepath.Join(dir, "tree.png")
	_, _, err = run(t, "plot", "-m", model, "-o", img, "--title", "scenario")
	require.NoError(t, err)
	info, err := os.Stat(img)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	_, _, err = run(t, "plot", "-m", model)
	assert.ErrorContains(t, err, "output")
}

func TestCrossValidateCommand(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "train.csv", scenarioCSV)
	out, _, err := run(t, "cv", "-i", data, "-c", "label", "-k", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "fold 0: ")
	assert.Contains(t, out, "fold 3: ")
	assert.Contains(t, out, "mean: ")
}

func TestReadDataset(t *testing.T) {
	ds, err := readDataset(strings.NewReader("x, y ,cls\n1, 2.5 ,a\n-3,4,b\n"), "cls", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, ds.features)
	assert.Equal(t, [][]float64{{1, 2.5}, {-3, 4}}, ds.X)
	assert.Equal(t, []string{"a", "b"}, ds.y)

	ds, err = readDataset(strings.NewReader("x,y\n1,2\n"), "cls", false)
	require.NoError(t, err)
	assert.Nil(t, ds.y)

	_, err = readDataset(strings.NewReader(""), "cls", false)
	assert.Error(t, err)

	X, err := (&dataset{features: []string{"p", "q"}, X: [][]float64{{1, 2}}}).reorder([]string{"q", "p"})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 1}}, X)
}
