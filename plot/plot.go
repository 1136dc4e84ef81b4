// Package plot renders fitted decision trees with gonum/plot.
//
// Nodes are laid out top-down: leaves are spaced evenly from left to right in
// traversal order, each decision node is centred above its two children, and
// each level sits one unit below its parent.
package plot

import (
	"fmt"
	"io"
	"strings"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/tree"
)

// Options controls rendering.
type Options struct {
	// FeatureNames replaces "x[i]" in split labels when it has an entry for i.
	FeatureNames []string
	Title        string
	// Width and Height default to 2 inches per leaf (at least two leaves)
	// and 1.5 inches per level.
	Width, Height vg.Length
}

// Point is the position of one node in layout units.
type Point struct {
	X, Y float64
}

// Layout returns one position per node, indexed by handle.
func Layout[L comparable](t *tree.Tree[L]) ([]Point, error) {
	if t == nil || t.NodeCount() == 0 {
		return nil, errors.NewNotFittedError("Tree", "Layout")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	pos := make([]Point, t.NodeCount())
	next := 0.0
	var place func(h int) float64
	place = func(h int) float64 {
		n := &t.Nodes[h]
		var x float64
		switch n.Kind {
		case tree.DecisionNode:
			x = (place(n.Left) + place(n.Right)) / 2
		default:
			x = next
			next++
		}
		pos[h] = Point{X: x, Y: -float64(n.Depth)}
		return x
	}
	place(0)
	return pos, nil
}

// New builds a gonum plot of t with one text box per node and a line per
// parent-child edge.
func New[L comparable](t *tree.Tree[L], opts Options) (*gplot.Plot, error) {
	pos, err := Layout(t)
	if err != nil {
		return nil, err
	}

	p := gplot.New()
	p.Title.Text = opts.Title
	p.HideAxes()

	for h := range t.Nodes {
		n := &t.Nodes[h]
		if n.Kind != tree.DecisionNode {
			continue
		}
		for _, c := range [2]int{n.Left, n.Right} {
			edge, err := plotter.NewLine(plotter.XYs{
				{X: pos[h].X, Y: pos[h].Y},
				{X: pos[c].X, Y: pos[c].Y},
			})
			if err != nil {
				return nil, errors.Wrap(err, "plot: edge")
			}
			p.Add(edge)
		}
	}

	xys := make(plotter.XYs, len(pos))
	texts := make([]string, len(pos))
	for h, pt := range pos {
		xys[h] = plotter.XY{X: pt.X, Y: pt.Y}
		texts[h] = nodeText(t, h, opts.FeatureNames)
	}

	marks, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, errors.Wrap(err, "plot: nodes")
	}
	marks.GlyphStyle.Shape = draw.BoxGlyph{}
	marks.GlyphStyle.Radius = vg.Points(3)

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, errors.Wrap(err, "plot: labels")
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YTop
	}
	labels.Offset = vg.Point{Y: -vg.Points(4)}
	p.Add(marks, labels)

	leaves := t.LeafCount()
	p.X.Min, p.X.Max = -0.5, float64(leaves)-0.5
	p.Y.Min, p.Y.Max = -float64(t.Depth())-0.8, 0.2
	return p, nil
}

// WriteTo renders t in format ("png", "svg", "pdf", ...) to w.
func WriteTo[L comparable](w io.Writer, t *tree.Tree[L], format string, opts Options) error {
	p, err := New(t, opts)
	if err != nil {
		return err
	}
	width, height := size(t, opts)
	return errors.SafeExecute("plot.WriteTo", func() error {
		wt, err := p.WriterTo(width, height, format)
		if err != nil {
			return errors.Wrapf(err, "plot: unsupported format %q", format)
		}
		if _, err := wt.WriteTo(w); err != nil {
			return errors.Wrap(err, "plot: write")
		}
		return nil
	})
}

// Save renders t to path; the format follows the file extension.
func Save[L comparable](path string, t *tree.Tree[L], opts Options) error {
	p, err := New(t, opts)
	if err != nil {
		return err
	}
	width, height := size(t, opts)
	return errors.SafeExecute("plot.Save", func() error {
		if err := p.Save(width, height, path); err != nil {
			return errors.Wrapf(err, "plot: save %s", path)
		}
		return nil
	})
}

func size[L comparable](t *tree.Tree[L], opts Options) (vg.Length, vg.Length) {
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = vg.Length(max(t.LeafCount(), 2)) * 2 * vg.Inch
	}
	if h <= 0 {
		h = vg.Length(t.Depth()+1) * 1.5 * vg.Inch
	}
	return w, h
}

func nodeText[L comparable](t *tree.Tree[L], h int, names []string) string {
	n := &t.Nodes[h]
	crit := t.Criterion
	if crit == "" {
		crit = tree.CriterionEntropy
	}
	var b strings.Builder
	if n.Kind == tree.DecisionNode {
		fmt.Fprintf(&b, "%s <= %.4g\n", featureName(n.Feature, names), n.Threshold)
	}
	fmt.Fprintf(&b, "%s = %.3f\n", crit, n.Impurity)
	fmt.Fprintf(&b, "samples = %d\n", n.Samples)
	if len(n.Counts) > 0 {
		fmt.Fprintf(&b, "value = %v\n", n.Counts)
	}
	fmt.Fprintf(&b, "class = %v", n.Label)
	return b.String()
}

func featureName(i int, names []string) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return fmt.Sprintf("x[%d]", i)
}
