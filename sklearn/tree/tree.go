// Package tree はscikit-learn互換のDecisionTreeClassifierを提供します。
//
// gonumの行列を入出力とし、内部ではscitree/treeの決定木を使用します。
package tree

import (
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scitree/core/model"
	"github.com/YuminosukeSato/scitree/metrics"
	"github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/pkg/log"
	"github.com/YuminosukeSato/scitree/tree"
)

// DecisionTreeClassifier は決定木による分類モデル
// scikit-learnのDecisionTreeClassifierと互換性を持つ
type DecisionTreeClassifier struct {
	state *model.StateManager

	// ハイパーパラメータ
	criterion       string // 不純度の指標: "gini", "entropy"
	maxDepth        int    // 最大深さ（-1 で無制限）
	minSamplesSplit int    // 分割に必要な最小サンプル数
	minSamplesLeaf  int    // 葉に必要な最小サンプル数

	// 学習結果
	clf       *tree.Classifier[int]
	classes_  []int // 昇順のクラスラベル
	nClasses_ int
	column_   []int // classes_ の各ラベルが tree.Classes の何番目か

	mu sync.RWMutex
}

// Compile-time interface checks.
var (
	_ model.Classifier      = (*DecisionTreeClassifier)(nil)
	_ model.ParameterGetter = (*DecisionTreeClassifier)(nil)
	_ model.ParameterSetter = (*DecisionTreeClassifier)(nil)
)

// Option は設定オプション
type Option func(*DecisionTreeClassifier)

// WithCriterion は不純度の指標を設定する
func WithCriterion(criterion string) Option {
	return func(dt *DecisionTreeClassifier) { dt.criterion = criterion }
}

// WithMaxDepth は最大深さを設定する
func WithMaxDepth(depth int) Option {
	return func(dt *DecisionTreeClassifier) { dt.maxDepth = depth }
}

// WithMinSamplesSplit は分割に必要な最小サンプル数を設定する
func WithMinSamplesSplit(n int) Option {
	return func(dt *DecisionTreeClassifier) { dt.minSamplesSplit = n }
}

// WithMinSamplesLeaf は葉に必要な最小サンプル数を設定する
func WithMinSamplesLeaf(n int) Option {
	return func(dt *DecisionTreeClassifier) { dt.minSamplesLeaf = n }
}

// NewDecisionTreeClassifier は新しいDecisionTreeClassifierを作成
// デフォルト値はscikit-learnに合わせる（criterion="gini", max_depth=None）
func NewDecisionTreeClassifier(options ...Option) *DecisionTreeClassifier {
	dt := &DecisionTreeClassifier{
		state:           model.NewStateManager(),
		criterion:       string(tree.CriterionGini),
		maxDepth:        tree.Unbounded,
		minSamplesSplit: 2,
		minSamplesLeaf:  1,
	}
	for _, opt := range options {
		opt(dt)
	}
	return dt
}

func (dt *DecisionTreeClassifier) options() []tree.Option {
	return []tree.Option{
		tree.Criterion(tree.CriterionType(dt.criterion)),
		tree.MaxDepth(dt.maxDepth),
		tree.MinSamplesSplit(dt.minSamplesSplit),
		tree.MinSamplesLeaf(dt.minSamplesLeaf),
		tree.WithLogger(log.GetLoggerWithName("sklearn.tree").With(log.ModelNameKey, "DecisionTreeClassifier")),
	}
}

// Fit はモデルを学習する。y は n×1 の列ベクトルで、値は整数のクラスラベル。
// 整数でない値は切り捨てられ、DataConversionWarning が発生する。
func (dt *DecisionTreeClassifier) Fit(X, y mat.Matrix) error {
	rows, cols := X.Dims()
	yRows, yCols := y.Dims()
	if yCols != 1 {
		return errors.NewDimensionError("DecisionTreeClassifier.Fit", 1, yCols, 1)
	}
	if yRows != rows {
		return errors.NewDimensionError("DecisionTreeClassifier.Fit", rows, yRows, 0)
	}

	if err := errors.CheckMatrix("DecisionTreeClassifier.Fit", y, yRows, 1); err != nil {
		return err
	}

	features := toRows(X)
	labels := make([]int, rows)
	truncated := false
	for i := 0; i < rows; i++ {
		v := y.At(i, 0)
		if v != math.Trunc(v) {
			truncated = true
		}
		labels[i] = int(v)
	}
	if truncated {
		errors.Warn(errors.NewDataConversionWarning("float64", "int", "non-integral class labels were truncated"))
	}

	clf := tree.NewClassifier[int](dt.options()...)
	if err := clf.Fit(features, labels); err != nil {
		return err
	}
	fitted, err := clf.Tree()
	if err != nil {
		return err
	}

	classes := append([]int(nil), fitted.Classes...)
	sort.Ints(classes)
	pos := make(map[int]int, len(fitted.Classes))
	for i, c := range fitted.Classes {
		pos[c] = i
	}
	column := make([]int, len(classes))
	for i, c := range classes {
		column[i] = pos[c]
	}

	dt.mu.Lock()
	dt.clf = clf
	dt.classes_ = classes
	dt.nClasses_ = len(classes)
	dt.column_ = column
	dt.mu.Unlock()
	dt.state.MarkFitted(cols, rows)
	return nil
}

func (dt *DecisionTreeClassifier) fitted(method string) (*tree.Classifier[int], error) {
	if err := dt.state.RequireFitted("DecisionTreeClassifier", method); err != nil {
		return nil, err
	}
	dt.mu.RLock()
	defer dt.mu.RUnlock()
	return dt.clf, nil
}

// Predict はクラスラベルを予測し、n×1 の行列で返す
func (dt *DecisionTreeClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	clf, err := dt.fitted("Predict")
	if err != nil {
		return nil, err
	}
	labels, err := clf.Predict(toRows(X))
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(len(labels), 1, nil)
	for i, l := range labels {
		out.Set(i, 0, float64(l))
	}
	return out, nil
}

// PredictProba は各クラスの確率を予測する。列は Classes() の昇順に対応する。
func (dt *DecisionTreeClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	clf, err := dt.fitted("PredictProba")
	if err != nil {
		return nil, err
	}
	proba, err := clf.PredictProba(toRows(X))
	if err != nil {
		return nil, err
	}

	dt.mu.RLock()
	column := dt.column_
	dt.mu.RUnlock()

	out := mat.NewDense(len(proba), len(column), nil)
	for i, p := range proba {
		for j, c := range column {
			out.Set(i, j, p[c])
		}
	}
	return out, nil
}

// Score は平均正解率を返す。未学習や形状の不一致の場合は 0 を返す。
func (dt *DecisionTreeClassifier) Score(X, y mat.Matrix) float64 {
	pred, err := dt.Predict(X)
	if err != nil {
		return 0
	}
	acc, err := metrics.AccuracyMatrix(y, pred)
	if err != nil {
		return 0
	}
	return acc
}

// NFeaturesIn は学習時の特徴量数を返す（未学習なら 0）
func (dt *DecisionTreeClassifier) NFeaturesIn() int {
	n, _ := dt.state.GetDimensions()
	return n
}

// Classes は学習時に見つかったクラスラベルを昇順で返す
func (dt *DecisionTreeClassifier) Classes() []int {
	dt.mu.RLock()
	defer dt.mu.RUnlock()
	return append([]int(nil), dt.classes_...)
}

// GetFeatureImportances は正規化された特徴量重要度を返す
func (dt *DecisionTreeClassifier) GetFeatureImportances() []float64 {
	t := dt.fittedTree()
	if t == nil {
		return nil
	}
	return t.FeatureImportances()
}

// GetDepth は木の深さを返す
func (dt *DecisionTreeClassifier) GetDepth() int {
	t := dt.fittedTree()
	if t == nil {
		return 0
	}
	return t.Depth()
}

// GetNLeaves は葉の数を返す
func (dt *DecisionTreeClassifier) GetNLeaves() int {
	t := dt.fittedTree()
	if t == nil {
		return 0
	}
	return t.LeafCount()
}

// Tree は学習済みの決定木を返す
func (dt *DecisionTreeClassifier) Tree() (*tree.Tree[int], error) {
	clf, err := dt.fitted("Tree")
	if err != nil {
		return nil, err
	}
	return clf.Tree()
}

func (dt *DecisionTreeClassifier) fittedTree() *tree.Tree[int] {
	t, err := dt.Tree()
	if err != nil {
		return nil
	}
	return t
}

// GetParams はハイパーパラメータを返す
func (dt *DecisionTreeClassifier) GetParams() map[string]interface{} {
	dt.mu.RLock()
	defer dt.mu.RUnlock()
	return map[string]interface{}{
		"criterion":         dt.criterion,
		"max_depth":         dt.maxDepth,
		"min_samples_split": dt.minSamplesSplit,
		"min_samples_leaf":  dt.minSamplesLeaf,
	}
}

// SetParams はハイパーパラメータを設定する。値の検証は tree パッケージに委ねる。
func (dt *DecisionTreeClassifier) SetParams(params map[string]interface{}) error {
	dt.mu.Lock()
	defer dt.mu.Unlock()

	probe := tree.NewClassifier[int](
		tree.Criterion(tree.CriterionType(dt.criterion)),
		tree.MaxDepth(dt.maxDepth),
		tree.MinSamplesSplit(dt.minSamplesSplit),
		tree.MinSamplesLeaf(dt.minSamplesLeaf),
	)
	if err := probe.SetParams(params); err != nil {
		return err
	}
	next := probe.GetParams()
	dt.criterion = next["criterion"].(string)
	dt.maxDepth = next["max_depth"].(int)
	dt.minSamplesSplit = next["min_samples_split"].(int)
	dt.minSamplesLeaf = next["min_samples_leaf"].(int)
	return nil
}

func toRows(X mat.Matrix) [][]float64 {
	r, _ := X.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = mat.Row(nil, i, X)
	}
	return rows
}
