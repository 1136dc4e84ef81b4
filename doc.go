// Package scitree provides decision-tree classification for Go, designed for
// backend services that need to train small interpretable models and serve
// predictions in-process.
//
// The core learner grows a binary tree greedily: at every node it scans each
// feature and each distinct value of that feature, keeps the split with the
// highest information gain, and stops when a node is pure, the depth cap is
// reached, or no split has positive gain.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/scitree/tree"
//	)
//
//	func main() {
//	    X := [][]float64{{2, 3}, {1, 1}, {4, 5}, {4, 4}}
//	    y := []string{"lo", "lo", "hi", "hi"}
//
//	    clf := tree.NewClassifier[string](tree.MaxDepth(3))
//	    if err := clf.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    label, err := clf.PredictOne([]float64{3.5, 4})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(label) // hi
//	}
//
// # Packages
//
//   - tree: entropy and gain, the tree builder and predictor, Classifier
//   - sklearn/tree: scikit-learn compatible DecisionTreeClassifier over gonum matrices
//   - metrics: Accuracy and ClassificationError
//   - model_selection: TrainTestSplit, KFold and CrossValidate
//   - plot: tree rendering with gonum/plot
//   - core/model: estimator interfaces, fitted-state tracking, persistence
//   - core/parallel: parallel fan-out used by batch prediction
//   - pkg/errors: structured errors built on cockroachdb/errors
//   - pkg/log: structured logging backed by zerolog
//
// The scitree command (cmd/scitree) fits, evaluates, applies and plots trees
// from CSV files.
//
// # License
//
// scitree is released under the MIT License.
package scitree
