package model

import "gonum.org/v1/gonum/mat"

// Fitter is implemented by models that learn from a feature matrix and a
// target column.
type Fitter interface {
	Fit(X, y mat.Matrix) error
}

// Predictor is implemented by fitted models that produce one output row per
// input row.
type Predictor interface {
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Classifier is the matrix-facing contract of a classification model.
type Classifier interface {
	Fitter
	Predictor

	// PredictProba returns one column per class, in Classes() order.
	PredictProba(X mat.Matrix) (mat.Matrix, error)

	// Score returns the mean accuracy on the given data.
	Score(X, y mat.Matrix) float64

	// Classes returns the class labels seen during fitting.
	Classes() []int
}

// ParameterGetter is the interface for models that expose their hyperparameters
// under scikit-learn names.
type ParameterGetter interface {
	GetParams() map[string]interface{}
}

// ParameterSetter is the interface for models that allow parameter modification.
type ParameterSetter interface {
	SetParams(params map[string]interface{}) error
}
