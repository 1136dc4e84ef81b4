// Package log defines standard attribute keys for scitree operations.
//
// Keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples") so that log records can be filtered by prefix.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model.
	// Examples: "DecisionTree", "DecisionTreeClassifier"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component or package is logging.
	// Examples: "tree", "sklearn.tree", "cli"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// ClassesKey indicates the number of distinct labels seen during fitting.
	ClassesKey = "data.classes"
)

// Tree structure
const (
	// TreeDepthKey is the number of decision levels on the longest root-to-leaf path.
	TreeDepthKey = "tree.depth"

	// TreeNodesKey is the total number of nodes in the fitted tree.
	TreeNodesKey = "tree.nodes"

	// TreeLeavesKey is the number of leaf nodes in the fitted tree.
	TreeLeavesKey = "tree.leaves"

	// CriterionKey is the impurity criterion used for split search.
	CriterionKey = "tree.criterion"

	// MaxDepthKey is the configured depth cap (-1 when unbounded).
	MaxDepthKey = "tree.max_depth"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records accuracy for evaluation operations, in [0.0, 1.0].
	AccuracyKey = "metrics.accuracy"

	// PredsKey indicates the number of predictions made.
	PredsKey = "preds.count"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorDetailKey carries the structured fields of typed scitree errors.
	ErrorDetailKey = "error.detail"

	// StacktraceKey contains stack trace information for debugging.
	// Populated automatically when an error is logged.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"

	PhaseTraining  = "training"
	PhaseInference = "inference"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
)
