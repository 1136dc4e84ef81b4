// Package tree implements a greedy, top-down decision tree classifier for
// continuous features.
//
// Build grows a binary tree by exhaustively scanning every (feature,
// threshold) pair of the current subset and keeping the split with the
// highest information gain. Thresholds are the distinct values observed in
// the subset; rows with row[feature] <= threshold go left. Growth stops on a
// unanimous subset, on the depth cap, or when no split has positive gain.
//
// The fitted Tree stores its nodes in a flat arena addressed by integer
// handles, root first. It is immutable and safe for concurrent prediction.
//
//	clf := tree.NewClassifier[int](tree.MaxDepth(3))
//	if err := clf.Fit(X, y); err != nil {
//	    return err
//	}
//	labels, err := clf.Predict(X)
package tree
