// Package metrics provides binary-classification evaluation: confusion
// matrix summaries, ROC curve construction and AUC.
package metrics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"
)

var (
	// ErrLengthMismatch indicates labels and scores of different lengths.
	ErrLengthMismatch = errors.New("metrics: labels and scores must have the same length")

	// ErrSingleClass indicates input containing only positives or only
	// negatives; ROC is undefined without both.
	ErrSingleClass = errors.New("metrics: need at least one positive and one negative label")

	// ErrEmptyInput indicates no observations.
	ErrEmptyInput = errors.New("metrics: empty input")
)

// ConfusionMatrix counts binary-classification outcomes.
type ConfusionMatrix struct {
	TruePositives  int
	FalsePositives int
	TrueNegatives  int
	FalseNegatives int
}

// NewConfusionMatrix tallies predictions against actual labels.
func NewConfusionMatrix(actual, predicted []bool) (ConfusionMatrix, error) {
	var cm ConfusionMatrix
	if len(actual) == 0 {
		return cm, ErrEmptyInput
	}
	if len(actual) != len(predicted) {
		return cm, fmt.Errorf("%w: %d actual, %d predicted",
			ErrLengthMismatch, len(actual), len(predicted))
	}
	for i, a := range actual {
		switch {
		case a && predicted[i]:
			cm.TruePositives++
		case a && !predicted[i]:
			cm.FalseNegatives++
		case !a && predicted[i]:
			cm.FalsePositives++
		default:
			cm.TrueNegatives++
		}
	}
	return cm, nil
}

// Accuracy is the fraction of correct predictions.
func (cm ConfusionMatrix) Accuracy() float64 {
	total := cm.TruePositives + cm.FalsePositives + cm.TrueNegatives + cm.FalseNegatives
	if total == 0 {
		return 0
	}
	return float64(cm.TruePositives+cm.TrueNegatives) / float64(total)
}

// Precision is TP / (TP + FP). Returns 0 when nothing was predicted positive.
func (cm ConfusionMatrix) Precision() float64 {
	denom := cm.TruePositives + cm.FalsePositives
	if denom == 0 {
		return 0
	}
	return float64(cm.TruePositives) / float64(denom)
}

// Recall is TP / (TP + FN). Returns 0 when there are no actual positives.
func (cm ConfusionMatrix) Recall() float64 {
	denom := cm.TruePositives + cm.FalseNegatives
	if denom == 0 {
		return 0
	}
	return float64(cm.TruePositives) / float64(denom)
}

// F1 is the harmonic mean of precision and recall.
func (cm ConfusionMatrix) F1() float64 {
	p, r := cm.Precision(), cm.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// ROCCurve holds one operating point per distinct score threshold, plus the
// (0,0) origin. FPR and TPR are parallel, non-decreasing, and end at (1,1).
// Thresholds are descending; Thresholds[0] is +Inf for the origin point.
type ROCCurve struct {
	FPR        []float64
	TPR        []float64
	Thresholds []float64
}

// ROC builds a receiver-operating-characteristic curve by sweeping a
// decision threshold down through the scores. Candidates scoring at or above
// the threshold are predicted positive. Tied scores collapse into a single
// operating point.
func ROC(labels []bool, scores []float64) (ROCCurve, error) {
	var curve ROCCurve
	if len(labels) == 0 {
		return curve, ErrEmptyInput
	}
	if len(labels) != len(scores) {
		return curve, fmt.Errorf("%w: %d labels, %d scores",
			ErrLengthMismatch, len(labels), len(scores))
	}

	positives, negatives := 0, 0
	for _, l := range labels {
		if l {
			positives++
		} else {
			negatives++
		}
	}
	if positives == 0 || negatives == 0 {
		return curve, ErrSingleClass
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	curve.FPR = append(curve.FPR, 0)
	curve.TPR = append(curve.TPR, 0)
	curve.Thresholds = append(curve.Thresholds, math.Inf(1))

	tp, fp := 0, 0
	for k := 0; k < len(order); {
		threshold := scores[order[k]]
		// absorb the whole tie group before emitting a point
		for k < len(order) && scores[order[k]] == threshold {
			if labels[order[k]] {
				tp++
			} else {
				fp++
			}
			k++
		}
		curve.FPR = append(curve.FPR, float64(fp)/float64(negatives))
		curve.TPR = append(curve.TPR, float64(tp)/float64(positives))
		curve.Thresholds = append(curve.Thresholds, threshold)
	}
	return curve, nil
}

// AUC is the area under the ROC curve by trapezoidal integration.
func (c ROCCurve) AUC() float64 {
	if len(c.FPR) < 2 {
		return 0
	}
	return integrate.Trapezoidal(c.FPR, c.TPR)
}
