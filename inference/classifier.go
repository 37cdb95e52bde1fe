package inference

import (
	"math"
)

// MultiClass selects how multi-class probabilities are derived from decision scores.
type MultiClass string

const (
	// MultiClassMultinomial applies a softmax over all rows.
	MultiClassMultinomial MultiClass = "multinomial"
	// MultiClassOVR applies a sigmoid per row and renormalizes.
	MultiClassOVR MultiClass = "ovr"
)

// LogisticRegression is a linear classifier with one coefficient row per class,
// or a single shared row for binary problems.
type LogisticRegression struct {
	classes    []string
	coef       [][]float64
	intercept  []float64
	multiClass MultiClass
}

// NewLogisticRegression builds a classifier from trained parameters.
//
// With two classes and a single coefficient row, the row scores the second
// class and Coefficients(0) returns its negation.
func NewLogisticRegression(classes []string, coef [][]float64, intercept []float64, multiClass MultiClass) *LogisticRegression {
	rows := make([][]float64, len(coef))
	for i, row := range coef {
		rows[i] = append([]float64(nil), row...)
	}
	if multiClass == "" {
		multiClass = MultiClassMultinomial
	}
	return &LogisticRegression{
		classes:    append([]string(nil), classes...),
		coef:       rows,
		intercept:  append([]float64(nil), intercept...),
		multiClass: multiClass,
	}
}

// Classes returns the class labels in probability order.
func (lr *LogisticRegression) Classes() []string {
	return lr.classes
}

// binary reports whether the model uses a single shared row.
func (lr *LogisticRegression) binary() bool {
	return len(lr.coef) == 1 && len(lr.classes) == 2
}

// decision returns the raw score per coefficient row.
func (lr *LogisticRegression) decision(x SparseVector) []float64 {
	scores := make([]float64, len(lr.coef))
	for r, row := range lr.coef {
		scores[r] = x.Dot(row) + lr.intercept[r]
	}
	return scores
}

// PredictProba returns one probability per class.
func (lr *LogisticRegression) PredictProba(x SparseVector) []float64 {
	scores := lr.decision(x)
	if lr.binary() {
		p := sigmoid(scores[0])
		return []float64{1 - p, p}
	}
	if lr.multiClass == MultiClassOVR {
		probs := make([]float64, len(scores))
		var sum float64
		for i, z := range scores {
			probs[i] = sigmoid(z)
			sum += probs[i]
		}
		if sum == 0 || math.IsInf(sum, 0) || math.IsNaN(sum) {
			return uniform(len(probs))
		}
		for i := range probs {
			probs[i] /= sum
		}
		return probs
	}
	return softmax(scores)
}

// Coefficients returns the coefficient row that pushes towards class.
func (lr *LogisticRegression) Coefficients(class int) []float64 {
	if lr.binary() {
		if class == 1 {
			return lr.coef[0]
		}
		neg := make([]float64, len(lr.coef[0]))
		for i, c := range lr.coef[0] {
			neg[i] = -c
		}
		return neg
	}
	return lr.coef[class]
}

func uniform(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1 / float64(n)
	}
	return out
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

func softmax(scores []float64) []float64 {
	maxScore := math.Inf(-1)
	for _, z := range scores {
		if z > maxScore {
			maxScore = z
		}
	}
	out := make([]float64, len(scores))
	var sum float64
	for i, z := range scores {
		out[i] = math.Exp(z - maxScore)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
