package inference

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinarySingleRow(t *testing.T) {
	lr := NewLogisticRegression([]string{"no", "yes"}, [][]float64{{1, -1}}, []float64{0}, "")

	probs := lr.PredictProba(SparseVector{Indices: []int{0}, Values: []float64{1}})

	require.Len(t, probs, 2)
	want := 1 / (1 + math.Exp(-1))
	assert.InDelta(t, 1-want, probs[0], 1e-9)
	assert.InDelta(t, want, probs[1], 1e-9)

	assert.Equal(t, []float64{1, -1}, lr.Coefficients(1))
	assert.Equal(t, []float64{-1, 1}, lr.Coefficients(0))
}

func TestMultinomialUniform(t *testing.T) {
	lr := NewLogisticRegression(
		[]string{"a", "b", "c"},
		[][]float64{{0, 0}, {0, 0}, {0, 0}},
		[]float64{0, 0, 0},
		MultiClassMultinomial,
	)

	probs := lr.PredictProba(SparseVector{})

	for _, p := range probs {
		assert.InDelta(t, 1.0/3.0, p, 1e-9)
	}
}

func TestMultinomialLargeScores(t *testing.T) {
	lr := NewLogisticRegression([]string{"a", "b"}, [][]float64{{0}, {0}}, []float64{1000, 1000}, MultiClassMultinomial)

	probs := lr.PredictProba(SparseVector{})

	assert.InDelta(t, 0.5, probs[0], 1e-9)
	assert.InDelta(t, 0.5, probs[1], 1e-9)
}

func TestOVRRenormalizes(t *testing.T) {
	lr := NewLogisticRegression(
		[]string{"a", "b", "c"},
		[][]float64{{2}, {0}, {-2}},
		[]float64{0, 0, 0},
		MultiClassOVR,
	)

	probs := lr.PredictProba(SparseVector{Indices: []int{0}, Values: []float64{1}})

	var sum float64
	for _, p := range probs {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Greater(t, probs[0], probs[1])
	assert.Greater(t, probs[1], probs[2])
	assert.Equal(t, []float64{0}, lr.Coefficients(1))
}

func TestOVRUnderflowFallsBackToUniform(t *testing.T) {
	lr := NewLogisticRegression(
		[]string{"a", "b", "c"},
		[][]float64{{0}, {0}, {0}},
		[]float64{-800, -800, -800},
		MultiClassOVR,
	)

	probs := lr.PredictProba(SparseVector{})

	require.Len(t, probs, 3)
	for _, p := range probs {
		assert.False(t, math.IsNaN(p))
		assert.InDelta(t, 1.0/3.0, p, 1e-9)
	}

	model := &AttributeModel{
		Name:       "underflow",
		Vectorizer: NewTfidfVectorizer(TfidfParams{Vocabulary: []string{"boston"}, IDF: []float64{1}, NgramMin: 1, NgramMax: 1}),
		Classifier: lr,
	}
	inf := model.Predict("hello", 3)
	require.NotNil(t, inf.PredictedValue)
	assert.Equal(t, "a", *inf.PredictedValue)
	assert.InDelta(t, 1.0/3.0, inf.Confidence, 1e-9)
}

func TestSigmoidSymmetry(t *testing.T) {
	for _, z := range []float64{-800, -3, 0, 3, 800} {
		assert.InDelta(t, 1.0, sigmoid(z)+sigmoid(-z), 1e-12, "z=%v", z)
	}
}
