package inference

import (
	"sort"
)

type rankedFeature struct {
	index        int
	contribution float64
	weight       float64
}

// rankFeatures selects the feature indices that explain a prediction.
//
// Positive contributions (weight × coefficient) come first, in descending
// order. Without any, features present in the input are ranked by weight.
// If the input shares nothing with the vocabulary, every contribution is zero
// and the fallback takes the topK highest vocabulary indices, descending.
func rankFeatures(x SparseVector, coef []float64, nFeatures, topK int) []rankedFeature {
	present := make([]rankedFeature, 0, x.Len())
	var positive []rankedFeature
	for i, idx := range x.Indices {
		f := rankedFeature{index: idx, weight: x.Values[i], contribution: x.Values[i] * coef[idx]}
		present = append(present, f)
		if f.contribution > 0 {
			positive = append(positive, f)
		}
	}

	if len(positive) > 0 {
		sort.SliceStable(positive, func(i, j int) bool {
			if positive[i].contribution == positive[j].contribution {
				return positive[i].index < positive[j].index
			}
			return positive[i].contribution > positive[j].contribution
		})
		return positive
	}

	byWeight := present[:0]
	for _, f := range present {
		if f.weight > 0 {
			byWeight = append(byWeight, f)
		}
	}
	if len(byWeight) > 0 {
		sort.SliceStable(byWeight, func(i, j int) bool {
			if byWeight[i].weight == byWeight[j].weight {
				return byWeight[i].index < byWeight[j].index
			}
			return byWeight[i].weight > byWeight[j].weight
		})
		return byWeight
	}

	if topK > nFeatures {
		topK = nFeatures
	}
	if topK < 0 {
		topK = 0
	}
	fallback := make([]rankedFeature, topK)
	for i := range fallback {
		fallback[i] = rankedFeature{index: nFeatures - 1 - i}
	}
	return fallback
}

// explain walks the ranking and collects up to topK distinct terms.
func explain(ranking []rankedFeature, vocabulary []string, topK int) ([]string, map[string]float64) {
	if topK <= 0 {
		return []string{}, map[string]float64{}
	}
	features := make([]string, 0, topK)
	contributions := make(map[string]float64, topK)
	for _, f := range ranking {
		term := vocabulary[f.index]
		if _, seen := contributions[term]; seen {
			continue
		}
		contributions[term] = f.contribution
		features = append(features, term)
		if len(features) >= topK {
			break
		}
	}
	return features, contributions
}
