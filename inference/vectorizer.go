package inference

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Norm names the per-document normalization applied after weighting.
type Norm string

const (
	NormL2   Norm = "l2"
	NormL1   Norm = "l1"
	NormNone Norm = ""
)

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// TfidfVectorizer weights word n-gram counts by inverse document frequency.
type TfidfVectorizer struct {
	vocabulary  []string
	index       map[string]int
	idf         []float64
	ngramMin    int
	ngramMax    int
	lowercase   bool
	stopWords   map[string]struct{}
	norm        Norm
	sublinearTF bool
}

// TfidfParams configures a TfidfVectorizer.
type TfidfParams struct {
	Vocabulary  []string
	IDF         []float64
	NgramMin    int
	NgramMax    int
	Lowercase   bool
	StopWords   []string
	Norm        Norm
	SublinearTF bool
}

// NewTfidfVectorizer builds a vectorizer. The caller is responsible for
// supplying an IDF entry per vocabulary term.
func NewTfidfVectorizer(p TfidfParams) *TfidfVectorizer {
	v := &TfidfVectorizer{
		vocabulary:  append([]string(nil), p.Vocabulary...),
		index:       make(map[string]int, len(p.Vocabulary)),
		idf:         append([]float64(nil), p.IDF...),
		ngramMin:    p.NgramMin,
		ngramMax:    p.NgramMax,
		lowercase:   p.Lowercase,
		stopWords:   make(map[string]struct{}, len(p.StopWords)),
		norm:        p.Norm,
		sublinearTF: p.SublinearTF,
	}
	if v.ngramMin < 1 {
		v.ngramMin = 1
	}
	if v.ngramMax < v.ngramMin {
		v.ngramMax = v.ngramMin
	}
	// First occurrence wins if the vocabulary repeats a term.
	for i, term := range v.vocabulary {
		if _, dup := v.index[term]; !dup {
			v.index[term] = i
		}
	}
	for _, w := range p.StopWords {
		v.stopWords[w] = struct{}{}
	}
	return v
}

// Vocabulary returns the feature terms ordered by feature index.
func (v *TfidfVectorizer) Vocabulary() []string {
	return v.vocabulary
}

// Transform vectorizes text.
func (v *TfidfVectorizer) Transform(text string) SparseVector {
	counts := make(map[int]float64)
	for _, term := range v.analyze(text) {
		if idx, ok := v.index[term]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return SparseVector{}
	}

	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	for i, idx := range indices {
		tf := counts[idx]
		if v.sublinearTF {
			tf = 1 + math.Log(tf)
		}
		values[i] = tf * v.idf[idx]
	}
	normalize(values, v.norm)

	return SparseVector{Indices: indices, Values: values}
}

// analyze produces the n-gram terms of text.
func (v *TfidfVectorizer) analyze(text string) []string {
	if v.lowercase {
		text = cases.Lower(language.Und).String(text)
	}
	raw := tokenPattern.FindAllString(text, -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if _, stop := v.stopWords[tok]; !stop {
			tokens = append(tokens, tok)
		}
	}

	var terms []string
	for n := v.ngramMin; n <= v.ngramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			if n == 1 {
				terms = append(terms, tokens[i])
				continue
			}
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

func normalize(values []float64, norm Norm) {
	var total float64
	switch norm {
	case NormL2:
		for _, x := range values {
			total += x * x
		}
		total = math.Sqrt(total)
	case NormL1:
		for _, x := range values {
			total += math.Abs(x)
		}
	default:
		return
	}
	if total == 0 {
		return
	}
	for i := range values {
		values[i] /= total
	}
}
