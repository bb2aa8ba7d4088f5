package tfidf

import "math"

// Vector is a sparse term -> weight mapping; absent terms are implicitly 0.
type Vector map[string]float64

// TermFrequency maps each token to its count divided by document length.
// A zero-token document yields an empty table rather than dividing by zero.
func TermFrequency(tokens []string) Vector {
	tf := make(Vector, len(tokens))
	for _, token := range tokens {
		tf[token]++
	}

	total := float64(len(tokens))
	if total == 0 {
		total = 1
	}
	for token, count := range tf {
		tf[token] = count / total
	}
	return tf
}

// DocumentFrequencies counts, per term, the number of corpus documents the
// term appears in at least once.
func DocumentFrequencies(docs [][]string) map[string]int {
	df := make(map[string]int)
	for _, tokens := range docs {
		seen := make(map[string]struct{}, len(tokens))
		for _, token := range tokens {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			df[token]++
		}
	}
	return df
}

// BuildVector weights a term-frequency table with smoothed inverse document
// frequency: ln((N+1)/(df+1)) + 1. The smoothing keeps weights positive for
// terms present in every document and defined for terms the corpus never saw.
func BuildVector(tf Vector, df map[string]int, docCount int) Vector {
	vector := make(Vector, len(tf))
	for token, tfValue := range tf {
		idf := math.Log(float64(docCount+1)/float64(df[token]+1)) + 1
		vector[token] = tfValue * idf
	}
	return vector
}

// Cosine returns the cosine similarity of two non-negative sparse vectors,
// in [0,1]. Norms are floored at 1 so an all-zero vector scores 0 instead of
// producing a NaN.
func Cosine(a, b Vector) float64 {
	return dot(a, b) / (magnitude(a) * magnitude(b))
}

func dot(a, b Vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}

	var total float64
	for token, value := range a {
		if other, ok := b[token]; ok {
			total += value * other
		}
	}
	return total
}

func magnitude(v Vector) float64 {
	var sumSquares float64
	for _, value := range v {
		sumSquares += value * value
	}

	if m := math.Sqrt(sumSquares); m > 0 {
		return m
	}
	return 1
}
