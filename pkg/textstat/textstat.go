// Package textstat provides the tokenization and scoring primitives shared by
// the linking engine: term/document frequencies, Okapi BM25, cosine similarity
// over sparse term vectors, and Jaccard set similarity.
package textstat

import (
	"math"
	"regexp"
	"strings"
)

// Okapi BM25 parameters.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_']+`)

// Tokenize lower-cases text and splits it into word tokens. Token order is
// preserved for BM25 query iteration.
func Tokenize(text string) []string {
	tokens := tokenRe.FindAllString(text, -1)
	for i, token := range tokens {
		tokens[i] = strings.ToLower(token)
	}
	return tokens
}

// TermFrequencies counts occurrences per token.
func TermFrequencies(tokens []string) map[string]int {
	tf := make(map[string]int, len(tokens))
	for _, token := range tokens {
		tf[token]++
	}
	return tf
}

// DocumentFrequencies returns, for each term, the number of documents whose
// term-frequency map contains it at least once.
func DocumentFrequencies(docs []map[string]int) map[string]int {
	df := make(map[string]int)
	for _, doc := range docs {
		for term := range doc {
			df[term]++
		}
	}
	return df
}

// BM25 scores how well the query tokens match a document. Terms absent from
// the document contribute nothing; a zero average length is guarded.
func BM25(queryTokens []string, docTF map[string]int, docLength int, avgDocLength float64, df map[string]int, totalDocs int) float64 {
	if avgDocLength == 0 {
		avgDocLength = 1.0
	}
	score := 0.0
	for _, term := range queryTokens {
		freq, ok := docTF[term]
		if !ok {
			continue
		}
		termDF := float64(df[term])
		idf := math.Log(1 + (float64(totalDocs)-termDF+0.5)/(termDF+0.5))
		denom := float64(freq) + bm25K1*(1-bm25B+bm25B*float64(docLength)/avgDocLength)
		score += idf * float64(freq) * (bm25K1 + 1) / denom
	}
	return score
}

// CosineSimilarity computes the cosine of two sparse term-frequency vectors.
// It returns 0 when either vector is empty or has zero norm.
func CosineSimilarity(a, b map[string]int) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	dot := 0.0
	for term, count := range a {
		dot += float64(count) * float64(b[term])
	}
	normA := norm(a)
	normB := norm(b)
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (normA * normB)
}

func norm(tf map[string]int) float64 {
	sum := 0.0
	for _, count := range tf {
		sum += float64(count) * float64(count)
	}
	return math.Sqrt(sum)
}

// Jaccard returns intersection over union of the two term sets, 0 when both
// are empty.
func Jaccard(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, item := range a {
		setA[item] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, item := range b {
		setB[item] = struct{}{}
	}
	if len(setA) == 0 && len(setB) == 0 {
		return 0.0
	}
	intersection := 0
	for item := range setA {
		if _, ok := setB[item]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}
