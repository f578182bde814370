package mapreduce

import "sort"

// Keyword is one corpus term with its aggregate count.
type Keyword struct {
	Term  string `yaml:"term" json:"term"`
	Count int    `yaml:"count" json:"count"`
}

// TopKeywords returns the n most frequent terms, ordered by count descending
// with ties broken alphabetically.
func TopKeywords(counts map[string]int, n int) []Keyword {
	keywords := make([]Keyword, 0, len(counts))
	for term, count := range counts {
		keywords = append(keywords, Keyword{Term: term, Count: count})
	}
	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return keywords[i].Term < keywords[j].Term
	})
	if n < len(keywords) {
		keywords = keywords[:n]
	}
	return keywords
}
