// Package analytics computes term frequency statistics over page text for
// ingest reports.
package analytics

import (
	"sort"
	"strings"

	"github.com/MutabPato/interlinker-tool/pkg/textstat"
)

type Analytics struct{}

// commonWords are skipped in frequency analysis. Beyond the usual English
// stopwords the list carries web navigation noise that dominates scraped
// pages without saying anything about their topic.
var commonWords = buildWordSet(`
a about above across after again against all almost alone along already also
although always am among an and another any anyone anything anywhere are
around as at back be became because become becomes been before behind being
below beside besides between beyond both but by can cannot could did do does
doing done down during each either else elsewhere enough even ever every
everyone everything everywhere few for from further had has have having he
hence her here hers herself him himself his how however i if in indeed into
is it its itself just keep last least less let like likely made make many may
maybe me meanwhile might mine more moreover most mostly much must my myself
neither never nevertheless next no nobody none nor not nothing now nowhere of
off often on once one only onto or other others otherwise our ours ourselves
out over own per perhaps please put rather same see seem seemed seems several
she should since so some somehow someone something sometimes somewhere still
such take than that the their theirs them themselves then there therefore
these they this those through throughout thus to together too toward towards
under until up upon us use very via was we well were what when where whether
which while who whose why will with within without would yet you your yours
yourself yourselves
click clicked clicking button link menu redirect redirected page pages
website site home homepage search searching loading loaded load loads
`)

func buildWordSet(words string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		set[w] = struct{}{}
	}
	return set
}

// IsStopword reports whether the word carries no topical signal.
func IsStopword(word string) bool {
	_, exists := commonWords[strings.ToLower(word)]
	return exists
}

// WordFrequency counts topical terms in text, skipping stopwords and
// single-character tokens.
func (a *Analytics) WordFrequency(text string) map[string]int {
	frequencies := make(map[string]int)
	for _, token := range textstat.Tokenize(text) {
		if len(token) < 2 {
			continue
		}
		if _, exists := commonWords[token]; exists {
			continue
		}
		frequencies[token]++
	}
	return frequencies
}

type wordCount struct {
	Word  string
	Count int
}

// TopNWords returns the n most frequent topical terms in text, most frequent
// first.
func (a *Analytics) TopNWords(text string, n int) []string {
	frequencies := a.WordFrequency(text)

	counts := make([]wordCount, 0, len(frequencies))
	for k, v := range frequencies {
		counts = append(counts, wordCount{k, v})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})

	limit := n
	if len(counts) < limit {
		limit = len(counts)
	}
	top := make([]string, limit)
	for i := 0; i < limit; i++ {
		top[i] = counts[i].Word
	}
	return top
}
