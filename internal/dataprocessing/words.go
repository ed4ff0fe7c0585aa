package dataprocessing

import (
	"sort"
	"strings"
	"unicode/utf8"

	"metadash/pkg/contracts/domain"
)

// DefaultMaxWords caps the word cloud vocabulary
const DefaultMaxWords = 150

// minWordRunes is the shortest token kept in the word cloud
const minWordRunes = 3

// Stopwords are removed from titles before counting
var Stopwords = map[string]struct{}{
	"the": {}, "and": {}, "of": {}, "in": {}, "to": {}, "a": {}, "for": {},
	"with": {}, "on": {}, "by": {}, "as": {}, "an": {}, "from": {}, "that": {},
	"is": {}, "are": {}, "this": {}, "these": {}, "those": {},
}

// TitleCorpus joins every title with single spaces
func TitleCorpus(papers []domain.Paper) string {
	var b strings.Builder
	for i, p := range papers {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.Title)
	}
	return b.String()
}

// TitleTokens splits the corpus on whitespace and drops stopwords and short
// tokens. Tokens keep their original case.
func TitleTokens(corpus string) []string {
	fields := strings.Fields(corpus)
	out := fields[:0]
	for _, w := range fields {
		if _, stop := Stopwords[strings.ToLower(w)]; stop {
			continue
		}
		if utf8.RuneCountInString(w) < minWordRunes {
			continue
		}
		out = append(out, w)
	}
	return out
}

// WordFrequencies counts title tokens case-insensitively and returns at most
// maxWords entries, most frequent first, ties in alphabetical order.
func WordFrequencies(papers []domain.Paper, maxWords int) []domain.WordFrequency {
	counts := make(map[string]int)
	for _, w := range TitleTokens(TitleCorpus(papers)) {
		counts[strings.ToLower(w)]++
	}

	out := make([]domain.WordFrequency, 0, len(counts))
	for w, c := range counts {
		out = append(out, domain.WordFrequency{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})

	if maxWords > 0 && len(out) > maxWords {
		out = out[:maxWords]
	}
	return out
}
