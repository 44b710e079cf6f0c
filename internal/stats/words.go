package stats

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// minWordLen drops "a", "to", "of" and the like before the stop-word check.
const minWordLen = 3

var stopWords = toSet(
	"the", "and", "for", "with", "from", "into", "onto", "about", "over",
	"under", "this", "that", "these", "those", "what", "which", "who", "whom",
	"how", "why", "when", "where", "are", "was", "were", "been", "being",
	"have", "has", "had", "does", "did", "doing", "can", "could", "should",
	"would", "will", "shall", "may", "might", "must", "not", "but", "you",
	"your", "yours", "our", "ours", "their", "theirs", "his", "her", "hers",
	"its", "they", "them", "she", "him", "all", "any", "some", "more", "most",
	"other", "such", "than", "then", "too", "very", "just", "also", "only",
	"own", "same", "each", "few", "both", "between", "after", "before",
	"during", "through", "against", "out", "off", "again", "further", "once",
	"here", "there", "via", "using", "use", "get", "make", "new", "help",
	"request", "need", "want", "vs", "per", "etc",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// WordFrequencies ranks the words of titles by count. Ties keep the order
// in which words were first seen.
func WordFrequencies(titles []string, extraStopWords []string) []WordCount {
	extra := toSet()
	for _, w := range extraStopWords {
		extra[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}

	counts := newTally()
	for _, title := range titles {
		for _, tok := range tokenize(title) {
			if utf8.RuneCountInString(tok) < minWordLen {
				continue
			}
			if _, stop := stopWords[tok]; stop {
				continue
			}
			if _, stop := extra[tok]; stop {
				continue
			}
			counts.add(tok)
		}
	}

	ranked := counts.list()
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })

	out := make([]WordCount, len(ranked))
	for i, nc := range ranked {
		out[i] = WordCount{Word: nc.Name, Count: nc.Count}
	}
	return out
}

// tokenize lowercases s and splits it on anything that is not a letter,
// digit or underscore.
func tokenize(s string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return ' '
	}, strings.ToLower(s))
	return strings.Fields(cleaned)
}
