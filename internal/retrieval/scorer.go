package retrieval

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// wordPattern matches word runs: letters, digits, and underscores.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

const (
	// partialWeight is the score added per substring match between a
	// long query word and a chunk word.
	partialWeight = 0.5
	// minPhraseLength is the query length above which an exact-phrase
	// occurrence in the chunk earns the phrase bonus.
	minPhraseLength = 10
)

// Scorer computes a lexical relevance score in [0, 1] between a query
// and a chunk of text.
type Scorer struct {
	minWordLength    int
	minPartialLength int
	phraseBonus      float64
}

// NewScorer creates a scorer. minWordLength is the shortest query word
// kept for exact matching, minPartialLength the shortest considered for
// substring matching, phraseBonus the raw-score bonus for a verbatim
// query occurrence.
func NewScorer(minWordLength, minPartialLength int, phraseBonus float64) *Scorer {
	if minWordLength <= 0 {
		minWordLength = 3
	}
	if minPartialLength <= 0 {
		minPartialLength = 5
	}
	if phraseBonus <= 0 {
		phraseBonus = 2.0
	}
	return &Scorer{
		minWordLength:    minWordLength,
		minPartialLength: minPartialLength,
		phraseBonus:      phraseBonus,
	}
}

// QueryWords returns the distinct lowercased words of query that meet
// the minimum word length, in first-seen order.
func (s *Scorer) QueryWords(query string) []string {
	seen := make(map[string]bool)
	var words []string
	for _, w := range wordPattern.FindAllString(strings.ToLower(query), -1) {
		if utf8.RuneCountInString(w) < s.minWordLength || seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}
	return words
}

// Score computes the relevance of chunk to query. queryWords must come
// from QueryWords on the same query. The raw score is the count of exact
// word matches, plus partialWeight per substring match for long query
// words, plus the phrase bonus when the whole query appears verbatim;
// it is normalized by the query word count and clamped to 1.0.
func (s *Scorer) Score(query, chunk string, queryWords []string) float64 {
	chunkLower := strings.ToLower(chunk)
	chunkSet := make(map[string]bool)
	var chunkWords []string
	for _, w := range wordPattern.FindAllString(chunkLower, -1) {
		if !chunkSet[w] {
			chunkSet[w] = true
			chunkWords = append(chunkWords, w)
		}
	}

	raw := 0.0
	for _, qw := range queryWords {
		if chunkSet[qw] {
			raw++
		}
	}

	for _, qw := range queryWords {
		if utf8.RuneCountInString(qw) < s.minPartialLength {
			continue
		}
		for _, cw := range chunkWords {
			if strings.Contains(cw, qw) || strings.Contains(qw, cw) {
				raw += partialWeight
			}
		}
	}

	phrase := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(phrase) > minPhraseLength && strings.Contains(chunkLower, phrase) {
		raw += s.phraseBonus
	}

	n := len(queryWords)
	if n < 1 {
		n = 1
	}
	return math.Min(raw/float64(n), 1.0)
}
