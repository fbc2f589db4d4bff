// Package retrieval implements the lexical retrieval core: sentence-aligned
// document chunking, bounded relevance scoring, and ranked chunk retrieval.
package retrieval

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kaiwahq/kaiwa/internal/models"
)

// sentenceEnd matches runs of sentence terminators; consecutive
// terminators collapse into a single boundary.
var sentenceEnd = regexp.MustCompile(`[.!?]+`)

// Chunker splits raw text into bounded-size chunks aligned to sentence
// boundaries.
type Chunker struct {
	maxSize int
}

// NewChunker creates a chunker with the given size limit in characters.
func NewChunker(maxSize int) *Chunker {
	if maxSize <= 0 {
		maxSize = 200
	}
	return &Chunker{maxSize: maxSize}
}

// SplitSentences splits text on sentence terminators, trims whitespace,
// and drops empty sentences.
func SplitSentences(text string) []string {
	parts := sentenceEnd.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// Chunk splits text into chunks of at most maxSize characters. Sentences
// accumulate greedily into a buffer, each followed by a ". " separator;
// when the next sentence would push the buffer past the limit, the buffer
// is sealed and a new one starts. A single sentence longer than maxSize
// becomes its own oversized chunk rather than being cut mid-sentence.
// The budget counts characters, not bytes, so multi-byte text fills a
// chunk at the same rate as ASCII.
func (c *Chunker) Chunk(text string) []models.Chunk {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}
	var chunks []models.Chunk
	var buf strings.Builder
	size := 0
	seal := func() {
		if buf.Len() == 0 {
			return
		}
		chunks = append(chunks, models.NewChunk(strings.TrimSpace(buf.String()), len(chunks)))
		buf.Reset()
		size = 0
	}
	for _, s := range sentences {
		n := utf8.RuneCountInString(s)
		if size > 0 && size+n+2 > c.maxSize {
			seal()
		}
		buf.WriteString(s)
		buf.WriteString(". ")
		size += n + 2
	}
	seal()
	return chunks
}
