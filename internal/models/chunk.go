// Package models defines core data structures for chunks, chat requests, and responses.
package models

import "unicode/utf8"

// Chunk is a contiguous span of document text produced by the chunker.
// Length is the character count of Text, not its byte size. Chunks live
// only for the duration of one request and are never persisted.
type Chunk struct {
	Text   string `json:"text"`
	Index  int    `json:"index"`
	Length int    `json:"length"`
}

// NewChunk creates a chunk at the given zero-based position.
func NewChunk(text string, index int) Chunk {
	return Chunk{Text: text, Index: index, Length: utf8.RuneCountInString(text)}
}

// ScoredChunk is a chunk annotated with its relevance to a query,
// a value in [0, 1].
type ScoredChunk struct {
	Chunk
	Score float64 `json:"score"`
}
