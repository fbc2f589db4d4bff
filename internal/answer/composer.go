// Package answer builds LLM-based answers from retrieved chunks, with a
// deterministic fallback when the completion provider is unavailable.
package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/kaiwahq/kaiwa/internal/models"
	"go.uber.org/zap"
)

// CompletionClient produces a completion for a system and user prompt.
// An error covers every provider failure: unreachable endpoint, non-2xx
// status, timeout, or an empty completion.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

const systemPrompt = `You are a document analysis assistant. Answer the user's question based on the provided context from the document.

Rules:
1. Use only information from the provided context.
2. If the context does not contain an answer, say so honestly.
3. Be precise and specific.
4. Refer to the relevant passages of the text when answering.`

const (
	fallbackChunkLimit = 3
	fallbackTruncateAt = 300
)

// Composer turns ranked chunks and a question into an answer.
type Composer struct {
	client       CompletionClient
	contextLimit int
	logger       *zap.Logger
}

// NewComposer creates a composer. client may be nil when no completion
// provider is configured; every answer is then built by the fallback.
func NewComposer(client CompletionClient, contextLimit int, logger *zap.Logger) *Composer {
	if contextLimit <= 0 {
		contextLimit = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{client: client, contextLimit: contextLimit, logger: logger}
}

// Compose returns an answer for query given ranked chunks. The second
// return value reports whether the deterministic fallback produced the
// answer. Provider failures never propagate: they are logged and the
// fallback answer is returned instead.
func (c *Composer) Compose(ctx context.Context, query string, chunks []models.ScoredChunk) (string, bool) {
	if c.client == nil {
		c.logger.Debug("no completion client configured, using fallback answer")
		return c.Fallback(query, chunks), true
	}
	text, err := c.client.Complete(ctx, systemPrompt, c.userPrompt(query, chunks))
	if err != nil {
		c.logger.Warn("completion failed, using fallback answer", zap.Error(err))
		return c.Fallback(query, chunks), true
	}
	return text, false
}

// userPrompt assembles the context block from the top chunks and the
// question into a single completion prompt.
func (c *Composer) userPrompt(query string, chunks []models.ScoredChunk) string {
	top := chunks
	if len(top) > c.contextLimit {
		top = top[:c.contextLimit]
	}
	var b strings.Builder
	b.WriteString("Context from the document:\n")
	for i, ch := range top {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[relevance %.2f] %s", ch.Score, ch.Text)
	}
	fmt.Fprintf(&b, "\n\nUser question: %s\n\nAnswer the question based on the provided context.", query)
	return b.String()
}

// Fallback synthesizes an answer from the top chunks without calling the
// model: up to three chunk texts, each truncated to 300 characters and
// prefixed by rank and relevance percentage, followed by a total count.
func (c *Composer) Fallback(query string, chunks []models.ScoredChunk) string {
	if len(chunks) == 0 {
		return fmt.Sprintf("No information related to %q was found in the document.", query)
	}
	top := chunks
	if len(top) > fallbackChunkLimit {
		top = top[:fallbackChunkLimit]
	}
	var b strings.Builder
	for i, ch := range top {
		if i > 0 {
			b.WriteString("\n\n")
		}
		text := ch.Text
		if runes := []rune(text); len(runes) > fallbackTruncateAt {
			text = string(runes[:fallbackTruncateAt]) + "..."
		}
		fmt.Fprintf(&b, "%d. (%.0f%% relevance) %s", i+1, ch.Score*100, text)
	}
	fmt.Fprintf(&b, "\n\nFound %d relevant passage(s) in the document.", len(chunks))
	return b.String()
}
