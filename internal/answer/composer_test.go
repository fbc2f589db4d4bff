package answer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/kaiwahq/kaiwa/internal/models"
)

type stubClient struct {
	text      string
	err       error
	gotSystem string
	gotUser   string
}

func (s *stubClient) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	s.gotSystem = systemPrompt
	s.gotUser = userPrompt
	return s.text, s.err
}

func scoredChunks(n int) []models.ScoredChunk {
	chunks := make([]models.ScoredChunk, 0, n)
	for i := 0; i < n; i++ {
		text := fmt.Sprintf("passage number %d about the topic", i+1)
		chunks = append(chunks, models.ScoredChunk{
			Chunk: models.NewChunk(text, i),
			Score: float64(90-10*i) / 100,
		})
	}
	return chunks
}

func TestComposer_NoClientUsesFallback(t *testing.T) {
	c := NewComposer(nil, 5, nil)
	answer, fallback := c.Compose(context.Background(), "what happened", scoredChunks(2))
	if !fallback {
		t.Error("expected fallback answer with nil client")
	}
	if !strings.Contains(answer, "passage number 1") {
		t.Errorf("fallback answer missing chunk text: %q", answer)
	}
}

func TestComposer_ClientSuccess(t *testing.T) {
	client := &stubClient{text: "The model answer."}
	c := NewComposer(client, 2, nil)
	answer, fallback := c.Compose(context.Background(), "what happened", scoredChunks(4))
	if fallback {
		t.Error("expected model answer, got fallback")
	}
	if answer != "The model answer." {
		t.Errorf("answer = %q, want model response unmodified", answer)
	}
	if client.gotSystem == "" {
		t.Error("system prompt not sent")
	}
	if !strings.Contains(client.gotUser, "what happened") {
		t.Errorf("user prompt missing the question: %q", client.gotUser)
	}
	// Context limit is 2: the first two chunks go in, the third stays out.
	if !strings.Contains(client.gotUser, "passage number 2") {
		t.Errorf("user prompt missing in-limit chunk: %q", client.gotUser)
	}
	if strings.Contains(client.gotUser, "passage number 3") {
		t.Errorf("user prompt includes chunk beyond the context limit: %q", client.gotUser)
	}
	if !strings.Contains(client.gotUser, "[relevance 0.90]") {
		t.Errorf("user prompt missing relevance annotation: %q", client.gotUser)
	}
}

func TestComposer_ClientErrorUsesFallback(t *testing.T) {
	client := &stubClient{err: errors.New("connection refused")}
	c := NewComposer(client, 5, nil)
	answer, fallback := c.Compose(context.Background(), "what happened", scoredChunks(1))
	if !fallback {
		t.Error("expected fallback after client error")
	}
	if !strings.Contains(answer, "passage number 1") {
		t.Errorf("fallback answer missing chunk text: %q", answer)
	}
}

func TestComposer_FallbackNoChunks(t *testing.T) {
	c := NewComposer(nil, 5, nil)
	answer := c.Fallback("missing topic", nil)
	if !strings.Contains(answer, "No information") {
		t.Errorf("answer = %q, want the no-information message", answer)
	}
	if !strings.Contains(answer, `"missing topic"`) {
		t.Errorf("answer should echo the query: %q", answer)
	}
}

func TestComposer_FallbackFormat(t *testing.T) {
	c := NewComposer(nil, 5, nil)
	answer := c.Fallback("topic", scoredChunks(4))

	if !strings.Contains(answer, "1. (90% relevance)") {
		t.Errorf("missing ranked first chunk: %q", answer)
	}
	if !strings.Contains(answer, "3. (70% relevance)") {
		t.Errorf("missing ranked third chunk: %q", answer)
	}
	if strings.Contains(answer, "4. (") {
		t.Errorf("fallback should use at most 3 chunks: %q", answer)
	}
	if !strings.Contains(answer, "Found 4 relevant passage(s)") {
		t.Errorf("missing total count line: %q", answer)
	}
}

func TestComposer_FallbackTruncation(t *testing.T) {
	long := strings.Repeat("x", 350)
	chunks := []models.ScoredChunk{{Chunk: models.NewChunk(long, 0), Score: 0.5}}
	c := NewComposer(nil, 5, nil)
	answer := c.Fallback("topic", chunks)

	if !strings.Contains(answer, strings.Repeat("x", 300)+"...") {
		t.Errorf("long chunk should be truncated to 300 chars with ellipsis")
	}
	if strings.Contains(answer, strings.Repeat("x", 301)) {
		t.Errorf("chunk text exceeds the truncation limit")
	}
}
