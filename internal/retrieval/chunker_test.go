package retrieval

import (
	"reflect"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunker_SingleChunk(t *testing.T) {
	c := NewChunker(200)
	doc := "The cat sat on the mat. The dog ran in the park. Cats and dogs are pets."
	chunks := c.Chunk(doc)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != doc {
		t.Errorf("chunk text = %q, want %q", chunks[0].Text, doc)
	}
	if chunks[0].Index != 0 {
		t.Errorf("chunk index = %d, want 0", chunks[0].Index)
	}
	if chunks[0].Length != len(doc) {
		t.Errorf("chunk length = %d, want %d", chunks[0].Length, len(doc))
	}
}

func TestChunker_SizeBound(t *testing.T) {
	c := NewChunker(40)
	doc := "alpha beta gamma. delta epsilon! zeta eta theta? iota kappa."
	chunks := c.Chunk(doc)
	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}
	for i, ch := range chunks {
		if ch.Length > 40 {
			t.Errorf("chunk %d length %d exceeds max size 40: %q", i, ch.Length, ch.Text)
		}
		if ch.Index != i {
			t.Errorf("chunk %d has index %d", i, ch.Index)
		}
		if ch.Text != strings.TrimSpace(ch.Text) {
			t.Errorf("chunk %d has untrimmed text %q", i, ch.Text)
		}
	}
}

func TestChunker_OversizedSentence(t *testing.T) {
	long := strings.Repeat("word ", 50) // 250 chars, no terminator inside
	doc := "short one. " + long + ". short two."
	c := NewChunker(200)
	chunks := c.Chunk(doc)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if chunks[1].Length <= 200 {
		t.Errorf("oversized sentence should pass through whole, got length %d", chunks[1].Length)
	}
	if strings.Contains(chunks[0].Text, "word") || strings.Contains(chunks[2].Text, "word") {
		t.Error("oversized sentence leaked into neighboring chunks")
	}
}

func TestChunker_CharacterBudget(t *testing.T) {
	// Cyrillic is two bytes per letter in UTF-8; the size budget and the
	// Length field must count characters, not bytes.
	c := NewChunker(200)
	chunks := c.Chunk("Кошка сидела на ковре.")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Length != 22 {
		t.Errorf("chunk length = %d, want 22 characters", chunks[0].Length)
	}
	if got := utf8.RuneCountInString(chunks[0].Text); chunks[0].Length != got {
		t.Errorf("Length = %d, want rune count %d", chunks[0].Length, got)
	}

	// Two 40-character sentences fit a 100-character budget together.
	sentence := strings.Repeat("я", 40)
	chunks = NewChunker(100).Chunk(sentence + ". " + sentence + ".")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for two 40-char sentences under a 100-char budget, got %d", len(chunks))
	}
	if chunks[0].Length != 83 {
		t.Errorf("merged chunk length = %d, want 83", chunks[0].Length)
	}
}

func TestChunker_Empty(t *testing.T) {
	c := NewChunker(200)
	if got := c.Chunk(""); got != nil {
		t.Errorf("empty text should return nil, got %v", got)
	}
	if got := c.Chunk("  !!! ... ??  "); got != nil {
		t.Errorf("terminator-only text should return nil, got %v", got)
	}
}

func TestChunker_ContentPreserved(t *testing.T) {
	doc := "First sentence here. Second sentence follows! Third one asks? Fourth closes the set. Fifth is the last sentence of this document."
	c := NewChunker(50)
	chunks := c.Chunk(doc)

	words := regexp.MustCompile(`\w+`)
	var got []string
	for _, ch := range chunks {
		got = append(got, words.FindAllString(ch.Text, -1)...)
	}
	want := words.FindAllString(doc, -1)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("word sequence changed:\ngot  %v\nwant %v", got, want)
	}
}

func TestChunker_Deterministic(t *testing.T) {
	doc := "One two three. Four five six! Seven eight? Nine ten eleven twelve."
	c := NewChunker(30)
	first := c.Chunk(doc)
	second := c.Chunk(doc)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("chunking is not deterministic:\nfirst  %v\nsecond %v", first, second)
	}
}
