package retrieval

import (
	"sort"

	"github.com/kaiwahq/kaiwa/internal/config"
	"github.com/kaiwahq/kaiwa/internal/models"
)

// Retriever orchestrates chunking and scoring over a whole document.
type Retriever struct {
	chunker     *Chunker
	scorer      *Scorer
	searchLimit int
}

// NewRetriever creates a retriever from retrieval configuration.
func NewRetriever(cfg *config.RetrievalConfig) *Retriever {
	searchLimit := cfg.SearchLimit
	if searchLimit <= 0 {
		searchLimit = 10
	}
	return &Retriever{
		chunker:     NewChunker(cfg.ChunkSize),
		scorer:      NewScorer(cfg.MinWordLength, cfg.MinPartialLength, cfg.PhraseBonus),
		searchLimit: searchLimit,
	}
}

// Retrieve scores every chunk of document against query and returns up
// to the search limit of chunks with score > 0, ordered by descending
// score. Equal scores keep the original chunk order.
func (r *Retriever) Retrieve(document, query string) []models.ScoredChunk {
	chunks := r.chunker.Chunk(document)
	if len(chunks) == 0 {
		return nil
	}
	queryWords := r.scorer.QueryWords(query)

	scored := make([]models.ScoredChunk, 0, len(chunks))
	for _, ch := range chunks {
		score := r.scorer.Score(query, ch.Text, queryWords)
		if score > 0 {
			scored = append(scored, models.ScoredChunk{Chunk: ch, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > r.searchLimit {
		scored = scored[:r.searchLimit]
	}
	return scored
}
