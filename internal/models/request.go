package models

import (
	"fmt"
	"strings"
)

// ChatRequest is the body of a chat request: a question and the raw
// text of the document to answer it from.
type ChatRequest struct {
	Query    string `json:"query"`
	Document string `json:"document"`
}

// Validate trims both fields and ensures they are non-empty.
func (r *ChatRequest) Validate() error {
	r.Query = strings.TrimSpace(r.Query)
	r.Document = strings.TrimSpace(r.Document)
	if r.Query == "" {
		return fmt.Errorf("query is required")
	}
	if r.Document == "" {
		return fmt.Errorf("document content is required")
	}
	return nil
}

// ChatResponse is the response for a chat request. Chunks carries the
// top-ranked passages actually used for the answer context; TotalChunks
// is the count of all relevant chunks found in the document.
type ChatResponse struct {
	Answer      string        `json:"answer"`
	Chunks      []ScoredChunk `json:"chunks"`
	Query       string        `json:"query"`
	TotalChunks int           `json:"total_chunks"`
	Fallback    bool          `json:"fallback,omitempty"`
	RequestID   string        `json:"request_id"`
}

// ExtractRequest is the body of a document extraction request.
// FileData is the base64-encoded file content.
type ExtractRequest struct {
	FileData string `json:"file_data"`
	FileName string `json:"file_name"`
}

// Validate ensures both the file content and name are present.
func (r *ExtractRequest) Validate() error {
	r.FileName = strings.TrimSpace(r.FileName)
	if r.FileData == "" || r.FileName == "" {
		return fmt.Errorf("file data and name are required")
	}
	return nil
}

// ExtractResponse carries the plain text extracted from an uploaded file.
type ExtractResponse struct {
	Text       string `json:"text"`
	FileName   string `json:"file_name"`
	FileSize   int    `json:"file_size"`
	TextLength int    `json:"text_length"`
	RequestID  string `json:"request_id"`
}
