package domain

import "time"

// DocumentChunk is one overlapping word-window of a source document,
// keyed by filename. The embedding is stored as a JSON array of floats so
// the same row shape works on any Postgres without the pgvector extension.
type DocumentChunk struct {
	ID         int       `json:"id"          db:"id"`
	Filename   string    `json:"filename"    db:"filename"`
	Content    string    `json:"content"     db:"content"`
	PageNumber *int      `json:"page_number,omitempty" db:"page_number"`
	ChunkIndex int       `json:"chunk_index" db:"chunk_index"`
	Embedding  string    `json:"-"           db:"embedding"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
}

// SearchResult is one ranked hit from a document search.
type SearchResult struct {
	Content    string  `json:"content"`
	Filename   string  `json:"filename"`
	PageNumber *int    `json:"page_number,omitempty"`
	Similarity float64 `json:"similarity"`
}
