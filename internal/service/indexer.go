package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/ugalabz/oracle-server/internal/domain"
	"github.com/ugalabz/oracle-server/internal/port"
)

// Chunking geometry. Windows of ChunkSize words advance by
// ChunkSize-ChunkOverlap, so every word lands in at least one chunk and
// consecutive chunks share ChunkOverlap words of context. 150 words stays
// well under the embedding model's token limit.
const (
	ChunkSize    = 150
	ChunkOverlap = 20
)

const (
	maxSearchResults    = 10
	maxResultContentLen = 2000
)

// ChunkText splits text into overlapping word windows for filename.
// Deterministic and free of I/O; embeddings are attached later.
func ChunkText(text, filename string) []domain.DocumentChunk {
	words := strings.Fields(text)
	var chunks []domain.DocumentChunk
	chunkIndex := 0

	for i := 0; i < len(words); i += ChunkSize - ChunkOverlap {
		end := i + ChunkSize
		if end > len(words) {
			end = len(words)
		}
		content := strings.TrimSpace(strings.Join(words[i:end], " "))
		if content == "" {
			continue
		}
		chunks = append(chunks, domain.DocumentChunk{
			Filename:   filename,
			Content:    content,
			ChunkIndex: chunkIndex,
		})
		chunkIndex++
	}

	return chunks
}

// Indexer chunks, embeds, stores, and searches documents.
type Indexer struct {
	ai     port.AIProvider
	chunks port.ChunkStore
}

// NewIndexer creates a document indexer.
func NewIndexer(ai port.AIProvider, chunks port.ChunkStore) *Indexer {
	return &Indexer{ai: ai, chunks: chunks}
}

// IndexDocument replaces all chunks stored for filename with a freshly
// chunked and embedded set. A chunk whose embedding or insert fails is
// skipped and logged; chunks already inserted are kept. Idempotent per
// filename. Callers must not re-index the same filename concurrently.
func (s *Indexer) IndexDocument(ctx context.Context, filename, content string) error {
	slog.Info("indexing document", "filename", filename)

	if err := s.chunks.DeleteDocument(ctx, filename); err != nil {
		return fmt.Errorf("delete existing chunks: %w", err)
	}

	chunks := ChunkText(content, filename)
	slog.Info("created chunks", "filename", filename, "count", len(chunks))

	for i := range chunks {
		vector, err := s.ai.Embed(ctx, chunks[i].Content)
		if err != nil {
			slog.Error("embed chunk failed", "filename", filename, "chunk_index", chunks[i].ChunkIndex, "error", err)
			continue
		}
		raw, err := json.Marshal(vector)
		if err != nil {
			slog.Error("encode embedding failed", "filename", filename, "chunk_index", chunks[i].ChunkIndex, "error", err)
			continue
		}
		chunks[i].Embedding = string(raw)

		if err := s.chunks.InsertChunk(ctx, &chunks[i]); err != nil {
			slog.Error("store chunk failed", "filename", filename, "chunk_index", chunks[i].ChunkIndex, "error", err)
			continue
		}
	}

	return nil
}

// SearchDocuments ranks stored chunks by cosine similarity against the
// query. Failures degrade to an empty result set rather than an error:
// an invalid query, an unreachable embedding provider, and an empty store
// are all observationally "no results" at this layer.
func (s *Indexer) SearchDocuments(ctx context.Context, query string, limit int) []domain.SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		slog.Warn("invalid query provided to document search")
		return nil
	}

	queryVector, err := s.ai.Embed(ctx, query)
	if err != nil {
		slog.Error("embed query failed", "error", err)
		return nil
	}

	all, err := s.chunks.AllChunks(ctx)
	if err != nil {
		slog.Error("load chunks failed", "error", err)
		return nil
	}

	return rankChunks(queryVector, all, limit)
}

// DocumentCount returns the number of distinct indexed documents.
func (s *Indexer) DocumentCount(ctx context.Context) (int, error) {
	return s.chunks.CountDistinctDocuments(ctx)
}

// rankChunks validates each chunk's embedding, scores it against the
// query vector, and returns the top results sorted by similarity.
// Ordering of equal similarities is implementation-defined.
func rankChunks(queryVector []float64, chunks []domain.DocumentChunk, limit int) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(chunks))
	for _, c := range chunks {
		vector, ok := decodeEmbedding(c.Embedding)
		if !ok {
			slog.Warn("skipping chunk with invalid embedding", "filename", c.Filename, "chunk_index", c.ChunkIndex)
			continue
		}

		similarity := cosineSimilarity(queryVector, vector)
		if math.IsNaN(similarity) {
			slog.Warn("skipping chunk with invalid similarity", "filename", c.Filename, "chunk_index", c.ChunkIndex)
			continue
		}

		content := c.Content
		if len(content) > maxResultContentLen {
			content = content[:maxResultContentLen]
		}
		results = append(results, domain.SearchResult{
			Content:    content,
			Filename:   c.Filename,
			PageNumber: c.PageNumber,
			Similarity: similarity,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if limit < 1 {
		limit = 1
	}
	if limit > maxSearchResults {
		limit = maxSearchResults
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// decodeEmbedding parses a stored embedding. It reports false for a
// missing field, non-array JSON, an empty array, or non-finite elements.
func decodeEmbedding(raw string) ([]float64, bool) {
	if raw == "" {
		return nil, false
	}
	var vector []float64
	if err := json.Unmarshal([]byte(raw), &vector); err != nil {
		return nil, false
	}
	if len(vector) == 0 {
		return nil, false
	}
	for _, v := range vector {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
	}
	return vector, true
}

// cosineSimilarity returns dot(a,b)/(|a|*|b|), 0 when either vector has
// zero magnitude, and NaN on dimension mismatch so the caller drops the
// chunk.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return math.NaN()
	}
	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
