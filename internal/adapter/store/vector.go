package store

import (
	"context"
	"fmt"

	"github.com/ugalabz/oracle-server/internal/domain"
)

// VectorStore persists document chunks and their embeddings in Postgres.
// Retrieval is a full scan; similarity is computed in the application so
// malformed rows can be excluded per chunk instead of failing the query.
type VectorStore struct {
	store *PostgresStore
}

// NewVectorStore creates a chunk store backed by the given Postgres store.
func NewVectorStore(store *PostgresStore) *VectorStore {
	return &VectorStore{store: store}
}

// DeleteDocument removes every chunk stored for the given filename.
func (v *VectorStore) DeleteDocument(ctx context.Context, filename string) error {
	_, err := v.store.db.ExecContext(ctx, `DELETE FROM document_chunks WHERE filename = $1`, filename)
	if err != nil {
		return fmt.Errorf("delete document chunks: %w", err)
	}
	return nil
}

// InsertChunk stores a single chunk with its serialized embedding.
func (v *VectorStore) InsertChunk(ctx context.Context, c *domain.DocumentChunk) error {
	query := `INSERT INTO document_chunks (filename, content, page_number, chunk_index, embedding)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := v.store.db.ExecContext(ctx, query,
		c.Filename, c.Content, c.PageNumber, c.ChunkIndex, c.Embedding,
	)
	if err != nil {
		return fmt.Errorf("insert chunk: %w", err)
	}
	return nil
}

// AllChunks returns every stored chunk across all documents.
func (v *VectorStore) AllChunks(ctx context.Context) ([]domain.DocumentChunk, error) {
	query := `SELECT id, filename, content, page_number, chunk_index, COALESCE(embedding, ''), created_at
	          FROM document_chunks`

	rows, err := v.store.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.DocumentChunk
	for rows.Next() {
		var c domain.DocumentChunk
		if err := rows.Scan(&c.ID, &c.Filename, &c.Content, &c.PageNumber, &c.ChunkIndex, &c.Embedding, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

// CountDistinctDocuments returns the number of indexed filenames.
func (v *VectorStore) CountDistinctDocuments(ctx context.Context) (int, error) {
	var count int
	err := v.store.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT filename) FROM document_chunks`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return count, nil
}
