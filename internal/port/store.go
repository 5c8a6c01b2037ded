package port

import (
	"context"

	"github.com/ugalabz/oracle-server/internal/domain"
)

// AgentStore persists agents and their chat messages.
type AgentStore interface {
	ListAgents(ctx context.Context) ([]domain.Agent, error)
	GetAgent(ctx context.Context, id int) (*domain.Agent, error)
	CreateAgent(ctx context.Context, a *domain.Agent) (*domain.Agent, error)
	UpdateAgent(ctx context.Context, id int, patch domain.AgentPatch) (*domain.Agent, error)
	DeleteAgent(ctx context.Context, id int) error

	ListMessages(ctx context.Context, agentID int) ([]domain.ChatMessage, error)
	CreateMessage(ctx context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error)
}

// ChunkStore persists document chunks and their embeddings. The corpus is
// small, so retrieval is a full scan; swapping in an indexed
// nearest-neighbor store only requires a new implementation of this
// interface.
type ChunkStore interface {
	// DeleteDocument removes every chunk stored for the given filename.
	DeleteDocument(ctx context.Context, filename string) error

	// InsertChunk stores one chunk. Callers treat a failure as skip-and-log,
	// so a bad chunk never aborts chunks already inserted.
	InsertChunk(ctx context.Context, c *domain.DocumentChunk) error

	// AllChunks returns every stored chunk across all documents.
	AllChunks(ctx context.Context) ([]domain.DocumentChunk, error)

	// CountDistinctDocuments returns the number of indexed filenames.
	CountDistinctDocuments(ctx context.Context) (int, error)
}
