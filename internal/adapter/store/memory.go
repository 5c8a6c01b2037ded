package store

import (
	"context"
	"sync"
	"time"

	"github.com/ugalabz/oracle-server/internal/domain"
	"github.com/ugalabz/oracle-server/internal/port"
)

// MemoryStore is an in-memory implementation of both port.AgentStore and
// port.ChunkStore. It backs tests and lets the server run without a
// database, seeded with the two default personas.
type MemoryStore struct {
	mu            sync.RWMutex
	agents        map[int]domain.Agent
	messages      map[int]domain.ChatMessage
	chunks        []domain.DocumentChunk
	nextAgentID   int
	nextMessageID int
	nextChunkID   int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		agents:        make(map[int]domain.Agent),
		messages:      make(map[int]domain.ChatMessage),
		nextAgentID:   1,
		nextMessageID: 1,
		nextChunkID:   1,
	}
}

// NewSeededMemoryStore creates an in-memory store pre-populated with the
// default dashboard agents.
func NewSeededMemoryStore() *MemoryStore {
	s := NewMemoryStore()
	defaults := []domain.Agent{
		{
			Name:        "Midnight Oracle",
			Role:        "Midnight Protocol Consultant",
			Avatar:      "DATA_SEER_IMAGE",
			Color:       "blue",
			Description: "Fully internet-enabled research agent combining live web search with document memory. Confident, professional Midnight/Cardano-focused oracle.",
			Status:      "online",
		},
		{
			Name:        "Uga XRP",
			Role:        "XRPL Jungle King",
			Avatar:      "UGA_XRP_IMAGE",
			Color:       "green",
			Description: "XRPL Specialist and King of the Jungle. Master of liquidity, AMMs, and esoteric memetics from the sacred banana realm.",
			Status:      "online",
		},
	}
	for i := range defaults {
		_, _ = s.CreateAgent(context.Background(), &defaults[i])
	}
	return s
}

// --- Agents ---

func (s *MemoryStore) ListAgents(_ context.Context) ([]domain.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	agents := make([]domain.Agent, 0, len(s.agents))
	for id := 1; id < s.nextAgentID; id++ {
		if a, ok := s.agents[id]; ok {
			agents = append(agents, a)
		}
	}
	return agents, nil
}

func (s *MemoryStore) GetAgent(_ context.Context, id int) (*domain.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.agents[id]
	if !ok {
		return nil, port.ErrAgentNotFound
	}
	return &a, nil
}

func (s *MemoryStore) CreateAgent(_ context.Context, a *domain.Agent) (*domain.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := *a
	created.ID = s.nextAgentID
	s.nextAgentID++
	if created.Status == "" {
		created.Status = "online"
	}
	created.CreatedAt = time.Now()
	s.agents[created.ID] = created
	return &created, nil
}

func (s *MemoryStore) UpdateAgent(_ context.Context, id int, patch domain.AgentPatch) (*domain.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.agents[id]
	if !ok {
		return nil, port.ErrAgentNotFound
	}
	if patch.Name != nil {
		a.Name = *patch.Name
	}
	if patch.Role != nil {
		a.Role = *patch.Role
	}
	if patch.Avatar != nil {
		a.Avatar = *patch.Avatar
	}
	if patch.Color != nil {
		a.Color = *patch.Color
	}
	if patch.Description != nil {
		a.Description = *patch.Description
	}
	if patch.Status != nil {
		a.Status = *patch.Status
	}
	s.agents[id] = a
	return &a, nil
}

func (s *MemoryStore) DeleteAgent(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.agents[id]; !ok {
		return port.ErrAgentNotFound
	}
	delete(s.agents, id)
	for mid, m := range s.messages {
		if m.AgentID == id {
			delete(s.messages, mid)
		}
	}
	return nil
}

// --- Chat messages ---

func (s *MemoryStore) ListMessages(_ context.Context, agentID int) ([]domain.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var messages []domain.ChatMessage
	for id := 1; id < s.nextMessageID; id++ {
		if m, ok := s.messages[id]; ok && m.AgentID == agentID {
			messages = append(messages, m)
		}
	}
	return messages, nil
}

func (s *MemoryStore) CreateMessage(_ context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := *m
	created.ID = s.nextMessageID
	s.nextMessageID++
	created.Timestamp = time.Now()
	s.messages[created.ID] = created
	return &created, nil
}

// --- Document chunks ---

func (s *MemoryStore) DeleteDocument(_ context.Context, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.chunks[:0]
	for _, c := range s.chunks {
		if c.Filename != filename {
			kept = append(kept, c)
		}
	}
	s.chunks = kept
	return nil
}

func (s *MemoryStore) InsertChunk(_ context.Context, c *domain.DocumentChunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *c
	stored.ID = s.nextChunkID
	s.nextChunkID++
	stored.CreatedAt = time.Now()
	s.chunks = append(s.chunks, stored)
	return nil
}

func (s *MemoryStore) AllChunks(_ context.Context) ([]domain.DocumentChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chunks := make([]domain.DocumentChunk, len(s.chunks))
	copy(chunks, s.chunks)
	return chunks, nil
}

func (s *MemoryStore) CountDistinctDocuments(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, c := range s.chunks {
		seen[c.Filename] = struct{}{}
	}
	return len(seen), nil
}
