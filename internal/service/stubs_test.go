package service

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/ugalabz/oracle-server/internal/domain"
	"github.com/ugalabz/oracle-server/internal/port"
)

// stubAI is a deterministic port.AIProvider for tests. The default embed
// implementation is a bag-of-words histogram, so identical texts always
// map to identical vectors.
type stubAI struct {
	embedFn    func(text string) ([]float64, error)
	chatFn     func(req port.ChatRequest) (string, error)
	embedCalls atomic.Int32
	chatCalls  atomic.Int32
}

func (s *stubAI) Embed(_ context.Context, text string) ([]float64, error) {
	s.embedCalls.Add(1)
	if s.embedFn != nil {
		return s.embedFn(text)
	}
	return wordVector(text), nil
}

func (s *stubAI) Chat(_ context.Context, req port.ChatRequest) (string, error) {
	s.chatCalls.Add(1)
	if s.chatFn != nil {
		return s.chatFn(req)
	}
	return "stub reply", nil
}

func wordVector(text string) []float64 {
	v := make([]float64, 64)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(w))
		v[int(h.Sum32())%len(v)]++
	}
	return v
}

// stubWebProvider records queries and answers from a canned function.
// Search is called concurrently by the fan-out, so access is locked.
type stubWebProvider struct {
	mu      sync.Mutex
	queries []string
	respond func(query string) ([]domain.WebResult, error)
}

func (s *stubWebProvider) Search(_ context.Context, query string, _ int) ([]domain.WebResult, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	s.mu.Unlock()
	if s.respond != nil {
		return s.respond(query)
	}
	return nil, nil
}

func (s *stubWebProvider) recorded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.queries))
	copy(out, s.queries)
	return out
}
