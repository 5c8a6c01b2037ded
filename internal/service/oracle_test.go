package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugalabz/oracle-server/internal/adapter/store"
	"github.com/ugalabz/oracle-server/internal/domain"
	"github.com/ugalabz/oracle-server/internal/port"
)

// newTestOracle wires an oracle over in-memory chunks and a stub web
// provider. chunkText, when non-empty, is indexed as airdrop.txt.
func newTestOracle(t *testing.T, ai *stubAI, web *stubWebProvider, chunkText string) *Oracle {
	t.Helper()

	mem := newChunkFixture(t, ai, chunkText)
	classifier := NewRelevanceClassifier(DefaultCategoryRules())
	indexer := NewIndexer(ai, mem)
	searcher := NewWebSearcher(web, classifier, []string{"midnight.io"})
	return NewOracle(ai, indexer, searcher, classifier, DefaultPersonas())
}

func newChunkFixture(t *testing.T, ai *stubAI, chunkText string) port.ChunkStore {
	t.Helper()

	mem := store.NewMemoryStore()
	if chunkText != "" {
		indexer := NewIndexer(ai, mem)
		require.NoError(t, indexer.IndexDocument(context.Background(), "airdrop.txt", chunkText))
	}
	return mem
}

func TestOracleRespondUnknownPersona(t *testing.T) {
	oracle := newTestOracle(t, &stubAI{}, &stubWebProvider{}, "")

	_, err := oracle.Respond(context.Background(), "nonexistent", "hello there friend")
	assert.ErrorIs(t, err, port.ErrPersonaNotFound)
}

func TestOracleRespondFastPath(t *testing.T) {
	tests := []struct {
		name    string
		persona string
		message string
	}{
		{"greeting word", PersonaMidnightOracle, "hello"},
		{"greeting case insensitive", PersonaMidnightOracle, "HEY"},
		{"short message", PersonaMidnightOracle, "ok"},
		{"jungle greeting prefix", PersonaUgaXRP, "hey uga"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ai := &stubAI{}
			web := &stubWebProvider{}
			oracle := newTestOracle(t, ai, web, "")

			reply, err := oracle.Respond(context.Background(), tt.persona, tt.message)
			require.NoError(t, err)
			assert.Equal(t, oracle.Personas()[tt.persona].Greeting, reply)
			assert.Zero(t, ai.embedCalls.Load())
			assert.Zero(t, ai.chatCalls.Load())
			assert.Empty(t, web.recorded())
		})
	}
}

func TestOracleRespondFullTurn(t *testing.T) {
	corpus := "The snapshot was taken on june 11, 2024 at midnight UTC. Eligible tokens include ADA, BTC, ETH, XRP, BNB, AVAX, SOL and BAT above one hundred dollars."

	t.Run("strong dual-mode turn renders evidence into the prompt", func(t *testing.T) {
		var captured port.ChatRequest
		ai := &stubAI{chatFn: func(req port.ChatRequest) (string, error) {
			captured = req
			return "the full answer", nil
		}}
		web := &stubWebProvider{respond: func(string) ([]domain.WebResult, error) {
			return []domain.WebResult{{Title: "portal", Link: "https://x", Snippet: "claim portal live"}}, nil
		}}
		oracle := newTestOracle(t, ai, web, corpus)

		reply, err := oracle.Respond(context.Background(), PersonaMidnightOracle, "when was the airdrop snapshot taken")
		require.NoError(t, err)
		assert.Equal(t, "the full answer", reply)

		assert.Equal(t, "when was the airdrop snapshot taken", captured.UserMessage)
		assert.Equal(t, 800, captured.MaxTokens)
		assert.InDelta(t, 0.1, captured.Temperature, 1e-9)
		assert.Contains(t, captured.SystemPrompt, "INFORMATION QUALITY: DUAL-MODE")
		assert.Contains(t, captured.SystemPrompt, "DOCUMENT MEMORY")
		assert.Contains(t, captured.SystemPrompt, "LIVE WEB INTELLIGENCE")
		assert.Contains(t, captured.SystemPrompt, "june 11, 2024")
		assert.Contains(t, captured.SystemPrompt, "claim portal live")
	})

	t.Run("web failure degrades to document-based", func(t *testing.T) {
		var captured port.ChatRequest
		ai := &stubAI{chatFn: func(req port.ChatRequest) (string, error) {
			captured = req
			return "documents only", nil
		}}
		web := &stubWebProvider{respond: func(string) ([]domain.WebResult, error) {
			return nil, fmt.Errorf("search provider down")
		}}
		oracle := newTestOracle(t, ai, web, corpus)

		reply, err := oracle.Respond(context.Background(), PersonaMidnightOracle, "which tokens were eligible for the snapshot")
		require.NoError(t, err)
		assert.Equal(t, "documents only", reply)
		assert.Contains(t, captured.SystemPrompt, "INFORMATION QUALITY: DOCUMENT-BASED")
	})

	t.Run("no evidence at all is limited", func(t *testing.T) {
		var captured port.ChatRequest
		ai := &stubAI{chatFn: func(req port.ChatRequest) (string, error) {
			captured = req
			return "best effort", nil
		}}
		oracle := newTestOracle(t, ai, &stubWebProvider{}, "")

		_, err := oracle.Respond(context.Background(), PersonaMidnightOracle, "tell me about kachina contracts")
		require.NoError(t, err)
		assert.Contains(t, captured.SystemPrompt, "INFORMATION QUALITY: LIMITED")
	})

	t.Run("persona web suffix reaches the search query", func(t *testing.T) {
		web := &stubWebProvider{}
		oracle := newTestOracle(t, &stubAI{}, web, "")

		_, err := oracle.Respond(context.Background(), PersonaUgaXRP, "explain the gnosis rewards loop")
		require.NoError(t, err)

		queries := web.recorded()
		require.NotEmpty(t, queries)
		assert.Contains(t, queries[0], "XRPL AMM XRP DeFi")
	})
}

func TestOracleRespondGenerationFailure(t *testing.T) {
	corpus := "The snapshot was taken on june 11, 2024 at midnight UTC."

	t.Run("falls back to a document excerpt", func(t *testing.T) {
		ai := &stubAI{chatFn: func(port.ChatRequest) (string, error) {
			return "", fmt.Errorf("model overloaded")
		}}
		oracle := newTestOracle(t, ai, &stubWebProvider{}, corpus)

		reply, err := oracle.Respond(context.Background(), PersonaMidnightOracle, "when was the airdrop snapshot taken")
		require.NoError(t, err)
		assert.Contains(t, reply, "june 11, 2024")
		assert.Contains(t, reply, "Let me know if you need more specific information")
	})

	t.Run("falls back to the persona apology without documents", func(t *testing.T) {
		ai := &stubAI{chatFn: func(port.ChatRequest) (string, error) {
			return "", fmt.Errorf("model overloaded")
		}}
		oracle := newTestOracle(t, ai, &stubWebProvider{}, "")

		reply, err := oracle.Respond(context.Background(), PersonaUgaXRP, "explain the gnosis rewards loop")
		require.NoError(t, err)
		assert.Equal(t, oracle.Personas()[PersonaUgaXRP].Apology, reply)
	})
}

func TestOracleRespondEmptyGeneration(t *testing.T) {
	corpus := "The snapshot was taken on june 11, 2024 at midnight UTC."

	t.Run("falls back to a document excerpt", func(t *testing.T) {
		ai := &stubAI{chatFn: func(port.ChatRequest) (string, error) {
			return "   \n", nil
		}}
		oracle := newTestOracle(t, ai, &stubWebProvider{}, corpus)

		reply, err := oracle.Respond(context.Background(), PersonaMidnightOracle, "when was the airdrop snapshot taken")
		require.NoError(t, err)
		assert.Contains(t, reply, "june 11, 2024")
		assert.True(t, strings.Contains(reply, "..."))
	})

	t.Run("falls back to the persona message without documents", func(t *testing.T) {
		ai := &stubAI{chatFn: func(port.ChatRequest) (string, error) {
			return "", nil
		}}
		oracle := newTestOracle(t, ai, &stubWebProvider{}, "")

		reply, err := oracle.Respond(context.Background(), PersonaMidnightOracle, "tell me about kachina contracts")
		require.NoError(t, err)
		assert.Equal(t, oracle.Personas()[PersonaMidnightOracle].EmptyFallback, reply)
	})
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short...", excerpt("short", 10))
	assert.Equal(t, "abcde...", excerpt("abcdefgh", 5))
}
