package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ugalabz/oracle-server/internal/domain"
	"github.com/ugalabz/oracle-server/internal/port"
)

const (
	docSearchLimit       = 5
	maxChunkContextLen   = 1500
	errorExcerptLen      = 400
	emptyReplyExcerptLen = 300
)

// Oracle runs one chat turn: greeting fast path, concurrent document and
// web evidence gathering, context assembly, and a single generation call.
type Oracle struct {
	ai         port.AIProvider
	indexer    *Indexer
	web        *WebSearcher
	classifier *RelevanceClassifier
	personas   map[string]*Persona
}

// NewOracle creates the chat turn orchestrator.
func NewOracle(ai port.AIProvider, indexer *Indexer, web *WebSearcher, classifier *RelevanceClassifier, personas map[string]*Persona) *Oracle {
	return &Oracle{ai: ai, indexer: indexer, web: web, classifier: classifier, personas: personas}
}

// Personas returns the persona registry keyed by ID.
func (s *Oracle) Personas() map[string]*Persona {
	return s.personas
}

// Respond generates a reply for the persona. Evidence failures degrade to
// reduced context; a failed generation call degrades to a persona-flavored
// fallback string. The only error returned is an unknown persona ID.
func (s *Oracle) Respond(ctx context.Context, personaID, message string) (string, error) {
	persona, ok := s.personas[personaID]
	if !ok {
		return "", port.ErrPersonaNotFound
	}

	start := time.Now()
	message = strings.TrimSpace(message)

	if persona.MatchesFastPath(message) {
		slog.Info("fast path reply", "persona", persona.ID)
		return persona.Greeting, nil
	}

	// Both evidence branches run concurrently and resolve to a neutral
	// outcome on failure; neither can cancel or fail the other.
	searchStart := time.Now()
	var (
		wg  sync.WaitGroup
		doc domain.DocumentOutcome
		web domain.WebOutcome
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		doc = s.scoreDocuments(ctx, message)
	}()
	go func() {
		defer wg.Done()
		query := message
		if persona.WebQuerySuffix != "" {
			query = message + " " + persona.WebQuerySuffix
		}
		web = s.web.Search(ctx, query)
	}()
	wg.Wait()
	searchTime := time.Since(searchStart)

	bundle := AssembleContext(doc, web)
	slog.Info("evidence gathered",
		"persona", persona.ID,
		"quality", bundle.Quality,
		"strong_match", bundle.HasStrongMatch,
		"doc_sources", len(doc.Sources),
		"web_sources", len(web.Sources),
		"search_ms", searchTime.Milliseconds(),
	)

	generateStart := time.Now()
	reply, err := s.ai.Chat(ctx, port.ChatRequest{
		SystemPrompt: persona.RenderPrompt(bundle),
		UserMessage:  message,
		MaxTokens:    persona.MaxTokens,
		Temperature:  persona.Temperature,
	})
	generateTime := time.Since(generateStart)

	if err != nil {
		slog.Error("generation failed", "persona", persona.ID, "error", err, "total_ms", time.Since(start).Milliseconds())
		if bundle.DocumentContext != "" {
			return excerpt(bundle.DocumentContext, errorExcerptLen) + " Let me know if you need more specific information about any aspect.", nil
		}
		return persona.Apology, nil
	}

	slog.Info("generation complete",
		"persona", persona.ID,
		"generate_ms", generateTime.Milliseconds(),
		"total_ms", time.Since(start).Milliseconds(),
	)

	if strings.TrimSpace(reply) != "" {
		return reply, nil
	}
	if bundle.DocumentContext != "" {
		return excerpt(bundle.DocumentContext, emptyReplyExcerptLen) + " Let me know if you need more specific details about any aspect.", nil
	}
	return persona.EmptyFallback, nil
}

// scoreDocuments runs the vector branch: embed, rank, classify, and fold
// the top chunks into one context string with provenance for logging.
func (s *Oracle) scoreDocuments(ctx context.Context, query string) domain.DocumentOutcome {
	results := s.indexer.SearchDocuments(ctx, query, docSearchLimit)
	if len(results) == 0 {
		return domain.DocumentOutcome{}
	}

	strong := s.classifier.Classify(query, results)

	parts := make([]string, len(results))
	seen := make(map[string]struct{})
	var sources []string
	for i, r := range results {
		content := r.Content
		if len(content) > maxChunkContextLen {
			content = content[:maxChunkContextLen]
		}
		parts[i] = content
		if _, ok := seen[r.Filename]; !ok {
			seen[r.Filename] = struct{}{}
			sources = append(sources, r.Filename)
		}
	}

	return domain.DocumentOutcome{
		HasStrongMatch: strong,
		Context:        strings.Join(parts, "\n\n---\n\n"),
		Sources:        sources,
	}
}

func excerpt(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text + "..."
	}
	return text[:maxLen] + "..."
}
