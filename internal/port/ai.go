package port

import "context"

// ChatRequest is a single non-streaming generation request. Sampling
// parameters travel with the request because each persona pins its own
// token budget and temperature.
type ChatRequest struct {
	SystemPrompt string
	UserMessage  string
	MaxTokens    int
	Temperature  float64
}

// AIProvider abstracts the embedding and chat-completion backend.
type AIProvider interface {
	// Embed generates a dense vector for the given text. The model and
	// output dimensionality are pinned by the implementation; vectors
	// from different models are never comparable.
	Embed(ctx context.Context, text string) ([]float64, error)

	// Chat sends one chat-completion request and returns the reply text.
	Chat(ctx context.Context, req ChatRequest) (string, error)
}
