package port

import "errors"

// Sentinel errors used across ports.
var (
	ErrAgentNotFound        = errors.New("agent not found")
	ErrPersonaNotFound      = errors.New("persona not found")
	ErrProviderUnavailable  = errors.New("provider unavailable")
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")
)
