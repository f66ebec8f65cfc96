package ai

import "context"

// GenerateRequest describes one model invocation. Temperature and output
// length are set per task: low temperature for factual summarisation, higher
// for creative recommendation.
type GenerateRequest struct {
	System          string
	Prompt          string
	Temperature     float32
	MaxOutputTokens int32
}

// TextGenerator is the contract for hosted language models.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.)
// and for call-count spies in tests.
type TextGenerator interface {
	// GenerateText invokes the model once and returns the raw reply text.
	// No retries: a transient failure is surfaced to the caller.
	GenerateText(ctx context.Context, req GenerateRequest) (string, error)

	// ModelName reports the underlying model identifier for response metadata.
	ModelName() string
}
