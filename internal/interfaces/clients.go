// Package interfaces defines service contracts for the OOH terminal
package interfaces

import (
	"context"
)

// GenAIClient provides access to the generative data provider
type GenAIClient interface {
	// GenerateJSON sends a prompt expecting a structured JSON response.
	// The returned string is the raw model text before any sanitization.
	GenerateJSON(ctx context.Context, prompt string) (string, error)

	// GenerateContent sends a free-form prompt and returns the model text
	GenerateContent(ctx context.Context, prompt string) (string, error)

	// Model returns the configured model identifier
	Model() string
}
