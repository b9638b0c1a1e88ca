// Package llm provides an optional second opinion on low-confidence
// classifications. The LLM output is annotation only: it never changes
// the status or confidence produced by the keyword heuristics.
package llm

import "context"

// Provider is the interface to a chat-completion backend.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Complete sends a prompt and returns the model's reply.
	Complete(ctx context.Context, prompt string) (string, error)
}
