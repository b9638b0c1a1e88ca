package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/JinojiLock/Airlines/internal/model"
)

// maxExtractChars bounds how much source text goes into the prompt.
const maxExtractChars = 2000

// Reviewer asks a provider for a one-line note on a low-confidence
// classification.
type Reviewer struct {
	provider Provider
}

// NewReviewer builds a reviewer from the LLM config section.
func NewReviewer(cfg model.LLMConfig) (*Reviewer, error) {
	provider, err := NewOpenAIProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}
	return &Reviewer{provider: provider}, nil
}

// NewReviewerWith wraps an existing provider. Used by tests.
func NewReviewerWith(provider Provider) *Reviewer {
	return &Reviewer{provider: provider}
}

// Review returns a short annotation for the record. The caller stores
// it alongside the heuristic result; it never replaces it.
func (r *Reviewer) Review(ctx context.Context, airline, extract string, cls model.Classification) (string, error) {
	note, err := r.provider.Complete(ctx, buildPrompt(airline, extract, cls))
	if err != nil {
		return "", err
	}

	// Keep the annotation one line.
	note = strings.TrimSpace(strings.ReplaceAll(note, "\n", " "))
	return note, nil
}

func buildPrompt(airline, extract string, cls model.Classification) string {
	if len(extract) > maxExtractChars {
		extract = extract[:maxExtractChars]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "A keyword heuristic classified the airline %q as %s with %s confidence.\n", airline, cls.Status, cls.Confidence)
	if cls.SuccessorName != "" {
		fmt.Fprintf(&b, "Extracted successor name: %s\n", cls.SuccessorName)
	}
	if cls.CeasedYear != "" {
		fmt.Fprintf(&b, "Extracted ceased year: %s\n", cls.CeasedYear)
	}
	b.WriteString("Based ONLY on the source text below, state in one sentence whether the classification looks plausible and why.\n\n")
	b.WriteString("Source text:\n")
	b.WriteString(extract)
	return b.String()
}
