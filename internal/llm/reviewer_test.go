package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JinojiLock/Airlines/internal/model"
)

type fakeProvider struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func TestReviewer_Review(t *testing.T) {
	provider := &fakeProvider{reply: "  Plausible: the text mentions no status signal.\nExtra line.  "}
	reviewer := NewReviewerWith(provider)

	note, err := reviewer.Review(context.Background(), "Air Foo", "Air Foo is an airline.", model.Classification{
		Status:     model.StatusUnknown,
		Confidence: model.ConfidenceLow,
	})
	require.NoError(t, err)

	// Notes are flattened to one trimmed line.
	assert.Equal(t, "Plausible: the text mentions no status signal. Extra line.", note)

	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], `"Air Foo"`)
	assert.Contains(t, provider.prompts[0], "unknown")
	assert.Contains(t, provider.prompts[0], "Air Foo is an airline.")
}

func TestReviewer_PromptIncludesExtractions(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	reviewer := NewReviewerWith(provider)

	_, err := reviewer.Review(context.Background(), "Air Foo", "text", model.Classification{
		Status:        model.StatusRenamed,
		SuccessorName: "Air Bar",
		Confidence:    model.ConfidenceLow,
	})
	require.NoError(t, err)

	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "Air Bar")
}

func TestReviewer_TruncatesLongExtracts(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	reviewer := NewReviewerWith(provider)

	long := strings.Repeat("x", maxExtractChars*2)
	_, err := reviewer.Review(context.Background(), "Air Foo", long, model.Classification{
		Status:     model.StatusUnknown,
		Confidence: model.ConfidenceLow,
	})
	require.NoError(t, err)

	require.Len(t, provider.prompts, 1)
	assert.Less(t, len(provider.prompts[0]), maxExtractChars+500)
}

func TestReviewer_PropagatesProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("quota exceeded")}
	reviewer := NewReviewerWith(provider)

	_, err := reviewer.Review(context.Background(), "Air Foo", "text", model.Classification{})
	assert.Error(t, err)
}

func TestNewReviewer_RequiresAPIKey(t *testing.T) {
	_, err := NewReviewer(model.LLMConfig{})
	assert.Error(t, err)
}
