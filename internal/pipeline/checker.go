// Package pipeline wires the lookup adapter and the status classifier
// into the check flow: name in, report record out.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/JinojiLock/Airlines/internal/cache"
	"github.com/JinojiLock/Airlines/internal/classify"
	"github.com/JinojiLock/Airlines/internal/llm"
	"github.com/JinojiLock/Airlines/internal/lookup"
	"github.com/JinojiLock/Airlines/internal/model"
	"github.com/JinojiLock/Airlines/internal/worker"
)

// notFoundSource is recorded when no article matched the name.
const notFoundSource = "not found in available sources"

// Lookuper resolves an airline name to article text.
type Lookuper interface {
	Lookup(ctx context.Context, name string) (*lookup.Summary, error)
}

// Checker checks one airline at a time: lookup, classify, record.
type Checker struct {
	lookups  Lookuper
	reviewer *llm.Reviewer // nil when the second opinion is disabled
	verbose  bool
}

// NewChecker builds the full pipeline from config: layered cache,
// per-host rate limiter, lookup client, and the optional LLM reviewer.
func NewChecker(cfg *model.Config) (*Checker, error) {
	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	limiter := worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	client := lookup.NewClient(cfg, store, limiter)

	var reviewer *llm.Reviewer
	if cfg.LLM.Enabled {
		r, err := llm.NewReviewer(cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("init LLM reviewer: %w", err)
		}
		reviewer = r
	}

	return &Checker{
		lookups:  client,
		reviewer: reviewer,
		verbose:  cfg.Output.Verbose,
	}, nil
}

// NewCheckerWith builds a checker over an existing lookup
// implementation. Used by tests.
func NewCheckerWith(lookups Lookuper, reviewer *llm.Reviewer) *Checker {
	return &Checker{lookups: lookups, reviewer: reviewer}
}

// Check looks up the airline and classifies its status. A lookup miss
// is not an error: it yields an unknown/low record marked not found.
func (c *Checker) Check(ctx context.Context, name string) (*model.CheckRecord, error) {
	summary, err := c.lookups.Lookup(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", name, err)
	}

	record := &model.CheckRecord{
		Airline:   name,
		CheckedAt: time.Now().UTC(),
	}

	if !summary.Found {
		record.Source = notFoundSource
		record.Classification = model.Classification{
			Status:     model.StatusUnknown,
			Confidence: model.ConfidenceLow,
		}
		return record, nil
	}

	record.Found = true
	record.Source = summary.URL
	record.Classification = classify.Classify(name, summary.Extract)

	if c.reviewer != nil && record.Confidence == model.ConfidenceLow {
		note, err := c.reviewer.Review(ctx, name, summary.Extract, record.Classification)
		if err != nil {
			// The heuristic result stands on its own; a failed second
			// opinion is only worth a warning.
			if c.verbose {
				fmt.Fprintf(os.Stderr, "Warning: LLM review failed for %s: %v\n", name, err)
			}
		} else {
			record.LLMNote = note
		}
	}

	return record, nil
}
