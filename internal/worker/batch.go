package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/JinojiLock/Airlines/internal/model"
)

// Checker checks a single airline name. Implemented by pipeline.Checker.
type Checker interface {
	Check(ctx context.Context, name string) (*model.CheckRecord, error)
}

// CheckJob checks one airline name through the pipeline.
type CheckJob struct {
	Name    string
	Checker Checker
}

// Execute runs the check and wraps the outcome.
func (j *CheckJob) Execute(ctx context.Context) Result {
	record, err := j.Checker.Check(ctx, j.Name)
	return &CheckResult{Name: j.Name, Record: record, Err: err}
}

// CheckResult is the outcome of checking one airline.
type CheckResult struct {
	Name   string
	Record *model.CheckRecord
	Err    error
}

// GetError returns the check error, if any.
func (r *CheckResult) GetError() error {
	return r.Err
}

// BatchProcessor checks many airline names concurrently.
type BatchProcessor struct {
	checker Checker
	workers int
}

// NewBatchProcessor creates a batch processor backed by the given
// checker with the given worker count.
func NewBatchProcessor(checker Checker, workers int) *BatchProcessor {
	return &BatchProcessor{checker: checker, workers: workers}
}

// ProcessNames checks the given names concurrently and returns one
// result per name. Result order is completion order, not input order.
// Cancelling ctx stops the workers; names still in flight are dropped.
func (b *BatchProcessor) ProcessNames(ctx context.Context, names []string) []*CheckResult {
	if len(names) == 0 {
		return []*CheckResult{}
	}

	pool := NewPool(ctx, b.workers)
	pool.Start()

	// Submit concurrently with collection: the pool channels hold far
	// fewer jobs than a batch, so submitting everything up front would
	// block before Collect ever ran.
	go func() {
		for _, name := range names {
			pool.Submit(&CheckJob{Name: name, Checker: b.checker})
		}
		pool.Finish()
	}()

	raw := pool.Collect()
	results := make([]*CheckResult, len(raw))
	for i, r := range raw {
		results[i] = r.(*CheckResult)
	}
	return results
}

// ProcessFile reads airline names from a file and checks them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*CheckResult, error) {
	names, err := ReadNamesFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read names: %w", err)
	}
	return b.ProcessNames(ctx, names), nil
}

// ReadNamesFromFile reads airline names, one per line. Blank lines and
// lines starting with # are skipped; duplicates keep their first
// occurrence.
func ReadNamesFromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var names []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			names = append(names, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return names, nil
}
