package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/JinojiLock/Airlines/internal/model"
)

// WriteJSON dumps the records as indented JSON at path.
func WriteJSON(records []*model.CheckRecord, path string) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// Stats aggregates a batch for the terminal summary.
type Stats struct {
	Total      int
	Found      int
	NotFound   int
	Confidence map[model.Confidence]int
}

// Summarize counts the records.
func Summarize(records []*model.CheckRecord) Stats {
	stats := Stats{
		Total:      len(records),
		Confidence: make(map[model.Confidence]int),
	}
	for _, r := range records {
		if r.Found {
			stats.Found++
		} else {
			stats.NotFound++
		}
		stats.Confidence[r.Confidence]++
	}
	return stats
}

// WriteSummary prints the batch statistics.
func WriteSummary(w io.Writer, stats Stats) {
	fmt.Fprintf(w, "Total checked:     %d\n", stats.Total)
	fmt.Fprintf(w, "Found:             %d\n", stats.Found)
	fmt.Fprintf(w, "Not found:         %d\n", stats.NotFound)
	fmt.Fprintf(w, "High confidence:   %d\n", stats.Confidence[model.ConfidenceHigh])
	fmt.Fprintf(w, "Medium confidence: %d\n", stats.Confidence[model.ConfidenceMedium])
	fmt.Fprintf(w, "Low confidence:    %d\n", stats.Confidence[model.ConfidenceLow])
}
