package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/JinojiLock/Airlines/internal/model"
	"github.com/JinojiLock/Airlines/internal/pipeline"
	"github.com/JinojiLock/Airlines/internal/report"
	"github.com/JinojiLock/Airlines/internal/worker"
)

var (
	concurrency     int
	batchOut        string
	batchJSON       string
	batchTimeout    time.Duration
	checkpointEvery int
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Check a list of airline names and write a spreadsheet report",
	Long: `Batch reads airline names from a file (one per line, # for comments),
checks them with a pool of workers, and writes a styled XLSX report.
An interim report is written every N names so long runs can be
interrupted without losing everything.

Example:
  airlines batch airlines.txt
  airlines batch airlines.txt --concurrency 8 --output status.xlsx
  airlines batch airlines.txt --json status.json --checkpoint-every 50`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", model.DefaultConfig().Concurrency.Workers, "number of concurrent workers")
	batchCmd.Flags().StringVar(&batchOut, "output", "airline_status_report.xlsx", "output XLSX path")
	batchCmd.Flags().StringVar(&batchJSON, "json", "", "output JSON path (optional)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 2*time.Hour, "total timeout for batch processing")
	batchCmd.Flags().IntVar(&checkpointEvery, "checkpoint-every", model.DefaultConfig().Output.CheckpointEvery, "write an interim report every N names (0 disables)")

	batchCmd.Flags().StringVar(&userAgent, "ua", model.DefaultConfig().HTTP.UserAgent, "HTTP User-Agent")
	batchCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh lookups)")

	batchCmd.Flags().BoolVar(&llmOn, "llm", false, "request LLM second opinions on low-confidence results")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency.Workers = concurrency
	}
	if cmd.Flags().Changed("checkpoint-every") {
		cfg.Output.CheckpointEvery = checkpointEvery
	}

	names, err := worker.ReadNamesFromFile(file)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Airlines batch check\n")
	fmt.Fprintf(os.Stderr, "  Input:    %s (%d names)\n", file, len(names))
	fmt.Fprintf(os.Stderr, "  Workers:  %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output:   %s\n", batchOut)
	fmt.Fprintln(os.Stderr)

	checker, err := pipeline.NewChecker(cfg)
	if err != nil {
		return err
	}
	processor := worker.NewBatchProcessor(checker, cfg.Concurrency.Workers)

	var records []*model.CheckRecord
	failures := 0

	// Process in checkpoint-sized chunks so an interim report exists
	// after every chunk.
	chunk := cfg.Output.CheckpointEvery
	if chunk <= 0 {
		chunk = len(names)
	}
	for start := 0; start < len(names); start += chunk {
		end := start + chunk
		if end > len(names) {
			end = len(names)
		}

		for _, result := range processor.ProcessNames(ctx, names[start:end]) {
			if result.Err != nil {
				failures++
				fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Name, result.Err)
				continue
			}
			records = append(records, result.Record)
			if cfg.Output.Verbose {
				fmt.Fprintf(os.Stderr, "✓ %s (%s)\n", result.Name, report.StatusLabel(result.Record))
			}
		}

		if end < len(names) {
			interim := checkpointPath(batchOut, end)
			if err := report.WriteExcel(sortedByAirline(records), interim); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: checkpoint write failed: %v\n", err)
			} else if cfg.Output.Verbose {
				fmt.Fprintf(os.Stderr, "✓ Checkpoint: %s (%d checked)\n", interim, end)
			}
		}
	}

	// Worker completion order is arbitrary; the report reads better
	// sorted by name.
	records = sortedByAirline(records)

	if err := report.WriteExcel(records, batchOut); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if batchJSON != "" {
		if err := report.WriteJSON(records, batchJSON); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
	}

	fmt.Fprintln(os.Stderr)
	report.WriteSummary(os.Stderr, report.Summarize(records))
	if failures > 0 {
		fmt.Fprintf(os.Stderr, "Failures:          %d\n", failures)
	}
	fmt.Fprintf(os.Stderr, "\nReport saved: %s\n", batchOut)

	return nil
}

func checkpointPath(out string, checked int) string {
	base := strings.TrimSuffix(out, ".xlsx")
	return fmt.Sprintf("%s_temp_%d.xlsx", base, checked)
}

func sortedByAirline(records []*model.CheckRecord) []*model.CheckRecord {
	sorted := make([]*model.CheckRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Airline < sorted[j].Airline
	})
	return sorted
}
