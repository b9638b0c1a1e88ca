package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JinojiLock/Airlines/internal/model"
	"github.com/JinojiLock/Airlines/internal/pipeline"
	"github.com/JinojiLock/Airlines/internal/report"
)

var (
	outJSON   string
	outXLSX   string
	timeout   time.Duration
	userAgent string
	maxBytes  int64
	noCache   bool
	llmOn     bool
	llmModel  string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <airline name>",
	Short: "Check the operating status of a single airline",
	Long: `Check looks up one airline on Wikipedia, classifies its operating
status from the article introduction, and prints the result.

Example:
  airlines check "Pan Am"
  airlines check "Aer Lingus" --json record.json
  airlines check "Swissair" --xlsx report.xlsx --llm`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	checkCmd.Flags().StringVar(&outXLSX, "xlsx", "", "output XLSX path (optional)")

	checkCmd.Flags().DurationVar(&timeout, "timeout", 1*time.Minute, "overall check timeout")
	checkCmd.Flags().StringVar(&userAgent, "ua", model.DefaultConfig().HTTP.UserAgent, "HTTP User-Agent")
	checkCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh lookup)")

	checkCmd.Flags().BoolVar(&llmOn, "llm", false, "request an LLM second opinion on low-confidence results")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runCheck(cmd *cobra.Command, args []string) error {
	name := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("timeout") {
		cfg.HTTP.Timeout = timeout
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", name)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	checker, err := pipeline.NewChecker(cfg)
	if err != nil {
		return err
	}

	record, err := checker.Check(ctx, name)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	printRecord(record)

	records := []*model.CheckRecord{record}
	if outJSON != "" {
		if err := report.WriteJSON(records, outJSON); err != nil {
			return err
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outXLSX != "" {
		if err := report.WriteExcel(records, outXLSX); err != nil {
			return err
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote XLSX: %s\n", outXLSX)
		}
	}

	return nil
}

// buildConfig assembles the pipeline config for check and batch:
// defaults, then config file and AIRLINES_* environment via viper,
// then any flag the user set explicitly.
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("ua") {
		cfg.HTTP.UserAgent = userAgent
	}
	if flags.Changed("max-bytes") {
		cfg.HTTP.MaxBodyBytes = maxBytes
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if flags.Changed("llm") {
		cfg.LLM.Enabled = llmOn
	}
	if flags.Changed("llm-model") {
		cfg.LLM.Model = llmModel
	}
	if verbose {
		cfg.Output.Verbose = true
	}

	if cfg.LLM.Enabled {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	resolveCacheDir(cfg)
	return cfg, nil
}

func printRecord(record *model.CheckRecord) {
	successor := record.SuccessorName
	if successor == "" {
		successor = "N/A"
	}

	fmt.Printf("Airline:    %s\n", record.Airline)
	fmt.Printf("Status:     %s\n", report.StatusLabel(record))
	fmt.Printf("New name:   %s\n", successor)
	fmt.Printf("Confidence: %s\n", record.Confidence)
	fmt.Printf("Source:     %s\n", record.Source)
	if record.LLMNote != "" {
		fmt.Printf("LLM note:   %s\n", record.LLMNote)
	}
}
