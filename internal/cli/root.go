// Package cli implements the airlines command tree.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JinojiLock/Airlines/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "airlines",
	Short: "Airlines - airline operating-status checker",
	Long: `Airlines checks airline names against Wikipedia and classifies each
carrier's operating status (operating, defunct, renamed, unknown) with
a coarse confidence tier, using keyword heuristics over the article
introduction.

The classification is a best-effort reading of encyclopedia text, not
an authoritative statement about any carrier.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("airlines v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.airlines/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".airlines"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match AIRLINES_*
	// (nested keys use underscores: AIRLINES_HTTP_USER_AGENT).
	viper.SetEnvPrefix("AIRLINES")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	registerDefaults()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// registerDefaults seeds viper with every known key so environment
// variables resolve even when no config file exists.
func registerDefaults() {
	def := model.DefaultConfig()
	viper.SetDefault("http.timeout", def.HTTP.Timeout)
	viper.SetDefault("http.user_agent", def.HTTP.UserAgent)
	viper.SetDefault("http.max_body_bytes", def.HTTP.MaxBodyBytes)
	viper.SetDefault("http.max_redirects", def.HTTP.MaxRedirects)
	viper.SetDefault("cache.enabled", def.Cache.Enabled)
	viper.SetDefault("cache.dir", def.Cache.Dir)
	viper.SetDefault("cache.memory_ttl", def.Cache.MemoryTTL)
	viper.SetDefault("cache.disk_ttl", def.Cache.DiskTTL)
	viper.SetDefault("rate_limit.requests_per_second", def.RateLimit.RequestsPerSecond)
	viper.SetDefault("rate_limit.burst", def.RateLimit.Burst)
	viper.SetDefault("lookup.api_base", def.Lookup.APIBase)
	viper.SetDefault("lookup.search_limit", def.Lookup.SearchLimit)
	viper.SetDefault("lookup.html_fallback", def.Lookup.HTMLFallback)
	viper.SetDefault("concurrency.workers", def.Concurrency.Workers)
	viper.SetDefault("llm.enabled", def.LLM.Enabled)
	viper.SetDefault("llm.model", def.LLM.Model)
	viper.SetDefault("llm.base_url", def.LLM.BaseURL)
	viper.SetDefault("output.verbose", def.Output.Verbose)
	viper.SetDefault("output.checkpoint_every", def.Output.CheckpointEvery)
}

// resolveCacheDir fills in the default cache location when the config
// leaves it empty. Caching is disabled if no directory can be resolved.
func resolveCacheDir(cfg *model.Config) {
	if !cfg.Cache.Enabled || cfg.Cache.Dir != "" {
		return
	}
	home, err := os.UserHomeDir()
	if err != nil {
		cfg.Cache.Enabled = false
		return
	}
	cfg.Cache.Dir = filepath.Join(home, ".airlines", "cache")
}
