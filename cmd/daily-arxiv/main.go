// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the daily-arxiv CLI. It checks that a
// daily-arXiv-ai-enhanced checkout holds the artifacts the content pipeline
// produces and consumes, and keeps a history of those checks.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/daily-arxiv/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the daily-arxiv CLI. Run without a
// subcommand it performs the setup self-test.
var rootCmd = &cobra.Command{
	Use:   "daily-arxiv",
	Short: "Self-test for the daily-arXiv AI-enhanced content pipeline",
	Long: `daily-arxiv validates a daily-arXiv-ai-enhanced checkout: the newest
AI-enhanced JSONL file, the markdown conversion script, the README generation
files, and the static web assets.

Run without a subcommand to perform the self-test. The exit status is 0 when
every check passes and 1 otherwise.`,
	Args: cobra.NoArgs,
	RunE: runSelftest,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./daily-arxiv.yaml or ~/.config/daily-arxiv/config.yaml)")
	rootCmd.PersistentFlags().String("root", "", "repository root (default: nearest ancestor with update_readme.py, to_md/ or .git)")
	_ = viper.BindPFlag("selftest.root", rootCmd.PersistentFlags().Lookup("root"))

	setDefaults(types.DefaultSelftestConfig())
}

// setDefaults registers every self-test setting with viper so that config
// files and DAILY_ARXIV_* variables can override them individually.
func setDefaults(cfg types.SelftestConfig) {
	viper.SetDefault("selftest.data.dir", cfg.Data.Dir)
	viper.SetDefault("selftest.data.pattern", cfg.Data.Pattern)
	viper.SetDefault("selftest.conversion.script", cfg.Conversion.Script)
	viper.SetDefault("selftest.conversion.template", cfg.Conversion.Template)
	viper.SetDefault("selftest.conversion.markers", cfg.Conversion.Markers)
	viper.SetDefault("selftest.readme.files", cfg.Readme.Files)
	viper.SetDefault("selftest.web.assets", cfg.Web.Assets)
	viper.SetDefault("selftest.history.dir", cfg.History.Dir)
	viper.SetDefault("selftest.history.max_results", cfg.History.MaxResults)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("daily-arxiv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "daily-arxiv"))
		}
	}

	viper.SetEnvPrefix("DAILY_ARXIV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig reads the self-test settings from viper. It unmarshals the full
// settings tree so that flag and env overrides of nested keys are merged.
func loadConfig() (types.SelftestConfig, error) {
	var settings struct {
		Selftest types.SelftestConfig `mapstructure:"selftest"`
	}
	if err := viper.Unmarshal(&settings); err != nil {
		return types.SelftestConfig{}, fmt.Errorf("reading selftest config: %w", err)
	}
	return settings.Selftest, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
