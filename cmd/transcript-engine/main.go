// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the transcript-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/transcript-engine/internal/discover"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the transcript-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "transcript-engine",
	Short: "Convert Claude Code session logs to Markdown transcripts",
	Long: `transcript-engine converts Claude Code JSONL session logs into organized,
human-readable Markdown documents, one per session, named by project.

Use convert to run the conversion pipeline and list to inspect the
sessions it would process.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./transcript-engine.yaml or ~/.config/transcript-engine/config.yaml)")
	rootCmd.PersistentFlags().String("logs-dir", "", "root directory searched for session logs (default: ~/.claude/projects)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("transcript-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "transcript-engine"))
		}
	}

	viper.SetEnvPrefix("TRANSCRIPT_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// logsDir resolves the discovery root: flag, then config file, then the
// conventional Claude Code location.
func logsDir(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString("logs-dir")
	if dir == "" {
		dir = viper.GetString("discovery.logs_dir")
	}
	if dir == "" {
		return discover.DefaultLogsDir()
	}
	return dir, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
