package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/transcript-engine/internal/convert"
	"github.com/pdiddy/transcript-engine/internal/discover"
	"github.com/pdiddy/transcript-engine/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <output-dir>",
	Short: "Convert session logs to Markdown documents",
	Long: `Convert walks the logs directory for JSONL session files and writes one
Markdown document per session into the output directory, named by project
and session summary.

Per-file failures are reported on stderr and do not stop the run; outputs
from earlier runs are skipped unless --force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	outDir := args[0]
	// The only fatal category: an unusable output directory.
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	root, err := logsDir(cmd)
	if err != nil {
		return err
	}

	files, err := discover.FindSessionFiles(root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No session files found under %s\n", root)
		return nil
	}
	fmt.Fprintf(os.Stderr, "Found %d session files under %s\n", len(files), root)

	p := convert.NewPipeline(pipelineConfig(cmd, root, outDir))
	// Individual file failures are already reported per-file; the run
	// itself still succeeds.
	p.ConvertBatch(files, os.Stderr)
	return nil
}

// pipelineConfig assembles the pipeline configuration: config-file values
// first, with any flag the user actually passed taking precedence — an
// explicit zero or false on the command line overrides the config file.
func pipelineConfig(cmd *cobra.Command, root, outDir string) types.PipelineConfig {
	truncateLimit := viper.GetInt("format.truncate_limit")
	if cmd.Flags().Changed("truncate-limit") {
		truncateLimit, _ = cmd.Flags().GetInt("truncate-limit")
	}
	collapseThreshold := viper.GetInt("format.collapse_threshold")
	if cmd.Flags().Changed("collapse-threshold") {
		collapseThreshold, _ = cmd.Flags().GetInt("collapse-threshold")
	}
	hideToolTurns := viper.GetBool("format.hide_tool_turns")
	if cmd.Flags().Changed("hide-tool-turns") {
		hideToolTurns, _ = cmd.Flags().GetBool("hide-tool-turns")
	}
	force, _ := cmd.Flags().GetBool("force")

	return types.PipelineConfig{
		Discovery: types.DiscoveryConfig{LogsDir: root},
		Format: types.FormatConfig{
			TruncateLimit:     truncateLimit,
			CollapseThreshold: collapseThreshold,
			HideToolTurns:     hideToolTurns,
		},
		Output: types.OutputConfig{Dir: outDir, Force: force},
	}
}

func init() {
	convertCmd.Flags().Bool("force", false, "overwrite Markdown files left by earlier runs")
	convertCmd.Flags().Int("truncate-limit", 0, "tool-result truncation length in runes (0 = default 2000)")
	convertCmd.Flags().Int("collapse-threshold", 0, "tool-input size that triggers a collapsible section (0 = default 200)")
	convertCmd.Flags().Bool("hide-tool-turns", false, "drop pure tool-invocation turns from the output")

	rootCmd.AddCommand(convertCmd)
}
