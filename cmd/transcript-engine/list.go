// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/transcript-engine/internal/discover"
	"github.com/pdiddy/transcript-engine/internal/parse"
	"github.com/pdiddy/transcript-engine/internal/render"
	"github.com/pdiddy/transcript-engine/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered session logs with their metadata",
	Long: `List walks the logs directory and prints each session's project, id,
turn count, and start time without writing any output files.`,
	RunE: runList,
}

// sessionRow is one line of list output.
type sessionRow struct {
	types.SessionMetadata
	Path string `json:"path"`
}

func runList(cmd *cobra.Command, args []string) error {
	root, err := logsDir(cmd)
	if err != nil {
		return err
	}

	files, err := discover.FindSessionFiles(root)
	if err != nil {
		return err
	}

	var rows []sessionRow
	for _, path := range files {
		session, err := parse.File(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", path, err)
			continue
		}
		rows = append(rows, sessionRow{
			SessionMetadata: render.ExtractMetadata(session),
			Path:            path,
		})
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatListOutput(rows, jsonOutput)
}

func formatListOutput(rows []sessionRow, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Println("No sessions found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-24s  %-12s  %-16s  %6s  %s\n",
		"Project", "Session", "Started", "Turns", "Title")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, r := range rows {
		fmt.Fprintf(os.Stdout, "%-24s  %-12s  %-16s  %6d  %s\n",
			clip(r.Project, 24), clip(r.SessionID, 12), r.Started, r.TurnCount, clip(r.Title, 40))
	}

	fmt.Fprintf(os.Stdout, "\n%d sessions\n", len(rows))
	return nil
}

// clip caps s at max runes for table layout, never cutting mid-rune.
func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func init() {
	listCmd.Flags().Bool("json", false, "output sessions as JSON")

	rootCmd.AddCommand(listCmd)
}
