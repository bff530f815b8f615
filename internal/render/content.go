// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns parsed Turns into Markdown fragments and assembles
// the final per-session document.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/transcript-engine/pkg/types"
)

const (
	// DefaultTruncateLimit caps tool-result output, in runes.
	DefaultTruncateLimit = 2000

	// DefaultCollapseThreshold is the pretty-printed tool-input size, in
	// bytes, above which a tool invocation folds into a collapsible
	// section.
	DefaultCollapseThreshold = 200

	truncationMarker = "\n... (truncated)"
)

// Formatter renders one Turn's content as a Markdown fragment. Formatting
// is pure: identical input always yields identical output.
type Formatter struct {
	cfg types.FormatConfig
}

// NewFormatter builds a Formatter, applying defaults for unset limits.
func NewFormatter(cfg types.FormatConfig) *Formatter {
	if cfg.TruncateLimit <= 0 {
		cfg.TruncateLimit = DefaultTruncateLimit
	}
	if cfg.CollapseThreshold <= 0 {
		cfg.CollapseThreshold = DefaultCollapseThreshold
	}
	return &Formatter{cfg: cfg}
}

// Format dispatches on the content variant. Content that is empty or
// whitespace-only after cleaning formats to the empty string, which the
// skip policy drops.
func (f *Formatter) Format(turn types.Turn) string {
	switch turn.Content.Kind {
	case types.ContentToolUse:
		return f.formatToolUse(turn.Content)
	case types.ContentToolResult:
		return f.formatToolResult(turn.Content)
	default:
		return strings.TrimSpace(Clean(turn.Content.Text))
	}
}

// formatToolUse renders a labeled block with the tool name and its
// pretty-printed input. Large or nested inputs fold into a collapsible
// section so long transcripts stay skimmable.
func (f *Formatter) formatToolUse(c types.Content) string {
	name := c.ToolName
	if name == "" {
		name = "unknown"
	}

	input := prettyJSON(c.ToolInput)
	if input == "" {
		return fmt.Sprintf("**Tool Used:** %s", name)
	}

	block := fmt.Sprintf("```json\n%s\n```", input)
	if len(input) > f.cfg.CollapseThreshold || hasNestedStructure(c.ToolInput) {
		return fmt.Sprintf("<details>\n<summary>🔧 <em>%s</em></summary>\n\n%s\n\n</details>", name, block)
	}
	return fmt.Sprintf("**Tool Used:** %s\n\n%s", name, block)
}

// formatToolResult renders the output in a code fence, truncated at the
// configured limit. Errors get a distinct label so failures are scannable.
func (f *Formatter) formatToolResult(c types.Content) string {
	out := strings.TrimSpace(Clean(c.Output))
	if out == "" {
		return ""
	}
	out = truncate(out, f.cfg.TruncateLimit)

	label := "🔧 Tool Result:"
	if c.IsError {
		label = "⚠️ Tool Error:"
	}
	return fmt.Sprintf("%s\n\n```\n%s\n```", label, out)
}

// prettyJSON re-indents raw JSON with two-space indentation. Empty objects
// and invalid payloads render as nothing.
func prettyJSON(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "{}" || trimmed == "null" {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(trimmed), "", "  "); err != nil {
		return ""
	}
	return buf.String()
}

// hasNestedStructure reports whether a JSON object has any object or array
// values.
func hasNestedStructure(raw json.RawMessage) bool {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return false
	}
	for _, v := range m {
		switch v.(type) {
		case map[string]any, []any:
			return true
		}
	}
	return false
}

// truncate caps s at limit runes, appending an explicit marker when
// content was cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + truncationMarker
}
