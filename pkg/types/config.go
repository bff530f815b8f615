// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DiscoveryConfig holds settings for locating session log files.
type DiscoveryConfig struct {
	// LogsDir is the root directory searched for session files. When
	// empty, the conventional Claude Code location (~/.claude/projects)
	// is used.
	LogsDir string `json:"logs_dir" yaml:"logs_dir"`
}

// FormatConfig holds the rendering policy for turn content.
type FormatConfig struct {
	// TruncateLimit caps tool-result output, in runes (default 2000).
	// Output beyond the limit is cut and marked as truncated.
	TruncateLimit int `json:"truncate_limit" yaml:"truncate_limit"`

	// CollapseThreshold is the pretty-printed tool-input size, in bytes,
	// above which a tool invocation renders as a collapsible section
	// instead of inline text (default 200). Inputs with nested structure
	// collapse regardless of size.
	CollapseThreshold int `json:"collapse_threshold" yaml:"collapse_threshold"`

	// HideToolTurns drops pure tool-invocation turns from the document
	// entirely instead of rendering them collapsed.
	HideToolTurns bool `json:"hide_tool_turns" yaml:"hide_tool_turns"`
}

// OutputConfig holds settings for writing the converted documents.
type OutputConfig struct {
	// Dir is the directory the Markdown documents are written to.
	Dir string `json:"dir" yaml:"dir"`

	// Force overwrites outputs left by earlier runs instead of skipping
	// them.
	Force bool `json:"force" yaml:"force"`
}

// PipelineConfig groups all stage configurations for the converter.
type PipelineConfig struct {
	Discovery DiscoveryConfig `json:"discovery" yaml:"discovery"`
	Format    FormatConfig    `json:"format" yaml:"format"`
	Output    OutputConfig    `json:"output" yaml:"output"`
}
