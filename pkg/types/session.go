// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data model shared across the conversion
// pipeline: turns, content variants, sessions, and derived metadata.
package types

import "encoding/json"

// Turn roles recognized by the pipeline. Anything else a log line carries
// is normalized to RoleSystem.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ContentKind discriminates the payload a Turn carries.
type ContentKind string

const (
	ContentText       ContentKind = "text"
	ContentToolUse    ContentKind = "tool_use"
	ContentToolResult ContentKind = "tool_result"
)

// Content is a tagged union of the recognized payload shapes. Exactly one
// variant's fields are populated, selected by Kind. Unrecognized or
// missing payloads decode to an empty ContentText.
type Content struct {
	Kind ContentKind

	// Text carries the body for ContentText.
	Text string

	// ToolName and ToolInput carry the invocation for ContentToolUse.
	ToolName  string
	ToolInput json.RawMessage

	// Output and IsError carry the outcome for ContentToolResult.
	Output  string
	IsError bool
}

// Turn is one decoded conversation entry: a role, an optional timestamp,
// and a single content payload. A log line whose content is an array of
// blocks expands into consecutive Turns sharing role and timestamp, in
// block order.
type Turn struct {
	Role      string
	Timestamp string
	Content   Content
}

// Session is the full parsed form of one log file: the ordered Turns plus
// the session-level fields used for naming and the document header.
type Session struct {
	Turns []Turn

	// Summary is the session summary from a type:"summary" line, if any.
	Summary string

	// SessionID is the sessionId from the first line carrying one.
	SessionID string

	// CWD is the working directory recorded in the log, if any.
	CWD string

	// FirstTimestamp and LastTimestamp bound the session in log order.
	FirstTimestamp string
	LastTimestamp  string

	// Path is the source file the session was parsed from.
	Path string
}

// SessionMetadata is the derived, read-only header summary for one
// session. Computed once per file; never mutated afterwards.
type SessionMetadata struct {
	// Project is the sanitized project name, safe as a path segment.
	Project string `json:"project" yaml:"project"`

	// Title is the session summary, or a fixed default when absent.
	Title string `json:"title" yaml:"title"`

	SessionID string `json:"session_id,omitempty" yaml:"session_id,omitempty"`

	// Started is the first timestamp as "YYYY-MM-DD HH:MM", or the
	// "unknown-time" sentinel when the file carries no timestamps.
	Started string `json:"started" yaml:"started"`

	// TimeRange is "HH:MM - HH:MM" over the first and last timestamps,
	// empty when the session carries no timestamps.
	TimeRange string `json:"time_range,omitempty" yaml:"time_range,omitempty"`

	TurnCount int `json:"turns" yaml:"turns"`
}

// ConversionStatus reports the outcome of converting one session file.
type ConversionStatus string

const (
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)
