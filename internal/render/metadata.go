// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/transcript-engine/pkg/types"
)

const (
	// DefaultProject names sessions whose log carries no working
	// directory.
	DefaultProject = "unknown-project"

	// DefaultTitle is used when the log has no summary line.
	DefaultTitle = "Claude Code Session"

	// UnknownTime is the sentinel for sessions without any timestamp.
	UnknownTime = "unknown-time"

	// MaxNameLength caps sanitized names, in runes.
	MaxNameLength = 100

	startedLayout = "2006-01-02 15:04"
	clockLayout   = "15:04"
)

// unsafeChars matches characters that are not usable in a file name across
// platforms.
var unsafeChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeName maps s to a string usable as a single path segment,
// replacing unsafe characters with "_" and capping the length. Applying it
// twice yields the same string.
func SanitizeName(s string) string {
	s = unsafeChars.ReplaceAllString(s, "_")
	runes := []rune(s)
	if len(runes) > MaxNameLength {
		s = string(runes[:MaxNameLength-3]) + "..."
	}
	return s
}

// ProjectName derives the project from the session working directory,
// falling back to DefaultProject.
func ProjectName(cwd string) string {
	if cwd == "" {
		return DefaultProject
	}
	base := filepath.Base(strings.TrimRight(cwd, "/"))
	if base == "" || base == "." || base == "/" {
		return DefaultProject
	}
	return SanitizeName(base)
}

// ExtractMetadata derives the read-only header summary for one parsed
// session.
func ExtractMetadata(s *types.Session) types.SessionMetadata {
	meta := types.SessionMetadata{
		Project:   ProjectName(s.CWD),
		Title:     strings.TrimSpace(s.Summary),
		SessionID: s.SessionID,
		Started:   UnknownTime,
		TurnCount: len(s.Turns),
	}
	if meta.Title == "" {
		meta.Title = DefaultTitle
	}
	if s.FirstTimestamp != "" {
		meta.Started = formatInstant(s.FirstTimestamp, startedLayout)
		if s.LastTimestamp != "" {
			meta.TimeRange = formatInstant(s.FirstTimestamp, clockLayout) +
				" - " + formatInstant(s.LastTimestamp, clockLayout)
		}
	}
	return meta
}

// formatInstant renders an ISO timestamp in the given layout, UTC. A
// timestamp that does not parse passes through unchanged rather than
// failing the file.
func formatInstant(ts, layout string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.UTC().Format(layout)
}
