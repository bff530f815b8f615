// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"

	"github.com/pdiddy/transcript-engine/pkg/types"
)

// SkipPolicy is the named set of predicates deciding whether a formatted
// turn is noise. Each decision is independent of every other turn.
type SkipPolicy struct {
	// HideToolTurns drops pure tool-invocation turns entirely instead of
	// rendering them collapsed.
	HideToolTurns bool
}

// ShouldSkip reports whether a turn's formatted fragment should be left
// out of the document.
func (p SkipPolicy) ShouldSkip(turn types.Turn, fragment string) bool {
	if strings.TrimSpace(fragment) == "" {
		return true
	}
	if p.HideToolTurns && turn.Content.Kind == types.ContentToolUse {
		return true
	}
	return false
}
