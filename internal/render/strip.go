// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// lineNumberRE matches "cat -n"-style prefixes ("  12→") that file-reading
// tools prepend to their output.
var lineNumberRE = regexp.MustCompile(`(?m)^[ \t]*\d+→`)

// Clean removes terminal escape sequences, stray control characters, and
// line-number prefixes from text. Newlines and tabs survive. Clean is
// idempotent: cleaning already-cleaned text changes nothing.
func Clean(s string) string {
	if s == "" {
		return s
	}
	s = ansi.Strip(s)
	// Strip stacked prefixes to a fixed point so a second Clean is a
	// no-op even when removing one prefix exposes another.
	for {
		stripped := lineNumberRE.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}
	return strings.Map(dropControl, s)
}

func dropControl(r rune) rune {
	if r == '\n' || r == '\t' {
		return r
	}
	if r < 0x20 || r == 0x7f {
		return -1
	}
	return r
}
