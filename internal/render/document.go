// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/transcript-engine/pkg/types"
)

// turnSeparator delimits rendered turn blocks.
const turnSeparator = "---\n\n"

// frontmatter is the YAML block prepended to every document.
type frontmatter struct {
	Project   string `yaml:"project"`
	SessionID string `yaml:"session_id,omitempty"`
	Started   string `yaml:"started"`
	Turns     int    `yaml:"turns"`
}

// Document assembles the final Markdown for one session: YAML frontmatter,
// a header built from the metadata, then one role-styled block per
// non-skipped turn, in original file order.
func Document(meta types.SessionMetadata, f *Formatter, policy SkipPolicy, turns []types.Turn) string {
	var b strings.Builder
	writeFrontmatter(&b, meta)
	writeHeader(&b, meta)

	first := true
	for _, t := range turns {
		frag := f.Format(t)
		if policy.ShouldSkip(t, frag) {
			continue
		}
		if !first {
			b.WriteString(turnSeparator)
		}
		first = false
		writeTurn(&b, t, frag)
	}

	return b.String()
}

func writeFrontmatter(b *strings.Builder, meta types.SessionMetadata) {
	fm := frontmatter{
		Project:   meta.Project,
		SessionID: meta.SessionID,
		Started:   meta.Started,
		Turns:     meta.TurnCount,
	}
	data, err := yaml.Marshal(&fm)
	if err != nil {
		// A fixed struct of scalars cannot fail to marshal.
		return
	}
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n\n")
}

func writeHeader(b *strings.Builder, meta types.SessionMetadata) {
	fmt.Fprintf(b, "# 💬 %s\n\n", meta.Title)

	parts := []string{fmt.Sprintf("📁 **%s**", meta.Project)}
	if meta.SessionID != "" {
		parts = append(parts, fmt.Sprintf("🆔 `%s`", shortID(meta.SessionID)))
	}
	if meta.TimeRange != "" {
		parts = append(parts, "⏰ "+meta.TimeRange)
	}
	fmt.Fprintf(b, "<sub>%s</sub>\n\n", strings.Join(parts, " • "))
}

// writeTurn renders one formatted fragment under a role heading. User text
// is blockquoted so questions stand out when skimming.
func writeTurn(b *strings.Builder, t types.Turn, fragment string) {
	b.WriteString(roleHeading(t))
	if t.Role == types.RoleUser && t.Content.Kind == types.ContentText {
		fragment = blockquote(fragment)
	}
	b.WriteString(fragment)
	b.WriteString("\n\n")
}

func roleHeading(t types.Turn) string {
	icon := "⚙️"
	switch t.Role {
	case types.RoleUser:
		icon = "👤"
	case types.RoleAssistant:
		icon = "🤖"
	}
	if t.Timestamp != "" {
		return fmt.Sprintf("### %s <sub>%s</sub>\n\n", icon, formatInstant(t.Timestamp, clockLayout))
	}
	return fmt.Sprintf("### %s\n\n", icon)
}

func blockquote(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}
