// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse decodes JSONL session log files into Sessions. Decoding is
// best-effort: lines that fail to parse are skipped, never fatal, and no
// schema is enforced beyond duck-typed field presence.
package parse

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/transcript-engine/pkg/types"
)

// Line buffer sizes. Tool outputs routinely exceed the bufio default.
const (
	initialBuf = 256 * 1024
	maxLineBuf = 10 * 1024 * 1024
)

// rawLine mirrors the fields of one log line that the pipeline reads.
// Everything else in the line is ignored. Content may live either under
// message.content (Claude Code format) or at the top level.
type rawLine struct {
	Type      string          `json:"type"`
	Role      string          `json:"role"`
	Content   json.RawMessage `json:"content"`
	Summary   string          `json:"summary"`
	CWD       string          `json:"cwd"`
	SessionID string          `json:"sessionId"`
	Timestamp string          `json:"timestamp"`
	Message   struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	} `json:"message"`
}

// contentBlock is one element of an array-form message content. The same
// shape also covers a bare tool-invocation object.
type contentBlock struct {
	Type    string          `json:"type"`
	Text    string          `json:"text"`
	Name    string          `json:"name"`
	Input   json.RawMessage `json:"input"`
	Content json.RawMessage `json:"content"`
	IsError bool            `json:"is_error"`
}

// File opens and parses one session file.
func File(path string) (*types.Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	s := Read(f)
	s.Path = path
	return s, nil
}

// Read decodes a session from r. Malformed lines are skipped silently,
// and an oversized line is just one more malformed line: it is consumed
// and dropped without ending the file. A fully unparseable stream yields
// a Session with zero Turns, not an error.
func Read(r io.Reader) *types.Session {
	br := bufio.NewReaderSize(r, initialBuf)

	s := &types.Session{}
	for {
		data, tooLong, err := readLine(br)
		if !tooLong {
			decodeLine(s, data)
		}
		if err != nil {
			// io.EOF, or a read failure: either way the turns decoded
			// so far still form a valid session.
			return s
		}
	}
}

// readLine reads one newline-delimited line. A line longer than
// maxLineBuf is consumed to its end and reported via tooLong so the
// caller can skip just that line and continue with the next.
func readLine(br *bufio.Reader) (line []byte, tooLong bool, err error) {
	for {
		frag, err := br.ReadSlice('\n')
		if !tooLong {
			line = append(line, frag...)
			if len(line) > maxLineBuf {
				tooLong = true
				line = nil
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return line, tooLong, err
	}
}

// decodeLine folds one log line into the session. Lines that fail to
// decode contribute nothing.
func decodeLine(s *types.Session, data []byte) {
	var line rawLine
	if err := json.Unmarshal(data, &line); err != nil {
		return
	}

	// Summary lines title the session; they carry no turn content.
	if line.Type == "summary" {
		if s.Summary == "" {
			s.Summary = line.Summary
		}
		return
	}

	if line.CWD != "" && s.CWD == "" {
		s.CWD = line.CWD
	}
	if line.SessionID != "" && s.SessionID == "" {
		s.SessionID = line.SessionID
	}
	if line.Timestamp != "" {
		if s.FirstTimestamp == "" {
			s.FirstTimestamp = line.Timestamp
		}
		s.LastTimestamp = line.Timestamp
	}

	content := line.Message.Content
	if len(content) == 0 {
		content = line.Content
	}
	contents := decodeContent(content)

	role := normalizeRole(line)
	if role == "" {
		// Lines with no recognizable role (snapshots, hook records)
		// only survive when they carry real content.
		if isBlank(contents) {
			return
		}
		role = types.RoleSystem
	}

	for _, c := range contents {
		s.Turns = append(s.Turns, types.Turn{
			Role:      role,
			Timestamp: line.Timestamp,
			Content:   c,
		})
	}
}

// normalizeRole maps the line's role/type discriminators onto the three
// roles the pipeline knows. Unknown values yield "".
func normalizeRole(line rawLine) string {
	role := line.Message.Role
	if role == "" {
		role = line.Role
	}
	if role == "" {
		role = line.Type
	}
	switch role {
	case types.RoleUser, types.RoleAssistant, types.RoleSystem:
		return role
	case "tool":
		return types.RoleSystem
	}
	return ""
}

// decodeContent turns a message content payload into Content values. The
// payload may be a plain string, an array of typed blocks, or a single
// block object; anything unrecognized falls back to an empty text content.
func decodeContent(raw json.RawMessage) []types.Content {
	if len(raw) == 0 {
		return []types.Content{{Kind: types.ContentText}}
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return []types.Content{{Kind: types.ContentText, Text: str}}
	}

	var blocks []contentBlock
	if err := json.Unmarshal(raw, &blocks); err == nil {
		var contents []types.Content
		for _, b := range blocks {
			if c, ok := blockContent(b); ok {
				contents = append(contents, c)
			}
		}
		if len(contents) > 0 {
			return contents
		}
		return []types.Content{{Kind: types.ContentText}}
	}

	var block contentBlock
	if err := json.Unmarshal(raw, &block); err == nil {
		if c, ok := blockContent(block); ok {
			return []types.Content{c}
		}
	}

	return []types.Content{{Kind: types.ContentText}}
}

// blockContent converts one decoded block into a Content value. A block
// without a type but with a tool name is treated as a tool invocation.
func blockContent(b contentBlock) (types.Content, bool) {
	switch b.Type {
	case "text":
		return types.Content{Kind: types.ContentText, Text: b.Text}, true
	case "tool_use":
		return types.Content{Kind: types.ContentToolUse, ToolName: b.Name, ToolInput: b.Input}, true
	case "tool_result":
		return types.Content{Kind: types.ContentToolResult, Output: toolResultText(b.Content), IsError: b.IsError}, true
	case "":
		if b.Name != "" {
			return types.Content{Kind: types.ContentToolUse, ToolName: b.Name, ToolInput: b.Input}, true
		}
		if b.Text != "" {
			return types.Content{Kind: types.ContentText, Text: b.Text}, true
		}
	}
	return types.Content{}, false
}

// toolResultText flattens a tool_result payload. String payloads pass
// through, block arrays contribute their text parts, and anything else is
// rendered as indented JSON.
func toolResultText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}

	var blocks []contentBlock
	if err := json.Unmarshal(raw, &blocks); err == nil {
		var parts []string
		for _, b := range blocks {
			if b.Type == "text" && b.Text != "" {
				parts = append(parts, b.Text)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "\n")
		}
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// isBlank reports whether contents is nothing but empty text.
func isBlank(contents []types.Content) bool {
	for _, c := range contents {
		if c.Kind != types.ContentText || strings.TrimSpace(c.Text) != "" {
			return false
		}
	}
	return true
}
