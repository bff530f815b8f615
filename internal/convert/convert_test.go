// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/transcript-engine/pkg/types"
)

// writeSession writes a small JSONL session file and returns its path.
func writeSession(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const basicSession = `{"type":"summary","summary":"Fix the build"}
{"type":"user","timestamp":"2026-03-01T09:15:00Z","cwd":"/home/dev/myproj","sessionId":"abc-123","message":{"role":"user","content":"Hello"}}
{"type":"assistant","timestamp":"2026-03-01T09:15:10Z","message":{"role":"assistant","content":[{"type":"text","text":"Hi!"}]}}
`

func newTestPipeline(outDir string, force bool) *Pipeline {
	return NewPipeline(types.PipelineConfig{
		Output: types.OutputConfig{Dir: outDir, Force: force},
	})
}

func TestConvertFile(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	in := writeSession(t, tmpDir, "session.jsonl", basicSession)

	p := newTestPipeline(outDir, false)
	var log bytes.Buffer

	status := p.ConvertFile(in, &log)
	if status != types.ConversionDone {
		t.Fatalf("status = %q, want %q", status, types.ConversionDone)
	}
	if !strings.Contains(log.String(), "converted:") {
		t.Errorf("log output %q missing converted line", log.String())
	}

	outPath := filepath.Join(outDir, "myproj_Fix the build.md")
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	doc := string(data)

	if !strings.Contains(doc, "# 💬 Fix the build") {
		t.Errorf("document missing title:\n%s", doc)
	}
	if !strings.Contains(doc, "> Hello") {
		t.Errorf("document missing user turn:\n%s", doc)
	}
	if !strings.Contains(doc, "Hi!") {
		t.Errorf("document missing assistant turn:\n%s", doc)
	}
}

func TestConvertFile_UnreadableInput(t *testing.T) {
	outDir := t.TempDir()
	p := newTestPipeline(outDir, false)
	var log bytes.Buffer

	status := p.ConvertFile(filepath.Join(outDir, "does-not-exist.jsonl"), &log)
	if status != types.ConversionFailed {
		t.Fatalf("status = %q, want %q", status, types.ConversionFailed)
	}
	if !strings.Contains(log.String(), "failed:") {
		t.Errorf("log output %q missing failure line", log.String())
	}
}

func TestConvertFile_SkipsExistingOutput(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	in := writeSession(t, tmpDir, "session.jsonl", basicSession)

	existing := filepath.Join(outDir, "myproj_Fix the build.md")
	if err := os.WriteFile(existing, []byte("old content"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := newTestPipeline(outDir, false)
	var log bytes.Buffer
	status := p.ConvertFile(in, &log)
	if status != types.ConversionSkipped {
		t.Fatalf("status = %q, want %q", status, types.ConversionSkipped)
	}

	data, _ := os.ReadFile(existing)
	if string(data) != "old content" {
		t.Error("existing output should not be touched without --force")
	}
}

func TestConvertFile_ForceOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	in := writeSession(t, tmpDir, "session.jsonl", basicSession)

	existing := filepath.Join(outDir, "myproj_Fix the build.md")
	if err := os.WriteFile(existing, []byte("old content"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := newTestPipeline(outDir, true)
	var log bytes.Buffer
	if status := p.ConvertFile(in, &log); status != types.ConversionDone {
		t.Fatalf("status = %q, want %q", status, types.ConversionDone)
	}

	data, _ := os.ReadFile(existing)
	if !strings.Contains(string(data), "Fix the build") {
		t.Error("force should rewrite the existing output")
	}
}

func TestConvertBatch_CollidingSessions(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}

	// Two different sessions that map to the same output name.
	a := writeSession(t, tmpDir, "a.jsonl", basicSession)
	b := writeSession(t, tmpDir, "b.jsonl", basicSession)

	p := newTestPipeline(outDir, false)
	var log bytes.Buffer
	result := p.ConvertBatch([]string{a, b}, &log)

	if result.Converted != 2 {
		t.Fatalf("converted = %d, want 2 (no silent overwrite)", result.Converted)
	}
	if _, err := os.Stat(filepath.Join(outDir, "myproj_Fix the build.md")); err != nil {
		t.Error("first output missing")
	}
	if _, err := os.Stat(filepath.Join(outDir, "myproj_Fix the build-2.md")); err != nil {
		t.Error("second output should carry a disambiguating suffix")
	}
}

func TestConvertBatch_MixedOutcomes(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}

	good := writeSession(t, tmpDir, "good.jsonl", basicSession)
	missing := filepath.Join(tmpDir, "missing.jsonl")

	p := newTestPipeline(outDir, false)
	var log bytes.Buffer
	result := p.ConvertBatch([]string{good, missing}, &log)

	if result.Converted != 1 || result.Failed != 1 {
		t.Errorf("result = %+v, want 1 converted / 1 failed", result)
	}
	if !result.HasFailures() {
		t.Error("HasFailures should be true")
	}
	if result.Total() != 2 {
		t.Errorf("total = %d, want 2", result.Total())
	}
	if !strings.Contains(log.String(), "Batch summary:") {
		t.Error("batch output should contain a summary line")
	}
}

func TestConvertFile_MalformedLinesRecovered(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}

	content := "{broken json\n" +
		`{"type":"user","cwd":"/home/dev/proj","sessionId":"xyz-789","message":{"role":"user","content":"survivor"}}` + "\n"
	in := writeSession(t, tmpDir, "session.jsonl", content)

	p := newTestPipeline(outDir, false)
	var log bytes.Buffer
	if status := p.ConvertFile(in, &log); status != types.ConversionDone {
		t.Fatalf("status = %q, want %q", status, types.ConversionDone)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "proj_xyz-789.md"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "survivor") {
		t.Errorf("valid line after malformed one should survive:\n%s", data)
	}
}

func TestConvertFile_NoValidTurns(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	in := writeSession(t, tmpDir, "empty.jsonl", "not json\nstill not json\n")

	p := newTestPipeline(outDir, false)
	var log bytes.Buffer
	if status := p.ConvertFile(in, &log); status != types.ConversionDone {
		t.Fatalf("status = %q, want %q", status, types.ConversionDone)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "unknown-project.md"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "turns: 0") {
		t.Errorf("header should report zero turns:\n%s", data)
	}
}
