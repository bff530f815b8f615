// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert orchestrates the per-file conversion pipeline: parse,
// format, filter, assemble, write. Each file is processed independently;
// one file's failure never affects another.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/transcript-engine/internal/parse"
	"github.com/pdiddy/transcript-engine/internal/render"
	"github.com/pdiddy/transcript-engine/pkg/types"
)

// Pipeline converts session files into Markdown documents under one output
// directory. It tracks output names claimed during the run so colliding
// sessions never silently overwrite each other.
type Pipeline struct {
	formatter *render.Formatter
	policy    render.SkipPolicy
	out       types.OutputConfig
	used      map[string]bool
}

// NewPipeline builds a Pipeline from the grouped configuration.
func NewPipeline(cfg types.PipelineConfig) *Pipeline {
	return &Pipeline{
		formatter: render.NewFormatter(cfg.Format),
		policy:    render.SkipPolicy{HideToolTurns: cfg.Format.HideToolTurns},
		out:       cfg.Output,
		used:      make(map[string]bool),
	}
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertFile converts a single session file, writing the document into
// the output directory. Outputs left by earlier runs are skipped unless
// Force is set.
func (p *Pipeline) ConvertFile(path string, w io.Writer) types.ConversionStatus {
	session, err := parse.File(path)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", filepath.Base(path), err)
		return types.ConversionFailed
	}

	meta := render.ExtractMetadata(session)
	doc := render.Document(meta, p.formatter, p.policy, session.Turns)

	outPath, existed := p.claimPath(meta)
	if existed && !p.out.Force {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", filepath.Base(outPath))
		return types.ConversionSkipped
	}

	if err := os.WriteFile(outPath, []byte(doc), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", filepath.Base(path), err)
		return types.ConversionFailed
	}

	fmt.Fprintf(w, "converted: %s\n", filepath.Base(outPath))
	return types.ConversionDone
}

// ConvertBatch processes session files sequentially, printing per-file
// status to w and returning a summary.
func (p *Pipeline) ConvertBatch(paths []string, w io.Writer) BatchResult {
	var result BatchResult
	for _, path := range paths {
		switch p.ConvertFile(path, w) {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionSkipped:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// claimPath reserves an output path for the document. A name already
// claimed during this run gets a numeric suffix; existed reports whether a
// file from an earlier run occupies the returned path.
func (p *Pipeline) claimPath(meta types.SessionMetadata) (string, bool) {
	stem := outputName(meta)
	name := stem
	for n := 2; p.used[name]; n++ {
		name = fmt.Sprintf("%s-%d", stem, n)
	}
	p.used[name] = true

	path := filepath.Join(p.out.Dir, name+".md")
	_, err := os.Stat(path)
	return path, err == nil
}

// outputName derives the document file stem: project plus the session
// summary when one exists, else the session id prefix.
func outputName(meta types.SessionMetadata) string {
	if meta.Title != "" && meta.Title != render.DefaultTitle {
		return render.SanitizeName(meta.Project + "_" + meta.Title)
	}
	id := meta.SessionID
	if len(id) > 8 {
		id = id[:8]
	}
	if id == "" {
		return meta.Project
	}
	return render.SanitizeName(meta.Project + "_" + id)
}
