// Package prune rewrites JSONL result files in place, keeping only a
// whitelisted set of fields per record. It is used to strip bulky raw
// payloads out of benchmark result files before they are published.
package prune

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFields is the field whitelist for published result records.
var DefaultFields = []string{
	"task",
	"lang",
	"url",
	"prompt_category",
	"prompt_id",
	"model_name",
	"metrics",
}

// FileSummary reports what pruning did to one file.
type FileSummary struct {
	Path    string
	Kept    int // records rewritten
	Dropped int // malformed lines discarded
}

// Dir prunes every .jsonl file directly under dir. Files are processed
// independently; the first file-level failure aborts the run.
func Dir(dir string, fields []string) ([]FileSummary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", dir, err)
	}

	keep := fieldSet(fields)
	var summaries []FileSummary
	for _, entry := range entries {
		if entry.IsDir() || strings.ToLower(filepath.Ext(entry.Name())) != ".jsonl" {
			continue
		}
		s, err := File(filepath.Join(dir, entry.Name()), keep)
		if err != nil {
			return summaries, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// File prunes a single JSONL file in place. Malformed lines are dropped
// with a warning rather than aborting the rewrite; a bad line should not
// void the rest of the file.
func File(path string, keep map[string]struct{}) (FileSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileSummary{}, fmt.Errorf("read %q: %w", path, err)
	}

	summary := FileSummary{Path: path}
	var out strings.Builder

	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			slog.Warn("dropping malformed line during prune",
				"file", path, "line", i+1, "error", err.Error())
			summary.Dropped++
			continue
		}

		filtered := make(map[string]any, len(keep))
		for k, v := range rec {
			if _, ok := keep[k]; ok {
				filtered[k] = v
			}
		}

		encoded, err := json.Marshal(filtered)
		if err != nil {
			return summary, fmt.Errorf("encode record in %q: %w", path, err)
		}
		out.Write(encoded)
		out.WriteString("\n")
		summary.Kept++
	}

	if err := os.WriteFile(path, []byte(out.String()), 0o644); err != nil {
		return summary, fmt.Errorf("rewrite %q: %w", path, err)
	}

	slog.Info("pruned file", "file", path, "kept", summary.Kept, "dropped", summary.Dropped)
	return summary, nil
}

// fieldSet converts a field list into a membership set.
func fieldSet(fields []string) map[string]struct{} {
	s := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		s[f] = struct{}{}
	}
	return s
}
