// Package record turns raw dataset file bytes into a uniform record
// sequence for JSON and JSONL inputs.
//
// The two formats fail differently on purpose. A JSON document is
// all-or-nothing: a syntax error aborts the read and no partial data is
// returned. A JSONL file tolerates individual bad lines: each line parses
// independently, malformed lines are logged and skipped, and the result
// reports line and entry totals so callers can detect a partial parse.
// One bad line must not void an entire dataset.
package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Kind identifies the on-disk dataset format.
type Kind int

const (
	KindJSON Kind = iota
	KindJSONL
)

// String returns the conventional extension name for the kind.
func (k Kind) String() string {
	switch k {
	case KindJSON:
		return "json"
	case KindJSONL:
		return "jsonl"
	default:
		return "unknown"
	}
}

// KindForExtension maps a file extension (with dot, any case) to its Kind.
// The second return is false for extensions this parser cannot handle.
func KindForExtension(ext string) (Kind, bool) {
	switch strings.ToLower(ext) {
	case ".json":
		return KindJSON, true
	case ".jsonl":
		return KindJSONL, true
	default:
		return 0, false
	}
}

// ErrTooManyLines is returned when a JSONL file exceeds the configured
// line cap. The check runs before any line is parsed.
var ErrTooManyLines = errors.New("too many lines")

// ErrMalformed is the sentinel for whole-document parse failures.
var ErrMalformed = errors.New("malformed content")

// Result is the outcome of parsing one file.
//
// For JSONL, Data holds the successfully parsed records and TotalLines /
// TotalEntries report non-blank input lines versus parsed entries; the two
// differ when malformed lines were skipped. For JSON, Document holds the
// parsed document and the counters are zero.
type Result struct {
	Kind         Kind
	Data         []map[string]any
	Document     any
	TotalLines   int
	TotalEntries int
}

// Parser converts file bytes into records, enforcing the JSONL line cap.
// A Parser is stateless and safe for concurrent use.
type Parser struct {
	maxLines int
}

// NewParser creates a parser that accepts at most maxLines non-blank JSONL
// lines per file.
func NewParser(maxLines int) *Parser {
	return &Parser{maxLines: maxLines}
}

// Parse parses data as the given kind. The name is used only in errors and
// log entries so callers can identify the offending file.
func (p *Parser) Parse(name string, data []byte, kind Kind) (*Result, error) {
	switch kind {
	case KindJSON:
		return parseJSON(name, data)
	case KindJSONL:
		return p.parseJSONL(name, data)
	default:
		return nil, fmt.Errorf("%w: unknown kind %d for %q", ErrMalformed, kind, name)
	}
}

// parseJSON parses the whole buffer as a single document.
func parseJSON(name string, data []byte) (*Result, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON in %q: %v", ErrMalformed, name, err)
	}
	return &Result{Kind: KindJSON, Document: doc}, nil
}

// parseJSONL splits the buffer on newlines and parses each non-blank line
// independently.
func (p *Parser) parseJSONL(name string, data []byte) (*Result, error) {
	lines := strings.Split(string(data), "\n")

	// Cheap pre-check: count non-blank lines and fail before parsing
	// anything if the cap is exceeded.
	nonBlank := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		nonBlank = append(nonBlank, line)
	}
	if p.maxLines > 0 && len(nonBlank) > p.maxLines {
		return nil, fmt.Errorf("%w: %q has %d lines, cap is %d",
			ErrTooManyLines, name, len(nonBlank), p.maxLines)
	}

	result := &Result{
		Kind:       KindJSONL,
		Data:       make([]map[string]any, 0, len(nonBlank)),
		TotalLines: len(nonBlank),
	}

	for i, line := range nonBlank {
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			// Skip, don't abort: the rest of the batch still parses.
			slog.Warn("skipping malformed JSONL line",
				"file", name,
				"line", i+1,
				"error", err.Error(),
			)
			continue
		}
		result.Data = append(result.Data, rec)
	}

	result.TotalEntries = len(result.Data)
	return result, nil
}
