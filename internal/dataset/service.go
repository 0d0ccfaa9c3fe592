// Package dataset orchestrates PathGuard and the record parser to answer
// dataset listing and read requests over a constrained directory tree.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/EJ-L/code-treat-data/internal/audit"
	"github.com/EJ-L/code-treat-data/internal/logging"
	"github.com/EJ-L/code-treat-data/internal/pathguard"
	"github.com/EJ-L/code-treat-data/internal/record"
)

// Service serves benchmark result files from the allow-listed directories.
// All methods are synchronous per call and safe for concurrent use; the
// served files are read-only from this subsystem's perspective.
type Service struct {
	guard       *pathguard.Guard
	parser      *record.Parser
	auditor     audit.Recorder
	maxFileSize int64
	extensions  []string
}

// NewService wires a Service from its collaborators. Extensions control
// which entries ListFiles reports; lowercased, with dot.
func NewService(guard *pathguard.Guard, parser *record.Parser, auditor audit.Recorder, maxFileSize int64, extensions []string) *Service {
	exts := make([]string, len(extensions))
	for i, e := range extensions {
		exts[i] = strings.ToLower(e)
	}
	return &Service{
		guard:       guard,
		parser:      parser,
		auditor:     auditor,
		maxFileSize: maxFileSize,
		extensions:  exts,
	}
}

// ListFiles returns the dataset file names in a logical directory. Entries
// whose extension is not recognized are filtered out. An empty directory
// yields an empty slice, not an error.
func (s *Service) ListFiles(ctx context.Context, directory string) ([]string, error) {
	dir, err := s.guard.Resolve(directory, "")
	if err != nil {
		s.auditor.Record(ctx, audit.NewEvent(audit.ActionPathRejected, directory, "", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory %q", ErrNotFound, directory)
		}
		return nil, fmt.Errorf("list %q: %w", directory, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, allowed := range s.extensions {
			if ext == allowed {
				files = append(files, entry.Name())
				break
			}
		}
	}

	logging.FromContext(ctx).Debug("listed dataset directory",
		"directory", directory, "files", len(files))
	return files, nil
}

// ReadFile validates, reads and parses one dataset file. The size cap is
// checked against file metadata before any bytes are read into memory, so
// an oversized file is rejected without expensive work.
func (s *Service) ReadFile(ctx context.Context, directory, file string) (*record.Result, error) {
	if file == "" {
		return nil, fmt.Errorf("%w: missing file name", ErrInvalidRequest)
	}

	path, err := s.guard.Resolve(directory, file)
	if err != nil {
		s.auditor.Record(ctx, audit.NewEvent(audit.ActionPathRejected, directory, file, err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q in %q", ErrNotFound, file, directory)
		}
		return nil, fmt.Errorf("stat %q: %w", file, err)
	}

	if info.Size() > s.maxFileSize {
		s.auditor.Record(ctx, audit.NewEvent(audit.ActionCapExceeded, directory, file,
			fmt.Sprintf("size %d exceeds cap %d", info.Size(), s.maxFileSize)))
		return nil, fmt.Errorf("%w: %q is %d bytes, cap is %d", ErrTooLarge, file, info.Size(), s.maxFileSize)
	}

	kind, ok := record.KindForExtension(filepath.Ext(file))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, filepath.Ext(file))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", file, err)
	}

	result, err := s.parser.Parse(file, data, kind)
	if err != nil {
		switch {
		case errors.Is(err, record.ErrTooManyLines):
			s.auditor.Record(ctx, audit.NewEvent(audit.ActionCapExceeded, directory, file, err.Error()))
			return nil, fmt.Errorf("%w: %v", ErrTooManyLines, err)
		case errors.Is(err, record.ErrMalformed):
			return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
		default:
			return nil, fmt.Errorf("parse %q: %w", file, err)
		}
	}

	s.auditor.Record(ctx, audit.NewEvent(audit.ActionFileServed, directory, file, ""))

	logging.FromContext(ctx).Info("dataset file served",
		"directory", directory,
		"file", file,
		"kind", kind.String(),
		"total_lines", result.TotalLines,
		"total_entries", result.TotalEntries,
	)
	return result, nil
}
