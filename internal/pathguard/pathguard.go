// Package pathguard validates dataset file requests against a fixed
// directory allow-list before any filesystem operation happens.
//
// Defense is layered on purpose: traversal sequences are stripped and
// separators normalized first, then the allow-list and filename checks run
// on the sanitized values, and finally the fully resolved path is verified
// to still sit under the allow-listed directory. Each layer would catch
// most attacks alone; together they also cover encoding tricks that slip
// past a single string check.
package pathguard

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// Directories is the fixed set of logical dataset directories the service
// will ever resolve. It is compiled in rather than discovered at runtime so
// request input can never influence it.
var Directories = []string{
	"code-generation",
	"code-summarization",
	"code-translation",
	"code-review",
	"vulnerability-detection",
	"unit-test-generation",
}

// ErrRejected is the sentinel for every guard rejection. Callers should
// match with errors.Is; the wrapped message carries the specific reason.
var ErrRejected = errors.New("path rejected")

// Guard validates directory/file requests against an allow-list rooted at
// a single base directory. A Guard is immutable after construction and safe
// for concurrent use.
type Guard struct {
	root    string
	allowed map[string]struct{}
	exts    map[string]struct{}
}

// New creates a Guard serving the given logical directories under root.
// Extensions are matched case-insensitively and must include the dot.
func New(root string, directories, extensions []string) (*Guard, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, err)
	}

	if len(directories) == 0 {
		return nil, errors.New("directory allow-list must not be empty")
	}

	allowed := make(map[string]struct{}, len(directories))
	for _, d := range directories {
		allowed[d] = struct{}{}
	}

	exts := make(map[string]struct{}, len(extensions))
	for _, e := range extensions {
		exts[strings.ToLower(e)] = struct{}{}
	}

	return &Guard{root: abs, allowed: allowed, exts: exts}, nil
}

// Validate checks a directory and optional file name against the guard's
// policy. An empty file validates the directory alone. On rejection it
// emits a structured warning carrying the raw inputs and returns an error
// wrapping ErrRejected; no filesystem operation is performed.
func (g *Guard) Validate(directory, file string) error {
	if err := g.check(directory, file); err != nil {
		slog.Warn("path rejected",
			"raw_directory", directory,
			"raw_file", file,
			"reason", err.Error(),
		)
		return err
	}
	return nil
}

// Resolve validates the request and returns the absolute filesystem path
// for it. With an empty file it returns the directory path.
func (g *Guard) Resolve(directory, file string) (string, error) {
	if err := g.Validate(directory, file); err != nil {
		return "", err
	}
	if file == "" {
		return filepath.Join(g.root, sanitize(directory)), nil
	}
	return filepath.Join(g.root, sanitize(directory), sanitize(file)), nil
}

// check runs the layered validation. Split from Validate so the rejection
// logging happens in exactly one place.
func (g *Guard) check(directory, file string) error {
	dir := sanitize(directory)

	if dir == "" {
		return fmt.Errorf("%w: empty directory", ErrRejected)
	}

	// Exact allow-list membership, never a prefix match.
	if _, ok := g.allowed[dir]; !ok {
		return fmt.Errorf("%w: directory %q not in allow-list", ErrRejected, dir)
	}

	if file != "" {
		name := sanitize(file)

		// A file must be a bare name with no subdirectory component.
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("%w: file %q contains a path separator", ErrRejected, name)
		}

		ext := strings.ToLower(filepath.Ext(name))
		if _, ok := g.exts[ext]; !ok {
			return fmt.Errorf("%w: extension %q not allowed", ErrRejected, ext)
		}

		// Re-verify the resolved location. The string checks above should
		// already guarantee this, but symlinks or encoding tricks that
		// survived them must still be stopped here.
		base := filepath.Join(g.root, dir)
		resolved, err := filepath.Abs(filepath.Join(base, name))
		if err != nil {
			return fmt.Errorf("%w: cannot resolve %q", ErrRejected, name)
		}
		if !strings.HasPrefix(resolved, base+string(filepath.Separator)) {
			return fmt.Errorf("%w: resolved path escapes %q", ErrRejected, dir)
		}
	}

	return nil
}

// Root returns the absolute base directory the guard serves from.
func (g *Guard) Root() string {
	return g.root
}

// sanitize strips traversal sequences and backslash separators from a
// request input. Run before every other check so later comparisons see a
// normalized value.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\\", "/")
	for strings.Contains(s, "..") {
		s = strings.ReplaceAll(s, "..", "")
	}
	return s
}
