package dataset

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/EJ-L/code-treat-data/internal/audit"
	"github.com/EJ-L/code-treat-data/internal/pathguard"
	"github.com/EJ-L/code-treat-data/internal/record"
)

// captureRecorder collects audit events for assertions.
type captureRecorder struct {
	events []audit.Event
}

func (c *captureRecorder) Record(_ context.Context, e audit.Event) {
	c.events = append(c.events, e)
}

func newTestService(t *testing.T, maxFileSize int64, maxLines int) (*Service, string, *captureRecorder) {
	t.Helper()

	root := t.TempDir()
	for _, dir := range []string{"code-generation", "code-summarization"} {
		if err := os.Mkdir(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	guard, err := pathguard.New(root, []string{"code-generation", "code-summarization"}, []string{".json", ".jsonl", ".txt"})
	if err != nil {
		t.Fatalf("pathguard.New() error = %v", err)
	}

	rec := &captureRecorder{}
	svc := NewService(guard, record.NewParser(maxLines), rec, maxFileSize, []string{".json", ".jsonl"})
	return svc, root, rec
}

func writeFile(t *testing.T, root, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(root, dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestListFiles(t *testing.T) {
	svc, root, _ := newTestService(t, 1<<20, 100)
	writeFile(t, root, "code-generation", "results.jsonl", "{}")
	writeFile(t, root, "code-generation", "summary.json", "{}")
	writeFile(t, root, "code-generation", "notes.txt", "ignore me")

	files, err := svc.ListFiles(context.Background(), "code-generation")
	if err != nil {
		t.Fatalf("ListFiles() error = %v", err)
	}

	sort.Strings(files)
	want := []string{"results.jsonl", "summary.json"}
	if len(files) != len(want) {
		t.Fatalf("ListFiles() = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("ListFiles()[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestListFiles_EmptyDirectory(t *testing.T) {
	svc, _, _ := newTestService(t, 1<<20, 100)

	files, err := svc.ListFiles(context.Background(), "code-summarization")
	if err != nil {
		t.Fatalf("ListFiles() error = %v, want nil for empty directory", err)
	}
	if len(files) != 0 {
		t.Errorf("ListFiles() = %v, want empty", files)
	}
}

func TestListFiles_RejectedDirectory(t *testing.T) {
	svc, _, rec := newTestService(t, 1<<20, 100)

	_, err := svc.ListFiles(context.Background(), "../etc")
	if !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("ListFiles() error = %v, want ErrInvalidPath", err)
	}

	if len(rec.events) != 1 || rec.events[0].Action != audit.ActionPathRejected {
		t.Errorf("expected one path_rejected audit event, got %v", rec.events)
	}
	// The audit trail keeps the raw input.
	if rec.events[0].Directory != "../etc" {
		t.Errorf("audit Directory = %q, want raw input", rec.events[0].Directory)
	}
}

func TestReadFile_JSONL(t *testing.T) {
	svc, root, _ := newTestService(t, 1<<20, 100)
	writeFile(t, root, "code-generation", "results.jsonl",
		"{\"model_name\":\"a\"}\nbad line\n{\"model_name\":\"c\"}\n")

	res, err := svc.ReadFile(context.Background(), "code-generation", "results.jsonl")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if res.TotalLines != 3 || res.TotalEntries != 2 {
		t.Errorf("TotalLines/TotalEntries = %d/%d, want 3/2", res.TotalLines, res.TotalEntries)
	}
}

func TestReadFile_JSON(t *testing.T) {
	svc, root, _ := newTestService(t, 1<<20, 100)
	writeFile(t, root, "code-generation", "summary.json", `{"task":"code generation"}`)

	res, err := svc.ReadFile(context.Background(), "code-generation", "summary.json")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	doc, ok := res.Document.(map[string]any)
	if !ok || doc["task"] != "code generation" {
		t.Errorf("Document = %v, want parsed JSON object", res.Document)
	}
}

func TestReadFile_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t, 1<<20, 100)

	_, err := svc.ReadFile(context.Background(), "code-generation", "missing.json")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("ReadFile() error = %v, want ErrNotFound", err)
	}
}

func TestReadFile_TooLarge(t *testing.T) {
	svc, root, rec := newTestService(t, 8, 100)
	writeFile(t, root, "code-generation", "big.json", `{"way":"over eight bytes"}`)

	_, err := svc.ReadFile(context.Background(), "code-generation", "big.json")
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("ReadFile() error = %v, want ErrTooLarge", err)
	}

	// The size check rejects before any parse happens.
	if len(rec.events) != 1 || rec.events[0].Action != audit.ActionCapExceeded {
		t.Errorf("expected one cap_exceeded audit event, got %v", rec.events)
	}
}

func TestReadFile_TooManyLines(t *testing.T) {
	svc, root, _ := newTestService(t, 1<<20, 2)
	writeFile(t, root, "code-generation", "big.jsonl", "{}\n{}\n{}\n")

	_, err := svc.ReadFile(context.Background(), "code-generation", "big.jsonl")
	if !errors.Is(err, ErrTooManyLines) {
		t.Fatalf("ReadFile() error = %v, want ErrTooManyLines", err)
	}
}

func TestReadFile_UnsupportedType(t *testing.T) {
	// The guard allows .txt here, but no parser handles it.
	svc, root, _ := newTestService(t, 1<<20, 100)
	writeFile(t, root, "code-generation", "notes.txt", "hello")

	_, err := svc.ReadFile(context.Background(), "code-generation", "notes.txt")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("ReadFile() error = %v, want ErrUnsupportedType", err)
	}
}

func TestReadFile_ParseFailure(t *testing.T) {
	svc, root, _ := newTestService(t, 1<<20, 100)
	writeFile(t, root, "code-generation", "broken.json", `{"oops":`)

	_, err := svc.ReadFile(context.Background(), "code-generation", "broken.json")
	if !errors.Is(err, ErrParseFailure) {
		t.Fatalf("ReadFile() error = %v, want ErrParseFailure", err)
	}
}

func TestReadFile_RejectedTraversal(t *testing.T) {
	svc, _, rec := newTestService(t, 1<<20, 100)

	_, err := svc.ReadFile(context.Background(), "code-generation", "../secrets.json")
	if !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("ReadFile() error = %v, want ErrInvalidPath", err)
	}
	if len(rec.events) != 1 || rec.events[0].Action != audit.ActionPathRejected {
		t.Errorf("expected a path_rejected audit event, got %v", rec.events)
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
		code string
	}{
		{ErrInvalidRequest, http.StatusBadRequest, "REQ001"},
		{ErrInvalidPath, http.StatusForbidden, "PATH001"},
		{ErrNotFound, http.StatusNotFound, "FILE001"},
		{ErrTooLarge, http.StatusRequestEntityTooLarge, "FILE002"},
		{ErrTooManyLines, http.StatusRequestEntityTooLarge, "FILE003"},
		{ErrUnsupportedType, http.StatusBadRequest, "FILE004"},
		{ErrParseFailure, http.StatusBadRequest, "PARSE001"},
		{errors.New("disk exploded"), http.StatusInternalServerError, "ERR000"},
	}

	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
		if got := MapError(tt.err).Code; got != tt.code {
			t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got, tt.code)
		}
	}
}
