package pathguard

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestGuard(t *testing.T) *Guard {
	t.Helper()
	g, err := New(t.TempDir(), []string{"code-generation", "code-summarization"}, []string{".json", ".jsonl"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

func TestValidate_Directory(t *testing.T) {
	g := newTestGuard(t)

	tests := []struct {
		name      string
		directory string
		wantOK    bool
	}{
		{"allowed directory", "code-generation", true},
		{"second allowed directory", "code-summarization", true},
		{"unknown directory", "secrets", false},
		{"empty directory", "", false},
		{"prefix of allowed is not allowed", "code", false},
		{"allowed with traversal prefix", "../code-generation", false},
		{"traversal only", "../../etc", false},
		{"backslash traversal", `..\..\code-generation`, false},
		{"absolute path", "/etc/passwd", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.Validate(tt.directory, "")
			if tt.wantOK && err != nil {
				t.Errorf("Validate(%q) = %v, want nil", tt.directory, err)
			}
			if !tt.wantOK {
				if err == nil {
					t.Fatalf("Validate(%q) = nil, want rejection", tt.directory)
				}
				if !errors.Is(err, ErrRejected) {
					t.Errorf("Validate(%q) error = %v, want ErrRejected", tt.directory, err)
				}
			}
		})
	}
}

func TestValidate_File(t *testing.T) {
	g := newTestGuard(t)

	tests := []struct {
		name   string
		file   string
		wantOK bool
	}{
		{"plain json file", "results.json", true},
		{"plain jsonl file", "results.jsonl", true},
		{"uppercase extension", "RESULTS.JSONL", true},
		{"forward slash in name", "sub/results.json", false},
		{"backslash in name", `sub\results.json`, false},
		{"disallowed extension", "results.txt", false},
		{"no extension", "results", false},
		{"dotfile only extension check", ".json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.Validate("code-generation", tt.file)
			if tt.wantOK && err != nil {
				t.Errorf("Validate(file=%q) = %v, want nil", tt.file, err)
			}
			if !tt.wantOK && !errors.Is(err, ErrRejected) {
				t.Errorf("Validate(file=%q) error = %v, want ErrRejected", tt.file, err)
			}
		})
	}
}

func TestValidate_RejectsFileForDisallowedDirectory(t *testing.T) {
	g := newTestGuard(t)

	// The directory check fires regardless of the file argument.
	for _, file := range []string{"", "ok.json", "../escape.json"} {
		if err := g.Validate("not-a-dataset", file); !errors.Is(err, ErrRejected) {
			t.Errorf("Validate(not-a-dataset, %q) error = %v, want ErrRejected", file, err)
		}
	}
}

func TestResolve(t *testing.T) {
	g := newTestGuard(t)

	got, err := g.Resolve("code-generation", "results.jsonl")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := filepath.Join(g.Root(), "code-generation", "results.jsonl")
	if got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}

	if _, err := g.Resolve("code-generation", "../../etc/passwd.json"); !errors.Is(err, ErrRejected) {
		t.Errorf("Resolve(traversal) error = %v, want ErrRejected", err)
	}
}

func TestResolve_DirectoryOnly(t *testing.T) {
	g := newTestGuard(t)

	got, err := g.Resolve("code-summarization", "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := filepath.Join(g.Root(), "code-summarization")
	if got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestNew_EmptyAllowList(t *testing.T) {
	if _, err := New(t.TempDir(), nil, []string{".json"}); err == nil {
		t.Fatal("New() with empty allow-list should fail")
	}
}
