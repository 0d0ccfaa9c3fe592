package prune

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFile_KeepsWhitelistedFieldsOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.jsonl")
	input := `{"task":"code-summarization","model_name":"GPT-4o","raw_output":"huge blob","metrics":{"bleu":0.4}}
{"task":"code-summarization","model_name":"Claude-Sonnet-4","internal_id":42}
`
	if err := os.WriteFile(path, []byte(input), 0o644); err != nil {
		t.Fatal(err)
	}

	keep := fieldSet(DefaultFields)
	summary, err := File(path, keep)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	if summary.Kept != 2 || summary.Dropped != 0 {
		t.Errorf("summary = %+v, want 2 kept / 0 dropped", summary)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("rewritten file has %d lines, want 2", len(lines))
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("rewritten line is not JSON: %v", err)
	}
	if _, ok := rec["raw_output"]; ok {
		t.Error("raw_output should have been pruned")
	}
	if rec["model_name"] != "GPT-4o" {
		t.Errorf("model_name = %v, want GPT-4o", rec["model_name"])
	}
	if _, ok := rec["metrics"]; !ok {
		t.Error("metrics should have been kept")
	}
}

func TestFile_DropsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.jsonl")
	input := "{\"task\":\"a\"}\nnot json\n{\"task\":\"b\"}\n"
	if err := os.WriteFile(path, []byte(input), 0o644); err != nil {
		t.Fatal(err)
	}

	summary, err := File(path, fieldSet(DefaultFields))
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	if summary.Kept != 2 || summary.Dropped != 1 {
		t.Errorf("summary = %+v, want 2 kept / 1 dropped", summary)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "not json") {
		t.Error("malformed line should not survive the rewrite")
	}
}

func TestDir_ProcessesOnlyJSONL(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.jsonl": "{\"task\":\"x\",\"junk\":1}\n",
		"b.jsonl": "{\"task\":\"y\"}\n",
		"c.json":  `{"untouched":true}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	summaries, err := Dir(dir, DefaultFields)
	if err != nil {
		t.Fatalf("Dir() error = %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("Dir() processed %d files, want 2", len(summaries))
	}

	// The .json file stays byte-identical.
	data, _ := os.ReadFile(filepath.Join(dir, "c.json"))
	if string(data) != files["c.json"] {
		t.Error("non-jsonl file should not be modified")
	}

	// Junk field pruned from a.jsonl.
	data, _ = os.ReadFile(filepath.Join(dir, "a.jsonl"))
	if strings.Contains(string(data), "junk") {
		t.Error("junk field should have been pruned")
	}
}
