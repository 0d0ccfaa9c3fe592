package web

import (
	"fmt"
	"net/http"

	"github.com/EJ-L/code-treat-data/internal/dataset"
	"github.com/EJ-L/code-treat-data/internal/record"
)

// listResponse is the envelope for a directory listing.
type listResponse struct {
	Files []string `json:"files"`
}

// jsonlResponse is the envelope for a parsed JSONL file. TotalLines and
// TotalEntries differ when malformed lines were skipped, so clients can
// detect a partial parse.
type jsonlResponse struct {
	Data         []map[string]any `json:"data"`
	TotalLines   int              `json:"totalLines"`
	TotalEntries int              `json:"totalEntries"`
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleListDatasets returns the dataset files in one logical directory.
func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	dir := r.URL.Query().Get("dir")
	if dir == "" {
		s.respondError(w, r, fmt.Errorf("%w: missing dir parameter", dataset.ErrInvalidRequest))
		return
	}

	files, err := s.service.ListFiles(r.Context(), dir)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, listResponse{Files: files})
}

// handleReadDataset returns the parsed contents of one dataset file.
// JSONL files get the envelope with parse counters; a JSON file is
// returned as the parsed document itself.
func (s *Server) handleReadDataset(w http.ResponseWriter, r *http.Request) {
	dir := r.URL.Query().Get("dir")
	if dir == "" {
		s.respondError(w, r, fmt.Errorf("%w: missing dir parameter", dataset.ErrInvalidRequest))
		return
	}
	file := r.URL.Query().Get("file")
	if file == "" {
		s.respondError(w, r, fmt.Errorf("%w: missing file parameter", dataset.ErrInvalidRequest))
		return
	}

	result, err := s.service.ReadFile(r.Context(), dir, file)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	switch result.Kind {
	case record.KindJSONL:
		writeJSON(w, jsonlResponse{
			Data:         result.Data,
			TotalLines:   result.TotalLines,
			TotalEntries: result.TotalEntries,
		})
	default:
		writeJSON(w, result.Document)
	}
}
