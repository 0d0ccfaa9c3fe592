package canon

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/EJ-L/code-treat-data/internal/table"
)

// GroundTruthSet is the accepted output vocabulary: the set of canonical
// model names extracted from the reference table. Read-only once built.
type GroundTruthSet map[string]struct{}

// NewGroundTruthSet builds the set from a list of canonical names.
func NewGroundTruthSet(names []string) GroundTruthSet {
	s := make(GroundTruthSet, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			s[n] = struct{}{}
		}
	}
	return s
}

// Contains reports exact membership. No partial or fuzzy matching.
func (s GroundTruthSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Reconcile filters rows whose nameColumn value is an exact member of the
// ground-truth set and orders the survivors ascending by the numeric value
// of rankColumn. Rows with a missing or non-numeric rank sort last rather
// than failing. The sort is stable: rows sharing a rank keep their input
// order.
func Reconcile(rows []table.Row, nameColumn, rankColumn string, truth GroundTruthSet) []table.Row {
	kept := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		if truth.Contains(row[nameColumn]) {
			kept = append(kept, row)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return rankOf(kept[i], rankColumn) < rankOf(kept[j], rankColumn)
	})

	return kept
}

// rankOf parses a row's rank value, treating anything unparsable as the
// +Inf sentinel so it sorts after every real rank.
func rankOf(row table.Row, rankColumn string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(row[rankColumn]), 64)
	if err != nil {
		return math.Inf(1)
	}
	return v
}
