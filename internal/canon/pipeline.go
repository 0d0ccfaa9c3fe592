package canon

// pipeline.go runs the one-shot batch transformation: load the raw results
// table and the ground-truth table, canonicalize model names, reconcile,
// and write the filtered table. There is no partial persisted state; the
// run either completes or fails outright.

import (
	"fmt"
	"log/slog"

	"github.com/EJ-L/code-treat-data/internal/table"
)

// RankColumn is the header of the numeric column used to order output rows.
const RankColumn = "Avg. Rank"

// Summary reports what one pipeline run did.
type Summary struct {
	InputRows       int
	GroundTruthRows int
	RetainedRows    int
}

// Run executes the canonicalization pipeline over the three table paths.
// The output table keeps the input's header row verbatim and contains only
// rows whose canonicalized name appears in the ground truth.
func Run(inputPath, outputPath, truthPath string, rules []Rule) (Summary, error) {
	input, err := table.LoadFile(inputPath)
	if err != nil {
		return Summary{}, fmt.Errorf("load input: %w", err)
	}

	truth, err := table.LoadFile(truthPath)
	if err != nil {
		return Summary{}, fmt.Errorf("load ground truth: %w", err)
	}

	truthSet := NewGroundTruthSet(truth.Column(truth.NameColumn()))

	nameCol := input.NameColumn()
	CanonicalizeRows(input.Rows, nameCol, rules)

	kept := Reconcile(input.Rows, nameCol, RankColumn, truthSet)

	out := &table.Table{Headers: input.Headers, Rows: kept}
	if err := out.SaveFile(outputPath); err != nil {
		return Summary{}, fmt.Errorf("write output: %w", err)
	}

	summary := Summary{
		InputRows:       len(input.Rows),
		GroundTruthRows: len(truthSet),
		RetainedRows:    len(kept),
	}

	slog.Info("canonicalization complete",
		"input_rows", summary.InputRows,
		"ground_truth", summary.GroundTruthRows,
		"retained", summary.RetainedRows,
		"output", outputPath,
	)
	return summary, nil
}
