// canonctl maintains the benchmark result tables: it canonicalizes model
// names against the ground-truth vocabulary and prunes published JSONL
// result files down to their whitelisted fields.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/EJ-L/code-treat-data/internal/canon"
	"github.com/EJ-L/code-treat-data/internal/logging"
	"github.com/EJ-L/code-treat-data/internal/prune"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "canonctl",
	Short: "Benchmark result table maintenance",
	Long: `canonctl maintains the published benchmark result tables.

canonicalize rewrites raw model identifiers to the canonical vocabulary,
drops rows that are not part of the ground truth, and re-orders the table
by average rank. prune strips non-whitelisted fields out of JSONL result
files before publication.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(logLevel, logFormat)
	},
	SilenceUsage: true,
}

var canonicalizeCmd = &cobra.Command{
	Use:   "canonicalize <input.csv> <output.csv> <ground-truth.csv>",
	Short: "Rewrite model names and reconcile against the ground truth",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := canon.Run(args[0], args[1], args[2], canon.DefaultRules())
		if err != nil {
			return err
		}

		fmt.Printf("retained %d of %d input rows (%d ground-truth names)\n",
			summary.RetainedRows, summary.InputRows, summary.GroundTruthRows)
		return nil
	},
}

var pruneFields []string

var pruneCmd = &cobra.Command{
	Use:   "prune <dir>",
	Short: "Strip non-whitelisted fields from JSONL result files in place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		summaries, err := prune.Dir(args[0], pruneFields)
		if err != nil {
			return err
		}

		for _, s := range summaries {
			fmt.Printf("%s: kept %d records, dropped %d malformed lines\n", s.Path, s.Kept, s.Dropped)
		}
		if len(summaries) == 0 {
			fmt.Println("no .jsonl files found")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")

	pruneCmd.Flags().StringSliceVar(&pruneFields, "fields", prune.DefaultFields,
		"comma-separated field whitelist")

	rootCmd.AddCommand(canonicalizeCmd)
	rootCmd.AddCommand(pruneCmd)
}

func main() {
	// A .env file is optional for the CLI; flags and env both work.
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env file")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", strings.TrimSpace(err.Error()))
		os.Exit(1)
	}
}
