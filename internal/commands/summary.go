package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yqhr/mfrecon/internal/summary"
	"github.com/yqhr/mfrecon/internal/table"
)

func newSummaryCommand() *cobra.Command {
	var dir string
	var by string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Aggregate cleaned expenses by period and category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runSummary(absDir, by)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")
	cmd.Flags().StringVar(&by, "by", "month", "aggregation period: month or year")

	return cmd
}

func runSummary(root, by string) error {
	path := filepath.Join(root, "output", "expenses.csv")
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("no cleaned expenses at %s; run reconcile first", path)
	}
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	expenses, err := table.ReadTransactions(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var rows []summary.Row
	switch by {
	case "month":
		rows = summary.Monthly(expenses)
	case "year":
		rows = summary.Yearly(expenses)
	default:
		return fmt.Errorf("unknown period %q (want month or year)", by)
	}

	for _, r := range rows {
		fmt.Printf("%-7s  %10s  %5.1f%%  %s\n", r.Period, r.Total.StringFixed(0), r.Share, r.Category)
	}
	return nil
}
