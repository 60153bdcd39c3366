package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yqhr/mfrecon/internal/id"
	"github.com/yqhr/mfrecon/internal/importer"
	"github.com/yqhr/mfrecon/internal/matchlog"
	"github.com/yqhr/mfrecon/internal/model"
	"github.com/yqhr/mfrecon/internal/recon"
	"github.com/yqhr/mfrecon/internal/table"
)

func newReconcileCommand() *cobra.Command {
	var dir string
	var format string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Match refunds against expenses and write the cleaned sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runReconcile(absDir, format)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")
	cmd.Flags().StringVar(&format, "format", "", "input CSV format (overrides config)")

	return cmd
}

func runReconcile(root, formatOverride string) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	opts, err := cfg.Matching.Options()
	if err != nil {
		return fmt.Errorf("invalid matching config: %w", err)
	}

	format := cfg.Import.Format
	if formatOverride != "" {
		format = formatOverride
	}
	parser := importer.DefaultRegistry().Get(format)
	if parser == nil {
		return fmt.Errorf("unknown import format %q", format)
	}

	files, err := importer.Scan(root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No CSV files in import/; nothing to do.")
		return nil
	}

	txns, err := parseFiles(parser, files)
	if err != nil {
		return err
	}

	// Contract violations are fatal before reconciliation begins.
	if verrs := recon.ValidateInput(txns); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return fmt.Errorf("input validation failed: %s", strings.Join(msgs, "; "))
	}

	expenses, refunds := recon.Split(txns)
	validExpenses, validRefunds, result := recon.Reconcile(expenses, refunds, opts)

	outDir := filepath.Join(root, "output")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := writeSet(filepath.Join(outDir, "expenses.csv"), validExpenses); err != nil {
		return err
	}
	if err := writeSet(filepath.Join(outDir, "refunds.csv"), validRefunds); err != nil {
		return err
	}

	if len(result.Matches) > 0 {
		if err := appendMatchLog(root, result, opts.Scorer.Name()); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write match log: %v\n", err)
		}
	}

	if cfg.Import.MoveProcessed {
		for _, f := range files {
			if err := importer.MarkProcessed(root, f.Name); err != nil {
				return err
			}
		}
	}

	fmt.Printf("Reconciled %d transactions: %d matched pairs removed, %d expenses and %d refunds remain\n",
		len(txns), len(result.Matches), len(validExpenses), len(validRefunds))
	return nil
}

// parseFiles parses every import file and fills in fallback ids for rows
// whose ID column is empty.
func parseFiles(parser importer.Parser, files []importer.FileInfo) ([]model.Transaction, error) {
	var txns []model.Transaction
	for _, f := range files {
		fh, err := os.Open(f.Path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", f.Name, err)
		}
		parsed, err := parser.Parse(fh)
		fh.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f.Name, err)
		}

		for i := range parsed {
			if parsed[i].ID == "" {
				parsed[i].ID = id.ForRow(f.Name, i+1, parsed[i].Description)
			}
		}
		txns = append(txns, parsed...)
	}
	return txns, nil
}

func writeSet(path string, txns []model.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := table.WriteTransactions(f, txns); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func appendMatchLog(root string, result recon.MatchResult, scorer string) error {
	runID := uuid.New().String()
	now := time.Now().UTC()

	entries := make([]matchlog.Entry, len(result.Matches))
	for i, m := range result.Matches {
		entries[i] = matchlog.Entry{
			Timestamp: now,
			RunID:     runID,
			ExpenseID: m.ExpenseID,
			RefundID:  m.RefundID,
			Score:     m.Score,
			Scorer:    scorer,
		}
	}
	return matchlog.Append(root, entries)
}
