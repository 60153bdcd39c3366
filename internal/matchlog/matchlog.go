// Package matchlog keeps an append-only CSV audit trail of accepted
// expense/refund matches, one row per match, grouped by run id.
package matchlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the match log.
type Entry struct {
	Timestamp time.Time
	RunID     string
	ExpenseID string
	RefundID  string
	Score     float64
	Scorer    string
}

// Header is the CSV header for match-log.csv.
const Header = "timestamp,run_id,expense_id,refund_id,score,scorer"

const (
	numFields    = 6
	logDir       = "logs"
	logFile      = "logs/match-log.csv"
	colTimestamp = 0
	colRunID     = 1
	colExpenseID = 2
	colRefundID  = 3
	colScore     = 4
	colScorer    = 5
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colExpenseID] = e.ExpenseID
	row[colRefundID] = e.RefundID
	row[colScore] = strconv.FormatFloat(e.Score, 'f', 4, 64)
	row[colScorer] = e.Scorer
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	score, err := strconv.ParseFloat(record[colScore], 64)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing score %q: %w", record[colScore], err)
	}

	return Entry{
		Timestamp: ts,
		RunID:     record[colRunID],
		ExpenseID: record[colExpenseID],
		RefundID:  record[colRefundID],
		Score:     score,
		Scorer:    record[colScorer],
	}, nil
}

// Append writes entries to <root>/logs/match-log.csv, creating the file and
// header if needed.
func Append(root string, entries []Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening match log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <root>/logs/match-log.csv.
// Returns an empty slice if the file does not exist.
func Read(root string) ([]Entry, error) {
	path := filepath.Join(root, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening match log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading match log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
