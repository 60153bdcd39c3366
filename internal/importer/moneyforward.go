package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yqhr/mfrecon/internal/model"
)

// MoneyForwardParser parses MoneyForward ME transaction CSV exports.
// Columns are located by their Japanese header names, so column order does
// not matter. A missing required column is an error; a malformed date or
// amount in a single row leaves that field null and keeps the row.
type MoneyForwardParser struct{}

// Japanese header names of the MoneyForward export.
const (
	colInclude     = "計算対象"
	colDate        = "日付"
	colDescription = "内容"
	colAmount      = "金額（円）"
	colInstitution = "保有金融機関"
	colCategory    = "大項目"
	colSubcategory = "中項目"
	colMemo        = "メモ"
	colTransfer    = "振替"
	colID          = "ID"
)

var requiredColumns = []string{
	colInclude, colDate, colDescription, colAmount, colInstitution,
	colCategory, colSubcategory, colMemo, colTransfer, colID,
}

const (
	mfDateFormat    = "2006/01/02"
	mfDateFormatISO = "2006-01-02"
)

// Format returns the parser name.
func (p *MoneyForwardParser) Format() string { return "moneyforward" }

// Parse reads a MoneyForward CSV and returns Transactions.
func (p *MoneyForwardParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // header decides

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading MoneyForward CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV: missing header row")
	}

	cols, err := mapColumns(records[0])
	if err != nil {
		return nil, err
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		if len(rec) < len(records[0]) {
			return nil, fmt.Errorf("row %d: expected %d fields, got %d", i+2, len(records[0]), len(rec))
		}
		txns = append(txns, parseRow(rec, cols))
	}
	return txns, nil
}

// mapColumns resolves each required Japanese header to its index.
func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return cols, nil
}

func parseRow(rec []string, cols map[string]int) model.Transaction {
	t := model.Transaction{
		ID:           strings.TrimSpace(rec[cols[colID]]),
		Description:  rec[cols[colDescription]],
		Include:      rec[cols[colInclude]] == "1",
		Institution:  rec[cols[colInstitution]],
		CategoryMain: rec[cols[colCategory]],
		CategorySub:  rec[cols[colSubcategory]],
		Memo:         rec[cols[colMemo]],
		Transfer:     rec[cols[colTransfer]],
	}

	if d, err := parseDate(rec[cols[colDate]]); err == nil {
		t.Date = &d
	}

	raw := strings.ReplaceAll(strings.TrimSpace(rec[cols[colAmount]]), ",", "")
	if amount, err := decimal.NewFromString(raw); err == nil {
		t.Amount = decimal.NullDecimal{Decimal: amount, Valid: true}
	}

	return t
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(mfDateFormat, s); err == nil {
		return d, nil
	}
	return time.Parse(mfDateFormatISO, s)
}
