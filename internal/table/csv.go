// Package table reads and writes the canonical transaction CSV used for the
// cleaned output sets: the MoneyForward columns under their English names.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yqhr/mfrecon/internal/model"
)

// Header is the CSV header for the canonical table.
const Header = "include,date,description,amount,institution,category_main,category_sub,memo,transfer,id"

const (
	numFields      = 10
	dateFormat     = "2006-01-02"
	colInclude     = 0
	colDate        = 1
	colDescription = 2
	colAmount      = 3
	colInstitution = 4
	colCatMain     = 5
	colCatSub      = 6
	colMemo        = 7
	colTransfer    = 8
	colID          = 9
)

// ReadTransactions reads all rows from a canonical CSV reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	for i, rec := range records[1:] {
		t, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// WriteTransactions writes rows to a canonical CSV writer (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, t := range txns {
		if err := cw.Write(MarshalTransaction(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row ([]string).
// A nil date or invalid amount becomes an empty cell.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, numFields)

	row[colInclude] = "0"
	if t.Include {
		row[colInclude] = "1"
	}
	if t.Date != nil {
		row[colDate] = t.Date.Format(dateFormat)
	}
	row[colDescription] = t.Description
	if t.Amount.Valid {
		row[colAmount] = t.Amount.Decimal.String()
	}
	row[colInstitution] = t.Institution
	row[colCatMain] = t.CategoryMain
	row[colCatSub] = t.CategorySub
	row[colMemo] = t.Memo
	row[colTransfer] = t.Transfer
	row[colID] = t.ID

	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	t := model.Transaction{
		Include:      record[colInclude] == "1",
		Description:  record[colDescription],
		Institution:  record[colInstitution],
		CategoryMain: record[colCatMain],
		CategorySub:  record[colCatSub],
		Memo:         record[colMemo],
		Transfer:     record[colTransfer],
		ID:           record[colID],
	}

	if record[colDate] != "" {
		d, err := time.Parse(dateFormat, record[colDate])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
		}
		t.Date = &d
	}

	if record[colAmount] != "" {
		amount, err := decimal.NewFromString(record[colAmount])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
		}
		t.Amount = decimal.NullDecimal{Decimal: amount, Valid: true}
	}

	return t, nil
}
