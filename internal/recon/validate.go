package recon

import (
	"fmt"

	"github.com/yqhr/mfrecon/internal/model"
)

// ValidationError describes a single input-contract violation.
type ValidationError struct {
	Row         int // 1-based position in the batch
	ID          string
	Description string
}

func (e ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("row %d: %s", e.Row, e.Description)
	}
	return fmt.Sprintf("row %d [%s]: %s", e.Row, e.ID, e.Description)
}

// ValidateInput enforces the caller contract before reconciliation begins:
// every row carries a non-empty id, unique across the batch. Violations are
// fatal for the whole run; per-row malformed dates and amounts are NOT
// errors and are handled by excluding the row from candidate generation.
func ValidateInput(txns []model.Transaction) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]int, len(txns))

	for i, t := range txns {
		row := i + 1
		if t.ID == "" {
			errs = append(errs, ValidationError{
				Row:         row,
				Description: "missing id",
			})
			continue
		}
		if first, dup := seen[t.ID]; dup {
			errs = append(errs, ValidationError{
				Row:         row,
				ID:          t.ID,
				Description: fmt.Sprintf("duplicate id (first seen at row %d)", first),
			})
			continue
		}
		seen[t.ID] = row
	}
	return errs
}
