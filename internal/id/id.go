package id

import (
	"fmt"
	"strings"
	"unicode"
)

// maxPrefixRunes caps the description fragment embedded in a derived id.
const maxPrefixRunes = 10

// ForRow derives a deterministic fallback id for a source row whose ID
// column is empty, e.g. "mf_202401.csv_0042_CoffeeShop". File name and row
// number make it unique within a batch of import files.
func ForRow(fileName string, row int, description string) string {
	return fmt.Sprintf("mf_%s_%04d_%s", fileName, row, descPrefix(description))
}

// descPrefix keeps only letters and digits from a description, capped at
// maxPrefixRunes runes.
func descPrefix(description string) string {
	filtered := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, description)

	runes := []rune(filtered)
	if len(runes) > maxPrefixRunes {
		runes = runes[:maxPrefixRunes]
	}
	return string(runes)
}
