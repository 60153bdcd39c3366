package recon

import "strings"

// ideographicSpace is the full-width space used in MoneyForward exports.
const ideographicSpace = "　"

// Normalize canonicalizes a description for comparison: surrounding
// whitespace is trimmed and full-width spaces are removed entirely.
// Idempotent; an already-normalized string comes back unchanged.
func Normalize(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ideographicSpace, "")
}
