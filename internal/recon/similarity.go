package recon

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// TextSimilarity scores two normalized descriptions in [0, 1].
// Implementations must be symmetric and return 1.0 for identical strings.
type TextSimilarity interface {
	Score(a, b string) float64
	Name() string
}

// NewScorer returns the similarity backend registered under name.
func NewScorer(name string) (TextSimilarity, error) {
	switch strings.ToLower(name) {
	case "token_set":
		return TokenSetRatio{}, nil
	case "cosine":
		return Cosine{}, nil
	default:
		return nil, fmt.Errorf("unknown similarity scorer %q", name)
	}
}

// TokenSetRatio scores by overlap of the two whitespace-delimited token
// sets, tolerant of word reordering and duplication: when one description's
// tokens are a subset of the other's, the score is 1.0.
type TokenSetRatio struct{}

// Name returns the scorer name.
func (TokenSetRatio) Name() string { return "token_set" }

// Score computes the token-set ratio of a and b.
func (TokenSetRatio) Score(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)

	inter := intersect(ta, tb)
	onlyA := subtract(ta, tb)
	onlyB := subtract(tb, ta)

	base := strings.Join(inter, " ")
	combA := joinTokens(base, onlyA)
	combB := joinTokens(base, onlyB)

	score := ratio(base, combA)
	if r := ratio(base, combB); r > score {
		score = r
	}
	if r := ratio(combA, combB); r > score {
		score = r
	}
	return score
}

// Cosine scores by term-frequency vector cosine similarity.
type Cosine struct{}

// Name returns the scorer name.
func (Cosine) Name() string { return "cosine" }

// Score computes the cosine of the term-frequency vectors of a and b.
func (Cosine) Score(a, b string) float64 {
	fa := termFreq(a)
	fb := termFreq(b)
	if len(fa) == 0 || len(fb) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for term, count := range fa {
		normA += count * count
		dot += count * fb[term]
	}
	for _, count := range fb {
		normB += count * count
	}
	if dot == 0 {
		return 0
	}
	// sqrt of the product keeps identical inputs at exactly 1.0.
	return dot / math.Sqrt(normA*normB)
}

// scoreable reports whether a normalized pair carries enough text signal to
// be worth scoring: both sides non-empty, neither the literal "nan", and at
// least one side containing a token of 2+ runes.
func scoreable(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if strings.EqualFold(a, "nan") || strings.EqualFold(b, "nan") {
		return false
	}
	return hasLongToken(a) || hasLongToken(b)
}

func hasLongToken(s string) bool {
	for _, tok := range strings.Fields(s) {
		if utf8.RuneCountInString(tok) >= 2 {
			return true
		}
	}
	return false
}

// tokenSet returns the sorted unique whitespace-delimited tokens of s.
func tokenSet(s string) []string {
	seen := make(map[string]bool)
	var tokens []string
	for _, tok := range strings.Fields(s) {
		if !seen[tok] {
			seen[tok] = true
			tokens = append(tokens, tok)
		}
	}
	sort.Strings(tokens)
	return tokens
}

func intersect(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, tok := range b {
		inB[tok] = true
	}
	var out []string
	for _, tok := range a {
		if inB[tok] {
			out = append(out, tok)
		}
	}
	return out
}

func subtract(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, tok := range b {
		inB[tok] = true
	}
	var out []string
	for _, tok := range a {
		if !inB[tok] {
			out = append(out, tok)
		}
	}
	return out
}

func joinTokens(base string, rest []string) string {
	if len(rest) == 0 {
		return base
	}
	if base == "" {
		return strings.Join(rest, " ")
	}
	return base + " " + strings.Join(rest, " ")
}

// ratio is a normalized indel similarity over runes: 2*LCS / (len(a)+len(b)).
// Returns 1.0 when both strings are empty.
func ratio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1.0
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			switch {
			case ra[i-1] == rb[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	lcs := prev[len(rb)]
	return 2 * float64(lcs) / float64(len(ra)+len(rb))
}

func termFreq(s string) map[string]float64 {
	freq := make(map[string]float64)
	for _, tok := range strings.Fields(s) {
		freq[tok]++
	}
	return freq
}
