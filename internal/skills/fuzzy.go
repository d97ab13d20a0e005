package skills

import (
	"math"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// MatchThreshold is the minimum Similarity score at which two skill
// labels are considered the same skill.
const MatchThreshold = 85

var levenshtein = metrics.NewLevenshtein()

// Similarity returns a case-insensitive Levenshtein ratio between two
// skill labels on a 0-100 scale. Identical strings score 100 and the
// metric is symmetric.
func Similarity(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 100
	}
	return int(math.Round(100 * strutil.Similarity(a, b, levenshtein)))
}

// Matches reports whether two skill labels denote the same skill under
// the fixed MatchThreshold.
func Matches(a, b string) bool {
	return Similarity(a, b) >= MatchThreshold
}
