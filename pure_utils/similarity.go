package pure_utils

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// BestSimilarity scores a query against several candidate strings and keeps
// the highest score. Jaro-Winkler handles the short, typo-prone inputs of a
// search box better than edit distance.
func BestSimilarity(query string, candidates ...string) float64 {
	metric := metrics.NewJaroWinkler()
	queryLower := strings.ToLower(query)

	best := 0.0
	for _, candidate := range candidates {
		score := strutil.Similarity(queryLower, strings.ToLower(candidate), metric)
		if score > best {
			best = score
		}
	}
	return best
}
