package scoring

import (
	"fmt"

	"github.com/benchlooms/exchange-backend/models"

	"github.com/cockroachdb/errors"
)

// ScoredResult pairs a per-test-case score with the weight of its test case.
type ScoredResult struct {
	Score  float64
	Weight float64
}

// AggregateScores reduces per-test-case scores to a submission's aggregate
// score using the benchmark version's configured method.
func AggregateScores(method models.AggregationMethod, results []ScoredResult) (float64, error) {
	switch method {
	case models.AggregationWeightedAverage:
		return weightedAverage(results), nil
	case models.AggregationSimpleAverage:
		return simpleAverage(results), nil
	default:
		return 0, errors.Wrap(models.UnsupportedMethodError,
			fmt.Sprintf("unknown aggregation method %q", method))
	}
}

func weightedAverage(results []ScoredResult) float64 {
	var weightedSum, totalWeight float64
	for _, r := range results {
		weightedSum += r.Score * r.Weight
		totalWeight += r.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return weightedSum / totalWeight
}

func simpleAverage(results []ScoredResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += r.Score
	}
	return sum / float64(len(results))
}
