package scoring

import (
	"testing"

	"github.com/benchlooms/exchange-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestAggregateScores_WeightedAverage(t *testing.T) {
	results := []ScoredResult{
		{Score: 0.8, Weight: 0.6},
		{Score: 0.5, Weight: 0.4},
	}

	got, err := AggregateScores(models.AggregationWeightedAverage, results)
	assert.NoError(t, err)
	assert.InDelta(t, 0.68, got, 1e-9)
}

func TestAggregateScores_WeightedAverage_ZeroTotalWeight(t *testing.T) {
	results := []ScoredResult{
		{Score: 0.8, Weight: 0},
		{Score: 0.5, Weight: 0},
	}

	got, err := AggregateScores(models.AggregationWeightedAverage, results)
	assert.NoError(t, err)
	assert.Zero(t, got)
}

func TestAggregateScores_WeightedAverage_Empty(t *testing.T) {
	got, err := AggregateScores(models.AggregationWeightedAverage, nil)
	assert.NoError(t, err)
	assert.Zero(t, got)
}

func TestAggregateScores_SimpleAverage(t *testing.T) {
	results := []ScoredResult{
		{Score: 1.0, Weight: 0.7},
		{Score: 0.0, Weight: 0.3},
	}

	got, err := AggregateScores(models.AggregationSimpleAverage, results)
	assert.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-9)
}

func TestAggregateScores_SimpleAverage_IgnoresWeights(t *testing.T) {
	results := []ScoredResult{
		{Score: 0.9, Weight: 0.99},
		{Score: 0.1, Weight: 0.01},
	}

	got, err := AggregateScores(models.AggregationSimpleAverage, results)
	assert.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-9)
}

func TestAggregateScores_UnknownMethod(t *testing.T) {
	_, err := AggregateScores("geometric_mean", []ScoredResult{{Score: 1, Weight: 1}})
	assert.ErrorIs(t, err, models.UnsupportedMethodError)
}
