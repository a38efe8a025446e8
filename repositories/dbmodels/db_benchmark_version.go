package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/utils"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type DBBenchmarkVersion struct {
	Id                    uuid.UUID  `db:"id"`
	BenchmarkId           uuid.UUID  `db:"benchmark_id"`
	Major                 int        `db:"major"`
	Minor                 int        `db:"minor"`
	Patch                 int        `db:"patch"`
	Prerelease            string     `db:"prerelease"`
	ParentVersionId       *uuid.UUID `db:"parent_version_id"`
	Changelog             string     `db:"changelog"`
	PrimaryMetric         string     `db:"primary_metric"`
	AggregationMethod     string     `db:"aggregation_method"`
	Normalization         string     `db:"normalization"`
	TimeoutPerTestMs      int        `db:"timeout_per_test_ms"`
	MaxRetries            int        `db:"max_retries"`
	MaxConcurrentRequests int        `db:"max_concurrent_requests"`
	Datasets              []byte     `db:"datasets"`
	CreatedBy             uuid.UUID  `db:"created_by"`
	CreatedAt             time.Time  `db:"created_at"`
}

const TABLE_BENCHMARK_VERSIONS = "benchmark_versions"

var SelectBenchmarkVersionColumns = utils.ColumnList[DBBenchmarkVersion]()

func AdaptBenchmarkVersion(db DBBenchmarkVersion) (models.BenchmarkVersion, error) {
	var datasets []models.DatasetReference
	if len(db.Datasets) > 0 {
		if err := json.Unmarshal(db.Datasets, &datasets); err != nil {
			return models.BenchmarkVersion{}, errors.Wrap(err, "can't unmarshal benchmark version datasets")
		}
	}

	return models.BenchmarkVersion{
		Id:          db.Id,
		BenchmarkId: db.BenchmarkId,
		Version: models.SemanticVersion{
			Major:      db.Major,
			Minor:      db.Minor,
			Patch:      db.Patch,
			Prerelease: db.Prerelease,
		},
		ParentVersionId:   db.ParentVersionId,
		Changelog:         db.Changelog,
		PrimaryMetric:     db.PrimaryMetric,
		AggregationMethod: models.AggregationMethod(db.AggregationMethod),
		Normalization:     models.ScoreNormalization(db.Normalization),
		ExecutionLimits: models.ExecutionLimits{
			TimeoutPerTestMs:      db.TimeoutPerTestMs,
			MaxRetries:            db.MaxRetries,
			MaxConcurrentRequests: db.MaxConcurrentRequests,
		},
		Datasets:  datasets,
		CreatedBy: db.CreatedBy,
		CreatedAt: db.CreatedAt,
	}, nil
}
