package dbmodels

import (
	"time"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/utils"

	"github.com/google/uuid"
)

type DBBenchmark struct {
	Id          uuid.UUID `db:"id"`
	Slug        string    `db:"slug"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Category    string    `db:"category"`
	License     string    `db:"license"`
	Status      string    `db:"status"`
	CreatedBy   uuid.UUID `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

const TABLE_BENCHMARKS = "benchmarks"

var SelectBenchmarkColumns = utils.ColumnList[DBBenchmark]()

func AdaptBenchmark(db DBBenchmark) (models.Benchmark, error) {
	return models.Benchmark{
		Id:          db.Id,
		Slug:        db.Slug,
		Name:        db.Name,
		Description: db.Description,
		Category:    models.BenchmarkCategory(db.Category),
		License:     db.License,
		Status:      models.BenchmarkStatus(db.Status),
		CreatedBy:   db.CreatedBy,
		CreatedAt:   db.CreatedAt,
		UpdatedAt:   db.UpdatedAt,
	}, nil
}

// DBBenchmarkWithSimilarity is the search projection: benchmark columns plus
// the computed trigram similarity.
type DBBenchmarkWithSimilarity struct {
	DBBenchmark
	Similarity float64 `db:"similarity"`
}

func AdaptBenchmarkWithSimilarity(db DBBenchmarkWithSimilarity) (models.BenchmarkSearchResult, error) {
	benchmark, err := AdaptBenchmark(db.DBBenchmark)
	if err != nil {
		return models.BenchmarkSearchResult{}, err
	}
	return models.BenchmarkSearchResult{
		Benchmark:  benchmark,
		Similarity: db.Similarity,
	}, nil
}
