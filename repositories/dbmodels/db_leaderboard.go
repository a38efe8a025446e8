package dbmodels

import (
	"time"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/utils"

	"github.com/google/uuid"
)

type DBLeaderboardEntry struct {
	SnapshotId          uuid.UUID  `db:"snapshot_id"`
	BenchmarkId         uuid.UUID  `db:"benchmark_id"`
	BenchmarkSlug       string     `db:"benchmark_slug"`
	SubmissionId        uuid.UUID  `db:"submission_id"`
	SubmittedBy         uuid.UUID  `db:"submitted_by"`
	SubmitterName       string     `db:"submitter_name"`
	OrganizationName    *string    `db:"organization_name"`
	ModelProvider       string     `db:"model_provider"`
	ModelName           string     `db:"model_name"`
	ModelVersion        string     `db:"model_version"`
	IsOfficial          bool       `db:"is_official"`
	AggregateScore      float64    `db:"aggregate_score"`
	VerificationLevel   string     `db:"verification_level"`
	SubmissionCreatedAt time.Time  `db:"submission_created_at"`
	RankOverall         int        `db:"rank_overall"`
	RankVerified        *int       `db:"rank_verified"`
	RankOfficial        *int       `db:"rank_official"`
}

const TABLE_LEADERBOARD_ENTRIES = "leaderboard_entries"

var SelectLeaderboardEntryColumns = utils.ColumnList[DBLeaderboardEntry]()

func AdaptLeaderboardEntry(db DBLeaderboardEntry) (models.LeaderboardEntry, error) {
	return models.LeaderboardEntry{
		SnapshotId:          db.SnapshotId,
		BenchmarkId:         db.BenchmarkId,
		BenchmarkSlug:       db.BenchmarkSlug,
		SubmissionId:        db.SubmissionId,
		SubmittedBy:         db.SubmittedBy,
		SubmitterName:       db.SubmitterName,
		OrganizationName:    db.OrganizationName,
		ModelProvider:       db.ModelProvider,
		ModelName:           db.ModelName,
		ModelVersion:        db.ModelVersion,
		IsOfficial:          db.IsOfficial,
		AggregateScore:      db.AggregateScore,
		VerificationLevel:   models.VerificationLevel(db.VerificationLevel),
		SubmissionCreatedAt: db.SubmissionCreatedAt,
		RankOverall:         db.RankOverall,
		RankVerified:        db.RankVerified,
		RankOfficial:        db.RankOfficial,
	}, nil
}

type DBLeaderboardSource struct {
	SubmissionId        uuid.UUID  `db:"submission_id"`
	BenchmarkId         uuid.UUID  `db:"benchmark_id"`
	BenchmarkSlug       string     `db:"benchmark_slug"`
	SubmittedBy         uuid.UUID  `db:"submitted_by"`
	SubmitterName       string     `db:"submitter_name"`
	OrganizationName    *string    `db:"organization_name"`
	ModelProvider       string     `db:"model_provider"`
	ModelName           string     `db:"model_name"`
	ModelVersion        string     `db:"model_version"`
	IsOfficial          bool       `db:"is_official"`
	AggregateScore      float64    `db:"aggregate_score"`
	VerificationLevel   string     `db:"verification_level"`
	SubmissionCreatedAt time.Time  `db:"submission_created_at"`
}

func AdaptLeaderboardSource(db DBLeaderboardSource) (models.LeaderboardSource, error) {
	return models.LeaderboardSource{
		SubmissionId:        db.SubmissionId,
		BenchmarkId:         db.BenchmarkId,
		BenchmarkSlug:       db.BenchmarkSlug,
		SubmittedBy:         db.SubmittedBy,
		SubmitterName:       db.SubmitterName,
		OrganizationName:    db.OrganizationName,
		ModelProvider:       db.ModelProvider,
		ModelName:           db.ModelName,
		ModelVersion:        db.ModelVersion,
		IsOfficial:          db.IsOfficial,
		AggregateScore:      db.AggregateScore,
		VerificationLevel:   models.VerificationLevel(db.VerificationLevel),
		SubmissionCreatedAt: db.SubmissionCreatedAt,
	}, nil
}

type DBLeaderboardSnapshot struct {
	Id          uuid.UUID `db:"id"`
	RefreshedAt time.Time `db:"refreshed_at"`
	EntryCount  int       `db:"entry_count"`
}

const (
	TABLE_LEADERBOARD_SNAPSHOTS = "leaderboard_snapshots"
	TABLE_LEADERBOARD_CURRENT   = "leaderboard_current"
)

var SelectLeaderboardSnapshotColumns = utils.ColumnList[DBLeaderboardSnapshot]()

func AdaptLeaderboardSnapshot(db DBLeaderboardSnapshot) (models.LeaderboardSnapshot, error) {
	return models.LeaderboardSnapshot{
		Id:          db.Id,
		RefreshedAt: db.RefreshedAt,
		EntryCount:  db.EntryCount,
	}, nil
}

type DBBenchmarkStatistics struct {
	BenchmarkId     uuid.UUID `db:"benchmark_id"`
	SubmissionCount int       `db:"submission_count"`
	MinScore        float64   `db:"min_score"`
	MaxScore        float64   `db:"max_score"`
	MeanScore       float64   `db:"mean_score"`
	MedianScore     float64   `db:"median_score"`
	P75Score        float64   `db:"p75_score"`
	P95Score        float64   `db:"p95_score"`
	StddevScore     float64   `db:"stddev_score"`
}

func AdaptBenchmarkStatistics(db DBBenchmarkStatistics) (models.BenchmarkStatistics, error) {
	return models.BenchmarkStatistics{
		BenchmarkId:     db.BenchmarkId,
		SubmissionCount: db.SubmissionCount,
		MinScore:        db.MinScore,
		MaxScore:        db.MaxScore,
		MeanScore:       db.MeanScore,
		MedianScore:     db.MedianScore,
		P75Score:        db.P75Score,
		P95Score:        db.P95Score,
		StddevScore:     db.StddevScore,
	}, nil
}

type DBModelStatistics struct {
	ModelProvider   string  `db:"model_provider"`
	ModelName       string  `db:"model_name"`
	SubmissionCount int     `db:"submission_count"`
	BenchmarkCount  int     `db:"benchmark_count"`
	MeanScore       float64 `db:"mean_score"`
	BestScore       float64 `db:"best_score"`
}

func AdaptModelStatistics(db DBModelStatistics) (models.ModelStatistics, error) {
	return models.ModelStatistics{
		ModelProvider:   db.ModelProvider,
		ModelName:       db.ModelName,
		SubmissionCount: db.SubmissionCount,
		BenchmarkCount:  db.BenchmarkCount,
		MeanScore:       db.MeanScore,
		BestScore:       db.BestScore,
	}, nil
}
