package dbmodels

import (
	"time"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/utils"

	"github.com/google/uuid"
)

type DBSubmission struct {
	Id                 uuid.UUID  `db:"id"`
	BenchmarkId        uuid.UUID  `db:"benchmark_id"`
	BenchmarkVersionId uuid.UUID  `db:"benchmark_version_id"`
	SubmittedBy        uuid.UUID  `db:"submitted_by"`
	OrganizationId     *uuid.UUID `db:"organization_id"`
	ModelProvider      string     `db:"model_provider"`
	ModelName          string     `db:"model_name"`
	ModelVersion       string     `db:"model_version"`
	IsOfficial         bool       `db:"is_official"`
	ExecutionId        string     `db:"execution_id"`
	AggregateScore     float64    `db:"aggregate_score"`
	CiLower            *float64   `db:"ci_lower"`
	CiUpper            *float64   `db:"ci_upper"`
	CiConfidenceLevel  *float64   `db:"ci_confidence_level"`
	VerificationLevel  string     `db:"verification_level"`
	VerifiedAt         *time.Time `db:"verified_at"`
	Visibility         string     `db:"visibility"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
	DeletedAt          *time.Time `db:"deleted_at"`
}

const TABLE_SUBMISSIONS = "submissions"

var SelectSubmissionColumns = utils.ColumnList[DBSubmission]()

func AdaptSubmission(db DBSubmission) (models.Submission, error) {
	var ci *models.ConfidenceInterval
	if db.CiLower != nil && db.CiUpper != nil && db.CiConfidenceLevel != nil {
		ci = &models.ConfidenceInterval{
			Lower:           *db.CiLower,
			Upper:           *db.CiUpper,
			ConfidenceLevel: *db.CiConfidenceLevel,
		}
	}

	return models.Submission{
		Id:                 db.Id,
		BenchmarkId:        db.BenchmarkId,
		BenchmarkVersionId: db.BenchmarkVersionId,
		SubmittedBy:        db.SubmittedBy,
		OrganizationId:     db.OrganizationId,
		ModelInfo: models.ModelInfo{
			Provider:     db.ModelProvider,
			ModelName:    db.ModelName,
			ModelVersion: db.ModelVersion,
			IsOfficial:   db.IsOfficial,
		},
		ExecutionId:        db.ExecutionId,
		AggregateScore:     db.AggregateScore,
		ConfidenceInterval: ci,
		VerificationLevel:  models.VerificationLevel(db.VerificationLevel),
		VerifiedAt:         db.VerifiedAt,
		Visibility:         models.SubmissionVisibility(db.Visibility),
		CreatedAt:          db.CreatedAt,
		UpdatedAt:          db.UpdatedAt,
		DeletedAt:          db.DeletedAt,
	}, nil
}

type DBMetricScore struct {
	Id           uuid.UUID `db:"id"`
	SubmissionId uuid.UUID `db:"submission_id"`
	Name         string    `db:"name"`
	Value        float64   `db:"value"`
	Unit         *string   `db:"unit"`
	StdDev       *float64  `db:"std_dev"`
}

const TABLE_METRIC_SCORES = "metric_scores"

var SelectMetricScoreColumns = utils.ColumnList[DBMetricScore]()

func AdaptMetricScore(db DBMetricScore) (models.MetricScore, error) {
	return models.MetricScore{
		Id:           db.Id,
		SubmissionId: db.SubmissionId,
		Name:         db.Name,
		Value:        db.Value,
		Unit:         db.Unit,
		StdDev:       db.StdDev,
	}, nil
}

type DBTestCaseResult struct {
	Id           uuid.UUID `db:"id"`
	SubmissionId uuid.UUID `db:"submission_id"`
	TestCaseId   string    `db:"test_case_id"`
	Passed       bool      `db:"passed"`
	Score        float64   `db:"score"`
	LatencyMs    *int64    `db:"latency_ms"`
	ActualOutput *string   `db:"actual_output"`
}

const TABLE_TEST_CASE_RESULTS = "test_case_results"

var SelectTestCaseResultColumns = utils.ColumnList[DBTestCaseResult]()

func AdaptTestCaseResult(db DBTestCaseResult) (models.TestCaseResult, error) {
	return models.TestCaseResult{
		Id:           db.Id,
		SubmissionId: db.SubmissionId,
		TestCaseId:   db.TestCaseId,
		Passed:       db.Passed,
		Score:        db.Score,
		LatencyMs:    db.LatencyMs,
		ActualOutput: db.ActualOutput,
	}, nil
}
