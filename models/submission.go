package models

import (
	"time"

	"github.com/google/uuid"
)

type VerificationLevel string

const (
	VerificationLevelUnverified        VerificationLevel = "unverified"
	VerificationLevelCommunityVerified VerificationLevel = "community_verified"
	VerificationLevelPlatformVerified  VerificationLevel = "platform_verified"
	VerificationLevelAudited           VerificationLevel = "audited"
)

// Rank orders trust levels: unverified < community < platform < audited.
func (l VerificationLevel) Rank() int {
	switch l {
	case VerificationLevelCommunityVerified:
		return 1
	case VerificationLevelPlatformVerified:
		return 2
	case VerificationLevelAudited:
		return 3
	default:
		return 0
	}
}

func (l VerificationLevel) QualifiesAsVerified() bool {
	return l == VerificationLevelPlatformVerified || l == VerificationLevelAudited
}

type SubmissionVisibility string

const (
	VisibilityPublic   SubmissionVisibility = "public"
	VisibilityUnlisted SubmissionVisibility = "unlisted"
	VisibilityPrivate  SubmissionVisibility = "private"
)

func (v SubmissionVisibility) IsValid() bool {
	return v == VisibilityPublic || v == VisibilityUnlisted || v == VisibilityPrivate
}

type ModelInfo struct {
	Provider     string `validate:"required,max=128"`
	ModelName    string `validate:"required,max=256"`
	ModelVersion string `validate:"max=128"`
	IsOfficial   bool
}

type ConfidenceInterval struct {
	Lower           float64
	Upper           float64
	ConfidenceLevel float64
}

// Brackets reports whether score falls within [Lower, Upper].
func (ci ConfidenceInterval) Brackets(score float64) bool {
	return ci.Lower <= score && score <= ci.Upper
}

type Submission struct {
	Id                 uuid.UUID
	BenchmarkId        uuid.UUID
	BenchmarkVersionId uuid.UUID
	SubmittedBy        uuid.UUID
	OrganizationId     *uuid.UUID
	ModelInfo          ModelInfo
	ExecutionId        string
	AggregateScore     float64
	ConfidenceInterval *ConfidenceInterval
	VerificationLevel  VerificationLevel
	VerifiedAt         *time.Time
	Visibility         SubmissionVisibility
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

func (s Submission) IsDeleted() bool {
	return s.DeletedAt != nil
}

// MetricScore is one named metric value of a submission, unique per
// (submission, metric name).
type MetricScore struct {
	Id           uuid.UUID
	SubmissionId uuid.UUID
	Name         string
	Value        float64
	Unit         *string
	StdDev       *float64
}

// TestCaseResult is the per-test-case outcome of a submission, unique per
// (submission, test case).
type TestCaseResult struct {
	Id           uuid.UUID
	SubmissionId uuid.UUID
	TestCaseId   string
	Passed       bool
	Score        float64
	LatencyMs    *int64
	ActualOutput *string
}

type SubmitTestCaseResult struct {
	TestCaseId   string  `validate:"required"`
	Passed       bool
	Score        float64 `validate:"gte=0,lte=1"`
	LatencyMs    *int64
	ActualOutput *string
}

type SubmissionFilters struct {
	BenchmarkId        *uuid.UUID
	BenchmarkVersionId *uuid.UUID
	SubmittedBy        *uuid.UUID
	VerificationLevel  *VerificationLevel
	Limit              int
}

type SubmitInput struct {
	BenchmarkVersionId uuid.UUID
	SubmittedBy        uuid.UUID
	OrganizationId     *uuid.UUID
	ModelInfo          ModelInfo
	ExecutionId        string `validate:"required,max=128"`
	Results            []SubmitTestCaseResult `validate:"required,min=1,dive"`
	MetricScores       map[string]float64
	ConfidenceInterval *ConfidenceInterval
	Visibility         SubmissionVisibility
}
