package models

import (
	"time"

	"github.com/google/uuid"
)

// LeaderboardEntry is a derived read-cache row, one per visible non-deleted
// public submission. Never a source of truth for score data.
type LeaderboardEntry struct {
	SnapshotId         uuid.UUID
	BenchmarkId        uuid.UUID
	BenchmarkSlug      string
	SubmissionId       uuid.UUID
	SubmittedBy        uuid.UUID
	SubmitterName      string
	OrganizationName   *string
	ModelProvider      string
	ModelName          string
	ModelVersion       string
	IsOfficial         bool
	AggregateScore     float64
	VerificationLevel  VerificationLevel
	SubmissionCreatedAt time.Time

	// Dense ranks per benchmark. RankVerified and RankOfficial are nil for
	// rows that do not qualify.
	RankOverall  int
	RankVerified *int
	RankOfficial *int
}

// LeaderboardSource is one rankable submission with the display data a
// leaderboard row needs. The refresh job turns sources into ranked entries.
type LeaderboardSource struct {
	SubmissionId        uuid.UUID
	BenchmarkId         uuid.UUID
	BenchmarkSlug       string
	SubmittedBy         uuid.UUID
	SubmitterName       string
	OrganizationName    *string
	ModelProvider       string
	ModelName           string
	ModelVersion        string
	IsOfficial          bool
	AggregateScore      float64
	VerificationLevel   VerificationLevel
	SubmissionCreatedAt time.Time
}

// LeaderboardSnapshot identifies one complete, immutable refresh output.
// Readers follow the current-snapshot pointer; swapping the pointer is the
// atomic publish step.
type LeaderboardSnapshot struct {
	Id          uuid.UUID
	RefreshedAt time.Time
	EntryCount  int
}

// BenchmarkStatistics aggregates scores over the current leaderboard
// snapshot, so stats and rankings can never disagree on the underlying set.
type BenchmarkStatistics struct {
	BenchmarkId     uuid.UUID
	SubmissionCount int
	MinScore        float64
	MaxScore        float64
	MeanScore       float64
	MedianScore     float64
	P75Score        float64
	P95Score        float64
	StddevScore     float64
}

type ModelStatistics struct {
	ModelProvider   string
	ModelName       string
	SubmissionCount int
	BenchmarkCount  int
	MeanScore       float64
	BestScore       float64
}
