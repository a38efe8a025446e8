package models

import (
	"time"

	"github.com/google/uuid"
)

type VerifierType string

const (
	VerifierTypePlatform VerifierType = "platform"
	VerifierTypeAuditor  VerifierType = "auditor"
)

func (t VerifierType) IsValid() bool {
	return t == VerifierTypePlatform || t == VerifierTypeAuditor
}

// TargetLevel is the verification level a successful run of this verifier
// propagates to the submission.
func (t VerifierType) TargetLevel() VerificationLevel {
	if t == VerifierTypeAuditor {
		return VerificationLevelAudited
	}
	return VerificationLevelPlatformVerified
}

type VerificationStatus string

const (
	VerificationStatusPending    VerificationStatus = "pending"
	VerificationStatusInProgress VerificationStatus = "in_progress"
	VerificationStatusCompleted  VerificationStatus = "completed"
	VerificationStatusFailed     VerificationStatus = "failed"
	VerificationStatusCancelled  VerificationStatus = "cancelled"
)

func (s VerificationStatus) IsTerminal() bool {
	switch s {
	case VerificationStatusCompleted, VerificationStatusFailed, VerificationStatusCancelled:
		return true
	}
	return false
}

func (s VerificationStatus) CanTransitionTo(target VerificationStatus) bool {
	switch {
	case s == VerificationStatusPending && target == VerificationStatusInProgress:
		return true
	case s == VerificationStatusInProgress && target == VerificationStatusCompleted:
		return true
	case s == VerificationStatusInProgress && target == VerificationStatusFailed:
		return true
	case !s.IsTerminal() && target == VerificationStatusCancelled:
		return true
	}
	return false
}

type Verification struct {
	Id            uuid.UUID
	SubmissionId  uuid.UUID
	VerifierType  VerifierType
	Status        VerificationStatus
	Success       *bool
	ReproducedScore *float64
	ScoreVariance *float64
	StartedAt     *time.Time
	CompletedAt   *time.Time
	CreatedAt     time.Time
}

// VerificationResult is the terminal outcome written when a verification run
// finishes, either way.
type VerificationResult struct {
	VerificationId  uuid.UUID
	Status          VerificationStatus
	Success         bool
	ReproducedScore *float64
	ScoreVariance   *float64
}

// Attempts are 1-indexed and sequential per verification.
type VerificationAttempt struct {
	Id              uuid.UUID
	VerificationId  uuid.UUID
	AttemptNumber   int
	Score           *float64
	ExecutionMs     *int64
	Success         bool
	EnvironmentHash string
	CreatedAt       time.Time
}

type VerificationStep struct {
	Id             uuid.UUID
	VerificationId uuid.UUID
	StepOrder      int
	Name           string
	Success        bool
	Detail         *string
	CreatedAt      time.Time
}

// CommunityVerification is a user's independent reproduction claim.
// Upvotes/Downvotes are denormalized and always recomputed from the live
// VerificationVote rows, never incremented in place.
type CommunityVerification struct {
	Id                     uuid.UUID
	SubmissionId           uuid.UUID
	VerifierId             uuid.UUID
	Reproduced             bool
	ReproductionNotes      string
	EnvironmentDescription string
	Upvotes                int
	Downvotes              int
	Reviewed               bool
	ReviewStatus           *string
	ReviewedBy             *uuid.UUID
	CreatedAt              time.Time
}

type VoteType string

const (
	VoteUp   VoteType = "upvote"
	VoteDown VoteType = "downvote"
)

func (t VoteType) IsValid() bool {
	return t == VoteUp || t == VoteDown
}

// One row per (community verification, user); changing a vote updates the
// row in place.
type VerificationVote struct {
	CommunityVerificationId uuid.UUID
	UserId                  uuid.UUID
	VoteType                VoteType
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

type RecordAttemptInput struct {
	VerificationId  uuid.UUID
	AttemptNumber   int
	Score           *float64
	ExecutionMs     *int64
	Success         bool
	EnvironmentHash string
}

type SubmitCommunityVerificationInput struct {
	SubmissionId           uuid.UUID
	VerifierId             uuid.UUID
	Reproduced             bool
	ReproductionNotes      string `validate:"required"`
	EnvironmentDescription string `validate:"required"`
}
