package models

import (
	"github.com/google/uuid"
)

// full leaderboard snapshot rebuild, enqueued after writes that change
// ranking inputs
type LeaderboardRefreshArgs struct {
	Reason string `json:"reason"`
}

func (LeaderboardRefreshArgs) Kind() string { return "leaderboard_refresh" }

// runs a pending platform/auditor verification workflow
type VerificationRunArgs struct {
	VerificationId uuid.UUID `json:"verification_id"`
	SubmissionId   uuid.UUID `json:"submission_id"`
}

func (VerificationRunArgs) Kind() string { return "verification_run" }
