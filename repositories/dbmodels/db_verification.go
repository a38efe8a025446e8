package dbmodels

import (
	"time"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/utils"

	"github.com/google/uuid"
)

type DBVerification struct {
	Id              uuid.UUID  `db:"id"`
	SubmissionId    uuid.UUID  `db:"submission_id"`
	VerifierType    string     `db:"verifier_type"`
	Status          string     `db:"status"`
	Success         *bool      `db:"success"`
	ReproducedScore *float64   `db:"reproduced_score"`
	ScoreVariance   *float64   `db:"score_variance"`
	StartedAt       *time.Time `db:"started_at"`
	CompletedAt     *time.Time `db:"completed_at"`
	CreatedAt       time.Time  `db:"created_at"`
}

const TABLE_VERIFICATIONS = "verifications"

var SelectVerificationColumns = utils.ColumnList[DBVerification]()

func AdaptVerification(db DBVerification) (models.Verification, error) {
	return models.Verification{
		Id:              db.Id,
		SubmissionId:    db.SubmissionId,
		VerifierType:    models.VerifierType(db.VerifierType),
		Status:          models.VerificationStatus(db.Status),
		Success:         db.Success,
		ReproducedScore: db.ReproducedScore,
		ScoreVariance:   db.ScoreVariance,
		StartedAt:       db.StartedAt,
		CompletedAt:     db.CompletedAt,
		CreatedAt:       db.CreatedAt,
	}, nil
}

type DBVerificationAttempt struct {
	Id              uuid.UUID `db:"id"`
	VerificationId  uuid.UUID `db:"verification_id"`
	AttemptNumber   int       `db:"attempt_number"`
	Score           *float64  `db:"score"`
	ExecutionMs     *int64    `db:"execution_ms"`
	Success         bool      `db:"success"`
	EnvironmentHash string    `db:"environment_hash"`
	CreatedAt       time.Time `db:"created_at"`
}

const TABLE_VERIFICATION_ATTEMPTS = "verification_attempts"

var SelectVerificationAttemptColumns = utils.ColumnList[DBVerificationAttempt]()

func AdaptVerificationAttempt(db DBVerificationAttempt) (models.VerificationAttempt, error) {
	return models.VerificationAttempt{
		Id:              db.Id,
		VerificationId:  db.VerificationId,
		AttemptNumber:   db.AttemptNumber,
		Score:           db.Score,
		ExecutionMs:     db.ExecutionMs,
		Success:         db.Success,
		EnvironmentHash: db.EnvironmentHash,
		CreatedAt:       db.CreatedAt,
	}, nil
}

type DBVerificationStep struct {
	Id             uuid.UUID `db:"id"`
	VerificationId uuid.UUID `db:"verification_id"`
	StepOrder      int       `db:"step_order"`
	Name           string    `db:"name"`
	Success        bool      `db:"success"`
	Detail         *string   `db:"detail"`
	CreatedAt      time.Time `db:"created_at"`
}

const TABLE_VERIFICATION_STEPS = "verification_steps"

var SelectVerificationStepColumns = utils.ColumnList[DBVerificationStep]()

func AdaptVerificationStep(db DBVerificationStep) (models.VerificationStep, error) {
	return models.VerificationStep{
		Id:             db.Id,
		VerificationId: db.VerificationId,
		StepOrder:      db.StepOrder,
		Name:           db.Name,
		Success:        db.Success,
		Detail:         db.Detail,
		CreatedAt:      db.CreatedAt,
	}, nil
}
