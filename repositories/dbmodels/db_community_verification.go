package dbmodels

import (
	"time"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/utils"

	"github.com/google/uuid"
)

type DBCommunityVerification struct {
	Id                     uuid.UUID  `db:"id"`
	SubmissionId           uuid.UUID  `db:"submission_id"`
	VerifierId             uuid.UUID  `db:"verifier_id"`
	Reproduced             bool       `db:"reproduced"`
	ReproductionNotes      string     `db:"reproduction_notes"`
	EnvironmentDescription string     `db:"environment_description"`
	Upvotes                int        `db:"upvotes"`
	Downvotes              int        `db:"downvotes"`
	Reviewed               bool       `db:"reviewed"`
	ReviewStatus           *string    `db:"review_status"`
	ReviewedBy             *uuid.UUID `db:"reviewed_by"`
	CreatedAt              time.Time  `db:"created_at"`
}

const TABLE_COMMUNITY_VERIFICATIONS = "community_verifications"

var SelectCommunityVerificationColumns = utils.ColumnList[DBCommunityVerification]()

func AdaptCommunityVerification(db DBCommunityVerification) (models.CommunityVerification, error) {
	return models.CommunityVerification{
		Id:                     db.Id,
		SubmissionId:           db.SubmissionId,
		VerifierId:             db.VerifierId,
		Reproduced:             db.Reproduced,
		ReproductionNotes:      db.ReproductionNotes,
		EnvironmentDescription: db.EnvironmentDescription,
		Upvotes:                db.Upvotes,
		Downvotes:              db.Downvotes,
		Reviewed:               db.Reviewed,
		ReviewStatus:           db.ReviewStatus,
		ReviewedBy:             db.ReviewedBy,
		CreatedAt:              db.CreatedAt,
	}, nil
}

type DBVerificationVote struct {
	CommunityVerificationId uuid.UUID `db:"community_verification_id"`
	UserId                  uuid.UUID `db:"user_id"`
	VoteType                string    `db:"vote_type"`
	CreatedAt               time.Time `db:"created_at"`
	UpdatedAt               time.Time `db:"updated_at"`
}

const TABLE_VERIFICATION_VOTES = "verification_votes"

var SelectVerificationVoteColumns = utils.ColumnList[DBVerificationVote]()

func AdaptVerificationVote(db DBVerificationVote) (models.VerificationVote, error) {
	return models.VerificationVote{
		CommunityVerificationId: db.CommunityVerificationId,
		UserId:                  db.UserId,
		VoteType:                models.VoteType(db.VoteType),
		CreatedAt:               db.CreatedAt,
		UpdatedAt:               db.UpdatedAt,
	}, nil
}
