package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchlooms/exchange-backend/models"
)

// The leaderboard must never rank soft-deleted or non-public submissions,
// both filters live in this query.
func TestListLeaderboardSources_excludes_deleted_and_private(t *testing.T) {
	mock, exec := newExecutorMock(t)
	submissionId := uuid.New()
	benchmarkId := uuid.New()
	submitterId := uuid.New()
	createdAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows([]string{
		"submission_id", "benchmark_id", "benchmark_slug",
		"submitted_by", "submitter_name", "organization_name",
		"model_provider", "model_name", "model_version",
		"is_official", "aggregate_score", "verification_level",
		"submission_created_at",
	}).AddRow(
		submissionId, benchmarkId, "mmlu-pro",
		submitterId, "alice", (*string)(nil),
		"acme", "acme-large", "2.1",
		true, 0.85, "platform_verified",
		createdAt,
	)

	mock.ExpectQuery(`FROM submissions AS s .+ WHERE s\.deleted_at IS NULL AND s\.visibility = \$1`).
		WithArgs(models.VisibilityPublic).
		WillReturnRows(rows)

	repo := &SubmissionRepository{}
	sources, err := repo.ListLeaderboardSources(context.Background(), exec)

	assert.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, submissionId, sources[0].SubmissionId)
	assert.Equal(t, "mmlu-pro", sources[0].BenchmarkSlug)
	assert.Equal(t, models.VerificationLevelPlatformVerified, sources[0].VerificationLevel)
	assert.Nil(t, sources[0].OrganizationName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
