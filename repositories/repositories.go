package repositories

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
)

type Repositories struct {
	ExecutorGetter         ExecutorGetter
	UserRepository         *UserRepository
	OrganizationRepository *OrganizationRepository
	BenchmarkRepository    *BenchmarkRepository
	SubmissionRepository   *SubmissionRepository
	VerificationRepository *VerificationRepository
	ProposalRepository     *ProposalRepository
	EventRepository        *EventRepository
	AuditRepository        *AuditRepository
	LeaderboardRepository  *LeaderboardRepository
	PartitionRepository    *PartitionRepository
	TaskQueueRepository    TaskQueueRepository
}

func NewRepositories(
	pool *pgxpool.Pool,
	riverClient *river.Client[pgx.Tx],
) Repositories {
	return Repositories{
		ExecutorGetter:         NewExecutorGetter(pool),
		UserRepository:         &UserRepository{},
		OrganizationRepository: &OrganizationRepository{},
		BenchmarkRepository:    &BenchmarkRepository{},
		SubmissionRepository:   &SubmissionRepository{},
		VerificationRepository: &VerificationRepository{},
		ProposalRepository:     &ProposalRepository{},
		EventRepository:        &EventRepository{},
		AuditRepository:        &AuditRepository{},
		LeaderboardRepository:  &LeaderboardRepository{},
		PartitionRepository:    &PartitionRepository{},
		TaskQueueRepository:    NewTaskQueueRepository(riverClient),
	}
}
