package usecases

import (
	"github.com/benchlooms/exchange-backend/repositories"
	"github.com/benchlooms/exchange-backend/usecases/executor_factory"
)

type Usecases struct {
	Repositories repositories.Repositories
}

func NewUsecases(repos repositories.Repositories) Usecases {
	return Usecases{
		Repositories: repos,
	}
}

func (usecases *Usecases) NewExecutorFactory() executor_factory.ExecutorFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases *Usecases) NewTransactionFactory() executor_factory.TransactionFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases *Usecases) NewUserUseCase() UserUseCase {
	return UserUseCase{
		transactionFactory: usecases.NewTransactionFactory(),
		executorFactory:    usecases.NewExecutorFactory(),
		repository:         usecases.Repositories.UserRepository,
		auditRepository:    usecases.Repositories.AuditRepository,
	}
}

func (usecases *Usecases) NewOrganizationUseCase() OrganizationUseCase {
	return OrganizationUseCase{
		transactionFactory: usecases.NewTransactionFactory(),
		executorFactory:    usecases.NewExecutorFactory(),
		repository:         usecases.Repositories.OrganizationRepository,
		auditRepository:    usecases.Repositories.AuditRepository,
	}
}

func (usecases *Usecases) NewBenchmarkUseCase() BenchmarkUseCase {
	return BenchmarkUseCase{
		transactionFactory: usecases.NewTransactionFactory(),
		executorFactory:    usecases.NewExecutorFactory(),
		repository:         usecases.Repositories.BenchmarkRepository,
		eventRepository:    usecases.Repositories.EventRepository,
		auditRepository:    usecases.Repositories.AuditRepository,
	}
}

func (usecases *Usecases) NewSubmissionUseCase() SubmissionUseCase {
	return SubmissionUseCase{
		transactionFactory:     usecases.NewTransactionFactory(),
		executorFactory:        usecases.NewExecutorFactory(),
		repository:             usecases.Repositories.SubmissionRepository,
		benchmarkRepository:    usecases.Repositories.BenchmarkRepository,
		verificationRepository: usecases.Repositories.VerificationRepository,
		eventRepository:        usecases.Repositories.EventRepository,
		auditRepository:        usecases.Repositories.AuditRepository,
		taskQueueRepository:    usecases.Repositories.TaskQueueRepository,
	}
}

func (usecases *Usecases) NewVerificationUseCase() VerificationUseCase {
	return VerificationUseCase{
		transactionFactory:   usecases.NewTransactionFactory(),
		executorFactory:      usecases.NewExecutorFactory(),
		repository:           usecases.Repositories.VerificationRepository,
		submissionRepository: usecases.Repositories.SubmissionRepository,
		eventRepository:      usecases.Repositories.EventRepository,
		auditRepository:      usecases.Repositories.AuditRepository,
		taskQueueRepository:  usecases.Repositories.TaskQueueRepository,
	}
}

func (usecases *Usecases) NewGovernanceUseCase() GovernanceUseCase {
	return GovernanceUseCase{
		transactionFactory:  usecases.NewTransactionFactory(),
		executorFactory:     usecases.NewExecutorFactory(),
		repository:          usecases.Repositories.ProposalRepository,
		benchmarkRepository: usecases.Repositories.BenchmarkRepository,
		eventRepository:     usecases.Repositories.EventRepository,
		auditRepository:     usecases.Repositories.AuditRepository,
	}
}

func (usecases *Usecases) NewLeaderboardUseCase() LeaderboardUseCase {
	return LeaderboardUseCase{
		transactionFactory:   usecases.NewTransactionFactory(),
		executorFactory:      usecases.NewExecutorFactory(),
		repository:           usecases.Repositories.LeaderboardRepository,
		submissionRepository: usecases.Repositories.SubmissionRepository,
	}
}

func (usecases *Usecases) NewEventUseCase() EventUseCase {
	return EventUseCase{
		transactionFactory: usecases.NewTransactionFactory(),
		executorFactory:    usecases.NewExecutorFactory(),
		repository:         usecases.Repositories.EventRepository,
		auditRepository:    usecases.Repositories.AuditRepository,
		consumer:           LoggingEventConsumer{},
	}
}

func (usecases *Usecases) NewMaintenanceUseCase() MaintenanceUseCase {
	return MaintenanceUseCase{
		executorFactory: usecases.NewExecutorFactory(),
		repository:      usecases.Repositories.PartitionRepository,
	}
}
