package models

import (
	"github.com/cockroachdb/errors"
)

// Base errors, one per error kind surfaced to callers
var (
	// BadParameterError covers malformed or out-of-range input
	BadParameterError = errors.New("bad parameter")

	// NotFoundError covers references to nonexistent parents
	NotFoundError = errors.New("not found")

	// ConflictError covers uniqueness violations
	ConflictError = errors.New("duplicate value")

	// InvalidTransitionError covers state machine violations
	InvalidTransitionError = errors.New("invalid status transition")

	// UnsupportedMethodError covers unknown aggregation/evaluation method tags
	UnsupportedMethodError = errors.New("unsupported method")
)

// DB related errors
var ErrIgnoreRollBackError = errors.New("ignore rollback error")

// Benchmark catalog errors
var (
	ErrInvalidSlug = errors.Wrap(BadParameterError,
		"slug must be lowercase alphanumeric groups separated by single hyphens")
	ErrDescriptionTooShort = errors.Wrap(BadParameterError,
		"description must be at least 50 characters")
	ErrVersionImmutable = errors.Wrap(ConflictError,
		"benchmark version is referenced by submissions and can no longer be changed")
)

// Submission errors
var (
	ErrDuplicateSubmission = errors.Wrap(ConflictError,
		"a submission with this execution id already exists for this model and version")
	ErrConfidenceIntervalMismatch = errors.Wrap(BadParameterError,
		"confidence interval does not bracket the aggregate score")
	ErrUnknownTestCase = errors.Wrap(BadParameterError,
		"result references a test case that does not belong to the benchmark version")
)

// Verification errors
var (
	ErrDuplicateAttempt = errors.Wrap(ConflictError,
		"an attempt with this number already exists for this verification")
	ErrAttemptNotSequential = errors.Wrap(BadParameterError,
		"attempt numbers must be sequential starting at 1")
	ErrMissingReproductionEvidence = errors.Wrap(BadParameterError,
		"community verifications require reproduction notes and an environment description")
)

// Governance errors
var (
	ErrProposalMissingBenchmark = errors.Wrap(BadParameterError,
		"proposal type requires a benchmark reference")
	ErrProposalMissingDefinition = errors.Wrap(BadParameterError,
		"new benchmark proposals require a benchmark definition")
)
