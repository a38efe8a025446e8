package models

import (
	"fmt"
	"time"

	"github.com/Masterminds/semver"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type SemanticVersion struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
}

func (v SemanticVersion) String() string {
	if v.Prerelease != "" {
		return fmt.Sprintf("%d.%d.%d-%s", v.Major, v.Minor, v.Patch, v.Prerelease)
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare orders versions per SemVer 2.0.0: numeric triple first, then a
// prerelease sorts before the corresponding release.
func (v SemanticVersion) Compare(other SemanticVersion) int {
	switch {
	case v.Major != other.Major:
		return compareInt(v.Major, other.Major)
	case v.Minor != other.Minor:
		return compareInt(v.Minor, other.Minor)
	case v.Patch != other.Patch:
		return compareInt(v.Patch, other.Patch)
	case v.Prerelease == other.Prerelease:
		return 0
	case v.Prerelease == "":
		return 1
	case other.Prerelease == "":
		return -1
	default:
		if v.Prerelease < other.Prerelease {
			return -1
		}
		return 1
	}
}

func compareInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func ParseSemanticVersion(s string) (SemanticVersion, error) {
	parsed, err := semver.NewVersion(s)
	if err != nil {
		return SemanticVersion{}, errors.Wrap(BadParameterError, fmt.Sprintf("invalid version string %q", s))
	}
	return SemanticVersion{
		Major:      int(parsed.Major()),
		Minor:      int(parsed.Minor()),
		Patch:      int(parsed.Patch()),
		Prerelease: parsed.Prerelease(),
	}, nil
}

type VersionBump string

const (
	BumpMajor VersionBump = "major"
	BumpMinor VersionBump = "minor"
	BumpPatch VersionBump = "patch"
)

// Bump computes the next version per standard semver rules. The bumped
// version drops any prerelease tag.
func (v SemanticVersion) Bump(bump VersionBump) (SemanticVersion, error) {
	switch bump {
	case BumpMajor:
		return SemanticVersion{Major: v.Major + 1}, nil
	case BumpMinor:
		return SemanticVersion{Major: v.Major, Minor: v.Minor + 1}, nil
	case BumpPatch:
		return SemanticVersion{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, nil
	default:
		return SemanticVersion{}, errors.Wrap(BadParameterError, fmt.Sprintf("unknown version bump %q", bump))
	}
}

type AggregationMethod string

const (
	AggregationWeightedAverage AggregationMethod = "weighted_average"
	AggregationSimpleAverage   AggregationMethod = "simple_average"
)

func (m AggregationMethod) IsValid() bool {
	return m == AggregationWeightedAverage || m == AggregationSimpleAverage
}

type ScoreNormalization string

const (
	NormalizationNone   ScoreNormalization = "none"
	NormalizationMinMax ScoreNormalization = "min_max"
)

// ExecutionLimits is configuration data consumed by the external execution
// engine. The data layer only stores and validates the bounds.
type ExecutionLimits struct {
	TimeoutPerTestMs      int `validate:"gt=0"`
	MaxRetries            int `validate:"gte=0"`
	MaxConcurrentRequests int `validate:"gt=0"`
}

type DatasetReference struct {
	Name      string `json:"name"`
	SourceUrl string `json:"source_url"`
	Checksum  string `json:"checksum"`
}

// BenchmarkVersion carries the evaluation configuration for one published
// version of a benchmark. The configuration is immutable once any submission
// references the version; amendments create a new version linked through
// ParentVersionId.
type BenchmarkVersion struct {
	Id                uuid.UUID
	BenchmarkId       uuid.UUID
	Version           SemanticVersion
	ParentVersionId   *uuid.UUID
	Changelog         string
	PrimaryMetric     string
	AggregationMethod AggregationMethod
	Normalization     ScoreNormalization
	ExecutionLimits   ExecutionLimits
	Datasets          []DatasetReference
	CreatedBy         uuid.UUID
	CreatedAt         time.Time
}

type CreateBenchmarkVersionInput struct {
	BenchmarkId       uuid.UUID
	Bump              VersionBump
	Changelog         string `validate:"required"`
	PrimaryMetric     string `validate:"required,max=128"`
	AggregationMethod AggregationMethod
	Normalization     ScoreNormalization
	ExecutionLimits   ExecutionLimits
	Datasets          []DatasetReference
	CreatedBy         uuid.UUID
}
