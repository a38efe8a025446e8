package models

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

type BenchmarkCategory string

const (
	CategoryPerformance BenchmarkCategory = "performance"
	CategoryAccuracy    BenchmarkCategory = "accuracy"
	CategoryReliability BenchmarkCategory = "reliability"
	CategorySafety      BenchmarkCategory = "safety"
	CategoryCost        BenchmarkCategory = "cost"
	CategoryCapability  BenchmarkCategory = "capability"
)

func (c BenchmarkCategory) IsValid() bool {
	switch c {
	case CategoryPerformance, CategoryAccuracy, CategoryReliability,
		CategorySafety, CategoryCost, CategoryCapability:
		return true
	}
	return false
}

type BenchmarkStatus string

const (
	BenchmarkStatusDraft       BenchmarkStatus = "draft"
	BenchmarkStatusUnderReview BenchmarkStatus = "under_review"
	BenchmarkStatusActive      BenchmarkStatus = "active"
	BenchmarkStatusDeprecated  BenchmarkStatus = "deprecated"
	BenchmarkStatusArchived    BenchmarkStatus = "archived"
)

// The lifecycle is monotonic except for review rejection (under_review back
// to draft) and un-deprecation (deprecated back to active).
func (s BenchmarkStatus) CanTransitionTo(target BenchmarkStatus) bool {
	switch {
	case s == BenchmarkStatusDraft && target == BenchmarkStatusUnderReview:
		return true
	case s == BenchmarkStatusUnderReview && target == BenchmarkStatusDraft:
		return true
	case s == BenchmarkStatusUnderReview && target == BenchmarkStatusActive:
		return true
	case s == BenchmarkStatusActive && target == BenchmarkStatusDeprecated:
		return true
	case s == BenchmarkStatusDeprecated && target == BenchmarkStatusArchived:
		return true
	case s == BenchmarkStatusDeprecated && target == BenchmarkStatusActive:
		return true
	}
	return false
}

func (s BenchmarkStatus) AcceptsSubmissions() bool {
	return s == BenchmarkStatusActive || s == BenchmarkStatusDeprecated
}

var slugRegexp = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func IsValidSlug(slug string) bool {
	return slugRegexp.MatchString(slug)
}

const MinBenchmarkDescriptionLength = 50

// Benchmark is the versionless identity of a benchmark. Evaluation
// configuration lives on BenchmarkVersion.
type Benchmark struct {
	Id          uuid.UUID
	Slug        string
	Name        string
	Description string
	Category    BenchmarkCategory
	License     string
	Status      BenchmarkStatus
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateBenchmarkInput struct {
	Slug        string `validate:"required,max=128"`
	Name        string `validate:"required,min=2,max=256"`
	Description string `validate:"required"`
	Category    BenchmarkCategory
	License     string `validate:"required,max=64"`
	CreatedBy   uuid.UUID
}

type BenchmarkFilters struct {
	Status   *BenchmarkStatus
	Category *BenchmarkCategory
}

// BenchmarkSearchResult pairs a benchmark with its similarity score against
// the search query.
type BenchmarkSearchResult struct {
	Benchmark  Benchmark
	Similarity float64
}
