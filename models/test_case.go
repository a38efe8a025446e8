package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EvaluationMethodType string

const (
	EvaluationExactMatch    EvaluationMethodType = "exact"
	EvaluationPatternMatch  EvaluationMethodType = "pattern"
	EvaluationSemanticMatch EvaluationMethodType = "semantic"
	EvaluationFuzzyMatch    EvaluationMethodType = "fuzzy"
	EvaluationLlmJudge      EvaluationMethodType = "llm_judge"
)

func (t EvaluationMethodType) IsValid() bool {
	switch t {
	case EvaluationExactMatch, EvaluationPatternMatch, EvaluationSemanticMatch,
		EvaluationFuzzyMatch, EvaluationLlmJudge:
		return true
	}
	return false
}

// EvaluationMethod is a tagged variant: the Config payload depends on the
// type (regex pattern, similarity threshold, judge prompt...). It is stored
// opaquely and interpreted by the external evaluation engine.
type EvaluationMethod struct {
	Type   EvaluationMethodType `json:"type"`
	Config json.RawMessage      `json:"config,omitempty"`
}

// TestCase belongs to exactly one benchmark version. TestCaseId is unique
// within its version; Weight must be in (0, 1].
type TestCase struct {
	Id               uuid.UUID
	BenchmarkVersionId uuid.UUID
	TestCaseId       string
	Name             string
	PromptTemplate   string
	Variables        json.RawMessage
	EvaluationMethod EvaluationMethod
	Weight           float64
	CreatedAt        time.Time
}

type CreateTestCaseInput struct {
	BenchmarkVersionId uuid.UUID
	TestCaseId         string `validate:"required,max=128"`
	Name               string `validate:"required,max=256"`
	PromptTemplate     string `validate:"required"`
	Variables          json.RawMessage
	EvaluationMethod   EvaluationMethod
	Weight             float64 `validate:"gt=0,lte=1"`
}
