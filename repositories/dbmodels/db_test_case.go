package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/benchlooms/exchange-backend/models"
	"github.com/benchlooms/exchange-backend/utils"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type DBTestCase struct {
	Id                 uuid.UUID `db:"id"`
	BenchmarkVersionId uuid.UUID `db:"benchmark_version_id"`
	TestCaseId         string    `db:"test_case_id"`
	Name               string    `db:"name"`
	PromptTemplate     string    `db:"prompt_template"`
	Variables          []byte    `db:"variables"`
	EvaluationMethod   []byte    `db:"evaluation_method"`
	Weight             float64   `db:"weight"`
	CreatedAt          time.Time `db:"created_at"`
}

const TABLE_TEST_CASES = "test_cases"

var SelectTestCaseColumns = utils.ColumnList[DBTestCase]()

func AdaptTestCase(db DBTestCase) (models.TestCase, error) {
	var method models.EvaluationMethod
	if err := json.Unmarshal(db.EvaluationMethod, &method); err != nil {
		return models.TestCase{}, errors.Wrap(err, "can't unmarshal test case evaluation method")
	}

	return models.TestCase{
		Id:                 db.Id,
		BenchmarkVersionId: db.BenchmarkVersionId,
		TestCaseId:         db.TestCaseId,
		Name:               db.Name,
		PromptTemplate:     db.PromptTemplate,
		Variables:          db.Variables,
		EvaluationMethod:   method,
		Weight:             db.Weight,
		CreatedAt:          db.CreatedAt,
	}, nil
}
