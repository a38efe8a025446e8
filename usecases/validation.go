package usecases

import (
	"fmt"

	"github.com/benchlooms/exchange-backend/models"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateStruct(input any) error {
	if err := validate.Struct(input); err != nil {
		return errors.Wrap(models.BadParameterError, fmt.Sprintf("invalid input: %v", err))
	}
	return nil
}
