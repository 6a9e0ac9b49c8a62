package validation

import (
	"github.com/go-playground/validator/v10"

	"github.com/placescout/placescout/internal/validation/validators"
)

func New() (*validator.Validate, error) {
	validate := validator.New()
	if err := validate.RegisterValidation("placeid", validators.ValidatePlaceID); err != nil {
		return nil, err
	}
	return validate, nil
}
