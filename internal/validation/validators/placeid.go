package validators

import (
	"github.com/go-playground/validator/v10"
)

// ValidatePlaceID accepts positive integer place ids only.
func ValidatePlaceID(fl validator.FieldLevel) bool {
	return fl.Field().Int() > 0
}
