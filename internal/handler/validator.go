package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/prajyots60/CODE-CRAFT/internal/apperror"
)

// AppValidator wraps go-playground/validator so request structs can declare
// their constraints as tags (`validate:"required,max=100"`) instead of
// every handler hand-rolling the same if-chains.
type AppValidator struct {
	validator *validator.Validate
}

// NewAppValidator creates a new AppValidator.
func NewAppValidator() *AppValidator {
	return &AppValidator{validator: validator.New()}
}

// Validate checks a request struct against its validate tags, translating
// the first failure into an apperror so writeError maps it to a 400 like
// any other validation failure.
func (v *AppValidator) Validate(i any) error {
	if err := v.validator.Struct(i); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fe := validationErrors[0]
			return apperror.ValidationFailed(
				strings.ToLower(fe.Field()),
				fmt.Sprintf("failed on '%s' validation", fe.Tag()),
			)
		}
		return apperror.ValidationFailed("", "invalid request")
	}
	return nil
}
