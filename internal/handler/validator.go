package handler

import (
	"github.com/go-playground/validator/v10"
)

// Validator adapts go-playground/validator to echo's Validator interface.
// Handlers bind a request DTO and call c.Validate on it; tag violations
// come back as plain errors which the handler wraps into the error
// envelope with a 400 status.
type Validator struct {
	v *validator.Validate
}

// NewValidator builds the validator used for all request DTOs.
func NewValidator() *Validator {
	return &Validator{v: validator.New()}
}

// Validate implements echo.Validator.
func (val *Validator) Validate(i interface{}) error {
	return val.v.Struct(i)
}
