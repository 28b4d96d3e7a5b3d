package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs the struct tag validation on a request payload.
func ValidateRequest(payload interface{}) error {
	return validate.Struct(payload)
}
