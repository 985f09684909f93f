package dto

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterBindingValidations wires custom validations into gin's binding
// engine. "decimalstr" accepts only well-formed base-10 decimal strings so
// malformed monetary input is rejected at the boundary; direct service
// callers still get the validator-level conversion to a ValidationError.
func RegisterBindingValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine type %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("decimalstr", func(fl validator.FieldLevel) bool {
		_, err := decimal.NewFromString(fl.Field().String())
		return err == nil
	})
}
