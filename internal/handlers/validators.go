package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var periodTokenRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// registerCustomValidators wires custom binding validations into gin's
// validator engine. "period" accepts YYYY-MM period tokens.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("period", func(fl validator.FieldLevel) bool {
			return periodTokenRe.MatchString(fl.Field().String())
		})
	}
}
