package project

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("jackfield_app", func(fl validator.FieldLevel) bool {
			return fl.Field().String() == Application
		})

		validateInst = v
	})

	return validateInst
}

// validateEnvelope 检查必需字段、应用名以及 "1." 开头的版本号。
func validateEnvelope(env *Envelope) error {
	if err := validatorInstance().Struct(env); err != nil {
		return convertValidationError(err, env)
	}
	return nil
}

func convertValidationError(err error, env *Envelope) error {
	ves, ok := err.(validator.ValidationErrors)
	if !ok || len(ves) == 0 {
		return err
	}
	ve := ves[0]
	field := strings.ToLower(ve.Field())
	switch ve.Tag() {
	case "required":
		return fmt.Errorf("%w: %s", ErrMissingField, jsonName(field))
	case "jackfield_app":
		return fmt.Errorf("%w: %q", ErrWrongApplication, env.Application)
	case "startswith":
		return fmt.Errorf("%w: %q", ErrUnsupportedVersion, env.Version)
	default:
		return fmt.Errorf("%s failed validation for tag '%s'", jsonName(field), ve.Tag())
	}
}

func jsonName(field string) string {
	if field == "labelstrip" {
		return "label_strip"
	}
	return field
}
