package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	canvaserrors "github.com/alexisbeaulieu97/canvasgen/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	nodeIDPattern    = regexp.MustCompile(`^(I?[0-9]+:[0-9]+)(;[0-9]+:[0-9]+)*$`)
	fontStylePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9 ]*$`)
	logLevels        = map[string]struct{}{"trace": {}, "debug": {}, "info": {}, "warn": {}, "error": {}, "fatal": {}, "panic": {}, "disabled": {}}
)

// validatorInstance configures and returns the shared validator instance.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(taggedFieldName)

		_ = v.RegisterValidation("node_id", func(fl validator.FieldLevel) bool {
			return nodeIDPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("font_style", func(fl validator.FieldLevel) bool {
			return fontStylePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("log_level", func(fl validator.FieldLevel) bool {
			value := strings.ToLower(fl.Field().String())
			if value == "" {
				return true
			}
			_, ok := logLevels[value]
			return ok
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns the configured validator instance for callers that
// need to run partial or var-level validation.
func GetValidator() *validator.Validate {
	return validatorInstance()
}

// Struct validates the supplied struct and converts the first failure into a
// *errors.ValidationError named after the yaml/json field path.
func Struct(value interface{}) error {
	return convertValidationError(validatorInstance().Struct(value))
}

// convertValidationError normalizes validator errors into canvasgen validation errors.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := fieldPath(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return canvaserrors.NewValidationError(field, msg, err)
	}

	return canvaserrors.NewValidationError("", err.Error(), err)
}

// fieldPath drops the root struct name from the namespace, which already
// carries yaml/json names thanks to taggedFieldName.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

func taggedFieldName(field reflect.StructField) string {
	for _, tag := range []string{"yaml", "json"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}
