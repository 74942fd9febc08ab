package validator

import (
	"reflect"
	"strings"

	"github.com/coachlab/notification-service/pkg/helper"
	"github.com/go-playground/validator/v10"
)

// StructValidator validator for struct tags, errors keyed by json field path
type StructValidator struct {
	validator *validator.Validate
}

// NewStructValidator using go-playground/validator
func NewStructValidator() *StructValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &StructValidator{validator: v}
}

// ValidateStruct validation, return helper.MultiError when invalid
func (v *StructValidator) ValidateStruct(data interface{}) error {
	if err := v.validator.Struct(data); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}

		multiError := helper.NewMultiError()
		for _, e := range errs {
			field := e.Namespace()
			if idx := strings.Index(field, "."); idx >= 0 {
				field = field[idx+1:]
			}
			multiError.Append(field, &fieldError{tag: e.Tag(), param: e.Param()})
		}
		return multiError
	}
	return nil
}

type fieldError struct {
	tag, param string
}

func (e *fieldError) Error() string {
	if e.param != "" {
		return e.tag + "=" + e.param
	}
	return e.tag
}
