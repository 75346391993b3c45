package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// CustomValidator adapts go-playground/validator to echo.Validator.
type CustomValidator struct {
	validator *validator.Validate
}

var (
	validatorOnce sync.Once
	sharedValid   *CustomValidator
)

// GetValidator returns the process-wide validator. Field names in errors use
// the json tag so messages match the request payload.
func GetValidator() *CustomValidator {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		sharedValid = &CustomValidator{validator: v}
	})
	return sharedValid
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		msgs := ValidationMessages(err)
		if len(msgs) == 0 {
			return err
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return nil
}

// Engine exposes the underlying validator for packages that need raw field errors.
func (cv *CustomValidator) Engine() *validator.Validate {
	return cv.validator
}

// ValidationMessages turns validator errors into short human readable lines.
func ValidationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		// drop the root struct name
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return msgs
}
