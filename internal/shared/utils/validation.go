package utils

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/folio-inc/folio/internal/shared/errors"
)

// JSONTagName makes validator report fields by their json name.
func JSONTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// FromBindingError converts gin/validator binding failures into a
// validation AppError. It returns nil for unrelated errors.
func FromBindingError(err error) *errors.AppError {
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldErrorMessage(fe))
		}
		return errors.NewValidationError("Validation failed", strings.Join(msgs, "; "))
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var timeErr *time.ParseError
	if stderrors.As(err, &syntaxErr) || stderrors.As(err, &typeErr) || stderrors.As(err, &timeErr) || stderrors.Is(err, io.EOF) {
		return errors.NewValidationError("Invalid request body", err.Error())
	}

	var numErr *strconv.NumError
	if stderrors.As(err, &numErr) {
		return errors.NewValidationError("Invalid query parameter", err.Error())
	}
	return nil
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s items", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at most %s items", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "zone":
		return fmt.Sprintf("%s contains an unknown zone", field)
	case "contentid":
		return fmt.Sprintf("%s must be a content id (ct_...)", field)
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, fe.Tag())
	}
}
