package helix

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

var (
	validate     = validator.New(validator.WithRequiredStructEnabled())
	queryEncoder = schema.NewEncoder()
)

func init() {
	queryEncoder.SetAliasTag(queryTag)

	// Report parameters by their wire name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{queryTag, pathTag, "json"} {
			name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
}

const (
	queryTag = "query"
	pathTag  = "path"
)

// validateStruct runs the validate tags of v. Values that are not structs
// carry no tags and always pass.
func validateStruct(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	return validate.Struct(v)
}

// describeValidation turns validator output into a short message naming
// the offending parameters.
func describeValidation(err error) string {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err.Error()
	}
	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		messages = append(messages, ve.Field()+": "+formatValidationError(ve))
	}
	return strings.Join(messages, "; ")
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "is required"
	case "required_without", "required_without_all":
		return "is required when " + ve.Param() + " is not set"
	case "excluded_with", "excluded_with_all":
		return "cannot be combined with " + ve.Param()
	case "min":
		return "must be at least " + ve.Param()
	case "max":
		return "must be at most " + ve.Param()
	case "gte":
		return "must be greater than or equal to " + ve.Param()
	case "lte":
		return "must be less than or equal to " + ve.Param()
	case "oneof":
		return "must be one of: " + ve.Param()
	default:
		return "failed " + ve.Tag() + " validation"
	}
}
