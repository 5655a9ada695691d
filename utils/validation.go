package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is the singleton validator instance
	validate *validator.Validate

	// emailRegex is a simple email validation regex
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// MessageTag is the struct tag that overrides the generated field message.
// A tag named MessageTag + "_" + <constraint>, e.g. `message_lte`, overrides it
// for that constraint only.
const MessageTag = "message"

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields under the name the caller sent them with.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return ""
	})

	if err := validate.RegisterValidation("email_format", func(fl validator.FieldLevel) bool {
		return emailRegex.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register email_format validation: %v", err))
	}
}

// ErrorKind tells whether a request failed to decode or failed its constraints
type ErrorKind string

const (
	// KindExtraction means the raw data could not be decoded into the target type
	KindExtraction ErrorKind = "extraction"

	// KindValidation means the decoded value violated a declared constraint
	KindValidation ErrorKind = "validation"
)

// FieldError is a single field-level failure
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationError is the single error type for rejected request input
type ValidationError struct {
	Source  string
	Kind    ErrorKind
	Message string
	Fields  []FieldError
	Err     error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap returns the decode error of an extraction failure
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewExtractionError wraps a decode failure from the named source
func NewExtractionError(source string, err error) *ValidationError {
	return &ValidationError{
		Source:  source,
		Kind:    KindExtraction,
		Message: fmt.Sprintf("invalid %s: %v", source, err),
		Err:     err,
	}
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewValidationError(reflect.TypeOf(s), validationErrors)
		}
		return err
	}
	return nil
}

// NewValidationError creates a ValidationError from validator.ValidationErrors.
// root is the type that was validated; it is used to look up message tags.
func NewValidationError(root reflect.Type, errs validator.ValidationErrors) *ValidationError {
	fields := make([]FieldError, 0, len(errs))
	messages := make([]string, 0, len(errs))

	for _, err := range errs {
		msg := customMessage(root, err.StructNamespace(), err.Tag())
		if msg == "" {
			msg = defaultMessage(err)
		}
		fields = append(fields, FieldError{Field: err.Field(), Tag: err.Tag(), Message: msg})
		messages = append(messages, msg)
	}

	return &ValidationError{
		Kind:    KindValidation,
		Message: strings.Join(messages, "; "),
		Fields:  fields,
	}
}

func defaultMessage(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email", "email_format":
		return fmt.Sprintf("%s must be a valid email", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, err.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, err.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, err.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, err.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, err.Param())
	default:
		return fmt.Sprintf("%s validation failed on '%s' tag", field, err.Tag())
	}
}

// customMessage walks the struct namespace (e.g. "Params.Items[0].Name") from
// root and returns the message tag of the failing field, if any.
func customMessage(root reflect.Type, namespace, constraint string) string {
	parts := strings.Split(namespace, ".")
	if root == nil || len(parts) < 2 {
		return ""
	}

	t := root
	var field reflect.StructField
	for _, part := range parts[1:] {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			return ""
		}

		name, indexed := part, false
		if i := strings.IndexByte(part, '['); i >= 0 {
			name, indexed = part[:i], true
		}

		f, ok := t.FieldByName(name)
		if !ok {
			return ""
		}
		field, t = f, f.Type

		if indexed {
			for t.Kind() == reflect.Pointer {
				t = t.Elem()
			}
			switch t.Kind() {
			case reflect.Slice, reflect.Array, reflect.Map:
				t = t.Elem()
			}
		}
	}

	if msg := field.Tag.Get(MessageTag + "_" + constraint); msg != "" {
		return msg
	}
	return field.Tag.Get(MessageTag)
}
