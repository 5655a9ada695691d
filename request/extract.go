// Package request decodes request data and validates it in one step, reporting
// both kinds of failure as a *utils.ValidationError.
package request

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/weichunauto/apigate/utils"
)

// Defaulter is implemented by parameter types that need non-zero defaults
// before decoding. Fields absent from the request keep these values.
type Defaulter interface {
	SetDefaults()
}

// Extract decodes T from src and validates it. T must be a struct type.
func Extract[T any](r *http.Request, src Source) (T, error) {
	var zero T

	var v T
	if d, ok := any(&v).(Defaulter); ok {
		d.SetDefaults()
	}

	if err := src.Decode(r, &v); err != nil {
		return zero, utils.NewExtractionError(src.Name(), err)
	}

	if err := utils.ValidateStruct(&v); err != nil {
		var verr *utils.ValidationError
		if errors.As(err, &verr) {
			verr.Source = src.Name()
			return zero, verr
		}
		return zero, fmt.Errorf("validate %T: %w", v, err)
	}

	return v, nil
}

// Query extracts T from the URL query string.
func Query[T any](r *http.Request) (T, error) {
	return Extract[T](r, QuerySource{})
}

// Path extracts T from the matched route parameters.
func Path[T any](r *http.Request) (T, error) {
	return Extract[T](r, PathSource{})
}

// JSON extracts T from the JSON request body.
func JSON[T any](r *http.Request) (T, error) {
	return Extract[T](r, JSONSource{})
}
