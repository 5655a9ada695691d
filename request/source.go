package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/form/v4"
)

// DefaultMaxBodyBytes caps JSON bodies read by JSONSource.
const DefaultMaxBodyBytes int64 = 1 << 20

var (
	// ErrUnsupportedContentType is returned when a JSON body is sent with another media type
	ErrUnsupportedContentType = errors.New("expected request with `Content-Type: application/json`")

	// ErrEmptyBody is returned when a JSON body is required but absent
	ErrEmptyBody = errors.New("request body is empty")

	// ErrTrailingData is returned when the body holds more than one JSON value
	ErrTrailingData = errors.New("request body must contain a single JSON value")

	// ErrNoRouteContext is returned when path params are read outside a chi route
	ErrNoRouteContext = errors.New("no route context on request")
)

// Source decodes one part of a request into a value.
type Source interface {
	// Name identifies the source in error messages.
	Name() string
	Decode(r *http.Request, dst any) error
}

// decoder is safe for concurrent use and caches struct metadata.
var decoder = newFormDecoder()

func newFormDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.SetTagName("form")
	return d
}

// QuerySource reads the URL query string.
type QuerySource struct{}

func (QuerySource) Name() string { return "query params" }

func (QuerySource) Decode(r *http.Request, dst any) error {
	return decoder.Decode(dst, r.URL.Query())
}

// PathSource reads the route parameters matched by chi.
type PathSource struct{}

func (PathSource) Name() string { return "path params" }

func (PathSource) Decode(r *http.Request, dst any) error {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return ErrNoRouteContext
	}

	values := make(url.Values, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		values.Add(key, rctx.URLParams.Values[i])
	}
	return decoder.Decode(dst, values)
}

// JSONSource reads a JSON request body. Unknown fields are ignored.
type JSONSource struct {
	// MaxBytes limits the body size; zero means DefaultMaxBodyBytes.
	MaxBytes int64
}

func (JSONSource) Name() string { return "json body" }

func (s JSONSource) Decode(r *http.Request, dst any) error {
	if !isJSONContentType(r.Header.Get("Content-Type")) {
		return ErrUnsupportedContentType
	}
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}

	limit := s.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, limit))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}
	return nil
}

func isJSONContentType(value string) bool {
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return false
	}
	return mediaType == "application/json" ||
		(strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json"))
}
