package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/weichunauto/apigate/internal/observability"
	"github.com/weichunauto/apigate/token"
	"github.com/weichunauto/apigate/utils"
	"go.uber.org/zap"
)

const (
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
)

var (
	// ErrMissingHeader is returned when the request has no Authorization header
	ErrMissingHeader = errors.New("missing authorization header")

	// ErrMalformedHeader is returned when the Authorization header is not a bearer credential
	ErrMalformedHeader = errors.New("malformed authorization header")

	// ErrUnauthenticated is the only failure callers ever see
	ErrUnauthenticated = errors.New("unauthenticated")
)

// TokenDecoder verifies a bearer token and returns its principal
type TokenDecoder interface {
	Decode(tokenString string) (token.Principal, error)
}

// AuthMiddleware provides authentication middleware functionality
type AuthMiddleware struct {
	decoder TokenDecoder
	logger  *zap.Logger
	metrics *observability.Metrics
}

// AuthOption configures an AuthMiddleware
type AuthOption func(*AuthMiddleware)

// WithAuthMetrics records every outcome on m
func WithAuthMetrics(m *observability.Metrics) AuthOption {
	return func(a *AuthMiddleware) {
		a.metrics = m
	}
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(decoder TokenDecoder, logger *zap.Logger, opts ...AuthOption) *AuthMiddleware {
	m := &AuthMiddleware{
		decoder: decoder,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RequireAuth rejects requests without a valid bearer token. Every rejection
// gets the same 401 body; the cause is only logged.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		principal, err := m.Authenticate(r)
		if err != nil {
			m.metrics.RecordAuth(authResult(err))
			m.logger.Warn("authentication failed",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Error(err))
			_ = utils.WriteUnauthorized(w, ErrUnauthenticated.Error())
			return
		}

		m.metrics.RecordAuth(observability.AuthResultOK)
		m.logger.Debug("authentication successful",
			zap.String("request_id", requestID),
			zap.String("sub", principal.ID))

		next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, principal)))
	})
}

// Authenticate extracts the bearer token from r and decodes it.
func (m *AuthMiddleware) Authenticate(r *http.Request) (token.Principal, error) {
	tokenString, err := extractBearerToken(r)
	if err != nil {
		return token.Principal{}, err
	}
	return m.decoder.Decode(tokenString)
}

// extractBearerToken extracts the Bearer token from the Authorization header
func extractBearerToken(r *http.Request) (string, error) {
	values := r.Header.Values(authorizationHeader)
	if len(values) == 0 {
		return "", ErrMissingHeader
	}
	if len(values) > 1 {
		return "", ErrMalformedHeader
	}

	authHeader := values[0]
	if !isVisibleASCII(authHeader) {
		return "", ErrMalformedHeader
	}

	tokenString, ok := strings.CutPrefix(authHeader, bearerPrefix)
	if !ok || tokenString == "" {
		return "", ErrMalformedHeader
	}
	return tokenString, nil
}

// isVisibleASCII reports whether s holds only printable ASCII, space or tab.
func isVisibleASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\t' && (c < 0x20 || c > 0x7e) {
			return false
		}
	}
	return true
}

func authResult(err error) string {
	switch {
	case errors.Is(err, ErrMissingHeader):
		return observability.AuthResultMissingHeader
	case errors.Is(err, ErrMalformedHeader):
		return observability.AuthResultMalformedHeader
	default:
		return observability.AuthResultInvalidToken
	}
}
