package token

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

var (
	// ErrInvalidConfig is returned by NewCodec for unusable settings
	ErrInvalidConfig = errors.New("invalid token config")

	// ErrMalformedToken is returned when the token is not a well-formed compact JWT
	ErrMalformedToken = errors.New("malformed token")

	// ErrSignatureMismatch is returned when the signature or algorithm does not match
	ErrSignatureMismatch = errors.New("signature mismatch")

	// ErrExpiredToken is returned when the token has expired
	ErrExpiredToken = errors.New("token expired")

	// ErrTokenNotYetValid is returned when nbf or iat lies in the future
	ErrTokenNotYetValid = errors.New("token not yet valid")

	// ErrIssuerMismatch is returned when the token issuer is not the configured one
	ErrIssuerMismatch = errors.New("issuer mismatch")

	// ErrAudienceMismatch is returned when the token audience is not the configured one
	ErrAudienceMismatch = errors.New("audience mismatch")
)

// Config holds the settings a Codec is built from.
type Config struct {
	Secret     []byte
	Issuer     string
	Audience   string
	Expiration time.Duration
	// Leeway is the clock skew tolerated when checking exp, nbf and iat.
	Leeway time.Duration
}

// Codec signs and verifies identity tokens with HMAC-SHA256.
// It is immutable after NewCodec and safe for concurrent use.
type Codec struct {
	secret    []byte
	method    jwt.SigningMethod
	parser    *jwt.Parser
	issuer    string
	audience  string
	expiresIn time.Duration
	now       func() time.Time
	entropy   io.Reader
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock replaces the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

// WithEntropy replaces the randomness behind token ids. r must be safe for
// concurrent use.
func WithEntropy(r io.Reader) Option {
	return func(c *Codec) {
		c.entropy = r
	}
}

// NewCodec creates a Codec from the given config
func NewCodec(cfg Config, opts ...Option) (*Codec, error) {
	switch {
	case len(cfg.Secret) == 0:
		return nil, fmt.Errorf("%w: secret is required", ErrInvalidConfig)
	case cfg.Issuer == "":
		return nil, fmt.Errorf("%w: issuer is required", ErrInvalidConfig)
	case cfg.Audience == "":
		return nil, fmt.Errorf("%w: audience is required", ErrInvalidConfig)
	case cfg.Expiration <= 0:
		return nil, fmt.Errorf("%w: expiration must be positive", ErrInvalidConfig)
	case cfg.Leeway < 0:
		return nil, fmt.Errorf("%w: leeway must not be negative", ErrInvalidConfig)
	}

	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)

	c := &Codec{
		secret:    secret,
		method:    jwt.SigningMethodHS256,
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
		expiresIn: cfg.Expiration,
		now:       time.Now,
		entropy:   ulid.DefaultEntropy(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(cfg.Leeway),
		jwt.WithTimeFunc(c.now),
	)

	return c, nil
}

// Encode mints a token for the principal.
func (c *Codec) Encode(p Principal) (string, error) {
	issuedAt := c.now().Truncate(time.Second)

	id, err := ulid.New(ulid.Timestamp(issuedAt), c.entropy)
	if err != nil {
		return "", fmt.Errorf("generate token id: %w", err)
	}

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.expiresIn)),
			NotBefore: jwt.NewNumericDate(issuedAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ID:        id.String(),
		},
		Profile: &Profile{Name: p.Name, Email: p.Email},
		Roles:   []string{},
	}

	return c.EncodeClaims(claims)
}

// EncodeClaims signs an arbitrary claim set with the codec key.
func (c *Codec) EncodeClaims(claims *Claims) (string, error) {
	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the token and returns the principal it was issued for.
func (c *Codec) Decode(tokenString string) (Principal, error) {
	claims, err := c.DecodeClaims(tokenString)
	if err != nil {
		return Principal{}, err
	}
	return claims.Principal()
}

// DecodeClaims verifies the token and returns its full claim set.
func (c *Codec) DecodeClaims(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := c.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}
	if !token.Valid {
		return nil, ErrMalformedToken
	}

	if absent := claims.missing(); len(absent) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingClaim, strings.Join(absent, ", "))
	}

	return claims, nil
}

// classify maps a jwt library error onto the package taxonomy, keeping the
// library error in the message for logs.
func classify(err error) error {
	var kind error
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		kind = ErrMalformedToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		kind = ErrSignatureMismatch
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		kind = ErrMissingClaim
	case errors.Is(err, jwt.ErrTokenExpired):
		kind = ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		kind = ErrTokenNotYetValid
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		kind = ErrIssuerMismatch
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		kind = ErrAudienceMismatch
	default:
		kind = ErrMalformedToken
	}
	return fmt.Errorf("%w: %v", kind, err)
}
