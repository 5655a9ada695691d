package token

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// SubjectDelimiter separates id, name and email in packed subjects.
const SubjectDelimiter = ":"

// UnknownEmail is substituted when a token does not carry an email.
const UnknownEmail = "unknown"

var (
	// ErrMissingClaim is returned when a required claim is missing
	ErrMissingClaim = errors.New("missing required claim")

	// ErrMalformedSubject is returned when the subject cannot be turned into a Principal
	ErrMalformedSubject = errors.New("malformed subject")
)

// requiredClaims lists the registered claims every token must carry.
var requiredClaims = []string{"jti", "iat", "exp", "nbf", "iss", "aud", "sub"}

// Principal is the authenticated caller derived from a verified token.
type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// String renders the principal in its packed id:name:email form.
func (p Principal) String() string {
	return strings.Join([]string{p.ID, p.Name, p.Email}, SubjectDelimiter)
}

// Profile carries the display attributes of the subject.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Claims represents the claim set signed into every token
type Claims struct {
	jwt.RegisteredClaims

	Profile *Profile       `json:"profile,omitempty"`
	Roles   []string       `json:"roles"`
	Extra   map[string]any `json:"extra,omitempty"`
}

// missing returns the names of required claims that are absent.
func (c *Claims) missing() []string {
	present := map[string]bool{
		"jti": c.ID != "",
		"iat": c.IssuedAt != nil,
		"exp": c.ExpiresAt != nil,
		"nbf": c.NotBefore != nil,
		"iss": c.Issuer != "",
		"aud": len(c.Audience) > 0,
		"sub": c.Subject != "",
	}

	var absent []string
	for _, name := range requiredClaims {
		if !present[name] {
			absent = append(absent, name)
		}
	}
	return absent
}

// Principal builds the caller identity from the subject claims.
//
// Tokens with a profile claim use sub as the id verbatim. Tokens without one
// carry the older packed "id:name:email" subject, which is split into at most
// three parts; values that themselves contained the delimiter cannot be
// recovered from that form.
func (c *Claims) Principal() (Principal, error) {
	if c.Profile != nil {
		email := c.Profile.Email
		if email == "" {
			email = UnknownEmail
		}
		return Principal{ID: c.Subject, Name: c.Profile.Name, Email: email}, nil
	}

	parts := strings.SplitN(c.Subject, SubjectDelimiter, 3)
	if parts[0] == "" {
		return Principal{}, fmt.Errorf("%w: empty id in subject %q", ErrMalformedSubject, c.Subject)
	}

	principal := Principal{ID: parts[0], Email: UnknownEmail}
	if len(parts) > 1 {
		principal.Name = parts[1]
	}
	if len(parts) > 2 {
		principal.Email = parts[2]
	}
	return principal, nil
}
