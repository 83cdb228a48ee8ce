// Package authenticator signs administrators in through an OpenID Connect
// provider as an alternative to the shared admin password.
package authenticator

import (
	"context"
	"errors"
	"strings"
)

// ErrNotAllowed is returned by Principal for identities outside the allow-list
var ErrNotAllowed = errors.New("authenticator: user not allowed")

// Config holds OAuth provider configuration
type Config struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// Token represents an authentication token
type Token struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	Expiry       int64
}

// Claims represents user claims from the ID token
type Claims map[string]interface{}

// Provider interface abstracts OAuth provider operations
type Provider interface {
	GetAuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*Token, error)
	GetClaims(ctx context.Context, token *Token) (Claims, error)
}

// Identity returns the most specific identifier in the claims: email, then
// preferred_username, then sub
func (c Claims) Identity() string {
	for _, key := range []string{"email", "preferred_username", "sub"} {
		if v, ok := c[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// Principal maps claims to an admin principal. Only identities on the
// allow-list are accepted; comparison ignores case.
func Principal(claims Claims, allowed []string) (string, error) {
	identity := claims.Identity()
	if identity == "" {
		return "", errors.New("authenticator: token carries no identity")
	}

	// An unverified email must not grant access
	if _, hasEmail := claims["email"]; hasEmail {
		if verified, ok := claims["email_verified"].(bool); ok && !verified {
			return "", ErrNotAllowed
		}
	}

	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSpace(a), identity) {
			return identity, nil
		}
	}
	return "", ErrNotAllowed
}
