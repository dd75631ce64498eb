package domain

import (
	"fmt"
	"strings"
	"time"
)

// NamespacePrefix marks the scope entry carrying the tenant namespace.
const NamespacePrefix = "namespace."

// AccessToken authenticates outbound requests.
type AccessToken struct {
	AccessToken string  `json:"access_token" yaml:"access_token"`
	Scope       *string `json:"scope" yaml:"scope"`

	// ExpiresAt is a unix timestamp, zero when the issuer gave no lifetime.
	ExpiresAt int64 `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

// Namespace returns the single namespace claim in the token scope.
func (t *AccessToken) Namespace() (string, error) {
	var scope string
	if t.Scope != nil {
		scope = *t.Scope
	}

	var found []string
	for _, s := range strings.Fields(scope) {
		if strings.HasPrefix(s, NamespacePrefix) {
			found = append(found, strings.TrimPrefix(s, NamespacePrefix))
		}
	}

	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return "", ErrToken.WithDetails("namespace not found")
	default:
		return "", ErrToken.WithDetails(fmt.Sprintf("multiple namespaces found: %q", found))
	}
}

// Expired reports whether the token carries an expiry that has passed,
// allowing skew for clock drift and request latency.
// Tokens without an expiry never expire.
func (t *AccessToken) Expired(now time.Time, skew time.Duration) bool {
	if t.ExpiresAt == 0 {
		return false
	}
	return !now.Add(skew).Before(time.Unix(t.ExpiresAt, 0))
}
