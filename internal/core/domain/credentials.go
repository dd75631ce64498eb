package domain

// Credentials is the parsed treehub.json entry of a credentials archive.
type Credentials struct {
	NoAuth *bool   `json:"no_auth,omitempty"`
	OAuth2 *OAuth2 `json:"oauth2,omitempty"`
	Ostree Ostree  `json:"ostree"`
}

// OAuth2 describes the client-credentials issuer.
type OAuth2 struct {
	Server       string `json:"server" validate:"required,url"`
	ClientID     string `json:"client_id" validate:"required"`
	ClientSecret string `json:"client_secret" validate:"required"`
}

// Ostree holds the storage backend location.
type Ostree struct {
	Server string `json:"server" validate:"required,url"`
}

// AuthMode is the authentication method selected by Credentials.
type AuthMode int

const (
	AuthNone AuthMode = iota
	AuthClientCredentials
)

// Mode resolves the authentication method. no_auth=true wins over any OAuth2
// descriptor; if neither is present the credentials are unusable.
func (c *Credentials) Mode() (AuthMode, error) {
	if c.NoAuth != nil && *c.NoAuth {
		return AuthNone, nil
	}
	if c.OAuth2 != nil {
		return AuthClientCredentials, nil
	}
	return AuthNone, ErrAuthConfig.WithDetails("no parseable auth method from credentials.zip")
}
