package domain

import (
	"net/url"
	"strings"
)

// Config is the persisted CLI configuration.
//
// One value exists per process. It is loaded at the start of each
// invocation and written back after a token refresh.
type Config struct {
	CredentialsZip string `json:"credentials_zip" yaml:"credentials_zip" validate:"required"`

	Campaigner string `json:"campaigner" yaml:"campaigner" validate:"required,url"`
	Director   string `json:"director" yaml:"director" validate:"required,url"`
	Registry   string `json:"registry" yaml:"registry" validate:"required,url"`
	Reposerver string `json:"reposerver" yaml:"reposerver" validate:"required,url"`

	Token *AccessToken `json:"token,omitempty" yaml:"token,omitempty"`

	// Credentials is resolved from CredentialsZip on demand and never persisted.
	Credentials *Credentials `json:"-" yaml:"-"`
}

// Service identifies one of the four backends.
type Service string

const (
	ServiceCampaigner Service = "campaigner"
	ServiceDirector   Service = "director"
	ServiceRegistry   Service = "registry"
	ServiceReposerver Service = "reposerver"
)

// BaseURL returns the configured base URL for svc.
func (c *Config) BaseURL(svc Service) string {
	switch svc {
	case ServiceCampaigner:
		return c.Campaigner
	case ServiceDirector:
		return c.Director
	case ServiceRegistry:
		return c.Registry
	case ServiceReposerver:
		return c.Reposerver
	default:
		return ""
	}
}

// Normalize validates the record and rewrites every base URL to end in '/'
// so endpoint paths can be appended directly.
func (c *Config) Normalize() error {
	for _, u := range []*string{&c.Campaigner, &c.Director, &c.Registry, &c.Reposerver} {
		*u = strings.TrimSpace(*u)
	}
	if err := Validate(c); err != nil {
		return err
	}
	for _, u := range []*string{&c.Campaigner, &c.Director, &c.Registry, &c.Reposerver} {
		parsed, err := url.Parse(*u)
		if err != nil {
			return ErrParse.WithCause(err)
		}
		if !strings.HasSuffix(parsed.Path, "/") {
			parsed.Path += "/"
		}
		*u = parsed.String()
	}
	return nil
}
