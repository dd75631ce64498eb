package config

import (
	"github.com/yndnr/ota-go/internal/core/domain"
	"github.com/yndnr/ota-go/internal/infra/confloader"
	"github.com/yndnr/ota-go/internal/telemetry/logger"
)

// InitOptions are the values given to `ota init`.
type InitOptions struct {
	Credentials string
	Campaigner  string
	Director    string
	Registry    string
	// Reposerver is optional; it defaults to the archive's tufrepo.url.
	Reposerver string
}

// RepoURLReader reads the repository server URL from a credentials archive.
type RepoURLReader interface {
	RepoURL(path string) (string, error)
}

// Init builds a fresh configuration from opts and saves it, replacing any
// previous record and cached token.
func Init(store Store, archive RepoURLReader, opts InitOptions) (*domain.Config, error) {
	values := map[string]any{
		"credentials_zip": opts.Credentials,
		"campaigner":      opts.Campaigner,
		"director":        opts.Director,
		"registry":        opts.Registry,
		"reposerver":      opts.Reposerver,
	}
	if opts.Reposerver == "" {
		logger.Default().Debug("reading tufrepo.url from credentials archive", "path", opts.Credentials)
		repo, err := archive.RepoURL(opts.Credentials)
		if err != nil {
			return nil, err
		}
		values["reposerver"] = repo
	}

	l := confloader.NewLoader()
	if err := l.LoadMap(values); err != nil {
		return nil, domain.ErrParse.WithCause(err)
	}
	var cfg domain.Config
	if err := l.Unmarshal(&cfg); err != nil {
		return nil, domain.ErrParse.WithCause(err)
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}

	if err := store.Save(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
