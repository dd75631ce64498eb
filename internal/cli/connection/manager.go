package connection

import (
	"context"

	"github.com/yndnr/ota-go/internal/cli/config"
	"github.com/yndnr/ota-go/internal/core/domain"
	"github.com/yndnr/ota-go/internal/core/service"
)

// Manager is the session of one CLI invocation. It owns the single loaded
// configuration and threads it through every token lookup and request.
type Manager struct {
	store  config.Store
	tokens *service.TokenManager
	client *HTTPClient
	cfg    *domain.Config
}

// NewManager creates a session. The configuration is loaded lazily by the
// first call to Open or Do.
func NewManager(store config.Store, tokens *service.TokenManager, client *HTTPClient) *Manager {
	return &Manager{
		store:  store,
		tokens: tokens,
		client: client,
	}
}

// Open loads the configuration if it has not been loaded yet.
func (m *Manager) Open() (*domain.Config, error) {
	if m.cfg != nil {
		return m.cfg, nil
	}
	cfg, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	m.cfg = cfg
	return cfg, nil
}

// Do obtains the access token, builds r against the base URL of svc and
// sends it through the pipeline.
func (m *Manager) Do(ctx context.Context, svc domain.Service, r Request) (*Response, error) {
	cfg, err := m.Open()
	if err != nil {
		return nil, err
	}

	token, err := m.tokens.Token(ctx, cfg)
	if err != nil {
		return nil, err
	}

	ctx = WithService(ctx, svc)
	req, err := r.Build(ctx, cfg.BaseURL(svc))
	if err != nil {
		return nil, err
	}
	return m.client.Send(ctx, req, token)
}
