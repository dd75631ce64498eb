package service

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/yndnr/ota-go/internal/core/domain"
	"github.com/yndnr/ota-go/internal/telemetry/logger"
)

// ConfigSaver persists the configuration after a token refresh.
type ConfigSaver interface {
	Save(cfg *domain.Config) error
}

// TokenManagerConfig holds configuration for TokenManager.
type TokenManagerConfig struct {
	// HTTPClient is used for the token request (defaults to http.DefaultClient).
	HTTPClient *http.Client

	// Skew is subtracted from a token's expiry before it is considered stale.
	Skew time.Duration

	// Now returns the current time (defaults to time.Now).
	Now func() time.Time

	// OnRefresh is called after every successful token exchange.
	OnRefresh func()
}

// DefaultTokenManagerConfig returns default configuration.
func DefaultTokenManagerConfig() *TokenManagerConfig {
	return &TokenManagerConfig{
		Skew: 10 * time.Second,
		Now:  time.Now,
	}
}

// TokenManager exchanges client credentials for access tokens and caches the
// result on the configuration.
//
// A cached token is reused without a network call until its recorded expiry
// passes. Tokens issued without a lifetime are reused until the configuration
// is re-initialized.
type TokenManager struct {
	creds      CredentialSource
	saver      ConfigSaver
	httpClient *http.Client
	skew       time.Duration
	now        func() time.Time
	onRefresh  func()
}

// NewTokenManager creates a TokenManager.
func NewTokenManager(creds CredentialSource, saver ConfigSaver, config *TokenManagerConfig) *TokenManager {
	if config == nil {
		config = DefaultTokenManagerConfig()
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}

	return &TokenManager{
		creds:      creds,
		saver:      saver,
		httpClient: config.HTTPClient,
		skew:       config.Skew,
		now:        now,
		onRefresh:  config.OnRefresh,
	}
}

// ResolveCredentials parses the credentials archive once per process and
// caches the result on cfg.
func (m *TokenManager) ResolveCredentials(cfg *domain.Config) (*domain.Credentials, error) {
	if cfg.Credentials != nil {
		return cfg.Credentials, nil
	}
	creds, err := m.creds.Parse(cfg.CredentialsZip)
	if err != nil {
		return nil, err
	}
	cfg.Credentials = creds
	return creds, nil
}

// Token returns the access token for outbound requests, or nil when the
// credentials select no-auth mode. A fresh token is saved to disk before it
// is returned.
func (m *TokenManager) Token(ctx context.Context, cfg *domain.Config) (*domain.AccessToken, error) {
	log := logger.L(ctx)

	if cfg.Token != nil {
		if !cfg.Token.Expired(m.now(), m.skew) {
			log.Debug("using cached access token")
			return cfg.Token, nil
		}
		log.Debug("cached access token expired", "expires_at", time.Unix(cfg.Token.ExpiresAt, 0))
	}

	creds, err := m.ResolveCredentials(cfg)
	if err != nil {
		return nil, err
	}
	mode, err := creds.Mode()
	if err != nil {
		return nil, err
	}
	if mode == domain.AuthNone {
		log.Debug("skipping oauth2 authentication")
		return nil, nil
	}

	token, err := m.fetch(ctx, creds.OAuth2)
	if err != nil {
		return nil, err
	}
	cfg.Token = token
	if err := m.saver.Save(cfg); err != nil {
		return nil, err
	}
	if m.onRefresh != nil {
		m.onRefresh()
	}
	return token, nil
}

// fetch performs the client-credentials grant against the issuer.
func (m *TokenManager) fetch(ctx context.Context, o *domain.OAuth2) (*domain.AccessToken, error) {
	// Id and secret are form-encoded before Basic encoding (RFC 6749 section 2.3.1).
	cc := clientcredentials.Config{
		ClientID:     o.ClientID,
		ClientSecret: o.ClientSecret,
		TokenURL:     strings.TrimSuffix(o.Server, "/") + "/token",
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	logger.L(ctx).Debug("fetching access token", "server", o.Server, "client_id", o.ClientID)

	if m.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
	}
	t, err := cc.Token(ctx)
	if err != nil {
		return nil, tokenError(err)
	}

	token := &domain.AccessToken{AccessToken: t.AccessToken}
	if s, ok := t.Extra("scope").(string); ok {
		token.Scope = &s
	}
	if !t.Expiry.IsZero() {
		token.ExpiresAt = t.Expiry.Unix()
	}
	return token, nil
}

func tokenError(err error) error {
	var retrieve *oauth2.RetrieveError
	if errors.As(err, &retrieve) {
		status := 0
		if retrieve.Response != nil {
			status = retrieve.Response.StatusCode
		}
		return domain.ErrToken.WithDetailsf("token endpoint returned status %d", status).WithCause(err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return domain.ErrTransport.WithCause(err)
	}
	return domain.ErrToken.WithCause(err)
}
