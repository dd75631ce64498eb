package connection

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yndnr/ota-go/internal/core/domain"
	"github.com/yndnr/ota-go/internal/core/service"
)

type memStore struct {
	cfg   *domain.Config
	err   error
	loads int
	saves int
}

func (s *memStore) Load() (*domain.Config, error) {
	s.loads++
	return s.cfg, s.err
}

func (s *memStore) Save(*domain.Config) error {
	s.saves++
	return nil
}

type noAuthSource struct{}

func (noAuthSource) Parse(string) (*domain.Credentials, error) {
	yes := true
	return &domain.Credentials{NoAuth: &yes}, nil
}

func TestManager_Do(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/devices" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("no-auth request carries Authorization")
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	store := &memStore{cfg: &domain.Config{Registry: server.URL + "/"}}
	m := NewManager(store, service.NewTokenManager(noAuthSource{}, store, nil), NewHTTPClient())

	for i := 0; i < 2; i++ {
		resp, err := m.Do(context.Background(), domain.ServiceRegistry, Request{Method: http.MethodGet, Path: "api/v1/devices"})
		if err != nil {
			t.Fatalf("Do failed: %v", err)
		}
		if string(resp.Body) != "[]" {
			t.Errorf("body = %q", resp.Body)
		}
	}
	if store.loads != 1 {
		t.Errorf("config loaded %d times, want 1", store.loads)
	}
	if store.saves != 0 {
		t.Errorf("config saved %d times in no-auth mode", store.saves)
	}
}

func TestManager_Do_CachedToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer cached" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get(HeaderNamespace) != "acme" {
			t.Errorf("namespace = %q", r.Header.Get(HeaderNamespace))
		}
	}))
	defer server.Close()

	scope := "namespace.acme"
	store := &memStore{cfg: &domain.Config{
		Director: server.URL + "/",
		Token:    &domain.AccessToken{AccessToken: "cached", Scope: &scope},
	}}
	m := NewManager(store, service.NewTokenManager(noAuthSource{}, store, nil), NewHTTPClient())
	if _, err := m.Do(context.Background(), domain.ServiceDirector, Request{Method: http.MethodPut, Path: "api/v1/x"}); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
}

func TestManager_Open_Error(t *testing.T) {
	store := &memStore{err: domain.NotFound("Config file", "Please run `ota init` first.")}
	m := NewManager(store, nil, NewHTTPClient())
	if _, err := m.Do(context.Background(), domain.ServiceRegistry, Request{}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if m.cfg != nil {
		t.Error("configuration cached after a failed load")
	}
}
