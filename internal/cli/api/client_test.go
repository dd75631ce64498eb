package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/yndnr/ota-go/internal/cli/connection"
	"github.com/yndnr/ota-go/internal/core/domain"
)

// recordingDoer captures every request and answers from a queue.
type recordingDoer struct {
	calls     []call
	responses []*connection.Response
	err       error
}

type call struct {
	svc domain.Service
	req connection.Request
}

func (d *recordingDoer) Do(_ context.Context, svc domain.Service, r connection.Request) (*connection.Response, error) {
	d.calls = append(d.calls, call{svc: svc, req: r})
	if d.err != nil {
		return nil, d.err
	}
	if len(d.responses) == 0 {
		return &connection.Response{StatusCode: http.StatusOK}, nil
	}
	resp := d.responses[0]
	d.responses = d.responses[1:]
	return resp, nil
}

func (d *recordingDoer) last(t *testing.T) call {
	t.Helper()
	if len(d.calls) == 0 {
		t.Fatal("no request sent")
	}
	return d.calls[len(d.calls)-1]
}

func ok(body string) *connection.Response {
	return &connection.Response{StatusCode: http.StatusOK, Body: []byte(body)}
}

// jsonBody re-encodes a request body for comparison.
func jsonBody(t *testing.T, v any) map[string]any {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	return m
}

func expectRequest(t *testing.T, c call, svc domain.Service, method, path string) {
	t.Helper()
	if c.svc != svc {
		t.Errorf("service = %q, want %q", c.svc, svc)
	}
	if c.req.Method != method {
		t.Errorf("method = %q, want %q", c.req.Method, method)
	}
	if c.req.Path != path {
		t.Errorf("path = %q, want %q", c.req.Path, path)
	}
}
