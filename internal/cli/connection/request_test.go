package connection

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/yndnr/ota-go/internal/core/domain"
)

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base  string
		path  string
		query url.Values
		want  string
	}{
		{"https://r.example.com/", "api/v1/devices", nil, "https://r.example.com/api/v1/devices"},
		{"https://r.example.com/prefix/", "api/v1/devices", nil, "https://r.example.com/prefix/api/v1/devices"},
		{"https://r.example.com/prefix", "/api/v1/devices", nil, "https://r.example.com/prefix/api/v1/devices"},
		{"http://localhost:9001/", "api/v1/devices", url.Values{"deviceName": {"car 1"}}, "http://localhost:9001/api/v1/devices?deviceName=car+1"},
	}
	for _, tt := range tests {
		got, err := ResolveURL(tt.base, tt.path, tt.query)
		if err != nil {
			t.Fatalf("ResolveURL(%q, %q) error = %v", tt.base, tt.path, err)
		}
		if got != tt.want {
			t.Errorf("ResolveURL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}

func TestRequest_BuildJSON(t *testing.T) {
	r := Request{
		Method: http.MethodPost,
		Path:   "api/v1/device_groups",
		JSON:   map[string]string{"name": "fleet", "groupType": "static"},
	}
	req, err := r.Build(context.Background(), "https://r.example.com/")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if req.Header.Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", req.Header.Get("Content-Type"))
	}
	body, _ := io.ReadAll(req.Body)
	if string(body) != `{"groupType":"static","name":"fleet"}` {
		t.Errorf("body = %s", body)
	}
}

func readForm(t *testing.T, req *http.Request) *multipart.Form {
	t.Helper()
	_, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil {
		t.Fatalf("content type: %v", err)
	}
	form, err := multipart.NewReader(req.Body, params["boundary"]).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	return form
}

func TestRequest_BuildMultipart(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "image.bin")
		os.WriteFile(path, []byte("firmware"), 0o600)

		r := Request{Method: http.MethodPut, Path: "api/v1/user_repo/targets/foo-1", Upload: &domain.RepoTarget{Path: path}}
		req, err := r.Build(context.Background(), "https://repo/")
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		defer req.Body.Close()
		form := readForm(t, req)
		files := form.File["file"]
		if len(files) != 1 || files[0].Filename != "image.bin" {
			t.Fatalf("file parts = %+v", files)
		}
		f, _ := files[0].Open()
		data, _ := io.ReadAll(f)
		if string(data) != "firmware" {
			t.Errorf("file content = %q", data)
		}
	})

	t.Run("url", func(t *testing.T) {
		r := Request{Method: http.MethodPut, Path: "x", Upload: &domain.RepoTarget{URL: "https://cdn/foo.bin"}}
		req, err := r.Build(context.Background(), "https://repo/")
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		form := readForm(t, req)
		if got := form.Value["fileUri"]; len(got) != 1 || got[0] != "https://cdn/foo.bin" {
			t.Errorf("fileUri = %v", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		r := Request{Method: http.MethodPut, Path: "x", Upload: &domain.RepoTarget{Path: filepath.Join(t.TempDir(), "nope")}}
		if _, err := r.Build(context.Background(), "https://repo/"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestRequest_BuildMultipart_StreamsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.bin")
	if err := os.WriteFile(path, []byte("firmware"), 0o600); err != nil {
		t.Fatal(err)
	}

	r := Request{Method: http.MethodPut, Path: "x", Upload: &domain.RepoTarget{Path: path}}
	req, err := r.Build(context.Background(), "https://repo/")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer req.Body.Close()

	// Same size, new content: the body must read the file at send time.
	if err := os.WriteFile(path, []byte("FIRMWARE"), 0o600); err != nil {
		t.Fatal(err)
	}

	raw, err := io.ReadAll(req.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if req.ContentLength != int64(len(raw)) {
		t.Errorf("ContentLength = %d, body = %d bytes", req.ContentLength, len(raw))
	}
	if !bytes.Contains(raw, []byte("FIRMWARE")) || bytes.Contains(raw, []byte("firmware")) {
		t.Errorf("body was not read from disk at send time:\n%s", raw)
	}

	req.Body = io.NopCloser(bytes.NewReader(raw))
	form := readForm(t, req)
	if files := form.File["file"]; len(files) != 1 || files[0].Size != int64(len("FIRMWARE")) {
		t.Errorf("file parts = %+v", files)
	}
}
