package command

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/yndnr/ota-go/internal/core/domain"
)

// multipartFields decodes a recorded multipart body into field name to value.
func multipartFields(t *testing.T, req recordedRequest) map[string]string {
	t.Helper()

	_, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil {
		t.Fatalf("content type: %v", err)
	}
	fields := make(map[string]string)
	mr := multipart.NewReader(bytes.NewReader(req.Body), params["boundary"])
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return fields
		}
		if err != nil {
			t.Fatalf("next part: %v", err)
		}
		data, _ := io.ReadAll(part)
		fields[part.FormName()] = string(data)
	}
}

func TestPackageAdd(t *testing.T) {
	t.Run("from file", func(t *testing.T) {
		server := newMockServer(t)
		file := writeFile(t, "app.bin", "firmware-bytes")

		res := runWith(t, server, "package", "add",
			"--name", "app", "--version", "1.2", "--format", "BINARY",
			"--hardware", "hw-a", "--hardware", "hw-b", "--path", file)
		if res.Err != nil {
			t.Fatalf("run failed: %v", res.Err)
		}

		req := server.only(t)
		if req.Method != http.MethodPut || req.Path != "/api/v1/user_repo/targets/app-1.2" {
			t.Errorf("request = %s %s", req.Method, req.Path)
		}
		for k, v := range map[string]string{"name": "app", "version": "1.2", "hardwareIds": "hw-a,hw-b", "targetFormat": "BINARY"} {
			if got := req.Query[k]; len(got) != 1 || got[0] != v {
				t.Errorf("query %s = %v, want %q", k, got, v)
			}
		}
		if got := multipartFields(t, req)["file"]; got != "firmware-bytes" {
			t.Errorf("file part = %q", got)
		}
	})

	t.Run("by url", func(t *testing.T) {
		server := newMockServer(t)

		res := runWith(t, server, "package", "add",
			"--name", "app", "--version", "2", "--format", "ostree",
			"--hardware", "hw-a", "--url", "https://cdn.example.com/app-2")
		if res.Err != nil {
			t.Fatalf("run failed: %v", res.Err)
		}
		req := server.only(t)
		if got := multipartFields(t, req)["fileUri"]; got != "https://cdn.example.com/app-2" {
			t.Errorf("fileUri = %q", got)
		}
		if got := req.Query["targetFormat"]; len(got) != 1 || got[0] != "OSTREE" {
			t.Errorf("targetFormat = %v", got)
		}
	})
}

func TestPackageAdd_Invalid(t *testing.T) {
	base := []string{"package", "add", "--name", "app", "--version", "1", "--hardware", "hw"}

	tests := []struct {
		name  string
		flags []string
		want  error
	}{
		{"neither path nor url", nil, domain.ErrArgs},
		{"both path and url", []string{"--path", "a.bin", "--url", "https://cdn.example.com/a"}, domain.ErrArgs},
		{"unknown format", []string{"--format", "tarball", "--url", "https://cdn.example.com/a"}, domain.ErrParse},
		{"missing file", []string{"--path", "/nonexistent/app.bin"}, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newMockServer(t)
			res := runWith(t, server, append(append([]string(nil), base...), tt.flags...)...)
			if !errors.Is(res.Err, tt.want) {
				t.Errorf("error = %v, want %v", res.Err, tt.want)
			}
			if n := len(server.recorded()); n != 0 {
				t.Errorf("requests = %d, want none", n)
			}
		})
	}
}

func TestPackageFetch(t *testing.T) {
	server := newMockServer(t)
	server.handle("GET /api/v1/user_repo/targets/app-1.2", rawResponse(http.StatusOK, "binary-payload"))

	res := runWith(t, server, "package", "fetch", "--name", "app", "--version", "1.2")
	if res.Err != nil {
		t.Fatalf("run failed: %v", res.Err)
	}
	if res.Stdout != "binary-payload" {
		t.Errorf("stdout = %q", res.Stdout)
	}
}

func TestPackageList_Table(t *testing.T) {
	server := newMockServer(t)
	server.handle("GET /api/v1/user_repo/targets.json", rawResponse(http.StatusOK,
		`{"signed":{"targets":{"app-1":{"length":3,"custom":{"name":"app","version":"1","hardwareIds":["hw-a","hw-b"],"targetFormat":"BINARY","uri":null,"updatedAt":"2024-05-01T10:00:00Z"}}}}}`))

	res := runWith(t, server, "-t", "package", "list")
	if res.Err != nil {
		t.Fatalf("run failed: %v", res.Err)
	}
	for _, want := range []string{"ENTRY", "app-1", "hw-a,hw-b", "BINARY"} {
		if !strings.Contains(res.Stdout, want) {
			t.Errorf("table missing %q:\n%s", want, res.Stdout)
		}
	}
}

const uploadTOML = `
[beta.1]
format = "binary"
hardware = ["hw-a"]
url = "https://cdn.example.com/beta-1"

[alpha.2]
format = "binary"
hardware = ["hw-a"]
url = "https://cdn.example.com/alpha-2"

[alpha.1]
format = "binary"
hardware = ["hw-a"]
url = "https://cdn.example.com/alpha-1"
`

func TestPackageUpload(t *testing.T) {
	t.Run("uploads in order with progress", func(t *testing.T) {
		server := newMockServer(t)
		server.handle("PUT /api/v1/user_repo/targets/beta-1", rawResponse(http.StatusOK, "last"))

		res := runWith(t, server, "package", "upload", "--packages", writeFile(t, "packages.toml", uploadTOML))
		if res.Err != nil {
			t.Fatalf("run failed: %v", res.Err)
		}

		var paths []string
		for _, req := range server.recorded() {
			paths = append(paths, req.Path)
		}
		want := []string{
			"/api/v1/user_repo/targets/alpha-1",
			"/api/v1/user_repo/targets/alpha-2",
			"/api/v1/user_repo/targets/beta-1",
		}
		if strings.Join(paths, " ") != strings.Join(want, " ") {
			t.Errorf("paths = %v, want %v", paths, want)
		}
		if res.Stdout != "last" {
			t.Errorf("stdout = %q, want the last response", res.Stdout)
		}
		if !strings.Contains(res.Stderr, "3/3 beta-1") {
			t.Errorf("stderr = %q, want progress", res.Stderr)
		}
	})

	t.Run("stops at first rejection", func(t *testing.T) {
		server := newMockServer(t)
		server.handle("PUT /api/v1/user_repo/targets/alpha-2", rawResponse(http.StatusConflict, "exists"))

		res := runWith(t, server, "--quiet", "package", "upload", "--packages", writeFile(t, "packages.toml", uploadTOML))
		if !errors.Is(res.Err, domain.ErrHTTPStatus) {
			t.Errorf("error = %v, want ErrHTTPStatus", res.Err)
		}
		if n := len(server.recorded()); n != 2 {
			t.Errorf("requests = %d, want 2", n)
		}
		if res.Stdout != "exists" {
			t.Errorf("stdout = %q, want the rejected response", res.Stdout)
		}
		if strings.Contains(res.Stderr, "uploading") {
			t.Errorf("stderr = %q, want no progress with --quiet", res.Stderr)
		}
	})

	t.Run("invalid file sends nothing", func(t *testing.T) {
		server := newMockServer(t)
		bad := writeFile(t, "packages.toml", "[app.1]\nformat = \"binary\"\nhardware = [\"hw\"]\n")

		res := runWith(t, server, "package", "upload", "--packages", bad)
		if !errors.Is(res.Err, domain.ErrParse) {
			t.Errorf("error = %v, want ErrParse", res.Err)
		}
		if n := len(server.recorded()); n != 0 {
			t.Errorf("requests = %d, want none", n)
		}
	})
}
