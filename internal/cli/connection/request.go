package connection

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/yndnr/ota-go/internal/core/domain"
)

// Request describes one call relative to a service base URL.
type Request struct {
	Method string
	// Path is relative to the service base, e.g. "api/v1/devices".
	Path  string
	Query url.Values

	// JSON is encoded as an application/json body when non-nil.
	JSON any
	// Upload is sent as a multipart form when non-nil.
	Upload *domain.RepoTarget
}

// Build creates the *http.Request for r against base. A file upload is
// streamed from disk; the file is closed together with the request body.
func (r Request) Build(ctx context.Context, base string) (*http.Request, error) {
	u, err := ResolveURL(base, r.Path, r.Query)
	if err != nil {
		return nil, err
	}

	var (
		body        io.Reader
		size        int64 = -1
		contentType string
	)
	switch {
	case r.Upload != nil:
		mb, err := multipartBody(*r.Upload)
		if err != nil {
			return nil, err
		}
		body, size, contentType = mb, mb.size, mb.contentType
	case r.JSON != nil:
		data, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, domain.ErrParse.WithDetails("encoding request body").WithCause(err)
		}
		body, contentType = bytes.NewReader(data), "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u, body)
	if err != nil {
		if c, ok := body.(io.Closer); ok {
			c.Close()
		}
		return nil, domain.ErrParse.WithCause(err)
	}
	if size >= 0 {
		req.ContentLength = size
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// ResolveURL joins a base URL ending in '/' with a relative path and query.
func ResolveURL(base, path string, query url.Values) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", domain.ErrParse.WithDetails("base URL " + base).WithCause(err)
	}
	if !strings.HasSuffix(b.Path, "/") {
		b.Path += "/"
	}
	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", domain.ErrParse.WithDetails("path " + path).WithCause(err)
	}
	u := b.ResolveReference(ref)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

// formBody is an encoded multipart form. A file part is read from the open
// file between a pre-rendered head and tail.
type formBody struct {
	io.Reader
	file        *os.File
	size        int64
	contentType string
}

func (b *formBody) Close() error {
	if b.file == nil {
		return nil
	}
	return b.file.Close()
}

// multipartBody encodes target as a form with either a "file" part read from
// disk or a "fileUri" field. File content is never buffered in memory.
func multipartBody(target domain.RepoTarget) (*formBody, error) {
	var head bytes.Buffer
	w := multipart.NewWriter(&head)

	switch {
	case target.Path != "":
		f, err := os.Open(target.Path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, domain.NotFound(target.Path, "")
			}
			return nil, domain.ErrFilesystem.WithCause(err)
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, domain.ErrFilesystem.WithCause(err)
		}
		if _, err := w.CreateFormFile("file", filepath.Base(target.Path)); err != nil {
			f.Close()
			return nil, domain.ErrFilesystem.WithCause(err)
		}
		n := head.Len()
		if err := w.Close(); err != nil {
			f.Close()
			return nil, domain.ErrFilesystem.WithCause(err)
		}
		tail := append([]byte(nil), head.Bytes()[n:]...)
		head.Truncate(n)

		return &formBody{
			Reader:      io.MultiReader(&head, io.LimitReader(f, info.Size()), bytes.NewReader(tail)),
			file:        f,
			size:        int64(n) + info.Size() + int64(len(tail)),
			contentType: w.FormDataContentType(),
		}, nil
	case target.URL != "":
		if err := w.WriteField("fileUri", target.URL); err != nil {
			return nil, domain.ErrFilesystem.WithCause(err)
		}
	default:
		return nil, domain.ErrParse.WithDetails("one of `path` or `url` required")
	}

	if err := w.Close(); err != nil {
		return nil, domain.ErrFilesystem.WithCause(err)
	}
	return &formBody{
		Reader:      &head,
		size:        int64(head.Len()),
		contentType: w.FormDataContentType(),
	}, nil
}
